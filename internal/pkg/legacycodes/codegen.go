package legacycodes

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// Code alphabet: upper-case alphanumerics only, so codes survive being read
// over the phone or retyped from a screenshot.
const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCode returns a fresh code of the form PREFIX + random suffix
// that does not collide with anything in taken, and records it there so
// subsequent calls within the run stay unique.
func GenerateCode(taken map[string]struct{}, prefix string, totalLength int) (string, error) {
	prefix = strings.ToUpper(prefix)
	suffixLen := totalLength - len(prefix)
	if suffixLen < 1 {
		suffixLen = 1
	}

	for {
		suffix, err := randomCode(suffixLen)
		if err != nil {
			return "", err
		}
		code := prefix + suffix
		if _, exists := taken[code]; exists {
			continue
		}
		taken[code] = struct{}{}
		return code, nil
	}
}

func randomCode(length int) (string, error) {
	// Rejection sampling to avoid modulo bias.
	// 252 is the largest multiple of 36 below 256.
	const maxRandomByte = 252

	code := make([]byte, length)
	buf := make([]byte, length*2)
	written := 0

	for written < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read secure random bytes: %w", err)
		}

		for _, b := range buf {
			if b >= maxRandomByte {
				continue
			}
			code[written] = codeCharset[int(b)%len(codeCharset)]
			written++
			if written == length {
				break
			}
		}
	}

	return string(code), nil
}

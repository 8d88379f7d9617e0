package yookassa

import (
	"net/netip"
	"strings"
)

// Subnets YooKassa delivers webhooks from, per their notification docs.
// Trust in a source address is telemetry only: forwarding headers are
// spoofable, so the API confirmation step never depends on this check.
var trustedNetworks = []string{
	"185.71.76.0/27",
	"185.71.77.0/27",
	"77.75.153.0/25",
	"77.75.156.11/32",
	"77.75.156.35/32",
	"77.75.154.128/25",
	"2a02:5180::/32",
}

var trustedPrefixes = mustParsePrefixes(trustedNetworks)

func mustParsePrefixes(networks []string) []netip.Prefix {
	prefixes := make([]netip.Prefix, 0, len(networks))
	for _, network := range networks {
		prefixes = append(prefixes, netip.MustParsePrefix(network))
	}
	return prefixes
}

// IsTrustedIP reports whether the given address belongs to one of the
// provider's published webhook subnets.
func IsTrustedIP(ip string) bool {
	addr, err := netip.ParseAddr(strings.TrimSpace(ip))
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range trustedPrefixes {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

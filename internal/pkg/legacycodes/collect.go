package legacycodes

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

const msPerDay = 24 * 60 * 60 * 1000

const (
	SkipReasonBrokenSettings = "broken_settings_json"
	SkipReasonEmptyEmail     = "empty_email"
	SkipReasonUnlimited      = "unlimited_skipped"
	SkipReasonExpired        = "expired_or_too_small"
)

// Candidate is a legacy client retained for code generation. A legacy
// client is one with a non-numeric email in the x-ui inbound settings;
// numeric emails are usually Telegram IDs already managed by the bot.
type Candidate struct {
	InboundID int
	Email     string
	ClientID  string
	Days      int
}

// SkipRecord is a candidate excluded from code generation, with the reason.
type SkipRecord struct {
	InboundID int
	Email     string
	ClientID  string
	Reason    string
}

type inboundRow struct {
	ID       int
	Settings string
}

type inboundSettings struct {
	Clients []inboundClient `json:"clients"`
}

type inboundClient struct {
	Email      flexString `json:"email"`
	ID         flexString `json:"id"`
	ExpiryTime flexInt64  `json:"expiryTime"`
}

// flexString accepts both JSON strings and numbers; x-ui stores Telegram
// IDs as either depending on how the client row was created.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = flexString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*s = flexString(num.String())
	return nil
}

// flexInt64 tolerates expiry timestamps stored as JSON strings. An empty
// string counts as no expiry, same as 0.
type flexInt64 int64

func (n *flexInt64) UnmarshalJSON(data []byte) error {
	var num int64
	if err := json.Unmarshal(data, &num); err == nil {
		*n = flexInt64(num)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	str = strings.TrimSpace(str)
	if str == "" {
		*n = 0
		return nil
	}
	parsed, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return err
	}
	*n = flexInt64(parsed)
	return nil
}

// Collect reads the inbound configurations and derives one entitlement
// candidate per unique email. Per-record anomalies become SkipRecords and
// never abort the run.
func Collect(db *gorm.DB, now time.Time, opts Options) ([]Candidate, []SkipRecord, error) {
	query := db.Table("inbounds").Select("id", "settings")
	if opts.InboundID > 0 {
		query = query.Where("id = ?", opts.InboundID)
	}

	var rows []inboundRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	nowMs := now.UnixMilli()
	selected := make(map[string]Candidate)
	var skipped []SkipRecord

	for _, row := range rows {
		var settings inboundSettings
		if err := json.Unmarshal([]byte(row.Settings), &settings); err != nil {
			skipped = append(skipped, SkipRecord{
				InboundID: row.ID,
				Reason:    SkipReasonBrokenSettings,
			})
			continue
		}

		for _, client := range settings.Clients {
			email := strings.TrimSpace(string(client.Email))
			clientID := strings.TrimSpace(string(client.ID))
			if email == "" {
				skipped = append(skipped, SkipRecord{
					InboundID: row.ID,
					ClientID:  clientID,
					Reason:    SkipReasonEmptyEmail,
				})
				continue
			}

			if isNumeric(email) && !opts.IncludeNumericEmails {
				continue
			}

			var days int
			if client.ExpiryTime <= 0 {
				if opts.UnlimitedDays == 0 {
					skipped = append(skipped, SkipRecord{
						InboundID: row.ID,
						Email:     email,
						ClientID:  clientID,
						Reason:    SkipReasonUnlimited,
					})
					continue
				}
				days = opts.UnlimitedDays
				if days < opts.MinDays {
					days = opts.MinDays
				}
			} else {
				days = normalizeDays(int64(client.ExpiryTime), nowMs, opts.MinDays)
				if days <= 0 {
					skipped = append(skipped, SkipRecord{
						InboundID: row.ID,
						Email:     email,
						ClientID:  clientID,
						Reason:    SkipReasonExpired,
					})
					continue
				}
			}

			existing, ok := selected[email]
			if !ok || days > existing.Days {
				selected[email] = Candidate{
					InboundID: row.ID,
					Email:     email,
					ClientID:  clientID,
					Days:      days,
				}
			}
		}
	}

	result := make([]Candidate, 0, len(selected))
	for _, candidate := range selected {
		result = append(result, candidate)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := strings.ToLower(result[i].Email), strings.ToLower(result[j].Email)
		if a != b {
			return a < b
		}
		return result[i].Email < result[j].Email
	})
	return result, skipped, nil
}

// normalizeDays converts a millisecond expiry into whole remaining days,
// rounding up. Values below minDays collapse to 0 (skipped).
func normalizeDays(expiryMs, nowMs int64, minDays int) int {
	remainingMs := expiryMs - nowMs
	if remainingMs <= 0 {
		return 0
	}
	days := int((remainingMs + msPerDay - 1) / msPerDay)
	if days < minDays {
		return 0
	}
	return days
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

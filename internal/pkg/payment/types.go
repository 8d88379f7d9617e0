package payment

import (
	"encoding/json"
	"fmt"
)

// SubscriptionData is the plan a user selected before paying: it rides
// along inside the pending transaction so a confirmed webhook can activate
// exactly what was bought.
type SubscriptionData struct {
	TgID     int64  `json:"tg_id" validate:"required"`
	Devices  int    `json:"devices" validate:"required,min=1"`
	Duration int    `json:"duration" validate:"required,min=1"`
	Price    string `json:"price" validate:"required"`
}

// Pack serializes the selection for storage on the transaction row.
func (d SubscriptionData) Pack() (string, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("pack subscription data: %w", err)
	}
	return string(raw), nil
}

// UnpackSubscriptionData restores a selection stored by Pack.
func UnpackSubscriptionData(raw string) (SubscriptionData, error) {
	var d SubscriptionData
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return SubscriptionData{}, fmt.Errorf("unpack subscription data: %w", err)
	}
	return d, nil
}

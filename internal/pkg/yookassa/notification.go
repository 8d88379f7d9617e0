package yookassa

import (
	"encoding/json"
	"errors"
	"strings"
)

const (
	EventPaymentSucceeded         = "payment.succeeded"
	EventPaymentCanceled          = "payment.canceled"
	EventPaymentWaitingForCapture = "payment.waiting_for_capture"
	EventRefundSucceeded          = "refund.succeeded"
)

var knownEvents = map[string]bool{
	EventPaymentSucceeded:         true,
	EventPaymentCanceled:          true,
	EventPaymentWaitingForCapture: true,
	EventRefundSucceeded:          true,
}

// Notification is the inbound webhook body. Everything in it is untrusted:
// the referenced payment must be re-confirmed against the API before any
// state change.
type Notification struct {
	Type   string `json:"type"`
	Event  string `json:"event"`
	Object struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Paid   bool   `json:"paid"`
	} `json:"object"`
}

func ParseNotification(body []byte) (*Notification, error) {
	var n Notification
	if err := json.Unmarshal(body, &n); err != nil {
		return nil, err
	}
	if n.Type != "" && n.Type != "notification" {
		return nil, errors.New("unsupported webhook body type: " + n.Type)
	}
	if strings.TrimSpace(n.Event) == "" {
		return nil, errors.New("webhook body missing event")
	}
	if !knownEvents[n.Event] {
		return nil, errors.New("unknown webhook event type: " + n.Event)
	}
	return &n, nil
}

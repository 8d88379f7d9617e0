package yookassa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNotification(t *testing.T) {
	body := []byte(`{
		"type": "notification",
		"event": "payment.succeeded",
		"object": {"id": "2e8c3126-000f-5000-8000-18db351245c7", "status": "succeeded", "paid": true}
	}`)

	n, err := ParseNotification(body)
	require.NoError(t, err)
	assert.Equal(t, EventPaymentSucceeded, n.Event)
	assert.Equal(t, "2e8c3126-000f-5000-8000-18db351245c7", n.Object.ID)
	assert.True(t, n.Object.Paid)
}

func TestParseNotificationRejectsGarbage(t *testing.T) {
	_, err := ParseNotification([]byte("not json at all"))
	assert.Error(t, err)
}

func TestParseNotificationRejectsMissingEvent(t *testing.T) {
	_, err := ParseNotification([]byte(`{"type":"notification","object":{"id":"x"}}`))
	assert.Error(t, err)
}

func TestParseNotificationRejectsUnknownEventType(t *testing.T) {
	_, err := ParseNotification([]byte(`{"type":"notification","event":"deal.closed","object":{"id":"x"}}`))
	assert.Error(t, err)
}

func TestParseNotificationAcceptsKnownEvents(t *testing.T) {
	for _, event := range []string{
		EventPaymentSucceeded,
		EventPaymentCanceled,
		EventPaymentWaitingForCapture,
		EventRefundSucceeded,
	} {
		_, err := ParseNotification([]byte(`{"type":"notification","event":"` + event + `","object":{"id":"x"}}`))
		assert.NoError(t, err, event)
	}
}

func TestParseNotificationRejectsWrongType(t *testing.T) {
	_, err := ParseNotification([]byte(`{"type":"refund","event":"payment.succeeded","object":{"id":"x"}}`))
	assert.Error(t, err)
}

func TestParseNotificationAllowsMissingObjectID(t *testing.T) {
	// The handler owns the missing-id rejection so it can log and reply 400.
	n, err := ParseNotification([]byte(`{"type":"notification","event":"payment.canceled","object":{}}`))
	require.NoError(t, err)
	assert.Equal(t, "", n.Object.ID)
}

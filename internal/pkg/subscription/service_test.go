package subscription

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telewave/vpnbot/app/models"
	"gorm.io/gorm"
)

type memRepository struct {
	subs map[int64]*models.Subscription
}

func newMemRepository() *memRepository {
	return &memRepository{subs: make(map[int64]*models.Subscription)}
}

func (r *memRepository) GetByTgID(tgID int64) (*models.Subscription, error) {
	sub, ok := r.subs[tgID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *sub
	return &copied, nil
}

func (r *memRepository) Save(sub *models.Subscription) error {
	r.subs[sub.TgID] = sub
	return nil
}

type spyNotifier struct {
	messages []string
}

func (n *spyNotifier) Notify(_ int64, text string) {
	n.messages = append(n.messages, text)
}

func TestActivateCreatesSubscription(t *testing.T) {
	repo := newMemRepository()
	notifier := &spyNotifier{}
	svc := NewService(repo, notifier)

	before := time.Now()
	require.NoError(t, svc.Activate(context.Background(), 42, 2, 30))

	sub, err := repo.GetByTgID(42)
	require.NoError(t, err)
	assert.Equal(t, 2, sub.Devices)
	assert.Equal(t, models.SubscriptionStatusActive, sub.Status)
	assert.WithinDuration(t, before.Add(30*24*time.Hour), sub.ExpiresAt, time.Minute)
	assert.Len(t, notifier.messages, 1)
}

func TestActivateExtendsRemainingPeriod(t *testing.T) {
	repo := newMemRepository()
	svc := NewService(repo, nil)

	current := time.Now().Add(10 * 24 * time.Hour)
	repo.subs[42] = &models.Subscription{
		TgID:      42,
		Devices:   1,
		ExpiresAt: current,
		Status:    models.SubscriptionStatusActive,
	}

	require.NoError(t, svc.Activate(context.Background(), 42, 1, 30))

	sub, err := repo.GetByTgID(42)
	require.NoError(t, err)
	assert.WithinDuration(t, current.Add(30*24*time.Hour), sub.ExpiresAt, time.Second)
}

func TestActivateExpiredSubscriptionRestartsFromNow(t *testing.T) {
	repo := newMemRepository()
	svc := NewService(repo, nil)

	repo.subs[42] = &models.Subscription{
		TgID:      42,
		ExpiresAt: time.Now().Add(-100 * 24 * time.Hour),
	}

	before := time.Now()
	require.NoError(t, svc.Activate(context.Background(), 42, 1, 7))

	sub, err := repo.GetByTgID(42)
	require.NoError(t, err)
	assert.WithinDuration(t, before.Add(7*24*time.Hour), sub.ExpiresAt, time.Minute)
}

func TestActivateValidatesInput(t *testing.T) {
	svc := NewService(newMemRepository(), nil)
	assert.Error(t, svc.Activate(context.Background(), 0, 1, 30))
	assert.Error(t, svc.Activate(context.Background(), 42, 1, 0))
}

func TestCancelNotifiesWithoutTouchingSubscription(t *testing.T) {
	repo := newMemRepository()
	notifier := &spyNotifier{}
	svc := NewService(repo, notifier)

	expiry := time.Now().Add(5 * 24 * time.Hour)
	repo.subs[42] = &models.Subscription{TgID: 42, ExpiresAt: expiry, Status: models.SubscriptionStatusActive}

	require.NoError(t, svc.Cancel(context.Background(), 42))
	assert.Len(t, notifier.messages, 1)

	sub, err := repo.GetByTgID(42)
	require.NoError(t, err)
	assert.Equal(t, expiry, sub.ExpiresAt)
	assert.Equal(t, models.SubscriptionStatusActive, sub.Status)
}

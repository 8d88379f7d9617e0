package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/telewave/vpnbot/app/models"
	"gorm.io/gorm"
)

// Notifier delivers a message to a Telegram user. Delivery is best effort:
// a failed send must not fail the payment flow.
type Notifier interface {
	Notify(tgID int64, text string)
}

// Repository provides DB operations used by the subscription service.
type Repository interface {
	GetByTgID(tgID int64) (*models.Subscription, error)
	Save(sub *models.Subscription) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a subscription repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetByTgID(tgID int64) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("tg_id = ?", tgID).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *gormRepository) Save(sub *models.Subscription) error {
	return r.db.Save(sub).Error
}

// Service applies confirmed payment outcomes to the user's subscription.
type Service struct {
	repo     Repository
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// NewServiceFromDB creates a subscription service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB, notifier Notifier) *Service {
	return NewService(NewRepository(db), notifier)
}

// Activate grants or extends the user's subscription. An active remaining
// period is extended from its current expiry, an expired one from now.
func (s *Service) Activate(ctx context.Context, tgID int64, devices, durationDays int) error {
	_ = ctx
	if tgID == 0 || durationDays <= 0 {
		return errors.New("tg_id and a positive duration are required")
	}
	if devices <= 0 {
		devices = 1
	}

	now := time.Now()
	sub, err := s.repo.GetByTgID(tgID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		sub = &models.Subscription{TgID: tgID, ExpiresAt: now}
	} else if err != nil {
		return err
	}

	base := sub.ExpiresAt
	if base.Before(now) {
		base = now
	}
	sub.ExpiresAt = base.Add(time.Duration(durationDays) * 24 * time.Hour)
	sub.Devices = devices
	sub.Status = models.SubscriptionStatusActive
	if err := s.repo.Save(sub); err != nil {
		return err
	}

	if s.notifier != nil {
		s.notifier.Notify(tgID, fmt.Sprintf(
			"Payment received. Your subscription is active until %s (%d device(s)).",
			sub.ExpiresAt.UTC().Format("2006-01-02 15:04 UTC"), devices))
	}
	return nil
}

// Cancel reports a canceled purchase to the user. The existing entitlement
// is left untouched: a canceled payment only means nothing was bought.
func (s *Service) Cancel(ctx context.Context, tgID int64) error {
	_ = ctx
	if tgID == 0 {
		return errors.New("tg_id is required")
	}
	if s.notifier != nil {
		s.notifier.Notify(tgID, "Payment was canceled. Your subscription was not changed.")
	}
	return nil
}

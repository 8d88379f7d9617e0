package payment

import (
	"github.com/telewave/vpnbot/app/models"
	"gorm.io/gorm"
)

// Repository provides DB operations used by the payment gateway.
type Repository interface {
	CreateTransaction(tx *models.Transaction) error
	GetTransactionByPaymentID(paymentID string) (*models.Transaction, error)
	UpdateTransactionStatus(paymentID, status string) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a payment repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateTransaction(tx *models.Transaction) error {
	return r.db.Create(tx).Error
}

func (r *gormRepository) GetTransactionByPaymentID(paymentID string) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.Where("payment_id = ?", paymentID).First(&tx).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *gormRepository) UpdateTransactionStatus(paymentID, status string) error {
	return r.db.Model(&models.Transaction{}).
		Where("payment_id = ?", paymentID).
		Update("status", status).Error
}

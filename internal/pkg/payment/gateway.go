package payment

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/telewave/vpnbot/app/models"
	"github.com/telewave/vpnbot/internal/pkg/yookassa"
	"gorm.io/gorm"
)

const currencyRUB = "RUB"

// ProviderAPI is the slice of the YooKassa client the gateway depends on.
type ProviderAPI interface {
	CreatePayment(ctx context.Context, in yookassa.CreatePaymentRequest) (*yookassa.Payment, error)
	FindPayment(ctx context.Context, paymentID string) (*yookassa.Payment, error)
}

// Subscriptions is the downstream collaborator notified about confirmed
// terminal payment states.
type Subscriptions interface {
	Activate(ctx context.Context, tgID int64, devices, durationDays int) error
	Cancel(ctx context.Context, tgID int64) error
}

// Gateway creates provider payments and applies confirmed webhook events.
type Gateway struct {
	repo      Repository
	api       ProviderAPI
	subs      Subscriptions
	shopEmail string
	returnURL string
}

func NewGateway(repo Repository, api ProviderAPI, subs Subscriptions, shopEmail, returnURL string) *Gateway {
	return &Gateway{
		repo:      repo,
		api:       api,
		subs:      subs,
		shopEmail: shopEmail,
		returnURL: returnURL,
	}
}

// NewGatewayFromDB wires the gateway against a GORM handle.
func NewGatewayFromDB(db *gorm.DB, api ProviderAPI, subs Subscriptions, shopEmail, returnURL string) *Gateway {
	return NewGateway(NewRepository(db), api, subs, shopEmail, returnURL)
}

// CreatePayment submits a payment request for the selected plan, records a
// pending transaction keyed by the provider payment id and returns the
// hosted checkout URL. Nothing is persisted when the provider call fails.
func (g *Gateway) CreatePayment(ctx context.Context, data SubscriptionData) (string, error) {
	description := fmt.Sprintf("VPN subscription: %d device(s) for %d days", data.Devices, data.Duration)
	amount := yookassa.Amount{Value: data.Price, Currency: currencyRUB}

	response, err := g.api.CreatePayment(ctx, yookassa.CreatePaymentRequest{
		Amount: amount,
		Confirmation: yookassa.Confirmation{
			Type:      "redirect",
			ReturnURL: g.returnURL,
		},
		Capture:           true,
		SavePaymentMethod: false,
		Description:       description,
		Receipt: &yookassa.Receipt{
			Customer: yookassa.ReceiptCustomer{Email: g.shopEmail},
			Items: []yookassa.ReceiptItem{
				{
					Description: description,
					Quantity:    "1",
					Amount:      amount,
					VatCode:     1,
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("create yookassa payment: %w", err)
	}

	packed, err := data.Pack()
	if err != nil {
		return "", err
	}
	if err := g.repo.CreateTransaction(&models.Transaction{
		PaymentID:    response.ID,
		TgID:         data.TgID,
		Subscription: packed,
		Amount:       data.Price,
		Currency:     currencyRUB,
		Status:       models.TransactionStatusPending,
	}); err != nil {
		return "", fmt.Errorf("persist pending transaction: %w", err)
	}

	log.Printf("Payment link created for user %d: payment_id=%s", data.TgID, response.ID)
	return response.Confirmation.ConfirmationURL, nil
}

// ConfirmEvent cross-checks a claimed webhook event against the provider's
// payment-lookup endpoint. A lookup failure counts as unconfirmed: webhook
// bodies are untrusted input and the gate fails closed.
func (g *Gateway) ConfirmEvent(ctx context.Context, paymentID, event string) bool {
	remote, err := g.api.FindPayment(ctx, paymentID)
	if err != nil {
		log.Printf("YooKassa webhook: failed to verify payment %s via API: %v", paymentID, err)
		return false
	}

	status := strings.ToLower(remote.Status)
	var valid bool
	switch event {
	case yookassa.EventPaymentSucceeded:
		valid = status == yookassa.StatusSucceeded && remote.Paid
	case yookassa.EventPaymentCanceled:
		valid = status == yookassa.StatusCanceled
	default:
		valid = false
	}

	if !valid {
		log.Printf("YooKassa webhook validation failed for payment %s: event=%s api_status=%s paid=%v",
			paymentID, event, status, remote.Paid)
	}
	return valid
}

// HandlePaymentSucceeded flips the transaction to succeeded and activates
// the bought subscription. A transaction already in a terminal state is
// left untouched, which makes repeated webhook deliveries harmless.
func (g *Gateway) HandlePaymentSucceeded(ctx context.Context, paymentID string) error {
	tx, err := g.repo.GetTransactionByPaymentID(paymentID)
	if err != nil {
		return fmt.Errorf("lookup transaction %s: %w", paymentID, err)
	}
	if tx.Status != models.TransactionStatusPending {
		log.Printf("Transaction %s already in status %s, skipping", paymentID, tx.Status)
		return nil
	}

	data, err := UnpackSubscriptionData(tx.Subscription)
	if err != nil {
		return err
	}
	if err := g.repo.UpdateTransactionStatus(paymentID, models.TransactionStatusSucceeded); err != nil {
		return err
	}
	return g.subs.Activate(ctx, tx.TgID, data.Devices, data.Duration)
}

// HandlePaymentCanceled flips the transaction to canceled and informs the
// subscription collaborator.
func (g *Gateway) HandlePaymentCanceled(ctx context.Context, paymentID string) error {
	tx, err := g.repo.GetTransactionByPaymentID(paymentID)
	if err != nil {
		return fmt.Errorf("lookup transaction %s: %w", paymentID, err)
	}
	if tx.Status != models.TransactionStatusPending {
		log.Printf("Transaction %s already in status %s, skipping", paymentID, tx.Status)
		return nil
	}

	if err := g.repo.UpdateTransactionStatus(paymentID, models.TransactionStatusCanceled); err != nil {
		return err
	}
	return g.subs.Cancel(ctx, tx.TgID)
}

package controllers

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/telewave/vpnbot/internal/pkg/payment"
	"github.com/telewave/vpnbot/internal/pkg/yookassa"
)

// Gateway is the slice of the payment gateway the controller depends on.
type Gateway interface {
	CreatePayment(ctx context.Context, data payment.SubscriptionData) (string, error)
	ConfirmEvent(ctx context.Context, paymentID, event string) bool
	HandlePaymentSucceeded(ctx context.Context, paymentID string) error
	HandlePaymentCanceled(ctx context.Context, paymentID string) error
}

// SelectionStore holds a user's plan choice between selection and checkout.
type SelectionStore interface {
	StashSelection(data payment.SubscriptionData) error
	TakeSelection(tgID int64) (payment.SubscriptionData, error)
}

type PaymentController struct {
	gateway    Gateway
	selections SelectionStore
	validate   *validator.Validate
}

func NewPaymentController(gateway Gateway, selections SelectionStore) *PaymentController {
	return &PaymentController{
		gateway:    gateway,
		selections: selections,
		validate:   validator.New(),
	}
}

// HandleSelectPlan stashes the user's chosen plan ahead of checkout.
func (pc *PaymentController) HandleSelectPlan(c *fiber.Ctx) error {
	var data payment.SubscriptionData
	if err := c.BodyParser(&data); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_body"})
	}
	if err := pc.validate.Struct(data); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_selection"})
	}
	if err := pc.selections.StashSelection(data); err != nil {
		log.Printf("Failed to stash plan selection for user %d: %v", data.TgID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "selection_store_failed"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleCreatePayment turns the stashed selection into a provider payment
// and returns the hosted checkout URL.
func (pc *PaymentController) HandleCreatePayment(c *fiber.Ctx) error {
	var in struct {
		TgID int64 `json:"tg_id"`
	}
	if err := c.BodyParser(&in); err != nil || in.TgID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_body"})
	}

	data, err := pc.selections.TakeSelection(in.TgID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no_pending_selection"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	url, err := pc.gateway.CreatePayment(ctx, data)
	if err != nil {
		log.Printf("Failed to create payment for user %d: %v", in.TgID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "payment_create_failed"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"confirmation_url": url})
}

// HandleYookassaWebhook processes asynchronous payment-status callbacks.
// The body's claims are only acted on after the referenced payment is
// confirmed against the provider API; source-IP trust is telemetry only.
func (pc *PaymentController) HandleYookassaWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)

	notification, err := yookassa.ParseNotification(rawBody)
	if err != nil {
		log.Printf("YooKassa webhook rejected: %v", err)
		return c.SendStatus(fiber.StatusBadRequest)
	}
	paymentID := notification.Object.ID
	if paymentID == "" {
		log.Printf("YooKassa webhook rejected: payment_id is missing.")
		return c.SendStatus(fiber.StatusBadRequest)
	}

	sourceIP, forwardedFor, remoteIP := extractSourceIP(c)
	if sourceIP == "" || !yookassa.IsTrustedIP(sourceIP) {
		log.Printf("YooKassa webhook source is not in the provider subnet list (ip=%q, X-Forwarded-For=%q, remote=%q). Relying on API verification.",
			sourceIP, forwardedFor, remoteIP)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if !pc.gateway.ConfirmEvent(ctx, paymentID, notification.Event) {
		return c.SendStatus(fiber.StatusForbidden)
	}

	log.Printf("YooKassa webhook received: event=%s payment_id=%s", notification.Event, paymentID)

	switch notification.Event {
	case yookassa.EventPaymentSucceeded:
		if err := pc.gateway.HandlePaymentSucceeded(ctx, paymentID); err != nil {
			log.Printf("Error processing YooKassa webhook: %v", err)
			return c.SendStatus(fiber.StatusBadRequest)
		}
		return c.SendStatus(fiber.StatusOK)

	case yookassa.EventPaymentCanceled:
		if err := pc.gateway.HandlePaymentCanceled(ctx, paymentID); err != nil {
			log.Printf("Error processing YooKassa webhook: %v", err)
			return c.SendStatus(fiber.StatusBadRequest)
		}
		return c.SendStatus(fiber.StatusOK)

	default:
		return c.SendStatus(fiber.StatusBadRequest)
	}
}

// extractSourceIP prefers the first hop of X-Forwarded-For over the socket
// address. Reverse proxies may pass the header as a comma-separated chain.
func extractSourceIP(c *fiber.Ctx) (ip, forwardedFor, remoteIP string) {
	forwardedFor = strings.TrimSpace(c.Get(fiber.HeaderXForwardedFor))
	remoteIP = c.IP()

	if forwardedFor != "" {
		ip = strings.TrimSpace(strings.Split(forwardedFor, ",")[0])
	} else {
		ip = remoteIP
	}
	return ip, forwardedFor, remoteIP
}

package yookassa

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/telewave/vpnbot/internal/pkg/env"
)

const defaultAPIBaseURL = "https://api.yookassa.ru/v3"

const (
	StatusPending           = "pending"
	StatusWaitingForCapture = "waiting_for_capture"
	StatusSucceeded         = "succeeded"
	StatusCanceled          = "canceled"
)

type Client struct {
	ShopID    string
	SecretKey string

	APIBaseURL string

	HTTPClient *http.Client
}

type Amount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type Confirmation struct {
	Type            string `json:"type"`
	ReturnURL       string `json:"return_url,omitempty"`
	ConfirmationURL string `json:"confirmation_url,omitempty"`
}

type ReceiptCustomer struct {
	Email string `json:"email"`
}

type ReceiptItem struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Amount      Amount `json:"amount"`
	VatCode     int    `json:"vat_code"`
}

type Receipt struct {
	Customer ReceiptCustomer `json:"customer"`
	Items    []ReceiptItem   `json:"items"`
}

type CreatePaymentRequest struct {
	Amount            Amount       `json:"amount"`
	Confirmation      Confirmation `json:"confirmation"`
	Capture           bool         `json:"capture"`
	SavePaymentMethod bool         `json:"save_payment_method"`
	Description       string       `json:"description"`
	Receipt           *Receipt     `json:"receipt,omitempty"`
}

type Payment struct {
	ID           string       `json:"id"`
	Status       string       `json:"status"`
	Paid         bool         `json:"paid"`
	Amount       Amount       `json:"amount"`
	Confirmation Confirmation `json:"confirmation"`
	Description  string       `json:"description"`
}

func NewClientFromEnv() *Client {
	return &Client{
		ShopID:     strings.TrimSpace(env.GetEnv("YOOKASSA_SHOP_ID", "")),
		SecretKey:  strings.TrimSpace(env.GetEnv("YOOKASSA_SECRET_KEY", "")),
		APIBaseURL: strings.TrimSpace(env.GetEnv("YOOKASSA_API_BASE_URL", defaultAPIBaseURL)),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// CreatePayment submits a payment request and returns the created payment
// with its hosted checkout confirmation URL. Each call carries a fresh
// Idempotence-Key, so a retried call creates a new payment.
func (c *Client) CreatePayment(ctx context.Context, in CreatePaymentRequest) (*Payment, error) {
	if strings.TrimSpace(c.ShopID) == "" || strings.TrimSpace(c.SecretKey) == "" {
		return nil, errors.New("YOOKASSA_SHOP_ID/YOOKASSA_SECRET_KEY are not configured")
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.APIBaseURL, "/")+"/payments", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.ShopID, c.SecretKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotence-Key", uuid.NewString())

	payment, err := c.doPayment(req)
	if err != nil {
		return nil, err
	}
	if payment.Confirmation.ConfirmationURL == "" {
		return nil, errors.New("yookassa payment response missing confirmation_url")
	}
	return payment, nil
}

// FindPayment looks up the authoritative payment state by id.
func (c *Client) FindPayment(ctx context.Context, paymentID string) (*Payment, error) {
	if strings.TrimSpace(c.ShopID) == "" || strings.TrimSpace(c.SecretKey) == "" {
		return nil, errors.New("YOOKASSA_SHOP_ID/YOOKASSA_SECRET_KEY are not configured")
	}
	id := strings.TrimSpace(paymentID)
	if id == "" {
		return nil, errors.New("payment id is required")
	}

	endpoint := strings.TrimRight(c.APIBaseURL, "/") + "/payments/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.ShopID, c.SecretKey)
	req.Header.Set("Accept", "application/json")

	return c.doPayment(req)
}

func (c *Client) doPayment(req *http.Request) (*Payment, error) {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("yookassa request failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	var out Payment
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.ID) == "" {
		return nil, errors.New("yookassa response missing payment id")
	}
	return &out, nil
}

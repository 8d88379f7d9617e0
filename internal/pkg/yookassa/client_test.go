package yookassa

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return &Client{
		ShopID:     "shop-1",
		SecretKey:  "secret-1",
		APIBaseURL: baseURL,
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestCreatePayment(t *testing.T) {
	var gotIdempotenceKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/payments", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "shop-1", user)
		assert.Equal(t, "secret-1", pass)
		gotIdempotenceKey = r.Header.Get("Idempotence-Key")

		var in CreatePaymentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "499.00", in.Amount.Value)
		assert.True(t, in.Capture)
		assert.False(t, in.SavePaymentMethod)
		require.NotNil(t, in.Receipt)
		require.Len(t, in.Receipt.Items, 1)
		assert.Equal(t, 1, in.Receipt.Items[0].VatCode)

		json.NewEncoder(w).Encode(Payment{
			ID:     "pay-123",
			Status: StatusPending,
			Confirmation: Confirmation{
				Type:            "redirect",
				ConfirmationURL: "https://checkout.example/pay-123",
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	payment, err := client.CreatePayment(context.Background(), CreatePaymentRequest{
		Amount:       Amount{Value: "499.00", Currency: "RUB"},
		Confirmation: Confirmation{Type: "redirect", ReturnURL: "https://t.me/testbot"},
		Capture:      true,
		Description:  "VPN subscription: 1 device(s) for 30 days",
		Receipt: &Receipt{
			Customer: ReceiptCustomer{Email: "shop@example.com"},
			Items: []ReceiptItem{{
				Description: "VPN subscription: 1 device(s) for 30 days",
				Quantity:    "1",
				Amount:      Amount{Value: "499.00", Currency: "RUB"},
				VatCode:     1,
			}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "pay-123", payment.ID)
	assert.Equal(t, "https://checkout.example/pay-123", payment.Confirmation.ConfirmationURL)
	assert.NotEmpty(t, gotIdempotenceKey)
}

func TestCreatePaymentMissingConfirmationURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Payment{ID: "pay-123", Status: StatusPending})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).CreatePayment(context.Background(), CreatePaymentRequest{})
	assert.Error(t, err)
}

func TestFindPayment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/payments/pay-123", r.URL.Path)
		json.NewEncoder(w).Encode(Payment{ID: "pay-123", Status: StatusSucceeded, Paid: true})
	}))
	defer server.Close()

	payment, err := newTestClient(server.URL).FindPayment(context.Background(), "pay-123")
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, payment.Status)
	assert.True(t, payment.Paid)
}

func TestFindPaymentErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"type":"error","code":"not_found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FindPayment(context.Background(), "missing")
	assert.Error(t, err)
}

func TestClientRequiresCredentials(t *testing.T) {
	client := &Client{HTTPClient: http.DefaultClient}
	_, err := client.FindPayment(context.Background(), "pay-123")
	assert.Error(t, err)
	_, err = client.CreatePayment(context.Background(), CreatePaymentRequest{})
	assert.Error(t, err)
}

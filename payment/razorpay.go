// Package payment wraps the Razorpay orders API and its payment signature
// scheme.
package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultBaseURL  = "https://api.razorpay.com"
	DefaultCurrency = "INR"

	requestTimeout = 30 * time.Second
)

var (
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	ErrGateway       = errors.New("payment gateway error")
)

// Order is the processor's handle for a pending charge. Amount is in minor
// units (paise for INR).
type Order struct {
	ID         string `json:"id"`
	Entity     string `json:"entity"`
	Amount     int64  `json:"amount"`
	AmountPaid int64  `json:"amount_paid"`
	AmountDue  int64  `json:"amount_due"`
	Currency   string `json:"currency"`
	Receipt    string `json:"receipt"`
	Status     string `json:"status"`
	Attempts   int    `json:"attempts"`
	CreatedAt  int64  `json:"created_at"`
}

// Gateway is what the checkout flow needs from a payment processor.
type Gateway interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal, currency string) (*Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
	KeyID() string
}

type Razorpay struct {
	keyID     string
	keySecret string
	client    *resty.Client
}

// NewRazorpay builds a client for the Razorpay API. With empty credentials the
// client runs offline: CreateOrder returns locally generated handles and no
// request leaves the process.
func NewRazorpay(keyID, keySecret, baseURL string) *Razorpay {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout).
		SetBasicAuth(keyID, keySecret).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	return &Razorpay{keyID: keyID, keySecret: keySecret, client: client}
}

func (r *Razorpay) KeyID() string {
	return r.keyID
}

func (r *Razorpay) Offline() bool {
	return r.keyID == "" || r.keySecret == ""
}

// ToMinorUnits converts a decimal amount to the processor's integer minor
// units, rounding half away from zero.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// newReceipt returns a receipt token within Razorpay's 40 character limit.
func newReceipt() string {
	return "receipt_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func (r *Razorpay) CreateOrder(ctx context.Context, amount decimal.Decimal, currency string) (*Order, error) {
	minor := ToMinorUnits(amount)
	if minor <= 0 {
		return nil, ErrInvalidAmount
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	receipt := newReceipt()

	if r.Offline() {
		return &Order{
			ID:        "order_offline_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:14],
			Entity:    "order",
			Amount:    minor,
			AmountDue: minor,
			Currency:  currency,
			Receipt:   receipt,
			Status:    "created",
			CreatedAt: time.Now().Unix(),
		}, nil
	}

	requestBody := map[string]any{
		"amount":   minor,
		"currency": currency,
		"receipt":  receipt,
	}

	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(requestBody).
		Post("/v1/orders")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("%w: order request failed with status %d: %s", ErrGateway, resp.StatusCode(), string(resp.Body()))
	}

	var order Order
	if err := json.Unmarshal(resp.Body(), &order); err != nil {
		return nil, fmt.Errorf("%w: failed to parse order response: %v", ErrGateway, err)
	}

	if order.ID == "" {
		return nil, fmt.Errorf("%w: order id not found in response", ErrGateway)
	}

	return &order, nil
}

// Signature is the hex HMAC-SHA256 of "orderID|paymentID" keyed with secret.
func Signature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature compares in constant time. Without a key secret nothing
// verifies.
func (r *Razorpay) VerifySignature(orderID, paymentID, signature string) bool {
	if r.keySecret == "" {
		return false
	}
	expected := Signature(r.keySecret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

package paymentControllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	const (
		orderID   = "order_MkWq1"
		paymentID = "pay_NxT29"
		secret    = "shhh"
	)
	signature := sign(orderID, paymentID, secret)

	assert.True(t, VerifySignature(orderID, paymentID, secret, signature))

	// Altering any single input flips an accepting verdict.
	assert.False(t, VerifySignature("order_other", paymentID, secret, signature))
	assert.False(t, VerifySignature(orderID, "pay_other", secret, signature))
	assert.False(t, VerifySignature(orderID, paymentID, "wrong", signature))
	assert.False(t, VerifySignature(orderID, paymentID, secret, sign(orderID, paymentID, "wrong")))
	assert.False(t, VerifySignature(orderID, paymentID, secret, ""))
}

func TestVerifySignatureDeterministic(t *testing.T) {
	signature := sign("a", "b", "k")
	for i := 0; i < 10; i++ {
		assert.True(t, VerifySignature("a", "b", "k", signature))
	}
}

func TestRupeesToPaise(t *testing.T) {
	cases := []struct {
		rupees string
		paise  int64
	}{
		{"1", 100},
		{"499.99", 49999},
		{"0.5", 50},
		{"1234.567", 123457}, // rounds to the nearest paisa
	}
	for _, tc := range cases {
		amount, err := decimal.NewFromString(tc.rupees)
		assert.NoError(t, err)
		assert.Equal(t, tc.paise, RupeesToPaise(amount), "rupees %s", tc.rupees)
	}
}

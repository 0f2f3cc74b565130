// internal/utils/crypto_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testGatewaySecret = "test_rzp_secret"

func TestSignPaymentIsDeterministic(t *testing.T) {
	first := SignPayment("order_abc123", "pay_def456", testGatewaySecret)
	second := SignPayment("order_abc123", "pay_def456", testGatewaySecret)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64) // hex-encoded SHA-256
}

func TestVerifyPaymentSignatureAcceptsValidSignature(t *testing.T) {
	sig := SignPayment("order_abc123", "pay_def456", testGatewaySecret)

	assert.True(t, VerifyPaymentSignature("order_abc123", "pay_def456", sig, testGatewaySecret))
}

func TestVerifyPaymentSignatureRejectsTampering(t *testing.T) {
	sig := SignPayment("order_abc123", "pay_def456", testGatewaySecret)

	tests := []struct {
		name      string
		orderID   string
		paymentID string
		signature string
	}{
		{"altered signature", "order_abc123", "pay_def456", sig[:63] + "0"},
		{"altered order id", "order_abc124", "pay_def456", sig},
		{"altered payment id", "order_abc123", "pay_def457", sig},
		{"empty signature", "order_abc123", "pay_def456", ""},
		{"truncated signature", "order_abc123", "pay_def456", sig[:32]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, VerifyPaymentSignature(tt.orderID, tt.paymentID, tt.signature, testGatewaySecret))
		})
	}
}

func TestVerifyPaymentSignatureRejectsWrongSecret(t *testing.T) {
	sig := SignPayment("order_abc123", "pay_def456", testGatewaySecret)

	assert.False(t, VerifyPaymentSignature("order_abc123", "pay_def456", sig, "another_secret"))
}

func TestSignPaymentSeparatorMatters(t *testing.T) {
	// "a|bc" and "ab|c" must not collide; the pipe is a field separator,
	// not part of either identifier.
	assert.NotEqual(t,
		SignPayment("a", "bc", testGatewaySecret),
		SignPayment("ab", "c", testGatewaySecret),
	)
}

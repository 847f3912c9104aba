package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signFor(t *testing.T, orderID, paymentID, secret string) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyPaymentSignature_Authentic(t *testing.T) {
	sig := signFor(t, "O1", "P1", "topsecret")
	require.True(t, VerifyPaymentSignature("O1", "P1", sig, "topsecret"))
}

func TestVerifyPaymentSignature_SingleCharMutation(t *testing.T) {
	sig := signFor(t, "O1", "P1", "topsecret")

	// Chaque mutation d'un seul caractère doit invalider la signature
	for i := 0; i < len(sig); i++ {
		mutated := []byte(sig)
		if mutated[i] == 'a' {
			mutated[i] = 'b'
		} else {
			mutated[i] = 'a'
		}
		assert.False(t, VerifyPaymentSignature("O1", "P1", string(mutated), "topsecret"),
			"mutation à l'index %d acceptée", i)
	}
}

func TestVerifyPaymentSignature_WrongSecret(t *testing.T) {
	sig := signFor(t, "O1", "P1", "topsecret")
	require.False(t, VerifyPaymentSignature("O1", "P1", sig, "othersecret"))
}

func TestVerifyPaymentSignature_WrongIDs(t *testing.T) {
	sig := signFor(t, "O1", "P1", "topsecret")
	require.False(t, VerifyPaymentSignature("O2", "P1", sig, "topsecret"))
	require.False(t, VerifyPaymentSignature("O1", "P2", sig, "topsecret"))
}

func TestVerifyPaymentSignature_Empty(t *testing.T) {
	require.False(t, VerifyPaymentSignature("O1", "P1", "", "topsecret"))
}

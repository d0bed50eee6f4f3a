package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// ComputeSignature returns the hex HMAC-SHA256 of "orderID|paymentID" under
// the gateway key secret, the scheme the gateway signs callbacks with.
func ComputeSignature(gatewayOrderID, paymentID, keySecret string) string {
	mac := hmac.New(sha256.New, []byte(keySecret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature compares in constant time.
func VerifySignature(gatewayOrderID, paymentID, signature, keySecret string) bool {
	expected := ComputeSignature(gatewayOrderID, paymentID, keySecret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

package handlers

import "math/rand"

// GenerateOTP returns a 6-digit one-time code, each digit drawn uniformly.
// Deliberately not cryptographically strong; codes are short-lived and
// single-use.
func GenerateOTP() string {
	return randomDigits(6)
}

// GenerateOrderNumber returns a pickup order number of the form ORD-<15
// digits>. Uniqueness is statistical; the unique index on orderNumber
// rejects the astronomically unlikely collision.
func GenerateOrderNumber() string {
	return "ORD-" + randomDigits(15)
}

func randomDigits(n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte('0' + rand.Intn(10))
	}
	return string(buf)
}

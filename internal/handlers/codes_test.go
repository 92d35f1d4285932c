package handlers

import (
	"strings"
	"testing"
)

func TestGenerateOTPIsSixDigits(t *testing.T) {
	for i := 0; i < 50; i++ {
		otp := GenerateOTP()
		if len(otp) != 6 {
			t.Fatalf("expected 6 digit otp, got %q", otp)
		}
		for _, r := range otp {
			if r < '0' || r > '9' {
				t.Fatalf("expected digits only, got %q", otp)
			}
		}
	}
}

func TestGenerateOrderNumberFormat(t *testing.T) {
	for i := 0; i < 50; i++ {
		orderNumber := GenerateOrderNumber()
		if !strings.HasPrefix(orderNumber, "ORD-") {
			t.Fatalf("expected ORD- prefix, got %q", orderNumber)
		}
		digits := strings.TrimPrefix(orderNumber, "ORD-")
		if len(digits) != 15 {
			t.Fatalf("expected 15 digits after prefix, got %q", orderNumber)
		}
		for _, r := range digits {
			if r < '0' || r > '9' {
				t.Fatalf("expected digits only after prefix, got %q", orderNumber)
			}
		}
	}
}

package handlers

import (
	"testing"
	"time"
)

func TestValidateResetOTP(t *testing.T) {
	now := time.Now()
	future := now.Add(15 * time.Minute)
	past := now.Add(-time.Minute)

	cases := []struct {
		name       string
		stored     string
		expiration *time.Time
		submitted  string
		want       string
	}{
		{"valid code within expiry", "482913", &future, "482913", ""},
		{"valid code with surrounding whitespace", "482913", &future, " 482913 ", ""},
		{"mismatched code", "482913", &future, "000000", "OTP is Invalid."},
		{"code nulled after a successful reset", "", nil, "482913", "OTP is Invalid."},
		{"expiry elapsed", "482913", &past, "482913", "OTP has Expired."},
		{"expiry missing", "482913", nil, "482913", "OTP has Expired."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			apiErr := validateResetOTP(tc.stored, tc.expiration, tc.submitted, now)
			if tc.want == "" {
				if apiErr != nil {
					t.Fatalf("expected valid, got %q", apiErr.Message)
				}
				return
			}
			if apiErr == nil {
				t.Fatalf("expected %q, got nil", tc.want)
			}
			if apiErr.Message != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, apiErr.Message)
			}
			if apiErr.Code != 400 {
				t.Fatalf("expected 400, got %d", apiErr.Code)
			}
		})
	}
}

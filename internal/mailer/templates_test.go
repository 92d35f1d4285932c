package mailer

import (
	"strings"
	"testing"
)

func TestRenderOTPEmail(t *testing.T) {
	html, err := render(OTPEmail{Code: "482913"})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(html, "482913") {
		t.Fatalf("expected the code in the rendered mail, got %q", html)
	}
}

func TestRenderPasswordResetEmail(t *testing.T) {
	html, err := render(PasswordResetEmail{Name: "Ada Lovelace"})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(html, "Ada Lovelace") {
		t.Fatalf("expected the name in the rendered mail, got %q", html)
	}
}

func TestRenderPickupEmail(t *testing.T) {
	html, err := render(PickupEmail{Name: "Ada Lovelace", OrderNumber: "ORD-123456789012345"})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(html, "Ada Lovelace") || !strings.Contains(html, "ORD-123456789012345") {
		t.Fatalf("expected name and order number in the rendered mail, got %q", html)
	}
}

func TestRenderBroadcastEmail(t *testing.T) {
	html, err := render(BroadcastEmail{Title: "Holiday hours", Message: "We close at noon on Friday."})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(html, "Holiday hours") {
		t.Fatalf("expected the title in the rendered mail, got %q", html)
	}
	if !strings.Contains(html, "We close at noon on Friday.") {
		t.Fatalf("expected the message body in the rendered mail, got %q", html)
	}
}

func TestRenderOnboardingEmail(t *testing.T) {
	html, err := render(OnboardingEmail{Name: "Ada Lovelace"})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(html, "Ada Lovelace") {
		t.Fatalf("expected the name in the rendered mail, got %q", html)
	}
}

func TestRenderEscapesHTMLInPayload(t *testing.T) {
	html, err := render(BroadcastEmail{Title: "<script>alert(1)</script>"})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("expected payload to be escaped, got %q", html)
	}
}

package mailer

import (
	"bytes"
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Email is the closed set of messages this service sends. Each variant
// carries exactly the payload its template needs; the unexported method
// keeps the set closed.
type Email interface {
	templateName() string
}

// OTPEmail carries a password-reset one-time code.
type OTPEmail struct {
	Code string
}

func (OTPEmail) templateName() string { return "otp.html" }

// PasswordResetEmail confirms a completed password reset.
type PasswordResetEmail struct {
	Name string
}

func (PasswordResetEmail) templateName() string { return "password_reset.html" }

// PickupEmail confirms a pickup order to the requester.
type PickupEmail struct {
	Name        string
	OrderNumber string
}

func (PickupEmail) templateName() string { return "pickup.html" }

// BroadcastEmail is the owner's announcement to a recipient list.
type BroadcastEmail struct {
	Title   string
	Message string
}

func (BroadcastEmail) templateName() string { return "broadcast.html" }

// OnboardingEmail welcomes a newly registered customer.
type OnboardingEmail struct {
	Name string
}

func (OnboardingEmail) templateName() string { return "onboarding.html" }

func render(email Email) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, email.templateName(), email); err != nil {
		return "", err
	}
	return buf.String(), nil
}

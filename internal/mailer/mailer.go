package mailer

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer delivers HTML mail over implicit TLS (port 465 style SMTP). One
// instance is created at startup and shared by the handlers.
type Mailer struct {
	host     string
	port     string
	username string
	password string
	fromName string
}

func New(host, port, username, password, fromName string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		fromName: fromName,
	}
}

// Send delivers a single transactional email.
func (m *Mailer) Send(to, subject string, email Email) error {
	return m.deliver([]string{to}, "To: "+to, subject, email)
}

// SendBroadcast delivers one message BCC'd to every recipient.
func (m *Mailer) SendBroadcast(recipients []string, subject string, email Email) error {
	return m.deliver(recipients, "Bcc: "+strings.Join(recipients, ","), subject, email)
}

func (m *Mailer) deliver(recipients []string, addressHeader, subject string, email Email) error {
	body, err := render(email)
	if err != nil {
		return err
	}

	msg := []byte(
		fmt.Sprintf("From: %s <%s>\r\n", m.fromName, m.username) +
			addressHeader + "\r\n" +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body,
	)

	serverAddr := m.host + ":" + m.port

	conn, err := tls.Dial("tcp", serverAddr, &tls.Config{ServerName: m.host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		return err
	}
	defer client.Quit()

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := client.Auth(auth); err != nil {
		return err
	}

	if err := client.Mail(m.username); err != nil {
		return err
	}
	for _, rcpt := range recipients {
		if err := client.Rcpt(strings.TrimSpace(rcpt)); err != nil {
			return err
		}
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

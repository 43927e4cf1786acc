package utils

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/smtp"

	"github.com/alfons-cm/community-management-backend/config"
)

// Mailer sends plain-text mail over SMTP with STARTTLS. Without an SMTP
// host configured it logs the mail and reports success, which keeps local
// development working without a mail server.
type Mailer struct {
	Host     string
	Port     string
	Username string
	Password string
	FromName string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		FromName: cfg.SMTPFromName,
	}
}

func (m *Mailer) Send(ctx context.Context, from, to, subject, body string) error {
	if m.Host == "" {
		log.Printf("mail not sent (SMTP not configured): to=%s subject=%q", to, subject)
		return nil
	}

	client, err := smtp.Dial(m.Host + ":" + m.Port)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: m.Host}); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}
	if m.Username != "" {
		auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("authentication failed: %w", err)
		}
	}

	if err := client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	sender := from
	if m.FromName != "" {
		sender = fmt.Sprintf("%s <%s>", m.FromName, from)
	}
	msg := []byte(fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/plain; charset=UTF-8\r\n"+
		"\r\n%s", sender, to, subject, body))
	if _, err := w.Write(msg); err != nil {
		w.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}

	if err := client.Quit(); err != nil {
		log.Printf("SMTP QUIT failed: %v", err)
	}
	return nil
}

/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package reminders

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/humaidq/medimind/db"
)

// SMTPConfig holds the mail relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether enough is configured to send mail.
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.From != ""
}

// sendFunc matches smtp.SendMail.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailNotifier sends reminders to the owner's email address. Port 465
// uses implicit TLS, any other port uses STARTTLS when offered.
type EmailNotifier struct {
	config SMTPConfig
	send   sendFunc
	now    func() time.Time
}

// NewEmailNotifier returns a notifier for cfg.
func NewEmailNotifier(cfg SMTPConfig) (*EmailNotifier, error) {
	if !cfg.Enabled() {
		return nil, errSMTPNotConfigured
	}

	if cfg.Port == 0 {
		cfg.Port = 465
	}

	n := &EmailNotifier{config: cfg, now: time.Now}
	if cfg.Port == 465 {
		n.send = n.sendImplicitTLS
	} else {
		n.send = smtp.SendMail
	}

	return n, nil
}

// Name implements Notifier.
func (n *EmailNotifier) Name() string { return "email" }

// Notify implements Notifier.
func (n *EmailNotifier) Notify(_ context.Context, r db.Reminder) error {
	to := strings.TrimSpace(r.Email)
	if to == "" {
		return ErrNoRecipient
	}

	var auth smtp.Auth
	if n.config.Username != "" {
		auth = smtp.PlainAuth("", n.config.Username, n.config.Password, n.config.Host)
	}

	addr := net.JoinHostPort(n.config.Host, strconv.Itoa(n.config.Port))

	if err := n.send(addr, auth, n.config.From, []string{to}, n.message(to, r)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.Info("Sent reminder email", "reminder_id", r.ID, "to", to)

	return nil
}

func (n *EmailNotifier) message(to string, r db.Reminder) []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "From: %s\r\n", n.config.From)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", n.now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	b.WriteString(strings.ReplaceAll(Body(r), "\n", "\r\n"))

	return b.Bytes()
}

func (n *EmailNotifier) sendImplicitTLS(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: n.config.Host, MinVersion: tls.VersionTLS12})
	if err != nil {
		return fmt.Errorf("failed to dial %s: %w", addr, err)
	}

	c, err := smtp.NewClient(conn, n.config.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to start SMTP session: %w", err)
	}

	defer func() {
		if err := c.Close(); err != nil {
			logger.Debug("SMTP close failed", "error", err)
		}
	}()

	if a != nil {
		if err := c.Auth(a); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err := c.Mail(from); err != nil {
		return err
	}

	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return err
		}
	}

	w, err := c.Data()
	if err != nil {
		return err
	}

	if _, err := w.Write(msg); err != nil {
		return err
	}

	if err := w.Close(); err != nil {
		return err
	}

	return c.Quit()
}

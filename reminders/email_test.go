// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package reminders

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"
)

func TestNewEmailNotifierRequiresConfig(t *testing.T) {
	t.Parallel()

	if _, err := NewEmailNotifier(SMTPConfig{Host: "smtp.example.com"}); !errors.Is(err, errSMTPNotConfigured) {
		t.Fatalf("expected errSMTPNotConfigured, got %v", err)
	}

	n, err := NewEmailNotifier(SMTPConfig{Host: "smtp.example.com", From: "medimind@example.com"})
	if err != nil {
		t.Fatalf("NewEmailNotifier failed: %v", err)
	}

	if n.config.Port != 465 {
		t.Fatalf("expected implicit TLS port by default, got %d", n.config.Port)
	}
}

func TestEmailNotifierNotify(t *testing.T) {
	t.Parallel()

	n, err := NewEmailNotifier(SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "medimind",
		Password: "secret",
		From:     "medimind@example.com",
	})
	if err != nil {
		t.Fatalf("NewEmailNotifier failed: %v", err)
	}

	n.now = func() time.Time { return time.Date(2025, time.June, 1, 3, 0, 0, 0, time.UTC) }

	var (
		gotAddr string
		gotTo   []string
		gotMsg  string
		gotAuth smtp.Auth
	)

	n.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotTo, gotMsg = addr, a, to, string(msg)
		return nil
	}

	if err := n.Notify(context.Background(), sampleReminder()); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}

	if gotAddr != "smtp.example.com:587" || gotAuth == nil {
		t.Fatalf("unexpected relay %q (auth %v)", gotAddr, gotAuth)
	}

	if len(gotTo) != 1 || gotTo[0] != "asha@example.com" {
		t.Fatalf("unexpected recipients %v", gotTo)
	}

	for _, want := range []string{
		"To: asha@example.com\r\n",
		"Subject: =?utf-8?q?",
		"Date: Sun, 01 Jun 2025 03:00:00 +0000\r\n",
		"Content-Type: text/plain; charset=utf-8\r\n",
		"Name: Hepatitis B dose 2\r\n",
	} {
		if !strings.Contains(gotMsg, want) {
			t.Fatalf("expected message to contain %q, got %q", want, gotMsg)
		}
	}
}

func TestEmailNotifierErrors(t *testing.T) {
	t.Parallel()

	n, _ := NewEmailNotifier(SMTPConfig{Host: "smtp.example.com", Port: 25, From: "medimind@example.com"})

	relayErr := errors.New("connection refused")
	n.send = func(string, smtp.Auth, string, []string, []byte) error { return relayErr }

	if err := n.Notify(context.Background(), sampleReminder()); !errors.Is(err, relayErr) {
		t.Fatalf("expected relay error, got %v", err)
	}

	r := sampleReminder()
	r.Email = " "

	if err := n.Notify(context.Background(), r); !errors.Is(err, ErrNoRecipient) {
		t.Fatalf("expected ErrNoRecipient, got %v", err)
	}
}

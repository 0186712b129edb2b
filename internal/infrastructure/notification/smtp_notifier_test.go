package notification

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"agency_billing/internal/usecase/interfaces"

	"github.com/emersion/go-sasl"
)

type capturedMail struct {
	addr string
	auth bool
	from string
	to   []string
	body string
}

func newTestNotifier(cfg SMTPConfig, out *capturedMail, sendErr error) *SMTPNotifier {
	n := NewSMTPNotifier(cfg)
	n.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	n.send = func(addr string, auth sasl.Client, from string, to []string, msg io.Reader) error {
		b, _ := io.ReadAll(msg)
		*out = capturedMail{addr: addr, auth: auth != nil, from: from, to: to, body: string(b)}
		return sendErr
	}
	return n
}

func TestSMTPNotifier_Send(t *testing.T) {
	cfg := SMTPConfig{Host: "smtp.local", Port: 2525, Username: "u", Password: "p", From: "agence@x.com", AdminEmail: "admin@x.com"}

	t.Run("quote received copies admin", func(t *testing.T) {
		var got capturedMail
		n := newTestNotifier(cfg, &got, nil)

		err := n.Send(context.Background(), interfaces.Notification{
			Kind: interfaces.NotificationQuoteReceived, To: "alice@x.com", Name: "Alice", Reference: "DEVIS-2026-00001",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.addr != "smtp.local:2525" || !got.auth || got.from != "agence@x.com" {
			t.Fatalf("unexpected envelope: %+v", got)
		}
		if len(got.to) != 2 || got.to[1] != "admin@x.com" {
			t.Fatalf("expected admin in recipients, got %v", got.to)
		}
		if !strings.Contains(got.body, "DEVIS-2026-00001") || !strings.Contains(got.body, "Cc: <admin@x.com>") {
			t.Fatalf("unexpected message:\n%s", got.body)
		}
	})

	t.Run("order confirmed goes to customer only", func(t *testing.T) {
		var got capturedMail
		n := newTestNotifier(cfg, &got, nil)

		err := n.Send(context.Background(), interfaces.Notification{
			Kind: interfaces.NotificationOrderConfirmed, To: "bob@x.com", Reference: "CMD-2026-00002", Amount: "1200.00", Currency: "eur",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got.to) != 1 || !strings.Contains(got.body, "1200.00 EUR") {
			t.Fatalf("unexpected mail: %+v", got)
		}
	})

	t.Run("send error is returned", func(t *testing.T) {
		var got capturedMail
		n := newTestNotifier(cfg, &got, errors.New("connection refused"))
		err := n.Send(context.Background(), interfaces.Notification{Kind: interfaces.NotificationQuoteSent, To: "bob@x.com"})
		if err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		var got capturedMail
		n := newTestNotifier(cfg, &got, nil)
		if err := n.Send(context.Background(), interfaces.Notification{Kind: "newsletter", To: "bob@x.com"}); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("no host skips delivery", func(t *testing.T) {
		var got capturedMail
		n := newTestNotifier(SMTPConfig{From: "agence@x.com"}, &got, errors.New("must not be called"))
		err := n.Send(context.Background(), interfaces.Notification{Kind: interfaces.NotificationQuoteSent, To: "bob@x.com"})
		if err != nil || got.addr != "" {
			t.Fatalf("expected silent skip, got %v %+v", err, got)
		}
	})
}

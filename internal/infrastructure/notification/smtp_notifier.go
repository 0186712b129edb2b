package notification

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"agency_billing/internal/usecase/interfaces"

	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
)

type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	AdminEmail string
}

type sendFunc func(addr string, auth sasl.Client, from string, to []string, msg io.Reader) error

// SMTPNotifier composes notification e-mails and relays them through SMTP.
// With no host configured messages are only logged.
type SMTPNotifier struct {
	cfg  SMTPConfig
	send sendFunc
	now  func() time.Time
}

var _ interfaces.INotifier = (*SMTPNotifier)(nil)

func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, send: smtp.SendMail, now: time.Now}
}

func (n *SMTPNotifier) Send(ctx context.Context, msg interfaces.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	subject, body, err := render(msg)
	if err != nil {
		return err
	}
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("notification %s: empty recipient", msg.Kind)
	}

	var cc []string
	if msg.Kind == interfaces.NotificationQuoteReceived && n.cfg.AdminEmail != "" && !strings.EqualFold(n.cfg.AdminEmail, msg.To) {
		cc = append(cc, n.cfg.AdminEmail)
	}

	raw, err := n.compose(msg, cc, subject, body)
	if err != nil {
		return err
	}

	if n.cfg.Host == "" {
		log.Printf("[notification][smtp] host not configured, skipping kind=%s to=%s", msg.Kind, msg.To)
		return nil
	}

	var auth sasl.Client
	if n.cfg.Username != "" {
		auth = sasl.NewPlainClient("", n.cfg.Username, n.cfg.Password)
	}
	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)
	recipients := append([]string{msg.To}, cc...)
	if err := n.send(addr, auth, n.cfg.From, recipients, bytes.NewReader(raw)); err != nil {
		log.Printf("[notification][smtp] send failed kind=%s to=%s err=%v", msg.Kind, msg.To, err)
		return err
	}
	log.Printf("[notification][smtp] sent kind=%s to=%s reference=%s", msg.Kind, msg.To, msg.Reference)
	return nil
}

func (n *SMTPNotifier) compose(msg interfaces.Notification, cc []string, subject, body string) ([]byte, error) {
	var h mail.Header
	h.SetDate(n.now())
	h.SetSubject(subject)
	h.SetAddressList("From", []*mail.Address{{Address: n.cfg.From}})
	h.SetAddressList("To", []*mail.Address{{Name: msg.Name, Address: msg.To}})
	if len(cc) > 0 {
		list := make([]*mail.Address, 0, len(cc))
		for _, a := range cc {
			list = append(list, &mail.Address{Address: a})
		}
		h.SetAddressList("Cc", list)
	}
	h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})

	var buf bytes.Buffer
	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(w, body); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func render(msg interfaces.Notification) (subject, body string, err error) {
	greeting := "Bonjour"
	if msg.Name != "" {
		greeting += " " + msg.Name
	}
	amount := strings.TrimSpace(msg.Amount + " " + strings.ToUpper(msg.Currency))

	switch msg.Kind {
	case interfaces.NotificationQuoteReceived:
		subject = fmt.Sprintf("Demande de devis %s reçue", msg.Reference)
		body = fmt.Sprintf("%s,\n\nNous avons bien reçu votre demande de devis %s.\nNous revenons vers vous rapidement avec une proposition.\n", greeting, msg.Reference)
	case interfaces.NotificationQuoteSent:
		subject = fmt.Sprintf("Votre devis %s est disponible", msg.Reference)
		body = fmt.Sprintf("%s,\n\nVotre devis %s est prêt pour un montant de %s.\nConnectez-vous à votre espace client pour l'accepter et régler l'acompte.\n", greeting, msg.Reference, amount)
	case interfaces.NotificationOrderConfirmed:
		subject = fmt.Sprintf("Confirmation de votre commande %s", msg.Reference)
		body = fmt.Sprintf("%s,\n\nNous confirmons le paiement de votre commande %s (%s).\nVotre facture est disponible dans votre espace client.\n", greeting, msg.Reference, amount)
	default:
		return "", "", fmt.Errorf("unknown notification kind %q", msg.Kind)
	}
	return subject, body, nil
}

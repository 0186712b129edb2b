package usecase

import (
	"context"
	"errors"
	"log"
	"net/mail"
	"sort"
	"strings"
	"time"

	"agency_billing/internal/domain/entities"
	"agency_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrQuoteNotFound      = errors.New("quote not found")
	ErrInvalidQuoteID     = errors.New("invalid quote id")
	ErrQuoteNotPriced     = errors.New("quote has no proposed amount")
	ErrQuoteNotAcceptable = errors.New("quote is not awaiting acceptance")
	ErrQuoteExpired       = errors.New("quote validity has expired")
	ErrQuoteLocked        = errors.New("quote is closed")
)

const (
	minDescriptionLength = 15
	defaultQuoteValidity = 30 * 24 * time.Hour
)

type QuoteSubmission struct {
	Name        string
	Email       string
	Phone       string
	SiteType    string
	Budget      string
	Deadline    string
	Description string
}

// QuoteUpdate carries admin edits; nil fields are left untouched.
type QuoteUpdate struct {
	Status         *entities.QuoteStatus
	ProposedAmount *decimal.Decimal
	ValidUntil     *time.Time
	AdminNotes     *string
}

// PaymentIntentResult is what the client needs to complete a payment out-of-band.
type PaymentIntentResult struct {
	PaymentIntentID string
	ClientSecret    string
	Amount          decimal.Decimal
	Currency        string
}

// IQuoteUseCase exposes the quote lifecycle, from public submission to acceptance.
type IQuoteUseCase interface {
	SubmitQuote(ctx context.Context, principal entities.Principal, in QuoteSubmission) (entities.Quote, error)
	GetQuote(ctx context.Context, principal entities.Principal, id string) (entities.Quote, error)
	ListQuotes(ctx context.Context, principal entities.Principal) ([]entities.Quote, error)
	AdminUpdateQuote(ctx context.Context, principal entities.Principal, id string, in QuoteUpdate) (entities.Quote, error)
	LinkQuotesToUser(ctx context.Context, principal entities.Principal) ([]entities.Quote, error)
	InitQuoteDepositPayment(ctx context.Context, principal entities.Principal, id string) (PaymentIntentResult, error)
	AcceptQuoteAndCreateOrder(ctx context.Context, principal entities.Principal, id, paymentIntentID string) (entities.Order, error)
}

type QuoteUseCase struct {
	quotes   interfaces.IQuoteRepository
	orders   interfaces.IOrderRepository
	users    interfaces.IUserRepository
	intents  interfaces.IPaymentIntentGateway
	ids      *IdentifierAllocator
	notifier interfaces.INotifier
	currency string
	now      func() time.Time
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(
	quotes interfaces.IQuoteRepository,
	orders interfaces.IOrderRepository,
	users interfaces.IUserRepository,
	intents interfaces.IPaymentIntentGateway,
	ids *IdentifierAllocator,
	notifier interfaces.INotifier,
	currency string,
) *QuoteUseCase {
	return &QuoteUseCase{
		quotes:   quotes,
		orders:   orders,
		users:    users,
		intents:  intents,
		ids:      ids,
		notifier: notifier,
		currency: currency,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (u *QuoteUseCase) SubmitQuote(ctx context.Context, principal entities.Principal, in QuoteSubmission) (entities.Quote, error) {
	in = trimSubmission(in)
	if err := validateSubmission(in); err != nil {
		return entities.Quote{}, err
	}

	now := u.now()
	q := entities.Quote{
		ID:          uuid.NewString(),
		UserID:      principal.UserID,
		Name:        in.Name,
		Email:       strings.ToLower(in.Email),
		Phone:       in.Phone,
		SiteType:    in.SiteType,
		Budget:      in.Budget,
		Deadline:    in.Deadline,
		Description: in.Description,
		Status:      entities.QuoteStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var created entities.Quote
	_, err := u.ids.Allocate(ctx, entities.QuoteNumberPrefix, func(number string) error {
		q.QuoteNumber = number
		var err error
		created, err = u.quotes.Create(ctx, q)
		return err
	})
	if err != nil {
		log.Printf("[quote][usecase] submit failed email=%s err=%v", q.Email, err)
		return entities.Quote{}, err
	}
	log.Printf("[quote][usecase] submitted quote_id=%s quote_number=%s owner=%q", created.ID, created.QuoteNumber, created.UserID)

	notify(ctx, u.notifier, interfaces.Notification{
		Kind:      interfaces.NotificationQuoteReceived,
		To:        created.Email,
		Name:      created.Name,
		Reference: created.QuoteNumber,
	})
	return created, nil
}

func trimSubmission(in QuoteSubmission) QuoteSubmission {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.SiteType = strings.TrimSpace(in.SiteType)
	in.Budget = strings.TrimSpace(in.Budget)
	in.Deadline = strings.TrimSpace(in.Deadline)
	in.Description = strings.TrimSpace(in.Description)
	return in
}

func validateSubmission(in QuoteSubmission) error {
	required := []struct{ field, value string }{
		{"name", in.Name},
		{"email", in.Email},
		{"site_type", in.SiteType},
		{"budget", in.Budget},
		{"deadline", in.Deadline},
		{"description", in.Description},
	}
	for _, r := range required {
		if r.value == "" {
			return invalidField(r.field, "is required")
		}
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return invalidField("email", "is not a valid address")
	}
	if len([]rune(in.Description)) < minDescriptionLength {
		return invalidField("description", "must be at least 15 characters")
	}
	return nil
}

func (u *QuoteUseCase) GetQuote(ctx context.Context, principal entities.Principal, id string) (entities.Quote, error) {
	if err := requirePrincipal(principal); err != nil {
		return entities.Quote{}, err
	}
	q, err := u.load(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if !principal.CanAccess(q.UserID, q.Email) {
		return entities.Quote{}, ErrForbidden
	}
	return q, nil
}

func (u *QuoteUseCase) ListQuotes(ctx context.Context, principal entities.Principal) ([]entities.Quote, error) {
	if err := requirePrincipal(principal); err != nil {
		return nil, err
	}
	if principal.IsAdmin() {
		return u.quotes.ListAll(ctx)
	}

	owned, err := u.quotes.ListByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	byEmail, err := u.quotes.ListByEmail(ctx, strings.ToLower(principal.Email))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(owned)+len(byEmail))
	out := make([]entities.Quote, 0, len(owned)+len(byEmail))
	for _, q := range append(owned, byEmail...) {
		if seen[q.ID] {
			continue
		}
		seen[q.ID] = true
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (u *QuoteUseCase) AdminUpdateQuote(ctx context.Context, principal entities.Principal, id string, in QuoteUpdate) (entities.Quote, error) {
	if err := requireAdmin(principal); err != nil {
		return entities.Quote{}, err
	}
	q, err := u.load(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if in.ProposedAmount != nil && q.Status.Closed() {
		return entities.Quote{}, ErrQuoteLocked
	}
	if in.Status != nil && in.Status.Valid() && !q.Status.CanTransition(*in.Status) {
		log.Printf("[quote][usecase] transition refused quote_id=%s from=%s to=%s", q.ID, q.Status, *in.Status)
		return entities.Quote{}, ErrQuoteLocked
	}

	now := u.now()
	if in.ProposedAmount != nil {
		if !in.ProposedAmount.IsPositive() {
			return entities.Quote{}, invalidField("proposed_amount", "must be greater than zero")
		}
		amount := entities.RoundMoney(*in.ProposedAmount)
		q.ProposedAmount = &amount
	}
	if in.ValidUntil != nil {
		v := in.ValidUntil.UTC()
		q.ValidUntil = &v
	}
	if in.AdminNotes != nil {
		q.AdminNotes = strings.TrimSpace(*in.AdminNotes)
	}

	sent := false
	if in.Status != nil {
		status := *in.Status
		if !status.Valid() || status == entities.QuoteStatusAccepted {
			return entities.Quote{}, invalidField("status", "is not an admin-settable status")
		}
		switch status {
		case entities.QuoteStatusReviewed:
			q.ReviewedAt = &now
		case entities.QuoteStatusSent:
			if q.ProposedAmount == nil {
				return entities.Quote{}, ErrQuoteNotPriced
			}
			q.SentAt = &now
			if q.ValidUntil == nil {
				validUntil := now.Add(defaultQuoteValidity)
				q.ValidUntil = &validUntil
			}
			sent = q.Status != entities.QuoteStatusSent
		}
		q.Status = status
	}
	q.UpdatedAt = now

	updated, err := u.quotes.Update(ctx, q)
	if err != nil {
		return entities.Quote{}, err
	}
	log.Printf("[quote][usecase] admin update quote_id=%s status=%s", updated.ID, updated.Status)

	if sent {
		notify(ctx, u.notifier, interfaces.Notification{
			Kind:      interfaces.NotificationQuoteSent,
			To:        updated.Email,
			Name:      updated.Name,
			Reference: updated.QuoteNumber,
			Amount:    updated.ProposedAmount.StringFixed(2),
			Currency:  u.currency,
		})
	}
	return updated, nil
}

func (u *QuoteUseCase) LinkQuotesToUser(ctx context.Context, principal entities.Principal) ([]entities.Quote, error) {
	if err := requirePrincipal(principal); err != nil {
		return nil, err
	}
	if strings.TrimSpace(principal.Email) == "" {
		return nil, invalidField("email", "is required to link quotes")
	}

	candidates, err := u.quotes.ListByEmail(ctx, strings.ToLower(principal.Email))
	if err != nil {
		return nil, err
	}
	linked := make([]entities.Quote, 0, len(candidates))
	for _, q := range candidates {
		if q.HasOwner() || !strings.EqualFold(q.Email, principal.Email) {
			continue
		}
		q.UserID = principal.UserID
		q.UpdatedAt = u.now()
		updated, err := u.quotes.Update(ctx, q)
		if err != nil {
			return nil, err
		}
		linked = append(linked, updated)
	}
	log.Printf("[quote][usecase] linked quotes user_id=%s count=%d", principal.UserID, len(linked))
	return linked, nil
}

func (u *QuoteUseCase) InitQuoteDepositPayment(ctx context.Context, principal entities.Principal, id string) (PaymentIntentResult, error) {
	q, err := u.loadPayable(ctx, principal, id)
	if err != nil {
		return PaymentIntentResult{}, err
	}

	deposit, _ := entities.SplitDeposit(*q.ProposedAmount)
	intent, err := u.intents.CreateIntent(ctx, interfaces.PaymentIntentRequest{
		Amount:      deposit,
		Currency:    u.currency,
		Description: "Acompte devis " + q.QuoteNumber,
		Metadata: map[string]string{
			interfaces.MetadataType:        interfaces.PaymentTypeQuoteDeposit,
			interfaces.MetadataQuoteID:     q.ID,
			interfaces.MetadataQuoteNumber: q.QuoteNumber,
		},
	})
	if err != nil {
		log.Printf("[quote][usecase] create intent failed quote_id=%s err=%v", q.ID, err)
		return PaymentIntentResult{}, providerError(err)
	}

	q.DepositPaymentIntentID = intent.ID
	q.UpdatedAt = u.now()
	if _, err := u.quotes.Update(ctx, q); err != nil {
		return PaymentIntentResult{}, err
	}
	log.Printf("[quote][usecase] deposit intent created quote_id=%s intent_id=%s amount=%s", q.ID, intent.ID, deposit)

	return PaymentIntentResult{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Amount:          deposit,
		Currency:        u.currency,
	}, nil
}

// AcceptQuoteAndCreateOrder turns a priced, deposit-paid quote into an order.
//
// The quote update and the order insert are separate writes. If the insert fails the
// quote is put back to its previous status on a best-effort basis.
func (u *QuoteUseCase) AcceptQuoteAndCreateOrder(ctx context.Context, principal entities.Principal, id, paymentIntentID string) (entities.Order, error) {
	log.Printf("[quote][usecase] accept start quote_id=%s user_id=%s", id, principal.UserID)
	q, err := u.loadPayable(ctx, principal, id)
	if err != nil {
		return entities.Order{}, err
	}

	paymentIntentID = strings.TrimSpace(paymentIntentID)
	if paymentIntentID == "" {
		return entities.Order{}, ErrPaymentIntentRequired
	}
	intent, err := u.intents.GetIntent(ctx, paymentIntentID)
	if err != nil {
		log.Printf("[quote][usecase] intent lookup failed quote_id=%s intent_id=%s err=%v", q.ID, paymentIntentID, err)
		return entities.Order{}, providerError(err)
	}
	if !intent.Succeeded() {
		return entities.Order{}, ErrPaymentNotSucceeded
	}
	if !intentFor(intent, interfaces.PaymentTypeQuoteDeposit, interfaces.MetadataQuoteID, q.ID, u.currency) {
		log.Printf("[quote][usecase] intent belongs elsewhere quote_id=%s intent_id=%s intent_type=%q intent_quote_id=%q currency=%s",
			q.ID, intent.ID, intent.Metadata[interfaces.MetadataType], intent.Metadata[interfaces.MetadataQuoteID], intent.Currency)
		return entities.Order{}, ErrPaymentMismatch
	}
	deposit, _ := entities.SplitDeposit(*q.ProposedAmount)
	if !entities.Covers(intent.AmountReceived, deposit) {
		log.Printf("[quote][usecase] deposit short quote_id=%s received=%s required=%s", q.ID, intent.AmountReceived, deposit)
		return entities.Order{}, ErrInsufficientPayment
	}

	now := u.now()
	previous := q
	order := entities.Order{
		ID:       uuid.NewString(),
		Currency: u.currency,
		Status:   entities.OrderStatusPending,
		Metadata: entities.FromQuoteMetadata(q.ID, q.QuoteNumber),
		ProjectDetails: &entities.ProjectDetails{
			SiteType:     q.SiteType,
			Budget:       q.Budget,
			Deadline:     q.Deadline,
			Description:  q.Description,
			AgreedAmount: *q.ProposedAmount,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	q.Status = entities.QuoteStatusAccepted
	q.AcceptedAt = &now
	q.OrderID = order.ID
	if !q.HasOwner() {
		q.UserID = principal.UserID
	}
	q.MarkDepositPaid(intent.ID, now)
	q.UpdatedAt = now
	if _, err := u.quotes.Update(ctx, q); err != nil {
		return entities.Order{}, err
	}

	order.UserID = q.UserID
	order.Billing = u.billingFor(ctx, q)
	order.SetAmount(*q.ProposedAmount)
	order.PaymentStatus = entities.PaymentStatusUnpaid
	order.MarkDepositPaid(intent.ID, now)

	var created entities.Order
	_, err = u.ids.Allocate(ctx, entities.OrderNumberPrefix, func(number string) error {
		order.OrderNumber = number
		var err error
		created, err = u.orders.Create(ctx, order)
		return err
	})
	if err != nil {
		log.Printf("[quote][usecase] order create failed quote_id=%s err=%v", q.ID, err)
		previous.UpdatedAt = u.now()
		if _, rbErr := u.quotes.Update(ctx, previous); rbErr != nil {
			log.Printf("[quote][usecase] quote rollback failed quote_id=%s err=%v", q.ID, rbErr)
		}
		return entities.Order{}, err
	}
	log.Printf("[quote][usecase] accept success quote_id=%s order_id=%s order_number=%s payment_status=%s", q.ID, created.ID, created.OrderNumber, created.PaymentStatus)
	return created, nil
}

// loadPayable runs the checks shared by deposit initialisation and acceptance, in order:
// existence, access, priced, status, validity.
func (u *QuoteUseCase) loadPayable(ctx context.Context, principal entities.Principal, id string) (entities.Quote, error) {
	if err := requirePrincipal(principal); err != nil {
		return entities.Quote{}, err
	}
	q, err := u.load(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if !principal.CanAccess(q.UserID, q.Email) {
		log.Printf("[quote][usecase] access denied quote_id=%s user_id=%s", q.ID, principal.UserID)
		return entities.Quote{}, ErrForbidden
	}
	if q.ProposedAmount == nil || !q.ProposedAmount.IsPositive() {
		return entities.Quote{}, ErrQuoteNotPriced
	}
	if !q.Status.Acceptable() {
		return entities.Quote{}, ErrQuoteNotAcceptable
	}
	if q.Expired(u.now()) {
		return entities.Quote{}, ErrQuoteExpired
	}
	return q, nil
}

func (u *QuoteUseCase) billingFor(ctx context.Context, q entities.Quote) entities.BillingInfo {
	fallback := entities.BillingInfo{Name: q.Name, Email: q.Email, Phone: q.Phone}
	if q.UserID == "" || u.users == nil {
		return fallback
	}
	user, err := u.users.GetByID(ctx, q.UserID)
	if err != nil {
		log.Printf("[quote][usecase] user lookup failed user_id=%s err=%v", q.UserID, err)
		return fallback
	}
	if user.ID == "" {
		return fallback
	}
	b := user.BillingInfo()
	if b.Name == "" {
		b.Name = q.Name
	}
	if b.Email == "" {
		b.Email = q.Email
	}
	return b
}

func (u *QuoteUseCase) load(ctx context.Context, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	q, err := u.quotes.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}

func requirePrincipal(p entities.Principal) error {
	if p.UserID == "" {
		return ErrUnauthenticated
	}
	return nil
}

func requireAdmin(p entities.Principal) error {
	if err := requirePrincipal(p); err != nil {
		return err
	}
	if !p.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// notify sends best-effort: failures are logged and never returned.
func notify(ctx context.Context, n interfaces.INotifier, msg interfaces.Notification) {
	if n == nil || msg.To == "" {
		return
	}
	if err := n.Send(ctx, msg); err != nil {
		log.Printf("[notification][usecase] send failed kind=%s to=%s err=%v", msg.Kind, msg.To, err)
	}
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"agency_billing/internal/domain/entities"
	"agency_billing/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

var (
	ErrOrderCancelled     = errors.New("order is cancelled")
	ErrDepositNotPaid     = errors.New("deposit has not been paid")
	ErrDepositAlreadyPaid = errors.New("deposit already paid")
	ErrBalanceAlreadyPaid = errors.New("balance already paid")
)

// IPaidEffects runs the side effects of an order reaching paid or completed.
type IPaidEffects interface {
	ApplyPaidEffects(ctx context.Context, order entities.Order) error
}

var _ IPaidEffects = (*Fulfillment)(nil)

// IPaymentUseCase drives the two-part (deposit, balance) payment of an order.
//
// Confirm calls are a fast path for the client: the intent is always re-read from the
// provider before payment state changes. The webhook is the authoritative trigger.
type IPaymentUseCase interface {
	InitDeposit(ctx context.Context, principal entities.Principal, orderID string) (PaymentIntentResult, error)
	ConfirmDeposit(ctx context.Context, principal entities.Principal, orderID, paymentIntentID string) (entities.Order, error)
	InitBalance(ctx context.Context, principal entities.Principal, orderID string) (PaymentIntentResult, error)
	ConfirmBalance(ctx context.Context, principal entities.Principal, orderID, paymentIntentID string) (entities.Order, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type PaymentUseCase struct {
	orders  interfaces.IOrderRepository
	quotes  interfaces.IQuoteRepository
	intents interfaces.IPaymentIntentGateway
	effects IPaidEffects
	deduper interfaces.IEventDeduper
	now     func() time.Time
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

// NewPaymentUseCase wires the payment flow. deduper may be nil.
func NewPaymentUseCase(
	orders interfaces.IOrderRepository,
	quotes interfaces.IQuoteRepository,
	intents interfaces.IPaymentIntentGateway,
	effects IPaidEffects,
	deduper interfaces.IEventDeduper,
) *PaymentUseCase {
	return &PaymentUseCase{
		orders:  orders,
		quotes:  quotes,
		intents: intents,
		effects: effects,
		deduper: deduper,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (u *PaymentUseCase) InitDeposit(ctx context.Context, principal entities.Principal, orderID string) (PaymentIntentResult, error) {
	order, err := u.loadForPayment(ctx, principal, orderID)
	if err != nil {
		return PaymentIntentResult{}, err
	}
	if order.Deposit.Paid {
		return PaymentIntentResult{}, ErrDepositAlreadyPaid
	}
	return u.createIntent(ctx, order, interfaces.PaymentTypeOrderDeposit, order.Deposit.Amount, "Acompte commande "+order.OrderNumber)
}

func (u *PaymentUseCase) InitBalance(ctx context.Context, principal entities.Principal, orderID string) (PaymentIntentResult, error) {
	order, err := u.loadForPayment(ctx, principal, orderID)
	if err != nil {
		return PaymentIntentResult{}, err
	}
	if !order.Deposit.Paid {
		return PaymentIntentResult{}, ErrDepositNotPaid
	}
	if order.Balance.Paid || order.Balance.Amount.IsZero() {
		return PaymentIntentResult{}, ErrBalanceAlreadyPaid
	}
	return u.createIntent(ctx, order, interfaces.PaymentTypeOrderBalance, order.Balance.Amount, "Solde commande "+order.OrderNumber)
}

func (u *PaymentUseCase) createIntent(ctx context.Context, order entities.Order, paymentType string, amount decimal.Decimal, description string) (PaymentIntentResult, error) {
	intent, err := u.intents.CreateIntent(ctx, interfaces.PaymentIntentRequest{
		Amount:      amount,
		Currency:    order.Currency,
		Description: description,
		Metadata: map[string]string{
			interfaces.MetadataType:        paymentType,
			interfaces.MetadataOrderID:     order.ID,
			interfaces.MetadataOrderNumber: order.OrderNumber,
		},
	})
	if err != nil {
		log.Printf("[payment][usecase] create intent failed order_id=%s type=%s err=%v", order.ID, paymentType, err)
		return PaymentIntentResult{}, providerError(err)
	}
	log.Printf("[payment][usecase] intent created order_id=%s type=%s intent_id=%s amount=%s", order.ID, paymentType, intent.ID, amount)
	return PaymentIntentResult{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Amount:          amount,
		Currency:        order.Currency,
	}, nil
}

func (u *PaymentUseCase) ConfirmDeposit(ctx context.Context, principal entities.Principal, orderID, paymentIntentID string) (entities.Order, error) {
	order, err := u.loadForPayment(ctx, principal, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if order.Deposit.Paid {
		return order, u.reapplyEffects(ctx, order)
	}
	intent, err := u.verifyIntent(ctx, order, paymentIntentID, interfaces.PaymentTypeOrderDeposit, order.Deposit.Amount)
	if err != nil {
		return entities.Order{}, err
	}
	order.MarkDepositPaid(intent.ID, u.now())
	settle(&order)
	return u.persistPayment(ctx, order, "deposit")
}

// ConfirmBalance refuses to settle an order whose deposit is still unpaid.
func (u *PaymentUseCase) ConfirmBalance(ctx context.Context, principal entities.Principal, orderID, paymentIntentID string) (entities.Order, error) {
	order, err := u.loadForPayment(ctx, principal, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if !order.Deposit.Paid {
		log.Printf("[payment][usecase] balance before deposit order_id=%s", order.ID)
		return entities.Order{}, ErrDepositNotPaid
	}
	if order.Balance.Paid {
		return order, u.reapplyEffects(ctx, order)
	}
	intent, err := u.verifyIntent(ctx, order, paymentIntentID, interfaces.PaymentTypeOrderBalance, order.Balance.Amount)
	if err != nil {
		return entities.Order{}, err
	}
	if intent.ID == order.Deposit.PaymentIntentID {
		log.Printf("[payment][usecase] deposit intent reused for balance order_id=%s intent_id=%s", order.ID, intent.ID)
		return entities.Order{}, ErrPaymentMismatch
	}
	order.MarkBalancePaid(intent.ID, u.now())
	settle(&order)
	return u.persistPayment(ctx, order, "balance")
}

func (u *PaymentUseCase) verifyIntent(ctx context.Context, order entities.Order, paymentIntentID, kind string, required decimal.Decimal) (interfaces.PaymentIntent, error) {
	paymentIntentID = strings.TrimSpace(paymentIntentID)
	if paymentIntentID == "" {
		return interfaces.PaymentIntent{}, ErrPaymentIntentRequired
	}
	intent, err := u.intents.GetIntent(ctx, paymentIntentID)
	if err != nil {
		log.Printf("[payment][usecase] intent lookup failed order_id=%s intent_id=%s err=%v", order.ID, paymentIntentID, err)
		return interfaces.PaymentIntent{}, providerError(err)
	}
	if !intent.Succeeded() {
		return interfaces.PaymentIntent{}, ErrPaymentNotSucceeded
	}
	if !intentFor(intent, kind, interfaces.MetadataOrderID, order.ID, order.Currency) {
		log.Printf("[payment][usecase] intent belongs elsewhere order_id=%s intent_id=%s intent_type=%q intent_order_id=%q currency=%s",
			order.ID, intent.ID, intent.Metadata[interfaces.MetadataType], intent.Metadata[interfaces.MetadataOrderID], intent.Currency)
		return interfaces.PaymentIntent{}, ErrPaymentMismatch
	}
	if !entities.Covers(intent.AmountReceived, required) {
		log.Printf("[payment][usecase] payment short order_id=%s received=%s required=%s", order.ID, intent.AmountReceived, required)
		return interfaces.PaymentIntent{}, ErrInsufficientPayment
	}
	return intent, nil
}

// intentFor reports whether an intent was created for this payment part of this record,
// in the record's currency. The id key must be present.
func intentFor(intent interfaces.PaymentIntent, kind, idKey, id, currency string) bool {
	if id == "" || intent.Metadata[interfaces.MetadataType] != kind || intent.Metadata[idKey] != id {
		return false
	}
	return strings.EqualFold(intent.Currency, currency)
}

func (u *PaymentUseCase) persistPayment(ctx context.Context, order entities.Order, part string) (entities.Order, error) {
	updated, err := u.orders.Update(ctx, order)
	if err != nil {
		log.Printf("[payment][usecase] order update failed order_id=%s part=%s err=%v", order.ID, part, err)
		return entities.Order{}, err
	}
	log.Printf("[payment][usecase] %s recorded order_id=%s payment_status=%s status=%s", part, updated.ID, updated.PaymentStatus, updated.Status)
	if err := u.reapplyEffects(ctx, updated); err != nil {
		return entities.Order{}, err
	}
	return updated, nil
}

func (u *PaymentUseCase) reapplyEffects(ctx context.Context, order entities.Order) error {
	if !order.Status.TriggersFulfillment() || u.effects == nil {
		return nil
	}
	return u.effects.ApplyPaidEffects(ctx, order)
}

// HandleWebhook verifies and applies a provider event. Events that do not concern a known
// record return nil so the provider stops redelivering them; storage failures are returned
// so it retries.
func (u *PaymentUseCase) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := u.intents.ParseWebhook(payload, signature)
	if err != nil {
		log.Printf("[webhook][usecase] verification failed err=%v", err)
		return err
	}
	log.Printf("[webhook][usecase] received event_id=%s type=%s", event.ID, event.Type)

	if u.alreadyProcessed(ctx, event.ID) {
		log.Printf("[webhook][usecase] duplicate event ignored event_id=%s", event.ID)
		return nil
	}

	if event.Type != interfaces.EventPaymentIntentSucceeded || event.Intent == nil {
		log.Printf("[webhook][usecase] event type ignored event_id=%s type=%s", event.ID, event.Type)
		return nil
	}

	intent := *event.Intent
	switch kind := intent.Metadata[interfaces.MetadataType]; kind {
	case interfaces.PaymentTypeOrderDeposit, interfaces.PaymentTypeOrderBalance:
		err = u.applyOrderPayment(ctx, intent, kind)
	case interfaces.PaymentTypeQuoteDeposit:
		err = u.applyQuoteDeposit(ctx, intent)
	default:
		log.Printf("[webhook][usecase] payment type ignored event_id=%s type=%q", event.ID, kind)
	}
	if err != nil {
		log.Printf("[webhook][usecase] processing failed event_id=%s err=%v", event.ID, err)
		return err
	}

	if u.deduper != nil {
		if err := u.deduper.MarkProcessed(ctx, event.ID); err != nil {
			log.Printf("[webhook][usecase] dedupe mark failed event_id=%s err=%v", event.ID, err)
		}
	}
	return nil
}

func (u *PaymentUseCase) alreadyProcessed(ctx context.Context, eventID string) bool {
	if u.deduper == nil || eventID == "" {
		return false
	}
	seen, err := u.deduper.Seen(ctx, eventID)
	if err != nil {
		log.Printf("[webhook][usecase] dedupe lookup failed event_id=%s err=%v", eventID, err)
		return false
	}
	return seen
}

func (u *PaymentUseCase) applyOrderPayment(ctx context.Context, intent interfaces.PaymentIntent, kind string) error {
	orderID := intent.Metadata[interfaces.MetadataOrderID]
	if orderID == "" {
		log.Printf("[webhook][usecase] intent without order id intent_id=%s", intent.ID)
		return nil
	}
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.ID == "" {
		log.Printf("[webhook][usecase] unknown order ignored order_id=%s intent_id=%s", orderID, intent.ID)
		return nil
	}
	if order.Status == entities.OrderStatusCancelled {
		log.Printf("[webhook][usecase] payment on cancelled order order_id=%s intent_id=%s", order.ID, intent.ID)
		return nil
	}

	if !strings.EqualFold(intent.Currency, order.Currency) {
		log.Printf("[webhook][usecase] currency mismatch ignored order_id=%s intent_id=%s currency=%s want=%s", order.ID, intent.ID, intent.Currency, order.Currency)
		return nil
	}
	if kind == interfaces.PaymentTypeOrderBalance && intent.ID == order.Deposit.PaymentIntentID {
		log.Printf("[webhook][usecase] deposit intent reused for balance ignored order_id=%s intent_id=%s", order.ID, intent.ID)
		return nil
	}

	required := order.Deposit.Amount
	if kind == interfaces.PaymentTypeOrderBalance {
		required = order.Balance.Amount
	}
	if !entities.Covers(intent.AmountReceived, required) {
		log.Printf("[webhook][usecase] payment short ignored order_id=%s received=%s required=%s", order.ID, intent.AmountReceived, required)
		return nil
	}

	now := u.now()
	var changed bool
	if kind == interfaces.PaymentTypeOrderDeposit {
		changed = order.MarkDepositPaid(intent.ID, now)
	} else {
		changed = order.MarkBalancePaid(intent.ID, now)
		if !order.Deposit.Paid {
			log.Printf("[webhook][usecase] balance recorded before deposit order_id=%s", order.ID)
		}
	}
	if settle(&order) {
		changed = true
	}

	if changed {
		updated, err := u.orders.Update(ctx, order)
		if err != nil {
			return err
		}
		order = updated
		log.Printf("[webhook][usecase] order payment recorded order_id=%s type=%s payment_status=%s status=%s", order.ID, kind, order.PaymentStatus, order.Status)
	}
	return u.reapplyEffects(ctx, order)
}

func (u *PaymentUseCase) applyQuoteDeposit(ctx context.Context, intent interfaces.PaymentIntent) error {
	quoteID := intent.Metadata[interfaces.MetadataQuoteID]
	if quoteID == "" || u.quotes == nil {
		log.Printf("[webhook][usecase] intent without quote id intent_id=%s", intent.ID)
		return nil
	}
	q, err := u.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return err
	}
	if q.ID == "" {
		log.Printf("[webhook][usecase] unknown quote ignored quote_id=%s intent_id=%s", quoteID, intent.ID)
		return nil
	}
	if !q.MarkDepositPaid(intent.ID, u.now()) {
		return nil
	}
	if _, err := u.quotes.Update(ctx, q); err != nil {
		return err
	}
	log.Printf("[webhook][usecase] quote deposit recorded quote_id=%s intent_id=%s", q.ID, intent.ID)
	return nil
}

func (u *PaymentUseCase) loadForPayment(ctx context.Context, principal entities.Principal, orderID string) (entities.Order, error) {
	order, err := loadAuthorizedOrder(ctx, u.orders, principal, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if order.Status == entities.OrderStatusCancelled {
		return entities.Order{}, ErrOrderCancelled
	}
	return order, nil
}

// settle completes a fully paid order. It reports whether the status changed.
func settle(order *entities.Order) bool {
	if !order.FullyPaid() || order.Status == entities.OrderStatusCompleted {
		return false
	}
	if !entities.CanTransition(order.Status, entities.OrderStatusCompleted) {
		return false
	}
	order.Status = entities.OrderStatusCompleted
	return true
}

func loadAuthorizedOrder(ctx context.Context, orders interfaces.IOrderRepository, principal entities.Principal, orderID string) (entities.Order, error) {
	if err := requirePrincipal(principal); err != nil {
		return entities.Order{}, err
	}
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.Order{}, ErrInvalidOrderID
	}
	order, err := orders.GetByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, fmt.Errorf("load order %s: %w", orderID, err)
	}
	if order.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	if !principal.IsAdmin() && order.UserID != principal.UserID {
		log.Printf("[order][usecase] access denied order_id=%s user_id=%s", order.ID, principal.UserID)
		return entities.Order{}, ErrForbidden
	}
	return order, nil
}

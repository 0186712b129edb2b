package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"agency_billing/internal/domain/entities"
	"agency_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound           = errors.New("order not found")
	ErrInvalidOrderID          = errors.New("invalid order id")
	ErrOfferNotFound           = errors.New("offer not found")
	ErrInvalidStatusTransition = errors.New("order status transition not allowed")
	ErrOrderNotCancellable     = errors.New("only pending orders without payment can be cancelled")
	ErrOrderAmountLocked       = errors.New("order amount cannot change once a payment was made")
	ErrCheckoutRequired        = errors.New("checkout id is required")
)

// CheckoutResult is a freshly created order plus the provider page the buyer must approve.
type CheckoutResult struct {
	Order       entities.Order
	CheckoutID  string
	ApprovalURL string
}

type IOrderUseCase interface {
	CreateCheckoutOrder(ctx context.Context, principal entities.Principal, offerID string) (CheckoutResult, error)
	CaptureCheckoutOrder(ctx context.Context, principal entities.Principal, orderID, checkoutID string) (entities.Order, error)
	GetOrder(ctx context.Context, principal entities.Principal, id string) (entities.Order, error)
	ListOrders(ctx context.Context, principal entities.Principal) ([]entities.Order, error)
	UpdateOrderStatus(ctx context.Context, principal entities.Principal, id string, status entities.OrderStatus) (entities.Order, error)
	CancelOrder(ctx context.Context, principal entities.Principal, id string) (entities.Order, error)
	UpdateOrderAmount(ctx context.Context, principal entities.Principal, id string, amount decimal.Decimal) (entities.Order, error)
}

type OrderUseCase struct {
	orders   interfaces.IOrderRepository
	offers   interfaces.IOfferRepository
	users    interfaces.IUserRepository
	checkout interfaces.ICheckoutGateway
	ids      *IdentifierAllocator
	effects  IPaidEffects
	currency string
	now      func() time.Time
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(
	orders interfaces.IOrderRepository,
	offers interfaces.IOfferRepository,
	users interfaces.IUserRepository,
	checkout interfaces.ICheckoutGateway,
	ids *IdentifierAllocator,
	effects IPaidEffects,
	currency string,
) *OrderUseCase {
	return &OrderUseCase{
		orders:   orders,
		offers:   offers,
		users:    users,
		checkout: checkout,
		ids:      ids,
		effects:  effects,
		currency: currency,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (u *OrderUseCase) CreateCheckoutOrder(ctx context.Context, principal entities.Principal, offerID string) (CheckoutResult, error) {
	if err := requirePrincipal(principal); err != nil {
		return CheckoutResult{}, err
	}
	offerID = strings.TrimSpace(offerID)
	if offerID == "" {
		return CheckoutResult{}, invalidField("offer_id", "is required")
	}
	offer, err := u.offers.GetByID(ctx, offerID)
	if err != nil {
		return CheckoutResult{}, err
	}
	if offer.ID == "" || !offer.Active {
		return CheckoutResult{}, ErrOfferNotFound
	}
	if !offer.Price.IsPositive() {
		return CheckoutResult{}, invalidField("offer_id", "offer has no price")
	}

	now := u.now()
	order := entities.Order{
		ID:            uuid.NewString(),
		UserID:        principal.UserID,
		Currency:      u.currency,
		Status:        entities.OrderStatusPending,
		PaymentStatus: entities.PaymentStatusUnpaid,
		Billing:       u.billingFor(ctx, principal),
		Metadata:      entities.ManualPurchaseMetadata(offer.ID, offer.Title),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	order.SetAmount(offer.Price)

	var created entities.Order
	_, err = u.ids.Allocate(ctx, entities.OrderNumberPrefix, func(number string) error {
		order.OrderNumber = number
		var err error
		created, err = u.orders.Create(ctx, order)
		return err
	})
	if err != nil {
		log.Printf("[order][usecase] checkout order create failed offer_id=%s err=%v", offer.ID, err)
		return CheckoutResult{}, err
	}

	checkout, err := u.checkout.CreateCheckout(ctx, interfaces.CheckoutRequest{
		Reference:   created.ID,
		Description: offer.Title,
		Amount:      created.Amount,
		Currency:    created.Currency,
	})
	if err != nil {
		log.Printf("[order][usecase] checkout create failed order_id=%s err=%v", created.ID, err)
		return CheckoutResult{}, providerError(err)
	}

	created.CheckoutID = checkout.ID
	created.UpdatedAt = u.now()
	updated, err := u.orders.Update(ctx, created)
	if err != nil {
		return CheckoutResult{}, err
	}
	log.Printf("[order][usecase] checkout created order_id=%s order_number=%s checkout_id=%s", updated.ID, updated.OrderNumber, checkout.ID)
	return CheckoutResult{Order: updated, CheckoutID: checkout.ID, ApprovalURL: checkout.ApprovalURL}, nil
}

func (u *OrderUseCase) CaptureCheckoutOrder(ctx context.Context, principal entities.Principal, orderID, checkoutID string) (entities.Order, error) {
	order, err := loadAuthorizedOrder(ctx, u.orders, principal, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if order.Status == entities.OrderStatusCancelled {
		return entities.Order{}, ErrOrderCancelled
	}
	checkoutID = strings.TrimSpace(checkoutID)
	if checkoutID == "" {
		checkoutID = order.CheckoutID
	}
	if checkoutID == "" {
		return entities.Order{}, ErrCheckoutRequired
	}
	if order.CheckoutID != "" && checkoutID != order.CheckoutID {
		return entities.Order{}, ErrPaymentMismatch
	}
	if order.FullyPaid() {
		return order, u.applyEffects(ctx, order)
	}

	capture, err := u.checkout.CaptureCheckout(ctx, checkoutID)
	if err != nil {
		log.Printf("[order][usecase] capture failed order_id=%s checkout_id=%s err=%v", order.ID, checkoutID, err)
		return entities.Order{}, providerError(err)
	}
	if !capture.Completed {
		log.Printf("[order][usecase] capture not completed order_id=%s status=%s", order.ID, capture.Status)
		return entities.Order{}, ErrPaymentNotSucceeded
	}
	if !capture.Amount.IsZero() && !entities.Covers(capture.Amount, order.Amount) {
		return entities.Order{}, ErrInsufficientPayment
	}

	now := u.now()
	order.CheckoutID = checkoutID
	order.MarkDepositPaid(capture.ID, now)
	order.MarkBalancePaid(capture.ID, now)
	if entities.CanTransition(order.Status, entities.OrderStatusPaid) {
		order.Status = entities.OrderStatusPaid
	}

	updated, err := u.orders.Update(ctx, order)
	if err != nil {
		return entities.Order{}, err
	}
	log.Printf("[order][usecase] capture recorded order_id=%s capture_id=%s", updated.ID, capture.ID)
	if err := u.applyEffects(ctx, updated); err != nil {
		return entities.Order{}, err
	}
	return updated, nil
}

func (u *OrderUseCase) GetOrder(ctx context.Context, principal entities.Principal, id string) (entities.Order, error) {
	return loadAuthorizedOrder(ctx, u.orders, principal, id)
}

func (u *OrderUseCase) ListOrders(ctx context.Context, principal entities.Principal) ([]entities.Order, error) {
	if err := requirePrincipal(principal); err != nil {
		return nil, err
	}
	if principal.IsAdmin() {
		return u.orders.ListAll(ctx)
	}
	return u.orders.ListByUserID(ctx, principal.UserID)
}

// UpdateOrderStatus applies an admin transition. Entering paid or completed runs the
// fulfillment bundle; if it fails the new status is kept and the error is returned so the
// admin can retry the same transition.
func (u *OrderUseCase) UpdateOrderStatus(ctx context.Context, principal entities.Principal, id string, status entities.OrderStatus) (entities.Order, error) {
	if err := requireAdmin(principal); err != nil {
		return entities.Order{}, err
	}
	if !status.Valid() {
		return entities.Order{}, invalidField("status", "is not a valid order status")
	}
	order, err := loadAuthorizedOrder(ctx, u.orders, principal, id)
	if err != nil {
		return entities.Order{}, err
	}
	if !entities.CanTransition(order.Status, status) {
		log.Printf("[order][usecase] transition refused order_id=%s from=%s to=%s", order.ID, order.Status, status)
		return entities.Order{}, ErrInvalidStatusTransition
	}
	if status == entities.OrderStatusCancelled && order.AnyPaid() {
		return entities.Order{}, ErrOrderNotCancellable
	}

	if order.Status != status {
		order.Status = status
		order.UpdatedAt = u.now()
		order, err = u.orders.Update(ctx, order)
		if err != nil {
			return entities.Order{}, err
		}
		log.Printf("[order][usecase] status updated order_id=%s status=%s", order.ID, order.Status)
	}

	if err := u.applyEffects(ctx, order); err != nil {
		log.Printf("[order][usecase] paid effects failed order_id=%s err=%v", order.ID, err)
		return entities.Order{}, err
	}
	return order, nil
}

func (u *OrderUseCase) CancelOrder(ctx context.Context, principal entities.Principal, id string) (entities.Order, error) {
	order, err := loadAuthorizedOrder(ctx, u.orders, principal, id)
	if err != nil {
		return entities.Order{}, err
	}
	if order.Status == entities.OrderStatusCancelled {
		return order, nil
	}
	if order.Status != entities.OrderStatusPending || order.AnyPaid() {
		return entities.Order{}, ErrOrderNotCancellable
	}
	order.Status = entities.OrderStatusCancelled
	order.UpdatedAt = u.now()
	updated, err := u.orders.Update(ctx, order)
	if err != nil {
		return entities.Order{}, err
	}
	log.Printf("[order][usecase] cancelled order_id=%s by=%s", updated.ID, principal.UserID)
	return updated, nil
}

func (u *OrderUseCase) UpdateOrderAmount(ctx context.Context, principal entities.Principal, id string, amount decimal.Decimal) (entities.Order, error) {
	if err := requireAdmin(principal); err != nil {
		return entities.Order{}, err
	}
	if !amount.IsPositive() {
		return entities.Order{}, invalidField("amount", "must be greater than zero")
	}
	order, err := loadAuthorizedOrder(ctx, u.orders, principal, id)
	if err != nil {
		return entities.Order{}, err
	}
	if order.Status == entities.OrderStatusCancelled {
		return entities.Order{}, ErrOrderCancelled
	}
	if order.AnyPaid() {
		return entities.Order{}, ErrOrderAmountLocked
	}

	order.SetAmount(amount)
	if order.ProjectDetails != nil {
		order.ProjectDetails.AgreedAmount = order.Amount
	}
	order.UpdatedAt = u.now()
	updated, err := u.orders.Update(ctx, order)
	if err != nil {
		return entities.Order{}, err
	}
	log.Printf("[order][usecase] amount updated order_id=%s amount=%s deposit=%s balance=%s", updated.ID, updated.Amount, updated.Deposit.Amount, updated.Balance.Amount)
	return updated, nil
}

func (u *OrderUseCase) applyEffects(ctx context.Context, order entities.Order) error {
	if !order.Status.TriggersFulfillment() || u.effects == nil {
		return nil
	}
	return u.effects.ApplyPaidEffects(ctx, order)
}

func (u *OrderUseCase) billingFor(ctx context.Context, principal entities.Principal) entities.BillingInfo {
	fallback := entities.BillingInfo{Email: principal.Email}
	if u.users == nil {
		return fallback
	}
	user, err := u.users.GetByID(ctx, principal.UserID)
	if err != nil || user.ID == "" {
		if err != nil {
			log.Printf("[order][usecase] user lookup failed user_id=%s err=%v", principal.UserID, err)
		}
		return fallback
	}
	b := user.BillingInfo()
	if b.Email == "" {
		b.Email = principal.Email
	}
	return b
}

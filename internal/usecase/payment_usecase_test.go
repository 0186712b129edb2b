package usecase

import (
	"context"
	"errors"
	"testing"

	"agency_billing/internal/domain/entities"
	"agency_billing/internal/usecase/interfaces"
	mock_interfaces "agency_billing/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func depositPaidOrder() entities.Order {
	o := entities.Order{ID: "ord-1", OrderNumber: "CMD-2026-00001", UserID: alicePrincipal.UserID, Currency: "eur", Status: entities.OrderStatusPending}
	o.SetAmount(dec("1000"))
	o.PaymentStatus = entities.PaymentStatusUnpaid
	return o
}

func TestPaymentUseCase_Init(t *testing.T) {
	t.Run("stranger is forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := NewPaymentUseCase(orders, nil, nil, nil, nil)

		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(depositPaidOrder(), nil)

		_, err := uc.InitDeposit(context.Background(), malloryPrincipal, "ord-1")
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("deposit intent carries order metadata", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		intents := mock_interfaces.NewMockIPaymentIntentGateway(ctrl)
		uc := NewPaymentUseCase(orders, nil, intents, nil, nil)

		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(depositPaidOrder(), nil)
		intents.EXPECT().CreateIntent(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req interfaces.PaymentIntentRequest) (interfaces.PaymentIntent, error) {
			if !req.Amount.Equal(dec("400")) || req.Metadata[interfaces.MetadataType] != interfaces.PaymentTypeOrderDeposit || req.Metadata[interfaces.MetadataOrderID] != "ord-1" {
				t.Fatalf("unexpected intent request %+v", req)
			}
			return interfaces.PaymentIntent{ID: "pi_1", ClientSecret: "secret"}, nil
		})

		res, err := uc.InitDeposit(context.Background(), alicePrincipal, "ord-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ClientSecret != "secret" || res.Currency != "eur" {
			t.Fatalf("unexpected result %+v", res)
		}
	})

	t.Run("provider failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		intents := mock_interfaces.NewMockIPaymentIntentGateway(ctrl)
		uc := NewPaymentUseCase(orders, nil, intents, nil, nil)

		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(depositPaidOrder(), nil)
		intents.EXPECT().CreateIntent(gomock.Any(), gomock.Any()).Return(interfaces.PaymentIntent{}, errors.New("api down"))

		_, err := uc.InitDeposit(context.Background(), alicePrincipal, "ord-1")
		if !errors.Is(err, ErrPaymentProvider) {
			t.Fatalf("expected ErrPaymentProvider, got %v", err)
		}
	})

	t.Run("balance before deposit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := NewPaymentUseCase(orders, nil, nil, nil, nil)

		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(depositPaidOrder(), nil)

		_, err := uc.InitBalance(context.Background(), alicePrincipal, "ord-1")
		if !errors.Is(err, ErrDepositNotPaid) {
			t.Fatalf("expected ErrDepositNotPaid, got %v", err)
		}
	})

	t.Run("cancelled order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := NewPaymentUseCase(orders, nil, nil, nil, nil)

		o := depositPaidOrder()
		o.Status = entities.OrderStatusCancelled
		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(o, nil)

		_, err := uc.InitDeposit(context.Background(), alicePrincipal, "ord-1")
		if !errors.Is(err, ErrOrderCancelled) {
			t.Fatalf("expected ErrOrderCancelled, got %v", err)
		}
	})
}

func TestPaymentUseCase_Confirm(t *testing.T) {
	t.Run("balance on a fresh order is refused", func(t *testing.T) {
		env := newTestEnv()
		ctx := context.Background()
		env.offers["offer-1"] = entities.Offer{ID: "offer-1", Title: "Site vitrine", Price: dec("1000"), Active: true}
		res, err := env.orderUC.CreateCheckoutOrder(ctx, alicePrincipal, "offer-1")
		if err != nil {
			t.Fatalf("create order: %v", err)
		}

		_, err = env.paymentUC.ConfirmBalance(ctx, alicePrincipal, res.Order.ID, "pi_whatever")
		if !errors.Is(err, ErrDepositNotPaid) {
			t.Fatalf("expected ErrDepositNotPaid, got %v", err)
		}
		got, _ := env.orders.GetByID(ctx, res.Order.ID)
		if got.Status == entities.OrderStatusCompleted || got.Balance.Paid {
			t.Fatalf("order must stay untouched, got %+v", got)
		}
	})

	t.Run("client confirm is re-verified", func(t *testing.T) {
		env := newTestEnv()
		ctx := context.Background()
		env.offers["offer-1"] = entities.Offer{ID: "offer-1", Title: "Site vitrine", Price: dec("1000"), Active: true}
		res, _ := env.orderUC.CreateCheckoutOrder(ctx, alicePrincipal, "offer-1")
		intent, err := env.paymentUC.InitDeposit(ctx, alicePrincipal, res.Order.ID)
		if err != nil {
			t.Fatalf("init deposit: %v", err)
		}

		if _, err := env.paymentUC.ConfirmDeposit(ctx, alicePrincipal, res.Order.ID, intent.PaymentIntentID); !errors.Is(err, ErrPaymentNotSucceeded) {
			t.Fatalf("expected ErrPaymentNotSucceeded, got %v", err)
		}

		env.intents.succeed(intent.PaymentIntentID, dec("400"))
		order, err := env.paymentUC.ConfirmDeposit(ctx, alicePrincipal, res.Order.ID, intent.PaymentIntentID)
		if err != nil {
			t.Fatalf("confirm deposit: %v", err)
		}
		if order.PaymentStatus != entities.PaymentStatusDepositPaid || order.Status != entities.OrderStatusPending {
			t.Fatalf("unexpected order state %s/%s", order.PaymentStatus, order.Status)
		}

		balance, err := env.paymentUC.InitBalance(ctx, alicePrincipal, res.Order.ID)
		if err != nil {
			t.Fatalf("init balance: %v", err)
		}
		if _, err := env.paymentUC.ConfirmBalance(ctx, alicePrincipal, res.Order.ID, intent.PaymentIntentID); !errors.Is(err, ErrPaymentMismatch) {
			t.Fatalf("reusing the deposit intent must not settle the balance, got %v", err)
		}
		env.intents.succeed(balance.PaymentIntentID, dec("600"))
		order, err = env.paymentUC.ConfirmBalance(ctx, alicePrincipal, res.Order.ID, balance.PaymentIntentID)
		if err != nil {
			t.Fatalf("confirm balance: %v", err)
		}
		if order.Status != entities.OrderStatusCompleted || order.PaymentStatus != entities.PaymentStatusPaid {
			t.Fatalf("expected completed/paid, got %s/%s", order.Status, order.PaymentStatus)
		}
		if env.invoices.table.len() != 1 || env.projects.table.len() != 1 {
			t.Fatalf("expected effects applied once")
		}

		again, err := env.paymentUC.ConfirmBalance(ctx, alicePrincipal, res.Order.ID, balance.PaymentIntentID)
		if err != nil || again.Status != entities.OrderStatusCompleted {
			t.Fatalf("repeat confirm should be a no-op, got %v", err)
		}
		if env.invoices.table.len() != 1 {
			t.Fatalf("repeat confirm duplicated the invoice")
		}
	})

	mismatches := []struct {
		name     string
		metadata map[string]string
		currency string
	}{
		{"intent of another order", map[string]string{interfaces.MetadataType: interfaces.PaymentTypeOrderDeposit, interfaces.MetadataOrderID: "ord-2"}, "eur"},
		{"intent without order id", map[string]string{interfaces.MetadataType: interfaces.PaymentTypeOrderDeposit}, "eur"},
		{"intent without metadata", nil, "eur"},
		{"balance intent used as deposit", map[string]string{interfaces.MetadataType: interfaces.PaymentTypeOrderBalance, interfaces.MetadataOrderID: "ord-1"}, "eur"},
		{"quote deposit intent", map[string]string{interfaces.MetadataType: interfaces.PaymentTypeQuoteDeposit, interfaces.MetadataQuoteID: "q-1"}, "eur"},
		{"other currency", map[string]string{interfaces.MetadataType: interfaces.PaymentTypeOrderDeposit, interfaces.MetadataOrderID: "ord-1"}, "usd"},
	}
	for _, tc := range mismatches {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			orders := mock_interfaces.NewMockIOrderRepository(ctrl)
			intents := mock_interfaces.NewMockIPaymentIntentGateway(ctrl)
			uc := NewPaymentUseCase(orders, nil, intents, nil, nil)

			orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(depositPaidOrder(), nil)
			intents.EXPECT().GetIntent(gomock.Any(), "pi_9").Return(interfaces.PaymentIntent{
				ID: "pi_9", Status: "succeeded", AmountReceived: dec("400"), Currency: tc.currency, Metadata: tc.metadata,
			}, nil)

			_, err := uc.ConfirmDeposit(context.Background(), alicePrincipal, "ord-1", "pi_9")
			if !errors.Is(err, ErrPaymentMismatch) {
				t.Fatalf("expected ErrPaymentMismatch, got %v", err)
			}
		})
	}

	t.Run("matching intent in upper-case currency", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		intents := mock_interfaces.NewMockIPaymentIntentGateway(ctrl)
		uc := NewPaymentUseCase(orders, nil, intents, nil, nil)

		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(depositPaidOrder(), nil)
		intents.EXPECT().GetIntent(gomock.Any(), "pi_9").Return(interfaces.PaymentIntent{
			ID: "pi_9", Status: "succeeded", AmountReceived: dec("400"), Currency: "EUR",
			Metadata: map[string]string{interfaces.MetadataType: interfaces.PaymentTypeOrderDeposit, interfaces.MetadataOrderID: "ord-1"},
		}, nil)
		orders.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, o entities.Order) (entities.Order, error) {
			return o, nil
		})

		order, err := uc.ConfirmDeposit(context.Background(), alicePrincipal, "ord-1", "pi_9")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !order.Deposit.Paid || order.Deposit.PaymentIntentID != "pi_9" {
			t.Fatalf("expected deposit recorded, got %+v", order.Deposit)
		}
	})
}

func TestPaymentUseCase_QuoteIntentCannotFundAnotherOrder(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	fromQuote := acceptedOrder(t, env)
	used := fromQuote.Deposit.PaymentIntentID

	env.offers["offer-small"] = entities.Offer{ID: "offer-small", Title: "Landing page", Price: dec("500"), Active: true}
	res, err := env.orderUC.CreateCheckoutOrder(ctx, alicePrincipal, "offer-small")
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if _, err := env.paymentUC.ConfirmDeposit(ctx, alicePrincipal, res.Order.ID, used); !errors.Is(err, ErrPaymentMismatch) {
		t.Fatalf("expected ErrPaymentMismatch, got %v", err)
	}
	got, _ := env.orders.GetByID(ctx, res.Order.ID)
	if got.Deposit.Paid || got.PaymentStatus != entities.PaymentStatusUnpaid {
		t.Fatalf("order must stay unpaid, got %+v", got)
	}

	// Replaying the same intent through the webhook does not fund the order either.
	if err := env.paymentUC.HandleWebhook(ctx, env.intents.emit("evt_reuse", used), "valid"); err != nil {
		t.Fatalf("webhook: %v", err)
	}
	got, _ = env.orders.GetByID(ctx, res.Order.ID)
	if got.Deposit.Paid {
		t.Fatalf("order must stay unpaid after the webhook, got %+v", got)
	}
}

func TestPaymentUseCase_HandleWebhook(t *testing.T) {
	t.Run("ignored event types are acknowledged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		intents := mock_interfaces.NewMockIPaymentIntentGateway(ctrl)
		deduper := mock_interfaces.NewMockIEventDeduper(ctrl)
		uc := NewPaymentUseCase(nil, nil, intents, nil, deduper)

		intents.EXPECT().ParseWebhook([]byte("{}"), "sig").Return(interfaces.WebhookEvent{ID: "evt_1", Type: "charge.refunded"}, nil)
		deduper.EXPECT().Seen(gomock.Any(), "evt_1").Return(false, nil)
		deduper.EXPECT().MarkProcessed(gomock.Any(), "evt_1").Return(nil)

		if err := uc.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("storage failure is returned and not marked", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		intents := mock_interfaces.NewMockIPaymentIntentGateway(ctrl)
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		deduper := mock_interfaces.NewMockIEventDeduper(ctrl)
		uc := NewPaymentUseCase(orders, nil, intents, nil, deduper)

		intents.EXPECT().ParseWebhook(gomock.Any(), gomock.Any()).Return(interfaces.WebhookEvent{
			ID:   "evt_2",
			Type: interfaces.EventPaymentIntentSucceeded,
			Intent: &interfaces.PaymentIntent{ID: "pi_1", Status: "succeeded", AmountReceived: dec("400"),
				Metadata: map[string]string{interfaces.MetadataType: interfaces.PaymentTypeOrderDeposit, interfaces.MetadataOrderID: "ord-1"}},
		}, nil)
		deduper.EXPECT().Seen(gomock.Any(), "evt_2").Return(false, errors.New("redis down"))
		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{}, errors.New("db"))

		if err := uc.HandleWebhook(context.Background(), []byte("{}"), "sig"); err == nil {
			t.Fatalf("expected storage error")
		}
	})

	t.Run("quote deposit is recorded", func(t *testing.T) {
		env := newTestEnv()
		ctx := context.Background()
		q := submitAliceQuote(t, env)
		priceAndSend(t, env, q.ID, "1000")
		intent, _ := env.quoteUC.InitQuoteDepositPayment(ctx, alicePrincipal, q.ID)
		env.intents.succeed(intent.PaymentIntentID, dec("400"))

		if err := env.paymentUC.HandleWebhook(ctx, env.intents.emit("evt_q", intent.PaymentIntentID), "valid"); err != nil {
			t.Fatalf("webhook: %v", err)
		}
		got, _ := env.quotes.GetByID(ctx, q.ID)
		if !got.DepositPaid || got.DepositPaymentIntentID != intent.PaymentIntentID {
			t.Fatalf("expected quote deposit recorded, got %+v", got)
		}
	})
}

package request

import (
	"encoding/json"
	"testing"

	"agency_billing/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func TestAdminUpdateQuoteRequest_ToUpdate(t *testing.T) {
	var r AdminUpdateQuoteRequest
	if err := json.Unmarshal([]byte(`{"status":" SENT ","proposedAmount":"1500.50"}`), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	u := r.ToUpdate()
	if u.Status == nil || *u.Status != entities.QuoteStatusSent {
		t.Fatalf("expected sent, got %v", u.Status)
	}
	if u.ProposedAmount == nil || !u.ProposedAmount.Equal(decimal.RequireFromString("1500.5")) {
		t.Fatalf("unexpected amount: %v", u.ProposedAmount)
	}
	if u.ValidUntil != nil || u.AdminNotes != nil {
		t.Fatalf("absent fields must stay nil: %+v", u)
	}
}

func TestAdminUpdateQuoteRequest_NumericAmount(t *testing.T) {
	var r AdminUpdateQuoteRequest
	if err := json.Unmarshal([]byte(`{"proposedAmount":1000}`), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u := r.ToUpdate(); u.Status != nil || !u.ProposedAmount.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("unexpected update: %+v", u)
	}
}

func TestPaymentIntentRequest_ResolvePaymentIntentID(t *testing.T) {
	if got := (PaymentIntentRequest{PaymentIntentID: "  pi_1 "}).ResolvePaymentIntentID(); got != "pi_1" {
		t.Fatalf("expected pi_1, got %q", got)
	}
}

func TestUpdateOrderStatusRequest_ResolveStatus(t *testing.T) {
	if got := (UpdateOrderStatusRequest{Status: "Processing"}).ResolveStatus(); got != entities.OrderStatusProcessing {
		t.Fatalf("expected processing, got %q", got)
	}
}

func TestCreateInvoiceRequest_ToInput(t *testing.T) {
	r := CreateInvoiceRequest{
		UserID: "u-1",
		Status: "PAID",
		Items: []InvoiceItemRequest{
			{Description: "Maintenance", UnitPrice: decimal.NewFromInt(50)},
			{Description: "Hosting", Quantity: 12, UnitPrice: decimal.NewFromInt(10)},
		},
	}
	in := r.ToInput()
	if in.Status != entities.InvoiceStatusPaid {
		t.Fatalf("expected paid, got %q", in.Status)
	}
	if len(in.Items) != 2 || in.Items[0].Quantity != 1 || in.Items[1].Quantity != 12 {
		t.Fatalf("unexpected items: %+v", in.Items)
	}
}

func TestUpdateInvoiceRequest_ToUpdate(t *testing.T) {
	u := (UpdateInvoiceRequest{}).ToUpdate()
	if u.Items != nil || u.Status != nil {
		t.Fatalf("absent fields must stay nil: %+v", u)
	}
	items := []InvoiceItemRequest{}
	u = (UpdateInvoiceRequest{Items: &items}).ToUpdate()
	if u.Items == nil || len(*u.Items) != 0 {
		t.Fatalf("explicit empty items must be kept: %+v", u.Items)
	}
}

func TestUpdateProjectRequest_ToUpdate(t *testing.T) {
	status := "In_Progress"
	progress := 30
	u := (UpdateProjectRequest{Status: &status, Progress: &progress}).ToUpdate()
	if u.Status == nil || *u.Status != entities.ProjectStatusInProgress || *u.Progress != 30 {
		t.Fatalf("unexpected update: %+v", u)
	}
}

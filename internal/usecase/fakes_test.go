package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"agency_billing/internal/domain/entities"
	"agency_billing/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

// memIdentifiers mimics the identifiers table: one reservation row per issued number.
type memIdentifiers struct {
	mu     sync.Mutex
	issued map[string]map[string]bool
}

func newMemIdentifiers() *memIdentifiers {
	return &memIdentifiers{issued: map[string]map[string]bool{}}
}

func (m *memIdentifiers) CountIssued(_ context.Context, scope string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.issued[scope]), nil
}

func (m *memIdentifiers) Exists(_ context.Context, scope, number string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.issued[scope][number], nil
}

func (m *memIdentifiers) reserve(number string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	scope := entities.ScopeOfIdentifier(number)
	if m.issued[scope] == nil {
		m.issued[scope] = map[string]bool{}
	}
	if m.issued[scope][number] {
		return interfaces.ErrDuplicateIdentifier
	}
	m.issued[scope][number] = true
	return nil
}

// memTable is a tiny keyed store shared by the repository fakes.
type memTable[T any] struct {
	mu    sync.Mutex
	items map[string]T
}

func newMemTable[T any]() *memTable[T] {
	return &memTable[T]{items: map[string]T{}}
}

func (t *memTable[T]) put(id string, v T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items[id] = v
}

func (t *memTable[T]) get(id string) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.items[id]
	return v, ok
}

func (t *memTable[T]) filter(keep func(T) bool) []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	keys := make([]string, 0, len(t.items))
	for k := range t.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := []T{}
	for _, k := range keys {
		if keep(t.items[k]) {
			out = append(out, t.items[k])
		}
	}
	return out
}

func (t *memTable[T]) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.items)
}

type memQuotes struct {
	ids       *memIdentifiers
	table     *memTable[entities.Quote]
	updateErr error
}

func (r *memQuotes) Create(_ context.Context, q entities.Quote) (entities.Quote, error) {
	if err := r.ids.reserve(q.QuoteNumber); err != nil {
		return entities.Quote{}, err
	}
	r.table.put(q.ID, q)
	return q, nil
}

func (r *memQuotes) GetByID(_ context.Context, id string) (entities.Quote, error) {
	q, _ := r.table.get(id)
	return q, nil
}

func (r *memQuotes) ListAll(context.Context) ([]entities.Quote, error) {
	return r.table.filter(func(entities.Quote) bool { return true }), nil
}

func (r *memQuotes) ListByUserID(_ context.Context, userID string) ([]entities.Quote, error) {
	return r.table.filter(func(q entities.Quote) bool { return q.UserID == userID }), nil
}

func (r *memQuotes) ListByEmail(_ context.Context, email string) ([]entities.Quote, error) {
	return r.table.filter(func(q entities.Quote) bool { return strings.EqualFold(q.Email, email) }), nil
}

func (r *memQuotes) Update(_ context.Context, q entities.Quote) (entities.Quote, error) {
	if r.updateErr != nil {
		return entities.Quote{}, r.updateErr
	}
	r.table.put(q.ID, q)
	return q, nil
}

type memOrders struct {
	ids       *memIdentifiers
	table     *memTable[entities.Order]
	createErr error
}

func (r *memOrders) Create(_ context.Context, o entities.Order) (entities.Order, error) {
	if r.createErr != nil {
		return entities.Order{}, r.createErr
	}
	if err := r.ids.reserve(o.OrderNumber); err != nil {
		return entities.Order{}, err
	}
	r.table.put(o.ID, o)
	return o, nil
}

func (r *memOrders) GetByID(_ context.Context, id string) (entities.Order, error) {
	o, _ := r.table.get(id)
	return o, nil
}

func (r *memOrders) ListAll(context.Context) ([]entities.Order, error) {
	return r.table.filter(func(entities.Order) bool { return true }), nil
}

func (r *memOrders) ListByUserID(_ context.Context, userID string) ([]entities.Order, error) {
	return r.table.filter(func(o entities.Order) bool { return o.UserID == userID }), nil
}

func (r *memOrders) Update(_ context.Context, o entities.Order) (entities.Order, error) {
	r.table.put(o.ID, o)
	return o, nil
}

type memInvoices struct {
	ids       *memIdentifiers
	table     *memTable[entities.Invoice]
	createErr error
}

func (r *memInvoices) Create(_ context.Context, inv entities.Invoice) (entities.Invoice, error) {
	if r.createErr != nil {
		return entities.Invoice{}, r.createErr
	}
	if err := r.ids.reserve(inv.InvoiceNumber); err != nil {
		return entities.Invoice{}, err
	}
	r.table.put(inv.ID, inv)
	return inv, nil
}

func (r *memInvoices) GetByID(_ context.Context, id string) (entities.Invoice, error) {
	inv, _ := r.table.get(id)
	return inv, nil
}

func (r *memInvoices) GetByOrderID(_ context.Context, orderID string) (entities.Invoice, error) {
	found := r.table.filter(func(inv entities.Invoice) bool { return inv.OrderID == orderID })
	if len(found) == 0 {
		return entities.Invoice{}, nil
	}
	return found[0], nil
}

func (r *memInvoices) ListAll(context.Context) ([]entities.Invoice, error) {
	return r.table.filter(func(entities.Invoice) bool { return true }), nil
}

func (r *memInvoices) ListByUserID(_ context.Context, userID string) ([]entities.Invoice, error) {
	return r.table.filter(func(inv entities.Invoice) bool { return inv.UserID == userID }), nil
}

func (r *memInvoices) Update(_ context.Context, inv entities.Invoice) (entities.Invoice, error) {
	r.table.put(inv.ID, inv)
	return inv, nil
}

type memProjects struct {
	ids   *memIdentifiers
	table *memTable[entities.Project]
}

func (r *memProjects) Create(_ context.Context, p entities.Project) (entities.Project, error) {
	if err := r.ids.reserve(p.ProjectNumber); err != nil {
		return entities.Project{}, err
	}
	r.table.put(p.ID, p)
	return p, nil
}

func (r *memProjects) GetByID(_ context.Context, id string) (entities.Project, error) {
	p, _ := r.table.get(id)
	return p, nil
}

func (r *memProjects) GetByOrderID(_ context.Context, orderID string) (entities.Project, error) {
	found := r.table.filter(func(p entities.Project) bool { return p.OrderID == orderID })
	if len(found) == 0 {
		return entities.Project{}, nil
	}
	return found[0], nil
}

func (r *memProjects) ListAll(context.Context) ([]entities.Project, error) {
	return r.table.filter(func(entities.Project) bool { return true }), nil
}

func (r *memProjects) ListByUserID(_ context.Context, userID string) ([]entities.Project, error) {
	return r.table.filter(func(p entities.Project) bool { return p.UserID == userID }), nil
}

func (r *memProjects) Update(_ context.Context, p entities.Project) (entities.Project, error) {
	r.table.put(p.ID, p)
	return p, nil
}

type memEffects struct {
	mu         sync.Mutex
	claimed    map[string]time.Time
	releaseErr error
}

func (r *memEffects) Claim(_ context.Context, key string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.claimed[key]; ok {
		return false, nil
	}
	r.claimed[key] = time.Now()
	return true, nil
}

func (r *memEffects) Reclaim(_ context.Context, key string, staleBefore time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if at, ok := r.claimed[key]; ok && !at.Before(staleBefore) {
		return false, nil
	}
	r.claimed[key] = time.Now()
	return true, nil
}

func (r *memEffects) Release(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.releaseErr != nil {
		return r.releaseErr
	}
	delete(r.claimed, key)
	return nil
}

type memDeduper struct {
	mu   sync.Mutex
	seen map[string]bool
}

func (d *memDeduper) Seen(_ context.Context, eventID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.seen[eventID], nil
}

func (d *memDeduper) MarkProcessed(_ context.Context, eventID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seen[eventID] = true
	return nil
}

type memUsers map[string]entities.User

func (r memUsers) GetByID(_ context.Context, id string) (entities.User, error) {
	return r[id], nil
}

type memOffers map[string]entities.Offer

func (r memOffers) GetByID(_ context.Context, id string) (entities.Offer, error) {
	return r[id], nil
}

var errBadSignature = fmt.Errorf("fake: %w", interfaces.ErrInvalidWebhookSignature)

// fakeIntents plays the intent-based provider. Tests settle intents with succeed.
type fakeIntents struct {
	mu      sync.Mutex
	seq     int
	intents map[string]interfaces.PaymentIntent
	events  map[string]interfaces.WebhookEvent
}

func newFakeIntents() *fakeIntents {
	return &fakeIntents{intents: map[string]interfaces.PaymentIntent{}, events: map[string]interfaces.WebhookEvent{}}
}

func (g *fakeIntents) CreateIntent(_ context.Context, req interfaces.PaymentIntentRequest) (interfaces.PaymentIntent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	id := fmt.Sprintf("pi_%d", g.seq)
	intent := interfaces.PaymentIntent{
		ID:           id,
		ClientSecret: id + "_secret",
		Status:       "requires_payment_method",
		Amount:       req.Amount,
		Currency:     req.Currency,
		Metadata:     req.Metadata,
	}
	g.intents[id] = intent
	return intent, nil
}

func (g *fakeIntents) GetIntent(_ context.Context, id string) (interfaces.PaymentIntent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	intent, ok := g.intents[id]
	if !ok {
		return interfaces.PaymentIntent{}, errors.New("no such payment_intent")
	}
	return intent, nil
}

// ParseWebhook treats the payload as an event id registered with emit.
func (g *fakeIntents) ParseWebhook(payload []byte, signature string) (interfaces.WebhookEvent, error) {
	if signature != "valid" {
		return interfaces.WebhookEvent{}, errBadSignature
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	ev, ok := g.events[string(payload)]
	if !ok {
		return interfaces.WebhookEvent{}, errBadSignature
	}
	return ev, nil
}

func (g *fakeIntents) succeed(id string, received decimal.Decimal) {
	g.mu.Lock()
	defer g.mu.Unlock()
	intent := g.intents[id]
	intent.Status = interfaces.IntentStatusSucceeded
	intent.AmountReceived = received
	g.intents[id] = intent
}

// emit registers a payment_intent.succeeded event for id and returns its payload.
func (g *fakeIntents) emit(eventID, intentID string) []byte {
	g.mu.Lock()
	defer g.mu.Unlock()
	intent := g.intents[intentID]
	g.events[eventID] = interfaces.WebhookEvent{ID: eventID, Type: interfaces.EventPaymentIntentSucceeded, Intent: &intent}
	return []byte(eventID)
}

type fakeCheckout struct {
	created  []interfaces.CheckoutRequest
	captured []string
	capture  interfaces.CheckoutCapture
}

func (g *fakeCheckout) CreateCheckout(_ context.Context, req interfaces.CheckoutRequest) (interfaces.Checkout, error) {
	g.created = append(g.created, req)
	return interfaces.Checkout{ID: "CHK-" + req.Reference, Status: "CREATED", ApprovalURL: "https://pay.example/approve/" + req.Reference}, nil
}

func (g *fakeCheckout) CaptureCheckout(_ context.Context, checkoutID string) (interfaces.CheckoutCapture, error) {
	g.captured = append(g.captured, checkoutID)
	return g.capture, nil
}

type fakeDocuments struct {
	err   error
	calls int
}

func (d *fakeDocuments) GenerateInvoiceDocument(_ context.Context, inv entities.Invoice, _ entities.Order) (string, error) {
	d.calls++
	if d.err != nil {
		return "", d.err
	}
	return "invoices/" + inv.InvoiceNumber + ".pdf", nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []interfaces.Notification
	err  error
}

func (n *fakeNotifier) Send(_ context.Context, msg interfaces.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return n.err
}

func (n *fakeNotifier) count(kind interfaces.NotificationKind) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, s := range n.sent {
		if s.Kind == kind {
			c++
		}
	}
	return c
}

// testEnv wires the real use cases over the in-memory doubles.
type testEnv struct {
	ids       *memIdentifiers
	quotes    *memQuotes
	orders    *memOrders
	invoices  *memInvoices
	projects  *memProjects
	effects   *memEffects
	deduper   *memDeduper
	users     memUsers
	offers    memOffers
	intents   *fakeIntents
	checkout  *fakeCheckout
	documents *fakeDocuments
	notifier  *fakeNotifier

	allocator   *IdentifierAllocator
	fulfillment *Fulfillment
	quoteUC     *QuoteUseCase
	paymentUC   *PaymentUseCase
	orderUC     *OrderUseCase
	invoiceUC   *InvoiceUseCase
	projectUC   *ProjectUseCase
}

func newTestEnv() *testEnv {
	ids := newMemIdentifiers()
	env := &testEnv{
		ids:       ids,
		quotes:    &memQuotes{ids: ids, table: newMemTable[entities.Quote]()},
		orders:    &memOrders{ids: ids, table: newMemTable[entities.Order]()},
		invoices:  &memInvoices{ids: ids, table: newMemTable[entities.Invoice]()},
		projects:  &memProjects{ids: ids, table: newMemTable[entities.Project]()},
		effects:   &memEffects{claimed: map[string]time.Time{}},
		deduper:   &memDeduper{seen: map[string]bool{}},
		users:     memUsers{},
		offers:    memOffers{},
		intents:   newFakeIntents(),
		checkout:  &fakeCheckout{},
		documents: &fakeDocuments{},
		notifier:  &fakeNotifier{},
	}
	env.allocator = NewIdentifierAllocator(ids)
	env.fulfillment = NewFulfillment(env.invoices, env.projects, env.effects, env.allocator, env.documents, env.notifier)
	env.quoteUC = NewQuoteUseCase(env.quotes, env.orders, env.users, env.intents, env.allocator, env.notifier, "eur")
	env.paymentUC = NewPaymentUseCase(env.orders, env.quotes, env.intents, env.fulfillment, env.deduper)
	env.orderUC = NewOrderUseCase(env.orders, env.offers, env.users, env.checkout, env.allocator, env.fulfillment, "eur")
	env.invoiceUC = NewInvoiceUseCase(env.invoices, env.orders, env.allocator, env.documents, "eur")
	env.projectUC = NewProjectUseCase(env.projects)
	return env
}

var (
	adminPrincipal   = entities.Principal{UserID: "admin-1", Email: "admin@agency.test", Role: entities.RoleAdmin}
	alicePrincipal   = entities.Principal{UserID: "user-alice", Email: "Alice@X.com", Role: entities.RoleClient}
	malloryPrincipal = entities.Principal{UserID: "user-mallory", Email: "mallory@evil.test", Role: entities.RoleClient}
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"connectdemo/internal/metrics"
	"connectdemo/internal/model"
	"connectdemo/internal/service"
	"connectdemo/internal/store"
)

// fakeProvider answers the provider calls the routes make. Calls it does
// not override hit the nil embedded interface and panic.
type fakeProvider struct {
	service.Provider

	mu        sync.Mutex
	accounts  map[string]model.AccountSnapshot
	customers map[string]model.Customer
	file      model.ProviderFile
	fileErr   error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		accounts:  make(map[string]model.AccountSnapshot),
		customers: make(map[string]model.Customer),
	}
}

func (p *fakeProvider) FetchAccount(_ context.Context, id string) (model.AccountSnapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	snap, ok := p.accounts[id]
	if !ok {
		return model.AccountSnapshot{}, &service.UpstreamError{Op: "fetch account", AccountID: id, Message: "No such account: '" + id + "'", Missing: true, Err: errors.New("404")}
	}
	return snap, nil
}

func (p *fakeProvider) CreateAccount(context.Context, model.NewAccount) (string, error) {
	return "acct_new", nil
}

func (p *fakeProvider) CreateAccountSession(_ context.Context, id string) (string, error) {
	return "secret_" + id, nil
}

func (p *fakeProvider) BusinessName(context.Context, string) (string, error) { return "", nil }

func (p *fakeProvider) CreateLocation(context.Context, string, model.NewLocation) (string, error) {
	return "tml_1", nil
}

func (p *fakeProvider) ListLocations(context.Context, string) ([]model.Location, error) {
	return []model.Location{{ID: "tml_1", DisplayName: "HSBC Business Location"}}, nil
}

func (p *fakeProvider) CreateConnectionToken(_ context.Context, id string) (string, error) {
	return "pst_" + id, nil
}

func (p *fakeProvider) ListCustomers(context.Context, string) ([]model.Customer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := []model.Customer{}
	for _, c := range p.customers {
		out = append(out, c)
	}
	return out, nil
}

func (p *fakeProvider) CreateCustomer(_ context.Context, req model.NewCustomer) (model.Customer, error) {
	return model.Customer{ID: "cus_new", Name: req.Name, Email: req.Email}, nil
}

func (p *fakeProvider) GetCustomer(_ context.Context, _, id string) (model.Customer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.customers[id]
	if !ok {
		return model.Customer{}, &service.UpstreamError{Op: "get customer", Message: "No such customer: '" + id + "'", Missing: true, Err: errors.New("404")}
	}
	return c, nil
}

func (p *fakeProvider) CreatePaymentIntent(_ context.Context, req model.NewPaymentIntent) (model.PaymentIntent, error) {
	return model.PaymentIntent{ID: "pi_1", Amount: req.Amount, Currency: req.Currency, ClientSecret: "pi_1_secret"}, nil
}

func (p *fakeProvider) CreatePaymentLink(context.Context, model.NewPaymentLink) (model.PaymentLink, error) {
	return model.PaymentLink{ID: "plink_1", URL: "https://buy.stripe.com/test_1"}, nil
}

func (p *fakeProvider) CreateCheckoutSession(context.Context, service.CheckoutRequest) (model.CheckoutSession, error) {
	return model.CheckoutSession{ID: "cs_1", URL: "https://checkout.stripe.com/c/cs_1"}, nil
}

func (p *fakeProvider) GetCheckoutSession(_ context.Context, _, id string) (model.CheckoutSummary, error) {
	if id == "cs_gone" {
		return model.CheckoutSummary{}, &service.UpstreamError{Op: "get checkout session", Message: "No such checkout.session", Missing: true, Err: errors.New("404")}
	}
	return model.CheckoutSummary{AmountTotal: 1000, Currency: "gbp", PaymentStatus: "paid"}, nil
}

func (p *fakeProvider) GetFile(context.Context, string) (model.ProviderFile, error) {
	return p.file, p.fileErr
}

// queueRecorder is an EventSubmitter that keeps what it was given.
type queueRecorder struct {
	mu     sync.Mutex
	events []model.Event
	full   bool
}

func (q *queueRecorder) Submit(evt model.Event) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.full {
		return false
	}
	q.events = append(q.events, evt)
	return true
}

func (q *queueRecorder) Events() []model.Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]model.Event(nil), q.events...)
}

type testServer struct {
	router   http.Handler
	provider *fakeProvider
	store    store.Store
	queue    *queueRecorder
}

func newTestServer(t *testing.T, webhookSecret string) *testServer {
	t.Helper()
	p := newFakeProvider()
	st := store.NewMemoryStore()
	q := &queueRecorder{}
	m := metrics.NewCollector()

	router := NewRouter(Deps{
		Status:         service.NewStatusService(st, p, time.Second, m),
		Webhooks:       service.NewWebhookParser(webhookSecret),
		Queue:          q,
		Accounts:       service.NewAccountService(p, p),
		Customers:      service.NewCustomerService(p),
		Payments:       service.NewPaymentService(p, "http://localhost:3000"),
		Files:          service.NewFileService(p),
		Metrics:        m,
		PublishableKey: "pk_test_123",
		Started:        time.Now(),
	})
	return &testServer{router: router, provider: p, store: st, queue: q}
}

func (s *testServer) do(t *testing.T, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

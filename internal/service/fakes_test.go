package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"connectdemo/internal/model"
)

type fakeFetcher struct {
	mu       sync.Mutex
	accounts map[string]model.AccountSnapshot
	err      error
	delay    time.Duration
	calls    int
}

func newFakeFetcher(snaps ...model.AccountSnapshot) *fakeFetcher {
	f := &fakeFetcher{accounts: make(map[string]model.AccountSnapshot)}
	for _, s := range snaps {
		f.accounts[s.ID] = s
	}
	return f
}

func (f *fakeFetcher) FetchAccount(ctx context.Context, accountID string) (model.AccountSnapshot, error) {
	f.mu.Lock()
	f.calls++
	delay, err := f.delay, f.err
	snap, ok := f.accounts[accountID]
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return model.AccountSnapshot{}, ctx.Err()
		}
	}
	if err != nil {
		return model.AccountSnapshot{}, err
	}
	if !ok {
		return model.AccountSnapshot{}, &UpstreamError{Op: "fetch account", AccountID: accountID, Missing: true, Err: errors.New("no such account")}
	}
	return snap, nil
}

func (f *fakeFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type failingStore struct {
	getErr error
	putErr error
}

func (s failingStore) Get(context.Context, string) (model.StatusRecord, bool, error) {
	return model.StatusRecord{}, false, s.getErr
}

func (s failingStore) Put(_ context.Context, id string, d model.DerivedStatus, at time.Time) (model.StatusRecord, error) {
	if s.putErr != nil {
		return model.StatusRecord{}, s.putErr
	}
	return model.StatusRecord{AccountID: id, DerivedStatus: d, LastUpdated: at, ObservedAt: at}, nil
}

func goodStanding(id string) model.AccountSnapshot {
	return model.AccountSnapshot{
		ID: id,
		AccountRawState: model.AccountRawState{
			ChargesEnabled: true,
			PayoutsEnabled: true,
		},
	}
}

// fakeProvider records what it was asked to do and answers from fields.
type fakeProvider struct {
	*fakeFetcher

	mu           sync.Mutex
	created      []model.NewAccount
	createErr    error
	locationErr  error
	locations    []model.NewLocation
	customers    map[string]model.Customer
	intents      []model.NewPaymentIntent
	links        []model.NewPaymentLink
	checkouts    []CheckoutRequest
	businessName string
	businessErr  error
	file         model.ProviderFile
	fileErr      error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		fakeFetcher: newFakeFetcher(),
		customers:   make(map[string]model.Customer),
	}
}

func (p *fakeProvider) CreateAccount(_ context.Context, req model.NewAccount) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.createErr != nil {
		return "", p.createErr
	}
	p.created = append(p.created, req)
	return "acct_new", nil
}

func (p *fakeProvider) CreateAccountSession(_ context.Context, accountID string) (string, error) {
	return "cs_secret_" + accountID, nil
}

func (p *fakeProvider) BusinessName(context.Context, string) (string, error) {
	return p.businessName, p.businessErr
}

func (p *fakeProvider) ListCustomers(context.Context, string) ([]model.Customer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []model.Customer
	for _, c := range p.customers {
		out = append(out, c)
	}
	return out, nil
}

func (p *fakeProvider) CreateCustomer(_ context.Context, req model.NewCustomer) (model.Customer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c := model.Customer{ID: "cus_new", Name: req.Name, Email: req.Email, Created: 1700000000}
	p.customers[c.ID] = c
	return c, nil
}

func (p *fakeProvider) GetCustomer(_ context.Context, accountID, customerID string) (model.Customer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.customers[customerID]
	if !ok {
		return model.Customer{}, &UpstreamError{Op: "get customer", AccountID: accountID, Missing: true, Err: errors.New("No such customer")}
	}
	return c, nil
}

func (p *fakeProvider) CreatePaymentIntent(_ context.Context, req model.NewPaymentIntent) (model.PaymentIntent, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.intents = append(p.intents, req)
	return model.PaymentIntent{ID: "pi_1", Amount: req.Amount, Currency: req.Currency, ClientSecret: "pi_1_secret"}, nil
}

func (p *fakeProvider) CreatePaymentLink(_ context.Context, req model.NewPaymentLink) (model.PaymentLink, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.links = append(p.links, req)
	return model.PaymentLink{ID: "plink_1", URL: "https://buy.stripe.com/test_1"}, nil
}

func (p *fakeProvider) CreateCheckoutSession(_ context.Context, req CheckoutRequest) (model.CheckoutSession, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.checkouts = append(p.checkouts, req)
	return model.CheckoutSession{ID: "cs_1", URL: "https://checkout.stripe.com/c/cs_1"}, nil
}

func (p *fakeProvider) GetCheckoutSession(_ context.Context, _, sessionID string) (model.CheckoutSummary, error) {
	return model.CheckoutSummary{AmountTotal: 1000, Currency: "gbp", PaymentStatus: "paid", CustomerEmail: sessionID + "@example.com"}, nil
}

func (p *fakeProvider) CreateLocation(_ context.Context, _ string, loc model.NewLocation) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.locationErr != nil {
		return "", p.locationErr
	}
	p.locations = append(p.locations, loc)
	return "tml_1", nil
}

func (p *fakeProvider) ListLocations(context.Context, string) ([]model.Location, error) {
	return nil, nil
}

func (p *fakeProvider) CreateConnectionToken(_ context.Context, accountID string) (string, error) {
	return "pst_" + accountID, nil
}

func (p *fakeProvider) GetFile(context.Context, string) (model.ProviderFile, error) {
	return p.file, p.fileErr
}

var _ Provider = (*fakeProvider)(nil)

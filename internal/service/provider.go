package service

import (
	"context"

	"connectdemo/internal/model"
)

// AccountProvider manages connected accounts on the payments platform.
type AccountProvider interface {
	AccountFetcher
	CreateAccount(ctx context.Context, req model.NewAccount) (string, error)
	CreateAccountSession(ctx context.Context, accountID string) (string, error)
	BusinessName(ctx context.Context, accountID string) (string, error)
}

type CustomerProvider interface {
	ListCustomers(ctx context.Context, accountID string) ([]model.Customer, error)
	CreateCustomer(ctx context.Context, req model.NewCustomer) (model.Customer, error)
	GetCustomer(ctx context.Context, accountID, customerID string) (model.Customer, error)
}

type PaymentProvider interface {
	CreatePaymentIntent(ctx context.Context, req model.NewPaymentIntent) (model.PaymentIntent, error)
	CreatePaymentLink(ctx context.Context, req model.NewPaymentLink) (model.PaymentLink, error)
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (model.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, accountID, sessionID string) (model.CheckoutSummary, error)
}

type TerminalProvider interface {
	CreateLocation(ctx context.Context, accountID string, loc model.NewLocation) (string, error)
	ListLocations(ctx context.Context, accountID string) ([]model.Location, error)
	CreateConnectionToken(ctx context.Context, accountID string) (string, error)
}

type FileProvider interface {
	GetFile(ctx context.Context, fileID string) (model.ProviderFile, error)
}

// Provider is everything the HTTP surface needs from the platform.
type Provider interface {
	AccountProvider
	CustomerProvider
	PaymentProvider
	TerminalProvider
	FileProvider
}

// CheckoutRequest is a checkout session with its redirect URLs resolved.
type CheckoutRequest struct {
	model.NewCheckoutSession
	BusinessName string
	SuccessURL   string
	CancelURL    string
}

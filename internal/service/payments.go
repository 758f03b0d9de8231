package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"connectdemo/internal/model"
)

const (
	defaultCurrency      = "gbp"
	defaultCaptureMethod = "automatic"
	defaultDescription   = "Payment"
	defaultBusinessName  = "Your Business"
)

// PaymentResult is a created payment intent plus the customer it was
// attached to, if any.
type PaymentResult struct {
	Intent   model.PaymentIntent
	Customer *model.Customer
}

type PaymentService struct {
	payments  PaymentProvider
	customers CustomerProvider
	accounts  AccountProvider
	terminal  TerminalProvider
	baseURL   string
}

func NewPaymentService(p Provider, baseURL string) *PaymentService {
	return &PaymentService{
		payments:  p,
		customers: p,
		accounts:  p,
		terminal:  p,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

func (s *PaymentService) CreatePaymentIntent(ctx context.Context, req model.NewPaymentIntent) (PaymentResult, error) {
	if req.Currency == "" {
		req.Currency = defaultCurrency
	}
	if len(req.PaymentMethodTypes) == 0 {
		req.PaymentMethodTypes = []string{"card_present"}
	}
	if req.CaptureMethod == "" {
		req.CaptureMethod = defaultCaptureMethod
	}
	if err := asRequestError("", Validate(req)); err != nil {
		return PaymentResult{}, err
	}

	var customer *model.Customer
	if req.Customer != nil && req.Customer.ID != "" {
		c, err := s.customers.GetCustomer(ctx, req.AccountID, req.Customer.ID)
		if err != nil {
			slog.Warn("customer validation failed", "account_id", req.AccountID, "customer_id", req.Customer.ID, "error", err)
			return PaymentResult{}, &CustomerNotFoundError{CustomerID: req.Customer.ID, Err: err}
		}
		customer = &c
	} else {
		req.Customer = nil
	}

	pi, err := s.payments.CreatePaymentIntent(ctx, req)
	if err != nil {
		return PaymentResult{}, fmt.Errorf("create payment intent: %w", err)
	}
	slog.Info("payment intent created", "account_id", req.AccountID, "payment_intent", pi.ID, "amount", pi.Amount)
	return PaymentResult{Intent: pi, Customer: customer}, nil
}

func (s *PaymentService) CreatePaymentLink(ctx context.Context, req model.NewPaymentLink) (model.NewPaymentLink, model.PaymentLink, error) {
	if req.Currency == "" {
		req.Currency = defaultCurrency
	}
	if req.Description == "" {
		req.Description = defaultDescription
	}
	if err := asRequestError("", Validate(req)); err != nil {
		return req, model.PaymentLink{}, err
	}

	link, err := s.payments.CreatePaymentLink(ctx, req)
	if err != nil {
		return req, model.PaymentLink{}, fmt.Errorf("create payment link: %w", err)
	}
	slog.Info("payment link created", "account_id", req.AccountID, "payment_link", link.ID)
	return req, link, nil
}

// CreateCheckoutSession starts a hosted checkout. The account's business
// name and the customer are looked up on a best effort basis.
func (s *PaymentService) CreateCheckoutSession(ctx context.Context, req model.NewCheckoutSession) (model.NewCheckoutSession, model.CheckoutSession, error) {
	if req.Currency == "" {
		req.Currency = defaultCurrency
	}
	if req.Description == "" {
		req.Description = defaultDescription
	}
	if err := asRequestError("", Validate(req)); err != nil {
		return req, model.CheckoutSession{}, err
	}

	businessName, err := s.accounts.BusinessName(ctx, req.AccountID)
	if err != nil {
		slog.Warn("could not retrieve account details", "account_id", req.AccountID, "error", err)
	}
	if businessName == "" {
		businessName = defaultBusinessName
	}

	full := CheckoutRequest{
		NewCheckoutSession: req,
		BusinessName:       businessName,
		SuccessURL:         s.baseURL + "/success?session_id={CHECKOUT_SESSION_ID}&account_id=" + url.QueryEscape(req.AccountID),
		CancelURL:          s.baseURL + "/cancel",
	}
	if req.Customer != nil && req.Customer.ID != "" {
		if _, err := s.customers.GetCustomer(ctx, req.AccountID, req.Customer.ID); err != nil {
			slog.Warn("customer not found, creating checkout session without customer", "customer_id", req.Customer.ID, "error", err)
			full.Customer = nil
		}
	} else {
		full.Customer = nil
	}

	sess, err := s.payments.CreateCheckoutSession(ctx, full)
	if err != nil {
		return req, model.CheckoutSession{}, fmt.Errorf("create checkout session: %w", err)
	}
	slog.Info("checkout session created", "account_id", req.AccountID, "session_id", sess.ID)
	return req, sess, nil
}

func (s *PaymentService) CheckoutSession(ctx context.Context, accountID, sessionID string) (model.CheckoutSummary, error) {
	if accountID == "" {
		return model.CheckoutSummary{}, ErrMissingAccount
	}
	sum, err := s.payments.GetCheckoutSession(ctx, accountID, sessionID)
	if err != nil {
		return model.CheckoutSummary{}, fmt.Errorf("retrieve checkout session: %w", err)
	}
	return sum, nil
}

func (s *PaymentService) ConnectionToken(ctx context.Context, accountID string) (string, error) {
	if accountID == "" {
		return "", ErrMissingAccount
	}
	secret, err := s.terminal.CreateConnectionToken(ctx, accountID)
	if err != nil {
		return "", fmt.Errorf("create connection token: %w", err)
	}
	return secret, nil
}

func (s *PaymentService) Locations(ctx context.Context, accountID string) ([]model.Location, error) {
	if accountID == "" {
		return nil, ErrMissingAccount
	}
	locs, err := s.terminal.ListLocations(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	if locs == nil {
		locs = []model.Location{}
	}
	return locs, nil
}

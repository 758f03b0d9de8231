package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"

	"connectdemo/internal/model"
)

// StripeClient implements Provider on top of stripe-go. Calls made on
// behalf of a connected account carry the Stripe-Account header; creates
// carry a fresh idempotency key.
type StripeClient struct {
	api *client.API
}

// NewStripeClient builds a client for secretKey. A non-empty apiURL sends
// every request there instead of api.stripe.com.
func NewStripeClient(secretKey, apiURL string) *StripeClient {
	var backends *stripe.Backends
	if apiURL != "" {
		cfg := &stripe.BackendConfig{URL: stripe.String(apiURL)}
		backends = &stripe.Backends{
			API:     stripe.GetBackendWithConfig(stripe.APIBackend, cfg),
			Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, cfg),
			Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, cfg),
		}
	}
	return &StripeClient{api: client.New(secretKey, backends)}
}

func wrapStripe(op, accountID string, err error) error {
	up := &UpstreamError{Op: op, AccountID: accountID, Err: err}
	var se *stripe.Error
	if errors.As(err, &se) {
		up.Message = se.Msg
		up.Missing = se.Code == stripe.ErrorCodeResourceMissing || se.HTTPStatusCode == http.StatusNotFound
	}
	return up
}

func (c *StripeClient) FetchAccount(ctx context.Context, accountID string) (model.AccountSnapshot, error) {
	params := &stripe.AccountParams{}
	params.Context = ctx
	acct, err := c.api.Accounts.GetByID(accountID, params)
	if err != nil {
		return model.AccountSnapshot{}, wrapStripe("fetch account", accountID, err)
	}
	return snapshotFromAccount(acct), nil
}

func (c *StripeClient) BusinessName(ctx context.Context, accountID string) (string, error) {
	params := &stripe.AccountParams{}
	params.Context = ctx
	acct, err := c.api.Accounts.GetByID(accountID, params)
	if err != nil {
		return "", wrapStripe("fetch account", accountID, err)
	}
	if acct.BusinessProfile != nil && acct.BusinessProfile.Name != "" {
		return acct.BusinessProfile.Name, nil
	}
	if acct.Settings != nil && acct.Settings.Dashboard != nil {
		return acct.Settings.Dashboard.DisplayName, nil
	}
	return "", nil
}

func (c *StripeClient) CreateAccount(ctx context.Context, req model.NewAccount) (string, error) {
	params := &stripe.AccountParams{
		Country:      stripe.String("GB"),
		BusinessType: stripe.String(req.ProfileType),
		Capabilities: &stripe.AccountCapabilitiesParams{
			CardPayments: &stripe.AccountCapabilitiesCardPaymentsParams{Requested: stripe.Bool(true)},
			Transfers:    &stripe.AccountCapabilitiesTransfersParams{Requested: stripe.Bool(true)},
		},
		Controller: &stripe.AccountControllerParams{
			Fees:                  &stripe.AccountControllerFeesParams{Payer: stripe.String("application")},
			Losses:                &stripe.AccountControllerLossesParams{Payments: stripe.String("stripe")},
			RequirementCollection: stripe.String("stripe"),
			StripeDashboard:       &stripe.AccountControllerStripeDashboardParams{Type: stripe.String("none")},
		},
		Settings: &stripe.AccountSettingsParams{
			Payouts: &stripe.AccountSettingsPayoutsParams{
				Schedule: &stripe.AccountSettingsPayoutsScheduleParams{Interval: stripe.String("daily")},
			},
		},
		BusinessProfile: &stripe.AccountBusinessProfileParams{
			Name:               stripe.String(req.BusinessName),
			ProductDescription: stripe.String(req.BusinessProfile.ProductDescription),
			SupportPhone:       optional(req.BusinessProfile.SupportPhone),
			MCC:                stripe.String(req.BusinessProfile.MCC),
			URL:                optional(req.BusinessProfile.URL),
		},
		// Stripe test-mode GB bank account.
		ExternalAccount: &stripe.AccountExternalAccountParams{
			AccountNumber:     stripe.String("00012345"),
			RoutingNumber:     stripe.String("108800"),
			Country:           stripe.String("GB"),
			Currency:          stripe.String("gbp"),
			AccountHolderName: stripe.String(req.HolderName),
			AccountHolderType: stripe.String(req.ProfileType),
		},
	}

	switch {
	case req.Individual != nil:
		p := req.Individual
		params.Individual = &stripe.PersonParams{
			FirstName: stripe.String(p.FirstName),
			LastName:  stripe.String(p.LastName),
			Email:     stripe.String(p.Email),
			Phone:     optional(p.Phone),
			Address:   addressParams(p.Address),
		}
		if p.DOB != nil {
			params.Individual.DOB = &stripe.PersonDOBParams{
				Day:   stripe.Int64(p.DOB.Day),
				Month: stripe.Int64(p.DOB.Month),
				Year:  stripe.Int64(p.DOB.Year),
			}
		}
	case req.Company != nil:
		params.Company = &stripe.AccountCompanyParams{
			Name:    stripe.String(req.Company.Name),
			Phone:   optional(req.Company.Phone),
			Address: addressParams(req.Company.Address),
		}
	}

	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())
	acct, err := c.api.Accounts.New(params)
	if err != nil {
		return "", wrapStripe("create account", "", err)
	}
	return acct.ID, nil
}

func (c *StripeClient) CreateAccountSession(ctx context.Context, accountID string) (string, error) {
	params := &stripe.AccountSessionParams{
		Account: stripe.String(accountID),
		Components: &stripe.AccountSessionComponentsParams{
			Payments: &stripe.AccountSessionComponentsPaymentsParams{
				Enabled: stripe.Bool(true),
				Features: &stripe.AccountSessionComponentsPaymentsFeaturesParams{
					RefundManagement:  stripe.Bool(true),
					DisputeManagement: stripe.Bool(true),
					CapturePayments:   stripe.Bool(true),
				},
			},
			AccountOnboarding: &stripe.AccountSessionComponentsAccountOnboardingParams{
				Enabled: stripe.Bool(true),
			},
			Payouts: &stripe.AccountSessionComponentsPayoutsParams{
				Enabled: stripe.Bool(true),
				Features: &stripe.AccountSessionComponentsPayoutsFeaturesParams{
					InstantPayouts:            stripe.Bool(true),
					EditPayoutSchedule:        stripe.Bool(false),
					ExternalAccountCollection: stripe.Bool(true),
				},
			},
			Documents: &stripe.AccountSessionComponentsDocumentsParams{
				Enabled: stripe.Bool(true),
			},
		},
	}
	params.Context = ctx
	sess, err := c.api.AccountSessions.New(params)
	if err != nil {
		return "", wrapStripe("create account session", accountID, err)
	}
	return sess.ClientSecret, nil
}

func (c *StripeClient) ListCustomers(ctx context.Context, accountID string) ([]model.Customer, error) {
	params := &stripe.CustomerListParams{}
	params.Limit = stripe.Int64(100)
	params.Context = ctx
	params.SetStripeAccount(accountID)

	out := []model.Customer{}
	it := c.api.Customers.List(params)
	for it.Next() {
		out = append(out, customerFromStripe(it.Customer()))
		if len(out) >= 100 {
			break
		}
	}
	if err := it.Err(); err != nil {
		return nil, wrapStripe("list customers", accountID, err)
	}
	return out, nil
}

func (c *StripeClient) CreateCustomer(ctx context.Context, req model.NewCustomer) (model.Customer, error) {
	params := &stripe.CustomerParams{
		Name:  stripe.String(req.Name),
		Email: stripe.String(req.Email),
	}
	params.Context = ctx
	params.SetStripeAccount(req.AccountID)
	params.SetIdempotencyKey(uuid.NewString())

	cust, err := c.api.Customers.New(params)
	if err != nil {
		return model.Customer{}, wrapStripe("create customer", req.AccountID, err)
	}
	return customerFromStripe(cust), nil
}

func (c *StripeClient) GetCustomer(ctx context.Context, accountID, customerID string) (model.Customer, error) {
	params := &stripe.CustomerParams{}
	params.Context = ctx
	params.SetStripeAccount(accountID)

	cust, err := c.api.Customers.Get(customerID, params)
	if err != nil {
		return model.Customer{}, wrapStripe("get customer", accountID, err)
	}
	return customerFromStripe(cust), nil
}

func (c *StripeClient) CreatePaymentIntent(ctx context.Context, req model.NewPaymentIntent) (model.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(req.Amount),
		Currency:           stripe.String(req.Currency),
		PaymentMethodTypes: stripe.StringSlice(req.PaymentMethodTypes),
		CaptureMethod:      stripe.String(req.CaptureMethod),
	}
	if req.Customer != nil {
		params.Customer = stripe.String(req.Customer.ID)
	}
	params.Context = ctx
	params.SetStripeAccount(req.AccountID)
	params.SetIdempotencyKey(uuid.NewString())

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return model.PaymentIntent{}, wrapStripe("create payment intent", req.AccountID, err)
	}
	return model.PaymentIntent{
		ID:           pi.ID,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		ClientSecret: pi.ClientSecret,
	}, nil
}

// CreatePaymentLink creates a product and a price for it, then a link
// selling one unit.
func (c *StripeClient) CreatePaymentLink(ctx context.Context, req model.NewPaymentLink) (model.PaymentLink, error) {
	productParams := &stripe.ProductParams{Name: stripe.String(req.Description)}
	productParams.Context = ctx
	productParams.SetStripeAccount(req.AccountID)
	product, err := c.api.Products.New(productParams)
	if err != nil {
		return model.PaymentLink{}, wrapStripe("create product", req.AccountID, err)
	}

	priceParams := &stripe.PriceParams{
		UnitAmount: stripe.Int64(req.Amount),
		Currency:   stripe.String(req.Currency),
		Product:    stripe.String(product.ID),
	}
	priceParams.Context = ctx
	priceParams.SetStripeAccount(req.AccountID)
	price, err := c.api.Prices.New(priceParams)
	if err != nil {
		return model.PaymentLink{}, wrapStripe("create price", req.AccountID, err)
	}

	linkParams := &stripe.PaymentLinkParams{
		LineItems: []*stripe.PaymentLinkLineItemParams{
			{Price: stripe.String(price.ID), Quantity: stripe.Int64(1)},
		},
	}
	linkParams.Context = ctx
	linkParams.SetStripeAccount(req.AccountID)
	link, err := c.api.PaymentLinks.New(linkParams)
	if err != nil {
		return model.PaymentLink{}, wrapStripe("create payment link", req.AccountID, err)
	}
	return model.PaymentLink{ID: link.ID, URL: link.URL}, nil
}

func (c *StripeClient) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (model.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(req.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
					UnitAmount: stripe.Int64(req.Amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		Metadata: map[string]string{
			"business_name": req.BusinessName,
			"account_id":    req.AccountID,
		},
	}
	if req.Customer != nil {
		params.Customer = stripe.String(req.Customer.ID)
	}
	params.Context = ctx
	params.SetStripeAccount(req.AccountID)
	params.SetIdempotencyKey(uuid.NewString())

	sess, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return model.CheckoutSession{}, wrapStripe("create checkout session", req.AccountID, err)
	}
	return model.CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

func (c *StripeClient) GetCheckoutSession(ctx context.Context, accountID, sessionID string) (model.CheckoutSummary, error) {
	params := &stripe.CheckoutSessionParams{}
	params.AddExpand("line_items")
	params.AddExpand("customer")
	params.AddExpand("payment_intent")
	params.Context = ctx
	params.SetStripeAccount(accountID)

	sess, err := c.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return model.CheckoutSummary{}, wrapStripe("get checkout session", accountID, err)
	}

	out := model.CheckoutSummary{
		CustomerDetails: rawJSON(sess.CustomerDetails),
		AmountTotal:     sess.AmountTotal,
		Currency:        string(sess.Currency),
		Metadata:        sess.Metadata,
		LineItems:       rawJSON(sess.LineItems),
		PaymentStatus:   string(sess.PaymentStatus),
	}
	if name, ok := sess.Metadata["business_name"]; ok && name != "" {
		out.BusinessName = &name
	}
	switch {
	case sess.CustomerDetails != nil && sess.CustomerDetails.Email != "":
		out.CustomerEmail = sess.CustomerDetails.Email
	case sess.Customer != nil:
		out.CustomerEmail = sess.Customer.Email
	}
	return out, nil
}

func (c *StripeClient) CreateLocation(ctx context.Context, accountID string, loc model.NewLocation) (string, error) {
	params := &stripe.TerminalLocationParams{
		DisplayName: stripe.String(loc.DisplayName),
		Address:     addressParams(&loc.Address),
	}
	params.Context = ctx
	params.SetStripeAccount(accountID)

	l, err := c.api.TerminalLocations.New(params)
	if err != nil {
		return "", wrapStripe("create location", accountID, err)
	}
	return l.ID, nil
}

func (c *StripeClient) ListLocations(ctx context.Context, accountID string) ([]model.Location, error) {
	params := &stripe.TerminalLocationListParams{}
	params.Context = ctx
	params.SetStripeAccount(accountID)

	out := []model.Location{}
	it := c.api.TerminalLocations.List(params)
	for it.Next() {
		l := it.TerminalLocation()
		out = append(out, model.Location{
			ID:          l.ID,
			DisplayName: l.DisplayName,
			Address:     rawJSON(l.Address),
		})
	}
	if err := it.Err(); err != nil {
		return nil, wrapStripe("list locations", accountID, err)
	}
	return out, nil
}

func (c *StripeClient) CreateConnectionToken(ctx context.Context, accountID string) (string, error) {
	params := &stripe.TerminalConnectionTokenParams{}
	params.Context = ctx
	params.SetStripeAccount(accountID)

	tok, err := c.api.TerminalConnectionTokens.New(params)
	if err != nil {
		return "", wrapStripe("create connection token", accountID, err)
	}
	return tok.Secret, nil
}

func (c *StripeClient) GetFile(ctx context.Context, fileID string) (model.ProviderFile, error) {
	params := &stripe.FileParams{}
	params.Context = ctx

	f, err := c.api.Files.Get(fileID, params)
	if err != nil {
		return model.ProviderFile{}, wrapStripe("get file", "", err)
	}
	out := model.ProviderFile{
		ID:       f.ID,
		Filename: f.Filename,
		Type:     string(f.Type),
	}
	if f.Links != nil && len(f.Links.Data) > 0 {
		out.URL = f.Links.Data[0].URL
	}
	return out, nil
}

func customerFromStripe(c *stripe.Customer) model.Customer {
	return model.Customer{ID: c.ID, Name: c.Name, Email: c.Email, Created: c.Created}
}

func addressParams(a *model.Address) *stripe.AddressParams {
	if a == nil {
		return nil
	}
	return &stripe.AddressParams{
		Line1:      stripe.String(a.Line1),
		Line2:      optional(a.Line2),
		City:       stripe.String(a.City),
		State:      optional(a.State),
		PostalCode: optional(a.PostalCode),
		Country:    stripe.String(a.Country),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return stripe.String(s)
}

func rawJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}

var _ Provider = (*StripeClient)(nil)

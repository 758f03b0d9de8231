package model

import "encoding/json"

type CustomerRef struct {
	ID string `json:"id"`
}

type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Created int64  `json:"created"`
}

type NewCustomer struct {
	AccountID string `json:"account_id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}

type NewPaymentIntent struct {
	AccountID          string       `json:"account_id" validate:"required"`
	Amount             int64        `json:"amount" validate:"gt=0"`
	Currency           string       `json:"currency"`
	PaymentMethodTypes []string     `json:"payment_method_types"`
	CaptureMethod      string       `json:"capture_method" validate:"omitempty,oneof=automatic automatic_async manual"`
	Customer           *CustomerRef `json:"customer,omitempty"`
}

type PaymentIntent struct {
	ID           string `json:"id"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	ClientSecret string `json:"-"`
}

type NewPaymentLink struct {
	AccountID   string `json:"account_id" validate:"required"`
	Amount      int64  `json:"amount" validate:"gt=0"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
}

type PaymentLink struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type NewCheckoutSession struct {
	AccountID   string       `json:"account_id" validate:"required"`
	Amount      int64        `json:"amount" validate:"gt=0"`
	Currency    string       `json:"currency"`
	Description string       `json:"description"`
	Customer    *CustomerRef `json:"customer,omitempty"`
}

type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CheckoutSummary is what the success page needs from a completed session.
type CheckoutSummary struct {
	CustomerDetails json.RawMessage   `json:"customer_details"`
	AmountTotal     int64             `json:"amount_total"`
	Currency        string            `json:"currency"`
	Metadata        map[string]string `json:"metadata"`
	LineItems       json.RawMessage   `json:"line_items"`
	PaymentStatus   string            `json:"payment_status"`
	BusinessName    *string           `json:"business_name"`
	CustomerEmail   string            `json:"customer_email,omitempty"`
}

type Location struct {
	ID          string          `json:"id"`
	DisplayName string          `json:"display_name"`
	Address     json.RawMessage `json:"address,omitempty"`
}

// ProviderFile describes an uploaded file and where its bytes can be read.
type ProviderFile struct {
	ID       string
	Filename string
	Type     string
	URL      string
}

type NewLocation struct {
	DisplayName string
	Address     Address
}

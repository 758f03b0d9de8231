package model

import "encoding/json"

const (
	ProfileIndividual = "individual"
	ProfileCompany    = "company"
)

type Address struct {
	Line1      string `json:"line1" validate:"required"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country" validate:"required"`
}

type DateOfBirth struct {
	Day   int64 `json:"day" validate:"min=1,max=31"`
	Month int64 `json:"month" validate:"min=1,max=12"`
	Year  int64 `json:"year" validate:"min=1900,not_future_year"`
}

type IndividualProfile struct {
	FirstName          string       `json:"firstName" validate:"required"`
	LastName           string       `json:"lastName" validate:"required"`
	Email              string       `json:"email" validate:"required,email"`
	Phone              string       `json:"phone,omitempty" validate:"omitempty,intl_phone"`
	DOB                *DateOfBirth `json:"dob,omitempty" validate:"omitempty"`
	Address            *Address     `json:"address,omitempty" validate:"omitempty"`
	BusinessName       string       `json:"businessName,omitempty"`
	ProductDescription string       `json:"product_description,omitempty"`
	Website            string       `json:"website,omitempty" validate:"omitempty,url,startswith=http"`
}

type CompanyProfile struct {
	Name               string   `json:"name" validate:"required"`
	Email              string   `json:"email,omitempty" validate:"omitempty,email"`
	Phone              string   `json:"phone,omitempty" validate:"omitempty,intl_phone"`
	Address            *Address `json:"address,omitempty" validate:"omitempty"`
	MCC                string   `json:"mcc,omitempty" validate:"omitempty,len=4,numeric"`
	URL                string   `json:"url,omitempty" validate:"omitempty,url,startswith=http"`
	ProductDescription string   `json:"product_description,omitempty"`
}

type BusinessProfile struct {
	MCC                string `json:"mcc,omitempty" validate:"omitempty,len=4,numeric"`
	URL                string `json:"url,omitempty" validate:"omitempty,url,startswith=http"`
	SupportPhone       string `json:"support_phone,omitempty" validate:"omitempty,intl_phone"`
	ProductDescription string `json:"product_description,omitempty"`
}

// AccountRequest is the body of an account creation call. ProfileData is
// decoded according to ProfileType.
type AccountRequest struct {
	ProfileType     string           `json:"profile_type"`
	ProfileData     json.RawMessage  `json:"profile_data"`
	BusinessProfile *BusinessProfile `json:"business_profile"`
}

// NewAccount is a validated account creation request. Exactly one of
// Individual and Company is set, matching ProfileType.
type NewAccount struct {
	ProfileType     string
	Individual      *IndividualProfile
	Company         *CompanyProfile
	BusinessName    string
	HolderName      string
	BusinessProfile BusinessProfile
}

type CreatedAccount struct {
	AccountID  string `json:"account_id"`
	LocationID string `json:"location_id,omitempty"`
}

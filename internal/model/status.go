package model

import "time"

type Status string

const (
	StatusEnabled        Status = "Enabled"
	StatusPending        Status = "Pending"
	StatusRestricted     Status = "Restricted"
	StatusRestrictedSoon Status = "Restricted Soon"
	StatusRejected       Status = "Rejected"
)

// Badge qualifies a Pending status. It is empty for every other status.
type Badge string

const (
	BadgeNone     Badge = ""
	BadgeEnabled  Badge = "Enabled"
	BadgeDisabled Badge = "Disabled"
)

type Capabilities struct {
	ChargesEnabled bool `json:"charges_enabled"`
	PayoutsEnabled bool `json:"payouts_enabled"`
}

type Requirements struct {
	CurrentlyDue        []string `json:"currently_due"`
	EventuallyDue       []string `json:"eventually_due"`
	PastDue             []string `json:"past_due"`
	PendingVerification []string `json:"pending_verification"`
}

// RawAccount echoes the provider flags a status was derived from.
type RawAccount struct {
	ChargesEnabled   bool         `json:"charges_enabled"`
	PayoutsEnabled   bool         `json:"payouts_enabled"`
	DetailsSubmitted bool         `json:"details_submitted"`
	Requirements     Requirements `json:"requirements"`
}

type DerivedStatus struct {
	Status       Status       `json:"status"`
	Badge        Badge        `json:"badge,omitempty"`
	Description  string       `json:"description"`
	Capabilities Capabilities `json:"capabilities"`
	Requirements Requirements `json:"requirements"`
	RawAccount   *RawAccount  `json:"raw_account,omitempty"`
}

// StatusRecord is the value held per account by a status store. Records are
// replaced as a whole, never patched.
type StatusRecord struct {
	AccountID string `json:"account_id"`
	DerivedStatus
	LastUpdated time.Time `json:"last_updated"`
	ObservedAt  time.Time `json:"observed_at"`
}

package model

// AccountRawState is the subset of a connected account the status model reads.
// An empty DisabledReason means the account carries no restriction reason.
type AccountRawState struct {
	ChargesEnabled      bool     `json:"charges_enabled"`
	PayoutsEnabled      bool     `json:"payouts_enabled"`
	DisabledReason      string   `json:"disabled_reason,omitempty"`
	CurrentlyDue        []string `json:"currently_due"`
	EventuallyDue       []string `json:"eventually_due"`
	PastDue             []string `json:"past_due"`
	PendingVerification []string `json:"pending_verification"`
}

// AccountSnapshot is a raw state tied to its account.
type AccountSnapshot struct {
	ID               string `json:"id"`
	DetailsSubmitted bool   `json:"details_submitted"`
	AccountRawState
}

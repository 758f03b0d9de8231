package service

import (
	"strings"

	"connectdemo/internal/model"
)

const (
	descRejected       = "The platform or Stripe has rejected the merchant account"
	descPendingEnabled = "The account is currently being reviewed by Stripe; payouts and charges are enabled"
	descEnabled        = "Account is in good standing"
	descRestricted     = "The account has pay-ins or payouts disabled and requires additional information"
	descRestrictedSoon = "The merchant account has a due date for providing certain information"
	descPendingDisable = "The account is currently being reviewed by Stripe; payouts and charges are disabled"
)

// Classify derives the display status of a connected account. Rules are
// checked in order and the first match wins.
func Classify(raw model.AccountRawState) model.DerivedStatus {
	out := model.DerivedStatus{
		Requirements: model.Requirements{
			CurrentlyDue:        copyList(raw.CurrentlyDue),
			EventuallyDue:       copyList(raw.EventuallyDue),
			PastDue:             copyList(raw.PastDue),
			PendingVerification: copyList(raw.PendingVerification),
		},
	}

	if strings.Contains(raw.DisabledReason, "rejected") {
		out.Status = model.StatusRejected
		out.Description = descRejected
		out.Capabilities = model.Capabilities{}
		return out
	}

	if raw.ChargesEnabled && raw.PayoutsEnabled {
		switch {
		case len(raw.PendingVerification) > 0:
			out.Status = model.StatusPending
			out.Badge = model.BadgeEnabled
			out.Description = descPendingEnabled
			out.Capabilities = model.Capabilities{ChargesEnabled: true, PayoutsEnabled: true}
		case raw.DisabledReason == "" && len(raw.PastDue) == 0 && len(raw.CurrentlyDue) == 0:
			out.Status = model.StatusEnabled
			out.Description = descEnabled
			out.Capabilities = model.Capabilities{ChargesEnabled: true, PayoutsEnabled: true}
		default:
			// Capabilities are echoed even though the account is restricted.
			out.Status = model.StatusRestricted
			out.Description = descRestricted
			out.Capabilities = echo(raw)
		}
		return out
	}

	switch {
	case raw.PayoutsEnabled && len(raw.CurrentlyDue) > 0:
		out.Status = model.StatusRestrictedSoon
		out.Description = descRestrictedSoon
		out.Capabilities = model.Capabilities{ChargesEnabled: false, PayoutsEnabled: true}
	case len(raw.PendingVerification) > 0:
		out.Status = model.StatusPending
		out.Badge = model.BadgeDisabled
		out.Description = descPendingDisable
		out.Capabilities = model.Capabilities{}
	default:
		out.Status = model.StatusRestricted
		out.Description = descRestricted
		out.Capabilities = echo(raw)
	}
	return out
}

// classifySnapshot classifies snap and keeps the provider flags it was
// derived from alongside the result.
func classifySnapshot(snap model.AccountSnapshot) model.DerivedStatus {
	out := Classify(snap.AccountRawState)
	out.RawAccount = &model.RawAccount{
		ChargesEnabled:   snap.ChargesEnabled,
		PayoutsEnabled:   snap.PayoutsEnabled,
		DetailsSubmitted: snap.DetailsSubmitted,
		Requirements: model.Requirements{
			CurrentlyDue:        copyList(snap.CurrentlyDue),
			EventuallyDue:       copyList(snap.EventuallyDue),
			PastDue:             copyList(snap.PastDue),
			PendingVerification: copyList(snap.PendingVerification),
		},
	}
	return out
}

func echo(raw model.AccountRawState) model.Capabilities {
	return model.Capabilities{ChargesEnabled: raw.ChargesEnabled, PayoutsEnabled: raw.PayoutsEnabled}
}

func copyList(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

package model

import "time"

// Event is an already authenticated account lifecycle notification.
// It is either an AccountSnapshotEvent or an AccountTouchedEvent.
type Event interface {
	EventAccountID() string
	isEvent()
}

// AccountSnapshotEvent carries the full account state (account.updated).
type AccountSnapshotEvent struct {
	ID        string
	Type      string
	CreatedAt time.Time
	Account   AccountSnapshot
}

func (e AccountSnapshotEvent) EventAccountID() string { return e.Account.ID }
func (AccountSnapshotEvent) isEvent()                 {}

// AccountTouchedEvent only says that something about the account changed;
// the current state has to be fetched.
type AccountTouchedEvent struct {
	ID        string
	Type      string
	CreatedAt time.Time
	AccountID string
}

func (e AccountTouchedEvent) EventAccountID() string { return e.AccountID }
func (AccountTouchedEvent) isEvent()                 {}

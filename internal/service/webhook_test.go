package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connectdemo/internal/model"
)

const testSecret = "whsec_test"

func signPayload(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

const accountUpdatedPayload = `{
	"id": "evt_1",
	"object": "event",
	"type": "account.updated",
	"created": 1700000000,
	"account": "acct_1",
	"data": {"object": {
		"id": "acct_1",
		"object": "account",
		"charges_enabled": false,
		"payouts_enabled": true,
		"requirements": {
			"currently_due": ["company.tax_id"],
			"eventually_due": [],
			"past_due": [],
			"pending_verification": [],
			"disabled_reason": null
		}
	}}
}`

func TestWebhookParser_AccountUpdated(t *testing.T) {
	p := NewWebhookParser(testSecret)
	payload := []byte(accountUpdatedPayload)

	d, err := p.Parse(payload, signPayload(payload, testSecret, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, "evt_1", d.ID)
	assert.Equal(t, EventAccountUpdated, d.Type)

	snap, ok := d.Event.(model.AccountSnapshotEvent)
	require.True(t, ok)
	assert.Equal(t, "acct_1", snap.Account.ID)
	assert.True(t, snap.Account.PayoutsEnabled)
	assert.Equal(t, []string{"company.tax_id"}, snap.Account.CurrentlyDue)
	assert.Empty(t, snap.Account.DisabledReason)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), snap.CreatedAt)
	assert.Equal(t, model.StatusRestrictedSoon, Classify(snap.Account.AccountRawState).Status)
}

func TestWebhookParser_TouchedEvents(t *testing.T) {
	p := NewWebhookParser("")

	for _, typ := range []string{
		EventCapabilityUpdated,
		EventApplicationAuthorized,
		EventPersonCreated,
		EventPersonUpdated,
		EventPersonDeleted,
	} {
		t.Run(typ, func(t *testing.T) {
			payload := []byte(fmt.Sprintf(`{"id":"evt_2","type":%q,"account":"acct_9","created":1700000000,"data":{"object":{"id":"x"}}}`, typ))
			d, err := p.Parse(payload, "t=1,v1=unused")
			require.NoError(t, err)

			touched, ok := d.Event.(model.AccountTouchedEvent)
			require.True(t, ok)
			assert.Equal(t, "acct_9", touched.AccountID)
			assert.Equal(t, typ, touched.Type)
		})
	}
}

func TestWebhookParser_IgnoredEvents(t *testing.T) {
	p := NewWebhookParser("")

	d, err := p.Parse([]byte(`{"id":"evt_3","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1"}}}`), "sig")
	require.NoError(t, err)
	assert.Equal(t, "payment_intent.succeeded", d.Type)
	assert.Nil(t, d.Event)

	d, err = p.Parse([]byte(`{"id":"evt_4","type":"person.updated","data":{"object":{"id":"person_1"}}}`), "sig")
	require.NoError(t, err)
	assert.Nil(t, d.Event)
}

func TestWebhookParser_Rejects(t *testing.T) {
	payload := []byte(accountUpdatedPayload)

	_, err := NewWebhookParser(testSecret).Parse(payload, "")
	assert.ErrorIs(t, err, ErrMissingSignature)

	_, err = NewWebhookParser(testSecret).Parse(payload, signPayload(payload, "whsec_other", time.Now()))
	assert.ErrorIs(t, err, ErrInvalidSignature)

	_, err = NewWebhookParser(testSecret).Parse(payload, signPayload(payload, testSecret, time.Now().Add(-time.Hour)))
	assert.ErrorIs(t, err, ErrInvalidSignature)

	_, err = NewWebhookParser("").Parse([]byte(`{not json`), "sig")
	assert.ErrorIs(t, err, ErrInvalidEventPayload)

	_, err = NewWebhookParser("").Parse([]byte(`{"id":"evt_5","type":"account.updated"}`), "sig")
	assert.ErrorIs(t, err, ErrInvalidEventPayload)
}

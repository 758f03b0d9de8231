package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAccount(t *testing.T) {
	s := newTestServer(t, "")
	body := `{
		"profile_type": "company",
		"profile_data": {"name": "Wheezes Retail Ltd", "email": "contact@wheezesretail.co.uk", "phone": "+442071234567"},
		"business_profile": {"mcc": "5999"}
	}`

	rec := s.do(t, http.MethodPost, "/api/accounts", body, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"account_id":"acct_new","location_id":"tml_1","message":"Account created successfully"}`, rec.Body.String())
}

func TestCreateAccount_Validation(t *testing.T) {
	s := newTestServer(t, "")

	tests := []struct {
		name    string
		body    string
		message string
		errors  []any
	}{
		{
			name:    "bad type",
			body:    `{"profile_type":"sole_trader","profile_data":{"name":"x"}}`,
			message: "profile_type must be 'individual' or 'company'",
		},
		{
			name:    "no data",
			body:    `{"profile_type":"individual"}`,
			message: "profile_data is required",
		},
		{
			name:    "invalid profile",
			body:    `{"profile_type":"individual","profile_data":{"firstName":"Basil","email":"basil"}}`,
			message: "Profile validation failed",
			errors:  []any{"lastName is required", "email must be a valid email address"},
		},
		{
			name:    "malformed body",
			body:    `{"profile_type":`,
			message: "invalid request body: unexpected EOF",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/api/accounts", tt.body, nil)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			body := decode(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.message, body["message"])
			if tt.errors != nil {
				assert.Equal(t, tt.errors, body["errors"])
			} else {
				assert.NotContains(t, body, "errors")
			}
		})
	}
}

func TestAccountSession(t *testing.T) {
	s := newTestServer(t, "")

	rec := s.do(t, http.MethodPost, "/api/account_session", "", map[string]string{"account": "acct_1"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"clientSecret":"secret_acct_1"}`, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/account_session", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Account ID is required in headers"}`, rec.Body.String())
}

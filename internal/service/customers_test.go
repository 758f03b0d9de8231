package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connectdemo/internal/model"
)

func TestCustomerService(t *testing.T) {
	p := newFakeProvider()
	svc := NewCustomerService(p)
	ctx := context.Background()

	list, err := svc.List(ctx, "acct_1")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	c, err := svc.Create(ctx, model.NewCustomer{AccountID: "acct_1", Name: "Del Trotter", Email: "del@trotters.co.uk"})
	require.NoError(t, err)
	assert.Equal(t, "cus_new", c.ID)

	list, err = svc.List(ctx, "acct_1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCustomerService_Validation(t *testing.T) {
	svc := NewCustomerService(newFakeProvider())

	_, err := svc.List(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingAccount)

	_, err = svc.Create(context.Background(), model.NewCustomer{AccountID: "acct_1", Name: "Del", Email: "not-an-email"})
	re := requestError(t, err)
	assert.Equal(t, "email must be a valid email address", re.Message)

	_, err = svc.Create(context.Background(), model.NewCustomer{Name: "Del", Email: "del@example.com"})
	re = requestError(t, err)
	assert.Equal(t, "account_id is required", re.Message)
}

package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectdemo/internal/model"
)

type CustomerService struct {
	customers CustomerProvider
}

func NewCustomerService(customers CustomerProvider) *CustomerService {
	return &CustomerService{customers: customers}
}

func (s *CustomerService) List(ctx context.Context, accountID string) ([]model.Customer, error) {
	if accountID == "" {
		return nil, ErrMissingAccount
	}
	slog.Info("fetching customers", "account_id", accountID)
	customers, err := s.customers.ListCustomers(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	if customers == nil {
		customers = []model.Customer{}
	}
	return customers, nil
}

func (s *CustomerService) Create(ctx context.Context, req model.NewCustomer) (model.Customer, error) {
	if err := asRequestError("", Validate(req)); err != nil {
		return model.Customer{}, err
	}
	slog.Info("creating customer", "account_id", req.AccountID)
	c, err := s.customers.CreateCustomer(ctx, req)
	if err != nil {
		return model.Customer{}, fmt.Errorf("create customer: %w", err)
	}
	return c, nil
}

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"connectdemo/internal/model"
)

const defaultMCC = "5999"

var defaultLocation = model.NewLocation{
	DisplayName: "HSBC Business Location",
	Address: model.Address{
		Line1:      "123 Business Street",
		City:       "London",
		Country:    "GB",
		PostalCode: "SW1A 1AA",
	},
}

type AccountService struct {
	accounts AccountProvider
	terminal TerminalProvider
}

func NewAccountService(accounts AccountProvider, terminal TerminalProvider) *AccountService {
	return &AccountService{accounts: accounts, terminal: terminal}
}

// Create opens a connected account and then tries to give it a default
// Terminal location. A location failure does not fail the call.
func (s *AccountService) Create(ctx context.Context, req model.AccountRequest) (model.CreatedAccount, error) {
	acct, err := ParseAccountRequest(req)
	if err != nil {
		return model.CreatedAccount{}, err
	}

	slog.Info("creating connected account", "profile_type", acct.ProfileType)
	id, err := s.accounts.CreateAccount(ctx, acct)
	if err != nil {
		return model.CreatedAccount{}, fmt.Errorf("create account: %w", err)
	}
	slog.Info("account created", "account_id", id)

	out := model.CreatedAccount{AccountID: id}
	locID, err := s.terminal.CreateLocation(ctx, id, defaultLocation)
	if err != nil {
		slog.Warn("failed to create default location", "account_id", id, "error", err)
		return out, nil
	}
	slog.Info("created default location", "account_id", id, "location_id", locID)
	out.LocationID = locID
	return out, nil
}

func (s *AccountService) CreateSession(ctx context.Context, accountID string) (string, error) {
	if accountID == "" {
		return "", ErrMissingAccount
	}
	secret, err := s.accounts.CreateAccountSession(ctx, accountID)
	if err != nil {
		return "", fmt.Errorf("create account session: %w", err)
	}
	slog.Info("account session created", "account_id", accountID)
	return secret, nil
}

// ParseAccountRequest validates an account creation body and fills in the
// business profile defaults.
func ParseAccountRequest(req model.AccountRequest) (model.NewAccount, error) {
	if req.ProfileType != model.ProfileIndividual && req.ProfileType != model.ProfileCompany {
		return model.NewAccount{}, invalid("profile_type", "profile_type must be 'individual' or 'company'")
	}
	data := bytes.TrimSpace(req.ProfileData)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte("{}")) {
		return model.NewAccount{}, invalid("profile_data", "profile_data is required")
	}

	var bp model.BusinessProfile
	if req.BusinessProfile != nil {
		bp = *req.BusinessProfile
	}

	out := model.NewAccount{ProfileType: req.ProfileType}
	switch req.ProfileType {
	case model.ProfileIndividual:
		var p model.IndividualProfile
		if err := json.Unmarshal(data, &p); err != nil {
			return model.NewAccount{}, invalid("profile_data", "profile_data is malformed")
		}
		if err := asRequestError("Profile validation failed", Validate(p)); err != nil {
			return model.NewAccount{}, err
		}
		out.Individual = &p
		out.HolderName = p.FirstName + " " + p.LastName
		out.BusinessName = firstNonEmpty(p.BusinessName, out.HolderName)
		bp = model.BusinessProfile{
			MCC:                firstNonEmpty(bp.MCC, defaultMCC),
			URL:                firstNonEmpty(p.Website, bp.URL),
			SupportPhone:       firstNonEmpty(bp.SupportPhone, p.Phone),
			ProductDescription: firstNonEmpty(bp.ProductDescription, p.ProductDescription),
		}
	case model.ProfileCompany:
		var p model.CompanyProfile
		if err := json.Unmarshal(data, &p); err != nil {
			return model.NewAccount{}, invalid("profile_data", "profile_data is malformed")
		}
		if err := asRequestError("Profile validation failed", Validate(p)); err != nil {
			return model.NewAccount{}, err
		}
		out.Company = &p
		out.HolderName = p.Name
		out.BusinessName = p.Name
		bp = model.BusinessProfile{
			MCC:                firstNonEmpty(p.MCC, bp.MCC, defaultMCC),
			URL:                firstNonEmpty(p.URL, bp.URL),
			SupportPhone:       firstNonEmpty(bp.SupportPhone, p.Phone),
			ProductDescription: firstNonEmpty(bp.ProductDescription, p.ProductDescription),
		}
	}

	if req.BusinessProfile != nil {
		if err := asRequestError("Business profile validation failed", Validate(*req.BusinessProfile)); err != nil {
			return model.NewAccount{}, err
		}
	}
	out.BusinessProfile = bp
	return out, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

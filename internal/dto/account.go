package dto

import (
	"time"

	"github.com/SscSPs/finance_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name        string             `json:"name" validate:"required,max=128"`
	Description string             `json:"description" validate:"max=4000"`                                     // Optional
	AccountType domain.AccountType `json:"accountType" validate:"omitempty,oneof=SAVINGS CURRENT LOAN LENDING"` // Defaults to CURRENT
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name        *string             `json:"name" validate:"omitempty,min=1,max=128"`
	Description *string             `json:"description" validate:"omitempty,max=4000"`
	AccountType *domain.AccountType `json:"accountType" validate:"omitempty,oneof=SAVINGS CURRENT LOAN LENDING"`
	Closed      *bool               `json:"closed"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string             `json:"accountID"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	AccountType   domain.AccountType `json:"accountType"`
	Closed        bool               `json:"closed"`
	Balance       decimal.Decimal    `json:"balance"`
	Commitment    decimal.Decimal    `json:"commitment"`
	CreatedAt     time.Time          `json:"createdAt"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Name:          acc.Name,
		Description:   acc.Description,
		AccountType:   acc.AccountType,
		Closed:        acc.Closed,
		Balance:       acc.Balance,
		Commitment:    acc.Commitment,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsParams defines paging for listing accounts.
type ListAccountsParams struct {
	Limit  int `validate:"gte=0,lte=500"`
	Offset int `validate:"gte=0"`
}

package dto

import (
	"time"

	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code            string             `json:"code" binding:"required"`
	Name            string             `json:"name" binding:"required"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentAccountID *string            `json:"parentAccountID"` // Optional, use pointer for nullability
	Description     string             `json:"description"`     // Optional
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Pointers distinguish zero-value updates from fields not provided.
// Code and AccountType are deliberately absent: reassigning either after
// postings exist would corrupt historical reports.
type UpdateAccountRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string             `json:"accountID"`
	Code            string             `json:"code"`
	Name            string             `json:"name"`
	AccountType     domain.AccountType `json:"accountType"`
	ParentAccountID string             `json:"parentAccountID"` // Empty string if root
	Description     string             `json:"description"`
	IsActive        bool               `json:"isActive"`
	CreatedAt       time.Time          `json:"createdAt"`
	LastUpdatedAt   time.Time          `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		Code:            acc.Code,
		Name:            acc.Name,
		AccountType:     acc.AccountType,
		ParentAccountID: acc.ParentAccountID,
		Description:     acc.Description,
		IsActive:        acc.IsActive,
		CreatedAt:       acc.CreatedAt,
		LastUpdatedAt:   acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

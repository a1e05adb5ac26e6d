package handlers

import (
	"context"
	"net/http"

	"horizon-server/src/bank"
	"horizon-server/src/models"
)

type UserStore interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, req models.SignUpRequest, hashedPassword []byte) (*models.RegisterResponse, error)
	UpdateUserLastLogin(ctx context.Context, userID int64) error
}

type BankStore interface {
	CreateBank(ctx context.Context, bank models.Bank) (*models.Bank, error)
	GetBanks(ctx context.Context, userID int64) ([]models.Bank, error)
	UpdateBankStatus(ctx context.Context, itemID, status string) error
}

// LinkProvider is the part of Plaid used while linking a new item.
type LinkProvider interface {
	CreateLinkToken(ctx context.Context, userID int64) (string, error)
	ExchangePublicToken(ctx context.Context, publicToken string) (accessToken, itemID string, err error)
	GetAccounts(ctx context.Context, accessToken string) ([]models.Account, error)
}

type AccountService interface {
	GetAccounts(ctx context.Context, userID int64) *models.AccountsSummary
	GetAccount(ctx context.Context, userID, bankID int64) bank.AccountResult
}

type WebhookVerifier interface {
	Verify(ctx context.Context, body []byte, header http.Header) error
}

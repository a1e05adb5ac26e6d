package bank

import (
	"context"
	"errors"
	"fmt"

	db "horizon-server/src/db/sql"
	"horizon-server/src/logger"
	"horizon-server/src/models"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type BankStore interface {
	GetBanks(ctx context.Context, userID int64) ([]models.Bank, error)
	GetBank(ctx context.Context, userID, bankID int64) (*models.Bank, error)
}

type DataProvider interface {
	GetAccounts(ctx context.Context, accessToken string) ([]models.Account, error)
	GetInstitution(ctx context.Context, institutionID string) (models.Institution, error)
	SyncTransactions(ctx context.Context, accessToken string) ([]models.RawTransaction, error)
}

var ErrNoAccounts = errors.New("item has no accounts")

// AccountResult is what the account endpoints render. Upstream failures
// leave Data nil and set Error instead of returning an error.
type AccountResult struct {
	Data         *models.Account         `json:"data"`
	Transactions []models.RawTransaction `json:"-"`
	Error        string                  `json:"error,omitempty"`
	NotFound     bool                    `json:"-"`
}

type Service struct {
	banks    BankStore
	provider DataProvider
}

func NewService(banks BankStore, provider DataProvider) *Service {
	return &Service{banks: banks, provider: provider}
}

// GetAccounts loads one account per linked bank, fetching banks in
// parallel. Any failure yields nil.
func (s *Service) GetAccounts(ctx context.Context, userID int64) *models.AccountsSummary {
	log := logger.FromContext(ctx)

	banks, err := s.banks.GetBanks(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to get banks")
		return nil
	}

	accounts := make([]models.Account, len(banks))
	g, gctx := errgroup.WithContext(ctx)
	for i, bank := range banks {
		i, bank := i, bank
		g.Go(func() error {
			account, err := s.account(gctx, bank)
			if err != nil {
				return fmt.Errorf("bank %d: %w", bank.ID, err)
			}
			accounts[i] = *account
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("An error occurred while getting the accounts")
		return nil
	}

	return Summarize(accounts)
}

// GetAccount loads a single bank's account together with its transactions.
func (s *Service) GetAccount(ctx context.Context, userID, bankID int64) AccountResult {
	log := logger.FromContext(ctx)

	bank, err := s.banks.GetBank(ctx, userID, bankID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return AccountResult{Error: fmt.Sprintf("Bank not found for id: %d", bankID), NotFound: true}
		}
		log.Error().Err(err).Int64("user_id", userID).Int64("bank_id", bankID).Msg("Failed to get bank")
		return AccountResult{Error: "Failed to fetch account"}
	}

	account, err := s.account(ctx, *bank)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Int64("bank_id", bankID).Msg("An error occurred while getting the account")
		return AccountResult{Error: "Failed to fetch account"}
	}

	return AccountResult{
		Data:         account,
		Transactions: s.GetTransactions(ctx, bank.AccessToken),
	}
}

// GetTransactions returns every transaction on the item, or an empty slice
// when Plaid fails.
func (s *Service) GetTransactions(ctx context.Context, accessToken string) []models.RawTransaction {
	raws, err := s.provider.SyncTransactions(ctx, accessToken)
	if err != nil {
		log := logger.FromContext(ctx)
		log.Error().Err(err).Msg("An error occurred while getting transactions")
		return []models.RawTransaction{}
	}
	if raws == nil {
		return []models.RawTransaction{}
	}
	return raws
}

func (s *Service) account(ctx context.Context, bank models.Bank) (*models.Account, error) {
	accounts, err := s.provider.GetAccounts(ctx, bank.AccessToken)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, ErrNoAccounts
	}

	account := accounts[0]
	for _, acc := range accounts {
		if acc.ID == bank.AccountID {
			account = acc
			break
		}
	}

	if account.InstitutionID != "" {
		inst, err := s.provider.GetInstitution(ctx, account.InstitutionID)
		if err != nil {
			return nil, err
		}
		account.InstitutionName = inst.Name
	}
	account.BankID = bank.ID
	account.SharableID = bank.SharableID
	return &account, nil
}

// Summarize totals current balances across accounts.
func Summarize(accounts []models.Account) *models.AccountsSummary {
	total := decimal.Zero
	for _, acc := range accounts {
		total = total.Add(acc.CurrentBalance)
	}
	if accounts == nil {
		accounts = []models.Account{}
	}
	return &models.AccountsSummary{
		Data:                accounts,
		TotalBanks:          len(accounts),
		TotalCurrentBalance: total,
	}
}

package txview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"horizon-server/src/logger"
	"horizon-server/src/models"

	"github.com/shopspring/decimal"
)

var ErrInvalidTransaction = errors.New("invalid transaction")

const UncategorizedCategory = "Uncategorized"

// ResolveCategory picks the personal finance category, then the first legacy
// category, then UncategorizedCategory.
func ResolveCategory(raw models.RawTransaction) string {
	if raw.PersonalFinanceCategory != nil {
		if primary := strings.TrimSpace(raw.PersonalFinanceCategory.Primary); primary != "" {
			return primary
		}
	}
	if len(raw.Category) > 0 {
		if legacy := strings.TrimSpace(raw.Category[0]); legacy != "" {
			return legacy
		}
	}
	return UncategorizedCategory
}

// SignedAmount reconciles an amount with its debit/credit flag. Without a
// recognised flag the amount is trusted as given.
func SignedAmount(amount decimal.Decimal, txType string) decimal.Decimal {
	switch strings.ToLower(strings.TrimSpace(txType)) {
	case models.TransactionTypeDebit:
		return amount.Abs().Neg()
	case models.TransactionTypeCredit:
		return amount.Abs()
	default:
		return amount
	}
}

func Normalize(raw models.RawTransaction, loc *time.Location) (models.Transaction, error) {
	id := strings.TrimSpace(raw.TransactionID)
	if id == "" {
		return models.Transaction{}, fmt.Errorf("%w: missing transaction_id", ErrInvalidTransaction)
	}
	if raw.Amount == nil {
		return models.Transaction{}, fmt.Errorf("%w: transaction %s missing amount", ErrInvalidTransaction, id)
	}
	if strings.TrimSpace(raw.Date) == "" && strings.TrimSpace(raw.Datetime) == "" {
		return models.Transaction{}, fmt.Errorf("%w: transaction %s missing date", ErrInvalidTransaction, id)
	}

	date, err := ParseTimestamp(raw.Date, raw.Datetime, loc)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("transaction %s: %w", id, err)
	}

	return models.Transaction{
		ID:             id,
		AccountID:      raw.AccountID,
		Name:           raw.Name,
		Amount:         SignedAmount(*raw.Amount, raw.Type),
		Date:           date,
		PaymentChannel: raw.PaymentChannel,
		Category:       ResolveCategory(raw),
		Pending:        raw.Pending,
		Image:          raw.LogoURL,
	}, nil
}

// NormalizeAll normalizes every record it can. Rejected records are logged
// and counted, they never abort the list.
func NormalizeAll(ctx context.Context, raws []models.RawTransaction, loc *time.Location) ([]models.Transaction, int) {
	log := logger.FromContext(ctx)
	out := make([]models.Transaction, 0, len(raws))
	skipped := 0
	for i, raw := range raws {
		txn, err := Normalize(raw, loc)
		if err != nil {
			skipped++
			log.Warn().Err(err).Int("index", i).Msg("Skipping malformed transaction")
			continue
		}
		out = append(out, txn)
	}
	return out, skipped
}

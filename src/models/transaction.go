package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionTypeDebit  = "debit"
	TransactionTypeCredit = "credit"
)

// PersonalFinanceCategory is Plaid's personal_finance_category object.
type PersonalFinanceCategory struct {
	Primary  string `json:"primary"`
	Detailed string `json:"detailed"`
}

// RawTransaction is a transaction as it arrives from the aggregation
// provider. Amount is a pointer so a missing amount can be told apart
// from a zero one.
type RawTransaction struct {
	TransactionID           string                   `json:"transaction_id"`
	AccountID               string                   `json:"account_id"`
	Name                    string                   `json:"name"`
	Amount                  *decimal.Decimal         `json:"amount"`
	Type                    string                   `json:"type,omitempty"`
	Date                    string                   `json:"date"`
	Datetime                string                   `json:"datetime,omitempty"`
	PaymentChannel          string                   `json:"payment_channel"`
	Pending                 bool                     `json:"pending"`
	PersonalFinanceCategory *PersonalFinanceCategory `json:"personal_finance_category,omitempty"`
	Category                []string                 `json:"category,omitempty"`
	LogoURL                 string                   `json:"logo_url,omitempty"`
}

// Transaction is the canonical, normalized shape. Amount is negative for
// outflows and positive for inflows.
type Transaction struct {
	ID             string          `json:"id"`
	AccountID      string          `json:"account_id"`
	Name           string          `json:"name"`
	Amount         decimal.Decimal `json:"amount"`
	Date           time.Time       `json:"date"`
	PaymentChannel string          `json:"payment_channel"`
	Category       string          `json:"category"`
	Pending        bool            `json:"pending"`
	Image          string          `json:"image,omitempty"`
}

func (t Transaction) IsDebit() bool {
	return t.Amount.IsNegative()
}

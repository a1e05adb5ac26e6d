package models

import "github.com/shopspring/decimal"

// Account is a read projection of one linked bank account. Balances come
// straight from the provider; available may exceed current.
type Account struct {
	ID               string          `json:"id"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	CurrentBalance   decimal.Decimal `json:"current_balance"`
	InstitutionID    string          `json:"institution_id"`
	InstitutionName  string          `json:"institution_name,omitempty"`
	Name             string          `json:"name"`
	OfficialName     string          `json:"official_name"`
	Mask             string          `json:"mask"`
	Type             string          `json:"type"`
	Subtype          string          `json:"subtype"`
	BankID           int64           `json:"bank_id"`
	SharableID       string          `json:"sharable_id"`
}

type AccountsSummary struct {
	Data                []Account       `json:"data"`
	TotalBanks          int             `json:"total_banks"`
	TotalCurrentBalance decimal.Decimal `json:"total_current_balance"`
}

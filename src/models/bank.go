package models

import "time"

// Bank is a linked Plaid item owned by a user.
type Bank struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	ItemID        string    `json:"item_id"`
	AccountID     string    `json:"account_id"`
	AccessToken   string    `json:"-"`
	InstitutionID string    `json:"institution_id"`
	SharableID    string    `json:"sharable_id"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

const (
	BankStatusActive        = "active"
	BankStatusLoginRequired = "login_required"
)

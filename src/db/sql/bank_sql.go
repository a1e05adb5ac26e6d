package db

import (
	"context"
	"fmt"

	"horizon-server/src/models"
)

const bankColumns = `id, user_id, item_id, account_id, access_token, institution_id, sharable_id, status, created_at`

func scanBank(row interface{ Scan(...any) error }) (models.Bank, error) {
	var b models.Bank
	err := row.Scan(&b.ID, &b.UserID, &b.ItemID, &b.AccountID, &b.AccessToken, &b.InstitutionID, &b.SharableID, &b.Status, &b.CreatedAt)
	return b, err
}

func (s *Store) CreateBank(ctx context.Context, bank models.Bank) (*models.Bank, error) {
	query := `
		INSERT INTO banks (user_id, item_id, account_id, access_token, institution_id, sharable_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (item_id) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			status = EXCLUDED.status
		RETURNING ` + bankColumns

	created, err := scanBank(s.pool.QueryRow(ctx, query,
		bank.UserID,
		bank.ItemID,
		bank.AccountID,
		bank.AccessToken,
		bank.InstitutionID,
		bank.SharableID,
		bank.Status,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to save bank: %w", err)
	}
	return &created, nil
}

func (s *Store) GetBanks(ctx context.Context, userID int64) ([]models.Bank, error) {
	query := `SELECT ` + bankColumns + ` FROM banks WHERE user_id = $1 ORDER BY created_at`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var banks []models.Bank
	for rows.Next() {
		b, err := scanBank(rows)
		if err != nil {
			return nil, err
		}
		banks = append(banks, b)
	}
	return banks, rows.Err()
}

func (s *Store) GetBank(ctx context.Context, userID, bankID int64) (*models.Bank, error) {
	query := `SELECT ` + bankColumns + ` FROM banks WHERE user_id = $1 AND id = $2`

	b, err := scanBank(s.pool.QueryRow(ctx, query, userID, bankID))
	if err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (s *Store) UpdateBankStatus(ctx context.Context, itemID, status string) error {
	cmd, err := s.pool.Exec(ctx, `UPDATE banks SET status = $1 WHERE item_id = $2`, status, itemID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/VenEttore/nw-planner/internal/app"
)

// ListSteamAccounts returns all steam accounts ordered by label.
func (s *Store) ListSteamAccounts(ctx context.Context) ([]app.SteamAccount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, COALESCE(notes, ''), created_at, updated_at
		FROM steam_accounts ORDER BY label ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query steam accounts: %w", err)
	}
	defer rows.Close()

	var accounts []app.SteamAccount
	for rows.Next() {
		var account app.SteamAccount
		err := rows.Scan(&account.ID, &account.Label, &account.Notes, &account.CreatedAt, &account.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan steam account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate steam accounts: %w", err)
	}
	return accounts, nil
}

// SteamAccountByID returns one steam account, or nil when absent.
func (s *Store) SteamAccountByID(ctx context.Context, id int64) (*app.SteamAccount, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, label, COALESCE(notes, ''), created_at, updated_at
		FROM steam_accounts WHERE id = ?`, id)

	var account app.SteamAccount
	err := row.Scan(&account.ID, &account.Label, &account.Notes, &account.CreatedAt, &account.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan steam account %d: %w", id, err)
	}
	return &account, nil
}

// CreateSteamAccount inserts an account. Labels are trimmed and must
// be unique.
func (s *Store) CreateSteamAccount(ctx context.Context, label, notes string) (*app.SteamAccount, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, fmt.Errorf("steam account label is required")
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO steam_accounts (label, notes) VALUES (?, ?)`, label, notes)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return nil, fmt.Errorf("a steam account with label %q already exists", label)
		}
		return nil, fmt.Errorf("failed to insert steam account: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted steam account id: %w", err)
	}
	return s.SteamAccountByID(ctx, id)
}

// UpdateSteamAccount rewrites label and notes.
func (s *Store) UpdateSteamAccount(ctx context.Context, id int64, label, notes string) (*app.SteamAccount, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, fmt.Errorf("steam account label is required")
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE steam_accounts SET label = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, label, notes, id)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return nil, fmt.Errorf("a steam account with label %q already exists", label)
		}
		return nil, fmt.Errorf("failed to update steam account %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check steam account update: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("steam account %d not found", id)
	}
	return s.SteamAccountByID(ctx, id)
}

// DeleteSteamAccount removes an account. Linked characters are
// reassigned to reassignTo when provided, otherwise unlinked.
func (s *Store) DeleteSteamAccount(ctx context.Context, id int64, reassignTo *int64) error {
	if reassignTo != nil && *reassignTo == id {
		return nil
	}

	if reassignTo != nil {
		_, err := s.db.ExecContext(ctx,
			`UPDATE characters SET steam_account_id = ? WHERE steam_account_id = ?`, *reassignTo, id)
		if err != nil {
			return fmt.Errorf("failed to reassign characters from steam account %d: %w", id, err)
		}
	} else {
		_, err := s.db.ExecContext(ctx,
			`UPDATE characters SET steam_account_id = NULL WHERE steam_account_id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to unlink characters from steam account %d: %w", id, err)
		}
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM steam_accounts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete steam account %d: %w", id, err)
	}
	return nil
}

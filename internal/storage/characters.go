package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/VenEttore/nw-planner/internal/app"
)

// CharacterByID returns one character, or nil when no character has
// that id. Used as the fallback lookup when the neighborhood join
// cannot resolve a venue or steam account.
func (s *Store) CharacterByID(ctx context.Context, id int64) (*app.Character, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, steam_account_id, COALESCE(server_name, ''), COALESCE(server_timezone, '')
		FROM characters WHERE id = ?`, id)

	var (
		character app.Character
		steamID   sql.NullInt64
	)
	err := row.Scan(&character.ID, &character.Name, &steamID, &character.ServerName, &character.ServerTimezone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan character %d: %w", id, err)
	}

	character.SteamAccountID = scanNullableID(steamID)
	return &character, nil
}

// ListCharacters returns all characters ordered by name.
func (s *Store) ListCharacters(ctx context.Context) ([]app.Character, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, steam_account_id, COALESCE(server_name, ''), COALESCE(server_timezone, '')
		FROM characters ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query characters: %w", err)
	}
	defer rows.Close()

	var characters []app.Character
	for rows.Next() {
		var (
			character app.Character
			steamID   sql.NullInt64
		)
		err := rows.Scan(&character.ID, &character.Name, &steamID, &character.ServerName, &character.ServerTimezone)
		if err != nil {
			return nil, fmt.Errorf("failed to scan character: %w", err)
		}
		character.SteamAccountID = scanNullableID(steamID)
		characters = append(characters, character)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate characters: %w", err)
	}
	return characters, nil
}

// CreateCharacter inserts a character and returns it with its id.
func (s *Store) CreateCharacter(ctx context.Context, character app.Character) (*app.Character, error) {
	if character.Name == "" {
		return nil, fmt.Errorf("character name is required")
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO characters (name, steam_account_id, server_name, server_timezone)
		VALUES (?, ?, ?, ?)`,
		character.Name, nullableID(character.SteamAccountID), character.ServerName, character.ServerTimezone)
	if err != nil {
		return nil, fmt.Errorf("failed to insert character: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted character id: %w", err)
	}

	character.ID = id
	return &character, nil
}

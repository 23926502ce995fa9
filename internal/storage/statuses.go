package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/VenEttore/nw-planner/internal/app"
)

const statusColumns = `id, name, slug, COALESCE(color_bg, ''), COALESCE(color_text, ''), sort_order, is_absent, is_default`

// ParticipationStatuses returns every status label ordered by sort
// order then name. This is the read side consumed by the status cache.
func (s *Store) ParticipationStatuses(ctx context.Context) ([]app.ParticipationStatus, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+statusColumns+`
		FROM participation_statuses
		ORDER BY sort_order ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query participation statuses: %w", err)
	}
	defer rows.Close()

	var statuses []app.ParticipationStatus
	for rows.Next() {
		status, err := scanStatus(rows.Scan)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, *status)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participation statuses: %w", err)
	}
	return statuses, nil
}

// ParticipationStatusByID returns one status row, or nil when no
// status has that id.
func (s *Store) ParticipationStatusByID(ctx context.Context, id int64) (*app.ParticipationStatus, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+statusColumns+` FROM participation_statuses WHERE id = ?`, id)

	status, err := scanStatus(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return status, err
}

// ParticipationStatusByName returns one status row, or nil when no
// status has that name.
func (s *Store) ParticipationStatusByName(ctx context.Context, name string) (*app.ParticipationStatus, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+statusColumns+` FROM participation_statuses WHERE name = ?`, name)

	status, err := scanStatus(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return status, err
}

// CreateParticipationStatus inserts a status label.
func (s *Store) CreateParticipationStatus(ctx context.Context, status app.ParticipationStatus) (*app.ParticipationStatus, error) {
	name := strings.TrimSpace(status.Name)
	if name == "" {
		return nil, fmt.Errorf("participation status name is required")
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO participation_statuses (name, slug, color_bg, color_text, sort_order, is_absent, is_default)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		name, strings.TrimSpace(status.Slug), status.ColorBg, status.ColorText,
		status.SortOrder, boolToInt(status.IsAbsent), boolToInt(status.IsDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to insert participation status: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted status id: %w", err)
	}

	status.ID = id
	status.Name = name
	return &status, nil
}

// UpdateParticipationStatus rewrites a status row in full.
func (s *Store) UpdateParticipationStatus(ctx context.Context, status app.ParticipationStatus) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE participation_statuses
		SET name = ?, slug = ?, color_bg = ?, color_text = ?, sort_order = ?, is_absent = ?, is_default = ?
		WHERE id = ?`,
		status.Name, status.Slug, status.ColorBg, status.ColorText,
		status.SortOrder, boolToInt(status.IsAbsent), boolToInt(status.IsDefault), status.ID)
	if err != nil {
		return fmt.Errorf("failed to update participation status %d: %w", status.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check status update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("participation status %d not found", status.ID)
	}
	return nil
}

// DeleteParticipationStatus removes a non-default status. When
// replaceWith is non-empty, events carrying the deleted label are
// remapped to it first.
func (s *Store) DeleteParticipationStatus(ctx context.Context, id int64, replaceWith string) error {
	existing, err := s.ParticipationStatusByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("participation status %d not found", id)
	}
	if existing.IsDefault {
		return fmt.Errorf("cannot delete default participation status %q", existing.Name)
	}

	if replaceWith != "" {
		_, err := s.db.ExecContext(ctx,
			`UPDATE events SET participation_status = ? WHERE participation_status = ?`,
			replaceWith, existing.Name)
		if err != nil {
			return fmt.Errorf("failed to remap events from status %q: %w", existing.Name, err)
		}
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM participation_statuses WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete participation status %d: %w", id, err)
	}
	return nil
}

func scanStatus(scan func(...interface{}) error) (*app.ParticipationStatus, error) {
	var (
		status    app.ParticipationStatus
		isAbsent  int
		isDefault int
	)
	err := scan(&status.ID, &status.Name, &status.Slug, &status.ColorBg,
		&status.ColorText, &status.SortOrder, &isAbsent, &isDefault)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan participation status: %w", err)
	}
	status.IsAbsent = isAbsent == 1
	status.IsDefault = isDefault == 1
	return &status, nil
}

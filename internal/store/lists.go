package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"daylist/internal/service"
)

// ListLists returns the user's lists, default first, then by creation time.
func (s *Store) ListLists(ctx context.Context, userID string) ([]service.TaskList, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, is_default FROM lists
		WHERE user_id = ?
		ORDER BY is_default DESC, created_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []service.TaskList
	for rows.Next() {
		var l service.TaskList
		if err := rows.Scan(&l.ID, &l.Name, &l.IsDefault); err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

// CreateList creates a named list for the user. Names are unique per user.
func (s *Store) CreateList(ctx context.Context, userID, name string) (service.TaskList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return service.TaskList{}, fmt.Errorf("list name required: %w", service.ErrValidation)
	}

	id := GenerateID()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO lists (id, user_id, name, is_default, created_at)
		VALUES (?, ?, ?, 0, ?)
	`, id, userID, name, time.Now().UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return service.TaskList{}, fmt.Errorf("list name taken: %s: %w", name, service.ErrValidation)
		}
		return service.TaskList{}, err
	}
	return service.TaskList{ID: id, Name: name}, nil
}

// RenameList changes a list's name, keeping the per-user uniqueness rule.
func (s *Store) RenameList(ctx context.Context, userID, listID, name string) (service.TaskList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return service.TaskList{}, fmt.Errorf("list name required: %w", service.ErrValidation)
	}

	list, err := s.getList(ctx, userID, listID)
	if err != nil {
		return service.TaskList{}, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE lists SET name = ? WHERE id = ?
	`, name, listID)
	if err != nil {
		if isUniqueViolation(err) {
			return service.TaskList{}, fmt.Errorf("list name taken: %s: %w", name, service.ErrValidation)
		}
		return service.TaskList{}, err
	}
	list.Name = name
	return list, nil
}

// DeleteList removes a list and, through the foreign key cascade, all of
// its tasks. The default list cannot be deleted.
func (s *Store) DeleteList(ctx context.Context, userID, listID string) error {
	list, err := s.getList(ctx, userID, listID)
	if err != nil {
		return err
	}
	if list.IsDefault {
		return fmt.Errorf("cannot delete the default list: %w", service.ErrValidation)
	}

	_, err = s.db.ExecContext(ctx, `DELETE FROM lists WHERE id = ?`, listID)
	return err
}

// getList fetches a list and enforces ownership: a missing row is
// NotFound, a row owned by someone else fails closed as Forbidden.
func (s *Store) getList(ctx context.Context, userID, listID string) (service.TaskList, error) {
	var l service.TaskList
	var owner string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, is_default FROM lists WHERE id = ?
	`, listID).Scan(&l.ID, &owner, &l.Name, &l.IsDefault)
	if errors.Is(err, sql.ErrNoRows) {
		return service.TaskList{}, fmt.Errorf("list %s: %w", listID, service.ErrNotFound)
	}
	if err != nil {
		return service.TaskList{}, err
	}
	if owner != userID {
		return service.TaskList{}, service.ErrForbidden
	}
	return l, nil
}

// isUniqueViolation reports whether err is a sqlite UNIQUE constraint
// failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

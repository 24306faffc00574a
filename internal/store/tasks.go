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

const taskColumns = `id, list_id, title, is_completed, is_important, position,
	created_at, updated_at, completed_at`

// ListTasks returns a list's tasks in the order the client renders them:
// incomplete by ascending position, then completed by most recent
// completion first.
func (s *Store) ListTasks(ctx context.Context, userID, listID string) ([]service.Task, error) {
	if _, err := s.getList(ctx, userID, listID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+taskColumns+` FROM tasks
		WHERE list_id = ?
		ORDER BY is_completed ASC,
			CASE WHEN is_completed = 0 THEN position END ASC,
			completed_at DESC
	`, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

// ListImportant returns the user's important tasks across all lists. There
// is no position space spanning lists; ordering is list id, then position.
func (s *Store) ListImportant(ctx context.Context, userID string) ([]service.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+taskColumns+` FROM tasks
		WHERE user_id = ? AND is_important = 1
		ORDER BY list_id ASC, position ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

// CreateTask inserts a task at the end of the list's incomplete ordering:
// position = current max + 1.
func (s *Store) CreateTask(ctx context.Context, userID, listID, title string) (service.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return service.Task{}, fmt.Errorf("title required: %w", service.ErrValidation)
	}
	if _, err := s.getList(ctx, userID, listID); err != nil {
		return service.Task{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return service.Task{}, err
	}
	defer tx.Rollback()

	var maxPos sql.NullInt64
	err = tx.QueryRowContext(ctx, `
		SELECT MAX(position) FROM tasks WHERE list_id = ? AND is_completed = 0
	`, listID).Scan(&maxPos)
	if err != nil {
		return service.Task{}, err
	}
	pos := 0
	if maxPos.Valid {
		pos = int(maxPos.Int64) + 1
	}

	now := time.Now().UTC()
	task := service.Task{
		ID:        GenerateID(),
		ListID:    listID,
		Title:     title,
		Position:  pos,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO tasks (id, list_id, user_id, title, is_completed, is_important,
			position, created_at, updated_at)
		VALUES (?, ?, ?, ?, 0, 0, ?, ?, ?)
	`, task.ID, listID, userID, title, pos, now, now)
	if err != nil {
		return service.Task{}, err
	}
	return task, tx.Commit()
}

// rowQuerier is satisfied by both *sql.DB and *sql.Tx, so ownership reads
// can run inside a write's transaction.
type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// GetTask fetches a task, enforcing ownership.
func (s *Store) GetTask(ctx context.Context, userID, taskID string) (service.Task, error) {
	return getTask(ctx, s.db, userID, taskID)
}

func getTask(ctx context.Context, q rowQuerier, userID, taskID string) (service.Task, error) {
	row := q.QueryRowContext(ctx, `
		SELECT `+taskColumns+`, user_id FROM tasks WHERE id = ?
	`, taskID)

	var t service.Task
	var completedAt sql.NullTime
	var owner string
	err := row.Scan(&t.ID, &t.ListID, &t.Title, &t.IsCompleted, &t.IsImportant,
		&t.Position, &t.CreatedAt, &t.UpdatedAt, &completedAt, &owner)
	if errors.Is(err, sql.ErrNoRows) {
		return service.Task{}, fmt.Errorf("task %s: %w", taskID, service.ErrNotFound)
	}
	if err != nil {
		return service.Task{}, err
	}
	if owner != userID {
		return service.Task{}, service.ErrForbidden
	}
	if completedAt.Valid {
		t.CompletedAt = &completedAt.Time
	}
	return t, nil
}

// UpdateTask applies a partial update and returns the stored row.
// Completion toggling sets or clears completed_at and never touches the
// position.
func (s *Store) UpdateTask(ctx context.Context, userID, taskID string, patch service.TaskPatch) (service.Task, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return service.Task{}, err
	}
	defer tx.Rollback()

	t, err := getTask(ctx, tx, userID, taskID)
	if err != nil {
		return service.Task{}, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return service.Task{}, fmt.Errorf("title required: %w", service.ErrValidation)
		}
		t.Title = title
	}
	if patch.IsImportant != nil {
		t.IsImportant = *patch.IsImportant
	}
	if patch.IsCompleted != nil && *patch.IsCompleted != t.IsCompleted {
		t.IsCompleted = *patch.IsCompleted
		if t.IsCompleted {
			now := time.Now().UTC()
			t.CompletedAt = &now
		} else {
			t.CompletedAt = nil
		}
	}
	t.UpdatedAt = time.Now().UTC()

	var completedAt any
	if t.CompletedAt != nil {
		completedAt = *t.CompletedAt
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE tasks SET title = ?, is_completed = ?, is_important = ?,
			updated_at = ?, completed_at = ?
		WHERE id = ?
	`, t.Title, t.IsCompleted, t.IsImportant, t.UpdatedAt, completedAt, taskID)
	if err != nil {
		return service.Task{}, err
	}
	return t, tx.Commit()
}

// DeleteTask removes a task.
func (s *Store) DeleteTask(ctx context.Context, userID, taskID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := getTask(ctx, tx, userID, taskID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, taskID); err != nil {
		return err
	}
	return tx.Commit()
}

func scanTasks(rows *sql.Rows) ([]service.Task, error) {
	var tasks []service.Task
	for rows.Next() {
		var t service.Task
		var completedAt sql.NullTime
		err := rows.Scan(&t.ID, &t.ListID, &t.Title, &t.IsCompleted, &t.IsImportant,
			&t.Position, &t.CreatedAt, &t.UpdatedAt, &completedAt)
		if err != nil {
			return nil, err
		}
		if completedAt.Valid {
			t.CompletedAt = &completedAt.Time
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

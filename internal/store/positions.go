package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"daylist/internal/service"
)

// ApplyPositions atomically replaces the positions of a list's incomplete
// tasks with the given batch. The whole batch commits or none of it does.
//
// Fails with service.ErrForbidden when the list is not the user's or any
// task in the batch is not in the list, and with service.ErrConflict when
// the batch carries a duplicate position. The caller is expected to send a
// dense re-densified batch; a duplicate means a client bug, not a race.
func (s *Store) ApplyPositions(ctx context.Context, userID, listID string, orders []service.TaskOrder) error {
	if _, err := s.getList(ctx, userID, listID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return service.ErrForbidden
		}
		return err
	}
	if len(orders) == 0 {
		return nil
	}

	seen := make(map[int]bool, len(orders))
	for _, o := range orders {
		if seen[o.Position] {
			return fmt.Errorf("duplicate position %d: %w", o.Position, service.ErrConflict)
		}
		seen[o.Position] = true
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, o := range orders {
		var owner, owningList string
		err := tx.QueryRowContext(ctx, `
			SELECT user_id, list_id FROM tasks WHERE id = ?
		`, o.ID).Scan(&owner, &owningList)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("task %s: %w", o.ID, service.ErrForbidden)
		}
		if err != nil {
			return err
		}
		if owner != userID || owningList != listID {
			return fmt.Errorf("task %s: %w", o.ID, service.ErrForbidden)
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE tasks SET position = ?, updated_at = ? WHERE id = ?
		`, o.Position, now, o.ID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

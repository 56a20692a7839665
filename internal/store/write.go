package store

import (
	"context"
	"fmt"
)

// WriteEvaluation inserts an evaluation record into the store.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate IDs are silently ignored.
// Other constraint violations (e.g., NOT NULL) will still return errors.
func (s *Store) WriteEvaluation(ctx context.Context, ev Evaluation) error {
	if ev.ID == "" {
		return fmt.Errorf("write evaluation: empty id")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO evaluations
		(id, seq, expression, expr_hash, result, exact, digits, radix, error_code, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		ev.ID,
		ev.Seq,
		ev.Expression,
		ev.ExprHash,
		ev.Result,
		boolToInt(ev.Exact),
		ev.Digits,
		ev.Radix,
		ev.ErrorCode,
		ev.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("write evaluation: %w", err)
	}

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

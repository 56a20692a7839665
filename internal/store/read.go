package store

import (
	"context"
	"database/sql"
	"fmt"
)

const selectEvaluation = `
	SELECT id, seq, expression, expr_hash, result, exact, digits, radix, error_code, error_message
	FROM evaluations
`

// ReadEvaluation retrieves a single evaluation by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadEvaluation(ctx context.Context, id string) (Evaluation, error) {
	row := s.db.QueryRowContext(ctx, selectEvaluation+"WHERE id = ?", id)
	return scanEvaluation(row)
}

// ReadRecent returns up to limit evaluations, newest first.
//
// Returns an empty slice (not nil) if the store is empty.
func (s *Store) ReadRecent(ctx context.Context, limit int) ([]Evaluation, error) {
	if limit <= 0 {
		return []Evaluation{}, nil
	}
	return s.queryEvaluations(ctx, selectEvaluation+`
		ORDER BY seq DESC, id COLLATE BINARY ASC
		LIMIT ?
	`, limit)
}

// ReadByHash returns every evaluation of the expression with the given
// hash, oldest first.
//
// Returns an empty slice (not nil) if there are none.
func (s *Store) ReadByHash(ctx context.Context, hash string) ([]Evaluation, error) {
	return s.queryEvaluations(ctx, selectEvaluation+`
		WHERE expr_hash = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, hash)
}

func (s *Store) queryEvaluations(ctx context.Context, query string, args ...any) ([]Evaluation, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	defer rows.Close()

	var evals []Evaluation
	for rows.Next() {
		ev, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		evals = append(evals, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evaluations: %w", err)
	}

	// Return empty slice instead of nil
	if evals == nil {
		evals = []Evaluation{}
	}

	return evals, nil
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvaluation(row rowScanner) (Evaluation, error) {
	var ev Evaluation
	var exact int
	err := row.Scan(
		&ev.ID,
		&ev.Seq,
		&ev.Expression,
		&ev.ExprHash,
		&ev.Result,
		&exact,
		&ev.Digits,
		&ev.Radix,
		&ev.ErrorCode,
		&ev.ErrorMessage,
	)
	if err == sql.ErrNoRows {
		return Evaluation{}, err
	}
	if err != nil {
		return Evaluation{}, fmt.Errorf("scan evaluation: %w", err)
	}
	ev.Exact = exact != 0
	return ev, nil
}

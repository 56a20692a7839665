package store

import (
	"context"
	"fmt"
)

// Replay calls fn for every stored evaluation in seq order. It stops at
// the first error from fn and returns it.
//
// Records are read in full before fn is called, so fn may write to the
// store.
func (s *Store) Replay(ctx context.Context, fn func(Evaluation) error) error {
	evals, err := s.queryEvaluations(ctx, selectEvaluation+`
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	for _, ev := range evals {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("replay: %w", err)
		}
		if err := fn(ev); err != nil {
			return err
		}
	}

	return nil
}

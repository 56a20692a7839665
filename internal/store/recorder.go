package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// IDGenerator produces record IDs.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 IDs.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Recorder stamps evaluations with an ID and a seq and writes them.
type Recorder struct {
	store *Store
	ids   IDGenerator
	clock *Clock
}

// NewRecorder returns a Recorder whose clock resumes after the largest
// stored seq. ids may be nil, which means UUIDv7Generator.
func NewRecorder(ctx context.Context, s *Store, ids IDGenerator) (*Recorder, error) {
	last, err := s.MaxSeq(ctx)
	if err != nil {
		return nil, fmt.Errorf("new recorder: %w", err)
	}
	if ids == nil {
		ids = UUIDv7Generator{}
	}
	return &Recorder{store: s, ids: ids, clock: NewClockAt(last)}, nil
}

// Record assigns ev a fresh ID and the next seq, writes it, and returns
// the stored record.
func (r *Recorder) Record(ctx context.Context, ev Evaluation) (Evaluation, error) {
	ev.ID = r.ids.Generate()
	ev.Seq = r.clock.Next()
	if err := r.store.WriteEvaluation(ctx, ev); err != nil {
		return Evaluation{}, err
	}
	return ev, nil
}

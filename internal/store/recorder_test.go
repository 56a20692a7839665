package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

type sequenceIDs struct {
	next int
}

func (g *sequenceIDs) Generate() string {
	g.next++
	return "id-" + string(rune('0'+g.next))
}

func TestRecorder_AssignsIDAndSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	r, err := NewRecorder(ctx, s, &sequenceIDs{})
	if err != nil {
		t.Fatalf("NewRecorder() failed: %v", err)
	}

	first, err := r.Record(ctx, Evaluation{Expression: "1", ExprHash: "h1", Digits: 5, Radix: 10})
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	second, err := r.Record(ctx, Evaluation{Expression: "2", ExprHash: "h2", Digits: 5, Radix: 10})
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	if first.ID != "id-1" || second.ID != "id-2" {
		t.Errorf("ids = %q, %q, want id-1, id-2", first.ID, second.ID)
	}
	if first.Seq != 1 || second.Seq != 2 {
		t.Errorf("seqs = %d, %d, want 1, 2", first.Seq, second.Seq)
	}
}

func TestRecorder_ResumesAfterStoredSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.WriteEvaluation(ctx, createTestEvaluation("old", "1", 41)); err != nil {
		t.Fatalf("WriteEvaluation() failed: %v", err)
	}

	r, err := NewRecorder(ctx, s, nil)
	if err != nil {
		t.Fatalf("NewRecorder() failed: %v", err)
	}
	ev, err := r.Record(ctx, Evaluation{Expression: "2", ExprHash: "h", Digits: 5, Radix: 10})
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	if ev.Seq != 42 {
		t.Errorf("seq = %d, want 42", ev.Seq)
	}
	id, err := uuid.Parse(ev.ID)
	if err != nil {
		t.Fatalf("default id %q is not a UUID: %v", ev.ID, err)
	}
	if id.Version() != 7 {
		t.Errorf("uuid version = %d, want 7", id.Version())
	}
}

func TestClock_Monotonic(t *testing.T) {
	c := NewClockAt(5)
	if c.Current() != 5 {
		t.Errorf("Current() = %d, want 5", c.Current())
	}
	if got := c.Next(); got != 6 {
		t.Errorf("Next() = %d, want 6", got)
	}
	if got := c.Next(); got != 7 {
		t.Errorf("Next() = %d, want 7", got)
	}
}

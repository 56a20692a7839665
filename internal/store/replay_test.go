package store

import (
	"context"
	"errors"
	"testing"
)

func TestReplay_SeqOrder(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, ev := range []Evaluation{
		createTestEvaluation("c", "3", 3),
		createTestEvaluation("a", "1", 1),
		createTestEvaluation("b", "2", 2),
	} {
		if err := s.WriteEvaluation(ctx, ev); err != nil {
			t.Fatalf("WriteEvaluation() failed: %v", err)
		}
	}

	var seen []string
	err := s.Replay(ctx, func(ev Evaluation) error {
		seen = append(seen, ev.ID)
		return nil
	})
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}

	want := []string{"a", "b", "c"}
	if len(seen) != len(want) {
		t.Fatalf("seen = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("seen[%d] = %q, want %q", i, seen[i], want[i])
		}
	}
}

func TestReplay_StopsOnError(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for i, id := range []string{"a", "b", "c"} {
		if err := s.WriteEvaluation(ctx, createTestEvaluation(id, id, int64(i+1))); err != nil {
			t.Fatalf("WriteEvaluation() failed: %v", err)
		}
	}

	stop := errors.New("stop")
	calls := 0
	err := s.Replay(ctx, func(ev Evaluation) error {
		calls++
		if ev.ID == "b" {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Errorf("err = %v, want %v", err, stop)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestReplay_WritesDuringReplay(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.WriteEvaluation(ctx, createTestEvaluation("a", "1", 1)); err != nil {
		t.Fatalf("WriteEvaluation() failed: %v", err)
	}

	err := s.Replay(ctx, func(ev Evaluation) error {
		return s.WriteEvaluation(ctx, createTestEvaluation(ev.ID+"-copy", ev.Expression, ev.Seq+100))
	})
	if err != nil {
		t.Fatalf("Replay() with writes failed: %v", err)
	}

	if _, err := s.ReadEvaluation(ctx, "a-copy"); err != nil {
		t.Errorf("write during replay not stored: %v", err)
	}
}

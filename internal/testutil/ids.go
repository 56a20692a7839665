// Package testutil holds deterministic stand-ins for the sources of
// nondeterminism in creal: record IDs and sequence numbers.
package testutil

import (
	"fmt"
	"sync"
)

// SequentialIDs hands out "<prefix>-0001", "<prefix>-0002", ... and
// satisfies store.IDGenerator. Two runs of the same scenario therefore
// produce identical history records.
//
// Safe for concurrent use.
type SequentialIDs struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequentialIDs returns a generator using prefix, or "test" if
// prefix is empty.
func NewSequentialIDs(prefix string) *SequentialIDs {
	if prefix == "" {
		prefix = "test"
	}
	return &SequentialIDs{prefix: prefix}
}

// Generate returns the next ID.
func (g *SequentialIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%04d", g.prefix, g.n)
}

// Reset restarts numbering at 1.
func (g *SequentialIDs) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n = 0
}

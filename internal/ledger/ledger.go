// Package ledger keeps the ordered collection of per-file outcomes for the
// current batch session.
package ledger

import (
	"sync"

	"github.com/receipt-lens/receipt-lens/internal/receipt"
)

// Ledger is the append-then-correct collection of receipt results. Records
// arrive in stream order; user corrections mutate records in place. All
// mutation is serialized behind one mutex so a correction is never lost to
// an interleaved append from a still-running batch.
type Ledger struct {
	mu      sync.Mutex
	records []receipt.Result
	index   map[string]int
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{index: make(map[string]int)}
}

// Reset clears every record. Called once per submission, before any event
// of the new batch is applied.
func (l *Ledger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = nil
	l.index = make(map[string]int)
}

// Append adds a record at the end. Arrival order is display order; both
// successful and failed outcomes land here.
func (l *Ledger) Append(rec receipt.Result) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.index[rec.ID] = len(l.records)
	l.records = append(l.records, rec)
}

// Update merges a user correction into the addressed record and marks it
// manually edited. An unknown id is a silent no-op; the return value only
// reports whether a record was touched.
func (l *Ledger) Update(id string, patch receipt.Patch) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	i, ok := l.index[id]
	if !ok {
		return false
	}
	l.records[i] = patch.Apply(l.records[i])
	return true
}

// Records returns a copy of the current records in display order.
func (l *Ledger) Records() []receipt.Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]receipt.Result, len(l.records))
	copy(out, l.records)
	return out
}

// Get returns the record with the given id, if present.
func (l *Ledger) Get(id string) (receipt.Result, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i, ok := l.index[id]
	if !ok {
		return receipt.Result{}, false
	}
	return l.records[i], true
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

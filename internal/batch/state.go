package batch

import "sync"

// Progress is a point-in-time view of one batch's aggregate state.
type Progress struct {
	Processing  bool
	Completed   int
	Total       int
	CurrentFile string
}

// Tracker reconciles the two sources of completion counts for a batch:
// the server's progress events and the client-side tally of arrived
// result/error events. The displayed count is the higher of the two and
// never regresses within one batch.
type Tracker struct {
	mu sync.Mutex
	p  Progress
}

// NewTracker returns a tracker in the idle state.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Begin resets the counters for a new submission of total files.
func (t *Tracker) Begin(total int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.p = Progress{Processing: true, Total: total}
}

// Adopt applies a server progress event. The server is authoritative for
// Total and CurrentFile; Completed only moves forward.
func (t *Tracker) Adopt(ev ProgressEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.p.Processing {
		return
	}
	t.p.Total = ev.Total
	if ev.Completed > t.p.Completed {
		t.p.Completed = ev.Completed
	}
	if t.p.Completed > t.p.Total {
		t.p.Completed = t.p.Total
	}
	t.p.CurrentFile = ev.CurrentFile
}

// Arrived records one per-file terminal outcome (result or error).
func (t *Tracker) Arrived() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.p.Processing {
		return
	}
	t.p.Completed++
	if t.p.Completed > t.p.Total {
		t.p.Completed = t.p.Total
	}
}

// Finish marks the batch terminal. Counters keep their last known values
// for display; only Processing and CurrentFile are cleared.
func (t *Tracker) Finish() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.p.Processing = false
	t.p.CurrentFile = ""
}

// Snapshot returns the current progress.
func (t *Tracker) Snapshot() Progress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.p
}

package batch

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/receipt-lens/receipt-lens/internal/auth"
	"github.com/receipt-lens/receipt-lens/internal/ledger"
	"github.com/receipt-lens/receipt-lens/internal/receipt"
)

// Processor owns one batch session end to end: it clears the ledger on
// each submission, folds stream events into the ledger and the progress
// tracker, and accepts user corrections while the batch is still running.
type Processor struct {
	client  *Client
	ledger  *ledger.Ledger
	tracker *Tracker
	log     zerolog.Logger
	newID   func() string

	mu  sync.Mutex
	run *Run
}

// NewProcessor creates a processor around the given client.
func NewProcessor(client *Client, log zerolog.Logger) *Processor {
	return &Processor{
		client:  client,
		ledger:  ledger.New(),
		tracker: NewTracker(),
		log:     log,
		newID:   func() string { return uuid.New().String() },
	}
}

// Process submits a new batch. Prior records are cleared before the first
// event of the new batch can arrive. The returned Run is the cancellation
// and completion handle.
func (p *Processor) Process(ctx context.Context, session auth.Session, paths []string) (*Run, error) {
	if err := validateSubmission(session, paths); err != nil {
		return nil, err
	}

	p.ledger.Reset()
	p.tracker.Begin(len(paths))

	run, err := p.client.Submit(ctx, session, paths, &processorEvents{p: p})
	if err != nil {
		p.tracker.Finish()
		return nil, err
	}

	p.mu.Lock()
	p.run = run
	p.mu.Unlock()
	return run, nil
}

// Cancel aborts the in-flight batch, if any. Idempotent.
func (p *Processor) Cancel() {
	p.mu.Lock()
	run := p.run
	p.mu.Unlock()
	if run != nil {
		run.Cancel()
	}
}

// UpdateResult merges a user correction into the addressed record. An
// unknown id is a no-op.
func (p *Processor) UpdateResult(id string, patch receipt.Patch) bool {
	return p.ledger.Update(id, patch)
}

// Results returns the current records in display order.
func (p *Processor) Results() []receipt.Result {
	return p.ledger.Records()
}

// Progress returns the current aggregate batch state.
func (p *Processor) Progress() Progress {
	return p.tracker.Snapshot()
}

// processorEvents folds stream events into the processor's state. All
// callbacks arrive from the single stream-reading goroutine.
type processorEvents struct {
	p *Processor
}

func (e *processorEvents) HandleProgress(ev ProgressEvent) {
	e.p.tracker.Adopt(ev)
}

func (e *processorEvents) HandleResult(res receipt.Result) {
	if res.ID == "" {
		res.ID = e.p.newID()
	}
	e.p.ledger.Append(res)
	e.p.tracker.Arrived()
	e.p.log.Debug().
		Str("file", res.FileName).
		Str("id", res.ID).
		Msg("Result received")
}

func (e *processorEvents) HandleFileError(ev FileError) {
	e.p.ledger.Append(receipt.Result{
		ID:       e.p.newID(),
		FileName: ev.FileName,
		Error:    ev.Error,
	})
	e.p.tracker.Arrived()
	e.p.log.Warn().
		Str("file", ev.FileName).
		Str("error", ev.Error).
		Msg("Extraction failed for file")
}

func (e *processorEvents) Finished(out Outcome) {
	e.p.tracker.Finish()
	ev := e.p.log.Info()
	if out.Err != nil {
		ev = e.p.log.Error().Err(out.Err)
	}
	ev.Int("records", e.p.ledger.Len()).
		Bool("cancelled", out.Kind == Cancelled).
		Msg("Batch finished")
}

package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/receipt-lens/receipt-lens/internal/auth"
	"github.com/receipt-lens/receipt-lens/internal/receipt"
)

// processBatchPath is the batch extraction endpoint, relative to the API base.
const processBatchPath = "/api/ocr/process-batch"

// OutcomeKind classifies how a batch ended.
type OutcomeKind int

const (
	// Completed means the stream delivered its done event.
	Completed OutcomeKind = iota
	// Cancelled means the user aborted the batch. Not an error.
	Cancelled
	// Failed means the exchange broke down at the transport level.
	Failed
)

// Outcome is the single terminal signal of a batch. Err is set only for
// Failed.
type Outcome struct {
	Kind OutcomeKind
	Err  error
}

// Handler receives per-event callbacks plus exactly one Finished call per
// submitted batch, regardless of how the batch ends.
type Handler interface {
	HandleProgress(ProgressEvent)
	HandleResult(receipt.Result)
	HandleFileError(FileError)
	Finished(Outcome)
}

// Client submits batches to the extraction service. One network exchange
// covers the whole batch; results stream back incrementally.
type Client struct {
	endpoint string
	httpc    *http.Client
	log      zerolog.Logger
}

// NewClient creates a client for the given API base URL.
func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		endpoint: strings.TrimRight(baseURL, "/") + processBatchPath,
		httpc:    &http.Client{},
		log:      log,
	}
}

type submitRequest struct {
	FilePaths   []string `json:"file_paths"`
	AccessToken string   `json:"access_token"`
}

// validateSubmission checks the submit preconditions: a usable credential
// and a non-empty set of unique file paths.
func validateSubmission(session auth.Session, paths []string) error {
	if len(paths) == 0 {
		return errors.New("at least one file path is required")
	}
	if !session.Valid() {
		return errors.New("an authenticated session is required")
	}
	seen := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if _, dup := seen[p]; dup {
			return fmt.Errorf("duplicate file path: %s", p)
		}
		seen[p] = struct{}{}
	}
	return nil
}

// Run is the handle for one in-flight batch.
type Run struct {
	cancel    context.CancelFunc
	cancelled atomic.Bool
	once      sync.Once
	done      chan struct{}
	outcome   Outcome
}

// Cancel cooperatively aborts the exchange. Safe to call repeatedly or
// after the batch has already ended.
func (r *Run) Cancel() {
	r.cancelled.Store(true)
	r.cancel()
}

// Wait blocks until the terminal signal and returns the outcome.
func (r *Run) Wait() Outcome {
	<-r.done
	return r.outcome
}

// Done is closed once the terminal signal has fired.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Submit starts one batch exchange for the given file paths and returns a
// cancellation handle. Handler callbacks, including the terminal Finished
// call, fire from a background goroutine.
func (c *Client) Submit(ctx context.Context, session auth.Session, paths []string, h Handler) (*Run, error) {
	if err := validateSubmission(session, paths); err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(ctx)
	r := &Run{cancel: cancel, done: make(chan struct{})}
	go c.run(runCtx, r, session, paths, h)
	return r, nil
}

// streamSink adapts decoder events onto the consumer handler and records
// whether the stream reached its done event.
type streamSink struct {
	handler Handler
	done    bool
}

func (s *streamSink) HandleProgress(ev ProgressEvent) { s.handler.HandleProgress(ev) }
func (s *streamSink) HandleResult(res receipt.Result) { s.handler.HandleResult(res) }
func (s *streamSink) HandleFileError(ev FileError)    { s.handler.HandleFileError(ev) }
func (s *streamSink) HandleDone()                     { s.done = true }

func (c *Client) run(ctx context.Context, r *Run, session auth.Session, paths []string, h Handler) {
	defer r.cancel()

	finish := func(out Outcome) {
		r.once.Do(func() {
			r.outcome = out
			h.Finished(out)
			close(r.done)
		})
	}
	cancelled := func() bool {
		return r.cancelled.Load() || ctx.Err() != nil
	}

	body, err := json.Marshal(submitRequest{FilePaths: paths, AccessToken: session.AccessToken})
	if err != nil {
		c.fail(h, finish, fmt.Errorf("encode batch request: %w", err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		c.fail(h, finish, fmt.Errorf("build batch request: %w", err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		if cancelled() {
			finish(Outcome{Kind: Cancelled})
			return
		}
		c.fail(h, finish, fmt.Errorf("submit batch: %w", err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.fail(h, finish, fmt.Errorf("batch endpoint returned status %d", resp.StatusCode))
		return
	}

	sink := &streamSink{handler: h}
	dec := NewDecoder(sink)
	buf := make([]byte, 4096)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			dec.Feed(buf[:n])
		}
		if sink.done {
			finish(Outcome{Kind: Completed})
			return
		}
		if err != nil {
			switch {
			case cancelled():
				finish(Outcome{Kind: Cancelled})
			case err == io.EOF:
				// Connection dropped before the done event.
				c.fail(h, finish, errors.New("stream ended before done event"))
			default:
				c.fail(h, finish, fmt.Errorf("read batch stream: %w", err))
			}
			return
		}
	}
}

// fail surfaces a transport-level failure as one synthetic errored record
// with an empty file name, then fires the terminal signal.
func (c *Client) fail(h Handler, finish func(Outcome), err error) {
	c.log.Error().Err(err).Msg("Batch exchange failed")
	h.HandleFileError(FileError{FileName: "", Error: err.Error()})
	finish(Outcome{Kind: Failed, Err: err})
}

package batch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/receipt-lens/receipt-lens/internal/receipt"
)

func intPtr(v int) *int                           { return &v }
func strPtr(v string) *string                     { return &v }
func catPtr(v receipt.Category) *receipt.Category { return &v }

func newTestProcessor(url string) *Processor {
	return NewProcessor(NewClient(url, zerolog.Nop()), zerolog.Nop())
}

func TestProcessorLedgerMatchesOutcomes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEvent(w, "progress", ProgressEvent{Completed: 0, Total: 3, CurrentFile: "a.jpg"})
		writeEvent(w, "result", receipt.Result{ID: "r1", FileName: "a.jpg", Amount: intPtr(1000), Category: catPtr(receipt.CategoryTransportation)})
		writeEvent(w, "result", receipt.Result{ID: "r2", FileName: "b.jpg", Amount: intPtr(500)})
		writeEvent(w, "error", FileError{FileName: "c.jpg", Error: "blurry"})
		writeEvent(w, "done", map[string]int{"total": 3})
	}))
	defer srv.Close()

	p := newTestProcessor(srv.URL)
	run, err := p.Process(context.Background(), testSession(), []string{"/a.jpg", "/b.jpg", "/c.jpg"})
	require.NoError(t, err)

	out := run.Wait()
	assert.Equal(t, Completed, out.Kind)

	results := p.Results()
	require.Len(t, results, 3, "per-file outcomes equal ledger size after done")
	assert.Equal(t, "a.jpg", results[0].FileName)
	assert.Equal(t, "c.jpg", results[2].FileName)
	assert.True(t, results[2].Failed())
	assert.NotEmpty(t, results[2].ID, "errored records get client-side ids")

	progress := p.Progress()
	assert.False(t, progress.Processing)
	assert.Equal(t, 3, progress.Completed)
	assert.Equal(t, 3, progress.Total)
}

func TestProcessorNewBatchClearsPriorRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEvent(w, "result", receipt.Result{ID: "only", FileName: "x.jpg"})
		writeEvent(w, "done", map[string]int{"total": 1})
	}))
	defer srv.Close()

	p := newTestProcessor(srv.URL)

	run, err := p.Process(context.Background(), testSession(), []string{"/x.jpg"})
	require.NoError(t, err)
	run.Wait()
	require.Len(t, p.Results(), 1)

	run, err = p.Process(context.Background(), testSession(), []string{"/y.jpg"})
	require.NoError(t, err)
	run.Wait()

	results := p.Results()
	require.Len(t, results, 1, "no record bleed across batches")
}

func TestProcessorUpdateResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEvent(w, "result", receipt.Result{
			ID:          "r1",
			FileName:    "a.jpg",
			CompanyName: strPtr("セブンイレブン"),
			Amount:      intPtr(1200),
		})
		writeEvent(w, "done", map[string]int{"total": 1})
	}))
	defer srv.Close()

	p := newTestProcessor(srv.URL)
	run, err := p.Process(context.Background(), testSession(), []string{"/a.jpg"})
	require.NoError(t, err)
	run.Wait()

	ok := p.UpdateResult("r1", receipt.Patch{Amount: intPtr(500)})
	assert.True(t, ok)

	results := p.Results()
	require.Len(t, results, 1)
	assert.Equal(t, 500, *results[0].Amount)
	assert.Equal(t, "セブンイレブン", *results[0].CompanyName, "untouched fields survive the patch")
	assert.True(t, results[0].ManuallyEdited)

	// A second patch keeps the provenance flag latched.
	p.UpdateResult("r1", receipt.Patch{Category: catPtr(receipt.CategoryMeeting)})
	assert.True(t, p.Results()[0].ManuallyEdited)

	assert.False(t, p.UpdateResult("missing", receipt.Patch{Amount: intPtr(1)}), "unknown id is a no-op")
}

func TestProcessorCancelReachesRestingState(t *testing.T) {
	firstResult := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEvent(w, "result", receipt.Result{ID: "r1", FileName: "a.jpg"})
		close(firstResult)
		<-r.Context().Done()
	}))
	defer srv.Close()

	p := newTestProcessor(srv.URL)
	run, err := p.Process(context.Background(), testSession(), []string{"/a.jpg", "/b.jpg"})
	require.NoError(t, err)

	<-firstResult
	p.Cancel()
	out := run.Wait()

	assert.Equal(t, Cancelled, out.Kind)
	assert.False(t, p.Progress().Processing, "terminal signal always resets the busy state")
	assert.Len(t, p.Results(), 1, "records received before cancellation survive")

	p.Cancel() // idempotent after completion
}

func TestProcessorRejectedSubmissionLeavesIdleState(t *testing.T) {
	p := newTestProcessor("http://localhost:1")

	_, err := p.Process(context.Background(), testSession(), nil)
	require.Error(t, err)
	assert.False(t, p.Progress().Processing)
}

func TestProcessorAssignsIDWhenMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEvent(w, "result", receipt.Result{FileName: "a.jpg"})
		writeEvent(w, "done", map[string]int{"total": 1})
	}))
	defer srv.Close()

	p := newTestProcessor(srv.URL)
	run, err := p.Process(context.Background(), testSession(), []string{"/a.jpg"})
	require.NoError(t, err)
	run.Wait()

	results := p.Results()
	require.Len(t, results, 1)
	assert.NotEmpty(t, results[0].ID)
}

package batch

import "github.com/receipt-lens/receipt-lens/internal/receipt"

// Event names delivered on the batch stream.
const (
	eventProgress = "progress"
	eventResult   = "result"
	eventError    = "error"
	eventDone     = "done"
)

// ProgressEvent carries the server's own counters for an in-flight batch.
// The server is authoritative for Total; Completed is reconciled against
// the client-side tally so the displayed count never regresses.
type ProgressEvent struct {
	Completed   int    `json:"completed"`
	Total       int    `json:"total"`
	CurrentFile string `json:"current_file"`
}

// FileError reports that extraction failed for a single file. It does not
// abort the batch.
type FileError struct {
	FileName string `json:"file_name"`
	Error    string `json:"error"`
}

// EventHandler receives decoded stream events. Callbacks fire from the
// stream-reading goroutine, one at a time.
type EventHandler interface {
	HandleProgress(ProgressEvent)
	HandleResult(receipt.Result)
	HandleFileError(FileError)
	HandleDone()
}

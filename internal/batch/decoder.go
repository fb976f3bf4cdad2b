package batch

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/receipt-lens/receipt-lens/internal/receipt"
)

// Decoder turns the raw batch response stream into typed events. Feed it
// arbitrary chunks; it buffers partial lines across chunk boundaries and
// dispatches one handler callback per fully received event payload.
//
// The wire format is one `event: <name>` line and one `data: <json>` line
// per event, events separated by a blank line. Payloads with malformed
// JSON are dropped; decoding resumes at the next event boundary.
type Decoder struct {
	handler EventHandler

	buf     []byte
	name    string
	hasName bool
	data    []byte
	hasData bool
}

// NewDecoder creates a decoder dispatching to the given handler.
func NewDecoder(handler EventHandler) *Decoder {
	return &Decoder{handler: handler}
}

// Feed consumes the next chunk of the stream. A payload is never parsed
// until its terminating newline has arrived; any trailing partial line is
// retained for the next call.
func (d *Decoder) Feed(chunk []byte) {
	d.buf = append(d.buf, chunk...)

	for {
		i := bytes.IndexByte(d.buf, '\n')
		if i < 0 {
			return
		}
		line := string(d.buf[:i])
		d.buf = d.buf[i+1:]
		d.handleLine(strings.TrimSuffix(line, "\r"))
	}
}

func (d *Decoder) handleLine(line string) {
	switch {
	case line == "":
		// Event boundary. A name-only frame is dispatched here so a bare
		// `event: done` with no payload line still terminates cleanly.
		if d.hasName && !d.hasData {
			d.dispatch(d.name, nil)
		}
		d.resetFrame()
	case strings.HasPrefix(line, "event: "):
		d.name = strings.TrimSpace(strings.TrimPrefix(line, "event: "))
		d.hasName = true
		d.emitIfComplete()
	case strings.HasPrefix(line, "data: "):
		d.data = []byte(strings.TrimPrefix(line, "data: "))
		d.hasData = true
		d.emitIfComplete()
	}
}

// emitIfComplete fires the callback as soon as both halves of the current
// frame have been seen, regardless of which line arrived first.
func (d *Decoder) emitIfComplete() {
	if !d.hasName || !d.hasData {
		return
	}
	d.dispatch(d.name, d.data)
	d.resetFrame()
}

func (d *Decoder) dispatch(name string, payload []byte) {
	switch name {
	case eventProgress:
		var ev ProgressEvent
		if payload == nil || json.Unmarshal(payload, &ev) != nil {
			return
		}
		d.handler.HandleProgress(ev)
	case eventResult:
		var res receipt.Result
		if payload == nil || json.Unmarshal(payload, &res) != nil {
			return
		}
		d.handler.HandleResult(res)
	case eventError:
		var ev FileError
		if payload == nil || json.Unmarshal(payload, &ev) != nil {
			return
		}
		d.handler.HandleFileError(ev)
	case eventDone:
		// The done payload carries no information the client needs.
		d.handler.HandleDone()
	}
}

func (d *Decoder) resetFrame() {
	d.name = ""
	d.hasName = false
	d.data = nil
	d.hasData = false
}

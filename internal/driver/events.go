package driver

import "context"

// EventKind tags a progress notification from a batch scan.
type EventKind uint8

const (
	// EventQueued fires once per file before any scanning starts.
	EventQueued EventKind = iota
	// EventScanning fires when a worker picks the file up.
	EventScanning
	// EventDone fires after a successful scan, cached or live.
	EventDone
	// EventFailed fires when the file could not be read.
	EventFailed
)

func (k EventKind) String() string {
	switch k {
	case EventQueued:
		return "queued"
	case EventScanning:
		return "scanning"
	case EventDone:
		return "done"
	case EventFailed:
		return "failed"
	}
	return "unknown"
}

// Event is one progress notification. Index counts files in walk order
// starting at zero; Total is the batch size and never changes within a
// run.
type Event struct {
	Kind        EventKind
	Path        string
	Index       int
	Total       int
	Diagnostics int  // filled on EventDone
	FromCache   bool // filled on EventDone
	Err         error
}

// emit delivers ev unless nobody listens. A cancelled context unblocks
// the send so a vanished consumer cannot wedge the scan.
func (o *Options) emit(ctx context.Context, ev Event) {
	if o.Events == nil {
		return
	}
	select {
	case o.Events <- ev:
	case <-ctx.Done():
	}
}

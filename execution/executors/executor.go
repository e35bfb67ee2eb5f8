package executors

import (
	"github.com/aokimoto/KujiraDB/storage/table/schema"
	"github.com/aokimoto/KujiraDB/storage/tuple"
)

// OpIterator is the pull based operator protocol. Callers drive it as
// Configure, Open, repeated Next until done, Close.
//
// Next returns one tuple per call. done reports exhaustion, the tuple
// of a done result is nil. Errors from Next leave the operator in a
// state where only Close is safe.
type OpIterator interface {
	// Configure fixes the evaluation strategy before Open. An eager
	// operator materializes its input when opened, a lazy one defers
	// work to the first Next. Operators without a buffering choice
	// just pass the flag down.
	Configure(eager bool)
	Open() error
	Next() (*tuple.Tuple, bool, error)
	// Close releases pages and buffers. It is idempotent and legal in
	// every state.
	Close() error
	OutputSchema() *schema.Schema
}

type opState int

const (
	unconfigured opState = iota
	configured
	opened
	closed
)

// baseOpIterator carries the shared protocol state machine
type baseOpIterator struct {
	state opState
	eager bool
}

func (b *baseOpIterator) markConfigured(eager bool) {
	b.eager = eager
	b.state = configured
}

func (b *baseOpIterator) markOpened() {
	if b.state != configured {
		panic("operator must be configured before Open")
	}
	b.state = opened
}

func (b *baseOpIterator) assertOpened() {
	if b.state != opened {
		panic("operator is not open")
	}
}

// markClosed reports whether teardown still has to run
func (b *baseOpIterator) markClosed() bool {
	if b.state == closed {
		return false
	}
	wasOpened := b.state == opened
	b.state = closed
	return wasOpened
}

package errors

// Error is a trivial implementation of error usable as a constant.
type Error string

func (e Error) Error() string { return string(e) }

// Storage layer failures. All disk and page level operations report one
// of these so callers can branch on the failure class.
const (
	// ErrIO signals that an underlying read, write, seek or sync on a
	// table file did not complete.
	ErrIO Error = "disk I/O failed"

	// ErrPageFull signals that a page cannot take another record even
	// after compaction.
	ErrPageFull Error = "not enough space on page"

	// ErrInvalidSlot signals a lookup of a slot that is out of range or
	// has been tombstoned.
	ErrInvalidSlot Error = "invalid slot"

	// ErrCorruptPage signals that the on-disk bytes of a page violate
	// the slotted page header invariants.
	ErrCorruptPage Error = "corrupt page"

	// ErrBufferPoolFull signals that every frame of the buffer pool is
	// pinned and no page can be brought in.
	ErrBufferPoolFull Error = "all frames are pinned"

	// ErrEmptyTuple signals an attempt to store a zero length record.
	ErrEmptyTuple Error = "cannot add an empty record"

	// ErrNoTable signals an operation against a table the storage
	// manager has never opened.
	ErrNoTable Error = "no such table"

	// ErrPageNotFound signals an unpin or flush of a page that is not
	// resident in the buffer pool.
	ErrPageNotFound Error = "page is not in the buffer pool"
)

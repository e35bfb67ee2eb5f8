package disk

import (
	"github.com/aokimoto/KujiraDB/types"
)

// DiskManager is responsible for interacting with disk. Every table is
// backed by its own heap file and pages are addressed by (OID, PageID).
type DiskManager interface {
	// CreateFile opens the heap file backing oid, creating it when absent.
	CreateFile(oid types.OID) error
	// ReadPage reads a full page into data
	ReadPage(oid types.OID, pageID types.PageID, data []byte) error
	// WritePage writes a full page out of data and syncs it
	WritePage(oid types.OID, pageID types.PageID, data []byte) error
	// AllocatePage appends a zeroed page to the heap file
	AllocatePage(oid types.OID) (types.PageID, error)
	// NumPages returns the number of pages the heap file holds
	NumPages(oid types.OID) types.PageID
	// Size returns the byte size of the heap file
	Size(oid types.OID) int64
	GetNumWrites() uint64
	GetNumReads() uint64
	ShutDown()
}

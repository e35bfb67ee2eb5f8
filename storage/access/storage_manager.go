package access

import (
	"github.com/aokimoto/KujiraDB/storage/buffer"
	"github.com/aokimoto/KujiraDB/storage/disk"
	"github.com/aokimoto/KujiraDB/types"
)

// StorageManager is the facade the execution layer talks to. It routes
// page requests through the buffer pool and knows which heap file
// belongs to which table.
type StorageManager struct {
	bpm         *buffer.BufferPoolManager
	diskManager disk.DiskManager
}

func NewStorageManager(bpm *buffer.BufferPoolManager, diskManager disk.DiskManager) *StorageManager {
	return &StorageManager{bpm: bpm, diskManager: diskManager}
}

// OpenTable makes sure the heap file backing oid exists and is open
func (s *StorageManager) OpenTable(oid types.OID) error {
	return s.diskManager.CreateFile(oid)
}

// ReadPage returns the page pinned, checking the heap page header
// invariants of the image.
func (s *StorageManager) ReadPage(oid types.OID, pageID types.PageID) (*HeapPage, error) {
	pg, err := s.bpm.FetchPage(oid, pageID)
	if err != nil {
		return nil, err
	}

	hp := CastPageAsHeapPage(pg)
	if err := hp.Validate(); err != nil {
		s.bpm.UnpinPage(oid, pageID, false)
		return nil, err
	}
	return hp, nil
}

// AllocatePage extends the table by one page, formatted and pinned
func (s *StorageManager) AllocatePage(oid types.OID) (*HeapPage, error) {
	pg, err := s.bpm.NewPage(oid)
	if err != nil {
		return nil, err
	}

	hp := CastPageAsHeapPage(pg)
	hp.Init(pg.ID())
	return hp, nil
}

// UnpinPage drops the pin taken by ReadPage or AllocatePage
func (s *StorageManager) UnpinPage(oid types.OID, pageID types.PageID, isDirty bool) error {
	return s.bpm.UnpinPage(oid, pageID, isDirty)
}

// WritePage forces a resident page to disk
func (s *StorageManager) WritePage(oid types.OID, pageID types.PageID) error {
	return s.bpm.FlushPage(oid, pageID)
}

// NumPages returns the number of pages the table holds on disk
func (s *StorageManager) NumPages(oid types.OID) types.PageID {
	return s.diskManager.NumPages(oid)
}

// Shutdown flushes every dirty page and closes the table files
func (s *StorageManager) Shutdown() error {
	if err := s.bpm.FlushAllPages(); err != nil {
		return err
	}
	s.diskManager.ShutDown()
	return nil
}

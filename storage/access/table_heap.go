// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package access

import (
	"sync/atomic"

	"github.com/aokimoto/KujiraDB/common"
	"github.com/aokimoto/KujiraDB/errors"
	"github.com/aokimoto/KujiraDB/storage/page"
	"github.com/aokimoto/KujiraDB/storage/tuple"
	"github.com/aokimoto/KujiraDB/types"
)

// TableHeap represents one table stored as a chain of dense heap
// pages. Records have no inherent order. One TableHeap is shared by
// every goroutine touching the table, so the insert hint is read and
// written atomically.
type TableHeap struct {
	sm  *StorageManager
	oid types.OID
	// page the last insert landed on, inserts retry from here
	lastInsertPage int32
}

func (t *TableHeap) insertHint() types.PageID {
	return types.PageID(atomic.LoadInt32(&t.lastInsertPage))
}

func (t *TableHeap) setInsertHint(pageID types.PageID) {
	atomic.StoreInt32(&t.lastInsertPage, int32(pageID))
}

// NewTableHeap opens the table, formatting its first page when the
// backing file is empty.
func NewTableHeap(sm *StorageManager, oid types.OID) (*TableHeap, error) {
	if err := sm.OpenTable(oid); err != nil {
		return nil, err
	}

	if sm.NumPages(oid) == 0 {
		hp, err := sm.AllocatePage(oid)
		if err != nil {
			return nil, err
		}
		if err := sm.UnpinPage(oid, hp.ID(), true); err != nil {
			return nil, err
		}
	}
	return &TableHeap{sm: sm, oid: oid}, nil
}

func (t *TableHeap) OID() types.OID {
	return t.oid
}

func (t *TableHeap) GetStorageManager() *StorageManager {
	return t.sm
}

// InsertTuple places the tuple on the first page that takes it,
// starting at the page of the previous insert and extending the table
// when every existing page is full.
func (t *TableHeap) InsertTuple(tuple_ *tuple.Tuple) (*page.RID, error) {
	if common.EnableDebug {
		common.ShPrintf(common.DEBUG_INFO, "TableHeap::InsertTuple oid:%v size:%v\n", t.oid, tuple_.Size())
	}
	numPages := t.sm.NumPages(t.oid)
	for pageID := t.insertHint(); pageID < numPages; pageID++ {
		rid, err := t.insertOnPage(pageID, tuple_)
		if err == errors.ErrPageFull {
			continue
		}
		if err != nil {
			return nil, err
		}
		t.setInsertHint(pageID)
		return rid, nil
	}

	hp, err := t.sm.AllocatePage(t.oid)
	if err != nil {
		return nil, err
	}
	pageID := hp.ID()

	hp.WLatch()
	slot, err := hp.AddValue(tuple_.Data())
	hp.WUnlatch()
	if err != nil {
		t.sm.UnpinPage(t.oid, pageID, true)
		return nil, err
	}
	if err := t.sm.UnpinPage(t.oid, pageID, true); err != nil {
		return nil, err
	}

	t.setInsertHint(pageID)
	rid := new(page.RID)
	rid.Set(pageID, slot)
	tuple_.SetRID(rid)
	return rid, nil
}

func (t *TableHeap) insertOnPage(pageID types.PageID, tuple_ *tuple.Tuple) (*page.RID, error) {
	hp, err := t.sm.ReadPage(t.oid, pageID)
	if err != nil {
		return nil, err
	}

	hp.WLatch()
	slot, err := hp.AddValue(tuple_.Data())
	hp.WUnlatch()
	if err != nil {
		t.sm.UnpinPage(t.oid, pageID, false)
		return nil, err
	}
	if err := t.sm.UnpinPage(t.oid, pageID, true); err != nil {
		return nil, err
	}

	rid := new(page.RID)
	rid.Set(pageID, slot)
	tuple_.SetRID(rid)
	return rid, nil
}

// GetTuple reads the record rid points at
func (t *TableHeap) GetTuple(rid *page.RID) (*tuple.Tuple, error) {
	hp, err := t.sm.ReadPage(t.oid, rid.GetPageId())
	if err != nil {
		return nil, err
	}

	hp.RLatch()
	record, err := hp.GetValue(rid.GetSlotNum())
	hp.RUnlatch()
	t.sm.UnpinPage(t.oid, rid.GetPageId(), false)
	if err != nil {
		return nil, err
	}
	return tuple.NewTuple(rid, uint32(len(record)), record), nil
}

// DeleteTuple tombstones the record rid points at
func (t *TableHeap) DeleteTuple(rid *page.RID) error {
	hp, err := t.sm.ReadPage(t.oid, rid.GetPageId())
	if err != nil {
		return err
	}

	hp.WLatch()
	err = hp.DeleteValue(rid.GetSlotNum())
	hp.WUnlatch()
	if err != nil {
		t.sm.UnpinPage(t.oid, rid.GetPageId(), false)
		return err
	}
	return t.sm.UnpinPage(t.oid, rid.GetPageId(), true)
}

// UpdateTuple replaces the record at rid. The new record may land on a
// different page, the returned RID is the current location.
func (t *TableHeap) UpdateTuple(rid *page.RID, tuple_ *tuple.Tuple) (*page.RID, error) {
	if err := t.DeleteTuple(rid); err != nil {
		return nil, err
	}
	return t.InsertTuple(tuple_)
}

// Iterator returns an iterator over every live record of the table
func (t *TableHeap) Iterator() *TableHeapIterator {
	return NewTableHeapIterator(t)
}

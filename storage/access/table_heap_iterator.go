// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package access

import (
	"github.com/aokimoto/KujiraDB/errors"
	"github.com/aokimoto/KujiraDB/storage/page"
	"github.com/aokimoto/KujiraDB/storage/tuple"
	"github.com/aokimoto/KujiraDB/types"
)

// TableHeapIterator walks the live records of a table in page then
// slot order, skipping tombstones.
type TableHeapIterator struct {
	tableHeap    *TableHeap
	currentTuple *tuple.Tuple
	numPages     types.PageID
	pageID       types.PageID
	slot         uint32
	err          error
}

func NewTableHeapIterator(tableHeap *TableHeap) *TableHeapIterator {
	it := &TableHeapIterator{
		tableHeap: tableHeap,
		numPages:  tableHeap.sm.NumPages(tableHeap.oid),
	}
	it.advance()
	return it
}

// Current returns the record the iterator stands on, nil when done
func (it *TableHeapIterator) Current() *tuple.Tuple {
	return it.currentTuple
}

func (it *TableHeapIterator) End() bool {
	return it.currentTuple == nil
}

func (it *TableHeapIterator) Err() error {
	return it.err
}

// Next moves to the following live record
func (it *TableHeapIterator) Next() *tuple.Tuple {
	it.advance()
	return it.currentTuple
}

func (it *TableHeapIterator) advance() {
	sm := it.tableHeap.sm
	oid := it.tableHeap.oid

	it.currentTuple = nil
	for it.pageID < it.numPages {
		hp, err := sm.ReadPage(oid, it.pageID)
		if err != nil {
			it.err = err
			return
		}

		hp.RLatch()
		slotCount := hp.GetSlotCount()
		for it.slot < slotCount {
			slot := it.slot
			it.slot++

			record, err := hp.GetValue(slot)
			if err == errors.ErrInvalidSlot {
				continue
			}
			if err != nil {
				hp.RUnlatch()
				sm.UnpinPage(oid, it.pageID, false)
				it.err = err
				return
			}

			rid := new(page.RID)
			rid.Set(it.pageID, slot)
			hp.RUnlatch()
			sm.UnpinPage(oid, it.pageID, false)
			it.currentTuple = tuple.NewTuple(rid, uint32(len(record)), record)
			return
		}
		hp.RUnlatch()
		sm.UnpinPage(oid, it.pageID, false)

		it.pageID++
		it.slot = 0
	}
}

// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package access

import (
	"sort"
	"unsafe"

	"github.com/aokimoto/KujiraDB/common"
	"github.com/aokimoto/KujiraDB/errors"
	"github.com/aokimoto/KujiraDB/storage/page"
	"github.com/aokimoto/KujiraDB/types"
)

/**
 * Slotted page format:
 *  ---------------------------------------------------------
 *  | HEADER | SLOT DIRECTORY ... FREE SPACE ... RECORDS ... |
 *  ---------------------------------------------------------
 *                                ^ free space pointer
 *
 *  Header format (size in bytes):
 *  -------------------------------------------------------------
 *  | PageId (4) | SlotCount (4) | FreeSpacePointer (4) | ... . |
 *  -------------------------------------------------------------
 *
 *  Slot directory entry format:
 *  --------------------------------------------
 *  | RecordOffset (4) | RecordLength (4) | ... |
 *  --------------------------------------------
 *  The top bit of RecordLength marks a tombstone, the remaining bits
 *  then hold the capacity the dead record left behind.
 */
const sizePageHeader = uint32(12)
const sizeSlot = uint32(8)
const offsetPageId = uint32(0)
const offsetSlotCount = uint32(4)
const offsetFreeSpacePointer = uint32(8)
const offsetSlotDirectory = sizePageHeader
const deleteMask = uint32(1) << 31

// HeapPage is the slotted record page. It is a view over a buffer pool
// frame, the caller keeps the page pinned and latched while using it.
type HeapPage struct {
	page.Page
}

// CastPageAsHeapPage casts a buffer pool page to a heap page
func CastPageAsHeapPage(pg *page.Page) *HeapPage {
	return (*HeapPage)(unsafe.Pointer(pg))
}

// NewHeapPageFromBytes builds a standalone heap page from a raw page
// image, checking the header invariants first.
func NewHeapPageFromBytes(oid types.OID, pageID types.PageID, data []byte) (*HeapPage, error) {
	if len(data) != common.PageSize {
		return nil, errors.ErrCorruptPage
	}
	image := new([common.PageSize]byte)
	copy(image[:], data)
	hp := CastPageAsHeapPage(page.New(oid, pageID, image))
	if err := hp.Validate(); err != nil {
		return nil, err
	}
	return hp, nil
}

// ToBytes returns a copy of the page image
func (hp *HeapPage) ToBytes() []byte {
	image := make([]byte, common.PageSize)
	copy(image, hp.Data()[:])
	return image
}

// Init formats the page as an empty heap page
func (hp *HeapPage) Init(pageID types.PageID) {
	for i := range hp.Data() {
		hp.Data()[i] = 0
	}
	hp.setUint32(offsetPageId, uint32(pageID))
	hp.setUint32(offsetSlotCount, 0)
	hp.setUint32(offsetFreeSpacePointer, uint32(common.PageSize))
}

func (hp *HeapPage) getUint32(offset uint32) uint32 {
	d := hp.Data()
	return uint32(d[offset]) | uint32(d[offset+1])<<8 | uint32(d[offset+2])<<16 | uint32(d[offset+3])<<24
}

func (hp *HeapPage) setUint32(offset uint32, value uint32) {
	d := hp.Data()
	d[offset] = byte(value)
	d[offset+1] = byte(value >> 8)
	d[offset+2] = byte(value >> 16)
	d[offset+3] = byte(value >> 24)
}

// GetHeapPageId reads the page id stored in the header
func (hp *HeapPage) GetHeapPageId() types.PageID {
	return types.PageID(hp.getUint32(offsetPageId))
}

func (hp *HeapPage) GetSlotCount() uint32 {
	return hp.getUint32(offsetSlotCount)
}

func (hp *HeapPage) setSlotCount(count uint32) {
	hp.setUint32(offsetSlotCount, count)
}

func (hp *HeapPage) GetFreeSpacePointer() uint32 {
	return hp.getUint32(offsetFreeSpacePointer)
}

func (hp *HeapPage) setFreeSpacePointer(offset uint32) {
	hp.setUint32(offsetFreeSpacePointer, offset)
}

func (hp *HeapPage) getSlotOffset(slot uint32) uint32 {
	return hp.getUint32(offsetSlotDirectory + sizeSlot*slot)
}

func (hp *HeapPage) setSlotOffset(slot uint32, offset uint32) {
	hp.setUint32(offsetSlotDirectory+sizeSlot*slot, offset)
}

func (hp *HeapPage) getSlotLength(slot uint32) uint32 {
	return hp.getUint32(offsetSlotDirectory + sizeSlot*slot + 4)
}

func (hp *HeapPage) setSlotLength(slot uint32, length uint32) {
	hp.setUint32(offsetSlotDirectory+sizeSlot*slot+4, length)
}

func isTombstone(slotLength uint32) bool {
	return slotLength&deleteMask != 0
}

func tombstoneCapacity(slotLength uint32) uint32 {
	return slotLength &^ deleteMask
}

// directoryEnd is the first byte past the slot directory
func (hp *HeapPage) directoryEnd() uint32 {
	return offsetSlotDirectory + sizeSlot*hp.GetSlotCount()
}

// FreeSpace is the committed free space of the page, counting the
// fragmented bytes tombstoned records left behind.
func (hp *HeapPage) FreeSpace() uint32 {
	used := hp.directoryEnd()
	slotCount := hp.GetSlotCount()
	for slot := uint32(0); slot < slotCount; slot++ {
		length := hp.getSlotLength(slot)
		if !isTombstone(length) {
			used += length
		}
	}
	return uint32(common.PageSize) - used
}

// contiguousFreeSpace is what fits between the slot directory and the
// record region without moving anything.
func (hp *HeapPage) contiguousFreeSpace() uint32 {
	return hp.GetFreeSpacePointer() - hp.directoryEnd()
}

// AddValue stores a record and returns its slot number. A tombstoned
// slot with enough capacity is reused first, first fit in slot order.
// Otherwise the record goes below the free space pointer, compacting
// once when the committed space suffices but is fragmented.
func (hp *HeapPage) AddValue(data []byte) (uint32, error) {
	if len(data) == 0 {
		return 0, errors.ErrEmptyTuple
	}
	length := uint32(len(data))

	slotCount := hp.GetSlotCount()
	for slot := uint32(0); slot < slotCount; slot++ {
		slotLength := hp.getSlotLength(slot)
		if isTombstone(slotLength) && tombstoneCapacity(slotLength) >= length {
			offset := hp.getSlotOffset(slot)
			copy(hp.Data()[offset:offset+length], data)
			hp.setSlotLength(slot, length)
			return slot, nil
		}
	}

	needed := sizeSlot + length
	if hp.FreeSpace() < needed {
		return 0, errors.ErrPageFull
	}
	if hp.contiguousFreeSpace() < needed {
		hp.compact()
		if hp.contiguousFreeSpace() < needed {
			return 0, errors.ErrPageFull
		}
	}

	offset := hp.GetFreeSpacePointer() - length
	copy(hp.Data()[offset:offset+length], data)
	hp.setFreeSpacePointer(offset)
	hp.setSlotOffset(slotCount, offset)
	hp.setSlotLength(slotCount, length)
	hp.setSlotCount(slotCount + 1)
	return slotCount, nil
}

// GetValue returns a copy of the record stored in slot
func (hp *HeapPage) GetValue(slot uint32) ([]byte, error) {
	if slot >= hp.GetSlotCount() {
		return nil, errors.ErrInvalidSlot
	}
	slotLength := hp.getSlotLength(slot)
	if isTombstone(slotLength) {
		return nil, errors.ErrInvalidSlot
	}

	offset := hp.getSlotOffset(slot)
	record := make([]byte, slotLength)
	copy(record, hp.Data()[offset:offset+slotLength])
	return record, nil
}

// DeleteValue tombstones a slot. The record bytes stay where they are,
// the slot keeps its capacity for reuse.
func (hp *HeapPage) DeleteValue(slot uint32) error {
	if slot >= hp.GetSlotCount() {
		return errors.ErrInvalidSlot
	}
	slotLength := hp.getSlotLength(slot)
	if isTombstone(slotLength) {
		return errors.ErrInvalidSlot
	}

	hp.setSlotLength(slot, slotLength|deleteMask)
	return nil
}

// compact slides the live records back against the end of the page so
// the committed free space becomes contiguous. Slot numbers do not
// change, tombstoned slots lose their capacity.
func (hp *HeapPage) compact() {
	type liveRecord struct {
		slot   uint32
		offset uint32
		length uint32
	}

	slotCount := hp.GetSlotCount()
	live := make([]liveRecord, 0, slotCount)
	for slot := uint32(0); slot < slotCount; slot++ {
		length := hp.getSlotLength(slot)
		if isTombstone(length) {
			hp.setSlotOffset(slot, 0)
			hp.setSlotLength(slot, deleteMask)
			continue
		}
		live = append(live, liveRecord{slot, hp.getSlotOffset(slot), length})
	}
	sort.Slice(live, func(i, j int) bool {
		return live[i].offset > live[j].offset
	})

	writePtr := uint32(common.PageSize)
	for _, record := range live {
		newOffset := writePtr - record.length
		copy(hp.Data()[newOffset:writePtr], hp.Data()[record.offset:record.offset+record.length])
		hp.setSlotOffset(record.slot, newOffset)
		writePtr = newOffset
	}
	hp.setFreeSpacePointer(writePtr)
}

// Validate checks the header invariants of the page image
func (hp *HeapPage) Validate() error {
	directoryEnd := hp.directoryEnd()
	if directoryEnd > uint32(common.PageSize) {
		return errors.ErrCorruptPage
	}

	freeSpacePointer := hp.GetFreeSpacePointer()
	if freeSpacePointer < directoryEnd || freeSpacePointer > uint32(common.PageSize) {
		return errors.ErrCorruptPage
	}

	slotCount := hp.GetSlotCount()
	for slot := uint32(0); slot < slotCount; slot++ {
		length := hp.getSlotLength(slot)
		if isTombstone(length) {
			continue
		}
		offset := hp.getSlotOffset(slot)
		if offset < freeSpacePointer || offset+length > uint32(common.PageSize) {
			return errors.ErrCorruptPage
		}
	}
	return nil
}

// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package buffer

import (
	pair "github.com/notEpsilon/go-pair"
	"github.com/sasha-s/go-deadlock"

	"github.com/aokimoto/KujiraDB/common"
	"github.com/aokimoto/KujiraDB/errors"
	"github.com/aokimoto/KujiraDB/storage/disk"
	"github.com/aokimoto/KujiraDB/storage/page"
	"github.com/aokimoto/KujiraDB/types"
)

// PageKey names a page globally, pages of different tables never clash.
type PageKey = pair.Pair[types.OID, types.PageID]

func NewPageKey(oid types.OID, pageID types.PageID) PageKey {
	return PageKey{First: oid, Second: pageID}
}

func init() {
	deadlock.Opts.DeadlockTimeout = common.CycleDetectionInterval
}

// BufferPoolManager caches a fixed number of page frames in memory.
// The page table and free list are guarded by mutex. The disk read
// that fills a newly claimed frame happens outside that lock, only the
// page's own write latch is held, so unrelated pages stay usable while
// the fill is in flight.
type BufferPoolManager struct {
	diskManager disk.DiskManager
	pages       []*page.Page
	replacer    *ClockReplacer
	freeList    []FrameID
	pageTable   map[PageKey]FrameID
	victimCache *VictimCache
	mutex       deadlock.Mutex
}

// NewBufferPoolManager returns a pool of poolSize frames
func NewBufferPoolManager(poolSize uint32, diskManager disk.DiskManager) *BufferPoolManager {
	freeList := make([]FrameID, poolSize)
	pages := make([]*page.Page, poolSize)
	for i := uint32(0); i < poolSize; i++ {
		freeList[i] = FrameID(i)
	}

	replacer := NewClockReplacer(poolSize)
	return &BufferPoolManager{
		diskManager: diskManager,
		pages:       pages,
		replacer:    replacer,
		freeList:    freeList,
		pageTable:   make(map[PageKey]FrameID),
		victimCache: NewVictimCache(common.VictimCacheMaxPages),
	}
}

// FetchPage returns the requested page pinned. The caller must call
// UnpinPage when done with it.
func (b *BufferPoolManager) FetchPage(oid types.OID, pageID types.PageID) (*page.Page, error) {
	key := NewPageKey(oid, pageID)
	for {
		b.mutex.Lock()
		if frameID, ok := b.pageTable[key]; ok {
			pg := b.pages[frameID]
			pg.IncPinCount()
			b.replacer.Pin(frameID)
			b.mutex.Unlock()

			// a concurrent fetch may still be filling this frame, it
			// holds the write latch until the bytes are in place
			pg.RLatch()
			valid := !pg.IsInvalid()
			pg.RUnlatch()
			if valid {
				// our pin taken above keeps the frame from being
				// recycled underneath us
				return pg, nil
			}

			// the fill we waited on failed, drop the pin, make sure
			// the doomed frame is recycled and start over
			pg.DecPinCount()
			b.discardFrame(key, frameID, pg)
			continue
		}

		frameID, err := b.claimFrame()
		if err != nil {
			b.mutex.Unlock()
			return nil, err
		}
		if common.EnableDebug {
			common.ShPrintf(common.DEBUG_INFO, "BPM::FetchPage miss oid:%v pageID:%v frame:%v\n", oid, pageID, frameID)
		}

		pg := page.New(oid, pageID, new([common.PageSize]byte))
		pg.WLatch()
		b.pageTable[key] = frameID
		b.pages[frameID] = pg
		b.mutex.Unlock()

		if image, ok := b.victimCache.Take(oid, pageID); ok {
			copy(pg.Data()[:], image)
		} else if err := b.diskManager.ReadPage(oid, pageID, pg.Data()[:]); err != nil {
			pg.MarkInvalid()
			pg.WUnlatch()
			b.discardFrame(key, frameID, pg)
			return nil, err
		}
		pg.WUnlatch()
		return pg, nil
	}
}

// claimFrame hands out a frame for a new resident page, evicting an
// unpinned page when the free list is empty. Caller holds b.mutex.
func (b *BufferPoolManager) claimFrame() (FrameID, error) {
	if len(b.freeList) > 0 {
		frameID := b.freeList[0]
		b.freeList = b.freeList[1:]
		return frameID, nil
	}

	victimFrame := b.replacer.Victim()
	if victimFrame == nil {
		return 0, errors.ErrBufferPoolFull
	}

	victim := b.pages[*victimFrame]
	if victim != nil {
		common.KAssert(victim.PinCount() == 0, "BPM: pinned page chosen as victim")
		if common.EnableDebug {
			common.ShPrintf(common.DEBUG_INFO, "BPM::claimFrame evict oid:%v pageID:%v dirty:%v\n", victim.OID(), victim.ID(), victim.IsDirty())
		}
		if victim.IsDirty() {
			victim.RLatch()
			err := b.diskManager.WritePage(victim.OID(), victim.ID(), victim.Data()[:])
			victim.RUnlatch()
			if err != nil {
				b.replacer.Unpin(*victimFrame)
				return 0, err
			}
			victim.SetIsDirty(false)
		}
		b.victimCache.Put(victim.OID(), victim.ID(), victim.Data())
		delete(b.pageTable, NewPageKey(victim.OID(), victim.ID()))
		b.pages[*victimFrame] = nil
	}
	return *victimFrame, nil
}

// discardFrame undoes a claim whose fill failed. Both the filling
// fetch and any fetch that waited on it call this, whoever arrives
// second finds the frame already recycled and does nothing.
func (b *BufferPoolManager) discardFrame(key PageKey, frameID FrameID, pg *page.Page) {
	b.mutex.Lock()
	if b.pages[frameID] == pg {
		delete(b.pageTable, key)
		b.pages[frameID] = nil
		b.freeList = append(b.freeList, frameID)
	}
	b.mutex.Unlock()
}

// UnpinPage drops one pin from a page. Unpinning a page whose pin
// count is already zero is a caller bug and panics.
func (b *BufferPoolManager) UnpinPage(oid types.OID, pageID types.PageID, isDirty bool) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	frameID, ok := b.pageTable[NewPageKey(oid, pageID)]
	if !ok {
		return errors.ErrPageNotFound
	}

	pg := b.pages[frameID]
	common.KAssert(pg.PinCount() > 0, "BPM: unpin of page with zero pin count")
	pg.DecPinCount()
	if pg.PinCount() <= 0 {
		b.replacer.Unpin(frameID)
	}
	if isDirty {
		pg.SetIsDirty(true)
	}
	return nil
}

// NewPage allocates a fresh page of the given table and returns it
// pinned. The backing file is extended by one zeroed page.
func (b *BufferPoolManager) NewPage(oid types.OID) (*page.Page, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	frameID, err := b.claimFrame()
	if err != nil {
		return nil, err
	}

	pageID, err := b.diskManager.AllocatePage(oid)
	if err != nil {
		b.freeList = append(b.freeList, frameID)
		return nil, err
	}

	pg := page.NewEmpty(oid, pageID)
	b.pageTable[NewPageKey(oid, pageID)] = frameID
	b.pages[frameID] = pg
	return pg, nil
}

// FlushPage writes a resident page back to disk and marks it clean
func (b *BufferPoolManager) FlushPage(oid types.OID, pageID types.PageID) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	frameID, ok := b.pageTable[NewPageKey(oid, pageID)]
	if !ok {
		return errors.ErrPageNotFound
	}

	pg := b.pages[frameID]
	pg.RLatch()
	err := b.diskManager.WritePage(oid, pageID, pg.Data()[:])
	pg.RUnlatch()
	if err != nil {
		return err
	}
	pg.SetIsDirty(false)
	return nil
}

// FlushAllPages writes every dirty resident page back to disk
func (b *BufferPoolManager) FlushAllPages() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	for _, frameID := range b.pageTable {
		pg := b.pages[frameID]
		if pg == nil || !pg.IsDirty() {
			continue
		}
		pg.RLatch()
		err := b.diskManager.WritePage(pg.OID(), pg.ID(), pg.Data()[:])
		pg.RUnlatch()
		if err != nil {
			return err
		}
		pg.SetIsDirty(false)
	}
	return nil
}

// GetPoolSize returns the number of frames
func (b *BufferPoolManager) GetPoolSize() uint32 {
	return uint32(len(b.pages))
}

// ResidentCount returns how many pages are mapped right now
func (b *BufferPoolManager) ResidentCount() int {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return len(b.pageTable)
}

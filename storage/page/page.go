// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package page

import (
	"sync/atomic"

	"github.com/aokimoto/KujiraDB/common"
	"github.com/aokimoto/KujiraDB/types"
)

// Page is an in-memory image of one on-disk page. The buffer pool owns
// the frame, callers pin the page while they touch its bytes and take
// the latch when they mutate them.
type Page struct {
	oid      types.OID
	id       types.PageID
	pinCount int32
	isDirty  bool
	// set when the backing read failed, the frame is being recycled
	invalid  bool
	data     *[common.PageSize]byte
	rwlatch_ common.ReaderWriterLatch
}

func New(oid types.OID, id types.PageID, data *[common.PageSize]byte) *Page {
	return &Page{oid, id, 1, false, false, data, common.NewRWLatch()}
}

func NewEmpty(oid types.OID, id types.PageID) *Page {
	return &Page{oid, id, 1, false, false, &[common.PageSize]byte{}, common.NewRWLatch()}
}

// OID returns the table the page belongs to
func (p *Page) OID() types.OID {
	return p.oid
}

// ID returns the page id
func (p *Page) ID() types.PageID {
	return p.id
}

// IncPinCount increments pin count
func (p *Page) IncPinCount() {
	atomic.AddInt32(&p.pinCount, 1)
}

// DecPinCount decrements pin count
func (p *Page) DecPinCount() {
	atomic.AddInt32(&p.pinCount, -1)
}

// PinCount returns the pin count
func (p *Page) PinCount() int32 {
	return atomic.LoadInt32(&p.pinCount)
}

func (p *Page) Data() *[common.PageSize]byte {
	return p.data
}

// Copy writes data into the page body at offset
func (p *Page) Copy(offset uint32, data []byte) {
	copy(p.data[offset:], data)
}

func (p *Page) SetIsDirty(isDirty bool) {
	p.isDirty = isDirty
}

func (p *Page) IsDirty() bool {
	return p.isDirty
}

// MarkInvalid flags a page whose fill failed. It is written under the
// write latch, readers waiting on the latch see it once they get in.
func (p *Page) MarkInvalid() {
	p.invalid = true
}

func (p *Page) IsInvalid() bool {
	return p.invalid
}

func (p *Page) WLatch() {
	p.rwlatch_.WLock()
}

func (p *Page) WUnlatch() {
	p.rwlatch_.WUnlock()
}

func (p *Page) RLatch() {
	p.rwlatch_.RLock()
}

func (p *Page) RUnlatch() {
	p.rwlatch_.RUnlock()
}

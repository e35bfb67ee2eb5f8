package disk

import (
	"sync"

	"github.com/dsnet/golib/memfile"

	"github.com/aokimoto/KujiraDB/common"
	"github.com/aokimoto/KujiraDB/errors"
	"github.com/aokimoto/KujiraDB/types"
)

// VirtualDiskManagerImpl keeps the table files in memory. It behaves
// like DiskManagerImpl including the strict bounds checks, so the same
// tests run against both.
type VirtualDiskManagerImpl struct {
	files     map[types.OID]*memfile.File
	numPages  map[types.OID]types.PageID
	mutex     sync.Mutex
	numWrites uint64
	numReads  uint64
}

func NewVirtualDiskManagerImpl() DiskManager {
	return &VirtualDiskManagerImpl{
		files:    make(map[types.OID]*memfile.File),
		numPages: make(map[types.OID]types.PageID),
	}
}

func (d *VirtualDiskManagerImpl) CreateFile(oid types.OID) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if _, ok := d.files[oid]; ok {
		return nil
	}
	d.files[oid] = memfile.New(make([]byte, 0))
	d.numPages[oid] = 0
	return nil
}

func (d *VirtualDiskManagerImpl) ReadPage(oid types.OID, pageID types.PageID, data []byte) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	file, ok := d.files[oid]
	if !ok {
		return errors.ErrNoTable
	}
	if !pageID.IsValid() || pageID >= d.numPages[oid] {
		return errors.ErrIO
	}

	d.numReads++
	offset := int64(pageID) * int64(common.PageSize)
	bytesRead, err := file.ReadAt(data, offset)
	if err != nil || bytesRead < common.PageSize {
		return errors.ErrIO
	}
	return nil
}

func (d *VirtualDiskManagerImpl) WritePage(oid types.OID, pageID types.PageID, data []byte) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	file, ok := d.files[oid]
	if !ok {
		return errors.ErrNoTable
	}
	if !pageID.IsValid() || pageID >= d.numPages[oid] {
		return errors.ErrIO
	}

	d.numWrites++
	offset := int64(pageID) * int64(common.PageSize)
	bytesWritten, err := file.WriteAt(data, offset)
	if err != nil || bytesWritten != common.PageSize {
		return errors.ErrIO
	}
	return nil
}

func (d *VirtualDiskManagerImpl) AllocatePage(oid types.OID) (types.PageID, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	file, ok := d.files[oid]
	if !ok {
		return types.InvalidPageID, errors.ErrNoTable
	}

	pageID := d.numPages[oid]
	offset := int64(pageID) * int64(common.PageSize)
	zeroed := make([]byte, common.PageSize)
	if _, err := file.WriteAt(zeroed, offset); err != nil {
		return types.InvalidPageID, errors.ErrIO
	}
	d.numPages[oid] = pageID + 1
	return pageID, nil
}

func (d *VirtualDiskManagerImpl) NumPages(oid types.OID) types.PageID {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.numPages[oid]
}

func (d *VirtualDiskManagerImpl) Size(oid types.OID) int64 {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return int64(d.numPages[oid]) * int64(common.PageSize)
}

func (d *VirtualDiskManagerImpl) GetNumWrites() uint64 {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.numWrites
}

func (d *VirtualDiskManagerImpl) GetNumReads() uint64 {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.numReads
}

// ShutDown does nothing, memory backed files need no cleanup
func (d *VirtualDiskManagerImpl) ShutDown() {
}

// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package disk

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/aokimoto/KujiraDB/errors"
	"github.com/aokimoto/KujiraDB/types"
)

// DiskManagerImpl is the disk implementation of DiskManager. It keeps
// one HeapFile per table under a common directory, named <oid>.db.
type DiskManagerImpl struct {
	dirName   string
	files     map[types.OID]*HeapFile
	mutex     sync.Mutex
	numWrites uint64
	numReads  uint64
}

// NewDiskManagerImpl returns a DiskManager storing table files under dirName
func NewDiskManagerImpl(dirName string) DiskManager {
	return &DiskManagerImpl{dirName: dirName, files: make(map[types.OID]*HeapFile)}
}

func (d *DiskManagerImpl) fileNameOf(oid types.OID) string {
	return filepath.Join(d.dirName, fmt.Sprintf("%d.db", oid))
}

func (d *DiskManagerImpl) getFile(oid types.OID) (*HeapFile, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	file, ok := d.files[oid]
	if !ok {
		return nil, errors.ErrNoTable
	}
	return file, nil
}

func (d *DiskManagerImpl) CreateFile(oid types.OID) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if _, ok := d.files[oid]; ok {
		return nil
	}
	file, err := OpenHeapFile(d.fileNameOf(oid))
	if err != nil {
		return err
	}
	d.files[oid] = file
	return nil
}

func (d *DiskManagerImpl) ReadPage(oid types.OID, pageID types.PageID, data []byte) error {
	file, err := d.getFile(oid)
	if err != nil {
		return err
	}
	atomic.AddUint64(&d.numReads, 1)
	return file.ReadPage(pageID, data)
}

func (d *DiskManagerImpl) WritePage(oid types.OID, pageID types.PageID, data []byte) error {
	file, err := d.getFile(oid)
	if err != nil {
		return err
	}
	atomic.AddUint64(&d.numWrites, 1)
	return file.WritePage(pageID, data)
}

func (d *DiskManagerImpl) AllocatePage(oid types.OID) (types.PageID, error) {
	file, err := d.getFile(oid)
	if err != nil {
		return types.InvalidPageID, err
	}
	return file.AllocatePage()
}

func (d *DiskManagerImpl) NumPages(oid types.OID) types.PageID {
	file, err := d.getFile(oid)
	if err != nil {
		return 0
	}
	return file.NumPages()
}

func (d *DiskManagerImpl) Size(oid types.OID) int64 {
	file, err := d.getFile(oid)
	if err != nil {
		return 0
	}
	return file.Size()
}

func (d *DiskManagerImpl) GetNumWrites() uint64 {
	return atomic.LoadUint64(&d.numWrites)
}

func (d *DiskManagerImpl) GetNumReads() uint64 {
	return atomic.LoadUint64(&d.numReads)
}

// ShutDown closes every table file
func (d *DiskManagerImpl) ShutDown() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	for _, file := range d.files {
		file.Close()
	}
}

// ATTENTION: this method can be call after calling of Shutdown method
func (d *DiskManagerImpl) RemoveDBFiles() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	for _, file := range d.files {
		os.Remove(file.FileName())
	}
}

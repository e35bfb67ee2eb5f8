// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package disk

import (
	"os"
	"sync"

	"github.com/aokimoto/KujiraDB/common"
	"github.com/aokimoto/KujiraDB/errors"
	"github.com/aokimoto/KujiraDB/types"
)

// HeapFile is one table file on disk. Page n lives at byte offset
// n * PageSize and page numbers are dense, the file has no holes.
type HeapFile struct {
	file     *os.File
	fileName string
	numPages types.PageID
	mutex    sync.Mutex
}

// OpenHeapFile opens fileName, creating it when absent. A file whose
// size is not a whole number of pages is refused.
func OpenHeapFile(fileName string) (*HeapFile, error) {
	file, err := os.OpenFile(fileName, os.O_RDWR|os.O_CREATE, 0666)
	if err != nil {
		return nil, errors.ErrIO
	}

	fileInfo, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, errors.ErrIO
	}
	fileSize := fileInfo.Size()
	if fileSize%common.PageSize != 0 {
		file.Close()
		return nil, errors.ErrIO
	}

	return &HeapFile{file: file, fileName: fileName, numPages: types.PageID(fileSize / common.PageSize)}, nil
}

// ReadPage reads the full page pageID into data. Reading a page that
// was never allocated or getting back fewer bytes than a page is an
// I/O failure, pages are never silently zero filled.
func (f *HeapFile) ReadPage(pageID types.PageID, data []byte) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if !pageID.IsValid() || pageID >= f.numPages {
		return errors.ErrIO
	}

	offset := int64(pageID) * int64(common.PageSize)
	bytesRead, err := f.file.ReadAt(data, offset)
	if err != nil || bytesRead < common.PageSize {
		return errors.ErrIO
	}
	return nil
}

// WritePage writes the full page pageID from data and syncs the file.
func (f *HeapFile) WritePage(pageID types.PageID, data []byte) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if !pageID.IsValid() || pageID >= f.numPages {
		return errors.ErrIO
	}

	offset := int64(pageID) * int64(common.PageSize)
	bytesWritten, err := f.file.WriteAt(data, offset)
	if err != nil || bytesWritten != common.PageSize {
		return errors.ErrIO
	}
	if err := f.file.Sync(); err != nil {
		return errors.ErrIO
	}
	return nil
}

// AllocatePage extends the file by one zeroed page and returns the new
// page id. Page ids grow monotonically, there is no reuse.
func (f *HeapFile) AllocatePage() (types.PageID, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	pageID := f.numPages
	offset := int64(pageID) * int64(common.PageSize)
	zeroed := make([]byte, common.PageSize)
	bytesWritten, err := f.file.WriteAt(zeroed, offset)
	if err != nil || bytesWritten != common.PageSize {
		return types.InvalidPageID, errors.ErrIO
	}
	if err := f.file.Sync(); err != nil {
		return types.InvalidPageID, errors.ErrIO
	}
	f.numPages++
	return pageID, nil
}

func (f *HeapFile) NumPages() types.PageID {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.numPages
}

func (f *HeapFile) Size() int64 {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return int64(f.numPages) * int64(common.PageSize)
}

func (f *HeapFile) FileName() string {
	return f.fileName
}

func (f *HeapFile) Close() {
	f.file.Close()
}

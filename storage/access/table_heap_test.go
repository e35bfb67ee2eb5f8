package access

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aokimoto/KujiraDB/common"
	"github.com/aokimoto/KujiraDB/storage/buffer"
	"github.com/aokimoto/KujiraDB/storage/disk"
	"github.com/aokimoto/KujiraDB/storage/tuple"
	"github.com/aokimoto/KujiraDB/types"
)

func newTestTableHeap(t *testing.T, oid types.OID) *TableHeap {
	t.Helper()
	dm := disk.NewDiskManagerTest()
	sm := NewStorageManager(buffer.NewBufferPoolManager(common.DefaultPoolSize, dm), dm)
	th, err := NewTableHeap(sm, oid)
	require.NoError(t, err)
	return th
}

func rawTuple(filler byte, length int) *tuple.Tuple {
	data := bytes.Repeat([]byte{filler}, length)
	return tuple.NewTuple(nil, uint32(len(data)), data)
}

func TestTableHeapStartsWithOnePage(t *testing.T) {
	th := newTestTableHeap(t, types.OID(1))
	assert.Equal(t, types.PageID(1), th.sm.NumPages(th.OID()))
}

func TestInsertAndGetTuple(t *testing.T) {
	th := newTestTableHeap(t, types.OID(1))

	rid, err := th.InsertTuple(rawTuple('a', 64))
	require.NoError(t, err)
	assert.Equal(t, types.PageID(0), rid.GetPageId())

	got, err := th.GetTuple(rid)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{'a'}, 64), got.Data())
}

func TestInsertSpansPages(t *testing.T) {
	th := newTestTableHeap(t, types.OID(1))

	// each record costs about a quarter page, five of them cannot
	// share one page
	rids := make([]*tuple.Tuple, 0)
	for i := 0; i < 5; i++ {
		tp := rawTuple(byte('a'+i), 1200)
		_, err := th.InsertTuple(tp)
		require.NoError(t, err)
		rids = append(rids, tp)
	}
	assert.Greater(t, int64(th.sm.NumPages(th.OID())), int64(1))

	// the iterator sees every record once, in page then slot order,
	// which for append only inserts is insertion order
	it := th.Iterator()
	seen := 0
	for ; !it.End(); it.Next() {
		assert.Equal(t, rids[seen].Data(), it.Current().Data())
		seen++
	}
	require.NoError(t, it.Err())
	assert.Equal(t, 5, seen)
}

func TestDeletedTupleIsSkipped(t *testing.T) {
	th := newTestTableHeap(t, types.OID(1))

	ridKeep1, err := th.InsertTuple(rawTuple('a', 32))
	require.NoError(t, err)
	ridDrop, err := th.InsertTuple(rawTuple('b', 32))
	require.NoError(t, err)
	_, err = th.InsertTuple(rawTuple('c', 32))
	require.NoError(t, err)

	require.NoError(t, th.DeleteTuple(ridDrop))

	got, err := th.GetTuple(ridKeep1)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{'a'}, 32), got.Data())

	_, err = th.GetTuple(ridDrop)
	assert.Error(t, err)

	it := th.Iterator()
	count := 0
	for ; !it.End(); it.Next() {
		count++
	}
	require.NoError(t, it.Err())
	assert.Equal(t, 2, count)
}

func TestUpdateTuple(t *testing.T) {
	th := newTestTableHeap(t, types.OID(1))

	rid, err := th.InsertTuple(rawTuple('a', 40))
	require.NoError(t, err)

	newRID, err := th.UpdateTuple(rid, rawTuple('b', 40))
	require.NoError(t, err)

	got, err := th.GetTuple(newRID)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{'b'}, 40), got.Data())
}

func TestConcurrentInserts(t *testing.T) {
	th := newTestTableHeap(t, types.OID(1))

	const workers = 4
	const perWorker = 50

	var wg sync.WaitGroup
	insertErrs := make([]error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if _, err := th.InsertTuple(rawTuple(byte('a'+w), 100)); err != nil {
					insertErrs[w] = err
					return
				}
			}
		}(w)
	}
	wg.Wait()
	for _, err := range insertErrs {
		require.NoError(t, err)
	}

	it := th.Iterator()
	count := 0
	for ; !it.End(); it.Next() {
		count++
	}
	require.NoError(t, it.Err())
	assert.Equal(t, workers*perWorker, count)
}

func TestInsertSurvivesShutdownAndReopen(t *testing.T) {
	dir := t.TempDir()
	oid := types.OID(9)

	dm := disk.NewDiskManagerImpl(dir)
	sm := NewStorageManager(buffer.NewBufferPoolManager(common.DefaultPoolSize, dm), dm)
	th, err := NewTableHeap(sm, oid)
	require.NoError(t, err)

	rid, err := th.InsertTuple(rawTuple('p', 128))
	require.NoError(t, err)
	require.NoError(t, sm.Shutdown())

	dm2 := disk.NewDiskManagerImpl(dir)
	sm2 := NewStorageManager(buffer.NewBufferPoolManager(common.DefaultPoolSize, dm2), dm2)
	th2, err := NewTableHeap(sm2, oid)
	require.NoError(t, err)

	got, err := th2.GetTuple(rid)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{'p'}, 128), got.Data())
	require.NoError(t, sm2.Shutdown())
}

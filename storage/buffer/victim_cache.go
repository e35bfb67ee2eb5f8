package buffer

import (
	"github.com/dgraph-io/ristretto/v2"

	"github.com/aokimoto/KujiraDB/common"
	"github.com/aokimoto/KujiraDB/types"
)

// VictimCache remembers the bytes of recently evicted pages. A page
// that bounces out of the pool and is fetched again shortly after can
// be refilled from memory without a disk read. Entries are only ever a
// copy of clean page images, dropping one loses nothing.
type VictimCache struct {
	cache *ristretto.Cache[uint64, []byte]
}

func NewVictimCache(maxPages int64) *VictimCache {
	cache, err := ristretto.NewCache(&ristretto.Config[uint64, []byte]{
		NumCounters: maxPages * 10,
		MaxCost:     maxPages * int64(common.PageSize),
		BufferItems: 64,
	})
	if err != nil {
		panic(err)
	}
	return &VictimCache{cache: cache}
}

func cacheKey(oid types.OID, pageID types.PageID) uint64 {
	return uint64(oid)<<32 | uint64(uint32(pageID))
}

// Put stores a copy of the evicted page image.
func (v *VictimCache) Put(oid types.OID, pageID types.PageID, data *[common.PageSize]byte) {
	image := make([]byte, common.PageSize)
	copy(image, data[:])
	v.cache.Set(cacheKey(oid, pageID), image, int64(common.PageSize))
	v.cache.Wait()
}

// Take removes and returns the cached image of a page. The entry must
// not stay cached once the page is resident again, the pool copy is
// the one that gets mutated.
func (v *VictimCache) Take(oid types.OID, pageID types.PageID) ([]byte, bool) {
	key := cacheKey(oid, pageID)
	image, ok := v.cache.Get(key)
	if ok {
		v.cache.Del(key)
	}
	return image, ok
}

func (v *VictimCache) Close() {
	v.cache.Close()
}

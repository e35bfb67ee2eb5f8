// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package page

import (
	"github.com/aokimoto/KujiraDB/types"
)

// RID is the record identifier, the pair of a page id and a slot number
// within the page.
type RID struct {
	PageId  types.PageID
	SlotNum uint32
}

func (r *RID) Set(pageId types.PageID, slot uint32) {
	r.PageId = pageId
	r.SlotNum = slot
}

func (r *RID) GetPageId() types.PageID {
	return r.PageId
}

func (r *RID) GetSlotNum() uint32 {
	return r.SlotNum
}

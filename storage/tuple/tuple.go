// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package tuple

import (
	"github.com/aokimoto/KujiraDB/storage/page"
	"github.com/aokimoto/KujiraDB/storage/table/schema"
	"github.com/aokimoto/KujiraDB/types"
)

/**
 * Tuple format:
 * ---------------------------------------------------------------------
 * | FIXED-SIZE or VARIED-SIZED OFFSET | PAYLOAD OF VARIED-SIZED FIELD |
 * ---------------------------------------------------------------------
 */
type Tuple struct {
	rid  *page.RID
	size uint32
	data []byte
}

func NewTuple(rid *page.RID, size uint32, data []byte) *Tuple {
	return &Tuple{rid, size, data}
}

// NewTupleFromSchema serializes values into a fresh tuple laid out by
// the schema. Uninlined values land after the fixed length part, their
// fixed slot holds the offset.
func NewTupleFromSchema(values []types.Value, schema_ *schema.Schema) *Tuple {
	tupleSize := schema_.Length()
	for _, colIndex := range schema_.GetUnlinedColumns() {
		tupleSize += values[colIndex].Size()
	}

	tuple_ := &Tuple{}
	tuple_.size = tupleSize
	tuple_.data = make([]byte, tupleSize)

	tupleEndOffset := schema_.Length()
	for i, col := range schema_.GetColumns() {
		if col.IsInlined() {
			tuple_.Copy(col.GetOffset(), values[i].Serialize())
		} else {
			tuple_.Copy(col.GetOffset(), types.UInt32(tupleEndOffset).Serialize())
			tuple_.Copy(tupleEndOffset, values[i].Serialize())
			tupleEndOffset += values[i].Size()
		}
	}
	return tuple_
}

func (t *Tuple) GetValue(schema_ *schema.Schema, colIndex uint32) types.Value {
	column_ := schema_.GetColumn(colIndex)
	offset := column_.GetOffset()
	if !column_.IsInlined() {
		offset = uint32(types.NewUInt32FromBytes(t.data[offset : offset+column_.FixedLength()]))
	}

	value := types.NewValueFromBytes(t.data[offset:], column_.GetType())
	if value == nil {
		panic("value deserialization failed")
	}
	return *value
}

func (t *Tuple) Size() uint32 {
	return t.size
}

func (t *Tuple) Data() []byte {
	return t.data
}

func (t *Tuple) GetRID() *page.RID {
	return t.rid
}

func (t *Tuple) SetRID(rid *page.RID) {
	t.rid = rid
}

func (t *Tuple) Copy(offset uint32, data []byte) {
	copy(t.data[offset:], data)
}

// GetDeepCopy clones the tuple including its backing bytes
func (t *Tuple) GetDeepCopy() *Tuple {
	ret := new(Tuple)
	ret.size = t.size
	ret.data = make([]byte, len(t.data))
	copy(ret.data, t.data)
	if t.rid != nil {
		copiedRID := new(page.RID)
		copiedRID.Set(t.rid.GetPageId(), t.rid.GetSlotNum())
		ret.rid = copiedRID
	}
	return ret
}

// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package column

import (
	"github.com/aokimoto/KujiraDB/types"
)

type Column struct {
	columnName     string
	columnType     types.TypeID
	fixedLength    uint32 // for a non-inlined column this is the size of the offset pointer
	variableLength uint32 // for an inlined column 0, otherwise the max payload length
	columnOffset   uint32 // column offset in the tuple
}

func NewColumn(name string, columnType types.TypeID) *Column {
	if columnType.IsInlined() {
		return &Column{name, columnType, columnType.Size(), 0, 0}
	}

	return &Column{name, columnType, 4, 255, 0}
}

func (c *Column) IsInlined() bool {
	return c.columnType.IsInlined()
}

func (c *Column) GetType() types.TypeID {
	return c.columnType
}

func (c *Column) GetOffset() uint32 {
	return c.columnOffset
}

func (c *Column) SetOffset(offset uint32) {
	c.columnOffset = offset
}

func (c *Column) FixedLength() uint32 {
	return c.fixedLength
}

func (c *Column) VariableLength() uint32 {
	return c.variableLength
}

func (c *Column) GetColumnName() string {
	return c.columnName
}

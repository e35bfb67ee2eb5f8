// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package expression

import (
	"github.com/aokimoto/KujiraDB/storage/table/schema"
	"github.com/aokimoto/KujiraDB/storage/tuple"
	"github.com/aokimoto/KujiraDB/types"
)

/**
 * ColumnValue picks one column out of the tuple it is evaluated on.
 * colIndex refers to the index within the schema of the tuple, e.g.
 * schema {A,B,C} has indexes {0,1,2}.
 */
type ColumnValue struct {
	colIndex uint32
	retType  types.TypeID
}

func NewColumnValue(colIndex uint32, colType types.TypeID) Expression {
	return &ColumnValue{colIndex, colType}
}

func (c *ColumnValue) Evaluate(tuple_ *tuple.Tuple, schema_ *schema.Schema) types.Value {
	return tuple_.GetValue(schema_, c.colIndex)
}

func (c *ColumnValue) GetColIndex() uint32 {
	return c.colIndex
}

func (c *ColumnValue) GetReturnType() types.TypeID {
	return c.retType
}

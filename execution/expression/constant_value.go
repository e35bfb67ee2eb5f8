// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package expression

import (
	"github.com/aokimoto/KujiraDB/storage/table/schema"
	"github.com/aokimoto/KujiraDB/storage/tuple"
	"github.com/aokimoto/KujiraDB/types"
)

/**
 * ConstantValue represents a literal in an expression tree.
 */
type ConstantValue struct {
	value types.Value
}

func NewConstantValue(value types.Value) Expression {
	return &ConstantValue{value}
}

func (c *ConstantValue) Evaluate(tuple_ *tuple.Tuple, schema_ *schema.Schema) types.Value {
	return c.value
}

func (c *ConstantValue) GetReturnType() types.TypeID {
	return c.value.ValueType()
}

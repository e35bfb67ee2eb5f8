// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package expression

import (
	"github.com/aokimoto/KujiraDB/storage/table/schema"
	"github.com/aokimoto/KujiraDB/storage/tuple"
	"github.com/aokimoto/KujiraDB/types"
)

// Expression is a node of an evaluation tree over one tuple
type Expression interface {
	Evaluate(tuple_ *tuple.Tuple, schema_ *schema.Schema) types.Value
	GetReturnType() types.TypeID
}

// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package plans

import (
	"github.com/aokimoto/KujiraDB/types"
)

// InsertPlanNode stores raw rows to be put into a table
type InsertPlanNode struct {
	*AbstractPlanNode
	rawValues [][]types.Value
	tableOID  types.OID
}

func NewInsertPlanNode(rawValues [][]types.Value, tableOID types.OID) Plan {
	return &InsertPlanNode{&AbstractPlanNode{nil, nil}, rawValues, tableOID}
}

// GetRawValues returns the raw rows to be inserted
func (p *InsertPlanNode) GetRawValues() [][]types.Value {
	return p.rawValues
}

func (p *InsertPlanNode) GetTableOID() types.OID {
	return p.tableOID
}

func (p *InsertPlanNode) GetType() PlanType {
	return Insert
}

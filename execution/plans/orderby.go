package plans

import (
	"github.com/aokimoto/KujiraDB/types"
)

type OrderbyType int32

const (
	ASC OrderbyType = iota
	DESC
)

// OrderbyPlanNode sorts the rows of its child by one or more columns.
// The output schema is the child's schema unchanged.
type OrderbyPlanNode struct {
	*AbstractPlanNode
	colIdxs      []uint32
	orderbyTypes []OrderbyType
}

func NewOrderbyPlanNode(child Plan, colIdxs []uint32, orderbyTypes []OrderbyType) *OrderbyPlanNode {
	return &OrderbyPlanNode{&AbstractPlanNode{child.OutputSchema(), []Plan{child}}, colIdxs, orderbyTypes}
}

func (p *OrderbyPlanNode) GetType() PlanType {
	return Orderby
}

func (p *OrderbyPlanNode) GetColIdxs() []uint32 {
	return p.colIdxs
}

func (p *OrderbyPlanNode) GetOrderbyTypes() []OrderbyType {
	return p.orderbyTypes
}

func (p *OrderbyPlanNode) GetTableOID() types.OID {
	return p.children[0].GetTableOID()
}

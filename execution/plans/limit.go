package plans

import (
	"github.com/aokimoto/KujiraDB/types"
)

// LimitPlanNode passes through at most limit rows of its child after
// skipping offset rows.
type LimitPlanNode struct {
	*AbstractPlanNode
	limit  uint32
	offset uint32
}

func NewLimitPlanNode(child Plan, limit uint32, offset uint32) Plan {
	return &LimitPlanNode{&AbstractPlanNode{child.OutputSchema(), []Plan{child}}, limit, offset}
}

func (p *LimitPlanNode) GetType() PlanType {
	return Limit
}

func (p *LimitPlanNode) GetLimit() uint32 {
	return p.limit
}

func (p *LimitPlanNode) GetOffset() uint32 {
	return p.offset
}

func (p *LimitPlanNode) GetTableOID() types.OID {
	return p.children[0].GetTableOID()
}

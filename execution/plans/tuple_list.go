package plans

import (
	"github.com/aokimoto/KujiraDB/storage/table/schema"
	"github.com/aokimoto/KujiraDB/storage/tuple"
)

// TupleListPlanNode serves an in-memory list of tuples. It backs
// rewinds of buffering operators and tests that need a leaf without a
// table behind it.
type TupleListPlanNode struct {
	*AbstractPlanNode
	tuples []*tuple.Tuple
}

func NewTupleListPlanNode(schema_ *schema.Schema, tuples []*tuple.Tuple) Plan {
	return &TupleListPlanNode{&AbstractPlanNode{schema_, nil}, tuples}
}

func (p *TupleListPlanNode) GetType() PlanType {
	return TupleList
}

func (p *TupleListPlanNode) GetTuples() []*tuple.Tuple {
	return p.tuples
}

package plans

import (
	"github.com/aokimoto/KujiraDB/execution/expression"
	"github.com/aokimoto/KujiraDB/types"
)

// SelectionPlanNode filters the rows of its child by a predicate. The
// output schema is the child's schema unchanged.
type SelectionPlanNode struct {
	*AbstractPlanNode
	predicate expression.Expression
}

func NewSelectionPlanNode(child Plan, predicate expression.Expression) Plan {
	childOutSchema := child.OutputSchema()
	return &SelectionPlanNode{&AbstractPlanNode{childOutSchema, []Plan{child}}, predicate}
}

func (p *SelectionPlanNode) GetType() PlanType {
	return Selection
}

func (p *SelectionPlanNode) GetPredicate() expression.Expression {
	return p.predicate
}

func (p *SelectionPlanNode) GetTableOID() types.OID {
	return p.children[0].GetTableOID()
}

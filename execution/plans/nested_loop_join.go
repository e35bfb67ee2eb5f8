package plans

import (
	"github.com/aokimoto/KujiraDB/common"
	"github.com/aokimoto/KujiraDB/execution/expression"
	"github.com/aokimoto/KujiraDB/storage/table/schema"
)

// NestedLoopJoinPlanNode joins its two children pairwise. The output
// schema is the left child's columns followed by the right child's,
// and the join predicate is evaluated against that merged schema. A
// nil predicate makes it a cross join.
type NestedLoopJoinPlanNode struct {
	*AbstractPlanNode
	onPredicate expression.Expression
}

func NewNestedLoopJoinPlanNode(outputSchema *schema.Schema, left Plan, right Plan,
	onPredicate expression.Expression) *NestedLoopJoinPlanNode {
	return &NestedLoopJoinPlanNode{&AbstractPlanNode{outputSchema, []Plan{left, right}}, onPredicate}
}

func (p *NestedLoopJoinPlanNode) GetType() PlanType {
	return NestedLoopJoin
}

func (p *NestedLoopJoinPlanNode) OnPredicate() expression.Expression {
	return p.onPredicate
}

func (p *NestedLoopJoinPlanNode) GetLeftPlan() Plan {
	common.KAssert(len(p.GetChildren()) == 2, "joins have exactly two children")
	return p.GetChildAt(0)
}

func (p *NestedLoopJoinPlanNode) GetRightPlan() Plan {
	common.KAssert(len(p.GetChildren()) == 2, "joins have exactly two children")
	return p.GetChildAt(1)
}

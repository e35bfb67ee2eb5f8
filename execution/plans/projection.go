package plans

import (
	"github.com/aokimoto/KujiraDB/execution/expression"
	"github.com/aokimoto/KujiraDB/storage/table/schema"
	"github.com/aokimoto/KujiraDB/types"
)

// ProjectionPlanNode maps each child row to a new row built from the
// given expressions, one per output column.
type ProjectionPlanNode struct {
	*AbstractPlanNode
	projections []expression.Expression
}

func NewProjectionPlanNode(child Plan, outputSchema *schema.Schema, projections []expression.Expression) Plan {
	return &ProjectionPlanNode{&AbstractPlanNode{outputSchema, []Plan{child}}, projections}
}

func (p *ProjectionPlanNode) GetType() PlanType {
	return Projection
}

func (p *ProjectionPlanNode) GetProjections() []expression.Expression {
	return p.projections
}

func (p *ProjectionPlanNode) GetTableOID() types.OID {
	return p.children[0].GetTableOID()
}

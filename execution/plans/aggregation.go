package plans

import (
	"github.com/aokimoto/KujiraDB/common"
	"github.com/aokimoto/KujiraDB/execution/expression"
	"github.com/aokimoto/KujiraDB/storage/table/schema"
	"github.com/aokimoto/KujiraDB/types"
)

/** AggregationType enumerates all the possible aggregation functions in our system. */
type AggregationType int32

const (
	COUNT_AGGREGATE AggregationType = iota
	COUNT_DISTINCT_AGGREGATE
	SUM_AGGREGATE
	MIN_AGGREGATE
	MAX_AGGREGATE
	AVG_AGGREGATE
)

/**
 * AggregationPlanNode represents the various SQL aggregation functions.
 * For example, COUNT(), SUM(), MIN() and MAX().
 * An AggregationPlanNode always has exactly one child.
 */
type AggregationPlanNode struct {
	*AbstractPlanNode
	groupBys   []expression.Expression
	aggregates []expression.Expression
	aggTypes   []AggregationType
}

func NewAggregationPlanNode(outputSchema *schema.Schema, child Plan,
	groupBys []expression.Expression,
	aggregates []expression.Expression, aggTypes []AggregationType) *AggregationPlanNode {
	return &AggregationPlanNode{&AbstractPlanNode{outputSchema, []Plan{child}}, groupBys, aggregates, aggTypes}
}

func (p *AggregationPlanNode) GetType() PlanType { return Aggregation }

/** @return the child of this aggregation plan node */
func (p *AggregationPlanNode) GetChildPlan() Plan {
	common.KAssert(len(p.GetChildren()) == 1, "Aggregation expected to only have one child.")
	return p.GetChildAt(0)
}

func (p *AggregationPlanNode) GetGroupBys() []expression.Expression { return p.groupBys }

func (p *AggregationPlanNode) GetAggregates() []expression.Expression { return p.aggregates }

func (p *AggregationPlanNode) GetAggregateTypes() []AggregationType { return p.aggTypes }

func (p *AggregationPlanNode) GetTableOID() types.OID {
	return p.children[0].GetTableOID()
}

type AggregateKey struct {
	GroupBys []*types.Value
}

type AggregateValue struct {
	Aggregates []*types.Value
}

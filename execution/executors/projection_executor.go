package executors

import (
	"github.com/aokimoto/KujiraDB/execution/plans"
	"github.com/aokimoto/KujiraDB/storage/table/schema"
	"github.com/aokimoto/KujiraDB/storage/tuple"
	"github.com/aokimoto/KujiraDB/types"
)

/**
 * ProjectionExecutor evaluates one expression per output column
 * against each child row and emits the rebuilt tuple.
 */
type ProjectionExecutor struct {
	baseOpIterator
	context *ExecutorContext
	plan    *plans.ProjectionPlanNode
	child   OpIterator
}

func NewProjectionExecutor(context *ExecutorContext, plan *plans.ProjectionPlanNode, child OpIterator) *ProjectionExecutor {
	return &ProjectionExecutor{context: context, plan: plan, child: child}
}

func (e *ProjectionExecutor) Configure(eager bool) {
	e.child.Configure(eager)
	e.markConfigured(eager)
}

func (e *ProjectionExecutor) Open() error {
	if err := e.child.Open(); err != nil {
		return err
	}
	e.markOpened()
	return nil
}

func (e *ProjectionExecutor) Next() (*tuple.Tuple, bool, error) {
	e.assertOpened()

	tuple_, done, err := e.child.Next()
	if err != nil || done {
		return nil, done, err
	}

	childSchema := e.child.OutputSchema()
	projections := e.plan.GetProjections()
	values := make([]types.Value, len(projections))
	for i, projection := range projections {
		values[i] = projection.Evaluate(tuple_, childSchema)
	}

	ret := tuple.NewTupleFromSchema(values, e.plan.OutputSchema())
	ret.SetRID(tuple_.GetRID())
	return ret, false, nil
}

func (e *ProjectionExecutor) Close() error {
	if !e.markClosed() {
		return nil
	}
	return e.child.Close()
}

func (e *ProjectionExecutor) OutputSchema() *schema.Schema {
	return e.plan.OutputSchema()
}

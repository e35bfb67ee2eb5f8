package executors

import (
	"github.com/aokimoto/KujiraDB/execution/plans"
	"github.com/aokimoto/KujiraDB/storage/table/schema"
	"github.com/aokimoto/KujiraDB/storage/tuple"
)

/**
 * SelectionExecutor filters the rows of its child by a predicate. It
 * is strictly lazy, each Next pulls from the child until a row passes.
 */
type SelectionExecutor struct {
	baseOpIterator
	context *ExecutorContext
	plan    *plans.SelectionPlanNode
	child   OpIterator
}

func NewSelectionExecutor(context *ExecutorContext, plan *plans.SelectionPlanNode, child OpIterator) *SelectionExecutor {
	return &SelectionExecutor{context: context, plan: plan, child: child}
}

func (e *SelectionExecutor) Configure(eager bool) {
	e.child.Configure(eager)
	e.markConfigured(eager)
}

func (e *SelectionExecutor) Open() error {
	if err := e.child.Open(); err != nil {
		return err
	}
	e.markOpened()
	return nil
}

func (e *SelectionExecutor) Next() (*tuple.Tuple, bool, error) {
	e.assertOpened()
	for {
		tuple_, done, err := e.child.Next()
		if err != nil || done {
			return nil, done, err
		}
		if e.plan.GetPredicate().Evaluate(tuple_, e.child.OutputSchema()).ToBoolean() {
			return tuple_, false, nil
		}
	}
}

func (e *SelectionExecutor) Close() error {
	if !e.markClosed() {
		return nil
	}
	return e.child.Close()
}

func (e *SelectionExecutor) OutputSchema() *schema.Schema {
	return e.plan.OutputSchema()
}

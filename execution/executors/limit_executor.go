// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package executors

import (
	"github.com/aokimoto/KujiraDB/execution/plans"
	"github.com/aokimoto/KujiraDB/storage/table/schema"
	"github.com/aokimoto/KujiraDB/storage/tuple"
)

/**
 * LimitExecutor skips offset rows of its child, then passes through at
 * most limit rows.
 */
type LimitExecutor struct {
	baseOpIterator
	context *ExecutorContext
	plan    *plans.LimitPlanNode
	child   OpIterator
	skipped uint32
	emitted uint32
}

func NewLimitExecutor(context *ExecutorContext, plan *plans.LimitPlanNode, child OpIterator) *LimitExecutor {
	return &LimitExecutor{context: context, plan: plan, child: child}
}

func (e *LimitExecutor) Configure(eager bool) {
	e.child.Configure(eager)
	e.markConfigured(eager)
}

func (e *LimitExecutor) Open() error {
	if err := e.child.Open(); err != nil {
		return err
	}
	e.skipped = 0
	e.emitted = 0
	e.markOpened()
	return nil
}

func (e *LimitExecutor) Next() (*tuple.Tuple, bool, error) {
	e.assertOpened()

	if e.emitted >= e.plan.GetLimit() {
		return nil, true, nil
	}

	for {
		tuple_, done, err := e.child.Next()
		if err != nil || done {
			return nil, done, err
		}
		if e.skipped < e.plan.GetOffset() {
			e.skipped++
			continue
		}
		e.emitted++
		return tuple_, false, nil
	}
}

func (e *LimitExecutor) Close() error {
	if !e.markClosed() {
		return nil
	}
	return e.child.Close()
}

func (e *LimitExecutor) OutputSchema() *schema.Schema {
	return e.plan.OutputSchema()
}

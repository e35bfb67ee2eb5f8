package executors

import (
	"github.com/aokimoto/KujiraDB/execution/plans"
	"github.com/aokimoto/KujiraDB/storage/table/schema"
	"github.com/aokimoto/KujiraDB/storage/tuple"
)

/**
 * TupleIterator replays an in-memory list of tuples. It is the leaf
 * for plans that carry their rows with them.
 */
type TupleIterator struct {
	baseOpIterator
	plan   *plans.TupleListPlanNode
	cursor int
}

func NewTupleIterator(plan *plans.TupleListPlanNode) *TupleIterator {
	return &TupleIterator{plan: plan}
}

func (e *TupleIterator) Configure(eager bool) {
	e.markConfigured(eager)
}

func (e *TupleIterator) Open() error {
	e.cursor = 0
	e.markOpened()
	return nil
}

func (e *TupleIterator) Next() (*tuple.Tuple, bool, error) {
	e.assertOpened()

	tuples := e.plan.GetTuples()
	if e.cursor >= len(tuples) {
		return nil, true, nil
	}
	// hand out a copy, the plan's tuples are shared across runs
	tuple_ := tuples[e.cursor].GetDeepCopy()
	e.cursor++
	return tuple_, false, nil
}

func (e *TupleIterator) Close() error {
	e.markClosed()
	return nil
}

func (e *TupleIterator) OutputSchema() *schema.Schema {
	return e.plan.OutputSchema()
}

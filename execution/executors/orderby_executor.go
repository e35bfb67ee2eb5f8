package executors

import (
	"sort"

	"github.com/aokimoto/KujiraDB/execution/plans"
	"github.com/aokimoto/KujiraDB/storage/table/schema"
	"github.com/aokimoto/KujiraDB/storage/tuple"
)

/**
 * OrderbyExecutor sorts the rows of its child by the plan's columns.
 * Sorting has to see every input row, so an eager instance drains the
 * child at Open and a lazy one on the first Next. The sort is stable,
 * rows equal on every key keep their input order.
 */
type OrderbyExecutor struct {
	baseOpIterator
	context      *ExecutorContext
	plan         *plans.OrderbyPlanNode
	child        OpIterator
	sortedTuples []*tuple.Tuple
	cursor       int
	materialized bool
}

func NewOrderbyExecutor(context *ExecutorContext, plan *plans.OrderbyPlanNode, child OpIterator) *OrderbyExecutor {
	return &OrderbyExecutor{context: context, plan: plan, child: child}
}

func (e *OrderbyExecutor) Configure(eager bool) {
	e.child.Configure(eager)
	e.markConfigured(eager)
}

func (e *OrderbyExecutor) Open() error {
	if err := e.child.Open(); err != nil {
		return err
	}
	e.sortedTuples = nil
	e.cursor = 0
	e.materialized = false
	e.markOpened()

	if e.eager {
		return e.materialize()
	}
	return nil
}

func (e *OrderbyExecutor) Next() (*tuple.Tuple, bool, error) {
	e.assertOpened()

	if !e.materialized {
		if err := e.materialize(); err != nil {
			return nil, false, err
		}
	}

	if e.cursor >= len(e.sortedTuples) {
		return nil, true, nil
	}
	tuple_ := e.sortedTuples[e.cursor]
	e.cursor++
	return tuple_, false, nil
}

// materialize drains the child and sorts the rows
func (e *OrderbyExecutor) materialize() error {
	e.sortedTuples = make([]*tuple.Tuple, 0)
	for {
		tuple_, done, err := e.child.Next()
		if err != nil {
			return err
		}
		if done {
			break
		}
		e.sortedTuples = append(e.sortedTuples, tuple_)
	}

	schema_ := e.plan.OutputSchema()
	colIdxs := e.plan.GetColIdxs()
	orderbyTypes := e.plan.GetOrderbyTypes()
	sort.SliceStable(e.sortedTuples, func(i, j int) bool {
		for k, colIdx := range colIdxs {
			a := e.sortedTuples[i].GetValue(schema_, colIdx)
			b := e.sortedTuples[j].GetValue(schema_, colIdx)
			if a.CompareEquals(b) {
				continue
			}
			if orderbyTypes[k] == plans.DESC {
				return a.CompareGreaterThan(b)
			}
			return a.CompareLessThan(b)
		}
		return false
	})

	e.materialized = true
	return nil
}

func (e *OrderbyExecutor) Close() error {
	if !e.markClosed() {
		return nil
	}
	e.sortedTuples = nil
	return e.child.Close()
}

func (e *OrderbyExecutor) OutputSchema() *schema.Schema {
	return e.plan.OutputSchema()
}

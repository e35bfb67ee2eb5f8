package executors

import (
	"github.com/aokimoto/KujiraDB/execution/plans"
	"github.com/aokimoto/KujiraDB/storage/table/schema"
	"github.com/aokimoto/KujiraDB/storage/tuple"
	"github.com/aokimoto/KujiraDB/types"
)

/**
 * NestedLoopJoinExecutor joins its children pairwise. The right child
 * is materialized once at Open, the left child is streamed, so output
 * order is left order with right order nested inside it.
 */
type NestedLoopJoinExecutor struct {
	baseOpIterator
	context     *ExecutorContext
	plan        *plans.NestedLoopJoinPlanNode
	left        OpIterator
	right       OpIterator
	rightTuples []*tuple.Tuple
	leftTuple   *tuple.Tuple
	rightIdx    int
}

func NewNestedLoopJoinExecutor(context *ExecutorContext, plan *plans.NestedLoopJoinPlanNode,
	left OpIterator, right OpIterator) *NestedLoopJoinExecutor {
	return &NestedLoopJoinExecutor{context: context, plan: plan, left: left, right: right}
}

func (e *NestedLoopJoinExecutor) Configure(eager bool) {
	e.left.Configure(eager)
	// the right side is replayed once per left tuple, it is always
	// drained up front
	e.right.Configure(true)
	e.markConfigured(eager)
}

func (e *NestedLoopJoinExecutor) Open() error {
	if err := e.left.Open(); err != nil {
		return err
	}
	if err := e.right.Open(); err != nil {
		e.left.Close()
		return err
	}

	e.rightTuples = make([]*tuple.Tuple, 0)
	for {
		tuple_, done, err := e.right.Next()
		if err != nil {
			return err
		}
		if done {
			break
		}
		e.rightTuples = append(e.rightTuples, tuple_)
	}

	e.leftTuple = nil
	e.rightIdx = 0
	e.markOpened()
	return nil
}

func (e *NestedLoopJoinExecutor) Next() (*tuple.Tuple, bool, error) {
	e.assertOpened()

	for {
		if e.leftTuple == nil {
			tuple_, done, err := e.left.Next()
			if err != nil || done {
				return nil, done, err
			}
			e.leftTuple = tuple_
			e.rightIdx = 0
		}

		for e.rightIdx < len(e.rightTuples) {
			rightTuple := e.rightTuples[e.rightIdx]
			e.rightIdx++

			merged := e.makeOutputTuple(e.leftTuple, rightTuple)
			predicate := e.plan.OnPredicate()
			if predicate == nil || predicate.Evaluate(merged, e.plan.OutputSchema()).ToBoolean() {
				return merged, false, nil
			}
		}
		e.leftTuple = nil
	}
}

// makeOutputTuple lays the left tuple's columns and then the right
// tuple's columns out on the join's output schema
func (e *NestedLoopJoinExecutor) makeOutputTuple(leftTuple *tuple.Tuple, rightTuple *tuple.Tuple) *tuple.Tuple {
	outputSchema := e.plan.OutputSchema()
	leftSchema := e.left.OutputSchema()
	rightSchema := e.right.OutputSchema()
	leftColumnCnt := leftSchema.GetColumnCount()

	values := make([]types.Value, outputSchema.GetColumnCount())
	for i := uint32(0); i < outputSchema.GetColumnCount(); i++ {
		if i < leftColumnCnt {
			values[i] = leftTuple.GetValue(leftSchema, i)
		} else {
			values[i] = rightTuple.GetValue(rightSchema, i-leftColumnCnt)
		}
	}
	return tuple.NewTupleFromSchema(values, outputSchema)
}

func (e *NestedLoopJoinExecutor) Close() error {
	if !e.markClosed() {
		return nil
	}
	e.rightTuples = nil
	e.leftTuple = nil
	err := e.left.Close()
	if rightErr := e.right.Close(); err == nil {
		err = rightErr
	}
	return err
}

func (e *NestedLoopJoinExecutor) OutputSchema() *schema.Schema {
	return e.plan.OutputSchema()
}

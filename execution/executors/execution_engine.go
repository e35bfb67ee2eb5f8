package executors

import (
	"github.com/aokimoto/KujiraDB/errors"
	"github.com/aokimoto/KujiraDB/execution/plans"
	"github.com/aokimoto/KujiraDB/storage/tuple"
)

const ErrUnknownPlanType = errors.Error("plan type has no executor")

// ExecutionEngine is the one place that translates plan trees into
// executor trees and drives them.
type ExecutionEngine struct{}

// Execute runs the plan to completion and returns the produced tuples
func (e *ExecutionEngine) Execute(plan plans.Plan, context *ExecutorContext) ([]*tuple.Tuple, error) {
	// open every table the plan touches before the first page request
	sm := context.GetStorageManager()
	for _, oid := range plans.CollectTableOIDs(plan) {
		if err := sm.OpenTable(oid); err != nil {
			return nil, err
		}
	}

	executor, err := e.createExecutor(plan, context)
	if err != nil {
		return nil, err
	}
	return e.RunOpIterator(executor)
}

// createExecutor builds the executor tree mirroring the plan tree
func (e *ExecutionEngine) createExecutor(plan plans.Plan, context *ExecutorContext) (OpIterator, error) {
	switch p := plan.(type) {
	case *plans.SeqScanPlanNode:
		return NewSeqScanExecutor(context, p), nil
	case *plans.SelectionPlanNode:
		child, err := e.createExecutor(p.GetChildAt(0), context)
		if err != nil {
			return nil, err
		}
		return NewSelectionExecutor(context, p, child), nil
	case *plans.ProjectionPlanNode:
		child, err := e.createExecutor(p.GetChildAt(0), context)
		if err != nil {
			return nil, err
		}
		return NewProjectionExecutor(context, p, child), nil
	case *plans.AggregationPlanNode:
		child, err := e.createExecutor(p.GetChildAt(0), context)
		if err != nil {
			return nil, err
		}
		return NewAggregationExecutor(context, p, child), nil
	case *plans.NestedLoopJoinPlanNode:
		left, err := e.createExecutor(p.GetLeftPlan(), context)
		if err != nil {
			return nil, err
		}
		right, err := e.createExecutor(p.GetRightPlan(), context)
		if err != nil {
			return nil, err
		}
		return NewNestedLoopJoinExecutor(context, p, left, right), nil
	case *plans.OrderbyPlanNode:
		child, err := e.createExecutor(p.GetChildAt(0), context)
		if err != nil {
			return nil, err
		}
		return NewOrderbyExecutor(context, p, child), nil
	case *plans.LimitPlanNode:
		child, err := e.createExecutor(p.GetChildAt(0), context)
		if err != nil {
			return nil, err
		}
		return NewLimitExecutor(context, p, child), nil
	case *plans.InsertPlanNode:
		return NewInsertExecutor(context, p), nil
	case *plans.TupleListPlanNode:
		return NewTupleIterator(p), nil
	}
	return nil, ErrUnknownPlanType
}

// RunOpIterator drives one executor tree through its whole protocol
func (e *ExecutionEngine) RunOpIterator(executor OpIterator) ([]*tuple.Tuple, error) {
	executor.Configure(true)
	if err := executor.Open(); err != nil {
		executor.Close()
		return nil, err
	}

	tuples := make([]*tuple.Tuple, 0)
	for {
		tuple_, done, err := executor.Next()
		if err != nil {
			executor.Close()
			return nil, err
		}
		if done {
			break
		}
		if tuple_ != nil {
			tuples = append(tuples, tuple_)
		}
	}

	if err := executor.Close(); err != nil {
		return nil, err
	}
	return tuples, nil
}

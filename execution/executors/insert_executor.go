// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package executors

import (
	"github.com/aokimoto/KujiraDB/catalog"
	"github.com/aokimoto/KujiraDB/execution/plans"
	"github.com/aokimoto/KujiraDB/storage/table/schema"
	"github.com/aokimoto/KujiraDB/storage/tuple"
)

/**
 * InsertExecutor stores the raw rows of its plan into a table. The
 * work happens at Open, Next only reports completion.
 */
type InsertExecutor struct {
	baseOpIterator
	context       *ExecutorContext
	plan          *plans.InsertPlanNode
	tableMetadata *catalog.TableMetadata
}

func NewInsertExecutor(context *ExecutorContext, plan *plans.InsertPlanNode) *InsertExecutor {
	return &InsertExecutor{context: context, plan: plan}
}

func (e *InsertExecutor) Configure(eager bool) {
	e.markConfigured(eager)
}

func (e *InsertExecutor) Open() error {
	tableMetadata, err := e.context.GetCatalog().GetTableByOID(e.plan.GetTableOID())
	if err != nil {
		return err
	}
	e.tableMetadata = tableMetadata

	for _, values := range e.plan.GetRawValues() {
		tuple_ := tuple.NewTupleFromSchema(values, tableMetadata.Schema())
		if _, err := tableMetadata.Table().InsertTuple(tuple_); err != nil {
			return err
		}
	}
	e.markOpened()
	return nil
}

func (e *InsertExecutor) Next() (*tuple.Tuple, bool, error) {
	e.assertOpened()
	return nil, true, nil
}

func (e *InsertExecutor) Close() error {
	e.markClosed()
	return nil
}

func (e *InsertExecutor) OutputSchema() *schema.Schema {
	return e.tableMetadata.Schema()
}

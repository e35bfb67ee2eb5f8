// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package executors

import (
	"github.com/aokimoto/KujiraDB/catalog"
	"github.com/aokimoto/KujiraDB/common"
	"github.com/aokimoto/KujiraDB/errors"
	"github.com/aokimoto/KujiraDB/execution/plans"
	"github.com/aokimoto/KujiraDB/storage/access"
	"github.com/aokimoto/KujiraDB/storage/page"
	"github.com/aokimoto/KujiraDB/storage/table/schema"
	"github.com/aokimoto/KujiraDB/storage/tuple"
	"github.com/aokimoto/KujiraDB/types"
)

/**
 * SeqScanExecutor executes a sequential scan over a table, walking its
 * pages in order and the slots of each page in order. Pages are pinned
 * lazily, one at a time, and unpinned before the cursor moves on.
 */
type SeqScanExecutor struct {
	baseOpIterator
	context       *ExecutorContext
	plan          *plans.SeqScanPlanNode
	tableMetadata *catalog.TableMetadata
	numPages      types.PageID
	pageID        types.PageID
	slot          uint32
	currentPage   *access.HeapPage
}

func NewSeqScanExecutor(context *ExecutorContext, plan *plans.SeqScanPlanNode) *SeqScanExecutor {
	return &SeqScanExecutor{context: context, plan: plan}
}

func (e *SeqScanExecutor) Configure(eager bool) {
	e.markConfigured(eager)
}

func (e *SeqScanExecutor) Open() error {
	tableMetadata, err := e.context.GetCatalog().GetTableByOID(e.plan.GetTableOID())
	if err != nil {
		return err
	}
	e.tableMetadata = tableMetadata
	for _, col := range e.plan.OutputSchema().GetColumns() {
		common.KAssert(tableMetadata.Schema().IsHaveColumn(col.GetColumnName()),
			"SeqScan: output column not in table schema: "+col.GetColumnName())
	}
	e.numPages = e.context.GetStorageManager().NumPages(e.plan.GetTableOID())
	e.pageID = 0
	e.slot = 0
	e.currentPage = nil
	e.markOpened()
	return nil
}

func (e *SeqScanExecutor) Next() (*tuple.Tuple, bool, error) {
	e.assertOpened()
	sm := e.context.GetStorageManager()
	oid := e.plan.GetTableOID()

	for e.pageID < e.numPages {
		if e.currentPage == nil {
			hp, err := sm.ReadPage(oid, e.pageID)
			if err != nil {
				return nil, false, err
			}
			e.currentPage = hp
		}

		hp := e.currentPage
		hp.RLatch()
		slotCount := hp.GetSlotCount()
		for e.slot < slotCount {
			slot := e.slot
			e.slot++

			record, err := hp.GetValue(slot)
			if err == errors.ErrInvalidSlot {
				// tombstone
				continue
			}
			if err != nil {
				hp.RUnlatch()
				return nil, false, err
			}

			rid := new(page.RID)
			rid.Set(e.pageID, slot)
			tuple_ := tuple.NewTuple(rid, uint32(len(record)), record)
			if !e.selects(tuple_) {
				continue
			}
			hp.RUnlatch()
			return e.projects(tuple_), false, nil
		}
		hp.RUnlatch()

		sm.UnpinPage(oid, e.pageID, false)
		e.currentPage = nil
		e.pageID++
		e.slot = 0
	}
	return nil, true, nil
}

func (e *SeqScanExecutor) Close() error {
	if !e.markClosed() {
		return nil
	}
	if e.currentPage != nil {
		e.context.GetStorageManager().UnpinPage(e.plan.GetTableOID(), e.pageID, false)
		e.currentPage = nil
	}
	return nil
}

func (e *SeqScanExecutor) OutputSchema() *schema.Schema {
	return e.plan.OutputSchema()
}

// selects evaluates the scan predicate against the stored tuple
func (e *SeqScanExecutor) selects(tuple_ *tuple.Tuple) bool {
	predicate := e.plan.GetPredicate()
	if predicate == nil {
		return true
	}
	return predicate.Evaluate(tuple_, e.tableMetadata.Schema()).ToBoolean()
}

// projects rebuilds the stored tuple on the scan's output schema. The
// output columns are matched to the table columns by name.
func (e *SeqScanExecutor) projects(tuple_ *tuple.Tuple) *tuple.Tuple {
	outputSchema := e.plan.OutputSchema()
	tableSchema := e.tableMetadata.Schema()

	values := make([]types.Value, outputSchema.GetColumnCount())
	for i := uint32(0); i < outputSchema.GetColumnCount(); i++ {
		colIndex := tableSchema.GetColIndex(outputSchema.GetColumn(i).GetColumnName())
		values[i] = tuple_.GetValue(tableSchema, colIndex)
	}

	ret := tuple.NewTupleFromSchema(values, outputSchema)
	ret.SetRID(tuple_.GetRID())
	return ret
}

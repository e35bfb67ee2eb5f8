package executors

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aokimoto/KujiraDB/catalog"
	"github.com/aokimoto/KujiraDB/common"
	"github.com/aokimoto/KujiraDB/execution/expression"
	"github.com/aokimoto/KujiraDB/execution/plans"
	"github.com/aokimoto/KujiraDB/storage/access"
	"github.com/aokimoto/KujiraDB/storage/buffer"
	"github.com/aokimoto/KujiraDB/storage/disk"
	"github.com/aokimoto/KujiraDB/storage/table/column"
	"github.com/aokimoto/KujiraDB/storage/table/schema"
	"github.com/aokimoto/KujiraDB/storage/tuple"
	"github.com/aokimoto/KujiraDB/types"
)

func newExecutorContext(t *testing.T) *ExecutorContext {
	t.Helper()
	dm := disk.NewDiskManagerTest()
	sm := access.NewStorageManager(buffer.NewBufferPoolManager(common.DefaultPoolSize, dm), dm)
	return NewExecutorContext(catalog.NewCatalog(sm), sm)
}

func staffSchema() *schema.Schema {
	return schema.NewSchema([]*column.Column{
		column.NewColumn("id", types.Integer),
		column.NewColumn("name", types.Varchar),
		column.NewColumn("salary", types.Integer),
	})
}

func staffOutSchema() *schema.Schema {
	return staffSchema()
}

func createStaffTable(t *testing.T, context *ExecutorContext) *catalog.TableMetadata {
	t.Helper()
	tableMetadata, err := context.GetCatalog().CreateTable("staff", staffSchema())
	require.NoError(t, err)
	return tableMetadata
}

func staffRow(id int32, name string, salary int32) []types.Value {
	return []types.Value{types.NewInteger(id), types.NewVarchar(name), types.NewInteger(salary)}
}

func insertStaff(t *testing.T, context *ExecutorContext, oid types.OID, rows [][]types.Value) {
	t.Helper()
	engine := &ExecutionEngine{}
	_, err := engine.Execute(plans.NewInsertPlanNode(rows, oid), context)
	require.NoError(t, err)
}

func TestEmptyTableScan(t *testing.T) {
	context := newExecutorContext(t)
	tableMetadata := createStaffTable(t, context)

	engine := &ExecutionEngine{}
	results, err := engine.Execute(plans.NewSeqScanPlanNode(staffOutSchema(), nil, tableMetadata.OID()), context)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestInsertAndSeqScan(t *testing.T) {
	context := newExecutorContext(t)
	tableMetadata := createStaffTable(t, context)

	insertStaff(t, context, tableMetadata.OID(), [][]types.Value{
		staffRow(1, "ayako", 310),
		staffRow(2, "kenta", 280),
		staffRow(3, "mio", 420),
	})

	engine := &ExecutionEngine{}
	outSchema := staffOutSchema()
	results, err := engine.Execute(plans.NewSeqScanPlanNode(outSchema, nil, tableMetadata.OID()), context)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, int32(1), results[0].GetValue(outSchema, 0).ToInteger())
	assert.Equal(t, "ayako", results[0].GetValue(outSchema, 1).ToVarchar())
	assert.Equal(t, int32(420), results[2].GetValue(outSchema, 2).ToInteger())
}

func TestSeqScanAcrossPageBoundary(t *testing.T) {
	context := newExecutorContext(t)
	tableMetadata := createStaffTable(t, context)

	// wide rows so five of them cannot share a page
	longName := func(i int) string {
		name := fmt.Sprintf("staff-%03d-", i)
		for len(name) < 1200 {
			name += "x"
		}
		return name
	}
	rows := make([][]types.Value, 0)
	for i := 0; i < 5; i++ {
		rows = append(rows, staffRow(int32(i), longName(i), int32(100*i)))
	}
	insertStaff(t, context, tableMetadata.OID(), rows)
	assert.Greater(t, int64(context.GetStorageManager().NumPages(tableMetadata.OID())), int64(1))

	engine := &ExecutionEngine{}
	outSchema := staffOutSchema()
	results, err := engine.Execute(plans.NewSeqScanPlanNode(outSchema, nil, tableMetadata.OID()), context)
	require.NoError(t, err)
	require.Len(t, results, 5)
	for i, result := range results {
		assert.Equal(t, int32(i), result.GetValue(outSchema, 0).ToInteger())
		assert.Equal(t, longName(i), result.GetValue(outSchema, 1).ToVarchar())
	}
}

func TestSeqScanWithPredicate(t *testing.T) {
	context := newExecutorContext(t)
	tableMetadata := createStaffTable(t, context)

	insertStaff(t, context, tableMetadata.OID(), [][]types.Value{
		staffRow(1, "a", 5),
		staffRow(2, "b", 10),
		staffRow(3, "c", 11),
		staffRow(4, "d", 50),
	})

	// salary > 10
	predicate := expression.NewComparison(
		expression.NewColumnValue(2, types.Integer),
		expression.NewConstantValue(types.NewInteger(10)),
		expression.GreaterThan)

	engine := &ExecutionEngine{}
	outSchema := staffOutSchema()
	results, err := engine.Execute(plans.NewSeqScanPlanNode(outSchema, predicate, tableMetadata.OID()), context)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, int32(3), results[0].GetValue(outSchema, 0).ToInteger())
	assert.Equal(t, int32(4), results[1].GetValue(outSchema, 0).ToInteger())
}

func TestSelectionOverScan(t *testing.T) {
	context := newExecutorContext(t)
	tableMetadata := createStaffTable(t, context)

	insertStaff(t, context, tableMetadata.OID(), [][]types.Value{
		staffRow(1, "a", 100),
		staffRow(2, "b", 200),
		staffRow(3, "c", 300),
	})

	scan := plans.NewSeqScanPlanNode(staffOutSchema(), nil, tableMetadata.OID())
	selection := plans.NewSelectionPlanNode(scan, expression.NewComparison(
		expression.NewColumnValue(2, types.Integer),
		expression.NewConstantValue(types.NewInteger(200)),
		expression.NotEqual))

	engine := &ExecutionEngine{}
	results, err := engine.Execute(selection, context)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, int32(1), results[0].GetValue(selection.OutputSchema(), 0).ToInteger())
	assert.Equal(t, int32(3), results[1].GetValue(selection.OutputSchema(), 0).ToInteger())
}

func TestProjection(t *testing.T) {
	context := newExecutorContext(t)
	tableMetadata := createStaffTable(t, context)

	insertStaff(t, context, tableMetadata.OID(), [][]types.Value{
		staffRow(7, "nana", 777),
	})

	scan := plans.NewSeqScanPlanNode(staffOutSchema(), nil, tableMetadata.OID())
	outSchema := schema.NewSchema([]*column.Column{
		column.NewColumn("name", types.Varchar),
	})
	projection := plans.NewProjectionPlanNode(scan, outSchema,
		[]expression.Expression{expression.NewColumnValue(1, types.Varchar)})

	engine := &ExecutionEngine{}
	results, err := engine.Execute(projection, context)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "nana", results[0].GetValue(outSchema, 0).ToVarchar())
}

func TestLimitAndOffset(t *testing.T) {
	context := newExecutorContext(t)
	tableMetadata := createStaffTable(t, context)

	rows := make([][]types.Value, 0)
	for i := 0; i < 10; i++ {
		rows = append(rows, staffRow(int32(i), fmt.Sprintf("s%d", i), int32(i)))
	}
	insertStaff(t, context, tableMetadata.OID(), rows)

	scan := plans.NewSeqScanPlanNode(staffOutSchema(), nil, tableMetadata.OID())
	limit := plans.NewLimitPlanNode(scan, 3, 4)

	engine := &ExecutionEngine{}
	results, err := engine.Execute(limit, context)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, result := range results {
		assert.Equal(t, int32(4+i), result.GetValue(limit.OutputSchema(), 0).ToInteger())
	}
}

func deptSchema() *schema.Schema {
	return schema.NewSchema([]*column.Column{
		column.NewColumn("dept", types.Varchar),
		column.NewColumn("salary", types.Integer),
	})
}

func deptRows() [][]types.Value {
	return [][]types.Value{
		{types.NewVarchar("eng"), types.NewInteger(100)},
		{types.NewVarchar("ops"), types.NewInteger(40)},
		{types.NewVarchar("eng"), types.NewInteger(200)},
		{types.NewVarchar("ops"), types.NewInteger(60)},
		{types.NewVarchar("eng"), types.NewInteger(300)},
	}
}

func runGroupedAggregation(t *testing.T, rows [][]types.Value) map[string][]types.Value {
	t.Helper()
	context := newExecutorContext(t)
	tableSchema := deptSchema()
	tableMetadata, err := context.GetCatalog().CreateTable("payroll", tableSchema)
	require.NoError(t, err)
	insertStaff(t, context, tableMetadata.OID(), rows)

	scan := plans.NewSeqScanPlanNode(deptSchema(), nil, tableMetadata.OID())
	outSchema := schema.NewSchema([]*column.Column{
		column.NewColumn("dept", types.Varchar),
		column.NewColumn("sum_salary", types.Integer),
		column.NewColumn("cnt", types.Integer),
		column.NewColumn("min_salary", types.Integer),
		column.NewColumn("max_salary", types.Integer),
	})
	salary := func() expression.Expression { return expression.NewColumnValue(1, types.Integer) }
	aggregation := plans.NewAggregationPlanNode(outSchema, scan,
		[]expression.Expression{expression.NewColumnValue(0, types.Varchar)},
		[]expression.Expression{salary(), salary(), salary(), salary()},
		[]plans.AggregationType{plans.SUM_AGGREGATE, plans.COUNT_AGGREGATE, plans.MIN_AGGREGATE, plans.MAX_AGGREGATE})

	engine := &ExecutionEngine{}
	results, err := engine.Execute(aggregation, context)
	require.NoError(t, err)

	grouped := make(map[string][]types.Value)
	for _, result := range results {
		values := make([]types.Value, 0)
		for i := uint32(1); i < outSchema.GetColumnCount(); i++ {
			values = append(values, result.GetValue(outSchema, i))
		}
		grouped[result.GetValue(outSchema, 0).ToVarchar()] = values
	}
	return grouped
}

func TestGroupedAggregation(t *testing.T) {
	grouped := runGroupedAggregation(t, deptRows())
	require.Len(t, grouped, 2)

	eng := grouped["eng"]
	assert.Equal(t, int32(600), eng[0].ToInteger())
	assert.Equal(t, int32(3), eng[1].ToInteger())
	assert.Equal(t, int32(100), eng[2].ToInteger())
	assert.Equal(t, int32(300), eng[3].ToInteger())

	ops := grouped["ops"]
	assert.Equal(t, int32(100), ops[0].ToInteger())
	assert.Equal(t, int32(2), ops[1].ToInteger())
	assert.Equal(t, int32(40), ops[2].ToInteger())
	assert.Equal(t, int32(60), ops[3].ToInteger())
}

func TestAggregationIsInputOrderIndependent(t *testing.T) {
	rows := deptRows()
	reversed := make([][]types.Value, len(rows))
	for i, row := range rows {
		reversed[len(rows)-1-i] = row
	}

	assert.Equal(t, runGroupedAggregation(t, rows), runGroupedAggregation(t, reversed))
}

func tupleListPlan(schema_ *schema.Schema, rows [][]types.Value) *plans.TupleListPlanNode {
	tuples := make([]*tuple.Tuple, 0, len(rows))
	for _, row := range rows {
		tuples = append(tuples, tuple.NewTupleFromSchema(row, schema_))
	}
	return plans.NewTupleListPlanNode(schema_, tuples).(*plans.TupleListPlanNode)
}

func TestCountDistinctAndAvg(t *testing.T) {
	context := newExecutorContext(t)
	inSchema := deptSchema()
	child := tupleListPlan(inSchema, [][]types.Value{
		{types.NewVarchar("eng"), types.NewInteger(10)},
		{types.NewVarchar("eng"), types.NewInteger(10)},
		{types.NewVarchar("eng"), types.NewInteger(20)},
		{types.NewVarchar("eng"), types.NewInteger(25)},
	})

	outSchema := schema.NewSchema([]*column.Column{
		column.NewColumn("distinct_salaries", types.Integer),
		column.NewColumn("avg_salary", types.Decimal),
	})
	salary := func() expression.Expression { return expression.NewColumnValue(1, types.Integer) }
	aggregation := plans.NewAggregationPlanNode(outSchema, child,
		nil,
		[]expression.Expression{salary(), salary()},
		[]plans.AggregationType{plans.COUNT_DISTINCT_AGGREGATE, plans.AVG_AGGREGATE})

	engine := &ExecutionEngine{}
	results, err := engine.Execute(aggregation, context)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, int32(3), results[0].GetValue(outSchema, 0).ToInteger())
	avg := results[0].GetValue(outSchema, 1).ToDecimal()
	assert.True(t, avg.Equal(decimal.RequireFromString("16.25")), "got %s", avg)
}

func TestNestedLoopJoin(t *testing.T) {
	context := newExecutorContext(t)
	tableMetadata := createStaffTable(t, context)

	insertStaff(t, context, tableMetadata.OID(), [][]types.Value{
		staffRow(1, "ayako", 310),
		staffRow(2, "kenta", 280),
		staffRow(3, "mio", 420),
	})

	assignmentSchema := schema.NewSchema([]*column.Column{
		column.NewColumn("staff_id", types.Integer),
		column.NewColumn("dept", types.Varchar),
	})
	assignments := tupleListPlan(assignmentSchema, [][]types.Value{
		{types.NewInteger(1), types.NewVarchar("eng")},
		{types.NewInteger(3), types.NewVarchar("ops")},
		{types.NewInteger(3), types.NewVarchar("qa")},
	})

	outSchema := schema.NewSchema([]*column.Column{
		column.NewColumn("id", types.Integer),
		column.NewColumn("name", types.Varchar),
		column.NewColumn("salary", types.Integer),
		column.NewColumn("staff_id", types.Integer),
		column.NewColumn("dept", types.Varchar),
	})
	// id == staff_id
	onPredicate := expression.NewComparison(
		expression.NewColumnValue(0, types.Integer),
		expression.NewColumnValue(3, types.Integer),
		expression.Equal)
	join := plans.NewNestedLoopJoinPlanNode(outSchema,
		plans.NewSeqScanPlanNode(staffOutSchema(), nil, tableMetadata.OID()),
		assignments, onPredicate)

	engine := &ExecutionEngine{}
	results, err := engine.Execute(join, context)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, int32(1), results[0].GetValue(outSchema, 0).ToInteger())
	assert.Equal(t, "eng", results[0].GetValue(outSchema, 4).ToVarchar())
	assert.Equal(t, "mio", results[1].GetValue(outSchema, 1).ToVarchar())
	assert.Equal(t, "ops", results[1].GetValue(outSchema, 4).ToVarchar())
	assert.Equal(t, "qa", results[2].GetValue(outSchema, 4).ToVarchar())
}

func TestCrossJoinWithoutPredicate(t *testing.T) {
	context := newExecutorContext(t)
	inSchema := deptSchema()
	left := tupleListPlan(inSchema, [][]types.Value{
		{types.NewVarchar("eng"), types.NewInteger(1)},
		{types.NewVarchar("ops"), types.NewInteger(2)},
	})
	right := tupleListPlan(inSchema, [][]types.Value{
		{types.NewVarchar("qa"), types.NewInteger(3)},
		{types.NewVarchar("hr"), types.NewInteger(4)},
		{types.NewVarchar("it"), types.NewInteger(5)},
	})

	outSchema := schema.NewSchema([]*column.Column{
		column.NewColumn("l_dept", types.Varchar),
		column.NewColumn("l_salary", types.Integer),
		column.NewColumn("r_dept", types.Varchar),
		column.NewColumn("r_salary", types.Integer),
	})
	join := plans.NewNestedLoopJoinPlanNode(outSchema, left, right, nil)

	engine := &ExecutionEngine{}
	results, err := engine.Execute(join, context)
	require.NoError(t, err)
	require.Len(t, results, 6)
	assert.Equal(t, "eng", results[0].GetValue(outSchema, 0).ToVarchar())
	assert.Equal(t, "qa", results[0].GetValue(outSchema, 2).ToVarchar())
	assert.Equal(t, "ops", results[5].GetValue(outSchema, 0).ToVarchar())
	assert.Equal(t, "it", results[5].GetValue(outSchema, 2).ToVarchar())
}

func TestOrderby(t *testing.T) {
	context := newExecutorContext(t)
	tableMetadata := createStaffTable(t, context)

	insertStaff(t, context, tableMetadata.OID(), [][]types.Value{
		staffRow(1, "ayako", 310),
		staffRow(2, "kenta", 280),
		staffRow(3, "mio", 420),
		staffRow(4, "sora", 280),
	})

	scan := plans.NewSeqScanPlanNode(staffOutSchema(), nil, tableMetadata.OID())
	orderby := plans.NewOrderbyPlanNode(scan, []uint32{2}, []plans.OrderbyType{plans.DESC})

	engine := &ExecutionEngine{}
	results, err := engine.Execute(orderby, context)
	require.NoError(t, err)
	require.Len(t, results, 4)

	outSchema := orderby.OutputSchema()
	assert.Equal(t, int32(420), results[0].GetValue(outSchema, 2).ToInteger())
	assert.Equal(t, int32(310), results[1].GetValue(outSchema, 2).ToInteger())
	// the sort is stable, ties keep insertion order
	assert.Equal(t, "kenta", results[2].GetValue(outSchema, 1).ToVarchar())
	assert.Equal(t, "sora", results[3].GetValue(outSchema, 1).ToVarchar())
}

func TestOrderbyWithSecondaryKey(t *testing.T) {
	context := newExecutorContext(t)
	inSchema := deptSchema()
	child := tupleListPlan(inSchema, [][]types.Value{
		{types.NewVarchar("ops"), types.NewInteger(40)},
		{types.NewVarchar("eng"), types.NewInteger(100)},
		{types.NewVarchar("ops"), types.NewInteger(60)},
		{types.NewVarchar("eng"), types.NewInteger(300)},
	})

	orderby := plans.NewOrderbyPlanNode(child, []uint32{0, 1},
		[]plans.OrderbyType{plans.ASC, plans.DESC})

	engine := &ExecutionEngine{}
	results, err := engine.Execute(orderby, context)
	require.NoError(t, err)
	require.Len(t, results, 4)

	outSchema := orderby.OutputSchema()
	expected := []int32{300, 100, 60, 40}
	for i, result := range results {
		assert.Equal(t, expected[i], result.GetValue(outSchema, 1).ToInteger())
	}
}

func TestMinMaxOverVarchar(t *testing.T) {
	context := newExecutorContext(t)
	inSchema := deptSchema()
	child := tupleListPlan(inSchema, [][]types.Value{
		{types.NewVarchar("kenta"), types.NewInteger(1)},
		{types.NewVarchar("ayako"), types.NewInteger(2)},
		{types.NewVarchar("mio"), types.NewInteger(3)},
	})

	outSchema := schema.NewSchema([]*column.Column{
		column.NewColumn("first_name", types.Varchar),
		column.NewColumn("last_name", types.Varchar),
	})
	name := func() expression.Expression { return expression.NewColumnValue(0, types.Varchar) }
	aggregation := plans.NewAggregationPlanNode(outSchema, child,
		nil,
		[]expression.Expression{name(), name()},
		[]plans.AggregationType{plans.MIN_AGGREGATE, plans.MAX_AGGREGATE})

	engine := &ExecutionEngine{}
	results, err := engine.Execute(aggregation, context)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, "ayako", results[0].GetValue(outSchema, 0).ToVarchar())
	assert.Equal(t, "mio", results[0].GetValue(outSchema, 1).ToVarchar())
}

func TestTupleIteratorHandsOutCopies(t *testing.T) {
	inSchema := deptSchema()
	child := tupleListPlan(inSchema, [][]types.Value{
		{types.NewVarchar("eng"), types.NewInteger(10)},
	})

	iterator := NewTupleIterator(child)
	iterator.Configure(true)
	require.NoError(t, iterator.Open())
	first, done, err := iterator.Next()
	require.NoError(t, err)
	require.False(t, done)

	// scribbling on a returned tuple must not leak into later runs
	copy(first.Data(), make([]byte, len(first.Data())))
	require.NoError(t, iterator.Close())

	iterator = NewTupleIterator(child)
	iterator.Configure(true)
	require.NoError(t, iterator.Open())
	again, done, err := iterator.Next()
	require.NoError(t, err)
	require.False(t, done)
	assert.Equal(t, "eng", again.GetValue(inSchema, 0).ToVarchar())
	require.NoError(t, iterator.Close())
}

func TestCloseIsIdempotent(t *testing.T) {
	context := newExecutorContext(t)
	tableMetadata := createStaffTable(t, context)
	insertStaff(t, context, tableMetadata.OID(), [][]types.Value{staffRow(1, "a", 1)})

	executor := NewSeqScanExecutor(context, plans.NewSeqScanPlanNode(staffOutSchema(), nil, tableMetadata.OID()).(*plans.SeqScanPlanNode))
	executor.Configure(true)
	require.NoError(t, executor.Open())
	_, done, err := executor.Next()
	require.NoError(t, err)
	require.False(t, done)

	// closing mid-stream releases the scanned page, further closes
	// are no-ops
	require.NoError(t, executor.Close())
	require.NoError(t, executor.Close())
	require.NoError(t, executor.Close())
}

func TestNextBeforeOpenPanics(t *testing.T) {
	context := newExecutorContext(t)
	tableMetadata := createStaffTable(t, context)

	executor := NewSeqScanExecutor(context, plans.NewSeqScanPlanNode(staffOutSchema(), nil, tableMetadata.OID()).(*plans.SeqScanPlanNode))
	executor.Configure(true)
	assert.Panics(t, func() {
		executor.Next()
	})
}

func TestLazyAggregationDefersDrain(t *testing.T) {
	context := newExecutorContext(t)
	inSchema := deptSchema()
	child := tupleListPlan(inSchema, [][]types.Value{
		{types.NewVarchar("eng"), types.NewInteger(7)},
		{types.NewVarchar("eng"), types.NewInteger(8)},
	})

	outSchema := schema.NewSchema([]*column.Column{
		column.NewColumn("cnt", types.Integer),
	})
	aggregation := plans.NewAggregationPlanNode(outSchema, child,
		nil,
		[]expression.Expression{expression.NewColumnValue(1, types.Integer)},
		[]plans.AggregationType{plans.COUNT_AGGREGATE})

	engine := &ExecutionEngine{}
	executor, err := engine.createExecutor(aggregation, context)
	require.NoError(t, err)

	executor.Configure(false)
	require.NoError(t, executor.Open())

	result, done, err := executor.Next()
	require.NoError(t, err)
	require.False(t, done)
	assert.Equal(t, int32(2), result.GetValue(outSchema, 0).ToInteger())

	_, done, err = executor.Next()
	require.NoError(t, err)
	assert.True(t, done)
	require.NoError(t, executor.Close())
}

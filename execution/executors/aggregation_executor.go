package executors

import (
	"encoding/binary"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/shopspring/decimal"
	"github.com/spaolacci/murmur3"

	"github.com/aokimoto/KujiraDB/execution/expression"
	"github.com/aokimoto/KujiraDB/execution/plans"
	"github.com/aokimoto/KujiraDB/storage/table/schema"
	"github.com/aokimoto/KujiraDB/storage/tuple"
	"github.com/aokimoto/KujiraDB/types"
)

// hashAggregateKey folds the serialized group by values into one hash
func hashAggregateKey(key *plans.AggregateKey) uint32 {
	hasher := murmur3.New128()
	for _, value := range key.GroupBys {
		hasher.Write(value.Serialize())
	}
	sum := hasher.Sum(nil)
	return binary.LittleEndian.Uint32(sum)
}

/**
 * SimpleAggregationHashTable folds input rows into one accumulator per
 * group. Groups are kept in first appearance order.
 */
type SimpleAggregationHashTable struct {
	aggExprs  []expression.Expression
	aggTypes  []plans.AggregationType
	values    map[uint32]*plans.AggregateValue
	keys      map[uint32]*plans.AggregateKey
	counts    map[uint32]int64
	distincts map[uint32][]mapset.Set[string]
	order     []uint32
}

func NewSimpleAggregationHashTable(aggExprs []expression.Expression, aggTypes []plans.AggregationType) *SimpleAggregationHashTable {
	return &SimpleAggregationHashTable{
		aggExprs:  aggExprs,
		aggTypes:  aggTypes,
		values:    make(map[uint32]*plans.AggregateValue),
		keys:      make(map[uint32]*plans.AggregateKey),
		counts:    make(map[uint32]int64),
		distincts: make(map[uint32][]mapset.Set[string]),
	}
}

// GenerateInitialAggregateValue gives the fold identity per aggregate
func (ht *SimpleAggregationHashTable) GenerateInitialAggregateValue() *plans.AggregateValue {
	values := make([]*types.Value, 0, len(ht.aggTypes))
	for i, aggType := range ht.aggTypes {
		retType := ht.aggExprs[i].GetReturnType()
		var value types.Value
		switch aggType {
		case plans.COUNT_AGGREGATE, plans.COUNT_DISTINCT_AGGREGATE:
			value = types.NewInteger(0)
		case plans.SUM_AGGREGATE:
			switch retType {
			case types.Float:
				value = types.NewFloat(0)
			case types.Decimal:
				value = types.NewDecimalFromInt(0)
			default:
				value = types.NewInteger(0)
			}
		case plans.MIN_AGGREGATE, plans.MAX_AGGREGATE:
			// seeded from the group's first row, works for any
			// comparable type including varchar
		case plans.AVG_AGGREGATE:
			// the running sum is kept as a decimal so integer inputs
			// do not lose precision on the final division
			value = types.NewDecimalFromInt(0)
		}
		values = append(values, &value)
	}
	return &plans.AggregateValue{Aggregates: values}
}

// InsertCombine merges one input row into the accumulator of its group
func (ht *SimpleAggregationHashTable) InsertCombine(key *plans.AggregateKey, input *plans.AggregateValue) {
	hash := hashAggregateKey(key)
	firstRow := false
	if _, ok := ht.values[hash]; !ok {
		ht.values[hash] = ht.GenerateInitialAggregateValue()
		ht.keys[hash] = key
		sets := make([]mapset.Set[string], len(ht.aggTypes))
		for i, aggType := range ht.aggTypes {
			if aggType == plans.COUNT_DISTINCT_AGGREGATE {
				sets[i] = mapset.NewSet[string]()
			}
		}
		ht.distincts[hash] = sets
		ht.order = append(ht.order, hash)
		firstRow = true
	}

	ht.counts[hash]++
	accumulator := ht.values[hash]
	for i, aggType := range ht.aggTypes {
		switch aggType {
		case plans.COUNT_AGGREGATE:
			*accumulator.Aggregates[i] = accumulator.Aggregates[i].Add(types.NewInteger(1))
		case plans.COUNT_DISTINCT_AGGREGATE:
			ht.distincts[hash][i].Add(string(input.Aggregates[i].Serialize()))
		case plans.SUM_AGGREGATE, plans.AVG_AGGREGATE:
			*accumulator.Aggregates[i] = accumulator.Aggregates[i].Add(*input.Aggregates[i])
		case plans.MIN_AGGREGATE:
			if firstRow {
				*accumulator.Aggregates[i] = *input.Aggregates[i]
			} else {
				*accumulator.Aggregates[i] = accumulator.Aggregates[i].Min(*input.Aggregates[i])
			}
		case plans.MAX_AGGREGATE:
			if firstRow {
				*accumulator.Aggregates[i] = *input.Aggregates[i]
			} else {
				*accumulator.Aggregates[i] = accumulator.Aggregates[i].Max(*input.Aggregates[i])
			}
		}
	}
}

// finalizeGroup turns the accumulator of one group into output values
func (ht *SimpleAggregationHashTable) finalizeGroup(hash uint32) []types.Value {
	accumulator := ht.values[hash]
	values := make([]types.Value, 0, len(ht.aggTypes))
	for i, aggType := range ht.aggTypes {
		switch aggType {
		case plans.COUNT_DISTINCT_AGGREGATE:
			values = append(values, types.NewInteger(int32(ht.distincts[hash][i].Cardinality())))
		case plans.AVG_AGGREGATE:
			sum := accumulator.Aggregates[i].ToDecimal()
			values = append(values, types.NewDecimal(sum.Div(decimal.NewFromInt(ht.counts[hash]))))
		default:
			values = append(values, *accumulator.Aggregates[i])
		}
	}
	return values
}

/**
 * AggregationExecutor groups the rows of its child and folds one
 * accumulator per group. An eager instance drains its child when
 * opened, a lazy one on the first Next. Either way Next afterwards
 * only replays the materialized result rows.
 */
type AggregationExecutor struct {
	baseOpIterator
	context      *ExecutorContext
	plan         *plans.AggregationPlanNode
	child        OpIterator
	ht           *SimpleAggregationHashTable
	results      []*tuple.Tuple
	cursor       int
	materialized bool
}

func NewAggregationExecutor(context *ExecutorContext, plan *plans.AggregationPlanNode, child OpIterator) *AggregationExecutor {
	return &AggregationExecutor{context: context, plan: plan, child: child}
}

func (e *AggregationExecutor) Configure(eager bool) {
	e.child.Configure(eager)
	e.markConfigured(eager)
}

func (e *AggregationExecutor) Open() error {
	if err := e.child.Open(); err != nil {
		return err
	}
	e.results = nil
	e.cursor = 0
	e.materialized = false
	e.markOpened()

	if e.eager {
		return e.materialize()
	}
	return nil
}

func (e *AggregationExecutor) Next() (*tuple.Tuple, bool, error) {
	e.assertOpened()

	if !e.materialized {
		if err := e.materialize(); err != nil {
			return nil, false, err
		}
	}

	if e.cursor >= len(e.results) {
		return nil, true, nil
	}
	tuple_ := e.results[e.cursor]
	e.cursor++
	return tuple_, false, nil
}

// materialize drains the child and builds the result rows
func (e *AggregationExecutor) materialize() error {
	e.ht = NewSimpleAggregationHashTable(e.plan.GetAggregates(), e.plan.GetAggregateTypes())
	childSchema := e.child.OutputSchema()

	for {
		tuple_, done, err := e.child.Next()
		if err != nil {
			return err
		}
		if done {
			break
		}
		e.ht.InsertCombine(e.makeAggregateKey(tuple_, childSchema), e.makeAggregateValue(tuple_, childSchema))
	}

	outputSchema := e.plan.OutputSchema()
	e.results = make([]*tuple.Tuple, 0, len(e.ht.order))
	for _, hash := range e.ht.order {
		values := make([]types.Value, 0, outputSchema.GetColumnCount())
		for _, groupBy := range e.ht.keys[hash].GroupBys {
			values = append(values, *groupBy)
		}
		values = append(values, e.ht.finalizeGroup(hash)...)
		e.results = append(e.results, tuple.NewTupleFromSchema(values, outputSchema))
	}
	e.materialized = true
	return nil
}

func (e *AggregationExecutor) makeAggregateKey(tuple_ *tuple.Tuple, schema_ *schema.Schema) *plans.AggregateKey {
	groupBys := make([]*types.Value, 0, len(e.plan.GetGroupBys()))
	for _, groupBy := range e.plan.GetGroupBys() {
		value := groupBy.Evaluate(tuple_, schema_)
		groupBys = append(groupBys, &value)
	}
	return &plans.AggregateKey{GroupBys: groupBys}
}

func (e *AggregationExecutor) makeAggregateValue(tuple_ *tuple.Tuple, schema_ *schema.Schema) *plans.AggregateValue {
	aggregates := make([]*types.Value, 0, len(e.plan.GetAggregates()))
	for _, aggregate := range e.plan.GetAggregates() {
		value := aggregate.Evaluate(tuple_, schema_)
		aggregates = append(aggregates, &value)
	}
	return &plans.AggregateValue{Aggregates: aggregates}
}

func (e *AggregationExecutor) Close() error {
	if !e.markClosed() {
		return nil
	}
	e.ht = nil
	e.results = nil
	return e.child.Close()
}

func (e *AggregationExecutor) OutputSchema() *schema.Schema {
	return e.plan.OutputSchema()
}

// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package schema

import (
	"math"

	"github.com/aokimoto/KujiraDB/storage/table/column"
)

type Schema struct {
	length           uint32           // number of bytes of the fixed length part of one tuple
	columns          []*column.Column // all the columns in the schema, inlined and uninlined
	tupleIsInlined   bool             // true if all the columns are inlined
	uninlinedColumns []uint32         // indices of all uninlined columns
}

func NewSchema(columns []*column.Column) *Schema {
	schema := &Schema{}
	schema.tupleIsInlined = true

	currentOffset := uint32(0)
	for i := uint32(0); i < uint32(len(columns)); i++ {
		col := columns[i]

		if !col.IsInlined() {
			schema.tupleIsInlined = false
			schema.uninlinedColumns = append(schema.uninlinedColumns, i)
		}

		col.SetOffset(currentOffset)
		currentOffset += col.FixedLength()

		schema.columns = append(schema.columns, col)
	}
	schema.length = currentOffset
	return schema
}

func (s *Schema) GetColumn(colIndex uint32) *column.Column {
	return s.columns[colIndex]
}

func (s *Schema) GetUnlinedColumns() []uint32 {
	return s.uninlinedColumns
}

func (s *Schema) GetColumnCount() uint32 {
	return uint32(len(s.columns))
}

func (s *Schema) Length() uint32 {
	return s.length
}

func (s *Schema) GetColIndex(columnName string) uint32 {
	for i := uint32(0); i < s.GetColumnCount(); i++ {
		if s.columns[i].GetColumnName() == columnName {
			return i
		}
	}

	return math.MaxUint32
}

func (s *Schema) GetColumns() []*column.Column {
	return s.columns
}

func (s *Schema) IsHaveColumn(columnName string) bool {
	for _, col := range s.columns {
		if col.GetColumnName() == columnName {
			return true
		}
	}
	return false
}

// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package catalog

import (
	"github.com/aokimoto/KujiraDB/storage/access"
	"github.com/aokimoto/KujiraDB/storage/table/schema"
	"github.com/aokimoto/KujiraDB/types"
)

type TableMetadata struct {
	schema *schema.Schema
	name   string
	table  *access.TableHeap
	oid    types.OID
}

func NewTableMetadata(schema_ *schema.Schema, name string, table *access.TableHeap, oid types.OID) *TableMetadata {
	return &TableMetadata{schema_, name, table, oid}
}

func (t *TableMetadata) Schema() *schema.Schema {
	return t.schema
}

func (t *TableMetadata) Name() string {
	return t.name
}

func (t *TableMetadata) Table() *access.TableHeap {
	return t.table
}

func (t *TableMetadata) OID() types.OID {
	return t.oid
}

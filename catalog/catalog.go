// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package catalog

import (
	"github.com/sasha-s/go-deadlock"

	"github.com/aokimoto/KujiraDB/errors"
	"github.com/aokimoto/KujiraDB/storage/access"
	"github.com/aokimoto/KujiraDB/storage/table/schema"
	"github.com/aokimoto/KujiraDB/types"
)

const ErrTableExists = errors.Error("table name is already in use")

// Catalog handles table creation and table lookup. It hands out OIDs
// and keeps the schema and heap of every known table.
type Catalog struct {
	sm         *access.StorageManager
	tableIds   map[types.OID]*TableMetadata
	tableNames map[string]*TableMetadata
	nextOID    types.OID
	mutex      deadlock.Mutex
}

func NewCatalog(sm *access.StorageManager) *Catalog {
	return &Catalog{
		sm:         sm,
		tableIds:   make(map[types.OID]*TableMetadata),
		tableNames: make(map[string]*TableMetadata),
		nextOID:    1,
	}
}

// CreateTable opens a heap file for the new table and registers it.
// The heap starts out with one empty formatted page.
func (c *Catalog) CreateTable(name string, schema_ *schema.Schema) (*TableMetadata, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, ok := c.tableNames[name]; ok {
		return nil, ErrTableExists
	}

	oid := c.nextOID
	tableHeap, err := access.NewTableHeap(c.sm, oid)
	if err != nil {
		return nil, err
	}
	c.nextOID++

	tableMetadata := NewTableMetadata(schema_, name, tableHeap, oid)
	c.tableIds[oid] = tableMetadata
	c.tableNames[name] = tableMetadata
	return tableMetadata, nil
}

func (c *Catalog) GetTableByName(name string) (*TableMetadata, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if tableMetadata, ok := c.tableNames[name]; ok {
		return tableMetadata, nil
	}
	return nil, errors.ErrNoTable
}

func (c *Catalog) GetTableByOID(oid types.OID) (*TableMetadata, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if tableMetadata, ok := c.tableIds[oid]; ok {
		return tableMetadata, nil
	}
	return nil, errors.ErrNoTable
}

func (c *Catalog) GetStorageManager() *access.StorageManager {
	return c.sm
}

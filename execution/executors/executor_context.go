// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package executors

import (
	"github.com/aokimoto/KujiraDB/catalog"
	"github.com/aokimoto/KujiraDB/storage/access"
)

// ExecutorContext stores all the context necessary to run an executor
type ExecutorContext struct {
	catalog *catalog.Catalog
	sm      *access.StorageManager
}

func NewExecutorContext(catalog_ *catalog.Catalog, sm *access.StorageManager) *ExecutorContext {
	return &ExecutorContext{catalog_, sm}
}

func (e *ExecutorContext) GetCatalog() *catalog.Catalog {
	return e.catalog
}

func (e *ExecutorContext) GetStorageManager() *access.StorageManager {
	return e.sm
}

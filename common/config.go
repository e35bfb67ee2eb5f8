// this code is from https://github.com/pzhzqt/goostub
// there is license and copyright notice in licenses/goostub dir

package common

import (
	"time"
)

// CycleDetectionInterval is how long a mutex wait may last before the
// deadlock detector reports it.
var CycleDetectionInterval time.Duration = 30 * time.Second
var EnableDebug bool = false
var LogLevelSetting LogLevel = WARN | ERROR | FATAL

const (
	// invalid page id
	InvalidPageID = -1
	// size of a data page in byte
	PageSize = 4096
	// number of frames in the buffer pool
	DefaultPoolSize = uint32(32)
	// number of evicted clean pages kept around for re-fetch
	VictimCacheMaxPages = int64(256)
)

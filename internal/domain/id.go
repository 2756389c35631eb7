package domain

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	idMu     sync.Mutex
	lastBase string
)

// NewEntityID returns a timestamp-derived id for categories and series,
// matching the ids already present in the store. When two ids land in the
// same millisecond a short random suffix keeps them unique.
func NewEntityID() string {
	idMu.Lock()
	defer idMu.Unlock()
	base := strconv.FormatInt(time.Now().UnixMilli(), 10)
	id := base
	if base == lastBase {
		id = base + "-" + uuid.NewString()[:8]
	}
	lastBase = base
	return id
}

//go:generate mockgen -destination=./mocks/cache.go -package=mocks . Extractor
package cache

import (
	"context"

	"github.com/plugbay/plugbay/pkg/model"
)

// Extractor produces metadata records for a plugin archive. The content cache
// invokes it only when the archive's hash is not already memoized.
type Extractor interface {
	Extract(ctx context.Context, archivePath string) ([]model.ArchiveRecord, error)
}

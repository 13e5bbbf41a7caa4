package leads

import (
	"context"
	"fmt"

	"github.com/programme-lv/contactform/contact"
)

// ObjectLister lists keys of one bucket. Implementations must return the
// complete listing, however many pages the backend needs.
type ObjectLister interface {
	ListFiles(ctx context.Context, prefix string) ([]string, error)
}

// ObjectStore is the read side of the submissions bucket.
type ObjectStore interface {
	ObjectLister
	Download(ctx context.Context, key string) ([]byte, error)
}

// ScanPartition returns every stored submission key for the month.
// An empty month is an empty slice, not an error.
func ScanPartition(ctx context.Context, lister ObjectLister, year, month int) ([]string, error) {
	prefix := contact.PartitionPrefix(year, month)
	keys, err := lister.ListFiles(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", prefix, err)
	}
	if keys == nil {
		keys = []string{}
	}
	return keys, nil
}

package s3bucket

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// StoredObject is what InMemBucket keeps per key.
type StoredObject struct {
	Content []byte
	Opts    UploadOpts
}

// InMemBucket is a process-local S3 fake for tests.
type InMemBucket struct {
	mu      sync.RWMutex
	objects map[string]StoredObject

	// UploadErr and DownloadErr, when set, are returned for matching keys.
	UploadErr   func(key string) error
	DownloadErr func(key string) error
}

func NewInMemBucket() *InMemBucket {
	return &InMemBucket{
		objects: make(map[string]StoredObject),
	}
}

func (b *InMemBucket) Upload(ctx context.Context, key string, content []byte, opts UploadOpts) error {
	if b.UploadErr != nil {
		if err := b.UploadErr(key); err != nil {
			return fmt.Errorf("failed to upload object: %w", err)
		}
	}
	cp := make([]byte, len(content))
	copy(cp, content)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[key] = StoredObject{Content: cp, Opts: opts}
	return nil
}

func (b *InMemBucket) Download(ctx context.Context, key string) ([]byte, error) {
	if b.DownloadErr != nil {
		if err := b.DownloadErr(key); err != nil {
			return nil, fmt.Errorf("failed to download object: %w", err)
		}
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	obj, ok := b.objects[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	cp := make([]byte, len(obj.Content))
	copy(cp, obj.Content)
	return cp, nil
}

// ListFiles returns keys under prefix in lexicographic order, like S3.
func (b *InMemBucket) ListFiles(ctx context.Context, prefix string) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	keys := []string{}
	for key := range b.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Object returns the stored object for key, if any.
func (b *InMemBucket) Object(key string) (StoredObject, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	obj, ok := b.objects[key]
	return obj, ok
}

func (b *InMemBucket) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.objects)
}

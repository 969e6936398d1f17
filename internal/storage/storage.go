package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ImageStore is the object-storage collaborator the upload endpoint hands
// buffered files to. Handlers only see keys and public URLs.
type ImageStore interface {
	Save(ctx context.Context, key string, data []byte) (string, error)
}

// NewObjectKey derives a unique storage key that keeps the original
// extension (lowercased) for content-type sniffing on the way back out.
func NewObjectKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return uuid.NewString() + ext
}

// DiskStore keeps uploads on the local filesystem and serves them through
// the router's static /uploads mount. Swappable for a cloud-backed store
// without touching handlers.
type DiskStore struct {
	dir     string
	baseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *DiskStore) Save(_ context.Context, key string, data []byte) (string, error) {
	// keys come from NewObjectKey; reject anything that escapes the dir
	if key != filepath.Base(key) {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	path := filepath.Join(s.dir, key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write object %s: %w", key, err)
	}
	return s.baseURL + "/uploads/" + key, nil
}

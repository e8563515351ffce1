// Package blob abstracts the byte-payload side of the storage engine.
// Paths are engine-constructed relative strings; a file's whole blob lives
// at "<id>.st" and its chunks under the "<id>/" directory, one object per
// chunk index.
package blob

import "context"

// Store is the blob-store contract consumed by the storage engine.
type Store interface {
	Write(ctx context.Context, path string, data []byte) error
	Read(ctx context.Context, path string) ([]byte, error)
	// Delete removes a blob. A blob that is already gone is not an error.
	Delete(ctx context.Context, path string) error
	CreateDir(ctx context.Context, path string) error
	RemoveDir(ctx context.Context, path string) error
}

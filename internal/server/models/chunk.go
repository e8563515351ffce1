package models

import (
	"fmt"
	"time"
)

// ChunkStatusStored marks a chunk whose blob has been written and whose
// catalog row has been inserted. Chunks are immutable after that.
const ChunkStatusStored = "stored"

// Chunk is a catalog row for one accepted piece of a chunked upload.
// Rows are never updated, only bulk-deleted together with their file.
type Chunk struct {
	ID         string
	FileID     string
	ChunkIndex int
	Hash       string
	Size       int64
	Status     string
	CreatedAt  time.Time
}

// ChunkID builds the composite primary key of a chunk row.
func ChunkID(fileID string, index int) string {
	return fmt.Sprintf("%s:%d", fileID, index)
}

package models

import (
	"database/sql"
	"time"
)

// File lifecycle states. There is no failed/aborted state: an abandoned
// chunked upload stays in StatusUploading until it is deleted.
const (
	StatusUploading = "uploading"
	StatusComplete  = "complete"
)

// File is a catalog row describing one stored file. Hash stays empty while a
// chunked upload is in flight and is set at finalize time. For chunked files
// the hash is a digest over the per-chunk hex digests, not over the payload.
type File struct {
	ID        string
	Mime      string
	Hash      string
	OwnerID   string
	Status    string
	TotalSize sql.NullInt64
	CreatedAt time.Time
}

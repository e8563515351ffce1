package storage

import (
	"context"
	"fmt"

	"github.com/privafile/privafile/internal/common"
	"github.com/privafile/privafile/internal/hashx"
	"github.com/privafile/privafile/internal/server/models"
)

// InitChunked opens a chunked upload for a caller-supplied file id. The id
// is validated against path-traversal sequences before any path is derived
// from it. Init is not idempotent: a second init with the same id fails on
// the catalog's primary-key constraint.
func (s *Service) InitChunked(ctx context.Context, ownerID, fileID, mime string, totalSize int64) error {
	if err := validateFileID(fileID); err != nil {
		return err
	}
	if err := validateMime(mime); err != nil {
		return err
	}
	if totalSize <= 0 {
		return fmt.Errorf("%w: total size must be positive", common.ErrInvalidArgument)
	}

	file := &models.File{
		ID:      fileID,
		Mime:    mime,
		Hash:    "",
		OwnerID: ownerID,
		Status:  models.StatusUploading,
	}
	file.TotalSize.Int64 = totalSize
	file.TotalSize.Valid = true

	if err := s.files.Create(ctx, file); err != nil {
		return err
	}

	if err := s.blobs.CreateDir(ctx, chunkDir(fileID)); err != nil {
		return err
	}

	s.logger.Info(ctx, "chunked upload started", "file_id", fileID, "owner", ownerID, "total_size", totalSize)
	return nil
}

// AcceptChunk stores one chunk of an open upload and returns the chunk's
// hex digest so the caller can cross-check it. The blob is written before
// the catalog row: a crash in between leaves an orphan blob, which finalize
// never sees, instead of a catalog row pointing at nothing.
func (s *Service) AcceptChunk(ctx context.Context, ownerID, fileID string, index int, data []byte) (string, error) {
	if err := validateFileID(fileID); err != nil {
		return "", err
	}
	if index < 0 {
		return "", fmt.Errorf("%w: negative chunk index", common.ErrInvalidArgument)
	}

	file, err := s.getOwnedFile(ctx, ownerID, fileID)
	if err != nil {
		return "", err
	}
	if file.Status != models.StatusUploading {
		return "", common.ErrInvalidState
	}

	hash := hashx.Sum(data)

	if err := s.blobs.Write(ctx, chunkPath(fileID, index), data); err != nil {
		return "", err
	}

	chunk := &models.Chunk{
		ID:         models.ChunkID(fileID, index),
		FileID:     fileID,
		ChunkIndex: index,
		Hash:       hash,
		Size:       int64(len(data)),
		Status:     models.ChunkStatusStored,
	}

	// Row insert runs under the per-file lock so it cannot interleave with
	// a finalize validating the chunk set. Blob I/O stays outside the lock.
	unlock := s.locks.Lock(fileID)
	err = s.chunks.Create(ctx, chunk)
	unlock()
	if err != nil {
		return "", err
	}

	s.logger.Debug(ctx, "chunk accepted", "file_id", fileID, "index", index, "size", len(data))
	return hash, nil
}

// Finalize closes a chunked upload: it validates that the recorded chunk
// indices form the exact sequence 0..n-1, computes the file digest over the
// concatenated per-chunk hex digests in index order, and marks the file
// complete. Returns the digest and the chunk count.
func (s *Service) Finalize(ctx context.Context, ownerID, fileID string) (string, int, error) {
	if err := validateFileID(fileID); err != nil {
		return "", 0, err
	}

	unlock := s.locks.Lock(fileID)
	defer unlock()

	if _, err := s.getOwnedFile(ctx, ownerID, fileID); err != nil {
		return "", 0, err
	}

	list, err := s.chunks.ListByFile(ctx, fileID)
	if err != nil {
		return "", 0, err
	}
	if len(list) == 0 {
		return "", 0, common.ErrEmptyUpload
	}

	hashes := make([]string, 0, len(list))
	for i, chunk := range list {
		if chunk.ChunkIndex != i {
			return "", 0, fmt.Errorf("%w: want index %d, have %d", common.ErrMissingChunks, i, chunk.ChunkIndex)
		}
		hashes = append(hashes, chunk.Hash)
	}

	finalHash := hashx.Summary(hashes)

	if err := s.files.UpdateHash(ctx, fileID, finalHash); err != nil {
		return "", 0, err
	}
	if err := s.files.UpdateStatus(ctx, fileID, models.StatusComplete); err != nil {
		return "", 0, err
	}

	s.logger.Info(ctx, "upload finalized", "file_id", fileID, "chunks", len(list), "hash", finalHash)
	return finalHash, len(list), nil
}

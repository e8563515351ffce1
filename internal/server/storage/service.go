// Package storage implements the storage engine: whole-blob uploads, the
// chunked upload state machine, assembly/download, and deletion. Every
// operation is ownership-scoped and runs synchronously to completion.
//
// The engine spans two stores with no shared transaction: the relational
// catalog and the blob store. Write ordering is chosen so that a crash
// leaves an orphan blob rather than an orphan catalog row; the only
// compensating action is the whole-blob upload rollback.
package storage

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/privafile/privafile/internal/common"
	"github.com/privafile/privafile/internal/hashx"
	"github.com/privafile/privafile/internal/logging"
	"github.com/privafile/privafile/internal/server/blob"
	"github.com/privafile/privafile/internal/server/models"
	"github.com/privafile/privafile/internal/server/repositories/chunks"
	"github.com/privafile/privafile/internal/server/repositories/files"
	"github.com/privafile/privafile/internal/server/repositories/users"
)

// Service is the storage engine. It holds no cross-request mutable state
// except the per-file lock map used to serialize upload state transitions.
type Service struct {
	users  users.Repository
	files  files.Repository
	chunks chunks.Repository
	blobs  blob.Store
	logger logging.Logger
	locks  *keyedMutex
}

func NewService(ur users.Repository, fr files.Repository, cr chunks.Repository, bs blob.Store, l logging.Logger) *Service {
	return &Service{
		users:  ur,
		files:  fr,
		chunks: cr,
		blobs:  bs,
		logger: l.With("module", "storage"),
		locks:  newKeyedMutex(),
	}
}

// wholeBlobPath is the legacy single-blob location of a file.
func wholeBlobPath(fileID string) string {
	return fileID + ".st"
}

// chunkDir is the blob-store directory holding a file's chunks.
func chunkDir(fileID string) string {
	return fileID
}

func chunkPath(fileID string, index int) string {
	return path.Join(fileID, strconv.Itoa(index)+".chunk")
}

// validateFileID rejects identifiers that could escape the blob-store root
// once interpolated into a path. Applied on every operation that derives a
// path from a caller-supplied id, including init and accept-chunk.
func validateFileID(fileID string) error {
	if fileID == "" || strings.Contains(fileID, "..") || strings.ContainsAny(fileID, `/\`) {
		return common.ErrInvalidIdentifier
	}
	return nil
}

func validateMime(mime string) error {
	if mime == "" || !strings.Contains(mime, "/") || len(mime) > 100 {
		return fmt.Errorf("%w: bad mime type", common.ErrInvalidArgument)
	}
	return nil
}

// getOwnedFile loads a file row and checks that requesterID owns it.
func (s *Service) getOwnedFile(ctx context.Context, requesterID, fileID string) (*models.File, error) {
	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if file.OwnerID != requesterID {
		return nil, common.ErrForbidden
	}
	return file, nil
}

// UploadWhole stores a complete payload in one step: the file row is
// inserted as complete, then the blob is written. A failed blob write rolls
// the row back and surfaces the original error.
func (s *Service) UploadWhole(ctx context.Context, ownerID, mime string, data []byte) (string, string, error) {
	if err := validateMime(mime); err != nil {
		return "", "", err
	}
	if len(data) == 0 {
		return "", "", fmt.Errorf("%w: empty payload", common.ErrInvalidArgument)
	}

	// The whole-blob path verifies the owner exists; the chunked path
	// trusts token validity alone.
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return "", "", err
	}

	fileID := uuid.New().String()
	hash := hashx.Sum(data)

	file := &models.File{
		ID:      fileID,
		Mime:    mime,
		Hash:    hash,
		OwnerID: ownerID,
		Status:  models.StatusComplete,
	}
	file.TotalSize.Int64 = int64(len(data))
	file.TotalSize.Valid = true

	if err := s.files.Create(ctx, file); err != nil {
		return "", "", err
	}

	if err := s.blobs.Write(ctx, wholeBlobPath(fileID), data); err != nil {
		s.logger.Error(ctx, "blob write failed, rolling back catalog row", "file_id", fileID, "error", err)
		if delErr := s.files.Delete(ctx, fileID); delErr != nil {
			s.logger.Error(ctx, "rollback failed, orphan catalog row remains", "file_id", fileID, "error", delErr)
		}
		return "", "", err
	}

	s.logger.Info(ctx, "file uploaded", "file_id", fileID, "owner", ownerID, "size", len(data))
	return fileID, hash, nil
}

// List returns the owner's files, optionally filtered by mime type and
// capped at limit rows.
func (s *Service) List(ctx context.Context, ownerID string, mimeFilter *string, limit *int) ([]*models.File, error) {
	return s.files.ListByOwner(ctx, ownerID, mimeFilter, limit)
}

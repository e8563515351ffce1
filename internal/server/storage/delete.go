package storage

import (
	"context"
)

// Delete removes a file: best-effort blob cleanup first, then the catalog
// rows, children before parent. Blob failures are logged and skipped so
// deletion converges toward "file removed"; catalog failures abort, since
// catalog consistency is what the rest of the engine relies on.
func (s *Service) Delete(ctx context.Context, requesterID, fileID string) error {
	if err := validateFileID(fileID); err != nil {
		return err
	}

	if _, err := s.getOwnedFile(ctx, requesterID, fileID); err != nil {
		return err
	}

	list, err := s.chunks.ListByFile(ctx, fileID)
	if err != nil {
		return err
	}

	for _, chunk := range list {
		if err := s.blobs.Delete(ctx, chunkPath(fileID, chunk.ChunkIndex)); err != nil {
			s.logger.Warn(ctx, "chunk blob delete failed, continuing", "file_id", fileID, "index", chunk.ChunkIndex, "error", err)
		}
	}
	if err := s.blobs.RemoveDir(ctx, chunkDir(fileID)); err != nil {
		s.logger.Warn(ctx, "chunk dir remove failed, continuing", "file_id", fileID, "error", err)
	}
	if len(list) == 0 {
		// Legacy whole-blob file; the payload lives next to the chunk dirs.
		if err := s.blobs.Delete(ctx, wholeBlobPath(fileID)); err != nil {
			s.logger.Warn(ctx, "whole blob delete failed, continuing", "file_id", fileID, "error", err)
		}
	}

	if err := s.chunks.DeleteByFile(ctx, fileID); err != nil {
		return err
	}
	if err := s.files.Delete(ctx, fileID); err != nil {
		return err
	}

	s.logger.Info(ctx, "file deleted", "file_id", fileID, "owner", requesterID)
	return nil
}

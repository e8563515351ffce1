package storage

import (
	"bytes"
	"context"

	"github.com/privafile/privafile/internal/server/models"
)

// Download returns a file's mime type and its full payload. Files with no
// chunk rows are read from the legacy whole-blob location; chunked files
// are reassembled by concatenating chunk blobs in ascending index order.
// A missing chunk blob surfaces as a blob-store read error: finalize only
// validates catalog completeness, so the blob can legitimately be absent.
func (s *Service) Download(ctx context.Context, requesterID, fileID string) (string, []byte, error) {
	if err := validateFileID(fileID); err != nil {
		return "", nil, err
	}

	file, err := s.getOwnedFile(ctx, requesterID, fileID)
	if err != nil {
		return "", nil, err
	}

	list, err := s.chunks.ListByFile(ctx, fileID)
	if err != nil {
		return "", nil, err
	}

	if len(list) == 0 {
		data, err := s.blobs.Read(ctx, wholeBlobPath(fileID))
		if err != nil {
			return "", nil, err
		}
		return file.Mime, data, nil
	}

	var buf bytes.Buffer
	for _, chunk := range list {
		data, err := s.blobs.Read(ctx, chunkPath(fileID, chunk.ChunkIndex))
		if err != nil {
			s.logger.Error(ctx, "chunk blob missing during assembly", "file_id", fileID, "index", chunk.ChunkIndex, "error", err)
			return "", nil, err
		}
		buf.Write(data)
	}

	s.logger.Info(ctx, "file downloaded", "file_id", fileID, "size", buf.Len(), "chunks", len(list))
	return file.Mime, buf.Bytes(), nil
}

// DownloadChunk returns one chunk's raw bytes together with its recorded
// hash, without touching any other chunk.
func (s *Service) DownloadChunk(ctx context.Context, requesterID, fileID string, index int) ([]byte, string, error) {
	if err := validateFileID(fileID); err != nil {
		return nil, "", err
	}

	if _, err := s.getOwnedFile(ctx, requesterID, fileID); err != nil {
		return nil, "", err
	}

	chunk, err := s.chunks.GetByID(ctx, models.ChunkID(fileID, index))
	if err != nil {
		return nil, "", err
	}

	data, err := s.blobs.Read(ctx, chunkPath(fileID, chunk.ChunkIndex))
	if err != nil {
		return nil, "", err
	}

	return data, chunk.Hash, nil
}

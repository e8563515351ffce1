package httpapi

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// maxUploadBytes caps a whole-blob upload body.
const maxUploadBytes = 100 << 20

type fileInfo struct {
	ID   string `json:"id"`
	Mime string `json:"mime"`
	Hash string `json:"hash"`
}

type initUploadRequest struct {
	FileID    string `json:"file_id" binding:"required"`
	Mime      string `json:"mime" binding:"required"`
	TotalSize int64  `json:"total_size" binding:"required"`
}

func (s *HTTPServer) uploadFile(c *gin.Context) {
	mime := c.Query("mime")

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "reading request body: " + err.Error()})
		return
	}
	if len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "file cannot be empty"})
		return
	}

	fileID, hash, err := s.storage.UploadWhole(c.Request.Context(), currentUserID(c), mime, data)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"success": false, "message": errorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "file uploaded",
		"file_id": fileID,
		"hash":    hash,
	})
}

func (s *HTTPServer) initUpload(c *gin.Context) {
	var req initUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if err := s.storage.InitChunked(c.Request.Context(), currentUserID(c), req.FileID, req.Mime, req.TotalSize); err != nil {
		c.JSON(statusFromError(err), gin.H{"success": false, "message": errorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "upload initialized", "file_id": req.FileID})
}

func (s *HTTPServer) uploadChunk(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "chunk index must be an integer"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "reading request body: " + err.Error()})
		return
	}

	hash, err := s.storage.AcceptChunk(c.Request.Context(), currentUserID(c), c.Param("id"), index, data)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"success": false, "message": errorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "chunk stored", "hash": hash})
}

func (s *HTTPServer) finalizeUpload(c *gin.Context) {
	hash, count, err := s.storage.Finalize(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"success": false, "message": errorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "upload finalized",
		"hash":    hash,
		"chunks":  count,
	})
}

func (s *HTTPServer) listFiles(c *gin.Context) {
	var mimeFilter *string
	if mime := c.Query("mime"); mime != "" {
		mimeFilter = &mime
	}

	var limit *int
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 1000 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "limit must be between 1 and 1000"})
			return
		}
		limit = &n
	}

	list, err := s.storage.List(c.Request.Context(), currentUserID(c), mimeFilter, limit)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"success": false, "message": errorMessage(err)})
		return
	}

	infos := make([]fileInfo, 0, len(list))
	for _, f := range list {
		infos = append(infos, fileInfo{ID: f.ID, Mime: f.Mime, Hash: f.Hash})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": strconv.Itoa(len(infos)) + " file(s) found",
		"files":   infos,
	})
}

func (s *HTTPServer) downloadFile(c *gin.Context) {
	mime, data, err := s.storage.Download(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"success": false, "message": errorMessage(err)})
		return
	}
	c.Data(http.StatusOK, mime, data)
}

func (s *HTTPServer) downloadChunk(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "chunk index must be an integer"})
		return
	}

	data, hash, err := s.storage.DownloadChunk(c.Request.Context(), currentUserID(c), c.Param("id"), index)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"success": false, "message": errorMessage(err)})
		return
	}

	c.Header("X-Chunk-Hash", hash)
	c.Data(http.StatusOK, "application/octet-stream", data)
}

func (s *HTTPServer) deleteFile(c *gin.Context) {
	fileID := c.Param("id")
	if err := s.storage.Delete(c.Request.Context(), currentUserID(c), fileID); err != nil {
		c.JSON(statusFromError(err), gin.H{"success": false, "message": errorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "file " + fileID + " deleted"})
}

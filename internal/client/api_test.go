package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLoginReturnToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "alice", creds["username"])

		json.NewEncoder(w).Encode(map[string]any{"success": true, "token": "tok-" + r.URL.Path})
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, "")

	token, err := api.Register("alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, "tok-/api/auth/register", token)

	token, err = api.Login("alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, "tok-/api/auth/login", token)
}

func TestAuthErrorsSurfaceServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "invalid credentials"})
	}))
	defer srv.Close()

	_, err := NewAPI(srv.URL, "").Login("alice", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
	assert.Contains(t, err.Error(), "401")
}

func TestUploadSplitsIntoChunks(t *testing.T) {
	// 2.5 chunks worth of data
	content := bytes.Repeat([]byte("x"), chunkSize*2+chunkSize/2)
	path := filepath.Join(t.TempDir(), "big.bin")
	require.NoError(t, os.WriteFile(path, content, 0600))

	var mu sync.Mutex
	var gotInit bool
	var gotFinalize bool
	received := map[int][]byte{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		switch {
		case r.URL.Path == "/api/files/upload/init":
			var req struct {
				FileID    string `json:"file_id"`
				Mime      string `json:"mime"`
				TotalSize int64  `json:"total_size"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "f1", req.FileID)
			assert.Equal(t, int64(len(content)), req.TotalSize)
			mu.Lock()
			gotInit = true
			mu.Unlock()
			json.NewEncoder(w).Encode(map[string]any{"success": true})

		case strings.HasPrefix(r.URL.Path, "/api/files/upload/chunk/f1/"):
			var index int
			_, err := fmt.Sscanf(r.URL.Path, "/api/files/upload/chunk/f1/%d", &index)
			require.NoError(t, err)
			data, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			mu.Lock()
			received[index] = data
			mu.Unlock()
			json.NewEncoder(w).Encode(map[string]any{"success": true, "hash": "h"})

		case r.URL.Path == "/api/files/upload/finalize/f1":
			mu.Lock()
			gotFinalize = true
			mu.Unlock()
			json.NewEncoder(w).Encode(map[string]any{"success": true, "hash": "summary", "chunks": 3})

		default:
			t.Errorf("unexpected request: %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	hash, err := NewAPI(srv.URL, "tok").Upload("f1", path, "application/octet-stream")
	require.NoError(t, err)
	assert.Equal(t, "summary", hash)

	assert.True(t, gotInit)
	assert.True(t, gotFinalize)
	require.Len(t, received, 3)
	assert.Len(t, received[0], chunkSize)
	assert.Len(t, received[1], chunkSize)
	assert.Len(t, received[2], chunkSize/2)
	assert.Equal(t, content, bytes.Join([][]byte{received[0], received[1], received[2]}, nil))
}

func TestUploadRejectsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0600))

	_, err := NewAPI("http://unused", "tok").Upload("f1", path, "text/plain")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestListBuildsQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(map[string]any{"success": true, "files": []FileInfo{
			{ID: "f1", Mime: "text/plain", Hash: "h1"},
		}})
	}))
	defer srv.Close()

	files, err := NewAPI(srv.URL, "tok").List("text/plain", 5)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "f1", files[0].ID)
	assert.Contains(t, gotQuery, "mime=text/plain")
	assert.Contains(t, gotQuery, "limit=5")
}

func TestDownloadReturnsBodyAndMime(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/files/download/f1", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("pdf bytes"))
	}))
	defer srv.Close()

	data, mimeType, err := NewAPI(srv.URL, "tok").Download("f1")
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf bytes"), data)
	assert.Equal(t, "application/pdf", mimeType)
}

func TestDeleteUsesDeleteMethod(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	require.NoError(t, NewAPI(srv.URL, "tok").Delete("f1"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/files/delete/f1", gotPath)
}

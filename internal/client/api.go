package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// chunkSize is how much of a file goes into one upload request.
const chunkSize = 64 * 1024

// API is a thin HTTP client over the server's public endpoint.
type API struct {
	baseURL string
	token   string
	httpc   *http.Client
}

func NewAPI(baseURL, token string) *API {
	return &API{
		baseURL: baseURL,
		token:   token,
		httpc:   &http.Client{Timeout: 5 * time.Minute},
	}
}

type authResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	FileID  string `json:"file_id"`
	Hash    string `json:"hash"`
	Chunks  int    `json:"chunks"`
}

// FileInfo is one row of a listing.
type FileInfo struct {
	ID   string `json:"id"`
	Mime string `json:"mime"`
	Hash string `json:"hash"`
}

type listResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Files   []FileInfo `json:"files"`
}

func (a *API) newRequest(method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequest(method, a.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	return req, nil
}

func (a *API) doJSON(method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := a.newRequest(method, path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpc.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return serverError(resp.StatusCode, raw)
	}
	if out != nil {
		return json.Unmarshal(raw, out)
	}
	return nil
}

func serverError(status int, body []byte) error {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Message != "" {
		return fmt.Errorf("server returned %d: %s", status, resp.Message)
	}
	return fmt.Errorf("server returned %d", status)
}

// Register creates an account and returns the access token.
func (a *API) Register(username, password string) (string, error) {
	var resp authResponse
	if err := a.doJSON(http.MethodPost, "/api/auth/register", map[string]string{
		"username": username, "password": password,
	}, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Login authenticates and returns the access token.
func (a *API) Login(username, password string) (string, error) {
	var resp authResponse
	if err := a.doJSON(http.MethodPost, "/api/auth/login", map[string]string{
		"username": username, "password": password,
	}, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Upload sends a local file in 64 KiB chunks and finalizes the upload.
// It returns the file id and the server-computed summary hash.
func (a *API) Upload(fileID, path, mime string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	if info.Size() == 0 {
		return "", fmt.Errorf("file %s is empty", path)
	}

	if err := a.doJSON(http.MethodPost, "/api/files/upload/init", map[string]any{
		"file_id": fileID, "mime": mime, "total_size": info.Size(),
	}, nil); err != nil {
		return "", err
	}

	buf := make([]byte, chunkSize)
	for index := 0; ; index++ {
		n, err := io.ReadFull(f, buf)
		if n > 0 {
			if err := a.uploadChunk(fileID, index, buf[:n]); err != nil {
				return "", err
			}
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return "", err
		}
	}

	var resp apiResponse
	if err := a.doJSON(http.MethodPost, "/api/files/upload/finalize/"+fileID, nil, &resp); err != nil {
		return "", err
	}
	return resp.Hash, nil
}

func (a *API) uploadChunk(fileID string, index int, data []byte) error {
	req, err := a.newRequest(http.MethodPost, fmt.Sprintf("/api/files/upload/chunk/%s/%d", fileID, index), bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := a.httpc.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return serverError(resp.StatusCode, raw)
	}
	return nil
}

// List fetches the caller's files, optionally filtered by mime type.
func (a *API) List(mime string, limit int) ([]FileInfo, error) {
	path := "/api/files/list"
	sep := "?"
	if mime != "" {
		path += sep + "mime=" + mime
		sep = "&"
	}
	if limit > 0 {
		path += fmt.Sprintf("%slimit=%d", sep, limit)
	}

	var resp listResponse
	if err := a.doJSON(http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Files, nil
}

// Download fetches a file's content and mime type.
func (a *API) Download(fileID string) ([]byte, string, error) {
	req, err := a.newRequest(http.MethodGet, "/api/files/download/"+fileID, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := a.httpc.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", serverError(resp.StatusCode, raw)
	}
	return raw, resp.Header.Get("Content-Type"), nil
}

// Delete removes a file from the server.
func (a *API) Delete(fileID string) error {
	return a.doJSON(http.MethodDelete, "/api/files/delete/"+fileID, nil, nil)
}

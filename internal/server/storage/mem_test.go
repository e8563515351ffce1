package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/privafile/privafile/internal/common"
	"github.com/privafile/privafile/internal/logging"
	"github.com/privafile/privafile/internal/server/blob"
	"github.com/privafile/privafile/internal/server/models"
)

// In-memory catalog fakes. They mimic the store-level error contract of the
// postgres repositories: common.ErrNotFound for missing rows, a constraint
// error for duplicate primary keys.

type memUsers struct {
	mu    sync.Mutex
	byID  map[string]*models.User
	byNam map[string]*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[string]*models.User{}, byNam: map[string]*models.User{}}
}

func (m *memUsers) Create(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byNam[u.UserName]; ok {
		return fmt.Errorf("insert user %s: duplicate key value", u.UserName)
	}
	cp := *u
	cp.CreatedAt = time.Now()
	m.byID[u.ID] = &cp
	m.byNam[u.UserName] = &cp
	return nil
}

func (m *memUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByUserName(ctx context.Context, name string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byNam[name]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return common.ErrNotFound
	}
	delete(m.byNam, u.UserName)
	delete(m.byID, id)
	return nil
}

type memFiles struct {
	mu   sync.Mutex
	rows map[string]*models.File

	failUpdateHash bool
	failDelete     bool
}

func newMemFiles() *memFiles {
	return &memFiles{rows: map[string]*models.File{}}
}

func (m *memFiles) Create(ctx context.Context, f *models.File) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[f.ID]; ok {
		return fmt.Errorf("insert file %s: duplicate key value violates unique constraint", f.ID)
	}
	cp := *f
	cp.CreatedAt = time.Now()
	m.rows[f.ID] = &cp
	return nil
}

func (m *memFiles) GetByID(ctx context.Context, id string) (*models.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.rows[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (m *memFiles) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failDelete {
		return errors.New("delete file: connection reset")
	}
	if _, ok := m.rows[id]; !ok {
		return common.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memFiles) UpdateHash(ctx context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpdateHash {
		return errors.New("update file hash: connection reset")
	}
	f, ok := m.rows[id]
	if !ok {
		return common.ErrNotFound
	}
	f.Hash = hash
	return nil
}

func (m *memFiles) UpdateStatus(ctx context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.rows[id]
	if !ok {
		return common.ErrNotFound
	}
	f.Status = status
	return nil
}

func (m *memFiles) ListByOwner(ctx context.Context, ownerID string, mimeFilter *string, limit *int) ([]*models.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*models.File
	for _, f := range m.rows {
		if f.OwnerID != ownerID {
			continue
		}
		if mimeFilter != nil && f.Mime != *mimeFilter {
			continue
		}
		cp := *f
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	if limit != nil && len(result) > *limit {
		result = result[:*limit]
	}
	return result, nil
}

type memChunks struct {
	mu   sync.Mutex
	rows map[string]*models.Chunk

	failDeleteByFile bool
}

func newMemChunks() *memChunks {
	return &memChunks{rows: map[string]*models.Chunk{}}
}

func (m *memChunks) Create(ctx context.Context, c *models.Chunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[c.ID]; ok {
		return fmt.Errorf("insert chunk %s: duplicate key value violates unique constraint", c.ID)
	}
	cp := *c
	cp.CreatedAt = time.Now()
	m.rows[c.ID] = &cp
	return nil
}

func (m *memChunks) GetByID(ctx context.Context, id string) (*models.Chunk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memChunks) ListByFile(ctx context.Context, fileID string) ([]*models.Chunk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*models.Chunk
	for _, c := range m.rows {
		if c.FileID == fileID {
			cp := *c
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ChunkIndex < result[j].ChunkIndex })
	return result, nil
}

func (m *memChunks) CountByFile(ctx context.Context, fileID string) (int64, error) {
	list, _ := m.ListByFile(ctx, fileID)
	return int64(len(list)), nil
}

func (m *memChunks) DeleteByFile(ctx context.Context, fileID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failDeleteByFile {
		return errors.New("delete chunks: connection reset")
	}
	for id, c := range m.rows {
		if c.FileID == fileID {
			delete(m.rows, id)
		}
	}
	return nil
}

// failingBlob wraps a real store and injects failures per operation.
type failingBlob struct {
	blob.Store
	failWrite  bool
	failDelete bool
}

func (f *failingBlob) Write(ctx context.Context, path string, data []byte) error {
	if f.failWrite {
		return errors.New("write blob: disk full")
	}
	return f.Store.Write(ctx, path, data)
}

func (f *failingBlob) Delete(ctx context.Context, path string) error {
	if f.failDelete {
		return errors.New("delete blob: permission denied")
	}
	return f.Store.Delete(ctx, path)
}

type env struct {
	svc    *Service
	users  *memUsers
	files  *memFiles
	chunks *memChunks
	blobs  blob.Store
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store, err := newLocalStoreForTest(t)
	require.NoError(t, err)
	return newEnvWithBlobs(t, store)
}

func newLocalStoreForTest(t *testing.T) (*blob.LocalStore, error) {
	t.Helper()
	return blob.NewLocalStore(t.TempDir())
}

func newEnvWithBlobs(t *testing.T, store blob.Store) *env {
	t.Helper()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ur, fr, cr := newMemUsers(), newMemFiles(), newMemChunks()
	return &env{
		svc:    NewService(ur, fr, cr, store, logger),
		users:  ur,
		files:  fr,
		chunks: cr,
		blobs:  store,
	}
}

func (e *env) addUser(t *testing.T, id, name string) {
	t.Helper()
	require.NoError(t, e.users.Create(context.Background(), &models.User{ID: id, UserName: name, PasswordHash: "x"}))
}

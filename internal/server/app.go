// Package server initializes and runs the Privafile server: it opens the
// catalog, applies migrations, loads or creates the token signing key,
// selects the blob backend, and serves HTTP until shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/privafile/privafile/internal/logging"
	"github.com/privafile/privafile/internal/server/auth"
	"github.com/privafile/privafile/internal/server/blob"
	"github.com/privafile/privafile/internal/server/config"
	"github.com/privafile/privafile/internal/server/httpapi"
	"github.com/privafile/privafile/internal/server/repositories/repomanager"
	"github.com/privafile/privafile/internal/server/services"
	"github.com/privafile/privafile/internal/server/storage"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	httpServer *httpapi.HTTPServer
}

func NewApp(ctx context.Context) (*App, error) {
	// a missing .env is fine, real env vars still apply
	_ = godotenv.Load()

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.LoadConfig()

	db, rm, err := repomanager.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	key, err := auth.LoadOrCreateKey(cfg.TokenKeyPath)
	if err != nil {
		return nil, fmt.Errorf("token key init error: %w", err)
	}
	authority := auth.NewAuthority(key)

	blobs, err := newBlobStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	userSvc := services.NewUserService(db, rm, authority, cfg.TokenTTL)
	storageSvc := storage.NewService(rm.Users(db), rm.Files(db), rm.Chunks(db), blobs, logger)

	httpServer := httpapi.NewHTTPServer(cfg.EndpointAddr, logger, userSvc, storageSvc, authority)

	return &App{config: cfg, logger: logger, httpServer: httpServer}, nil
}

func newBlobStore(cfg *config.Config) (blob.Store, error) {
	switch cfg.BlobBackend {
	case config.BlobBackendS3:
		return blob.NewS3Store(context.Background(), blob.S3Options{
			User:     cfg.S3RootUser,
			Password: cfg.S3RootPassword,
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Endpoint: cfg.S3BaseEndpoint,
		})
	case config.BlobBackendLocal:
		return blob.NewLocalStore(cfg.UploadsDir)
	default:
		return nil, fmt.Errorf("unknown blob backend %q", cfg.BlobBackend)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()
}

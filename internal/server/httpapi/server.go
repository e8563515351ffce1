// Package httpapi exposes the public HTTP endpoint: authentication routes
// and the token-guarded file routes. Handlers translate between HTTP and
// the services; all business rules live below this layer.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/privafile/privafile/internal/logging"
	"github.com/privafile/privafile/internal/server/auth"
	"github.com/privafile/privafile/internal/server/services"
	"github.com/privafile/privafile/internal/server/storage"
)

type HTTPServer struct {
	address   string
	users     *services.UserService
	storage   *storage.Service
	authority *auth.Authority
	logger    logging.Logger
}

func NewHTTPServer(a string, l logging.Logger, us *services.UserService, ss *storage.Service, authority *auth.Authority) *HTTPServer {
	return &HTTPServer{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		storage:   ss,
		authority: authority,
	}
}

// Router builds the gin engine with all routes registered.
func (s *HTTPServer) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.register)
	authGroup.POST("/login", s.login)

	filesGroup := api.Group("/files")
	filesGroup.Use(s.authRequired())
	filesGroup.POST("/upload", s.uploadFile)
	filesGroup.POST("/upload/init", s.initUpload)
	filesGroup.POST("/upload/chunk/:id/:index", s.uploadChunk)
	filesGroup.POST("/upload/finalize/:id", s.finalizeUpload)
	filesGroup.GET("/list", s.listFiles)
	filesGroup.GET("/download/:id", s.downloadFile)
	filesGroup.GET("/download/:id/chunk/:index", s.downloadChunk)
	filesGroup.DELETE("/delete/:id", s.deleteFile)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

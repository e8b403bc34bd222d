package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/keshavbardwaj1348/job-portal-backend/internal/auth"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/config"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/database"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/storage"
)

// Server bundles the process-wide collaborators every route handler draws
// from: configuration, the database instance, the token service, the upload
// store and the token blacklist.
type Server struct {
	cfg       *config.Config
	db        *database.DBinstanceStruct
	tokens    *auth.TokenService
	store     *storage.LocalStore
	blacklist auth.JwtBlacklistStore
	logger    *slog.Logger
}

// New constructs a Server from its collaborators. Nothing is connected or
// listened on until HTTPServer is called.
func New(
	cfg *config.Config,
	db *database.DBinstanceStruct,
	tokens *auth.TokenService,
	store *storage.LocalStore,
	blacklist auth.JwtBlacklistStore,
	logger *slog.Logger,
) *Server {
	return &Server{
		cfg:       cfg,
		db:        db,
		tokens:    tokens,
		store:     store,
		blacklist: blacklist,
		logger:    logger,
	}
}

// HTTPServer wraps the registered routes into a http.Server with sane
// timeouts, ready for ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

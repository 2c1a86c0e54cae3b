// Package httpapi exposes the credential service over HTTP:
// POST /auth/register, POST /auth/login, and GET /auth/me behind a bearer
// token middleware. Responses use a {success, message, data} envelope.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dkalnins/auctionhub/internal/logging"
	"github.com/dkalnins/auctionhub/internal/server/services"
	"github.com/gin-gonic/gin"
)

type Server struct {
	address string
	logger  logging.Logger
	users   *services.UserService
	engine  *gin.Engine
}

func NewServer(address string, l logging.Logger, us *services.UserService) *Server {
	s := &Server{
		address: address,
		logger:  l.With("module", "http_server"),
		users:   us,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	auth := engine.Group("/auth")
	auth.POST("/register", s.registerUser)
	auth.POST("/login", s.loginUser)
	auth.GET("/me", s.requireAuth(), s.getMe)

	s.engine = engine
	return s
}

// Engine exposes the router for httptest-based tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.engine,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

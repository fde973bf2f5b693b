package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mgpai22/subshift/internal/cooldown"
	"github.com/mgpai22/subshift/internal/history"
	"github.com/mgpai22/subshift/internal/logging"
	"github.com/mgpai22/subshift/internal/save"
)

const shutdownTimeout = 5 * time.Second

// Options wires the server to its collaborators. Saver and History may be
// nil; the endpoints that need them then answer 503.
type Options struct {
	Saver    *save.Saver
	History  *history.Store
	Cooldown *cooldown.Guard
	Logger   *logging.Logger
	// VideoFPS reports the playing video's frame rate, 0 when unknown.
	VideoFPS func(ctx context.Context) float64
	Version  string
}

// Server is the HTTP control surface.
type Server struct {
	opts   Options
	logger *logging.Logger
	router *gin.Engine
}

func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	if opts.Cooldown == nil {
		opts.Cooldown = &cooldown.Guard{}
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(requestID())
	r.Use(requestLogger(logger))
	r.Use(gin.Recovery())

	s := &Server{opts: opts, logger: logger, router: r}

	r.GET("/health", s.healthCheck)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/shift", s.shift)
		v1.GET("/timestamp", s.timestamp)
		v1.POST("/save", s.save)
		v1.GET("/history", s.listHistory)
		v1.DELETE("/history", s.clearHistory)
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infow("Control surface listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

// Package httpapi is the REST surface of the development backend. Errors use
// FastAPI-style bodies: {"detail": "..."} or, for rejected input, a list of
// {"loc", "msg", "type"} objects under "detail".
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/mpdash/internal/logging"
	"github.com/dmitrijs2005/mpdash/internal/server/models"
	"github.com/dmitrijs2005/mpdash/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type UserService interface {
	Signup(ctx context.Context, email, username, password string) (*models.User, error)
	Login(ctx context.Context, login, password string) (*services.Token, error)
	User(ctx context.Context, id int64) (*models.User, error)
	UserIDFromToken(token string) (int64, error)
}

type ProductService interface {
	Track(ctx context.Context, userID int64, req services.TrackRequest) (*models.Product, error)
	Tracked(ctx context.Context, userID int64) ([]models.Product, error)
	Untrack(ctx context.Context, userID, id int64) (*models.Product, error)
	Analyze(ctx context.Context, userID int64, article string) (*models.Analysis, error)
}

type Server struct {
	address     string
	logger      logging.Logger
	users       UserService
	products    ProductService
	corsOrigins []string
	now         func() time.Time
}

func NewServer(address string, l logging.Logger, us UserService, ps ProductService, corsOrigins []string) *Server {
	return &Server{
		address:     address,
		logger:      l.With("module", "http_server"),
		users:       us,
		products:    ps,
		corsOrigins: corsOrigins,
		now:         time.Now,
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-done
}

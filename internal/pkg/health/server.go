package health

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Vodeneev/matchverify/internal/pkg/models"
)

// Verifier is the aggregation entry point the HTTP layer calls.
type Verifier interface {
	Verify(ctx context.Context, f models.Filter) (*models.Report, error)
}

// Server exposes health probes, metrics and the /verify API.
type Server struct {
	verifier Verifier
	log      *slog.Logger
}

func NewServer(verifier Verifier, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{verifier: verifier, log: log}
}

// Run binds the listen address, then serves in the background until the
// context is cancelled. Binding happens synchronously so a busy port fails
// the caller instead of leaving a service that only pretends to listen.
func (s *Server) Run(ctx context.Context, addr string, readHeaderTimeout time.Duration) error {
	mux := http.NewServeMux()

	mux.HandleFunc("/ping", s.handlePing)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/verify", s.handleVerify)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	go func() {
		s.log.Info("HTTP server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Error("HTTP server error", "error", err)
		}
	}()
	return nil
}

// AddrFor formats a listen address for a port.
func AddrFor(port int) (string, error) {
	if port <= 0 {
		return "", fmt.Errorf("port must be greater than 0, got %d", port)
	}
	return fmt.Sprintf(":%d", port), nil
}

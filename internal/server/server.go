// Package server exposes the dashboard query endpoint over HTTP.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/naka-gawa/release-stats/internal/store"
	"github.com/naka-gawa/release-stats/internal/usecase"
	"golang.org/x/sync/errgroup"
)

//go:embed static
var staticFiles embed.FS

const shutdownTimeout = 5 * time.Second

// Server serves dashboard statistics read from the raw release data file.
type Server struct {
	rawPath string
	logger  *log.Logger
}

// New creates a Server reading releases from rawPath on every request.
func New(rawPath string, logger *log.Logger) *Server {
	return &Server{rawPath: rawPath, logger: logger}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic("failed to initialize embedded static assets: " + err.Error())
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/dashboard/release-stats", s.releaseStats)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("GET /", http.FileServerFS(staticFS))
	return requestLogger(s.logger)(mux)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		s.logger.Printf("Serving dashboard on %s\n", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Println("Shutting down dashboard server...")
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}

func (s *Server) releaseStats(w http.ResponseWriter, _ *http.Request) {
	releases, rowErrs, err := store.ReadRaw(s.rawPath)
	if err != nil {
		s.logger.Printf("Error fetching dashboard data: %v\n", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch dashboard data"})
		return
	}
	for _, rowErr := range rowErrs {
		s.logger.Printf("  Skipping malformed row in %s: %v\n", s.rawPath, rowErr)
	}
	writeJSON(w, http.StatusOK, usecase.ProjectDashboard(releases))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

package httpserver

import (
	"context"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
)

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
}

// New builds a Server with all routes wired.
func New(addr string, fs *firestore.Client, deps Deps) *Server {
	router := buildRouter(fs, deps)

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Package api provides the CedarCite REST API server.
package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/FocuswithJustin/CedarCite/core/canon"
	"github.com/FocuswithJustin/CedarCite/internal/logging"
)

// Config holds the API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
	Canon          canon.Provider
}

// Server is the parse API server.
type Server struct {
	cfg   Config
	canon canon.Provider
}

// NewServer builds a server around the given canon. A nil canon means
// the built-in KJV table.
func NewServer(cfg Config) *Server {
	if cfg.Canon == nil {
		cfg.Canon = canon.Default()
	}
	return &Server{cfg: cfg, canon: cfg.Canon}
}

// Handler returns the server's full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/parse", s.handleParse)
	mux.HandleFunc("/books", s.handleBooks)
	mux.HandleFunc("/ws", s.handleWebSocket)

	var handler http.Handler = mux
	handler = s.corsMiddleware(handler)
	handler = logging.CombinedMiddleware(handler)
	return handler
}

// Start runs the server until the listener fails.
func (s *Server) Start() error {
	addr := ":" + strconv.Itoa(s.cfg.Port)
	logging.ServerStartup(addr, "endpoints", []string{"/health", "/parse", "/books", "/ws"})
	if err := http.ListenAndServe(addr, s.Handler()); err != nil {
		return fmt.Errorf("api server: %w", err)
	}
	return nil
}

// corsMiddleware allows cross-origin requests from the configured
// origins. An empty list allows every origin.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	if len(s.cfg.AllowedOrigins) == 0 {
		return true
	}
	for _, allowed := range s.cfg.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

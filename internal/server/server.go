package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rootsource-ai/rootsource/internal/geo"
	"github.com/rootsource-ai/rootsource/internal/orchestrator"
)

// AppName is the identity reported by the health endpoint.
const AppName = "RootSource AI"

// Config holds server configuration.
type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	StaticDir    string // directory with the SPA frontend; optional
}

// Chatter answers one chat message. Satisfied by *orchestrator.Orchestrator.
type Chatter interface {
	Chat(ctx context.Context, sessionID, message string) (*orchestrator.ChatResponse, error)
}

// Server is the RootSource HTTP frontend.
type Server struct {
	cfg        Config
	chatter    Chatter
	detector   geo.Detector
	router     chi.Router
	httpServer *http.Server
}

// New creates a server around the chat pipeline and geolocation detector.
func New(cfg Config, chatter Chatter, detector geo.Detector) *Server {
	s := &Server{
		cfg:      cfg,
		chatter:  chatter,
		detector: detector,
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	// CORS
	origins := s.cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Session-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)
	r.Post("/chat", s.handleChat)
	r.Get("/ws", s.handleWebSocket)

	r.Get("/api/location/detect", s.handleLocationDetect)
	r.Post("/api/location/set", s.handleLocationSet)

	r.Get("/", s.handleIndex)
	if s.cfg.StaticDir != "" {
		if info, err := os.Stat(s.cfg.StaticDir); err == nil && info.IsDir() {
			fs := http.StripPrefix("/assets/", http.FileServer(http.Dir(s.cfg.StaticDir)))
			r.Handle("/assets/*", fs)
		}
	}

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.cfg.StaticDir != "" {
		index := filepath.Join(s.cfg.StaticDir, "index.html")
		if _, err := os.Stat(index); err == nil {
			http.ServeFile(w, r, index)
			return
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte("<h1>" + AppName + "</h1><p>index.html not found.</p>"))
}

// Start begins listening on the configured host and port.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      150 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("rootsource server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

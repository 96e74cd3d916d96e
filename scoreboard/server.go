// Package scoreboard exposes read-only JSON endpoints over the running
// session: best score, recent games, aggregate stats and the live board.
package scoreboard

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"classic-snake/session"
	"classic-snake/stats"
	"classic-snake/store"
)

const (
	defaultGamesLimit = 20
	maxGamesLimit     = 500
)

// Source is the part of a session the server reads. Every method must be
// safe to call from HTTP goroutines.
type Source interface {
	Live() session.Live
	Stats() stats.Summary
	History(limit int) ([]store.Record, error)
	Game(id string) (*store.Record, error)
	BestScore() (int, error)
}

type Server struct {
	source    Source
	logger    *log.Logger
	startTime time.Time
}

func NewServer(source Source, logger *log.Logger) *Server {
	return &Server{
		source:    source,
		logger:    logger,
		startTime: time.Now(),
	}
}

// Routes sets up the HTTP routes
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))
	r.Use(s.requestLogger)

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/best", s.handleBest)
		r.Get("/games", s.handleGames)
		r.Get("/games/{id}", s.handleGame)
		r.Get("/stats", s.handleStats)
		r.Get("/live", s.handleLive)
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Printf("%s %s %d %s", r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}

type healthResponse struct {
	Status    string `json:"status"`
	SessionID string `json:"sessionId"`
	Uptime    string `json:"uptime"`
	RequestID string `json:"requestId,omitempty"`
}

type bestResponse struct {
	BestScore int `json:"bestScore"`
}

type gamesResponse struct {
	Games []store.Record `json:"games"`
	Count int            `json:"count"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		SessionID: s.source.Live().SessionID,
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		RequestID: middleware.GetReqID(r.Context()),
	})
}

func (s *Server) handleBest(w http.ResponseWriter, r *http.Request) {
	best, err := s.source.BestScore()
	if err != nil {
		s.logger.Printf("best score: %v", err)
		s.writeError(w, http.StatusInternalServerError, "failed to load best score")
		return
	}
	// The in-memory best can be ahead of the store when a write failed.
	if live := s.source.Live().Game.BestScore; live > best {
		best = live
	}
	s.writeJSON(w, http.StatusOK, bestResponse{BestScore: best})
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	limit := defaultGamesLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxGamesLimit)
	}

	games, err := s.source.History(limit)
	if err != nil {
		s.logger.Printf("history: %v", err)
		s.writeError(w, http.StatusInternalServerError, "failed to load games")
		return
	}
	s.writeJSON(w, http.StatusOK, gamesResponse{Games: games, Count: len(games)})
}

func (s *Server) handleGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	game, err := s.source.Game(id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "game not found")
		return
	}
	if err != nil {
		s.logger.Printf("game %s: %v", id, err)
		s.writeError(w, http.StatusInternalServerError, "failed to load game")
		return
	}
	s.writeJSON(w, http.StatusOK, game)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.source.Stats())
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.source.Live())
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Printf("encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}

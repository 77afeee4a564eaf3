package feed

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/vovakirdan/space-drop/internal/storage"
)

// maxRunsLimit caps the number of runs a single request may ask for.
const maxRunsLimit = 100

// RunStore is the read side of the run history.
type RunStore interface {
	TopRuns(mode string, limit int) ([]storage.RunRecord, error)
	RunByID(id string) (*storage.RunRecord, error)
	Stats(mode string) (*storage.Stats, error)
	AllStats() (map[string]*storage.Stats, error)
}

// Server exposes the event feed and the run history over HTTP.
type Server struct {
	hub    *Hub
	store  RunStore
	router *mux.Router
	logger *log.Logger
}

// NewServer creates a server. store may be nil, in which case the history
// endpoints answer 503.
func NewServer(hub *Hub, store RunStore, logger *log.Logger) *Server {
	s := &Server{
		hub:    hub,
		store:  store,
		router: mux.NewRouter(),
		logger: logger,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/runs", s.handleListRuns).Methods("GET")
	api.HandleFunc("/runs/{id}", s.handleGetRun).Methods("GET")
	api.HandleFunc("/stats", s.handleAllStats).Methods("GET")
	api.HandleFunc("/stats/{mode}", s.handleStats).Methods("GET")

	s.router.HandleFunc("/ws", s.handleWebSocket)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// storeReady writes 503 and returns false when no store is configured.
func (s *Server) storeReady(w http.ResponseWriter) bool {
	if s.store == nil {
		respondError(w, http.StatusServiceUnavailable, "run history is disabled")
		return false
	}
	return true
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if !s.storeReady(w) {
		return
	}

	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = "normal"
	}
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxRunsLimit)
	}

	runs, err := s.store.TopRuns(mode, limit)
	if err != nil {
		s.logger.Error("list runs failed", "mode", mode, "error", err)
		respondError(w, http.StatusInternalServerError, "cannot load runs")
		return
	}
	if runs == nil {
		runs = []storage.RunRecord{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"mode": mode, "runs": runs})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if !s.storeReady(w) {
		return
	}

	id := mux.Vars(r)["id"]
	run, err := s.store.RunByID(id)
	if err != nil {
		s.logger.Error("get run failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "cannot load run")
		return
	}
	if run == nil {
		respondError(w, http.StatusNotFound, "run not found")
		return
	}
	respondJSON(w, http.StatusOK, run)
}

func (s *Server) handleAllStats(w http.ResponseWriter, r *http.Request) {
	if !s.storeReady(w) {
		return
	}

	stats, err := s.store.AllStats()
	if err != nil {
		s.logger.Error("all stats failed", "error", err)
		respondError(w, http.StatusInternalServerError, "cannot load stats")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if !s.storeReady(w) {
		return
	}

	mode := mux.Vars(r)["mode"]
	stats, err := s.store.Stats(mode)
	if err != nil {
		s.logger.Error("stats failed", "mode", mode, "error", err)
		respondError(w, http.StatusInternalServerError, "cannot load stats")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// handleWebSocket subscribes to one stream with ?run=<id>, or to all streams.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.hub.ServeWS(w, r, r.URL.Query().Get("run"))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"clients": s.hub.ClientCount(),
	})
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/kilianp07/queuesim/core/dispatch"
	"github.com/kilianp07/queuesim/core/logger"
)

// Engine is the read-and-control surface the API exposes. The simulation
// engine implements it; tests substitute a fake.
type Engine interface {
	Workers() []dispatch.WorkerView
	QueueItems() []dispatch.WorkItemView
	HistoryItems() []dispatch.WorkItemView
	Metrics() dispatch.MetricsView
	SetPolicy(name string) (dispatch.Policy, error)
}

// Server exposes the simulation state as JSON and serves the dashboard.
// All reads are point-in-time snapshots; the only mutation is the policy
// switch.
type Server struct {
	engine Engine
	log    logger.Logger
	mux    *http.ServeMux
}

// NewServer builds the HTTP handler for the given engine.
func NewServer(engine Engine, log logger.Logger) *Server {
	s := &Server{engine: engine, log: log, mux: http.NewServeMux()}
	s.mux.HandleFunc("/", s.handleDashboard)
	s.mux.HandleFunc("/api/workers", s.handleWorkers)
	s.mux.HandleFunc("/api/queue", s.handleQueue)
	s.mux.HandleFunc("/api/history", s.handleHistory)
	s.mux.HandleFunc("/api/metrics", s.handleMetrics)
	s.mux.HandleFunc("/api/policy/", s.handleSetPolicy)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleWorkers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeJSON(w, http.StatusOK, s.engine.Workers())
}

func (s *Server) handleQueue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeJSON(w, http.StatusOK, s.engine.QueueItems())
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeJSON(w, http.StatusOK, s.engine.HistoryItems())
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeJSON(w, http.StatusOK, s.engine.Metrics())
}

type policyResponse struct {
	ActivePolicy string `json:"active_policy"`
	DisplayName  string `json:"display_name"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleSetPolicy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/api/policy/")
	pol, err := s.engine.SetPolicy(name)
	if err != nil {
		if errors.Is(err, dispatch.ErrUnknownPolicy) {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, policyResponse{ActivePolicy: pol.Name(), DisplayName: pol.DisplayName()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Errorf("encode response: %v", err)
	}
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/harbormaster/fleet/fleet/registry"
	"github.com/harbormaster/fleet/fleet/service"
	"github.com/harbormaster/fleet/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.ShipService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server
func NewServer(shipService service.ShipService, hub *websocket.Hub) *Server {
	s := &Server{
		service: shipService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.Use(loggingMiddleware)

	// Ship collection
	s.router.HandleFunc("/ships", s.handleListShips).Methods("GET")
	s.router.HandleFunc("/ships", s.handleCreateShip).Methods("POST")

	// Single ship
	s.router.HandleFunc("/ships/{id}", s.handleGetShip).Methods("GET")
	s.router.HandleFunc("/ships/{id}", s.handleUpdateShip).Methods("PUT")
	s.router.HandleFunc("/ships/{id}", s.handleDeleteShip).Methods("DELETE")

	// Field-level actions
	s.router.HandleFunc("/ships/{id}/move", s.handleMoveShip).Methods("POST")
	s.router.HandleFunc("/ships/{id}/destination", s.handleSetDestination).Methods("POST")
	s.router.HandleFunc("/ships/{id}/speed", s.handleSetSpeed).Methods("POST")

	// Service
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// loggingMiddleware logs every request before it is dispatched.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Info("incoming request")
		next.ServeHTTP(w, r)
	})
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service-layer failures to HTTP status codes.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, registry.ErrShipNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// broadcast publishes a fleet event when a hub is attached.
func (s *Server) broadcast(shipID, event string, data interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastEvent(shipID, event, data)
}

// Ship Handlers

func (s *Server) handleListShips(w http.ResponseWriter, r *http.Request) {
	ships, err := s.service.ListShips(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ships)
}

func (s *Server) handleGetShip(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	sh, err := s.service.GetShip(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sh)
}

func (s *Server) handleCreateShip(w http.ResponseWriter, r *http.Request) {
	var req service.CreateShipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	sh, err := s.service.CreateShip(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.broadcast(sh.ID, "ship_created", sh)
	respondJSON(w, http.StatusCreated, sh)
}

func (s *Server) handleUpdateShip(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req service.UpdateShipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	sh, err := s.service.UpdateShip(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.broadcast(sh.ID, "ship_updated", sh)
	respondJSON(w, http.StatusOK, sh)
}

func (s *Server) handleDeleteShip(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := s.service.DeleteShip(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	s.broadcast(id, "ship_deleted", map[string]string{"id": id})
	respondJSON(w, http.StatusOK, map[string]string{"message": "Ship deleted successfully"})
}

// coordinatesRequest is the body of move and destination actions. Pointers
// distinguish a missing coordinate from an explicit zero.
type coordinatesRequest struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

func (s *Server) handleMoveShip(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req coordinatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.X == nil || req.Y == nil {
		respondError(w, http.StatusBadRequest, "missing x or y coordinates")
		return
	}

	sh, err := s.service.MoveShip(r.Context(), id, *req.X, *req.Y)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.broadcast(sh.ID, "ship_moved", sh)
	respondJSON(w, http.StatusOK, sh)
}

func (s *Server) handleSetDestination(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req coordinatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.X == nil || req.Y == nil {
		respondError(w, http.StatusBadRequest, "missing x or y coordinates")
		return
	}

	sh, err := s.service.SetDestination(r.Context(), id, *req.X, *req.Y)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.broadcast(sh.ID, "destination_changed", sh)
	respondJSON(w, http.StatusOK, sh)
}

func (s *Server) handleSetSpeed(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		Speed *float64 `json:"speed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Speed == nil {
		respondError(w, http.StatusBadRequest, "missing required field: speed")
		return
	}

	sh, err := s.service.SetSpeed(r.Context(), id, *req.Speed)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.broadcast(sh.ID, "speed_changed", sh)
	respondJSON(w, http.StatusOK, sh)
}

// Service Handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health, err := s.service.Health(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, health)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		respondError(w, http.StatusServiceUnavailable, "event feed not available")
		return
	}

	shipID := r.URL.Query().Get("ship")
	s.hub.ServeWS(w, r, shipID)
}

// Package api exposes the monitor registry over HTTP for UI collaborators.
// It is a thin layer: every mutation is delegated to the monitor service and
// rendered back as JSON.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/bonial-oss/monitor-registry/pkg/config"
	"github.com/bonial-oss/monitor-registry/pkg/models"
	"github.com/bonial-oss/monitor-registry/pkg/monitor"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var log = logrus.WithField("component", "api")

// Server serves the registry API.
type Server struct {
	service        monitor.Service
	limiter        *rate.Limiter
	defaultCadence string
	mux            *http.ServeMux
}

// NewServer creates a new *Server serving the given monitor service.
func NewServer(service monitor.Service, options *config.Options) *Server {
	s := &Server{
		service:        service,
		limiter:        rate.NewLimiter(rate.Limit(options.MutationRate), options.MutationBurst),
		defaultCadence: options.DefaultCadence,
		mux:            http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /monitors", s.handleListMonitors)
	s.mux.HandleFunc("POST /monitors", s.handleCreateMonitor)
	s.mux.HandleFunc("DELETE /monitors/{id}", s.handleDeleteMonitor)
	s.mux.HandleFunc("GET /cadence/describe", s.handleDescribeCadence)
	s.mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

type createMonitorRequest struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Cadence string `json:"cadence"`
	Contact string `json:"contact"`
}

type describeCadenceResponse struct {
	Cadence     string `json:"cadence"`
	Description string `json:"description"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (s *Server) handleListMonitors(w http.ResponseWriter, r *http.Request) {
	monitors := s.service.ListMonitors()
	if monitors == nil {
		monitors = []*models.Monitor{}
	}

	writeJSON(w, http.StatusOK, monitors)
}

func (s *Server) handleCreateMonitor(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many mutation requests"})
		return
	}

	var req createMonitorRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if req.Cadence == "" {
		req.Cadence = s.defaultCadence
	}

	created, err := s.service.CreateMonitor(r.Context(), req.Name, req.URL, req.Cadence, req.Contact)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteMonitor(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many mutation requests"})
		return
	}

	err := s.service.DeleteMonitor(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDescribeCadence(w http.ResponseWriter, r *http.Request) {
	cadence := r.URL.Query().Get("cadence")
	if cadence == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "cadence query parameter is required"})
		return
	}

	description, err := s.service.DescribeCadence(cadence)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, describeCadenceResponse{
		Cadence:     cadence,
		Description: description,
	})
}

// writeServiceError maps monitor service errors onto HTTP status codes:
// rejected input is the caller's fault, a failed remote sync is a bad
// gateway, everything else is internal.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: validationErr.Error(),
			Field: validationErr.FieldName,
		})
		return
	}

	var syncErr *monitor.RemoteSyncError
	if errors.As(err, &syncErr) {
		log.WithError(syncErr).WithField("operation", syncErr.Op).Error("remote sync failed")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "remote store did not confirm the operation"})
		return
	}

	log.WithError(err).Error("internal error")
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		log.WithError(err).Error("failed to encode response")
	}
}

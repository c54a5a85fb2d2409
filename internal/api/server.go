package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"airbus_twin/internal/models"
	"airbus_twin/internal/scoring"
	"airbus_twin/internal/validation"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// AirportCatalogue reads the stored diversion airports
type AirportCatalogue interface {
	List() ([]models.DiversionCandidate, error)
	Get(icao string) (models.DiversionCandidate, bool, error)
}

// Reloader refreshes the spec table from storage
type Reloader interface {
	Run(ctx context.Context) error
}

type Server struct {
	engine   *scoring.Engine
	airports AirportCatalogue
	reloader Reloader
}

// New constructs the HTTP router wired to the scoring engine
func New(engine *scoring.Engine, airports AirportCatalogue, reloader Reloader) http.Handler {
	s := &Server{engine: engine, airports: airports, reloader: reloader}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/aircraft", s.handleListAircraft)
	r.Get("/aircraft/{type}", s.handleGetAircraft)
	r.Post("/aircraft/reload", s.handleReload)
	r.Get("/airports", s.handleListAirports)
	r.Get("/airports/{icao}", s.handleGetAirport)
	r.Post("/compatibility", s.handleCompatibility)
	r.Post("/fleet/optimize", s.handleOptimizeFleet)
	r.Post("/diversions/rank", s.handleRankDiversions)

	return r
}

func (s *Server) handleListAircraft(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Table().Specs())
}

func (s *Server) handleGetAircraft(w http.ResponseWriter, r *http.Request) {
	spec, err := s.engine.Table().Lookup(models.AircraftType(chi.URLParam(r, "type")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, spec)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.reloader.Run(r.Context()); err != nil {
		slog.Error("Manual spec reload failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "reload failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"aircraft_types": s.engine.Table().Len()})
}

func (s *Server) handleListAirports(w http.ResponseWriter, r *http.Request) {
	airports, err := s.airports.List()
	if err != nil {
		writeError(w, err)
		return
	}
	if airports == nil {
		airports = []models.DiversionCandidate{}
	}
	writeJSON(w, http.StatusOK, airports)
}

func (s *Server) handleGetAirport(w http.ResponseWriter, r *http.Request) {
	icao := chi.URLParam(r, "icao")
	airport, found, err := s.airports.Get(icao)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeJSONError(w, http.StatusNotFound, "unknown airport: "+icao)
		return
	}
	writeJSON(w, http.StatusOK, airport)
}

type compatibilityRequest struct {
	AircraftType models.AircraftType       `json:"aircraftType"`
	Airport      models.AirportConstraints `json:"airport"`
}

func (s *Server) handleCompatibility(w http.ResponseWriter, r *http.Request) {
	var req compatibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad request")
		return
	}

	result, err := s.engine.AssessAirportCompatibility(req.AircraftType, req.Airport)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type optimizeRequest struct {
	Route      models.RouteProfile   `json:"route"`
	Candidates []models.AircraftType `json:"candidates"`
}

type optimizeResponse struct {
	models.FleetRecommendation
	Candidates []models.CandidateScore `json:"candidates"`
}

func (s *Server) handleOptimizeFleet(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad request")
		return
	}

	scores, err := s.engine.ScoreFleet(req.Route, req.Candidates)
	if err != nil {
		writeError(w, err)
		return
	}

	rec, err := scoring.Recommend(scores)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, optimizeResponse{
		FleetRecommendation: rec,
		Candidates:          scores,
	})
}

type diversionRequest struct {
	AircraftType models.AircraftType `json:"aircraftType"`
	Position     models.Position     `json:"position"`
	// Omitted candidates mean the stored airport catalogue
	Candidates []models.DiversionCandidate `json:"candidates"`
}

func (s *Server) handleRankDiversions(w http.ResponseWriter, r *http.Request) {
	var req diversionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad request")
		return
	}

	candidates := req.Candidates
	if candidates == nil {
		var err error
		if candidates, err = s.airports.List(); err != nil {
			writeError(w, err)
			return
		}
	}

	rankings, err := s.engine.RankDiversions(req.AircraftType, req.Position, candidates)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rankings)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps engine errors to HTTP status codes
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, scoring.ErrUnknownAircraftType):
		writeJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, scoring.ErrNoCandidates):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case validation.IsValidationError(err):
		writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.Error("Request failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "")
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	if msg == "" {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, map[string]string{"error": msg})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

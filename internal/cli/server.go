package cli

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/skyhookui/skyhook/pkg/buildinfo"
	"github.com/skyhookui/skyhook/pkg/errors"
	"github.com/skyhookui/skyhook/pkg/scenario"
	"github.com/skyhookui/skyhook/pkg/store"
)

// server exposes the positioning engine and the scenario store over HTTP.
type server struct {
	store  store.Store
	logger *log.Logger
}

// newRouter builds the HTTP API. Routes:
//
//	GET    /healthz                   liveness and version
//	POST   /v1/solve                  solve an inline scenario
//	GET    /v1/scenarios              list stored scenarios
//	POST   /v1/scenarios              store a new scenario
//	GET    /v1/scenarios/{id}         fetch a stored scenario
//	PUT    /v1/scenarios/{id}         replace a stored scenario
//	DELETE /v1/scenarios/{id}         delete a stored scenario
//	GET    /v1/scenarios/{id}/solve   solve a stored scenario
func newRouter(s store.Store, logger *log.Logger) http.Handler {
	srv := &server{store: s, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(srv.logRequests)

	r.Get("/healthz", srv.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/solve", srv.handleSolve)
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", srv.handleList)
			r.Post("/", srv.handleCreate)
			r.Get("/{id}", srv.handleGet)
			r.Put("/{id}", srv.handleUpdate)
			r.Delete("/{id}", srv.handleDelete)
			r.Get("/{id}/solve", srv.handleSolveStored)
		})
	})
	return r
}

// logRequests logs each request at debug level with timing.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// =============================================================================
// Handlers
// =============================================================================

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var sc scenario.Scenario
	if err := json.NewDecoder(r.Body).Decode(&sc); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidScenario, err, "decode scenario"))
		return
	}
	res, err := scenario.Solve(&sc, scenario.Options{Logger: s.logger})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) handleList(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if recs == nil {
		recs = []*store.Record{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var sc scenario.Scenario
	if err := json.NewDecoder(r.Body).Decode(&sc); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidScenario, err, "decode scenario"))
		return
	}
	if err := sc.Validate(); err != nil {
		s.writeError(w, err)
		return
	}
	rec := &store.Record{Scenario: sc}
	if err := s.store.Put(r.Context(), rec); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var sc scenario.Scenario
	if err := json.NewDecoder(r.Body).Decode(&sc); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidScenario, err, "decode scenario"))
		return
	}
	if err := sc.Validate(); err != nil {
		s.writeError(w, err)
		return
	}
	rec.Scenario = sc
	if err := s.store.Put(r.Context(), rec); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleSolveStored(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	res, err := scenario.Solve(&rec.Scenario, scenario.Options{Logger: s.logger})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// =============================================================================
// Responses
// =============================================================================

// errorBody is the JSON shape of an error response.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto HTTP status codes.
func (s *server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := errors.ErrCodeInternal

	switch {
	case err == store.ErrNotFound:
		status = http.StatusNotFound
		code = errors.ErrCodeNotFound
	case errors.Is(err, errors.ErrCodeInvalidScenario),
		errors.Is(err, errors.ErrCodeInvalidPosition),
		errors.Is(err, errors.ErrCodeNoPositions),
		errors.Is(err, errors.ErrCodeInvalidInput):
		status = http.StatusBadRequest
		code = errors.GetCode(err)
	case errors.GetCode(err) != "":
		code = errors.GetCode(err)
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}

	var body errorBody
	body.Error.Code = string(code)
	body.Error.Message = errors.UserMessage(err)
	writeJSON(w, status, body)
}

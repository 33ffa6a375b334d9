package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cardgrid/cardgrid/pkg/combin"
	"github.com/cardgrid/cardgrid/pkg/compare"
	"github.com/cardgrid/cardgrid/pkg/errors"
	"github.com/cardgrid/cardgrid/pkg/layout"
	"github.com/cardgrid/cardgrid/pkg/store"
)

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleCount answers the cheap closed-form count. No enumeration happens, so
// this endpoint has no size cap; clients use it to probe before materializing.
func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	opts, err := selectionParams(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := opts.ValidateForEnumerate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	mode, _ := opts.ParsedMode()

	count, err := combin.Count(opts.N, opts.R, mode)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, CountResponse{
		N: opts.N, R: opts.R, Mode: string(mode), Count: count,
	})
}

func (s *Server) handleFormula(w http.ResponseWriter, r *http.Request) {
	opts, err := selectionParams(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := opts.ValidateForEnumerate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	mode, _ := opts.ParsedMode()

	count, err := combin.Count(opts.N, opts.R, mode)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	formula, err := combin.Formula(opts.N, opts.R, mode)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, CountResponse{
		N: opts.N, R: opts.R, Mode: string(mode), Count: count, Formula: formula,
	})
}

func (s *Server) handleArrangements(w http.ResponseWriter, r *http.Request) {
	opts, err := selectionParams(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.MaxArrangements = s.maxArr
	if err := opts.ValidateForEnumerate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	mode, _ := opts.ParsedMode()

	count, err := combin.Count(opts.N, opts.R, mode)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := opts.CheckCap(count); err != nil {
		s.writeError(w, r, err)
		return
	}

	set, hit, err := s.runner.EnumerateWithCacheInfo(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, ArrangementsResponse{
		N: opts.N, R: opts.R, Mode: string(mode),
		Count:        len(set),
		Arrangements: set,
		CacheHit:     hit,
	})
}

func (s *Server) handleLayoutGrid(w http.ResponseWriter, r *http.Request) {
	opts, err := selectionParams(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.MaxArrangements = s.maxArr
	if err := opts.ValidateForEnumerate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	mode, _ := opts.ParsedMode()

	count, err := combin.Count(opts.N, opts.R, mode)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := opts.CheckCap(count); err != nil {
		s.writeError(w, r, err)
		return
	}

	plan, hit, err := s.runner.PlanGridWithCacheInfo(r.Context(), count, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, PlanResponse{Plan: plan, CacheHit: hit})
}

func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	opts, err := selectionParams(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.MaxArrangements = s.maxArr
	if err := opts.ValidateForEnumerate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	// The densest mode drives the cap check.
	maxCount := 0
	for _, mode := range combin.Modes {
		count, err := combin.Count(opts.N, opts.R, mode)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		maxCount = max(maxCount, count)
	}
	if err := opts.CheckCap(maxCount); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, hit, err := s.runner.CompareWithCacheInfo(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, ComparisonResponse{Result: res, CacheHit: hit})
}

// ComparisonResponse answers /comparison.
type ComparisonResponse struct {
	*compare.Result
	CacheHit bool `json:"cache_hit"`
}

func (s *Server) handleSaveLayout(w http.ResponseWriter, r *http.Request) {
	var req SaveLayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body"))
		return
	}
	if req.Name == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "name is required"))
		return
	}

	// Round-trip through the serializer so a malformed plan is rejected with
	// INVALID_PLAN instead of being stored.
	data, err := layout.MarshalPlan(req.Plan)
	if err == nil {
		_, err = layout.UnmarshalPlan(data)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	doc := &store.Document{
		Name: req.Name,
		N:    req.N,
		R:    req.R,
		Mode: combin.Mode(req.Mode),
		Plan: req.Plan,
	}
	if err := s.store.Save(r.Context(), doc); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r.URL.Query(), "limit")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	docs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if docs == nil {
		docs = []store.Document{}
	}

	s.writeJSON(w, http.StatusOK, ListResponse{Layouts: docs})
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid layout id"))
		return
	}

	doc, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid layout id"))
		return
	}

	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ===== Response Helpers =====

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := statusForCode(code)
	if status == http.StatusInternalServerError {
		s.logger.Error("internal error", "path", r.URL.Path, "error", err)
	}
	s.writeJSON(w, status, ErrorResponse{Error: errors.UserMessage(err), Code: string(code)})
}

// statusForCode maps error codes to HTTP status codes. Validation failures
// are the client's fault (400), semantically valid but unservable requests
// are 422, and everything unexpected is 500.
func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidSize,
		errors.ErrCodeInvalidSelection,
		errors.ErrCodeInvalidMode,
		errors.ErrCodeInvalidBounds,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidPlan:
		return http.StatusBadRequest
	case errors.ErrCodeTooManyArrangements, errors.ErrCodeLayoutOverflow:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

package server

import (
	"net/url"
	"strconv"

	"github.com/cardgrid/cardgrid/pkg/combin"
	"github.com/cardgrid/cardgrid/pkg/errors"
	"github.com/cardgrid/cardgrid/pkg/layout"
	"github.com/cardgrid/cardgrid/pkg/pipeline"
	"github.com/cardgrid/cardgrid/pkg/store"
)

// ===== Responses =====

// ErrorResponse is the envelope for all error replies.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// CountResponse answers /count and /formula.
type CountResponse struct {
	N       int    `json:"n"`
	R       int    `json:"r"`
	Mode    string `json:"mode"`
	Count   int    `json:"count"`
	Formula string `json:"formula,omitempty"`
}

// ArrangementsResponse answers /arrangements.
type ArrangementsResponse struct {
	N            int                   `json:"n"`
	R            int                   `json:"r"`
	Mode         string                `json:"mode"`
	Count        int                   `json:"count"`
	Arrangements combin.ArrangementSet `json:"arrangements"`
	CacheHit     bool                  `json:"cache_hit"`
}

// PlanResponse answers /layout/grid.
type PlanResponse struct {
	Plan     layout.Plan `json:"plan"`
	CacheHit bool        `json:"cache_hit"`
}

// ListResponse answers GET /layouts.
type ListResponse struct {
	Layouts []store.Document `json:"layouts"`
}

// ===== Requests =====

// SaveLayoutRequest is the body for POST /layouts.
type SaveLayoutRequest struct {
	Name string      `json:"name"`
	N    int         `json:"n"`
	R    int         `json:"r"`
	Mode string      `json:"mode,omitempty"`
	Plan layout.Plan `json:"plan"`
}

// selectionParams parses the shared n/r/mode/width/height query parameters
// into pipeline options. Missing values fall back to pipeline defaults.
func selectionParams(q url.Values) (pipeline.Options, error) {
	opts := pipeline.Options{}

	var err error
	if opts.N, err = intParam(q, "n"); err != nil {
		return opts, err
	}
	if opts.R, err = intParam(q, "r"); err != nil {
		return opts, err
	}
	opts.Mode = q.Get("mode")
	if opts.Width, err = floatParam(q, "width"); err != nil {
		return opts, err
	}
	if opts.Height, err = floatParam(q, "height"); err != nil {
		return opts, err
	}
	opts.Refresh = q.Get("refresh") == "true"
	return opts, nil
}

func intParam(q url.Values, name string) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidFormat, "%s must be an integer, got %q", name, raw)
	}
	return v, nil
}

func floatParam(q url.Values, name string) (float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidFormat, "%s must be a number, got %q", name, raw)
	}
	return v, nil
}

// Package pipeline composes the core packages into the enumerate → layout →
// render pipeline shared by the CLI and the HTTP API.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Enumerate: build the deck and materialize the arrangements
//  2. Layout: compute a grid plan (or the four-quadrant comparison)
//  3. Render: generate output in various formats (SVG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{N: 3, R: 2, Mode: "perm"}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cardgrid/cardgrid/pkg/cache"
	"github.com/cardgrid/cardgrid/pkg/combin"
	"github.com/cardgrid/cardgrid/pkg/compare"
	"github.com/cardgrid/cardgrid/pkg/deck"
	"github.com/cardgrid/cardgrid/pkg/errors"
	"github.com/cardgrid/cardgrid/pkg/layout"
)

// ===== Default Values - Single Source of Truth for CLI and API =====

const (
	// DefaultN is the default deck size.
	DefaultN = 5

	// DefaultR is the default selection size.
	DefaultR = 2

	// DefaultWidth is the default canvas width in display units.
	DefaultWidth = 1500.0

	// DefaultHeight is the default canvas height in display units.
	DefaultHeight = 1000.0

	// DefaultMaxArrangements caps how many arrangements a single request may
	// materialize. Counting is always allowed; materializing is not. API
	// callers can raise the cap explicitly.
	DefaultMaxArrangements = 10000
)

// DefaultMode is the default selection mode.
const DefaultMode = string(combin.PermutationNoRepeat)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
}

// ===== Options - Pipeline Configuration =====

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Enumeration options
	N    int    `json:"n"`
	R    int    `json:"r"`
	Mode string `json:"mode,omitempty"`

	// Layout options
	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
	Compare bool    `json:"compare,omitempty"` // All four modes side by side

	// Render options
	Formats []string `json:"formats,omitempty"`
	Title   string   `json:"title,omitempty"`

	// MaxArrangements guards against materializing huge enumerations.
	MaxArrangements int `json:"max_arrangements,omitempty"`

	// Refresh bypasses the cache on reads (results are still written back).
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Deck is the deck the run enumerated over.
	Deck deck.Deck

	// Set holds the materialized arrangements (single-mode runs).
	Set combin.ArrangementSet

	// Count is the arrangement count (densest panel for comparisons).
	Count int

	// Formula is the closed-form count formula (single-mode runs).
	Formula string

	// Plan is the computed layout.
	Plan layout.Plan

	// Comparison holds the four-panel build for comparison runs.
	Comparison *compare.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Count         int
	EnumerateTime time.Duration
	LayoutTime    time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	EnumerateHit bool // Whether arrangements came from cache
	LayoutHit    bool // Whether the plan came from cache
	RenderHit    bool // Whether all artifacts came from cache
}

// ===== Validation Functions =====

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ===== Options Methods =====

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForEnumerate(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForEnumerate checks required fields for enumeration.
func (o *Options) ValidateForEnumerate() error {
	if o.N == 0 {
		o.N = DefaultN
	}
	if o.R == 0 {
		o.R = DefaultR
	}
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if o.MaxArrangements == 0 {
		o.MaxArrangements = DefaultMaxArrangements
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if err := errors.ValidateDeckSize(o.N); err != nil {
		return err
	}
	mode, err := combin.ParseMode(o.Mode)
	if err != nil {
		return err
	}
	return errors.ValidateSelection(o.N, o.R, mode.NoRepeat())
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ParsedMode returns the selection mode as a typed value.
func (o *Options) ParsedMode() (combin.Mode, error) {
	if o.Mode == "" {
		return combin.Mode(DefaultMode), nil
	}
	return combin.ParseMode(o.Mode)
}

// Bounds returns the canvas bounds.
func (o *Options) Bounds() layout.Bounds {
	return layout.Bounds{Width: o.Width, Height: o.Height}
}

// CheckCap rejects counts beyond the materialization guard.
func (o *Options) CheckCap(count int) error {
	if o.MaxArrangements > 0 && count > o.MaxArrangements {
		return errors.New(errors.ErrCodeTooManyArrangements,
			"%d arrangements exceed the cap of %d; raise --max or narrow the selection", count, o.MaxArrangements)
	}
	return nil
}

// ArrangementKeyOpts returns cache key options for enumeration.
func (o *Options) ArrangementKeyOpts() cache.ArrangementKeyOpts {
	return cache.ArrangementKeyOpts{N: o.N, R: o.R, Mode: o.Mode}
}

// ArtifactKeyOpts returns cache key options for a rendered artifact. The
// plan hash pins the geometry, but geometry alone is mode-blind: equal
// counts lay out identically across modes, so the selection identity and
// the title go into the key as well.
func (o *Options) ArtifactKeyOpts(planHash, format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		N:        o.N,
		R:        o.R,
		Mode:     o.Mode,
		Compare:  o.Compare,
		Title:    o.Title,
		PlanHash: planHash,
		Format:   format,
	}
}

// PlanKeyOpts returns cache key options for grid layout.
func (o *Options) PlanKeyOpts(count int) cache.PlanKeyOpts {
	return cache.PlanKeyOpts{
		Kind:     layout.KindGrid,
		Count:    count,
		CardsPer: o.R,
		Width:    o.Width,
		Height:   o.Height,
	}
}

// ComparisonKeyOpts returns cache key options for comparison builds.
func (o *Options) ComparisonKeyOpts() cache.ComparisonKeyOpts {
	return cache.ComparisonKeyOpts{N: o.N, R: o.R, Width: o.Width, Height: o.Height}
}

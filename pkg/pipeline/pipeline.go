// Package pipeline provides the core post-graph pipeline.
//
// This package implements the complete load → build → render pipeline that
// is shared by the CLI and the HTTP server. Centralizing it keeps behavior
// consistent across entry points and puts the caching logic in one place.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read posts from a source directory and parse front matter
//  2. Build: Construct the positioned timeline graph from the records
//  3. Render: Generate output in various formats (SVG, PNG, PDF, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  "./posts",
//	    Formats: []string{"svg"},
//	}
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

	"github.com/mwielgus/postgraph/pkg/cache"
	"github.com/mwielgus/postgraph/pkg/errors"
	"github.com/mwielgus/postgraph/pkg/render/svg"
	"github.com/mwielgus/postgraph/pkg/timeline"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// DefaultScale is the default raster scale for PNG output.
const DefaultScale = 2.0

// DefaultStyle is the default visual style.
const DefaultStyle = "simple"

// View constants for the two graph renderings.
const (
	// ViewTimeline is the positioned lane rendering.
	ViewTimeline = "timeline"
	// ViewNodelink is the Graphviz debug rendering.
	ViewNodelink = "nodelink"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// ValidViews is the set of supported views.
var ValidViews = map[string]bool{
	ViewTimeline: true,
	ViewNodelink: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Source string `json:"source"`

	// Build options. Zero layout values fall back to the defaults.
	Today         string  `json:"today,omitempty"` // date override, e.g. "2025-06-15"
	RowHeight     float64 `json:"row_height,omitempty"`
	PaddingTop    float64 `json:"padding_top,omitempty"`
	PaddingBottom float64 `json:"padding_bottom,omitempty"`
	MainX         float64 `json:"main_x,omitempty"`
	BranchSpacing float64 `json:"branch_spacing,omitempty"`
	LabelWidth    float64 `json:"label_width,omitempty"`
	Refresh       bool    `json:"refresh,omitempty"`

	// Render options
	View     string   `json:"view,omitempty"`
	Formats  []string `json:"formats,omitempty"`
	Style    string   `json:"style,omitempty"`
	NoLabels bool     `json:"no_labels,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // verbose node labels in the nodelink view
	Scale    float64  `json:"scale,omitempty"`    // raster scale for PNG

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the built timeline model.
	Graph timeline.Graph

	// GraphHash is the content hash of the serialized model.
	GraphHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PostCount  int
	NodeCount  int
	EdgeCount  int
	LoadTime   time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BuildHit  bool // Whether the built model came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, dot, json)", format)
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

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if _, ok := svg.StyleByName(style); !ok {
		return errors.New(errors.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: simple, dark)", style)
	}
	return nil
}

// ValidateView checks that a view is valid.
func ValidateView(view string) error {
	if !ValidViews[view] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid view: %q (must be one of: timeline, nodelink)", view)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading posts.
func (o *Options) ValidateForLoad() error {
	if o.Source == "" {
		return errors.New(errors.ErrCodeInvalidInput, "source directory is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ValidateForBuild validates the date override and applies layout defaults.
func (o *Options) ValidateForBuild() error {
	if o.Today != "" {
		if _, err := timeline.ParseDate(o.Today); err != nil {
			return err
		}
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.View == "" {
		o.View = ViewTimeline
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := ValidateView(o.View); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// IsNodelink returns true if the nodelink view is selected.
func (o *Options) IsNodelink() bool {
	return o.View == ViewNodelink
}

// Config assembles the layout configuration from the overrides, falling
// back to the defaults for zero values.
func (o *Options) Config() timeline.Config {
	cfg := timeline.DefaultConfig()
	if o.RowHeight != 0 {
		cfg.RowHeight = o.RowHeight
	}
	if o.PaddingTop != 0 {
		cfg.PaddingTop = o.PaddingTop
	}
	if o.PaddingBottom != 0 {
		cfg.PaddingBottom = o.PaddingBottom
	}
	if o.MainX != 0 {
		cfg.MainX = o.MainX
	}
	if o.BranchSpacing != 0 {
		cfg.BranchSpacing = o.BranchSpacing
	}
	if o.LabelWidth != 0 {
		cfg.LabelWidth = o.LabelWidth
	}
	return cfg
}

// TodayTime resolves the injected current date: the Today override when
// set, otherwise the wall clock. Normalized to UTC midnight so cache keys
// stay stable within a day.
func (o *Options) TodayTime() (time.Time, error) {
	t := time.Now().UTC()
	if o.Today != "" {
		parsed, err := timeline.ParseDate(o.Today)
		if err != nil {
			return time.Time{}, err
		}
		t = parsed
	}
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// ModelKeyOpts returns cache key options for the build stage.
func (o *Options) ModelKeyOpts(today time.Time) cache.ModelKeyOpts {
	cfg := o.Config()
	return cache.ModelKeyOpts{
		Today:         today.Format(time.RFC3339),
		RowHeight:     cfg.RowHeight,
		PaddingTop:    cfg.PaddingTop,
		PaddingBottom: cfg.PaddingBottom,
		MainX:         cfg.MainX,
		BranchSpacing: cfg.BranchSpacing,
		LabelWidth:    cfg.LabelWidth,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Style:    o.Style,
		View:     o.View,
		NoLabels: o.NoLabels,
		Detailed: o.Detailed,
	}
}

package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mwielgus/postgraph/pkg/cache"
	"github.com/mwielgus/postgraph/pkg/errors"
	"github.com/mwielgus/postgraph/pkg/timeline"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"dot", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		style   string
		wantErr bool
	}{
		{"simple", false},
		{"dark", false},
		{"", false}, // empty means default
		{"invalid", true},
	}

	for _, tt := range tests {
		err := ValidateStyle(tt.style)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStyle(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
		}
	}
}

func TestValidateView(t *testing.T) {
	tests := []struct {
		view    string
		wantErr bool
	}{
		{"timeline", false},
		{"nodelink", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateView(tt.view)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateView(%q) error = %v, wantErr %v", tt.view, err, tt.wantErr)
		}
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if opts.View != ViewTimeline {
		t.Errorf("View should be %s, got %s", ViewTimeline, opts.View)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Style != DefaultStyle {
		t.Errorf("Style should be %s, got %s", DefaultStyle, opts.Style)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale should be %f, got %f", DefaultScale, opts.Scale)
	}
}

func TestOptionsValidate(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("Missing source should fail")
	}

	opts = Options{Source: "./posts", Today: "not-a-date"}
	if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidDate) {
		t.Errorf("Bad today override should fail with INVALID_DATE, got %v", err)
	}

	opts = Options{Source: "./posts"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("Valid options should pass: %v", err)
	}
}

func TestOptionsConfig(t *testing.T) {
	opts := Options{}
	if got, want := opts.Config(), timeline.DefaultConfig(); got != want {
		t.Errorf("zero options should yield the default config, got %+v", got)
	}

	opts = Options{RowHeight: 80, MainX: 500}
	cfg := opts.Config()
	if cfg.RowHeight != 80 || cfg.MainX != 500 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.PaddingTop != timeline.DefaultConfig().PaddingTop {
		t.Error("unset fields should keep their defaults")
	}
}

func TestOptionsTodayTime(t *testing.T) {
	opts := Options{Today: "2025-06-15"}
	got, err := opts.TodayTime()
	if err != nil {
		t.Fatalf("TodayTime error: %v", err)
	}
	want := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("TodayTime = %v, want %v", got, want)
	}

	// Timestamps are normalized to midnight.
	opts = Options{Today: "2025-06-15T18:30:00Z"}
	got, err = opts.TodayTime()
	if err != nil {
		t.Fatalf("TodayTime error: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("TodayTime should normalize to midnight, got %v", got)
	}
}

func TestOptionsIsNodelink(t *testing.T) {
	opts := Options{}
	if opts.IsNodelink() {
		t.Error("Empty view should not be nodelink")
	}
	opts.View = ViewNodelink
	if !opts.IsNodelink() {
		t.Error("nodelink view should be nodelink")
	}
}

// writePosts creates a small post directory fixture.
func writePosts(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	posts := map[string]string{
		"hello.md": `---
title: Hello
date: 2024-11-15
---
Body.
`,
		"release.md": `---
title: Release
date: 2024-12-20
tags: [devlog]
---
Body.
`,
	}
	for name, content := range posts {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func testOptions(dir string) Options {
	return Options{
		Source:  dir,
		Today:   "2025-06-15",
		Formats: []string{FormatSVG, FormatJSON, FormatDOT},
	}
}

func TestRunnerExecute(t *testing.T) {
	dir := writePosts(t)
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), testOptions(dir))
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if result.Stats.PostCount != 2 {
		t.Errorf("PostCount = %d, want 2", result.Stats.PostCount)
	}
	// 2 commits, 1 merge, 1 separator, 1 today marker
	if result.Stats.NodeCount != 5 {
		t.Errorf("NodeCount = %d, want 5", result.Stats.NodeCount)
	}
	if result.Stats.EdgeCount != 1 {
		t.Errorf("EdgeCount = %d, want 1", result.Stats.EdgeCount)
	}
	if result.GraphHash == "" {
		t.Error("GraphHash should be set")
	}

	for _, format := range []string{FormatSVG, FormatJSON, FormatDOT} {
		if len(result.Artifacts[format]) == 0 {
			t.Errorf("missing %s artifact", format)
		}
	}
	if !strings.HasPrefix(string(result.Artifacts[FormatSVG]), "<svg") {
		t.Error("svg artifact should be an SVG document")
	}
	if !strings.HasPrefix(string(result.Artifacts[FormatDOT]), "digraph") {
		t.Error("dot artifact should be DOT source")
	}
}

func TestRunnerExecuteCaching(t *testing.T) {
	dir := writePosts(t)
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	first, err := runner.Execute(context.Background(), testOptions(dir))
	if err != nil {
		t.Fatalf("first Execute error: %v", err)
	}
	if first.CacheInfo.BuildHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}

	second, err := runner.Execute(context.Background(), testOptions(dir))
	if err != nil {
		t.Fatalf("second Execute error: %v", err)
	}
	if !second.CacheInfo.BuildHit {
		t.Error("second run should hit the build cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the render cache")
	}
	if string(first.Artifacts[FormatSVG]) != string(second.Artifacts[FormatSVG]) {
		t.Error("cached artifact should match the rendered one")
	}

	// Refresh bypasses the build cache.
	opts := testOptions(dir)
	opts.Refresh = true
	third, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("refresh Execute error: %v", err)
	}
	if third.CacheInfo.BuildHit {
		t.Error("refresh run should rebuild the model")
	}
}

func TestRunnerExecuteBadSource(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	opts := testOptions(filepath.Join(t.TempDir(), "missing"))
	if _, err := runner.Execute(context.Background(), opts); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing source should fail with FILE_NOT_FOUND, got %v", err)
	}
}

func TestRunnerBuildDeterministic(t *testing.T) {
	records := []timeline.Record{
		{Slug: "a", Title: "A", Date: "2024-12-20", Tags: []string{"devlog"}},
		{Slug: "b", Title: "B", Date: "2024-11-15"},
	}
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	opts := Options{Source: ".", Today: "2025-06-15"}
	g1, err := runner.Build(context.Background(), records, opts)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	g2, err := runner.Build(context.Background(), records, opts)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if len(g1.Nodes) != len(g2.Nodes) || len(g1.Edges) != len(g2.Edges) {
		t.Error("Build should be deterministic")
	}
}

func TestRenderUnsupportedStyle(t *testing.T) {
	g, err := timeline.Build(nil, time.Now(), timeline.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Style: "neon", Formats: []string{FormatSVG}}
	opts.View = ViewTimeline
	if _, err := Render(g, opts); !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("bad style should fail with INVALID_STYLE, got %v", err)
	}
}

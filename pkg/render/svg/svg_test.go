package svg

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mwielgus/postgraph/pkg/timeline"
)

func testGraph(t *testing.T) (timeline.Graph, timeline.Config) {
	t.Helper()
	cfg := timeline.DefaultConfig()
	records := []timeline.Record{
		{Slug: "release-notes", Title: "Release notes", Date: "2024-12-20", Tags: []string{"devlog"}},
		{Slug: "hello-world", Title: "Hello <world>", Date: "2024-11-15"},
		{Slug: "first-post", Title: "First post", Date: "2023-11-01"},
	}
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	g, err := timeline.Build(records, today, cfg)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	return g, cfg
}

func TestRenderIsValidSVG(t *testing.T) {
	g, cfg := testGraph(t)
	out := string(Render(g, cfg))

	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Errorf("output should start with an svg element, got: %.80s", out)
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("output should end with closing svg tag")
	}
}

func TestRenderContainsAllNodes(t *testing.T) {
	g, cfg := testGraph(t)
	out := string(Render(g, cfg))

	for _, n := range g.Nodes {
		switch n.Kind() {
		case timeline.NodeCommit, timeline.NodeMerge, timeline.NodeSeparator, timeline.NodeToday:
			if !strings.Contains(out, `id="`+n.NodeID()+`"`) {
				t.Errorf("output missing node %s", n.NodeID())
			}
		}
	}
	for _, e := range g.Edges {
		if !strings.Contains(out, `id="`+e.ID+`"`) {
			t.Errorf("output missing edge %s", e.ID)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	g, cfg := testGraph(t)
	a := Render(g, cfg, WithStyle(Dark{}))
	b := Render(g, cfg, WithStyle(Dark{}))
	if !bytes.Equal(a, b) {
		t.Error("Render should be deterministic")
	}
}

func TestRenderEscapesText(t *testing.T) {
	g, cfg := testGraph(t)
	out := string(Render(g, cfg))

	if strings.Contains(out, "Hello <world>") {
		t.Error("commit titles should be XML-escaped")
	}
	if !strings.Contains(out, "Hello &lt;world&gt;") {
		t.Error("escaped commit title missing from output")
	}
}

func TestRenderLabels(t *testing.T) {
	g, cfg := testGraph(t)

	withLabels := string(Render(g, cfg))
	if !strings.Contains(withLabels, `class="commit-title"`) {
		t.Error("labels should be rendered by default")
	}
	if !strings.Contains(withLabels, `class="lane-label"`) {
		t.Error("lane labels should be rendered by default")
	}
	if !strings.Contains(withLabels, ">devlog</text>") {
		t.Error("lane label should carry the tag name")
	}

	bare := string(Render(g, cfg, WithoutLabels()))
	if strings.Contains(bare, `class="commit-title"`) {
		t.Error("WithoutLabels should suppress commit titles")
	}
}

func TestRenderSeparatorStyles(t *testing.T) {
	g, cfg := testGraph(t)
	out := string(Render(g, cfg))

	// The fixture spans a month change (Dec->Nov 2024) and a year change
	// (2024->2023), so both separator weights must appear.
	if !strings.Contains(out, `stroke-dasharray="4 4"`) {
		t.Error("month separator dash pattern missing")
	}
	if !strings.Contains(out, `stroke-dasharray="8 4"`) {
		t.Error("year separator dash pattern missing")
	}
}

func TestRenderBackgroundPerStyle(t *testing.T) {
	g, cfg := testGraph(t)

	light := string(Render(g, cfg, WithStyle(Simple{})))
	if !strings.Contains(light, `fill="#ffffff"`) {
		t.Error("simple style should use a white background")
	}

	dark := string(Render(g, cfg, WithStyle(Dark{})))
	if !strings.Contains(dark, `fill="#0d1117"`) {
		t.Error("dark style should use the dark background")
	}
}

func TestRenderEmptyGraph(t *testing.T) {
	cfg := timeline.DefaultConfig()
	g, err := timeline.Build(nil, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), cfg)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	out := string(Render(g, cfg))
	if !strings.HasPrefix(out, "<svg") || !strings.HasSuffix(out, "</svg>\n") {
		t.Error("empty graph should still produce a well-formed document")
	}
	if strings.Contains(out, `class="commit"`) {
		t.Error("empty graph should render no commits")
	}
}

func TestStyleByName(t *testing.T) {
	tests := []struct {
		name   string
		wantOK bool
		want   string
	}{
		{"", true, "simple"},
		{"simple", true, "simple"},
		{"dark", true, "dark"},
		{"neon", false, ""},
	}
	for _, tt := range tests {
		s, ok := StyleByName(tt.name)
		if ok != tt.wantOK {
			t.Errorf("StyleByName(%q) ok = %v, want %v", tt.name, ok, tt.wantOK)
			continue
		}
		if ok && s.Name() != tt.want {
			t.Errorf("StyleByName(%q).Name() = %q, want %q", tt.name, s.Name(), tt.want)
		}
	}
}

func TestConnectorPath(t *testing.T) {
	path := connectorPath(Connector{X1: 100, Y1: 48, X2: 620, Y2: 48})
	if !strings.HasPrefix(path, "M 100.00 48.00") {
		t.Errorf("path should start at the commit, got: %s", path)
	}
	if !strings.Contains(path, "C ") {
		t.Errorf("path should be a cubic curve, got: %s", path)
	}
	if !strings.HasSuffix(path, "620.00 48.00") {
		t.Errorf("path should end at the merge dot, got: %s", path)
	}
}

func TestEscapeXML(t *testing.T) {
	got := EscapeXML(`a<b>&"c"`)
	for _, raw := range []string{"<", ">"} {
		if strings.Contains(got, raw) {
			t.Errorf("EscapeXML left %q unescaped: %s", raw, got)
		}
	}
	if !strings.Contains(got, "&lt;") || !strings.Contains(got, "&amp;") {
		t.Errorf("EscapeXML output unexpected: %s", got)
	}
}

package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mwielgus/postgraph/pkg/timeline"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a timeline graph to indented JSON bytes.
func MarshalGraph(m timeline.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(m, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes a timeline graph as JSON to an io.Writer.
func WriteGraph(m timeline.Graph, w io.Writer) error {
	return writeGraphTo(m, w)
}

// WriteGraphFile writes a timeline graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(m timeline.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeGraphTo(m, f)
}

// ReadGraph decodes a JSON graph from an io.Reader into a timeline graph.
func ReadGraph(r io.Reader) (timeline.Graph, error) {
	return readGraphFrom(r)
}

// ReadGraphFile reads a JSON file and returns the decoded timeline graph.
func ReadGraphFile(path string) (timeline.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return timeline.Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readGraphFrom(f)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeGraphTo(m timeline.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromModel(m)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readGraphFrom(r io.Reader) (timeline.Graph, error) {
	var data Graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return timeline.Graph{}, fmt.Errorf("decode: %w", err)
	}
	return ToModel(data)
}

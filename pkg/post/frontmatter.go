package post

import (
	"bytes"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/mwielgus/postgraph/pkg/errors"
	"github.com/mwielgus/postgraph/pkg/timeline"
)

// Front matter fence markers.
var (
	yamlFence = []byte("---")
	tomlFence = []byte("+++")
)

// frontMatter is the subset of post metadata this tool reads.
type frontMatter struct {
	Title       string   `yaml:"title" toml:"title"`
	Date        string   `yaml:"date" toml:"date"`
	Summary     string   `yaml:"summary" toml:"summary"`
	Description string   `yaml:"description" toml:"description"`
	Tags        []string `yaml:"tags" toml:"tags"`
	Draft       bool     `yaml:"draft" toml:"draft"`
	Slug        string   `yaml:"slug" toml:"slug"`
}

// Parse extracts a post from raw markdown content. The slug defaults to
// the given fallback (typically the filename stem) unless the front matter
// overrides it; the title falls back to the slug.
func Parse(content []byte, fallbackSlug string) (Post, error) {
	fm, err := parseFrontMatter(content)
	if err != nil {
		return Post{}, err
	}

	if strings.TrimSpace(fm.Date) == "" {
		return Post{}, errors.New(errors.ErrCodeInvalidFrontMatter, "missing date")
	}
	date, err := timeline.ParseDate(fm.Date)
	if err != nil {
		return Post{}, err
	}

	slug := fallbackSlug
	if s := strings.TrimSpace(fm.Slug); s != "" {
		slug = s
	}

	title := strings.TrimSpace(fm.Title)
	if title == "" {
		title = slug
	}

	summary := strings.TrimSpace(fm.Summary)
	if summary == "" {
		summary = strings.TrimSpace(fm.Description)
	}

	return Post{
		Slug:    slug,
		Title:   title,
		Summary: summary,
		Date:    date,
		Tags:    fm.Tags,
		Draft:   fm.Draft,
	}, nil
}

// parseFrontMatter splits off and decodes the front matter block. The
// opening fence must be the first line: "---" for YAML, "+++" for TOML.
func parseFrontMatter(content []byte) (frontMatter, error) {
	var fm frontMatter

	switch {
	case hasFence(content, yamlFence):
		block, ok := extractBlock(content, yamlFence)
		if !ok {
			return fm, errors.New(errors.ErrCodeInvalidFrontMatter, "unterminated YAML front matter")
		}
		if err := yaml.Unmarshal(block, &fm); err != nil {
			return fm, errors.Wrap(errors.ErrCodeInvalidFrontMatter, err, "decode YAML front matter")
		}
	case hasFence(content, tomlFence):
		block, ok := extractBlock(content, tomlFence)
		if !ok {
			return fm, errors.New(errors.ErrCodeInvalidFrontMatter, "unterminated TOML front matter")
		}
		if err := toml.Unmarshal(block, &fm); err != nil {
			return fm, errors.Wrap(errors.ErrCodeInvalidFrontMatter, err, "decode TOML front matter")
		}
	default:
		return fm, errors.New(errors.ErrCodeInvalidFrontMatter, "no front matter block")
	}

	return fm, nil
}

// hasFence reports whether content opens with the given fence on its own
// line.
func hasFence(content, fence []byte) bool {
	if !bytes.HasPrefix(content, fence) {
		return false
	}
	rest := content[len(fence):]
	return len(rest) == 0 || rest[0] == '\n' || (rest[0] == '\r' && len(rest) > 1 && rest[1] == '\n')
}

// extractBlock returns the bytes between the opening fence line and the
// next line consisting solely of the fence.
func extractBlock(content, fence []byte) ([]byte, bool) {
	idx := bytes.IndexByte(content, '\n')
	if idx < 0 {
		return nil, false
	}
	lines := bytes.Split(content[idx+1:], []byte("\n"))
	for i, line := range lines {
		if bytes.Equal(bytes.TrimRight(line, "\r"), fence) {
			return bytes.Join(lines[:i], []byte("\n")), true
		}
	}
	return nil, false
}

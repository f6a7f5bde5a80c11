package post

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mwielgus/postgraph/pkg/errors"
)

// markdownExts are the file extensions treated as posts.
var markdownExts = map[string]bool{
	".md":       true,
	".markdown": true,
}

// LoadDir loads every markdown post under dir and returns them sorted
// newest-first. Files whose names start with "_" are skipped. A post that
// fails to parse aborts the load with an error naming the file.
func LoadDir(dir string) ([]Post, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "no such directory: %s", dir)
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "not a directory: %s", dir)
	}

	var posts []Post
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !markdownExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		if strings.HasPrefix(d.Name(), "_") {
			return nil
		}

		p, err := LoadFile(path)
		if err != nil {
			return err
		}
		posts = append(posts, p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	SortNewestFirst(posts)
	return posts, nil
}

// LoadFile loads a single markdown post. The slug is derived from the
// filename stem unless the front matter overrides it.
func LoadFile(path string) (Post, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Post{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	p, err := Parse(content, stem)
	if err != nil {
		return Post{}, errors.Wrap(errors.GetCode(err), err, "parse %s", path)
	}
	p.Path = path
	return p, nil
}

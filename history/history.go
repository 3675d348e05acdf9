// Package history lists the slugs of posts that were already published so a
// run does not write about the same topic twice.
package history

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"slices"
	"strings"
)

// DefaultExtensions are always recognised so older posts stay in history
// after post.extension changes.
var DefaultExtensions = []string{".md", ".markdown"}

var datedName = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-(.+)$`)

// Set holds previously used identifiers.
type Set map[string]struct{}

// Read scans dir for dated post files (YYYY-MM-DD-<slug><ext>) and returns
// their slugs. exts are recognised in addition to DefaultExtensions. A missing
// directory is an empty history, not an error.
func Read(dir string, exts ...string) (Set, error) {
	set := make(Set)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return set, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history dir %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if s, ok := SlugOf(e.Name(), exts...); ok {
			set[s] = struct{}{}
		}
	}
	return set, nil
}

// SlugOf extracts <slug> from a dated post filename ending in one of exts or
// DefaultExtensions.
func SlugOf(name string, exts ...string) (string, bool) {
	for _, ext := range slices.Concat(exts, DefaultExtensions) {
		if ext == "" {
			continue
		}
		base, ok := strings.CutSuffix(name, ext)
		if !ok {
			continue
		}
		if m := datedName.FindStringSubmatch(base); m != nil {
			return m[1], true
		}
	}
	return "", false
}

func (s Set) Has(slug string) bool {
	_, ok := s[slug]
	return ok
}

// HasFold reports whether text matches an entry ignoring case.
func (s Set) HasFold(text string) bool {
	for k := range s {
		if strings.EqualFold(k, text) {
			return true
		}
	}
	return false
}

func (s Set) Len() int { return len(s) }

// Package title resolves a page's display title by matching regex rules against the
// entry file and its conventional sibling files.
package title

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"regexp"

	"git.home.luguber.info/inful/entrynav/internal/logfields"
	"git.home.luguber.info/inful/entrynav/internal/pathutil"
)

// DefaultExt is the extension of the sibling component files searched after the entry.
const DefaultExt = "vue"

// Options configures a Resolver.
type Options struct {
	Rules     []*regexp.Regexp
	MainAlias string // sibling file name searched first, e.g. "App.vue"
	Ext       string // extension of the main/index/<dir> candidates, without the dot
}

// Resolver searches candidate files for the first rule match.
type Resolver struct {
	rules     []*regexp.Regexp
	mainAlias string
	ext       string
	readFile  func(string) ([]byte, error)
	exists    func(string) bool
}

// NewResolver creates a title resolver reading from the real filesystem.
func NewResolver(opts Options) *Resolver {
	ext := opts.Ext
	if ext == "" {
		ext = DefaultExt
	}
	rules := make([]*regexp.Regexp, 0, len(opts.Rules))
	for _, r := range opts.Rules {
		if r != nil {
			rules = append(rules, r)
		}
	}
	return &Resolver{
		rules:     rules,
		mainAlias: opts.MainAlias,
		ext:       ext,
		readFile:  os.ReadFile,
		exists:    fileExists,
	}
}

// CompileRules compiles rule patterns in order.
func CompileRules(patterns []string) ([]*regexp.Regexp, error) {
	rules := make([]*regexp.Regexp, 0, len(patterns))
	for i, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("title rule %d %q: %w", i, p, err)
		}
		rules = append(rules, re)
	}
	return rules, nil
}

// Candidates returns the ordered list of files searched for entryFile: the entry itself,
// then the existing siblings among the alias, main.<ext>, index.<ext> and <dir>.<ext>.
// Paths are returned in forward-slash form.
func (r *Resolver) Candidates(entryFile string) []string {
	entryFile = pathutil.Normalize(entryFile)
	dir := path.Dir(entryFile)
	names := []string{
		r.mainAlias,
		"main." + r.ext,
		"index." + r.ext,
		path.Base(dir) + "." + r.ext,
	}

	files := []string{entryFile}
	seen := map[string]struct{}{entryFile: {}}
	for _, name := range names {
		if name == "" {
			continue
		}
		candidate := pathutil.Join(dir, name)
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}
		if r.exists(candidate) {
			files = append(files, candidate)
		}
	}
	return files
}

// Resolve returns the first capture group of the first rule that matches any candidate.
// Rules are tried in order and, for each rule, candidates in order, so a higher-priority
// rule wins even when it only matches a fallback file. Unreadable candidates are skipped.
func (r *Resolver) Resolve(entryFile string) string {
	if len(r.rules) == 0 {
		return ""
	}
	files := r.Candidates(entryFile)
	contents := make([][]byte, len(files))
	readable := make([]bool, len(files))
	for i, f := range files {
		b, err := r.readFile(f)
		if err != nil {
			slog.Warn("Skipping unreadable title candidate", logfields.File(f), logfields.Error(err))
			continue
		}
		contents[i], readable[i] = b, true
	}

	for _, rule := range r.rules {
		if rule.NumSubexp() < 1 {
			continue
		}
		for i := range files {
			if !readable[i] {
				continue
			}
			m := rule.FindSubmatch(contents[i])
			if m != nil && len(m[1]) > 0 {
				return string(m[1])
			}
		}
	}
	return ""
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Debug("Title candidate stat failed", logfields.File(p), logfields.Error(err))
		}
		return false
	}
	return !info.IsDir()
}

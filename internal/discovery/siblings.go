package discovery

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	derrors "git.home.luguber.info/inful/entrynav/internal/discovery/errors"
)

// siblingPatterns covers the entry directory and one level of component folders.
var siblingPatterns = []string{"*", "components/*", "component/*"}

const dependencyDir = "node_modules"

// ListSiblings returns the files next to entryFile plus those in its component(s)
// folders, as slash paths relative to the entry directory. Dependency directories are
// never listed; hidden files only with opts.Dot.
func ListSiblings(entryFile string, opts GlobOptions) ([]string, error) {
	dir := path.Dir(entryFile)
	fsys := os.DirFS(dir)

	seen := make(map[string]struct{})
	var out []string
	for _, pattern := range siblingPatterns {
		matches, err := doublestar.Glob(fsys, opts.pattern(pattern), opts.doublestar()...)
		if err != nil {
			return nil, fmt.Errorf("%w: %s in %s: %w", derrors.ErrSiblingsFailed, pattern, dir, err)
		}
		for _, m := range matches {
			if inDependencyDir(m) || !opts.visible(pattern, m) {
				continue
			}
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	return out, nil
}

func inDependencyDir(rel string) bool {
	for _, seg := range strings.Split(rel, "/") {
		if seg == dependencyDir {
			return true
		}
	}
	return false
}

package discovery

import (
	"strings"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"
)

// GlobOptions are the glob engine switches exposed in the configuration. The zero value
// skips hidden files and directories, matches case-sensitively and follows symlinks.
type GlobOptions struct {
	Dot             bool // Match path segments starting with "."
	CaseInsensitive bool
	NoFollow        bool // Do not traverse symlinked directories
}

func (o GlobOptions) doublestar() []doublestar.GlobOption {
	opts := []doublestar.GlobOption{doublestar.WithFilesOnly()}
	if o.NoFollow {
		opts = append(opts, doublestar.WithNoFollow())
	}
	return opts
}

// pattern adapts a user pattern to the options.
func (o GlobOptions) pattern(p string) string {
	if o.CaseInsensitive {
		return foldPattern(p)
	}
	return p
}

// visible reports whether match may be returned for pattern. Hidden segments are kept
// when Dot is set or the pattern names a hidden segment itself.
func (o GlobOptions) visible(pattern, match string) bool {
	return o.Dot || hasHiddenSegment(pattern) || !hasHiddenSegment(match)
}

// matches tests rel against an ignore pattern.
func (o GlobOptions) matches(pattern, rel string) bool {
	if o.CaseInsensitive {
		pattern, rel = strings.ToLower(pattern), strings.ToLower(rel)
	}
	ok, err := doublestar.Match(pattern, rel)
	return err == nil && ok
}

func hasHiddenSegment(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if seg != "." && seg != ".." && strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

// foldPattern turns every letter outside a character class into a class of both cases,
// so "Main.ts" becomes "[mM][aA][iI][nN].[tT][sS]". Escapes and existing classes are
// copied unchanged.
func foldPattern(p string) string {
	var b strings.Builder
	inClass := false
	escaped := false
	for _, r := range p {
		switch {
		case escaped:
			escaped = false
			b.WriteRune(r)
		case r == '\\':
			escaped = true
			b.WriteRune(r)
		case inClass:
			if r == ']' {
				inClass = false
			}
			b.WriteRune(r)
		case r == '[':
			inClass = true
			b.WriteRune(r)
		case unicode.IsLetter(r) && unicode.ToLower(r) != unicode.ToUpper(r):
			b.WriteByte('[')
			b.WriteRune(unicode.ToLower(r))
			b.WriteRune(unicode.ToUpper(r))
			b.WriteByte(']')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

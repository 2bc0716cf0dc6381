// Package pathutil provides OS-independent path canonicalization shared by discovery,
// title resolution and editor link generation.
package pathutil

import (
	"fmt"
	"path"
	"strings"
)

// PageExt is the public extension of a generated page.
const PageExt = ".html"

// Normalize converts every separator to a forward slash and collapses ".", ".." and
// duplicate separators. The result does not depend on the host operating system.
func Normalize(p string) string {
	if p == "" {
		return ""
	}
	return path.Clean(strings.ReplaceAll(p, `\`, "/"))
}

// EnsureLeadingSlash prefixes p with "/" when it does not start with one.
func EnsureLeadingSlash(p string) string {
	if strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}

// TrimPageExt strips a trailing page extension.
func TrimPageExt(p string) string {
	return strings.TrimSuffix(p, PageExt)
}

// Join joins slash-separated elements and normalizes the result.
func Join(elem ...string) string {
	parts := make([]string, len(elem))
	for i, e := range elem {
		parts[i] = strings.ReplaceAll(e, `\`, "/")
	}
	return path.Join(parts...)
}

// IsAbs reports whether p is absolute in either POSIX ("/x") or drive-letter ("C:/x") form.
func IsAbs(p string) bool {
	p = strings.ReplaceAll(p, `\`, "/")
	if strings.HasPrefix(p, "/") {
		return true
	}
	return len(p) >= 3 && p[1] == ':' && p[2] == '/' && isLetter(p[0])
}

// Rel returns target relative to base using slash semantics only. Both must be
// absolute or both relative.
func Rel(base, target string) (string, error) {
	base, target = Normalize(base), Normalize(target)
	if IsAbs(base) != IsAbs(target) {
		return "", fmt.Errorf("rel: %q and %q are not both absolute or both relative", base, target)
	}
	if base == target {
		return ".", nil
	}
	bs, ts := segments(base), segments(target)
	n := 0
	for n < len(bs) && n < len(ts) && bs[n] == ts[n] {
		n++
	}
	if n == 0 && IsAbs(base) && !strings.HasPrefix(base, "/") {
		return "", fmt.Errorf("rel: %q and %q are on different volumes", base, target)
	}
	parts := make([]string, 0, len(bs)-n+len(ts)-n)
	for range bs[n:] {
		parts = append(parts, "..")
	}
	parts = append(parts, ts[n:]...)
	if len(parts) == 0 {
		return ".", nil
	}
	return strings.Join(parts, "/"), nil
}

func segments(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" || p == "." {
		return nil
	}
	return strings.Split(p, "/")
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

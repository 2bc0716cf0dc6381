package entries

import (
	"fmt"
	"sort"

	"git.home.luguber.info/inful/entrynav/internal/foundation/normalization"
)

// Kind tags the variant held by a Shape.
type Kind int

const (
	KindNone   Kind = iota
	KindSingle      // one path
	KindList        // a sequence of paths
	KindNamed       // entry name -> path; the values are the paths
	KindKeyed       // path -> anything; the keys are the paths
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindSingle:
		return "single"
	case KindList:
		return "list"
	case KindNamed:
		return "named"
	case KindKeyed:
		return "keyed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Shape is the entry configuration declared by a host build tool.
type Shape struct {
	Kind   Kind
	Single string
	List   []string
	Named  map[string]string
	Keys   []string
}

func None() Shape                         { return Shape{Kind: KindNone} }
func Single(p string) Shape               { return Shape{Kind: KindSingle, Single: p} }
func List(paths ...string) Shape          { return Shape{Kind: KindList, List: paths} }
func Named(named map[string]string) Shape { return Shape{Kind: KindNamed, Named: named} }
func Keyed(keys ...string) Shape          { return Shape{Kind: KindKeyed, Keys: keys} }

// Paths flattens the shape into its entry paths. Mapping variants are ordered by key so
// the result does not depend on map iteration order.
func (s Shape) Paths() ([]string, error) {
	switch s.Kind {
	case KindNone:
		return nil, nil
	case KindSingle:
		if s.Single == "" {
			return nil, nil
		}
		return []string{s.Single}, nil
	case KindList:
		return append([]string(nil), s.List...), nil
	case KindNamed:
		names := make([]string, 0, len(s.Named))
		for name := range s.Named {
			names = append(names, name)
		}
		sort.Strings(names)
		out := make([]string, 0, len(names))
		for _, name := range names {
			out = append(out, s.Named[name])
		}
		return out, nil
	case KindKeyed:
		out := append([]string(nil), s.Keys...)
		sort.Strings(out)
		return out, nil
	default:
		return nil, fmt.Errorf("unknown entry shape %s", s.Kind)
	}
}

// Host names a build-tool convention for interpreting loosely typed entry values.
type Host string

const (
	HostVite    Host = "vite"
	HostWebpack Host = "webpack"
)

var hostNormalizer = normalization.NewNormalizer(map[string]Host{
	"vite":    HostVite,
	"rollup":  HostVite,
	"webpack": HostWebpack,
	"rspack":  HostWebpack,
}, HostVite)

// ParseHost classifies a configured host name.
func ParseHost(raw string) (Host, error) {
	if raw == "" {
		return HostVite, nil
	}
	return hostNormalizer.NormalizeWithError("host", raw)
}

// FromHost converts a decoded configuration value using the host's convention.
func FromHost(host Host, v any) (Shape, error) {
	if host == HostWebpack {
		return FromWebpack(v)
	}
	return FromVite(v)
}

// FromVite interprets rollupOptions.input: a string, a list, or a name -> path mapping.
func FromVite(v any) (Shape, error) {
	switch t := v.(type) {
	case map[string]any:
		named := make(map[string]string, len(t))
		for name, raw := range t {
			p, ok := raw.(string)
			if !ok {
				return Shape{}, fmt.Errorf("entry %q: expected string path, got %T", name, raw)
			}
			named[name] = p
		}
		return Named(named), nil
	case map[string]string:
		return Named(t), nil
	default:
		return fromScalarOrList(v)
	}
}

// FromWebpack interprets compiler.options.entry: a string, a list, or a mapping whose
// keys are the paths.
func FromWebpack(v any) (Shape, error) {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		return Keyed(keys...), nil
	case map[string]string:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		return Keyed(keys...), nil
	default:
		return fromScalarOrList(v)
	}
}

func fromScalarOrList(v any) (Shape, error) {
	switch t := v.(type) {
	case nil:
		return None(), nil
	case string:
		return Single(t), nil
	case []string:
		return List(t...), nil
	case []any:
		paths := make([]string, 0, len(t))
		for i, raw := range t {
			p, ok := raw.(string)
			if !ok {
				return Shape{}, fmt.Errorf("entry %d: expected string path, got %T", i, raw)
			}
			paths = append(paths, p)
		}
		return List(paths...), nil
	default:
		return Shape{}, fmt.Errorf("unsupported entry value of type %T", v)
	}
}

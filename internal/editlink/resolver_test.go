package editlink

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const testRoot = "/home/dev/demo"

func newTestResolver(scheme string) *Resolver {
	return NewResolver(Options{Scheme: scheme, Root: testRoot, ProjectName: "demo"})
}

func TestResolve_NoSchemeReturnsPathUnchanged(t *testing.T) {
	r := newTestResolver("")
	require.Equal(t, SchemeNone, r.Scheme())
	require.Equal(t, "/home/dev/demo/src/modules/foo/main.ts", r.Resolve("/home/dev/demo/src/modules/foo/main.ts"))
	require.Equal(t, `src\modules\foo`, r.Resolve(`src\modules\foo`))
}

func TestResolve_VSCode(t *testing.T) {
	tests := []struct {
		name   string
		scheme string
		path   string
		want   string
	}{
		{"absolute path", "vscode", "/home/dev/demo/src/modules/foo/main.ts", "vscode://file//home/dev/demo/src/modules/foo/main.ts"},
		{"relative path is joined with root", "vscode", "src/modules/foo", "vscode://file//home/dev/demo/src/modules/foo"},
		{"insiders", "vscode-insiders", "/home/dev/demo/src/a.vue", "vscode-insiders://file//home/dev/demo/src/a.vue"},
		{"case insensitive identifier", " VSCode ", "/x/y", "vscode://file//x/y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, newTestResolver(tt.scheme).Resolve(tt.path))
		})
	}
}

func TestResolve_VSCodeAlwaysPrefixed(t *testing.T) {
	r := newTestResolver("vscode")
	for _, p := range []string{"", ".", "/", "a", `C:\work\x.ts`, "../outside", "/home/dev/demo"} {
		require.True(t, strings.HasPrefix(r.Resolve(p), "vscode://file/"), p)
	}
}

func TestResolve_JetBrains(t *testing.T) {
	r := newTestResolver("webstorm")

	require.Equal(t, "jetbrains://webstorm/navigate/reference?project=demo", r.Resolve(testRoot))
	require.Equal(t,
		"jetbrains://webstorm/navigate/reference?project=demo&path=src/modules/foo/main.ts",
		r.Resolve("/home/dev/demo/src/modules/foo/main.ts"))
	require.Equal(t,
		"jetbrains://webstorm/navigate/reference?project=demo&path=src/modules/foo",
		r.Resolve("src/modules/foo"))
}

func TestResolve_Template(t *testing.T) {
	tests := []struct {
		name     string
		template string
		path     string
		want     string
	}{
		{"project and relative", "${projectName}:${relative}", "src/modules/foo", "demo:src/modules/foo"},
		{"absolute from relative input", "idea://open?file=${absolute}", "src/a.ts", "idea://open?file=/home/dev/demo/src/a.ts"},
		{"relative from absolute input", "${relative}", "/home/dev/demo/src/a.ts", "src/a.ts"},
		{"all occurrences", "${relative}|${relative}", "x", "x|x"},
		{"no placeholders", "subl://open", "src/a.ts", "subl://open"},
		{"verbatim case", "MyEditor://${projectName}", "x", "MyEditor://demo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestResolver(tt.template)
			require.Equal(t, SchemeTemplate, r.Scheme())
			require.Equal(t, tt.want, r.Resolve(tt.path))
		})
	}
}

func TestResolve_OutsideRootKeepsAbsoluteAsRelative(t *testing.T) {
	r := NewResolver(Options{Scheme: "${relative}", Root: "C:/work/demo", ProjectName: "demo"})
	require.Equal(t, "/tmp/x.ts", r.Resolve("/tmp/x.ts"))
}

type stubBuilder struct {
	name string
	url  string
	hit  bool
}

func (s *stubBuilder) Name() string { return s.name }

func (s *stubBuilder) Build(LinkContext) (string, bool) { return s.url, s.hit }

func TestBuilderChain_FirstMatchWins(t *testing.T) {
	chain := NewBuilderChain().
		Add(&stubBuilder{name: "miss"}).
		Add(&stubBuilder{name: "first", url: "one://", hit: true}).
		Add(&stubBuilder{name: "second", url: "two://", hit: true})

	url, ok := chain.Build(LinkContext{})
	require.True(t, ok)
	require.Equal(t, "one://", url)
}

func TestResolveWithChain_NoMatchReturnsPath(t *testing.T) {
	r := NewResolverWithChain(Options{Scheme: "vscode", Root: testRoot}, NewBuilderChain())
	require.Equal(t, "src/a.ts", r.Resolve("src/a.ts"))
}

func TestParseScheme(t *testing.T) {
	require.Equal(t, SchemeNone, ParseScheme("   "))
	require.Equal(t, SchemeVSCodeInsiders, ParseScheme("VSCODE-INSIDERS"))
	require.Equal(t, SchemeWebStorm, ParseScheme("webstorm"))
	require.Equal(t, SchemeTemplate, ParseScheme("zed://file/${absolute}"))
}

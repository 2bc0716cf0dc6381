package discovery

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFoldPattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"main.ts", "[mM][aA][iI][nN].[tT][sS]"},
		{"**/*/x.{js,ts}", "**/*/[xX].{[jJ][sS],[tT][sS]}"},
		{"[a-z]/b", "[a-z]/[bB]"},
		{`\*a`, `\*[aA]`},
		{"1_2", "1_2"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, foldPattern(tt.in), tt.in)
	}
}

func TestGlobOptions_Visible(t *testing.T) {
	var def GlobOptions
	require.True(t, def.visible("**/*/main.ts", "foo/main.ts"))
	require.False(t, def.visible("**/*/main.ts", ".cache/main.ts"))
	require.False(t, def.visible("*", ".DS_Store"))
	require.True(t, def.visible(".cache/*/main.ts", ".cache/foo/main.ts"))
	require.True(t, def.visible("../*/main.ts", "../foo/main.ts"))
	require.True(t, GlobOptions{Dot: true}.visible("*", ".DS_Store"))
}

func TestGlobOptions_Matches(t *testing.T) {
	require.False(t, GlobOptions{}.matches("**/Legacy/**", "legacy/main.ts"))
	require.True(t, GlobOptions{CaseInsensitive: true}.matches("**/Legacy/**", "legacy/main.ts"))
}

func TestDiscover_SkipsHiddenByDefault(t *testing.T) {
	_, cfg := newProject(t,
		"src/modules/foo/main.ts",
		"src/modules/foo/.DS_Store",
		"src/modules/.cache/main.ts",
	)

	snap, err := NewEngine(cfg).Discover(nil)
	require.NoError(t, err)
	require.Equal(t, []string{"/foo.html"}, entries(snap.Pages()))
	require.Equal(t, []string{"main.ts"}, snap.Pages()[0].Files)

	cfg.Glob.Dot = true
	snap, err = NewEngine(cfg).Discover(nil)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"/foo.html", "/.cache.html"}, entries(snap.Pages()))
	foo, ok := snap.Get(cfg.WorkDir + "/foo/main.ts")
	require.True(t, ok)
	require.ElementsMatch(t, []string{".DS_Store", "main.ts"}, foo.Files)
}

func TestDiscover_CaseInsensitive(t *testing.T) {
	_, cfg := newProject(t, "src/modules/foo/Main.TS", "src/modules/Legacy/main.ts")
	cfg.Ignore = []string{"legacy/**"}

	snap, err := NewEngine(cfg).Discover(nil)
	require.NoError(t, err)
	require.Equal(t, []string{"/Legacy.html"}, entries(snap.Pages()))

	cfg.Glob.CaseInsensitive = true
	snap, err = NewEngine(cfg).Discover(nil)
	require.NoError(t, err)
	require.Equal(t, []string{"/foo.html"}, entries(snap.Pages()))
}

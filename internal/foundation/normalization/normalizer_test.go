package normalization

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type editor string

const (
	editorNone  editor = ""
	editorCode  editor = "vscode"
	editorStorm editor = "webstorm"
)

func newEditorNormalizer() *Normalizer[editor] {
	return NewNormalizer(map[string]editor{
		"VSCode":   editorCode,
		"webstorm": editorStorm,
	}, editorNone)
}

func TestNormalizer_Normalize(t *testing.T) {
	n := newEditorNormalizer()

	tests := []struct {
		name  string
		input string
		want  editor
	}{
		{"exact", "vscode", editorCode},
		{"upper case", "WEBSTORM", editorStorm},
		{"padded", "  vscode ", editorCode},
		{"unknown falls back", "${absolute}", editorNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, n.Normalize(tt.input))
		})
	}
}

func TestNormalizer_Lookup(t *testing.T) {
	n := newEditorNormalizer()

	v, ok := n.Lookup("VsCode")
	require.True(t, ok)
	require.Equal(t, editorCode, v)

	_, ok = n.Lookup("idea")
	require.False(t, ok)
}

func TestNormalizer_NormalizeWithError(t *testing.T) {
	n := newEditorNormalizer()

	_, err := n.NormalizeWithError("url scheme", "idea")
	require.Error(t, err)
	require.Contains(t, err.Error(), `invalid url scheme "idea"`)
	require.Contains(t, err.Error(), "[vscode webstorm]")

	v, err := n.NormalizeWithError("url scheme", "webstorm")
	require.NoError(t, err)
	require.Equal(t, editorStorm, v)
}

func TestNormalizer_KeysIsCopy(t *testing.T) {
	n := newEditorNormalizer()
	keys := n.Keys()
	keys[0] = "mutated"
	require.Equal(t, []string{"vscode", "webstorm"}, n.Keys())
}

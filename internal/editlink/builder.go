package editlink

import (
	"strings"

	"git.home.luguber.info/inful/entrynav/internal/foundation/normalization"
)

// Scheme identifies a well-known editor URL scheme.
type Scheme string

const (
	SchemeNone           Scheme = ""
	SchemeVSCode         Scheme = "vscode"
	SchemeVSCodeInsiders Scheme = "vscode-insiders"
	SchemeWebStorm       Scheme = "webstorm"
	// SchemeTemplate marks a free-form template string.
	SchemeTemplate Scheme = "template"
)

const jetbrainsPrefix = "jetbrains://webstorm/navigate/reference?project="

var schemeNormalizer = normalization.NewNormalizer(map[string]Scheme{
	"vscode":          SchemeVSCode,
	"vscode-insiders": SchemeVSCodeInsiders,
	"webstorm":        SchemeWebStorm,
}, SchemeTemplate)

// ParseScheme classifies a configured scheme value. Unknown non-empty values are templates.
func ParseScheme(raw string) Scheme {
	if strings.TrimSpace(raw) == "" {
		return SchemeNone
	}
	return schemeNormalizer.Normalize(raw)
}

// LinkContext carries everything a builder needs for one path.
type LinkContext struct {
	Path        string // path as passed by the caller
	Absolute    string
	Relative    string
	Root        string
	ProjectName string
	Raw         string // configured scheme value, verbatim
	Scheme      Scheme
}

// SchemeBuilder produces an editor URL for a LinkContext it recognizes.
type SchemeBuilder interface {
	Build(ctx LinkContext) (string, bool)
	Name() string
}

// BuilderChain tries builders in order until one produces a URL.
type BuilderChain struct {
	builders []SchemeBuilder
}

// NewBuilderChain creates an empty chain.
func NewBuilderChain() *BuilderChain {
	return &BuilderChain{builders: make([]SchemeBuilder, 0, 4)}
}

// Add appends a builder to the chain.
func (c *BuilderChain) Add(b SchemeBuilder) *BuilderChain {
	c.builders = append(c.builders, b)
	return c
}

// Build runs the chain. The second result is false when no builder matched.
func (c *BuilderChain) Build(ctx LinkContext) (string, bool) {
	for _, b := range c.builders {
		if url, ok := b.Build(ctx); ok {
			return url, true
		}
	}
	return "", false
}

// FileSchemeBuilder serves the "<scheme>://file/<absolute>" family used by VS Code.
type FileSchemeBuilder struct {
	scheme Scheme
}

func NewVSCodeBuilder() *FileSchemeBuilder         { return &FileSchemeBuilder{scheme: SchemeVSCode} }
func NewVSCodeInsidersBuilder() *FileSchemeBuilder { return &FileSchemeBuilder{scheme: SchemeVSCodeInsiders} }

func (b *FileSchemeBuilder) Name() string { return string(b.scheme) }

func (b *FileSchemeBuilder) Build(ctx LinkContext) (string, bool) {
	if ctx.Scheme != b.scheme {
		return "", false
	}
	return string(b.scheme) + "://file/" + ctx.Absolute, true
}

// JetBrainsBuilder links into a JetBrains IDE project. The project root itself gets a
// project-level link without a path.
type JetBrainsBuilder struct{}

func NewJetBrainsBuilder() *JetBrainsBuilder { return &JetBrainsBuilder{} }

func (b *JetBrainsBuilder) Name() string { return string(SchemeWebStorm) }

func (b *JetBrainsBuilder) Build(ctx LinkContext) (string, bool) {
	if ctx.Scheme != SchemeWebStorm {
		return "", false
	}
	if ctx.Absolute == ctx.Root {
		return jetbrainsPrefix + ctx.ProjectName, true
	}
	return jetbrainsPrefix + ctx.ProjectName + "&path=" + ctx.Relative, true
}

// TemplateBuilder substitutes ${absolute}, ${relative} and ${projectName} literally.
type TemplateBuilder struct{}

func NewTemplateBuilder() *TemplateBuilder { return &TemplateBuilder{} }

func (b *TemplateBuilder) Name() string { return string(SchemeTemplate) }

func (b *TemplateBuilder) Build(ctx LinkContext) (string, bool) {
	if ctx.Scheme != SchemeTemplate {
		return "", false
	}
	return strings.NewReplacer(
		"${absolute}", ctx.Absolute,
		"${relative}", ctx.Relative,
		"${projectName}", ctx.ProjectName,
	).Replace(ctx.Raw), true
}

package render

import (
	"embed"
	"html/template"
	"io"

	ferrors "git.home.luguber.info/inful/entrynav/internal/foundation/errors"
)

//go:embed templates/index.html.tmpl
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html.tmpl"))

type fileView struct {
	Name string
	URL  template.URL
}

type pageView struct {
	Entry     string
	Title     string
	Directory string
	Active    bool
	Files     []fileView
}

// view adapts Params for html/template. Editor links use custom schemes, so they are
// marked as trusted URLs; generated colors are trusted CSS.
type view struct {
	Name        string
	Pages       []pageView
	ProjectPath template.URL
	color       func() string
}

func (v view) Color() template.CSS {
	if v.color == nil {
		return template.CSS(RandomDarkColor())
	}
	return template.CSS(v.color())
}

// Render writes the navigation page for p.
func Render(w io.Writer, p Params) error {
	v := view{
		Name:        p.Name,
		Pages:       make([]pageView, 0, len(p.Pages)),
		ProjectPath: template.URL(p.ProjectPath), //nolint:gosec // editor link built from local config
		color:       p.RandomDarkColor,
	}
	for _, pg := range p.Pages {
		files := make([]fileView, 0, len(pg.Files))
		for _, f := range pg.Files {
			files = append(files, fileView{Name: f.Name, URL: template.URL(f.URL)}) //nolint:gosec // editor link built from local config
		}
		v.Pages = append(v.Pages, pageView{
			Entry:     pg.Entry,
			Title:     pg.Title,
			Directory: pg.Directory,
			Active:    pg.Active,
			Files:     files,
		})
	}
	if err := indexTemplate.Execute(w, v); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryRender, "failed to render navigation page").Build()
	}
	return nil
}

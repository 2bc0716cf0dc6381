// Package render assembles the navigation page data and renders the index HTML.
package render

import (
	"fmt"

	"git.home.luguber.info/inful/entrynav/internal/discovery"
)

// FileLink is one sibling file with its editor URL.
type FileLink struct {
	Name string
	URL  string
}

// PageView is the template view of a discovered page.
type PageView struct {
	Entry     string
	Title     string
	Directory string
	Active    bool
	Files     []FileLink
}

// Params is everything the navigation template needs.
type Params struct {
	Name            string
	Pages           []PageView
	ProjectPath     string
	RandomDarkColor func() string
}

// Name formats the page heading: project name plus total and active counts.
func Name(project string, total, active int) string {
	return fmt.Sprintf("%s(total %d / active %d) Navigation", project, total, active)
}

// NewParams builds template parameters for snap. projectURL is the editor link of the
// project root.
func NewParams(project, projectURL string, snap *discovery.Snapshot) Params {
	if snap == nil {
		snap = discovery.Empty()
	}
	pages := snap.Pages()
	views := make([]PageView, 0, len(pages))
	for _, p := range pages {
		views = append(views, newPageView(p))
	}
	return Params{
		Name:            Name(project, snap.Len(), snap.ActiveCount()),
		Pages:           views,
		ProjectPath:     projectURL,
		RandomDarkColor: RandomDarkColor,
	}
}

func newPageView(p discovery.Page) PageView {
	files := make([]FileLink, 0, len(p.Files))
	for _, name := range p.Files {
		files = append(files, FileLink{Name: name, URL: p.FileList[name]})
	}
	return PageView{
		Entry:     p.Entry,
		Title:     p.Title,
		Directory: p.Directory,
		Active:    p.Active,
		Files:     files,
	}
}

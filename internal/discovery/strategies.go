package discovery

// PathResolver rewrites the public page path computed for an entry file.
// page is the default path under the base, relativeFile the root-relative entry file
// and absoluteFile its absolute path.
type PathResolver interface {
	ResolvePath(page, relativeFile, absoluteFile string) (string, error)
}

// TitleFormatter turns a raw title and the page's root-relative directory into the
// display title.
type TitleFormatter interface {
	FormatTitle(title, dir string) (string, error)
}

// TitleSource extracts the raw title for an entry file. An empty string means no title.
type TitleSource interface {
	Resolve(entryFile string) string
}

// LinkResolver turns an absolute file path into an editor URL.
type LinkResolver interface {
	Resolve(path string) string
}

// PathResolverFunc adapts a function to PathResolver.
type PathResolverFunc func(page, relativeFile, absoluteFile string) (string, error)

func (f PathResolverFunc) ResolvePath(page, relativeFile, absoluteFile string) (string, error) {
	return f(page, relativeFile, absoluteFile)
}

// TitleFormatterFunc adapts a function to TitleFormatter.
type TitleFormatterFunc func(title, dir string) (string, error)

func (f TitleFormatterFunc) FormatTitle(title, dir string) (string, error) { return f(title, dir) }

// DefaultPathResolver keeps the computed page path.
type DefaultPathResolver struct{}

func (DefaultPathResolver) ResolvePath(page, _, _ string) (string, error) { return page, nil }

// DefaultTitleFormatter renders "<title> - <dir>", or just the directory when there is
// no title.
type DefaultTitleFormatter struct{}

func (DefaultTitleFormatter) FormatTitle(title, dir string) (string, error) {
	if title == "" {
		return dir, nil
	}
	return title + " - " + dir, nil
}

type noTitle struct{}

func (noTitle) Resolve(string) string { return "" }

type identityLinks struct{}

func (identityLinks) Resolve(p string) string { return p }

package discovery

// Page is one discovered entry file.
type Page struct {
	Key          string            // Absolute, slash-normalized path of the entry file
	RelativePath string            // Entry file relative to the project root
	Entry        string            // Public URL path, always under the base
	Directory    string            // Absolute directory containing the entry file
	Title        string            // Display title after formatting; may be empty
	Files        []string          // Sibling file names in listing order
	FileList     map[string]string // Sibling file name -> editor URL
	Active       bool              // Part of the current build
}

func (p Page) clone() Page {
	out := p
	out.Files = append([]string(nil), p.Files...)
	out.FileList = make(map[string]string, len(p.FileList))
	for k, v := range p.FileList {
		out.FileList[k] = v
	}
	return out
}

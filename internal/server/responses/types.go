// Package responses defines the JSON payloads served by the entrynav dev server.
package responses

import "time"

// HealthResponse is the /healthz payload.
type HealthResponse struct {
	Status      string    `json:"status"`
	Version     string    `json:"version"`
	Uptime      float64   `json:"uptime"`
	ScanID      string    `json:"scan_id,omitempty"`
	ScannedAt   time.Time `json:"scanned_at,omitzero"`
	Pages       int       `json:"pages"`
	ActivePages int       `json:"active_pages"`
}

// PageResponse is one page in the JSON index.
type PageResponse struct {
	Entry     string            `json:"entry"`
	Title     string            `json:"title"`
	Directory string            `json:"directory"`
	Active    bool              `json:"active"`
	FileList  map[string]string `json:"file_list"`
}

// IndexResponse is the JSON variant of the navigation page.
type IndexResponse struct {
	Name        string         `json:"name"`
	ProjectPath string         `json:"project_path"`
	Pages       []PageResponse `json:"pages"`
}

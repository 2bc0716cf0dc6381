// Package logfields holds the canonical slog attribute names used across entrynav.
package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyScanID     = "scan_id"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyPage       = "page"
	KeyTitle      = "title"
	KeyPattern    = "pattern"
	KeyScheme     = "url_scheme"
	KeyBase       = "base"
	KeyCount      = "count"
	KeyActive     = "active"
	KeyDurationMS = "duration_ms"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyUserAgent  = "user_agent"
	KeyRemoteAddr = "remote_addr"
	KeyURL        = "url"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func ScanID(id string) slog.Attr         { return slog.String(KeyScanID, id) }
func Path(p string) slog.Attr            { return slog.String(KeyPath, p) }
func File(f string) slog.Attr            { return slog.String(KeyFile, f) }
func Page(p string) slog.Attr            { return slog.String(KeyPage, p) }
func Title(t string) slog.Attr           { return slog.String(KeyTitle, t) }
func Pattern(p string) slog.Attr         { return slog.String(KeyPattern, p) }
func Scheme(s string) slog.Attr          { return slog.String(KeyScheme, s) }
func Base(b string) slog.Attr            { return slog.String(KeyBase, b) }
func Count(n int) slog.Attr              { return slog.Int(KeyCount, n) }
func Active(a bool) slog.Attr            { return slog.Bool(KeyActive, a) }
func Duration(d time.Duration) slog.Attr { return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000) }
func Method(m string) slog.Attr          { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr          { return slog.Int(KeyStatus, code) }
func UserAgent(ua string) slog.Attr      { return slog.String(KeyUserAgent, ua) }
func RemoteAddr(a string) slog.Attr      { return slog.String(KeyRemoteAddr, a) }
func URL(u string) slog.Attr             { return slog.String(KeyURL, u) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

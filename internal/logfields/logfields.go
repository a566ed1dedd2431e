package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyVersion    = "version"
	KeyScope      = "scope"
	KeyAlias      = "alias"
	KeySection    = "section"
	KeyPath       = "path"
	KeyTemplate   = "template"
	KeyRule       = "rule"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Version(v string) slog.Attr      { return slog.String(KeyVersion, v) }
func Scope(s string) slog.Attr        { return slog.String(KeyScope, s) }
func Alias(a string) slog.Attr        { return slog.String(KeyAlias, a) }
func Section(s string) slog.Attr      { return slog.String(KeySection, s) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Template(name string) slog.Attr  { return slog.String(KeyTemplate, name) }
func Rule(r string) slog.Attr         { return slog.String(KeyRule, r) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

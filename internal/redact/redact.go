// Package redact recovers environment-specific absolute paths from the global
// options of a help dump and replaces them with stable placeholder tokens.
package redact

import (
	"strings"

	"git.home.luguber.info/inful/refgen/internal/helpinfo"
)

// Default option keys and tokens.
const (
	DefaultBuildrootKey   = "pants_workdir"
	DefaultCacheDirKey    = "local_store_dir"
	DefaultBuildrootToken = "<buildroot>"
	DefaultCacheDirToken  = "$XDG_CACHE_HOME"
)

// Keys names the options that carry the paths to redact and the tokens that replace them.
type Keys struct {
	BuildrootKey   string
	CacheDirKey    string
	BuildrootToken string
	CacheDirToken  string
}

// DefaultKeys returns the keys used by the documented tool.
func DefaultKeys() Keys {
	return Keys{
		BuildrootKey:   DefaultBuildrootKey,
		CacheDirKey:    DefaultCacheDirKey,
		BuildrootToken: DefaultBuildrootToken,
		CacheDirToken:  DefaultCacheDirToken,
	}
}

func (k Keys) withDefaults() Keys {
	d := DefaultKeys()
	if k.BuildrootKey == "" {
		k.BuildrootKey = d.BuildrootKey
	}
	if k.CacheDirKey == "" {
		k.CacheDirKey = d.CacheDirKey
	}
	if k.BuildrootToken == "" {
		k.BuildrootToken = d.BuildrootToken
	}
	if k.CacheDirToken == "" {
		k.CacheDirToken = d.CacheDirToken
	}
	return k
}

// Redactor substitutes the discovered paths. The zero value substitutes nothing.
type Redactor struct {
	Buildroot string
	CacheDir  string

	buildrootToken string
	cacheDirToken  string
}

// Discover scans options for the buildroot and cache directory keys.
//
// The buildroot is the workdir default without its last path segment; the
// cache directory is the store default without its last two segments. Missing
// keys or non-string defaults leave the corresponding path empty.
func Discover(options []helpinfo.Option, keys Keys) *Redactor {
	keys = keys.withDefaults()
	r := &Redactor{buildrootToken: keys.BuildrootToken, cacheDirToken: keys.CacheDirToken}
	for _, opt := range options {
		def, ok := opt.Default.(string)
		if !ok {
			continue
		}
		switch opt.ConfigKey {
		case keys.BuildrootKey:
			r.Buildroot = trimSegments(def, 1)
		case keys.CacheDirKey:
			r.CacheDir = trimSegments(def, 2)
		}
	}
	return r
}

// FromHelpInfo discovers paths from the global scope's advanced options.
func FromHelpInfo(info *helpinfo.HelpInfo, keys Keys) *Redactor {
	global, ok := info.Global()
	if !ok {
		return Discover(nil, keys)
	}
	return Discover(global.Advanced, keys)
}

// Apply replaces the buildroot, then the cache directory, with their tokens.
// Empty paths are never matched.
func (r *Redactor) Apply(s string) string {
	if r == nil {
		return s
	}
	if r.Buildroot != "" {
		s = strings.ReplaceAll(s, r.Buildroot, r.tokenOr(r.buildrootToken, DefaultBuildrootToken))
	}
	if r.CacheDir != "" {
		s = strings.ReplaceAll(s, r.CacheDir, r.tokenOr(r.cacheDirToken, DefaultCacheDirToken))
	}
	return s
}

// Active reports whether any substitution is configured.
func (r *Redactor) Active() bool {
	return r != nil && (r.Buildroot != "" || r.CacheDir != "")
}

func (r *Redactor) tokenOr(tok, fallback string) string {
	if tok == "" {
		return fallback
	}
	return tok
}

// trimSegments drops the last n "/"-separated segments. A path with fewer
// separators keeps what remains before the first one.
func trimSegments(p string, n int) string {
	for range n {
		i := strings.LastIndex(p, "/")
		if i < 0 {
			return p
		}
		p = p[:i]
	}
	return p
}

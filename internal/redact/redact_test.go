package redact

import (
	"path/filepath"
	"testing"

	"git.home.luguber.info/inful/refgen/internal/helpinfo"
	"github.com/stretchr/testify/require"
)

func opts(kv ...any) []helpinfo.Option {
	out := make([]helpinfo.Option, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, helpinfo.Option{ConfigKey: kv[i].(string), Default: kv[i+1]})
	}
	return out
}

func TestDiscover(t *testing.T) {
	tests := []struct {
		name      string
		options   []helpinfo.Option
		buildroot string
		cacheDir  string
	}{
		{
			name:      "both keys present",
			options:   opts("pants_workdir", "/src/repo/.pants.d", "local_store_dir", "/home/u/.cache/pants/lmdb_store"),
			buildroot: "/src/repo",
			cacheDir:  "/home/u/.cache",
		},
		{
			name:     "buildroot missing",
			options:  opts("local_store_dir", "/home/u/.cache/pants/lmdb_store"),
			cacheDir: "/home/u/.cache",
		},
		{
			name:      "cache dir missing",
			options:   opts("pants_workdir", "/src/repo/.pants.d"),
			buildroot: "/src/repo",
		},
		{
			name:    "non-string default ignored",
			options: opts("pants_workdir", []any{"x"}),
		},
		{
			name:      "no separator keeps value",
			options:   opts("pants_workdir", "relative"),
			buildroot: "relative",
		},
		{
			name: "no options",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := Discover(tc.options, Keys{})
			require.Equal(t, tc.buildroot, r.Buildroot)
			require.Equal(t, tc.cacheDir, r.CacheDir)
		})
	}
}

func TestApply(t *testing.T) {
	r := Discover(opts("pants_workdir", "/src/repo/.pants.d", "local_store_dir", "/home/u/.cache/pants/lmdb_store"), DefaultKeys())

	require.Equal(t, "<buildroot>/.pants.d", r.Apply("/src/repo/.pants.d"))
	require.Equal(t, "$XDG_CACHE_HOME/pants/named_caches", r.Apply("/home/u/.cache/pants/named_caches"))
	require.Equal(t, "unrelated", r.Apply("unrelated"))
}

func TestApply_Idempotent(t *testing.T) {
	r := Discover(opts("pants_workdir", "/src/repo/.pants.d", "local_store_dir", "/home/u/.cache/pants/lmdb_store"), DefaultKeys())
	inputs := []string{
		"/src/repo/dist and /home/u/.cache/pants",
		"/home/u/.cache then /src/repo",
		"",
	}
	for _, in := range inputs {
		once := r.Apply(in)
		require.Equal(t, once, r.Apply(once), in)
	}
}

func TestApply_Inactive(t *testing.T) {
	var nilRedactor *Redactor
	require.Equal(t, "/src/repo", nilRedactor.Apply("/src/repo"))
	require.False(t, nilRedactor.Active())

	r := Discover(nil, DefaultKeys())
	require.False(t, r.Active())
	require.Equal(t, "any /path/at all", r.Apply("any /path/at all"))
}

func TestDiscover_CustomKeys(t *testing.T) {
	keys := Keys{BuildrootKey: "workdir", BuildrootToken: "<root>"}
	r := Discover(opts("workdir", "/w/repo/out", "pants_workdir", "/ignored/x"), keys)
	require.Equal(t, "/w/repo", r.Buildroot)
	require.Equal(t, "<root>/out", r.Apply("/w/repo/out"))
}

func TestFromHelpInfo(t *testing.T) {
	info, err := helpinfo.Load(filepath.Join("..", "helpinfo", "testdata", "sample.help-all.json"))
	require.NoError(t, err)

	r := FromHelpInfo(info, DefaultKeys())
	require.Equal(t, "/home/builder/src/repo", r.Buildroot)
	require.Equal(t, "/home/builder/.cache", r.CacheDir)

	require.False(t, FromHelpInfo(&helpinfo.HelpInfo{}, DefaultKeys()).Active())
}

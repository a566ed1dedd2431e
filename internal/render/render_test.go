package render

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	rgerrors "git.home.luguber.info/inful/refgen/internal/errors"
	"git.home.luguber.info/inful/refgen/internal/helpinfo"
	"git.home.luguber.info/inful/refgen/internal/redact"
	"github.com/stretchr/testify/require"
)

func loadSample(t *testing.T) *helpinfo.HelpInfo {
	t.Helper()
	info, err := helpinfo.Load(filepath.Join("..", "helpinfo", "testdata", "sample.help-all.json"))
	require.NoError(t, err)
	return info
}

func newRenderer(t *testing.T) (*Renderer, *helpinfo.HelpInfo) {
	t.Helper()
	info := loadSample(t)
	r, err := New(info, redact.FromHelpInfo(info, redact.DefaultKeys()), "")
	require.NoError(t, err)
	return r, info
}

func TestRenderer_GlobalScope(t *testing.T) {
	r, info := newRenderer(t)
	global, ok := info.Global()
	require.True(t, ok)

	body, err := r.Scope(global, nil)
	require.NoError(t, err)

	require.Contains(t, body, `import Option from "@site/src/components/reference/Option";`)
	require.Contains(t, body, "## Basic options")
	require.Contains(t, body, `cli_repr="-l=&lt;LogLevel&gt;, --level=&lt;LogLevel&gt;"`)
	require.Contains(t, body, `one_of="trace, debug, info, warn, error"`)
	require.Contains(t, body, `default_repr="&lt;buildroot&gt;/.pants.d"`)
	require.Contains(t, body, `default_repr="$XDG_CACHE_HOME/pants/lmdb_store"`)
	require.Contains(t, body, `default_repr="[]"`)
	// Indented example in the build_ignore help becomes a fenced block.
	require.Contains(t, body, "```\nbuild_ignore = [\"node_modules/\"]\n```")
	require.Contains(t, body, "See `--pants-ignore` too.")
	require.NotContains(t, body, "is a goal")
	require.NotContains(t, body, "## Deprecated options")
}

func TestRenderer_GoalScope(t *testing.T) {
	r, info := newRenderer(t)
	scope, ok := info.Scopes.Get("test")
	require.True(t, ok)

	body, err := r.Scope(scope, info.Goal("test"))
	require.NoError(t, err)

	require.Contains(t, body, "`test` is a goal.")
	require.Contains(t, body, "Related subsystems: [pytest](../subsystems/pytest.mdx)")
	require.Contains(t, body, "## Deprecated options")
	require.Contains(t, body, `deprecated_version="3.0.0"`)
	require.Contains(t, body, `deprecated_hint="Use `+"`--coverage-report`"+` instead."`)
	require.Contains(t, body, `default_repr="None"`)
	require.Contains(t, body, `default_repr="False"`)
}

func TestRenderer_SubsystemScope(t *testing.T) {
	r, info := newRenderer(t)
	scope, ok := info.Scopes.Get("pytest")
	require.True(t, ok)

	body, err := r.Scope(scope, nil)
	require.NoError(t, err)

	require.Contains(t, body, "Backend: `pants.backend.python`")
	require.Contains(t, body, "## Basic options\n\nNone\n")
	require.Contains(t, body, `default_repr="[&quot;-q&quot;]"`)
	require.Contains(t, body, `default_repr="&#123;\n  &quot;a&quot;: 1.5,\n  &quot;b&quot;: 2\n&#125;"`)
	require.Contains(t, body, "Environment for &#123;test&#125; runs.")
	require.Contains(t, body, "`--pytest-args='-k test_foo --quiet'`")
}

func TestRenderer_Target(t *testing.T) {
	r, info := newRenderer(t)
	target, ok := info.TargetTypes.Get("python_sources")
	require.True(t, ok)

	body, err := r.Target(target)
	require.NoError(t, err)

	require.Contains(t, body, "`python_sources` (backend `pants.backend.python`)")
	require.Contains(t, body, "### `sources`")
	require.Contains(t, body, "Default: `('*.py', '!test_*.py')`")
	require.Contains(t, body, "### `interpreter_constraints`")
	require.Contains(t, body, "Required")
	require.Contains(t, body, "```\npython\npython_sources(name=\"lib\")\n```")
}

func TestRenderer_TargetWithoutFields(t *testing.T) {
	r, _ := newRenderer(t)
	body, err := r.Target(helpinfo.TargetType{Alias: "empty", Summary: "Nothing here."})
	require.NoError(t, err)
	require.Contains(t, body, "Nothing here.")
	require.Contains(t, body, "This target type has no fields.")
}

func TestNewFS_CustomTemplates(t *testing.T) {
	info := loadSample(t)
	fsys := fstest.MapFS{
		SubsystemTemplate: {Data: []byte(`{{ .Subsystem.Scope }}|{{ if isGoal .Subsystem.Scope }}goal{{ end }}|{{ filterOut .GoalInfo.ConsumedScopes "test" }}`)},
		TargetTemplate:    {Data: []byte(`{{ .Target.Alias }}`)},
	}
	r, err := NewFS(info, nil, fsys)
	require.NoError(t, err)

	scope, _ := info.Scopes.Get("test")
	body, err := r.Scope(scope, info.Goal("test"))
	require.NoError(t, err)
	require.Equal(t, "test|goal|[pytest]", body)
}

func TestNewFS_MissingTemplate(t *testing.T) {
	_, err := NewFS(loadSample(t), nil, fstest.MapFS{
		SubsystemTemplate: {Data: []byte(`ok`)},
	})
	require.Error(t, err)
	require.True(t, rgerrors.IsCategory(err, rgerrors.CategoryTemplate))
}

func TestNewFS_ParseError(t *testing.T) {
	_, err := NewFS(loadSample(t), nil, fstest.MapFS{
		SubsystemTemplate: {Data: []byte(`{{ .Broken `)},
		TargetTemplate:    {Data: []byte(`ok`)},
	})
	require.Error(t, err)
}

func TestFilterOut(t *testing.T) {
	require.Equal(t, []any{"b", "d"}, FilterOut([]string{"a", "b", "c", "d"}, "a", "c"))
	require.Equal(t, []any{1, 3}, FilterOut([]any{1, 2, 3}, 2))
	require.Equal(t, []any{}, FilterOut([]string{}, "a"))
	require.Nil(t, FilterOut("not a slice", "a"))
}

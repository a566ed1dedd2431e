package helpinfo

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	rgerrors "git.home.luguber.info/inful/refgen/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestLoad_PreservesDocumentOrder(t *testing.T) {
	info, err := Load(filepath.Join("testdata", "sample.help-all.json"))
	require.NoError(t, err)

	require.Equal(t, []string{"", "test", "pytest"}, info.Scopes.Keys())
	require.Equal(t, []string{"python_sources", "_internal_generated"}, info.TargetTypes.Keys())

	global, ok := info.Global()
	require.True(t, ok)
	require.True(t, global.IsGlobal())
	require.Len(t, global.Advanced, 3)
	require.Equal(t, "pants_workdir", global.Advanced[0].ConfigKey)
}

func TestLoad_DecodesOptionFields(t *testing.T) {
	info, err := Load(filepath.Join("testdata", "sample.help-all.json"))
	require.NoError(t, err)

	pytest, ok := info.Scopes.Get("pytest")
	require.True(t, ok)
	require.False(t, pytest.IsGoal)

	execSlot := pytest.Advanced[1]
	require.Equal(t, "dict", execSlot.Type)
	m, ok := execSlot.Default.(map[string]any)
	require.True(t, ok)
	require.Equal(t, json.Number("1.5"), m["a"])

	testScope, ok := info.Scopes.Get("test")
	require.True(t, ok)
	require.True(t, testScope.IsGoal)
	require.Len(t, testScope.Options(), 3)
	require.Equal(t, "3.0.0", testScope.Deprecated[0].RemovalVersion)
	require.Nil(t, testScope.Advanced[0].Default)
}

func TestHelpInfo_Goals(t *testing.T) {
	info, err := Load(filepath.Join("testdata", "sample.help-all.json"))
	require.NoError(t, err)

	require.True(t, info.IsGoal("test"))
	require.False(t, info.IsGoal("pytest"))
	require.NotNil(t, info.Goal("test"))
	require.Equal(t, []string{"test", "pytest"}, info.Goal("test").ConsumedScopes)
	require.Nil(t, info.Goal("pytest"))
}

func TestTargetType_Hidden(t *testing.T) {
	require.True(t, TargetType{Alias: "_generated"}.Hidden())
	require.False(t, TargetType{Alias: "python_sources"}.Hidden())
}

func TestOption_Text(t *testing.T) {
	require.Equal(t, "help", Option{Help: "help", Description: "desc"}.Text())
	require.Equal(t, "desc", Option{Description: "desc"}.Text())
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.help-all.json"))
		require.Error(t, err)
		require.True(t, rgerrors.IsCategory(err, rgerrors.CategoryInput))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.help-all.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"scope_to_help_info": {`), 0o600))
		_, err := Load(path)
		require.Error(t, err)
		require.True(t, rgerrors.IsCategory(err, rgerrors.CategoryInput))
	})
}

func TestOrdered_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		keys    []string
		wantErr bool
	}{
		{name: "order kept", input: `{"z": 1, "a": 2, "m": 3}`, keys: []string{"z", "a", "m"}},
		{name: "duplicate keeps first position", input: `{"a": 1, "b": 2, "a": 3}`, keys: []string{"a", "b"}},
		{name: "null", input: `null`, keys: nil},
		{name: "empty", input: `{}`, keys: nil},
		{name: "not an object", input: `[1, 2]`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var o Ordered[int]
			err := json.NewDecoder(strings.NewReader(tc.input)).Decode(&o)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.keys, o.Keys())
		})
	}

	var o Ordered[int]
	require.NoError(t, json.Unmarshal([]byte(`{"a": 1, "b": 2, "a": 3}`), &o))
	v, ok := o.Get("a")
	require.True(t, ok)
	require.Equal(t, 3, v)

	var seen []string
	for k := range o.All() {
		seen = append(seen, k)
	}
	require.Equal(t, []string{"a", "b"}, seen)
}

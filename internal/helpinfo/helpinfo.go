// Package helpinfo models the `help-all` JSON dump emitted by the documented
// build tool and loads it with the document's key order intact.
package helpinfo

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"

	rgerrors "git.home.luguber.info/inful/refgen/internal/errors"
)

// GlobalScope is the scope name of the global options.
const GlobalScope = ""

// HelpInfo is the root of the dump.
type HelpInfo struct {
	Scopes      Ordered[Scope]      `json:"scope_to_help_info"`
	Goals       Ordered[Goal]       `json:"name_to_goal_info"`
	TargetTypes Ordered[TargetType] `json:"name_to_target_type_info"`
}

// Scope is one configuration namespace: the global scope, a goal or a subsystem.
type Scope struct {
	Scope           string   `json:"scope"`
	Description     string   `json:"description"`
	Provider        string   `json:"provider"`
	IsGoal          bool     `json:"is_goal"`
	DeprecatedScope string   `json:"deprecated_scope"`
	Basic           []Option `json:"basic"`
	Advanced        []Option `json:"advanced"`
	Deprecated      []Option `json:"deprecated"`
}

// IsGlobal reports whether s holds the global options.
func (s Scope) IsGlobal() bool { return s.Scope == GlobalScope }

// Options returns every option of the scope: basic, then advanced, then deprecated.
func (s Scope) Options() []Option {
	out := make([]Option, 0, len(s.Basic)+len(s.Advanced)+len(s.Deprecated))
	out = append(out, s.Basic...)
	out = append(out, s.Advanced...)
	return append(out, s.Deprecated...)
}

// Option is a single configurable setting.
type Option struct {
	ConfigKey                 string   `json:"config_key"`
	DisplayArgs               []string `json:"display_args"`
	CommaSeparatedDisplayArgs string   `json:"comma_separated_display_args"`
	ScopedCmdLineArgs         []string `json:"scoped_cmd_line_args"`
	UnscopedCmdLineArgs       []string `json:"unscoped_cmd_line_args"`
	EnvVar                    string   `json:"env_var"`
	Type                      string   `json:"typ"`
	Default                   any      `json:"default"`
	Help                      string   `json:"help"`
	Description               string   `json:"description"`
	DeprecationActive         bool     `json:"deprecation_active"`
	DeprecatedMessage         string   `json:"deprecated_message"`
	RemovalVersion            string   `json:"removal_version"`
	RemovalHint               string   `json:"removal_hint"`
	Choices                   []any    `json:"choices"`
	CommaSeparatedChoices     string   `json:"comma_separated_choices"`
	Fromfile                  bool     `json:"fromfile"`
	TargetFieldName           string   `json:"target_field_name"`
}

// Text returns the option's help text, preferring `help` over `description`.
func (o Option) Text() string {
	if o.Help != "" {
		return o.Help
	}
	return o.Description
}

// Goal is a user-invokable mode of the documented tool.
type Goal struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	IsBuiltin      bool     `json:"is_builtin"`
	IsImplemented  bool     `json:"is_implemented"`
	ConsumedScopes []string `json:"consumed_scopes"`
}

// TargetType describes a declarable unit understood by the documented tool.
type TargetType struct {
	Alias       string        `json:"alias"`
	Provider    string        `json:"provider"`
	Summary     string        `json:"summary"`
	Description string        `json:"description"`
	Fields      []TargetField `json:"fields"`
}

// Hidden reports whether the target type is internal and must not be documented.
func (t TargetType) Hidden() bool { return strings.HasPrefix(t.Alias, "_") }

// TargetField is one field of a target type.
type TargetField struct {
	Alias       string `json:"alias"`
	Provider    string `json:"provider"`
	Description string `json:"description"`
	TypeHint    string `json:"type_hint"`
	Required    bool   `json:"required"`
	Default     any    `json:"default"`
}

// Global returns the global scope, if present.
func (h *HelpInfo) Global() (Scope, bool) {
	return h.Scopes.Get(GlobalScope)
}

// IsGoal reports whether name is a known goal.
func (h *HelpInfo) IsGoal(name string) bool {
	return h.Goals.Has(name)
}

// Goal returns the goal metadata for name, or nil when name is not a goal.
func (h *HelpInfo) Goal(name string) *Goal {
	g, ok := h.Goals.Get(name)
	if !ok {
		return nil
	}
	return &g
}

// Decode reads a dump from r. Numbers are kept as json.Number so defaults
// render with their original literal.
func Decode(r io.Reader) (*HelpInfo, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var info HelpInfo
	if err := dec.Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Load reads and decodes the dump at path.
func Load(path string) (*HelpInfo, error) {
	// #nosec G304 -- the dump path is chosen by the operator.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, rgerrors.InputNotFound(path, err)
	}
	info, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, rgerrors.InputMalformed(path, err)
	}
	return info, nil
}

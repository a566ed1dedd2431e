// Package render turns help-dump records into MDX page bodies using
// text/template. Default templates are embedded; a directory holding files of
// the same names replaces them.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"text/template"

	rgerrors "git.home.luguber.info/inful/refgen/internal/errors"
	"git.home.luguber.info/inful/refgen/internal/format"
	"git.home.luguber.info/inful/refgen/internal/helpinfo"
	"git.home.luguber.info/inful/refgen/internal/redact"
)

// Template file names.
const (
	SubsystemTemplate = "subsystem.mdx.tmpl"
	TargetTemplate    = "target.mdx.tmpl"
)

//go:embed templates/*.tmpl
var embedded embed.FS

// DefaultTemplates returns the embedded templates as a file system.
func DefaultTemplates() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Renderer renders scope and target pages for one help dump.
type Renderer struct {
	info      *helpinfo.HelpInfo
	redactor  *redact.Redactor
	subsystem *template.Template
	target    *template.Template
}

// New parses the page templates from dir, or the embedded defaults when dir is empty.
func New(info *helpinfo.HelpInfo, redactor *redact.Redactor, dir string) (*Renderer, error) {
	fsys := DefaultTemplates()
	if dir != "" {
		fsys = os.DirFS(dir)
	}
	return NewFS(info, redactor, fsys)
}

// NewFS parses the page templates from fsys.
func NewFS(info *helpinfo.HelpInfo, redactor *redact.Redactor, fsys fs.FS) (*Renderer, error) {
	r := &Renderer{info: info, redactor: redactor}
	var err error
	if r.subsystem, err = r.parse(fsys, SubsystemTemplate); err != nil {
		return nil, err
	}
	if r.target, err = r.parse(fsys, TargetTemplate); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) parse(fsys fs.FS, name string) (*template.Template, error) {
	src, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, rgerrors.TemplateFailed(name, fmt.Errorf("read template: %w", err))
	}
	tpl, err := template.New(name).Funcs(r.FuncMap()).Option("missingkey=error").Parse(string(src))
	if err != nil {
		return nil, rgerrors.TemplateFailed(name, fmt.Errorf("parse template: %w", err))
	}
	return tpl, nil
}

// FuncMap returns the helpers available to page templates.
func (r *Renderer) FuncMap() template.FuncMap {
	return template.FuncMap{
		"helpStr": func(v any) string {
			return format.Value(v, r.redactor)
		},
		"formatDescription": format.Description,
		"escape":            format.Escape,
		"filterOut":         FilterOut,
		"isGoal": func(name string) bool {
			return r.info != nil && r.info.IsGoal(name)
		},
		"default": func(fallback, v string) string {
			if v == "" {
				return fallback
			}
			return v
		},
	}
}

// ScopeData is the data passed to the subsystem template. GoalInfo is nil for
// scopes that are not goals.
type ScopeData struct {
	Subsystem helpinfo.Scope
	GoalInfo  *helpinfo.Goal
}

// TargetData is the data passed to the target template.
type TargetData struct {
	Target helpinfo.TargetType
}

// Scope renders the page body of an option-bearing scope.
func (r *Renderer) Scope(s helpinfo.Scope, goal *helpinfo.Goal) (string, error) {
	return execute(r.subsystem, ScopeData{Subsystem: s, GoalInfo: goal})
}

// Target renders the page body of a target type.
func (r *Renderer) Target(t helpinfo.TargetType) (string, error) {
	return execute(r.target, TargetData{Target: t})
}

func execute(tpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", rgerrors.TemplateFailed(tpl.Name(), fmt.Errorf("render template: %w", err))
	}
	return buf.String(), nil
}

// FilterOut returns the elements of values (a slice or array) that equal none
// of drop, in order. Anything else yields nil.
func FilterOut(values any, drop ...any) []any {
	rv := reflect.ValueOf(values)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	out := make([]any, 0, rv.Len())
next:
	for i := range rv.Len() {
		item := rv.Index(i).Interface()
		for _, d := range drop {
			if reflect.DeepEqual(item, d) {
				continue next
			}
		}
		out = append(out, item)
	}
	return out
}

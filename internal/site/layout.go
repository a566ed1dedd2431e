// Package site lays out generated reference pages on disk, writes them, and
// compares a fresh rendering against what is already there.
package site

import (
	"path/filepath"
)

// Section is an output subdirectory of the reference tree.
type Section string

const (
	SectionGlobal     Section = "global"
	SectionGoals      Section = "goals"
	SectionSubsystems Section = "subsystems"
	SectionTargets    Section = "targets"
)

// Sections lists the subdirectories that receive a category file, in write order.
var Sections = []Section{SectionGoals, SectionSubsystems, SectionTargets}

// CategoryFile is the navigation index written into every section directory.
const CategoryFile = "_category_.json"

// Layout describes where pages go under the output root.
type Layout struct {
	Root         string
	ReferenceDir string
	GlobalPage   string
	Extension    string
}

// DefaultLayout returns the layout used by the documentation site for root.
func DefaultLayout(root string) Layout {
	return Layout{
		Root:         root,
		ReferenceDir: "reference",
		GlobalPage:   "global-options.mdx",
		Extension:    ".mdx",
	}
}

// Dir returns the reference directory pages are written under.
func (l Layout) Dir() string {
	return filepath.Join(l.Root, l.ReferenceDir)
}

// PagePath returns the path of a page relative to Dir.
func (l Layout) PagePath(section Section, name string) string {
	if section == SectionGlobal {
		return l.GlobalPage
	}
	return filepath.ToSlash(filepath.Join(string(section), name+l.Extension))
}

// CategoryPath returns the path of a section's category file relative to Dir.
func (l Layout) CategoryPath(section Section) string {
	return string(section) + "/" + CategoryFile
}

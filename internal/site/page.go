package site

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/refgen/internal/frontmatter"
)

// Page is one rendered reference page.
type Page struct {
	Section Section
	// Name is the scope name or target alias ("" for the global page).
	Name        string
	RelPath     string
	Title       string
	Description string
	Body        string
}

// UID returns the stable page identifier: a UUIDv5 of the relative path.
func (p Page) UID() string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(p.RelPath)).String()
}

// Content returns the bytes written to disk. With withFrontmatter the body is
// prefixed by title, description, uid and fingerprint.
func (p Page) Content(withFrontmatter bool) ([]byte, error) {
	if !withFrontmatter {
		return []byte(p.Body), nil
	}
	fields := frontmatter.Fields{{Key: "title", Value: p.Title}}
	if p.Description != "" {
		fields = fields.Set("description", p.Description)
	}
	fields = fields.Set(frontmatter.KeyUID, p.UID())
	return frontmatter.Compose(fields, []byte(p.Body))
}

// summary returns the first non-empty line of s, trimmed.
func summary(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

var titler = cases.Title(language.English)

// CategoryContent returns the navigation index for a section.
func CategoryContent(section Section) ([]byte, error) {
	out, err := json.MarshalIndent(struct {
		Label string `json:"label"`
	}{Label: titler.String(string(section))}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

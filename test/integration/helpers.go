package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/refgen/cmd/refgen/commands"
)

// sampleDump is the help dump shared with the package tests.
const sampleDump = "../../internal/helpinfo/testdata/sample.help-all.json"

// ContentStructure represents the structure of a generated reference tree for golden testing.
type ContentStructure struct {
	Files     map[string]ContentFile `json:"files"`
	Structure map[string]any         `json:"structure"`
}

// ContentFile represents a single page: its normalized front matter, its
// headings and the number of <Option> elements it renders.
type ContentFile struct {
	FrontMatter map[string]any `json:"frontmatter"`
	Headings    []string       `json:"headings"`
	Options     int            `json:"options"`
}

// isolate keeps user configuration out of the run.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CONFIG_DIRS", filepath.Join(dir, "config-dirs"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)
}

// runGenerate runs the CLI and returns the reference directory.
func runGenerate(t *testing.T, extraArgs ...string) string {
	t.Helper()
	isolate(t)

	dump, err := filepath.Abs(sampleDump)
	require.NoError(t, err)
	out := t.TempDir()

	args := append([]string{"generate", "--input", dump, "--output", out}, extraArgs...)
	args = append(args, "2.20")
	var stdout bytes.Buffer
	code := commands.Execute(args, &stdout, io.Discard)
	require.Equal(t, 0, code, "generate failed: %s", stdout.String())

	return filepath.Join(out, "reference")
}

// normalizeFrontMatter drops the fingerprint, which depends on the exact page body.
func normalizeFrontMatter(fm map[string]any) {
	delete(fm, "fingerprint")
}

func parseFrontMatter(data []byte) (map[string]any, []byte) {
	content := string(data)
	if !strings.HasPrefix(content, "---\n") {
		return nil, data
	}
	endIdx := strings.Index(content[4:], "\n---\n")
	if endIdx == -1 {
		return nil, data
	}

	var fm map[string]any
	if err := yaml.Unmarshal([]byte(content[4:endIdx+4]), &fm); err != nil {
		return nil, data
	}
	return fm, []byte(content[endIdx+9:])
}

// headings returns the Markdown heading lines of body outside fenced blocks.
func headings(body []byte) []string {
	var out []string
	fenced := false
	for _, line := range strings.Split(string(body), "\n") {
		if strings.HasPrefix(line, "```") {
			fenced = !fenced
			continue
		}
		if !fenced && strings.HasPrefix(line, "#") {
			out = append(out, line)
		}
	}
	return out
}

// verifyContentStructure compares the generated reference tree against a golden file.
func verifyContentStructure(t *testing.T, refDir, goldenPath string, updateGolden bool) {
	t.Helper()

	actual := ContentStructure{
		Files:     make(map[string]ContentFile),
		Structure: buildStructureTree(refDir),
	}
	err := filepath.Walk(refDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".mdx") {
			return nil
		}

		// #nosec G304 -- test utility reading from test output directory
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		fm, body := parseFrontMatter(data)
		normalizeFrontMatter(fm)

		rel, _ := filepath.Rel(refDir, path)
		actual.Files[filepath.ToSlash(rel)] = ContentFile{
			FrontMatter: fm,
			Headings:    headings(body),
			Options:     strings.Count(string(body), "<Option\n"),
		}
		return nil
	})
	require.NoError(t, err, "failed to walk reference directory")

	actualJSON, err := json.MarshalIndent(actual, "", "  ")
	require.NoError(t, err, "failed to marshal content structure")

	if updateGolden {
		require.NoError(t, os.MkdirAll(filepath.Dir(goldenPath), 0o750))
		require.NoError(t, os.WriteFile(goldenPath, append(actualJSON, '\n'), 0o600))
		t.Logf("Updated golden file: %s", goldenPath)
		return
	}

	goldenData, err := os.ReadFile(goldenPath)
	require.NoError(t, err, "failed to read golden file: %s", goldenPath)
	require.JSONEq(t, string(goldenData), string(actualJSON), "Content structure mismatch")
}

// buildStructureTree creates a nested map representing the directory structure.
func buildStructureTree(rootDir string) map[string]any {
	tree := make(map[string]any)

	_ = filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || path == rootDir {
			return err
		}
		relPath, _ := filepath.Rel(rootDir, path)
		current := tree
		parts := strings.Split(relPath, string(filepath.Separator))
		for _, part := range parts[:len(parts)-1] {
			if _, exists := current[part]; !exists {
				current[part] = make(map[string]any)
			}
			current = current[part].(map[string]any)
		}
		if _, exists := current[parts[len(parts)-1]]; !exists {
			current[parts[len(parts)-1]] = map[string]any{}
		}
		return nil
	})
	return tree
}

package site

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	rgerrors "git.home.luguber.info/inful/refgen/internal/errors"
)

// WriteFile writes content to relativePath under dir, creating parent
// directories. Existing files are replaced.
//
// The path must stay under dir: absolute paths and paths climbing out with
// ".." are rejected.
func WriteFile(dir, relativePath string, content []byte) (string, error) {
	fullPath, err := resolve(dir, relativePath)
	if err != nil {
		return "", rgerrors.WriteFailed(relativePath, err)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
		return "", rgerrors.WriteFailed(fullPath, fmt.Errorf("create output directory: %w", err))
	}
	// #nosec G306 -- generated pages are published documentation.
	if err := os.WriteFile(fullPath, content, 0o644); err != nil {
		return "", rgerrors.WriteFailed(fullPath, err)
	}
	return fullPath, nil
}

// resolve joins relativePath onto dir after validating it.
func resolve(dir, relativePath string) (string, error) {
	if dir == "" {
		return "", errors.New("output directory is required")
	}
	if relativePath == "" {
		return "", errors.New("output path is required")
	}

	cleanRel := filepath.Clean(filepath.FromSlash(relativePath))
	if filepath.IsAbs(cleanRel) || cleanRel == ".." || strings.HasPrefix(cleanRel, ".."+string(filepath.Separator)) {
		return "", errors.New("output path must be relative to the output directory")
	}

	fullPath := filepath.Join(dir, cleanRel)
	rel, err := filepath.Rel(dir, fullPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", errors.New("output path escapes the output directory")
	}
	return fullPath, nil
}

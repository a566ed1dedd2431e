package errors

import (
	stdErrors "errors"
	"fmt"
	"os"
	"testing"
)

func TestRefgenError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *RefgenError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(CategoryConfig, SeverityFatal, "configuration invalid"),
			expected: "config (fatal): configuration invalid",
		},
		{
			name:     "error with cause",
			err:      Wrap(fmt.Errorf("file not found"), CategoryInput, SeverityFatal, "failed to load dump"),
			expected: "input (fatal): failed to load dump: file not found",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := test.err.Error()
			if result != test.expected {
				t.Errorf("Error() = %q, want %q", result, test.expected)
			}
		})
	}
}

func TestRefgenError_WithContext(t *testing.T) {
	err := New(CategoryTemplate, SeverityFatal, "render failed").
		WithContext("template", "subsystem.mdx.tmpl").
		WithContext("scope", "pytest")

	if err.Context == nil {
		t.Fatal("Context should not be nil")
	}
	if err.Context["template"] != "subsystem.mdx.tmpl" {
		t.Errorf("Context[template] = %v, want subsystem.mdx.tmpl", err.Context["template"])
	}
	if err.Context["scope"] != "pytest" {
		t.Errorf("Context[scope] = %v, want pytest", err.Context["scope"])
	}
}

func TestIsCategory(t *testing.T) {
	inputErr := InputNotFound("2.0.help-all.json", os.ErrNotExist)
	wrapped := fmt.Errorf("generate: %w", inputErr)
	standardErr := fmt.Errorf("standard error")

	tests := []struct {
		name     string
		err      error
		category ErrorCategory
		expected bool
	}{
		{"input error matches input category", inputErr, CategoryInput, true},
		{"input error doesn't match config category", inputErr, CategoryConfig, false},
		{"wrapped input error still matches", wrapped, CategoryInput, true},
		{"standard error doesn't match any category", standardErr, CategoryInput, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsCategory(test.err, test.category)
			if result != test.expected {
				t.Errorf("IsCategory() = %v, want %v", result, test.expected)
			}
		})
	}
}

func TestGetCategory(t *testing.T) {
	if got := GetCategory(fmt.Errorf("plain")); got != CategoryInternal {
		t.Errorf("GetCategory(plain) = %v, want %v", got, CategoryInternal)
	}
	if got := GetCategory(WriteFailed("out/x.mdx", os.ErrPermission)); got != CategoryFileSystem {
		t.Errorf("GetCategory(WriteFailed) = %v, want %v", got, CategoryFileSystem)
	}
}

func TestConvenienceFunctions(t *testing.T) {
	t.Run("InputMalformed", func(t *testing.T) {
		cause := fmt.Errorf("unexpected EOF")
		err := InputMalformed("2.0.help-all.json", cause)
		if err.Category != CategoryInput {
			t.Errorf("Category = %v, want %v", err.Category, CategoryInput)
		}
		if err.Context["path"] != "2.0.help-all.json" {
			t.Errorf("Context[path] = %v, want 2.0.help-all.json", err.Context["path"])
		}
		if !stdErrors.Is(err, cause) {
			t.Errorf("Cause should match wrapped cause: %v", cause)
		}
	})

	t.Run("DriftDetected", func(t *testing.T) {
		err := DriftDetected(3)
		if err.Category != CategoryDrift {
			t.Errorf("Category = %v, want %v", err.Category, CategoryDrift)
		}
		if err.Context["changed"] != 3 {
			t.Errorf("Context[changed] = %v, want 3", err.Context["changed"])
		}
	})
}

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	a := NewCLIErrorAdapter(false, nil)
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain", fmt.Errorf("boom"), 1},
		{"input", InputNotFound("x", os.ErrNotExist), 3},
		{"drift", DriftDetected(1), 4},
		{"lint", LintFailed(2), 2},
		{"config", ConfigInvalid("refgen.yaml", fmt.Errorf("bad")), 7},
		{"template", TemplateFailed("target.mdx.tmpl", fmt.Errorf("bad")), 11},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := a.ExitCodeFor(tc.err); got != tc.want {
				t.Errorf("ExitCodeFor() = %d, want %d", got, tc.want)
			}
		})
	}
}

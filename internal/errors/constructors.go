package errors

// Convenience functions for common error patterns

// Input errors

func InputNotFound(path string, cause error) *RefgenError {
	return Wrap(cause, CategoryInput, SeverityFatal, "help dump not found").
		WithContext("path", path)
}

func InputMalformed(path string, cause error) *RefgenError {
	return Wrap(cause, CategoryInput, SeverityFatal, "help dump is not valid JSON").
		WithContext("path", path)
}

// Config errors

func ConfigInvalid(path string, cause error) *RefgenError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration invalid").
		WithContext("path", path)
}

// Rendering and output errors

func TemplateFailed(name string, cause error) *RefgenError {
	return Wrap(cause, CategoryTemplate, SeverityFatal, "template rendering failed").
		WithContext("template", name)
}

func WriteFailed(path string, cause error) *RefgenError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "write failed").
		WithContext("path", path)
}

func DriftDetected(changed int) *RefgenError {
	return New(CategoryDrift, SeverityError, "generated reference is out of date").
		WithContext("changed", changed)
}

func LintFailed(errorCount int) *RefgenError {
	return New(CategoryLint, SeverityError, "reference pages failed lint").
		WithContext("errors", errorCount)
}

// Internal errors

func InternalError(message string, cause error) *RefgenError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}

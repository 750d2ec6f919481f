// Package rendering projects a résumé document onto a display layout tree for one of several
// interchangeable templates, and formats that tree as plain text or HTML.
package rendering

import (
	"fmt"

	"github.com/jonathan/resume-studio/internal/types"
)

// TemplateError represents a registry or template definition failure
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// DuplicateTemplateError is returned when registering a name that is already taken
type DuplicateTemplateError struct {
	Name types.TemplateName
}

func (e *DuplicateTemplateError) Error() string {
	return fmt.Sprintf("template already registered: %s", e.Name)
}

// RenderError represents a general rendering failure
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

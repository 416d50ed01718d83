package offerdoc

// Custom error types for the engine. Every non-success path returns one of
// these; nothing is swallowed.

import (
	"fmt"
	"strings"
)

// AnchorNotFoundError reports that the target heading text is absent from the
// base document. The merge call that produced it left the document unchanged.
type AnchorNotFoundError struct {
	Anchor string
}

func (e *AnchorNotFoundError) Error() string {
	return fmt.Sprintf("anchor heading %q not found in base document", e.Anchor)
}

// NewAnchorNotFoundError creates a new anchor error
func NewAnchorNotFoundError(anchor string) error {
	return &AnchorNotFoundError{Anchor: anchor}
}

// InvalidFragmentError reports a fragment that failed to decode into a
// well-formed document. Inside MergeMany it aborts that fragment only.
type InvalidFragmentError struct {
	Source string
	Cause  error
}

func (e *InvalidFragmentError) Error() string {
	if e.Source != "" && e.Cause != nil {
		return fmt.Sprintf("invalid fragment %q: %v", e.Source, e.Cause)
	}
	if e.Cause != nil {
		return fmt.Sprintf("invalid fragment: %v", e.Cause)
	}
	if e.Source != "" {
		return fmt.Sprintf("invalid fragment %q", e.Source)
	}
	return "invalid fragment"
}

func (e *InvalidFragmentError) Unwrap() error {
	return e.Cause
}

// NewInvalidFragmentError creates a new fragment error
func NewInvalidFragmentError(source string, cause error) error {
	return &InvalidFragmentError{Source: source, Cause: cause}
}

// NumberingConflictError reports headings that skip a level or are
// non-monotonic. The engine never repairs these silently; repair would change
// document semantics.
type NumberingConflictError struct {
	Heading string
	Level   int
	Message string
}

func (e *NumberingConflictError) Error() string {
	if e.Heading != "" {
		return fmt.Sprintf("numbering conflict at heading %q (level %d): %s", e.Heading, e.Level, e.Message)
	}
	return fmt.Sprintf("numbering conflict at level %d: %s", e.Level, e.Message)
}

// NewNumberingConflictError creates a new numbering conflict error
func NewNumberingConflictError(heading string, level int, message string) error {
	return &NumberingConflictError{Heading: heading, Level: level, Message: message}
}

// ValidationFailedError reports one or more failed invariants from a
// validation report. Advisory by default, fatal only in strict mode.
type ValidationFailedError struct {
	Report ValidationReport
}

func (e *ValidationFailedError) Error() string {
	var problems []string
	if !e.Report.NumberingContiguous {
		problems = append(problems, "section numbering is not contiguous")
	}
	if len(e.Report.MissingRequiredHeadings) > 0 {
		problems = append(problems, fmt.Sprintf("missing required headings: %s",
			strings.Join(e.Report.MissingRequiredHeadings, ", ")))
	}
	if len(problems) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(problems, "; ")
}

// IsAnchorNotFound checks if an error is an anchor error
func IsAnchorNotFound(err error) bool {
	_, ok := err.(*AnchorNotFoundError)
	return ok
}

// IsInvalidFragment checks if an error is a fragment error
func IsInvalidFragment(err error) bool {
	_, ok := err.(*InvalidFragmentError)
	return ok
}

// IsNumberingConflict checks if an error is a numbering conflict
func IsNumberingConflict(err error) bool {
	_, ok := err.(*NumberingConflictError)
	return ok
}

// IsValidationFailed checks if an error is a validation failure
func IsValidationFailed(err error) bool {
	_, ok := err.(*ValidationFailedError)
	return ok
}

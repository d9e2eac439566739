// Package validation checks schema.org entities against a pluggable set of
// rules and reports typed errors and warnings.
package validation

import "fmt"

// Severity separates violations that make an entity invalid from advisory
// findings.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Error codes reported by the built-in rules.
const (
	CodeRequiredPropertyMissing = "REQUIRED_PROPERTY_MISSING"
	CodeInvalidPropertyType     = "INVALID_PROPERTY_TYPE"
	CodeInvalidPropertyValue    = "INVALID_PROPERTY_VALUE"
	CodeEmptyProperty           = "EMPTY_PROPERTY"
	CodeUnknownProperty         = "UNKNOWN_PROPERTY"
)

// Error is one validation finding with property context. Value carries the
// offending value when one exists.
type Error struct {
	Code     string   `json:"code"`
	Property string   `json:"property,omitempty"`
	Message  string   `json:"message"`
	Value    any      `json:"value,omitempty"`
	Severity Severity `json:"severity"`
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Property, e.Message)
}

// NewError builds an error-severity finding with an explicit code.
func NewError(code, property, message string) Error {
	return Error{Code: code, Property: property, Message: message, Severity: SeverityError}
}

// NewWarning builds a warning-severity finding with an explicit code.
func NewWarning(code, property, message string) Error {
	return Error{Code: code, Property: property, Message: message, Severity: SeverityWarning}
}

// NewRequiredMissing reports a required property that is absent.
func NewRequiredMissing(property, typeName string) Error {
	return NewError(CodeRequiredPropertyMissing, property,
		fmt.Sprintf("required property of %s is missing", typeName))
}

// NewInvalidType reports a value whose runtime type is outside the
// property's allow-list.
func NewInvalidType(property string, value any, want string) Error {
	err := NewError(CodeInvalidPropertyType, property,
		fmt.Sprintf("must be %s, got %T", want, value))
	err.Value = value
	return err
}

// NewInvalidValue reports a well-typed value that violates schema.org
// semantics.
func NewInvalidValue(property string, value any, message string) Error {
	err := NewError(CodeInvalidPropertyValue, property, message)
	err.Value = value
	return err
}

// NewUnknownProperty reports a property outside the type's vocabulary.
// Unknown properties still render; the warning flags likely typos.
func NewUnknownProperty(property, typeName string) Error {
	return NewWarning(CodeUnknownProperty, property,
		fmt.Sprintf("not a recognized property of %s", typeName))
}

// NewEmptyProperty reports a property set to nil, a blank string, or an
// empty sequence.
func NewEmptyProperty(property string) Error {
	return NewWarning(CodeEmptyProperty, property, "value is empty")
}

// Result collects the findings of a validation run. Warnings never affect
// Valid.
type Result struct {
	Valid    bool    `json:"valid"`
	Errors   []Error `json:"errors,omitempty"`
	Warnings []Error `json:"warnings,omitempty"`
}

// NewResult returns an empty, valid result.
func NewResult() Result {
	return Result{Valid: true}
}

// Add routes a finding to Errors or Warnings by severity.
func (r *Result) Add(err Error) {
	if err.Severity == SeverityWarning {
		r.Warnings = append(r.Warnings, err)
		return
	}
	r.Errors = append(r.Errors, err)
	r.Valid = false
}

// Merge folds another result into this one: both lists concatenate and
// validity ANDs.
func (r *Result) Merge(other Result) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Valid = r.Valid && other.Valid
}

// HasWarnings reports whether any advisory findings were collected.
func (r Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Err returns nil when the result is valid, otherwise an
// *InvalidEntityError carrying the full result.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &InvalidEntityError{Result: r}
}

// InvalidEntityError is returned by strict operations when an entity fails
// validation. The full Result is attached for callers that report more than
// the first finding.
type InvalidEntityError struct {
	Result Result
}

func (e *InvalidEntityError) Error() string {
	if len(e.Result.Errors) == 0 {
		return "entity failed validation"
	}
	first := e.Result.Errors[0]
	msg := fmt.Sprintf("entity failed validation: %s %s", first.Code, first.Error())
	if extra := len(e.Result.Errors) - 1; extra > 0 {
		msg = fmt.Sprintf("%s (and %d more)", msg, extra)
	}
	return msg
}

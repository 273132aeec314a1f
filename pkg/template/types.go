// Package template defines the shared value types for the rendering core:
// the runtime context a template is rendered against, the result of a
// substitution pass, and the validation report that accompanies it.
package template

// Context is the named-variable data supplied for one render call.
// Values may be strings, numbers, booleans, nil, []interface{} slices,
// nested map[string]interface{} objects, or time.Time values. The engine
// never mutates a context.
type Context map[string]interface{}

// ValidationResult reports structural errors and resolution warnings for a
// single template. Valid reflects only structural/schema failures; missing
// or mistyped values at render time are recorded as warnings and never flip
// Valid to false.
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// NewValidationResult returns an empty, valid result.
func NewValidationResult() ValidationResult {
	return ValidationResult{Valid: true}
}

// AddError records a structural error and marks the result invalid.
func (v *ValidationResult) AddError(msg string) {
	v.Valid = false
	v.Errors = append(v.Errors, msg)
}

// AddWarning records a warning. Warnings never affect Valid.
func (v *ValidationResult) AddWarning(msg string) {
	v.Warnings = append(v.Warnings, msg)
}

// Merge folds another result into this one.
func (v *ValidationResult) Merge(other ValidationResult) {
	if !other.Valid {
		v.Valid = false
	}
	v.Errors = append(v.Errors, other.Errors...)
	v.Warnings = append(v.Warnings, other.Warnings...)
}

// SubstitutionResult is what one render call produces.
type SubstitutionResult struct {
	// RenderedText is the template body with every placeholder resolved.
	RenderedText string

	// UsedVariables holds every distinct placeholder name that appeared in
	// the template body, regardless of repetition. Order is unspecified.
	UsedVariables []string

	Validation ValidationResult
}

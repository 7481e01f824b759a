package validators

// ValidationError ties a rule violation to the input field that caused it.
// It matches ErrValidation and, through Unwrap, the rule's own sentinel.
type ValidationError struct {
	Field string
	Err   error
}

// NewValidationError returns a field-scoped validation error.
func NewValidationError(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

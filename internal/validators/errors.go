package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")

	ErrInvalidFullName     = errors.New("full name must be at least 2 characters")
	ErrInvalidEmail        = errors.New("invalid email address")
	ErrInvalidAge          = errors.New("age must be between 18 and 120")
	ErrInvalidBirthYear    = errors.New("invalid birth year")
	ErrAgeMismatch         = errors.New("age does not match birth year")
	ErrMissingIDType       = errors.New("ID type is required")
	ErrWeakPassword        = errors.New("password does not meet complexity requirements")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrMissingDocument     = errors.New("ID document is required")
	ErrUnsupportedDocument = errors.New("ID document must be a JPEG, PNG or PDF file")
	ErrDocumentTooLarge    = errors.New("ID document must not exceed 5 MiB")
)

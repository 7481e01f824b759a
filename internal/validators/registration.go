package validators

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/flow-bank/internal/utils"
	"github.com/MKhiriev/flow-bank/models"
)

// Field name constants used to specify which fields should be validated and
// to scope the resulting ValidationError.
const (
	FieldFullName        = "fullName"
	FieldEmail           = "email"
	FieldAge             = "age"
	FieldBirthYear       = "birthYear"
	FieldIDType          = "idType"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldIDDocument      = "idDocument"

	// Transfer form fields.
	FieldFrom   = "from"
	FieldTo     = "to"
	FieldAmount = "amount"
)

// registrationFields is the default validation order.
var registrationFields = []string{
	FieldFullName, FieldEmail, FieldAge, FieldBirthYear, FieldIDType, FieldPassword, FieldIDDocument,
}

const minBirthYear = 1900

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Registration is the complete registration form input.
type Registration struct {
	Profile  models.Profile
	Password string
	Document *models.IDDocument
}

// RegistrationValidator implements Validator for Registration input.
// Rules run in field order and validation stops at the first failure.
type RegistrationValidator struct {
	validate *validator.Validate
	clock    utils.Clock
}

// NewRegistrationValidator constructs a RegistrationValidator. The clock
// supplies the current year for birth-year checks.
func NewRegistrationValidator(clock utils.Clock) Validator {
	v := validator.New()
	_ = v.RegisterValidation("bankemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})

	return &RegistrationValidator{validate: v, clock: clock}
}

// Validate accepts Registration or *Registration. Optional fields restrict
// validation to the named subset; when omitted every field is checked.
// Failures are returned as *ValidationError.
func (v *RegistrationValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case Registration:
		return v.validateRegistration(ctx, value, fields...)
	case *Registration:
		return v.validateRegistration(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *RegistrationValidator) validateRegistration(_ context.Context, r Registration, fields ...string) error {
	if len(fields) == 0 {
		fields = registrationFields
	}

	p := r.Profile
	currentYear := v.clock.Now().Year()

	for _, f := range fields {
		var err error
		switch f {
		case FieldFullName:
			if v.validate.Var(strings.TrimSpace(p.FullName), "min=2") != nil {
				err = ErrInvalidFullName
			}
		case FieldEmail:
			if v.validate.Var(strings.TrimSpace(p.Email), "required,bankemail") != nil {
				err = ErrInvalidEmail
			}
		case FieldAge:
			if v.validate.Var(p.Age, "gte=18,lte=120") != nil {
				err = ErrInvalidAge
			}
		case FieldBirthYear:
			if v.validate.Var(p.BirthYear, fmt.Sprintf("gte=%d,lte=%d", minBirthYear, currentYear)) != nil {
				err = ErrInvalidBirthYear
			} else if diff := (currentYear - p.BirthYear) - p.Age; diff > 1 || diff < -1 {
				err = ErrAgeMismatch
			}
		case FieldIDType:
			if v.validate.Var(strings.TrimSpace(p.IDType), "required") != nil {
				err = ErrMissingIDType
			}
		case FieldPassword:
			if !CheckPassword(r.Password).Complex() {
				err = ErrWeakPassword
			}
		case FieldIDDocument:
			err = validateDocument(r.Document)
		default:
			return ErrUnknownField
		}

		if err != nil {
			return NewValidationError(f, err)
		}
	}

	return nil
}

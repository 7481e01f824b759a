package validators

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/flow-bank/internal/utils"
	"github.com/MKhiriev/flow-bank/models"
)

var (
	pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	pdfHeader = []byte("%PDF-1.7\n1 0 obj\n<<>>\nendobj\n")
	jpgHeader = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
)

func newTestValidator() Validator {
	return NewRegistrationValidator(utils.NewFakeClock(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)))
}

func validRegistration() Registration {
	return Registration{
		Profile: models.Profile{
			FullName:  "Ada Lovelace",
			Email:     "ada@example.com",
			Age:       30,
			BirthYear: 1996,
			IDType:    "passport",
		},
		Password: "Str0ng!Pass",
		Document: &models.IDDocument{Name: "id.png", MIMEType: "image/png", Content: pngHeader},
	}
}

func TestRegistrationValidator_Valid(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.Validate(context.Background(), validRegistration()))
	r := validRegistration()
	assert.NoError(t, v.Validate(context.Background(), &r))
}

func TestRegistrationValidator_Rules(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Registration)
		wantField string
		wantErr   error
	}{
		{"short name", func(r *Registration) { r.Profile.FullName = " A " }, FieldFullName, ErrInvalidFullName},
		{"email without dot", func(r *Registration) { r.Profile.Email = "ada@example" }, FieldEmail, ErrInvalidEmail},
		{"email with space", func(r *Registration) { r.Profile.Email = "a da@example.com" }, FieldEmail, ErrInvalidEmail},
		{"empty email", func(r *Registration) { r.Profile.Email = "" }, FieldEmail, ErrInvalidEmail},
		{"too young", func(r *Registration) { r.Profile.Age = 17; r.Profile.BirthYear = 2009 }, FieldAge, ErrInvalidAge},
		{"too old", func(r *Registration) { r.Profile.Age = 121 }, FieldAge, ErrInvalidAge},
		{"birth year before 1900", func(r *Registration) { r.Profile.BirthYear = 1899 }, FieldBirthYear, ErrInvalidBirthYear},
		{"birth year in future", func(r *Registration) { r.Profile.BirthYear = 2027 }, FieldBirthYear, ErrInvalidBirthYear},
		{"age and birth year disagree", func(r *Registration) { r.Profile.Age = 25 }, FieldBirthYear, ErrAgeMismatch},
		{"missing id type", func(r *Registration) { r.Profile.IDType = "  " }, FieldIDType, ErrMissingIDType},
		{"weak password", func(r *Registration) { r.Password = "password" }, FieldPassword, ErrWeakPassword},
		{"password too short", func(r *Registration) { r.Password = "Abcde1!" }, FieldPassword, ErrWeakPassword},
		{"password without uppercase", func(r *Registration) { r.Password = "abcdef1!" }, FieldPassword, ErrWeakPassword},
		{"password without lowercase", func(r *Registration) { r.Password = "ABCDEF1!" }, FieldPassword, ErrWeakPassword},
		{"password without digit", func(r *Registration) { r.Password = "Abcdefg!" }, FieldPassword, ErrWeakPassword},
		{"password without symbol", func(r *Registration) { r.Password = "Abcdefg1" }, FieldPassword, ErrWeakPassword},
		{"missing document", func(r *Registration) { r.Document = nil }, FieldIDDocument, ErrMissingDocument},
		{"text document", func(r *Registration) {
			r.Document = &models.IDDocument{Name: "id.png", MIMEType: "image/png", Content: []byte("just some text")}
		}, FieldIDDocument, ErrUnsupportedDocument},
		{"declared gif without content", func(r *Registration) {
			r.Document = &models.IDDocument{Name: "id.gif", MIMEType: "image/gif", Size: 10}
		}, FieldIDDocument, ErrUnsupportedDocument},
		{"document too large", func(r *Registration) {
			content := append(bytes.Clone(pdfHeader), make([]byte, MaxDocumentSize)...)
			r.Document = &models.IDDocument{Name: "id.pdf", Content: content}
		}, FieldIDDocument, ErrDocumentTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRegistration()
			tt.mutate(&r)

			err := newTestValidator().Validate(context.Background(), r)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.ErrorIs(t, err, tt.wantErr)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestRegistrationValidator_AgeBoundaries(t *testing.T) {
	v := newTestValidator()

	for _, tc := range []struct {
		age, birthYear int
		ok             bool
	}{
		{age: 30, birthYear: 1995, ok: true},
		{age: 30, birthYear: 1997, ok: true},
		{age: 30, birthYear: 1994, ok: false},
		{age: 18, birthYear: 2008, ok: true},
		{age: 120, birthYear: 1906, ok: true},
	} {
		r := validRegistration()
		r.Profile.Age, r.Profile.BirthYear = tc.age, tc.birthYear
		err := v.Validate(context.Background(), r, FieldAge, FieldBirthYear)
		if tc.ok {
			assert.NoError(t, err, "age %d birth year %d", tc.age, tc.birthYear)
		} else {
			assert.Error(t, err, "age %d birth year %d", tc.age, tc.birthYear)
		}
	}
}

func TestRegistrationValidator_FirstFailureWins(t *testing.T) {
	r := validRegistration()
	r.Profile.FullName = ""
	r.Password = "weak"

	err := newTestValidator().Validate(context.Background(), r)
	assert.ErrorIs(t, err, ErrInvalidFullName)
	assert.NotErrorIs(t, err, ErrWeakPassword)
}

func TestRegistrationValidator_FieldScoping(t *testing.T) {
	r := Registration{Profile: models.Profile{Email: "ada@example.com"}}

	assert.NoError(t, newTestValidator().Validate(context.Background(), r, FieldEmail))
	assert.ErrorIs(t, newTestValidator().Validate(context.Background(), r, FieldFullName), ErrInvalidFullName)
}

func TestRegistrationValidator_AcceptedDocumentTypes(t *testing.T) {
	for name, content := range map[string][]byte{"png": pngHeader, "pdf": pdfHeader, "jpeg": jpgHeader} {
		t.Run(name, func(t *testing.T) {
			r := validRegistration()
			r.Document = &models.IDDocument{Name: "id." + name, Content: content}
			assert.NoError(t, newTestValidator().Validate(context.Background(), r, FieldIDDocument))
		})
	}
}

func TestRegistrationValidator_UnsupportedInput(t *testing.T) {
	v := newTestValidator()

	assert.ErrorIs(t, v.Validate(context.Background(), "nope"), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(context.Background(), validRegistration(), "nickname"), ErrUnknownField)
}

func TestDocumentMIMEType(t *testing.T) {
	assert.Equal(t, "application/pdf", DocumentMIMEType(models.IDDocument{Content: pdfHeader}))
	assert.Equal(t, "image/png", DocumentMIMEType(models.IDDocument{MIMEType: "image/png"}))
}

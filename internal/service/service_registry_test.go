package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/flow-bank/internal/mock"
	"github.com/MKhiriev/flow-bank/internal/store"
	"github.com/MKhiriev/flow-bank/internal/utils"
	"github.com/MKhiriev/flow-bank/internal/validators"
	"github.com/MKhiriev/flow-bank/models"
)

type registryMocks struct {
	users     *mock.MockUserRepository
	validator *mock.MockValidator
	hasher    *mock.MockPasswordHasher
	ids       *mock.MockIDGenerator
}

func newTestRegistrySvc(t *testing.T, ctrl *gomock.Controller) (RegistryService, registryMocks) {
	t.Helper()
	m := registryMocks{
		users:     mock.NewMockUserRepository(ctrl),
		validator: mock.NewMockValidator(ctrl),
		hasher:    mock.NewMockPasswordHasher(ctrl),
		ids:       mock.NewMockIDGenerator(ctrl),
	}
	svc := NewRegistryService(m.users, m.validator, m.hasher, m.ids, utils.NewFakeClock(testNow), utils.NewRedactor("test"))
	return svc, m
}

func testProfile() models.Profile {
	return models.Profile{
		FullName:  "  Ada Lovelace ",
		Email:     " Ada@Example.COM ",
		Address:   "12 St James's Square",
		Age:       36,
		BirthYear: 1990,
		IDType:    "passport",
	}
}

func testDocument() *models.IDDocument {
	return &models.IDDocument{
		Name:     "passport.png",
		MIMEType: "image/png",
		Content:  []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"),
	}
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestRegistryService_Register_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestRegistrySvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		m.validator.EXPECT().Validate(ctx, gomock.Any()).Return(nil),
		m.users.EXPECT().FindByEmail(ctx, "ada@example.com").Return(models.User{}, store.ErrNoUserWasFound),
		m.hasher.EXPECT().Hash("Str0ng!pass").Return("$argon2id$digest", nil),
		m.ids.EXPECT().Generate().Return("user-1"),
		m.users.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, u models.User, doc models.IDDocument) error {
				assert.Equal(t, "user-1", u.ID)
				assert.Equal(t, "ada@example.com", u.Email)
				assert.Equal(t, "Ada Lovelace", u.FullName)
				assert.Equal(t, "$argon2id$digest", u.PasswordDigest)
				assert.Equal(t, store.IDDocumentKey("user-1"), u.IDDocumentRef)
				assert.Equal(t, testNow, u.CreatedAt)
				assert.Equal(t, "image/png", doc.MIMEType)
				assert.EqualValues(t, len(doc.Content), doc.Size)
				return nil
			},
		),
	)

	user, err := svc.Register(ctx, testProfile(), "Str0ng!pass", testDocument())
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.NotContains(t, user.PasswordDigest, "Str0ng!pass")
}

func TestRegistryService_Register_ValidationFailureWritesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestRegistrySvc(t, ctrl)
	ctx := context.Background()

	m.validator.EXPECT().Validate(ctx, gomock.Any()).
		Return(validators.NewValidationError(validators.FieldAge, validators.ErrInvalidAge))

	_, err := svc.Register(ctx, testProfile(), "Str0ng!pass", testDocument())
	require.Error(t, err)
	assert.ErrorIs(t, err, validators.ErrValidation)
	assert.ErrorIs(t, err, validators.ErrInvalidAge)

	var vErr *validators.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, validators.FieldAge, vErr.Field)
}

func TestRegistryService_Register_DuplicateEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestRegistrySvc(t, ctrl)
	ctx := context.Background()

	m.validator.EXPECT().Validate(ctx, gomock.Any()).Return(nil)
	m.users.EXPECT().FindByEmail(ctx, "ada@example.com").Return(models.User{ID: "existing"}, nil)

	_, err := svc.Register(ctx, testProfile(), "Str0ng!pass", testDocument())
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRegistryService_Register_DuplicateOnCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestRegistrySvc(t, ctrl)
	ctx := context.Background()

	m.validator.EXPECT().Validate(ctx, gomock.Any()).Return(nil)
	m.users.EXPECT().FindByEmail(ctx, gomock.Any()).Return(models.User{}, store.ErrNoUserWasFound)
	m.hasher.EXPECT().Hash(gomock.Any()).Return("digest", nil)
	m.ids.EXPECT().Generate().Return("user-2")
	m.users.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).Return(store.ErrEmailAlreadyExists)

	_, err := svc.Register(ctx, testProfile(), "Str0ng!pass", testDocument())
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRegistryService_Register_LookupError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestRegistrySvc(t, ctrl)
	ctx := context.Background()
	dbErr := errors.New("disk I/O error")

	m.validator.EXPECT().Validate(ctx, gomock.Any()).Return(nil)
	m.users.EXPECT().FindByEmail(ctx, gomock.Any()).Return(models.User{}, dbErr)

	_, err := svc.Register(ctx, testProfile(), "Str0ng!pass", testDocument())
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.Contains(t, err.Error(), "user lookup failed")
}

func TestRegistryService_Register_HashError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestRegistrySvc(t, ctrl)
	ctx := context.Background()

	m.validator.EXPECT().Validate(ctx, gomock.Any()).Return(nil)
	m.users.EXPECT().FindByEmail(ctx, gomock.Any()).Return(models.User{}, store.ErrNoUserWasFound)
	m.hasher.EXPECT().Hash(gomock.Any()).Return("", errors.New("entropy exhausted"))

	_, err := svc.Register(ctx, testProfile(), "Str0ng!pass", testDocument())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password hashing failed")
}

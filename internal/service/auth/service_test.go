package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mamadbah2/sarpras/internal/domain/models"
	"github.com/mamadbah2/sarpras/internal/repository/mongodb"
	"github.com/mamadbah2/sarpras/internal/service/auth"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Insert(ctx context.Context, user models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.User), args.Error(1)
}

func newService(repo mongodb.UserRepository) *auth.Service {
	return auth.NewService(repo, "test-secret", time.Hour, nil)
}

func TestRegister_CreatesUserRole(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByEmail", mock.Anything, "guru@sekolah.sch.id").Return(models.User{}, mongodb.ErrUserNotFound)

	var inserted models.User
	repo.On("Insert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		inserted = args.Get(1).(models.User)
	}).Return(nil)

	svc := newService(repo)
	user, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Guru",
		Email:    "  GURU@sekolah.sch.id ",
		Password: "rahasia123",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, "guru@sekolah.sch.id", user.Email, "email is normalized before storage")
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "rahasia123", inserted.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(inserted.PasswordHash), []byte("rahasia123")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByEmail", mock.Anything, "guru@sekolah.sch.id").Return(models.User{Email: "guru@sekolah.sch.id"}, nil)

	svc := newService(repo)
	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Guru",
		Email:    "guru@sekolah.sch.id",
		Password: "rahasia123",
	})
	assert.ErrorIs(t, err, auth.ErrEmailTaken)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestLogin_RoundTrip(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := models.User{
		ID:           "user-1",
		Email:        "admin@sekolah.sch.id",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}

	repo := new(MockUserRepository)
	repo.On("FindByEmail", mock.Anything, "admin@sekolah.sch.id").Return(stored, nil)

	svc := newService(repo)
	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "admin@sekolah.sch.id",
		Password: "rahasia123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	claims, err := svc.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "admin@sekolah.sch.id", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := new(MockUserRepository)
	repo.On("FindByEmail", mock.Anything, "admin@sekolah.sch.id").Return(models.User{
		Email:        "admin@sekolah.sch.id",
		PasswordHash: string(hash),
	}, nil)

	svc := newService(repo)
	_, err = svc.Login(context.Background(), models.LoginRequest{
		Email:    "admin@sekolah.sch.id",
		Password: "salah",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByEmail", mock.Anything, "nobody@sekolah.sch.id").Return(models.User{}, mongodb.ErrUserNotFound)

	svc := newService(repo)
	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "nobody@sekolah.sch.id",
		Password: "apapun",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestParseToken_WrongSecret(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := new(MockUserRepository)
	repo.On("FindByEmail", mock.Anything, mock.Anything).Return(models.User{
		Email:        "admin@sekolah.sch.id",
		PasswordHash: string(hash),
	}, nil)

	issuer := newService(repo)
	resp, err := issuer.Login(context.Background(), models.LoginRequest{
		Email:    "admin@sekolah.sch.id",
		Password: "rahasia123",
	})
	require.NoError(t, err)

	verifier := auth.NewService(repo, "other-secret", time.Hour, nil)
	_, err = verifier.ParseToken(resp.Token)
	assert.Error(t, err)
}

func TestEnsureAdmin_SeedsOnce(t *testing.T) {
	repo := new(MockUserRepository)
	// Seeding looks the email up twice: once to decide whether to seed and
	// once inside the duplicate-email check of the create path.
	repo.On("FindByEmail", mock.Anything, "admin@sekolah.sch.id").Return(models.User{}, mongodb.ErrUserNotFound).Twice()
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Role == models.RoleAdmin
	})).Return(nil).Once()

	svc := newService(repo)
	require.NoError(t, svc.EnsureAdmin(context.Background(), "Admin", "admin@sekolah.sch.id", "rahasia123"))

	// Second run finds the existing account and inserts nothing.
	repo.On("FindByEmail", mock.Anything, "admin@sekolah.sch.id").Return(models.User{Role: models.RoleAdmin}, nil)
	require.NoError(t, svc.EnsureAdmin(context.Background(), "Admin", "admin@sekolah.sch.id", "rahasia123"))
	repo.AssertExpectations(t)
}

func TestEnsureAdmin_NoCredentialsConfigured(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newService(repo)

	require.NoError(t, svc.EnsureAdmin(context.Background(), "Admin", "", ""))
	repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

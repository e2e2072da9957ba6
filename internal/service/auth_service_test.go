package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/eduscribe/eduscribe-api/internal/models"
	appErrors "github.com/eduscribe/eduscribe-api/pkg/errors"
)

type mockUserRepo struct {
	usersByEmail     map[string]*models.User
	usersByID        map[string]*models.User
	findByEmailErr   error
	lastLoginUpdated bool
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		usersByEmail: make(map[string]*models.User),
		usersByID:    make(map[string]*models.User),
	}
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findByEmailErr != nil {
		return nil, m.findByEmailErr
	}
	user, ok := m.usersByEmail[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := m.usersByID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = "user-" + user.Email
	}
	m.usersByEmail[user.Email] = user
	m.usersByID[user.ID] = user
	return nil
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	m.lastLoginUpdated = true
	return nil
}

func (m *mockUserRepo) add(user *models.User) {
	m.usersByEmail[user.Email] = user
	m.usersByID[user.ID] = user
}

func testAuthConfig() AuthConfig {
	return AuthConfig{Secret: "secret", Expiration: time.Hour, Issuer: "eduscribe-test"}
}

func TestAuthServiceRegisterThenLogin(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), testAuthConfig())

	res, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "user@example.com",
		Password: "password",
		Username: "user",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "user@example.com", res.User.Email)

	login, err := svc.Login(context.Background(), models.LoginRequest{Email: "user@example.com", Password: "password"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	assert.True(t, repo.lastLoginUpdated)
}

func TestAuthServiceRegisterDuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	repo.add(&models.User{ID: "u1", Email: "user@example.com"})
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), testAuthConfig())

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "user@example.com",
		Password: "password",
		Username: "user",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrDuplicateEmail.Code, appErr.Code)
}

func TestAuthServiceLoginBadCredentialsIndistinguishable(t *testing.T) {
	password, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	repo := newMockUserRepo()
	repo.add(&models.User{ID: "u1", Email: "user@example.com", PasswordHash: string(password)})
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), testAuthConfig())

	_, unknownErr := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@example.com", Password: "password"})
	require.Error(t, unknownErr)

	_, wrongErr := svc.Login(context.Background(), models.LoginRequest{Email: "user@example.com", Password: "wrong"})
	require.Error(t, wrongErr)

	unknown := appErrors.FromError(unknownErr)
	wrong := appErrors.FromError(wrongErr)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, unknown.Code)
	assert.Equal(t, unknown.Code, wrong.Code)
	assert.Equal(t, unknown.Message, wrong.Message)
}

func TestAuthServiceVerifyToken(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), testAuthConfig())

	res, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "user@example.com",
		Password: "password",
		Username: "user",
	})
	require.NoError(t, err)

	info, err := svc.VerifyToken(context.Background(), res.Token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", info.Email)
}

func TestAuthServiceVerifyTokenDeletedUser(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), testAuthConfig())

	res, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "user@example.com",
		Password: "password",
		Username: "user",
	})
	require.NoError(t, err)

	delete(repo.usersByID, res.User.ID)
	delete(repo.usersByEmail, res.User.Email)

	_, err = svc.VerifyToken(context.Background(), res.Token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceExpiredToken(t *testing.T) {
	repo := newMockUserRepo()
	cfg := testAuthConfig()
	cfg.Expiration = -time.Minute
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), cfg)

	res, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "user@example.com",
		Password: "password",
		Username: "user",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(res.Token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceIssueWithoutSecret(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), AuthConfig{Expiration: time.Hour})

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "user@example.com",
		Password: "password",
		Username: "user",
	})
	require.Error(t, err)
}

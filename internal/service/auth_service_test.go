package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/HimanshuSagar02/RajChemReacor/internal/dto"
	"github.com/HimanshuSagar02/RajChemReacor/internal/models"
	"github.com/HimanshuSagar02/RajChemReacor/internal/repository"
)

type userRepoStub struct {
	users  map[uint]models.User
	nextID uint
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{users: map[uint]models.User{}, nextID: 1}
}

func (r *userRepoStub) GetByID(_ context.Context, id uint) (models.User, error) {
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (r *userRepoStub) GetByEmail(_ context.Context, email string) (models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (r *userRepoStub) GetByGoogleID(_ context.Context, googleID string) (models.User, error) {
	for _, user := range r.users {
		if user.GoogleID == googleID && googleID != "" {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (r *userRepoStub) List(_ context.Context, filter repository.UserFilter) ([]models.User, int64, error) {
	var out []models.User
	for _, user := range r.users {
		if filter.Role != "" && user.Role != filter.Role {
			continue
		}
		out = append(out, user)
	}
	return out, int64(len(out)), nil
}

func (r *userRepoStub) Create(_ context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = *user
	return nil
}

func (r *userRepoStub) Update(_ context.Context, user *models.User) error {
	r.users[user.ID] = *user
	return nil
}

func (r *userRepoStub) CountByRole(context.Context) (map[string]int64, error) {
	counts := map[string]int64{}
	for _, user := range r.users {
		counts[user.Role]++
	}
	return counts, nil
}

type verifierStub struct {
	claims GoogleClaims
	err    error
}

func (v verifierStub) Verify(string) (GoogleClaims, error) {
	return v.claims, v.err
}

func newAuthFixture(t *testing.T, verifier GoogleTokenVerifier) (AuthService, *userRepoStub) {
	t.Helper()

	users := newUserRepoStub()
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewAuthService(users, verifier, validate, "test-secret", 0, testLogger())
	return svc, users
}

func TestSignupAndLogin(t *testing.T) {
	svc, _ := newAuthFixture(t, verifierStub{})

	created, err := svc.Signup(context.Background(), dto.SignupRequest{
		Name:     "Asha Rao",
		Email:    "Asha@Example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleStudent, created.User.Role)
	require.Equal(t, "asha@example.com", created.User.Email)
	require.NotEmpty(t, created.Token)

	parsed, err := jwt.Parse(created.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	_, err = svc.Signup(context.Background(), dto.SignupRequest{
		Name:     "Asha Again",
		Email:    "asha@example.com",
		Password: "another-pass",
	})
	require.ErrorIs(t, err, ErrEmailTaken)

	session, err := svc.Login(context.Background(), dto.LoginRequest{Email: "asha@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	require.Equal(t, created.User.ID, session.User.ID)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "asha@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGoogleSignupUpsertsByIdentity(t *testing.T) {
	verifier := verifierStub{claims: GoogleClaims{Subject: "google-123", Email: "ravi@example.com", Name: "Ravi K"}}
	svc, users := newAuthFixture(t, verifier)

	first, err := svc.GoogleSignup(context.Background(), dto.GoogleSignupRequest{IDToken: "token", PhotoURL: "https://img.example.com/p.png"})
	require.NoError(t, err)
	require.Equal(t, models.RoleStudent, first.User.Role)
	require.Equal(t, "ravi@example.com", first.User.Email)

	// Same identity signs in again: no duplicate account.
	second, err := svc.GoogleSignup(context.Background(), dto.GoogleSignupRequest{IDToken: "token"})
	require.NoError(t, err)
	require.Equal(t, first.User.ID, second.User.ID)
	require.Len(t, users.users, 1)
}

func TestGoogleSignupLinksExistingEmailAccount(t *testing.T) {
	verifier := verifierStub{claims: GoogleClaims{Subject: "google-77", Email: "meera@example.com", Name: "Meera"}}
	svc, users := newAuthFixture(t, verifier)

	existing, err := svc.Signup(context.Background(), dto.SignupRequest{Name: "Meera", Email: "meera@example.com", Password: "password123"})
	require.NoError(t, err)

	linked, err := svc.GoogleSignup(context.Background(), dto.GoogleSignupRequest{IDToken: "token"})
	require.NoError(t, err)
	require.Equal(t, existing.User.ID, linked.User.ID)
	require.Equal(t, "google-77", users.users[linked.User.ID].GoogleID)
	require.Len(t, users.users, 1)
}

func TestGoogleSignupRejectsBadToken(t *testing.T) {
	svc, _ := newAuthFixture(t, verifierStub{err: errors.New("aud mismatch")})

	_, err := svc.GoogleSignup(context.Background(), dto.GoogleSignupRequest{IDToken: "forged"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginGoogleOnlyAccountHasNoPassword(t *testing.T) {
	verifier := verifierStub{claims: GoogleClaims{Subject: "google-9", Email: "dev@example.com", Name: "Dev"}}
	svc, _ := newAuthFixture(t, verifier)

	_, err := svc.GoogleSignup(context.Background(), dto.GoogleSignupRequest{IDToken: "token"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "dev@example.com", Password: "anything"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

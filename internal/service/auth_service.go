package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/HimanshuSagar02/RajChemReacor/internal/dto"
	"github.com/HimanshuSagar02/RajChemReacor/internal/models"
	"github.com/HimanshuSagar02/RajChemReacor/internal/repository"
)

// GoogleTokenVerifier validates a Google ID token and returns the claims the
// auth service needs. Abstracted so tests can stub the network check.
type GoogleTokenVerifier interface {
	Verify(idToken string) (GoogleClaims, error)
}

// GoogleClaims is the subset of the Google ID token used for upsert.
type GoogleClaims struct {
	Subject string
	Email   string
	Name    string
}

type googleTokenVerifier struct {
	clientID string
}

// NewGoogleTokenVerifier checks tokens against the configured OAuth client.
func NewGoogleTokenVerifier(clientID string) GoogleTokenVerifier {
	return &googleTokenVerifier{clientID: clientID}
}

func (v *googleTokenVerifier) Verify(idToken string) (GoogleClaims, error) {
	verifier := googleAuthIDTokenVerifier.Verifier{}
	if err := verifier.VerifyIDToken(idToken, []string{v.clientID}); err != nil {
		return GoogleClaims{}, fmt.Errorf("invalid google id token: %w", err)
	}

	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return GoogleClaims{}, fmt.Errorf("failed to decode google id token: %w", err)
	}

	return GoogleClaims{Subject: claimSet.Sub, Email: claimSet.Email, Name: claimSet.Name}, nil
}

// AuthService handles registration, login, and Google sign-in upsert.
type AuthService interface {
	Signup(ctx context.Context, req dto.SignupRequest) (dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error)
	GoogleSignup(ctx context.Context, req dto.GoogleSignupRequest) (dto.AuthResponse, error)
	CurrentUser(ctx context.Context, userID uint) (dto.UserResponse, error)
}

type authService struct {
	users     repository.UserRepository
	verifier  GoogleTokenVerifier
	validator *validator.Validate
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService builds the authentication service.
func NewAuthService(users repository.UserRepository, verifier GoogleTokenVerifier, validate *validator.Validate, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}

	return &authService{
		users:     users,
		verifier:  verifier,
		validator: validate,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) Signup(ctx context.Context, req dto.SignupRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AuthResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return dto.AuthResponse{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.AuthResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleStudent
	}

	user := models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return dto.AuthResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("role", user.Role).Msg("account created")
	return s.issueSession(user)
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AuthResponse{}, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AuthResponse{}, ErrInvalidCredentials
		}
		return dto.AuthResponse{}, err
	}

	if user.Password == "" {
		// Google-only account: no password to compare against.
		return dto.AuthResponse{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return dto.AuthResponse{}, ErrInvalidCredentials
	}

	return s.issueSession(user)
}

// GoogleSignup verifies the forwarded ID token and upserts the account by
// Google identity: an existing account is signed in, a new one is created
// with the student role unless the request asks for educator.
func (s *authService) GoogleSignup(ctx context.Context, req dto.GoogleSignupRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AuthResponse{}, err
	}

	claims, err := s.verifier.Verify(req.IDToken)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("%w: %s", ErrInvalidCredentials, err)
	}

	user, err := s.users.GetByGoogleID(ctx, claims.Subject)
	if err == nil {
		return s.issueSession(user)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.AuthResponse{}, err
	}

	// Link an existing email account rather than duplicating it.
	user, err = s.users.GetByEmail(ctx, claims.Email)
	if err == nil {
		user.GoogleID = claims.Subject
		if user.PhotoURL == "" {
			user.PhotoURL = req.PhotoURL
		}
		if err := s.users.Update(ctx, &user); err != nil {
			return dto.AuthResponse{}, err
		}
		return s.issueSession(user)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.AuthResponse{}, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = claims.Name
	}
	if name == "" {
		name = "User"
	}

	role := req.Role
	if role == "" {
		role = models.RoleStudent
	}

	user = models.User{
		Name:     name,
		Email:    strings.ToLower(claims.Email),
		Role:     role,
		PhotoURL: req.PhotoURL,
		GoogleID: claims.Subject,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return dto.AuthResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Msg("account created via google sign-in")
	return s.issueSession(user)
}

func (s *authService) CurrentUser(ctx context.Context, userID uint) (dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrNotFound
		}
		return dto.UserResponse{}, err
	}
	return dto.NewUserResponse(user), nil
}

func (s *authService) issueSession(user models.User) (dto.AuthResponse, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return dto.AuthResponse{User: dto.NewUserResponse(user), Token: signed}, nil
}

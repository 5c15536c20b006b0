package auth

import (
	"context"
	"errors"
	"log"
	"strings"

	"cashper/internal/models"
	"cashper/internal/repositories"
	"cashper/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned for a wrong email or password. The
	// two cases are deliberately indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned when registering an email that already has
	// an account.
	ErrEmailTaken = errors.New("an account with this email already exists")

	// ErrTokenRevoked is returned when a token's version no longer matches
	// the user's current version.
	ErrTokenRevoked = errors.New("token has been revoked")
)

// Service implements registration, login and token lifecycle on top of the
// user repository.
type Service struct {
	users *repositories.UserRepository
}

func NewService(users *repositories.UserRepository) *Service {
	return &Service{users: users}
}

// TokenPair is what login and refresh hand back to the client.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Register creates a new account with a bcrypt-hashed password and returns
// the created user.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     req.Name,
		Email:    email,
		Phone:    req.Phone,
		Password: string(hashed),
		Role:     models.RoleUser,
		Status:   "Active",
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a token pair.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	if err := s.users.TouchLogin(ctx, user.ID); err != nil {
		log.Printf("failed to stamp last login for %s: %v", user.Email, err)
	}
	return user, pair, nil
}

// Refresh validates a refresh token and issues a fresh pair. A token whose
// version trails the user's current version has been revoked by logout.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	_, claims, err := utils.ParseToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrTokenRevoked
	}
	if claims.TokenVersion != user.TokenVersion {
		return nil, ErrTokenRevoked
	}
	return s.issueTokens(user)
}

// Logout revokes every outstanding token for the user by bumping the stored
// token version.
func (s *Service) Logout(ctx context.Context, userID string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	return s.users.BumpTokenVersion(ctx, user.ID)
}

func (s *Service) issueTokens(user *models.User) (*TokenPair, error) {
	claims := &models.UserClaims{
		UserID:       user.ID.Hex(),
		Email:        user.Email,
		Role:         user.Role,
		IsAdmin:      user.IsAdmin || user.Role == models.RoleAdmin,
		TokenVersion: user.TokenVersion,
	}
	access, refresh, err := utils.GenerateTokens(claims)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

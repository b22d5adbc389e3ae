package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth"
	"golang.org/x/crypto/bcrypt"
)

// DefaultTokenTTL is the session length when none is configured
const DefaultTokenTTL = time.Hour

// Service issues and verifies credentials. Tokens carry the account email
// as the caller identity checked by the asset coordinator.
type Service struct {
	users    UserStore
	tokens   *jwtauth.JWTAuth
	tokenTTL time.Duration
}

// NewService creates an auth service signing tokens with the given secret
func NewService(users UserStore, secret string, tokenTTL time.Duration) (*Service, error) {
	if secret == "" {
		return nil, errors.New("JWT secret is required")
	}
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}

	return &Service{
		users:    users,
		tokens:   jwtauth.New("HS256", []byte(secret), nil),
		tokenTTL: tokenTTL,
	}, nil
}

// TokenAuth exposes the verifier for route middleware
func (s *Service) TokenAuth() *jwtauth.JWTAuth {
	return s.tokens
}

// Signup registers a new account and returns a session token
func (s *Service) Signup(ctx context.Context, username, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", errors.New("email and password are required")
	}

	if _, err := s.users.GetUser(ctx, email); err == nil {
		return "", ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return "", err
	}

	return s.issueToken(email)
}

// Login verifies a password and returns a session token
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetUser(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	return s.issueToken(email)
}

func (s *Service) issueToken(email string) (string, error) {
	claims := map[string]interface{}{"email": email}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, s.tokenTTL)

	_, token, err := s.tokens.Encode(claims)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return token, nil
}

// CallerEmail extracts the verified caller identity from a request context
// populated by jwtauth.Verifier
func CallerEmail(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", err
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", errors.New("token has no email claim")
	}

	return email, nil
}

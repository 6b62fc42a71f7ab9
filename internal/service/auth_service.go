package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"itemhub/internal/models"
	"itemhub/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Domain errors for auth flows.
var (
	ErrUsernameTaken   = errors.New("username already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidToken    = errors.New("invalid token")
)

// AuthService handles registration, login, and token verification.
type AuthService struct {
	users      repository.Users
	activity   repository.Activity
	signingKey []byte
}

func NewAuthService(users repository.Users, activity repository.Activity, signingKey string) *AuthService {
	return &AuthService{
		users:      users,
		activity:   activity,
		signingKey: []byte(signingKey),
	}
}

// Claims defines JWT claims. The token is a self-contained assertion of
// the username; validity is determined solely by the signature.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// SignUp hashes the password and creates a new user.
// Fails with ErrUsernameTaken when the username is already registered.
func (s *AuthService) SignUp(ctx context.Context, username, password string) (int, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("invalid password: %w", err)
	}

	existing, err := s.users.GetByUsername(username)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, ErrUsernameTaken
	}

	id, err := s.users.Create(username, hash)
	if err != nil {
		return 0, err
	}

	s.record(ctx, id, models.ActivityRegister, "user registered")
	return id, nil
}

// GenerateToken validates credentials and returns a signed JWT.
func (s *AuthService) GenerateToken(ctx context.Context, username, password string) (string, error) {
	u, err := s.users.GetByUsername(username)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrUserNotFound
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", ErrInvalidPassword
	}

	token, err := s.issueToken(u.Username)
	if err != nil {
		return "", err
	}

	s.record(ctx, u.ID, models.ActivityLogin, "user logged in")
	return token, nil
}

// ParseToken verifies the signature and returns the username claim.
func (s *AuthService) ParseToken(accessToken string) (string, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Username == "" {
		return "", ErrInvalidToken
	}

	return claims.Username, nil
}

// Authenticate verifies a token and resolves the user it asserts.
func (s *AuthService) Authenticate(accessToken string) (*models.User, error) {
	username, err := s.ParseToken(accessToken)
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		// Token signed by us but for a user we no longer know about.
		return nil, ErrInvalidToken
	}
	return u, nil
}

// record appends an activity event; activity logging is best-effort and
// never fails the auth operation.
func (s *AuthService) record(ctx context.Context, userID int, typ, msg string) {
	_ = s.activity.Append(ctx, models.ActivityEvent{
		UserID:      userID,
		Type:        typ,
		Description: msg,
	})
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT binding the username. No expiry: tokens stay
// valid as long as the signing key does.
func (s *AuthService) issueToken(username string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		Username: username,
	})
	return token.SignedString(s.signingKey)
}

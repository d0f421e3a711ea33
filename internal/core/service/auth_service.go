package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/martijn/skyboard/internal/core/domain"
	"github.com/martijn/skyboard/internal/core/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	BcryptCost  = 10
	TokenIssuer = "skyboard"
)

type AuthService struct {
	userRepo      repository.UserRepository
	sessionRepo   repository.SessionRepository
	sessionSecret []byte
	sessionTTL    time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	sessionSecret []byte,
	sessionTTL time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		sessionRepo:   sessionRepo,
		sessionSecret: sessionSecret,
		sessionTTL:    sessionTTL,
	}
}

// SessionTTL is how long a freshly issued session stays valid.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// HashPassword hashes a password using bcrypt
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against a hash
func (s *AuthService) VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Register creates a user. Every field is required and usernames are unique.
func (s *AuthService) Register(ctx context.Context, username, password, mainLocation string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	mainLocation = strings.TrimSpace(mainLocation)

	if username == "" || password == "" || mainLocation == "" {
		return nil, domain.NewValidationError("", "Please fill in all fields")
	}

	_, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil {
		return nil, usernameTaken(username, domain.ErrUsernameTaken)
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashedPassword, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := domain.NewUser(username, hashedPassword, mainLocation)
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration.
		if errors.Is(err, domain.ErrUsernameTaken) {
			return nil, usernameTaken(username, err)
		}
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and opens a session. The returned token is
// what the browser presents on later requests.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", invalidCredentials(err)
		}
		return nil, "", err
	}

	if !s.VerifyPassword(password, user.Password) {
		return nil, "", invalidCredentials(nil)
	}

	session := domain.NewSession(user.ID, s.sessionTTL)
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, "", fmt.Errorf("failed to create session: %w", err)
	}

	// Clean up expired sessions
	_ = s.sessionRepo.DeleteExpired(ctx)

	token, err := s.generateToken(session)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Authenticate resolves a session token to its user. The session must still
// exist server-side, so a logged-out token stops working immediately.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.ValidateToken(token)
	if err != nil {
		return nil, unauthenticated(err)
	}

	session, err := s.sessionRepo.FindByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, unauthenticated(err)
		}
		return nil, err
	}

	if session.IsExpired() {
		_ = s.sessionRepo.Delete(ctx, session.ID)
		return nil, unauthenticated(errors.New("session expired"))
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, unauthenticated(err)
		}
		return nil, err
	}

	return user, nil
}

// Logout removes the session behind token. Invalid or unknown tokens are
// ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	claims, err := s.ValidateToken(token)
	if err != nil {
		return nil
	}

	if err := s.sessionRepo.Delete(ctx, claims.ID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return err
	}
	return nil
}

// ValidateToken validates a session token and returns the claims
func (s *AuthService) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.sessionSecret, nil
	}, jwt.WithIssuer(TokenIssuer))

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid && claims.ID != "" {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token claims")
}

func (s *AuthService) generateToken(session *domain.Session) (string, error) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   strconv.FormatInt(session.UserID, 10),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
			NotBefore: jwt.NewNumericDate(session.CreatedAt),
			Issuer:    TokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.sessionSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// SessionClaims is the signed content of the session cookie. The JWT ID is
// the server-side session id.
type SessionClaims struct {
	jwt.RegisteredClaims
}

func usernameTaken(username string, cause error) error {
	return &domain.ValidationError{
		Field:   "username",
		Message: fmt.Sprintf("Username %q is already taken", username),
		Err:     cause,
	}
}

package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"supaboard/internal/apperrors"
	"supaboard/internal/models"
	"supaboard/internal/utils"
)

const MinPasswordLength = 6

const invalidCredentials = "invalid email or password"

type AuthService struct {
	users    UserStore
	sessions SessionStore
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

func NewAuthService(users UserStore, sessions SessionStore, secret []byte, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		secret:   secret,
		ttl:      utils.SessionTTL,
		now:      time.Now,
		logger:   logger,
	}
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	var fields []apperrors.FieldError
	if strings.TrimSpace(username) == "" {
		fields = append(fields, apperrors.FieldError{Position: -1, Field: "username", Message: "Username is required"})
	}
	if strings.TrimSpace(email) == "" {
		fields = append(fields, apperrors.FieldError{Position: -1, Field: "email", Message: "Email is required"})
	}
	if len(password) < MinPasswordLength {
		fields = append(fields, apperrors.FieldError{Position: -1, Field: "password", Message: "Password must be at least 6 characters"})
	}
	if len(fields) > 0 {
		return nil, apperrors.Validation("invalid registration details", fields...)
	}

	user := &models.User{Username: username, Email: email}
	user.Prepare()

	existing, err := s.users.FindByEmail(ctx, user.Email)
	if err != nil {
		s.logger.Error("Failed to look up user", zap.Error(err))
		return nil, apperrors.Internal("Failed to register", err)
	}
	if existing != nil {
		return nil, apperrors.DuplicateName("email is already registered")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, apperrors.Internal("Failed to register", err)
	}
	user.PasswordHash = hash

	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", zap.String("email", user.Email), zap.Error(err))
		return nil, apperrors.FromStore(err, "", "email is already registered", "Failed to register")
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID.String()))
	return user, nil
}

// Login checks the credentials and opens a session. The returned token is
// the cookie value.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email = models.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, apperrors.Auth(invalidCredentials)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Error("Failed to look up user", zap.Error(err))
		return "", nil, apperrors.Internal("Failed to sign in", err)
	}
	if user == nil {
		return "", nil, apperrors.Auth(invalidCredentials)
	}
	if err := utils.VerifyPassword(user.PasswordHash, password); err != nil {
		return "", nil, apperrors.Auth(invalidCredentials)
	}

	token, claims, err := utils.GenerateSessionToken(user.ID, s.secret, s.now(), s.ttl)
	if err != nil {
		return "", nil, apperrors.Internal("Failed to sign in", err)
	}
	if err := s.sessions.Store(ctx, claims.ID, user.ID.String(), s.ttl); err != nil {
		s.logger.Error("Failed to store session", zap.Error(err))
		return "", nil, apperrors.Internal("Failed to sign in", err)
	}

	s.logger.Info("User signed in", zap.String("user_id", user.ID.String()))
	return token, user, nil
}

// CurrentUser resolves the user behind a session token. Every way a token
// can be unusable yields the same auth error.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, apperrors.Auth("not signed in")
	}

	claims, err := utils.VerifySessionToken(token, s.secret)
	if err != nil {
		return nil, apperrors.Auth("session is invalid or has expired")
	}

	registered, ok, err := s.sessions.Lookup(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Failed to look up session", zap.Error(err))
		return nil, apperrors.Internal("Failed to resolve session", err)
	}
	if !ok || registered != claims.Subject {
		return nil, apperrors.Auth("session is invalid or has expired")
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, apperrors.Auth("session is invalid or has expired")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to look up user", zap.Error(err))
		return nil, apperrors.Internal("Failed to resolve session", err)
	}
	if user == nil {
		return nil, apperrors.Auth("session is invalid or has expired")
	}
	return user, nil
}

// Logout revokes the session. Unusable tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := utils.VerifySessionToken(token, s.secret)
	if err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, claims.ID); err != nil {
		s.logger.Error("Failed to revoke session", zap.Error(err))
		return apperrors.Internal("Failed to sign out", err)
	}
	return nil
}

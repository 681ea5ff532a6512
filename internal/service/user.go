package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Vibhav-y/GitTool/internal/auth"
	"github.com/Vibhav-y/GitTool/internal/model"
	"github.com/Vibhav-y/GitTool/internal/repository"
)

const minPasswordLength = 6

// AuthService owns accounts and sessions.
type AuthService struct {
	users    UserStore
	tokens   *TokenService
	sessions *auth.Sessions
	oauth    CodeExchanger
	log      *slog.Logger
}

func NewAuthService(users UserStore, tokens *TokenService, sessions *auth.Sessions, oauth CodeExchanger, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		sessions: sessions,
		oauth:    oauth,
		log:      log,
	}
}

func (s *AuthService) SignUp(ctx context.Context, email, password string) (*model.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, invalid("Email and password required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, invalid("Invalid email address")
	}
	if len(password) < minPasswordLength {
		return nil, invalid("Password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{Email: email, PasswordHash: string(hash)}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	// The grant is also created lazily, so a failure here is not fatal.
	if _, err := s.tokens.GetBalance(ctx, user.ID); err != nil {
		s.log.Warn("failed to create initial balance", "user_id", user.ID, "err", err)
	}

	s.log.Info("user signed up", "user_id", user.ID)
	return s.issue(user)
}

func (s *AuthService) LogIn(ctx context.Context, email, password string) (*model.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, invalid("Email and password required")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	balance, err := s.tokens.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.UserProfile{User: *user, Balance: balance}, nil
}

// DeleteAccount removes the user and everything they own.
func (s *AuthService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if err := s.users.DeleteUser(ctx, userID); err != nil {
		return err
	}
	s.log.Info("user deleted account", "user_id", userID)
	return nil
}

func (s *AuthService) ExchangeGitHubCode(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", invalid("No code provided")
	}
	return s.oauth.ExchangeCode(ctx, code)
}

func (s *AuthService) issue(user *model.User) (*model.Session, error) {
	token, expires, err := s.sessions.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &model.Session{AccessToken: token, ExpiresAt: expires, User: *user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

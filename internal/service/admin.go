package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Vibhav-y/GitTool/internal/model"
	"github.com/Vibhav-y/GitTool/internal/repository"
)

type AdminService struct {
	store       AdminStore
	settings    SettingsStore
	users       UserStore
	tokens      *TokenService
	adminEmails map[string]bool
}

func NewAdminService(store AdminStore, settings SettingsStore, users UserStore, tokens *TokenService, adminEmails []string) *AdminService {
	emails := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		emails[strings.ToLower(e)] = true
	}
	return &AdminService{
		store:       store,
		settings:    settings,
		users:       users,
		tokens:      tokens,
		adminEmails: emails,
	}
}

// IsAdmin checks the configured admin emails first, then the admins table.
func (s *AdminService) IsAdmin(ctx context.Context, userID uuid.UUID, email string) (bool, error) {
	if email != "" && s.adminEmails[strings.ToLower(email)] {
		return true, nil
	}
	return s.store.IsAdmin(ctx, userID)
}

func (s *AdminService) Stats(ctx context.Context) (*model.AdminStats, error) {
	return s.store.GetStats(ctx)
}

// GrantTokens credits a user manually and records who did it.
func (s *AdminService) GrantTokens(ctx context.Context, adminID, userID uuid.UUID, amount int64, description string) (int64, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return 0, err
	}
	if description == "" {
		description = "Manual grant"
	}

	balance, err := s.tokens.Grant(ctx, userID, amount, description)
	if err != nil {
		return 0, err
	}

	_ = s.store.LogAdminAction(ctx, adminID, model.AdminActionGrantTokens, &userID, map[string]interface{}{
		"amount":      amount,
		"description": description,
		"balance":     balance,
	})

	return balance, nil
}

// AddAdmin promotes an existing user to admin.
func (s *AdminService) AddAdmin(ctx context.Context, adminID, userID uuid.UUID) error {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return err
	}

	if err := s.store.CreateAdmin(ctx, &model.Admin{
		UserID:    userID,
		Role:      model.AdminRoleAdmin,
		CreatedBy: &adminID,
	}); err != nil {
		return err
	}

	_ = s.store.LogAdminAction(ctx, adminID, model.AdminActionAddAdmin, &userID, nil)
	return nil
}

func (s *AdminService) Settings(ctx context.Context) (map[string]string, error) {
	return s.settings.GetAllSettings(ctx)
}

func (s *AdminService) SignupGrant(ctx context.Context) int64 {
	return s.tokens.DefaultGrant(ctx)
}

func (s *AdminService) SetSignupGrant(ctx context.Context, adminID uuid.UUID, tokens int64) error {
	if tokens < 0 {
		return invalid("Signup grant must not be negative")
	}

	old := s.tokens.DefaultGrant(ctx)
	if err := s.settings.SetSetting(ctx, repository.SettingSignupGrant, strconv.FormatInt(tokens, 10)); err != nil {
		return err
	}

	_ = s.store.LogAdminAction(ctx, adminID, model.AdminActionSetSignupGrant, nil, map[string]interface{}{
		"old_value": old,
		"new_value": tokens,
	})
	return nil
}

func (s *AdminService) Logs(ctx context.Context, limit, offset int) ([]model.AdminLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.GetAdminLogs(ctx, limit, offset)
}

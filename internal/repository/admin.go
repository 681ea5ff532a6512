package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/Vibhav-y/GitTool/internal/model"
)

// IsAdmin checks if a user is an admin
func (r *Repository) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM admins WHERE user_id = $1`, userID)
	return count > 0, err
}

func (r *Repository) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO admins (user_id, role, created_by)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO NOTHING`,
		admin.UserID, admin.Role, admin.CreatedBy)
	return err
}

// LogAdminAction stores an admin log entry with JSON details
func (r *Repository) LogAdminAction(ctx context.Context, adminID uuid.UUID, action string, targetUserID *uuid.UUID, details interface{}) error {
	var detailsJSON []byte
	if details != nil {
		var err error
		detailsJSON, err = json.Marshal(details)
		if err != nil {
			return err
		}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO admin_logs (admin_id, action, target_user_id, details)
		VALUES ($1, $2, $3, $4)`,
		adminID, action, targetUserID, detailsJSON)
	return err
}

// GetAdminLogs retrieves admin action logs
func (r *Repository) GetAdminLogs(ctx context.Context, limit, offset int) ([]model.AdminLog, error) {
	logs := []model.AdminLog{}
	err := r.db.SelectContext(ctx, &logs, `
		SELECT * FROM admin_logs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	return logs, err
}

func (r *Repository) GetStats(ctx context.Context) (*model.AdminStats, error) {
	var stats model.AdminStats
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM payments WHERE status = 'paid'),
			(SELECT COALESCE(SUM(tokens), 0) FROM payments WHERE status = 'paid'),
			(SELECT COUNT(*) FROM token_transactions WHERE type = 'generate'),
			(SELECT COUNT(*) FROM token_transactions WHERE type = 'chat'),
			(SELECT COUNT(*) FROM readmes)`,
	).Scan(&stats.TotalUsers, &stats.PaidOrders, &stats.TokensSold, &stats.Generations, &stats.ChatEdits, &stats.SavedReadmes)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

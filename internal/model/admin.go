package model

import (
	"time"

	"github.com/google/uuid"
)

type AdminRole string

const (
	AdminRoleAdmin      AdminRole = "admin"
	AdminRoleSuperAdmin AdminRole = "superadmin"
)

type Admin struct {
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	Role      AdminRole  `json:"role" db:"role"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	CreatedBy *uuid.UUID `json:"created_by,omitempty" db:"created_by"`
}

type AdminLog struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	AdminID      uuid.UUID  `json:"admin_id" db:"admin_id"`
	Action       string     `json:"action" db:"action"`
	TargetUserID *uuid.UUID `json:"target_user_id,omitempty" db:"target_user_id"`
	Details      []byte     `json:"details,omitempty" db:"details"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

type AdminStats struct {
	TotalUsers   int   `json:"total_users"`
	PaidOrders   int   `json:"paid_orders"`
	TokensSold   int64 `json:"tokens_sold"`
	Generations  int   `json:"generations"`
	ChatEdits    int   `json:"chat_edits"`
	SavedReadmes int   `json:"saved_readmes"`
}

// Admin action constants
const (
	AdminActionGrantTokens    = "grant_tokens"
	AdminActionSetSignupGrant = "set_signup_grant"
	AdminActionSetSetting     = "set_setting"
	AdminActionAddAdmin       = "add_admin"
)

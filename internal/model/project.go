package model

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID                uuid.UUID `json:"id" db:"id"`
	UserID            uuid.UUID `json:"user_id" db:"user_id"`
	Title             string    `json:"title" db:"title"`
	RepoURL           string    `json:"repo_url" db:"repo_url"`
	Template          string    `json:"template" db:"template"`
	GeneratedMarkdown string    `json:"generated_markdown" db:"generated_markdown"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

type ProjectUpdate struct {
	Title             *string `json:"title"`
	Template          *string `json:"template"`
	GeneratedMarkdown *string `json:"generated_markdown"`
}

type SavedReadme struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	RepoName  string    `json:"repo_name" db:"repo_name"`
	Content   string    `json:"content" db:"content"`
	UserEmail string    `json:"user_email" db:"user_email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

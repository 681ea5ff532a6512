package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/Vibhav-y/GitTool/internal/model"
)

var ErrProjectNotFound = errors.New("project not found")

func (r *Repository) CreateProject(ctx context.Context, p *model.Project) error {
	query := `
		INSERT INTO projects (user_id, title, repo_url, template, generated_markdown)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		p.UserID,
		p.Title,
		p.RepoURL,
		p.Template,
		p.GeneratedMarkdown,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *Repository) GetProject(ctx context.Context, id, userID uuid.UUID) (*model.Project, error) {
	var p model.Project
	err := r.db.GetContext(ctx, &p, "SELECT * FROM projects WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repository) ListProjects(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	projects := []model.Project{}
	err := r.db.SelectContext(ctx, &projects,
		"SELECT * FROM projects WHERE user_id = $1 ORDER BY updated_at DESC", userID)
	return projects, err
}

// UpdateProject applies the non-nil fields of upd.
func (r *Repository) UpdateProject(ctx context.Context, id, userID uuid.UUID, upd model.ProjectUpdate) (*model.Project, error) {
	var p model.Project
	err := r.db.GetContext(ctx, &p, `
		UPDATE projects SET
			title = COALESCE($3, title),
			template = COALESCE($4, template),
			generated_markdown = COALESCE($5, generated_markdown),
			updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING *`,
		id, userID, upd.Title, upd.Template, upd.GeneratedMarkdown)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repository) DeleteProject(ctx context.Context, id, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *Repository) CreateSavedReadme(ctx context.Context, s *model.SavedReadme) error {
	query := `
		INSERT INTO readmes (user_id, repo_name, content, user_email)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query, s.UserID, s.RepoName, s.Content, s.UserEmail).
		Scan(&s.ID, &s.CreatedAt)
}

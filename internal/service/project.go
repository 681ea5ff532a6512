package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Vibhav-y/GitTool/internal/model"
)

type ProjectService struct {
	projects ProjectStore
}

func NewProjectService(projects ProjectStore) *ProjectService {
	return &ProjectService{projects: projects}
}

type CreateProjectRequest struct {
	Title             string `json:"title"`
	RepoURL           string `json:"repo_url"`
	Template          string `json:"template"`
	GeneratedMarkdown string `json:"generated_markdown"`
}

func (s *ProjectService) List(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	return s.projects.ListProjects(ctx, userID)
}

func (s *ProjectService) Get(ctx context.Context, userID, id uuid.UUID) (*model.Project, error) {
	return s.projects.GetProject(ctx, id, userID)
}

func (s *ProjectService) Create(ctx context.Context, userID uuid.UUID, req CreateProjectRequest) (*model.Project, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, invalid("Missing title")
	}

	p := &model.Project{
		UserID:            userID,
		Title:             title,
		RepoURL:           req.RepoURL,
		Template:          string(model.ResolveTemplate(req.Template).Kind),
		GeneratedMarkdown: req.GeneratedMarkdown,
	}
	if err := s.projects.CreateProject(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) Update(ctx context.Context, userID, id uuid.UUID, upd model.ProjectUpdate) (*model.Project, error) {
	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return nil, invalid("Title cannot be empty")
		}
		upd.Title = &title
	}
	if upd.Template != nil {
		kind := string(model.ResolveTemplate(*upd.Template).Kind)
		upd.Template = &kind
	}
	return s.projects.UpdateProject(ctx, id, userID, upd)
}

func (s *ProjectService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.projects.DeleteProject(ctx, id, userID)
}

// SaveReadme stores a finished README outside of any project.
func (s *ProjectService) SaveReadme(ctx context.Context, userID uuid.UUID, repoName, content, email string) (*model.SavedReadme, error) {
	if strings.TrimSpace(repoName) == "" || content == "" {
		return nil, invalid("Missing repo_name or content")
	}

	readme := &model.SavedReadme{
		UserID:    userID,
		RepoName:  repoName,
		Content:   content,
		UserEmail: email,
	}
	if err := s.projects.CreateSavedReadme(ctx, readme); err != nil {
		return nil, err
	}
	return readme, nil
}

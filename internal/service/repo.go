package service

import (
	"context"

	gh "github.com/google/go-github/v66/github"

	"github.com/Vibhav-y/GitTool/internal/github"
)

// RepoService exposes read-only GitHub lookups. It never touches the ledger.
type RepoService struct {
	github GitHubAPI
}

func NewRepoService(github GitHubAPI) *RepoService {
	return &RepoService{github: github}
}

func (s *RepoService) List(ctx context.Context, token string) ([]*gh.Repository, error) {
	return s.github.ListRepositories(ctx, token)
}

func (s *RepoService) Context(ctx context.Context, token, owner, repo string) (*github.RepoContext, error) {
	if owner == "" || repo == "" {
		return nil, invalid("Missing owner or repo")
	}
	return s.github.FetchContext(ctx, token, owner, repo)
}

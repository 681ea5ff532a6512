package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v66/github"
)

// Client builds per-request GitHub API clients. GitHub tokens belong to the
// end user, so nothing authenticated is cached between calls.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	log        *slog.Logger
}

func NewClient(baseURL string, log *slog.Logger) (*Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid github api url: %w", err)
	}

	return &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		log:        log,
	}, nil
}

func (c *Client) forToken(token string) *gh.Client {
	client := gh.NewClient(c.httpClient).WithAuthToken(token)
	client.BaseURL = c.baseURL
	return client
}

// ListRepositories returns the repositories visible to the token owner,
// most recently updated first.
func (c *Client) ListRepositories(ctx context.Context, token string) ([]*gh.Repository, error) {
	opts := &gh.RepositoryListByAuthenticatedUserOptions{
		Visibility:  "all",
		Sort:        "updated",
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	repos, _, err := c.forToken(token).Repositories.ListByAuthenticatedUser(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}
	return repos, nil
}

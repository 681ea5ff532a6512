package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	gh "github.com/google/go-github/v66/github"
)

const (
	maxTreeEntries  = 150
	maxCommits      = 15
	maxKeyFileBytes = 15000
)

// keyFiles are fetched in this order when present at the repository root.
var keyFiles = []string{
	"package.json",
	"requirements.txt",
	"Cargo.toml",
	"go.mod",
	"pyproject.toml",
	"Dockerfile",
	"docker-compose.yml",
	".env.example",
	"tsconfig.json",
	"vite.config.js",
	"vite.config.ts",
	"next.config.js",
	"next.config.mjs",
	"vercel.json",
	"netlify.toml",
	"fly.toml",
	"render.yaml",
}

type RepoInfo struct {
	Name          string   `json:"name"`
	FullName      string   `json:"full_name"`
	Description   string   `json:"description"`
	HTMLURL       string   `json:"html_url"`
	Stars         int      `json:"stargazers_count"`
	Forks         int      `json:"forks_count"`
	DefaultBranch string   `json:"default_branch"`
	License       string   `json:"license,omitempty"`
	Topics        []string `json:"topics,omitempty"`
}

type Commit struct {
	SHA     string     `json:"sha"`
	Message string     `json:"message"`
	Author  string     `json:"author"`
	Date    *time.Time `json:"date,omitempty"`
}

type PackageJSON struct {
	Scripts         []string `json:"scripts,omitempty"`
	Dependencies    []string `json:"dependencies,omitempty"`
	DevDependencies []string `json:"devDependencies,omitempty"`
}

// RepoContext is everything the generator knows about a repository. Only
// Info is guaranteed; every other part may be empty.
type RepoContext struct {
	Info          RepoInfo          `json:"info"`
	Languages     []string          `json:"languages"`
	FileTree      []string          `json:"fileTree"`
	RecentCommits []Commit          `json:"recentCommits"`
	PackageJSON   *PackageJSON      `json:"packageJson,omitempty"`
	KeyFiles      map[string]string `json:"keyFiles"`
}

// FetchContext loads repository metadata and then, best-effort, languages,
// the file tree, recent commits and key config files. Only the metadata
// request can fail the call.
func (c *Client) FetchContext(ctx context.Context, token, owner, repo string) (*RepoContext, error) {
	client := c.forToken(token)

	r, _, err := client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repository %s/%s: %w", owner, repo, err)
	}

	rc := &RepoContext{
		Info:          repoInfo(r),
		Languages:     []string{},
		FileTree:      []string{},
		RecentCommits: []Commit{},
		KeyFiles:      map[string]string{},
	}

	if langs, _, err := client.Repositories.ListLanguages(ctx, owner, repo); err != nil {
		c.warn("could not fetch languages", owner, repo, err)
	} else {
		rc.Languages = sortLanguages(langs)
	}

	if tree, _, err := client.Git.GetTree(ctx, owner, repo, "HEAD", true); err != nil {
		c.warn("could not fetch file tree", owner, repo, err)
	} else {
		for _, entry := range tree.Entries {
			if entry.GetType() != "blob" {
				continue
			}
			rc.FileTree = append(rc.FileTree, entry.GetPath())
			if len(rc.FileTree) == maxTreeEntries {
				break
			}
		}
	}

	opts := &gh.CommitsListOptions{ListOptions: gh.ListOptions{PerPage: maxCommits}}
	if commits, _, err := client.Repositories.ListCommits(ctx, owner, repo, opts); err != nil {
		c.warn("could not fetch commits", owner, repo, err)
	} else {
		for _, cm := range commits {
			rc.RecentCommits = append(rc.RecentCommits, toCommit(cm))
		}
	}

	present := make(map[string]bool, len(rc.FileTree))
	for _, p := range rc.FileTree {
		present[p] = true
	}

	for _, name := range keyFiles {
		if !present[name] {
			continue
		}
		content, ok := c.fetchFile(ctx, client, owner, repo, name)
		if !ok {
			continue
		}
		rc.KeyFiles[name] = content
		if name == "package.json" {
			pkg, err := parsePackageJSON([]byte(content))
			if err != nil {
				c.warn("could not parse package.json", owner, repo, err)
				continue
			}
			rc.PackageJSON = pkg
		}
	}

	return rc, nil
}

func (c *Client) fetchFile(ctx context.Context, client *gh.Client, owner, repo, path string) (string, bool) {
	file, _, _, err := client.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil || file == nil {
		return "", false
	}
	if file.GetEncoding() != "base64" || file.GetSize() >= maxKeyFileBytes {
		return "", false
	}
	content, err := file.GetContent()
	if err != nil {
		return "", false
	}
	return content, true
}

func (c *Client) warn(msg, owner, repo string, err error) {
	c.log.Warn(msg, "owner", owner, "repo", repo, "err", err)
}

func repoInfo(r *gh.Repository) RepoInfo {
	return RepoInfo{
		Name:          r.GetName(),
		FullName:      r.GetFullName(),
		Description:   r.GetDescription(),
		HTMLURL:       r.GetHTMLURL(),
		Stars:         r.GetStargazersCount(),
		Forks:         r.GetForksCount(),
		DefaultBranch: r.GetDefaultBranch(),
		License:       r.GetLicense().GetSPDXID(),
		Topics:        r.Topics,
	}
}

func toCommit(cm *gh.RepositoryCommit) Commit {
	sha := cm.GetSHA()
	if len(sha) > 7 {
		sha = sha[:7]
	}

	message, _, _ := strings.Cut(cm.GetCommit().GetMessage(), "\n")

	author := cm.GetCommit().GetAuthor().GetName()
	if author == "" {
		author = "unknown"
	}

	out := Commit{SHA: sha, Message: message, Author: author}
	if d := cm.GetCommit().GetAuthor().GetDate(); !d.IsZero() {
		t := d.Time
		out.Date = &t
	}
	return out
}

// sortLanguages orders language names by byte count, largest first.
func sortLanguages(langs map[string]int) []string {
	names := make([]string, 0, len(langs))
	for name := range langs {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if langs[names[i]] != langs[names[j]] {
			return langs[names[i]] > langs[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

func parsePackageJSON(data []byte) (*PackageJSON, error) {
	var raw struct {
		Scripts         json.RawMessage `json:"scripts"`
		Dependencies    json.RawMessage `json:"dependencies"`
		DevDependencies json.RawMessage `json:"devDependencies"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	var pkg PackageJSON
	var err error
	if pkg.Scripts, err = objectKeys(raw.Scripts); err != nil {
		return nil, err
	}
	if pkg.Dependencies, err = objectKeys(raw.Dependencies); err != nil {
		return nil, err
	}
	if pkg.DevDependencies, err = objectKeys(raw.DevDependencies); err != nil {
		return nil, err
	}
	return &pkg, nil
}

// objectKeys returns the keys of a JSON object in document order.
func objectKeys(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		keys = append(keys, tok.(string))

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

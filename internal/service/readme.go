package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Vibhav-y/GitTool/internal/config"
	"github.com/Vibhav-y/GitTool/internal/model"
)

const Footer = "\n\n---\n*Made with: [gittool.dev](https://gittool.dev)*\n"

type GenerateRequest struct {
	Token    string
	Owner    string
	Repo     string
	Template string
}

type GenerateResult struct {
	ProjectID uuid.UUID `json:"projectId"`
	Readme    string    `json:"readme"`
}

type ReadmeService struct {
	tokens   *TokenService
	github   GitHubAPI
	llm      Completer
	projects ProjectStore
	cfg      config.TokensConfig
	log      *slog.Logger
}

func NewReadmeService(tokens *TokenService, github GitHubAPI, llm Completer, projects ProjectStore, cfg config.TokensConfig, log *slog.Logger) *ReadmeService {
	return &ReadmeService{
		tokens:   tokens,
		github:   github,
		llm:      llm,
		projects: projects,
		cfg:      cfg,
		log:      log,
	}
}

// Generate charges the generation cost, then builds a README for the
// repository and stores it as a new project.
func (s *ReadmeService) Generate(ctx context.Context, userID uuid.UUID, req GenerateRequest) (*GenerateResult, error) {
	if req.Owner == "" || req.Repo == "" {
		return nil, invalid("Missing owner or repo")
	}

	cost := s.cfg.GenerateCost
	if _, err := s.tokens.Debit(ctx, userID, cost, model.TransactionTypeGenerate,
		fmt.Sprintf("Generated README for %s/%s", req.Owner, req.Repo)); err != nil {
		return nil, err
	}

	result, err := s.generate(ctx, userID, req)
	if err != nil {
		s.log.Error("readme generation failed", "user_id", userID, "owner", req.Owner, "repo", req.Repo, "err", err)
		refundOnFailure(ctx, s.tokens, s.cfg, s.log, userID, cost, "Refund: README generation failed")
		return nil, err
	}
	return result, nil
}

func (s *ReadmeService) generate(ctx context.Context, userID uuid.UUID, req GenerateRequest) (*GenerateResult, error) {
	rc, err := s.github.FetchContext(ctx, req.Token, req.Owner, req.Repo)
	if err != nil {
		return nil, err
	}

	tpl := model.ResolveTemplate(req.Template)

	markdown, err := s.llm.Complete(ctx, tpl.SystemInstruction, generatePrompt(rc.Format(), rc.Languages, tpl))
	if err != nil {
		return nil, err
	}
	markdown += Footer

	project := &model.Project{
		UserID:            userID,
		Title:             rc.Info.Name,
		RepoURL:           rc.Info.HTMLURL,
		Template:          string(tpl.Kind),
		GeneratedMarkdown: markdown,
	}
	if err := s.projects.CreateProject(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to save project: %w", err)
	}

	return &GenerateResult{ProjectID: project.ID, Readme: markdown}, nil
}

func generatePrompt(contextText string, languages []string, tpl model.Template) string {
	langs := "Not specified"
	if len(languages) > 0 {
		langs = strings.Join(languages, ", ")
	}

	return fmt.Sprintf(`Here is everything I know about this repository:

%s

Languages used: %s

%s

Using ALL the context above (file structure, recent commits, dependencies, config files), generate a comprehensive and accurate Markdown README. Base installation steps, usage examples, and tech stack descriptions on the ACTUAL files and dependencies found in the repo. Do not make up features; infer them from the code structure and commits.

Do not include markdown code block backticks surrounding the entire response, just output the raw markdown.`,
		contextText, langs, tpl.Guidelines)
}

// refundOnFailure returns debited tokens when the refund policy is enabled.
func refundOnFailure(ctx context.Context, tokens *TokenService, cfg config.TokensConfig, log *slog.Logger, userID uuid.UUID, amount int64, description string) {
	if !cfg.RefundOnFailure {
		return
	}
	// The request context may already be cancelled.
	if _, err := tokens.Refund(context.WithoutCancel(ctx), userID, amount, description); err != nil {
		log.Error("failed to refund tokens", "user_id", userID, "amount", amount, "err", err)
	}
}

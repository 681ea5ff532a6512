package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/Vibhav-y/GitTool/internal/config"
	"github.com/Vibhav-y/GitTool/internal/model"
)

const (
	placeholderOwner = "username"
	placeholderRepo  = "repo"
)

var repoRefPattern = regexp.MustCompile(`github\.com/([^/\s]+)/([^/\s)]+)`)

const editorSystemPrompt = "You are a professional README editor with deep knowledge of GitHub markdown, shields.io badges, and readme widgets. You have full access to the repo's file structure, dependencies, and commit history. Use this context to write accurate, specific documentation. When users ask to add socials, stats, or badges, use the exact widget templates from the reference."

type ChatRequest struct {
	CurrentMarkdown string
	Prompt          string
	Token           string
	Owner           string
	Repo            string
}

type SectionRequest struct {
	CurrentMarkdown string
	Section         string
	Instructions    string
}

// EditorService applies natural-language edits to an existing README.
type EditorService struct {
	tokens *TokenService
	github GitHubAPI
	llm    Completer
	cfg    config.TokensConfig
	log    *slog.Logger
}

func NewEditorService(tokens *TokenService, github GitHubAPI, llm Completer, cfg config.TokensConfig, log *slog.Logger) *EditorService {
	return &EditorService{tokens: tokens, github: github, llm: llm, cfg: cfg, log: log}
}

// Chat returns the full document rewritten according to the prompt.
func (s *EditorService) Chat(ctx context.Context, userID uuid.UUID, req ChatRequest) (string, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return "", invalid("Missing prompt")
	}

	cost := s.cfg.ChatCost
	if _, err := s.tokens.Debit(ctx, userID, cost, model.TransactionTypeChat, "AI chat edit"); err != nil {
		return "", err
	}

	owner, repo := req.Owner, req.Repo
	if owner == "" || repo == "" {
		owner, repo = ParseRepoRef(req.CurrentMarkdown)
	}

	var repoContext string
	if req.Token != "" && owner != placeholderOwner {
		rc, err := s.github.FetchContext(ctx, req.Token, owner, repo)
		if err != nil {
			s.log.Warn("could not fetch repo context for chat", "owner", owner, "repo", repo, "err", err)
		} else {
			repoContext = "\n\nREPO CONTEXT (use this to give accurate answers):\n" + rc.Format()
		}
	}

	readme, err := s.llm.Complete(ctx, editorSystemPrompt, chatPrompt(req.CurrentMarkdown, repoContext, req.Prompt, owner, repo))
	if err != nil {
		s.log.Error("chat edit failed", "user_id", userID, "err", err)
		refundOnFailure(ctx, s.tokens, s.cfg, s.log, userID, cost, "Refund: AI chat edit failed")
		return "", err
	}
	return readme, nil
}

// RegenerateSection rewrites one named section and returns the whole document.
func (s *EditorService) RegenerateSection(ctx context.Context, userID uuid.UUID, req SectionRequest) (string, error) {
	if strings.TrimSpace(req.CurrentMarkdown) == "" {
		return "", invalid("Missing currentMarkdown")
	}
	if strings.TrimSpace(req.Section) == "" {
		return "", invalid("Missing section")
	}

	cost := s.cfg.ChatCost
	if _, err := s.tokens.Debit(ctx, userID, cost, model.TransactionTypeChat,
		fmt.Sprintf("Regenerated section %q", req.Section)); err != nil {
		return "", err
	}

	readme, err := s.llm.Complete(ctx, editorSystemPrompt, sectionPrompt(req))
	if err != nil {
		s.log.Error("section regeneration failed", "user_id", userID, "section", req.Section, "err", err)
		refundOnFailure(ctx, s.tokens, s.cfg, s.log, userID, cost, "Refund: section regeneration failed")
		return "", err
	}
	return readme, nil
}

// ParseRepoRef finds the first github.com/<owner>/<repo> link in markdown.
// It falls back to placeholder names when there is none.
func ParseRepoRef(markdown string) (string, string) {
	m := repoRefPattern.FindStringSubmatch(markdown)
	if m == nil {
		return placeholderOwner, placeholderRepo
	}
	repo := strings.Map(func(r rune) rune {
		switch r {
		case ')', '"', '\'', ']', '>':
			return -1
		}
		return r
	}, m[2])
	return m[1], repo
}

func chatPrompt(markdown, repoContext, request, owner, repo string) string {
	return fmt.Sprintf(`You are an expert technical writer assisting a user in editing their GitHub README.md.

CURRENT MARKDOWN:
`+"```markdown\n%s\n```"+`
%s

USER REQUEST: "%s"
%s

Apply the user's request. Use the repo context to give accurate, specific answers based on the actual codebase. RETURN ONLY the full raw markdown (no wrapping backticks).
IMPORTANT: Keep "---\n*Made with: [gittool.dev](https://gittool.dev)*" at the very end.`,
		markdown, repoContext, request, widgetReference(owner, repo))
}

func sectionPrompt(req SectionRequest) string {
	instructions := req.Instructions
	if strings.TrimSpace(instructions) == "" {
		instructions = "Improve clarity and accuracy."
	}

	return fmt.Sprintf(`You are an expert technical writer assisting a user in editing their GitHub README.md.

CURRENT MARKDOWN:
`+"```markdown\n%s\n```"+`

Rewrite ONLY the section titled "%s". Instructions: %s

Leave every other section exactly as it is. If the section does not exist, add it in the most fitting place. RETURN ONLY the full raw markdown (no wrapping backticks).
IMPORTANT: Keep "---\n*Made with: [gittool.dev](https://gittool.dev)*" at the very end.`,
		req.CurrentMarkdown, req.Section, instructions)
}

func widgetReference(owner, repo string) string {
	r := strings.NewReplacer("{owner}", owner, "{repo}", repo)
	return r.Replace(widgetReferenceTemplate)
}

const widgetReferenceTemplate = `
WIDGET REFERENCE: Use these EXACT formats when the user asks to add badges, socials, stats, or widgets:

SOCIAL BADGES (shields.io):
- Twitter: [![Twitter](https://img.shields.io/badge/Twitter-1DA1F2?style=for-the-badge&logo=twitter&logoColor=white)](https://twitter.com/your_username)
- LinkedIn: [![LinkedIn](https://img.shields.io/badge/LinkedIn-0A66C2?style=for-the-badge&logo=linkedin&logoColor=white)](https://linkedin.com/in/your_username)
- YouTube: [![YouTube](https://img.shields.io/badge/YouTube-FF0000?style=for-the-badge&logo=youtube&logoColor=white)](https://youtube.com/@your_channel)
- Discord: [![Discord](https://img.shields.io/badge/Discord-5865F2?style=for-the-badge&logo=discord&logoColor=white)](https://discord.gg/your_invite)
- Instagram: [![Instagram](https://img.shields.io/badge/Instagram-E4405F?style=for-the-badge&logo=instagram&logoColor=white)](https://instagram.com/your_username)
- Email: [![Email](https://img.shields.io/badge/Email-EA4335?style=for-the-badge&logo=gmail&logoColor=white)](mailto:your@email.com)
- Portfolio: [![Portfolio](https://img.shields.io/badge/Portfolio-000000?style=for-the-badge&logo=vercel&logoColor=white)](https://your-portfolio.com)
- Buy Me A Coffee: [![Buy Me A Coffee](https://img.shields.io/badge/Buy_Me_A_Coffee-FFDD00?style=for-the-badge&logo=buymeacoffee&logoColor=black)](https://buymeacoffee.com/your_username)

REPO BADGES:
- Stars: ![Stars](https://img.shields.io/github/stars/{owner}/{repo}?style=for-the-badge&color=22d3ee&labelColor=0d1117)
- Forks: ![Forks](https://img.shields.io/github/forks/{owner}/{repo}?style=for-the-badge&color=818cf8&labelColor=0d1117)
- License: ![License](https://img.shields.io/github/license/{owner}/{repo}?style=for-the-badge&color=f59e0b&labelColor=0d1117)
- Last Commit: ![Last Commit](https://img.shields.io/github/last-commit/{owner}/{repo}?style=for-the-badge&color=22d3ee&labelColor=0d1117)

PROFILE STATS:
- Profile Card: <p align="center"><img src="https://github-profile-summary-cards.vercel.app/api/cards/profile-details?username={owner}&theme=github_dark" /></p>
- Streak: <p align="center"><img src="https://streak-stats.demolab.com?user={owner}&theme=dark&hide_border=true&background=0d1117" /></p>

CONTRIBUTORS:
- <a href="https://github.com/{owner}/{repo}/graphs/contributors"><img src="https://contrib.rocks/image?repo={owner}/{repo}" /></a>

When adding multiple socials, wrap them in a centered block: <p align="center">...badges...</p>`

package github

import (
	"fmt"
	"strings"
)

const maxKeyFileChars = 2000

// Format renders the context as prompt text.
func (rc *RepoContext) Format() string {
	var b strings.Builder

	info := rc.Info
	description := info.Description
	if description == "" {
		description = "No description"
	}

	b.WriteString("## Repository Info\n")
	fmt.Fprintf(&b, "- Name: %s\n", info.Name)
	fmt.Fprintf(&b, "- Description: %s\n", description)
	fmt.Fprintf(&b, "- URL: %s\n", info.HTMLURL)
	fmt.Fprintf(&b, "- Stars: %d | Forks: %d\n", info.Stars, info.Forks)
	fmt.Fprintf(&b, "- Default Branch: %s\n", info.DefaultBranch)
	if info.License != "" {
		fmt.Fprintf(&b, "- License: %s\n", info.License)
	}
	if len(info.Topics) > 0 {
		fmt.Fprintf(&b, "- Topics: %s\n", strings.Join(info.Topics, ", "))
	}

	if len(rc.FileTree) > 0 {
		fmt.Fprintf(&b, "\n## File Structure (%d files)\n", len(rc.FileTree))
		b.WriteString(strings.Join(rc.FileTree, "\n"))
		b.WriteString("\n")
	}

	if len(rc.RecentCommits) > 0 {
		b.WriteString("\n## Recent Commits\n")
		for _, c := range rc.RecentCommits {
			fmt.Fprintf(&b, "- %s %s (%s)\n", c.SHA, c.Message, c.Author)
		}
	}

	if pkg := rc.PackageJSON; pkg != nil {
		b.WriteString("\n## package.json Summary\n")
		if len(pkg.Scripts) > 0 {
			fmt.Fprintf(&b, "- Scripts: %s\n", strings.Join(pkg.Scripts, ", "))
		}
		if len(pkg.Dependencies) > 0 {
			fmt.Fprintf(&b, "- Dependencies: %s\n", strings.Join(pkg.Dependencies, ", "))
		}
		if len(pkg.DevDependencies) > 0 {
			fmt.Fprintf(&b, "- DevDependencies: %s\n", strings.Join(pkg.DevDependencies, ", "))
		}
	}

	var others []string
	for _, name := range keyFiles {
		if _, ok := rc.KeyFiles[name]; ok && name != "package.json" {
			others = append(others, name)
		}
	}
	if len(others) > 0 {
		b.WriteString("\n## Key Config Files\n")
		for _, name := range others {
			fmt.Fprintf(&b, "\n### %s\n```\n%s\n```\n", name, truncate(rc.KeyFiles[name], maxKeyFileChars))
		}
	}

	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "\n...(truncated)"
}

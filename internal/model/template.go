package model

import "strings"

type TemplateKind string

const (
	TemplateProfessional TemplateKind = "professional"
	TemplateMinimalist   TemplateKind = "minimalist"
	TemplateCreative     TemplateKind = "creative"
	TemplateDetailed     TemplateKind = "detailed"
	TemplateGeneric      TemplateKind = "generic"
)

// Template carries the LLM instructions for one documentation style.
type Template struct {
	Kind              TemplateKind `json:"id"`
	Name              string       `json:"name"`
	Description       string       `json:"description"`
	SystemInstruction string       `json:"-"`
	Guidelines        string       `json:"-"`
}

var templates = []Template{
	{
		Kind:              TemplateProfessional,
		Name:              "Professional",
		Description:       "Crisp enterprise documentation with a table of contents and API reference.",
		SystemInstruction: "You are an Enterprise Developer Advocate. You write crisp, professional documentation.",
		Guidelines: `
# Guidelines for 'Professional' Template
1. Add a centered title and short description.
2. Add a standard clean table of contents.
3. Include sections: Features, Installation, Usage, API Reference, Contributing, and License.
4. Keep the tone formal, direct, and focused on business/enterprise use cases.
5. Use code blocks with comments.
`,
	},
	{
		Kind:              TemplateMinimalist,
		Name:              "Minimalist",
		Description:       "Brutally concise: quick start, usage, license.",
		SystemInstruction: "You are an essentialist developer. You write brutally concise documentation.",
		Guidelines: `
# Guidelines for 'Minimalist' Template
1. Very short title and one-liner description.
2. No table of contents.
3. Sections: Quick Start, Usage, License.
4. Cut out all fluff. Be extremely brief.
`,
	},
	{
		Kind:              TemplateCreative,
		Name:              "Creative",
		Description:       "Emoji-rich, badge-heavy and fun to read.",
		SystemInstruction: "You are a creative frontend hacker. You write highly engaging, visually stunning documentation.",
		Guidelines: `
# Guidelines for 'Creative' Template
1. Use lots of relevant emojis throughout the document.
2. Include a centered, bold, graphical styled header.
3. Add markdown badges (e.g. using shields.io style markdown for languages, status, etc.) near the top.
4. Sections: 🚀 What is this?, ✨ Features, 🛠 Installation, 🎮 How to use, 🤝 Contributing.
5. Make the tone fun, energetic, and engaging.
`,
	},
	{
		Kind:              TemplateDetailed,
		Name:              "Highly Detailed",
		Description:       "Exhaustive docs with architecture and contributing guides.",
		SystemInstruction: "You are a maintainer of a massive open source library. You write exhaustive documentation.",
		Guidelines: `
# Guidelines for 'Highly Detailed' Template
1. Include exhaustive explanations of core concepts.
2. Detailed Prerequisites, deep-dive Installation steps across environments.
3. Complex Usage examples with multiple edge cases.
4. Deep Architecture or Repository Structure section mapping out the code.
5. Exhaustive Contributing Guide.
`,
	},
}

var genericTemplate = Template{
	Kind:              TemplateGeneric,
	Name:              "Generic",
	Description:       "Standard high-quality README.",
	SystemInstruction: "You are an expert technical writer and developer advocate.",
	Guidelines:        "Create a standard high-quality Markdown README.",
}

// Templates returns the selectable templates.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// LookupTemplate matches id exactly against the selectable templates.
func LookupTemplate(id string) (Template, bool) {
	for _, t := range templates {
		if string(t.Kind) == id {
			return t, true
		}
	}
	return Template{}, false
}

// ResolveTemplate picks the template for a generation request. An empty id
// means professional; anything unrecognized gets the generic instructions.
func ResolveTemplate(id string) Template {
	if strings.TrimSpace(id) == "" {
		id = string(TemplateProfessional)
	}
	if t, ok := LookupTemplate(id); ok {
		return t
	}
	return genericTemplate
}

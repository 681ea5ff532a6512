package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveTemplate(t *testing.T) {
	tests := []struct {
		id   string
		want TemplateKind
	}{
		{"", TemplateProfessional},
		{"professional", TemplateProfessional},
		{"minimalist", TemplateMinimalist},
		{"creative", TemplateCreative},
		{"detailed", TemplateDetailed},
		{"Professional", TemplateGeneric},
		{"neon-cyberpunk", TemplateGeneric},
	}
	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			got := ResolveTemplate(tc.id)
			assert.Equal(t, tc.want, got.Kind)
			assert.NotEmpty(t, got.SystemInstruction)
			assert.NotEmpty(t, got.Guidelines)
		})
	}
}

func TestTemplates_ExcludeGeneric(t *testing.T) {
	all := Templates()
	assert.Len(t, all, 4)
	for _, tpl := range all {
		assert.NotEqual(t, TemplateGeneric, tpl.Kind)
	}

	_, ok := LookupTemplate("generic")
	assert.False(t, ok)
}

func TestTokenPackages(t *testing.T) {
	p, ok := LookupTokenPackage("starter")
	assert.True(t, ok)
	assert.Equal(t, int64(50), p.Tokens)
	assert.Equal(t, int64(9900), p.Amount)
	assert.Equal(t, "₹99", p.PriceDisplay())

	p, ok = LookupTokenPackage("unlimited")
	assert.True(t, ok)
	assert.Equal(t, "₹499", p.View().PriceDisplay)

	_, ok = LookupTokenPackage("enterprise")
	assert.False(t, ok)

	assert.Len(t, TokenPackages(), 3)
}

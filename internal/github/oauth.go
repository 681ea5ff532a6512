package github

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"
)

var ErrMissingCode = errors.New("No code provided")

// OAuth exchanges GitHub OAuth authorization codes for access tokens.
type OAuth struct {
	cfg *oauth2.Config
}

func NewOAuth(clientID, clientSecret string) *OAuth {
	return &OAuth{cfg: &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     githuboauth.Endpoint,
		Scopes:       []string{"repo", "read:user"},
	}}
}

// WithEndpoint points the exchange at another token endpoint (GitHub
// Enterprise or a test server).
func (o *OAuth) WithEndpoint(endpoint oauth2.Endpoint) *OAuth {
	cfg := *o.cfg
	cfg.Endpoint = endpoint
	return &OAuth{cfg: &cfg}
}

func (o *OAuth) ExchangeCode(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", ErrMissingCode
	}

	tok, err := o.cfg.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("github oauth exchange failed: %w", err)
	}
	return tok.AccessToken, nil
}

// Package oauth wraps external sign-in providers behind a single registry.
// Providers are configured explicitly; an unknown name in the config is an
// error at startup rather than a silent no-op.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/parsgolf/server/internal/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

// UserInfo is the provider-agnostic identity returned after a successful
// code exchange.
type UserInfo struct {
	ID    string
	Email string
	Name  string
}

type Provider struct {
	name        string
	conf        *oauth2.Config
	userInfoURL string
	parse       func([]byte) (UserInfo, error)
}

func (p *Provider) Name() string {
	return p.name
}

// AuthCodeURL builds the provider consent page URL carrying the CSRF state.
func (p *Provider) AuthCodeURL(state string) string {
	return p.conf.AuthCodeURL(state)
}

// Exchange trades the callback code for a token and fetches the user's
// identity from the provider.
func (p *Provider) Exchange(ctx context.Context, code string) (UserInfo, error) {
	token, err := p.conf.Exchange(ctx, code)
	if err != nil {
		return UserInfo{}, fmt.Errorf("%s code exchange: %w", p.name, err)
	}
	client := p.conf.Client(ctx, token)
	resp, err := client.Get(p.userInfoURL)
	if err != nil {
		return UserInfo{}, fmt.Errorf("%s userinfo: %w", p.name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return UserInfo{}, fmt.Errorf("%s userinfo: status %d", p.name, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return UserInfo{}, err
	}
	return p.parse(body)
}

type Registry struct {
	providers map[string]*Provider
}

// New builds providers from the configuration. The callback URL is
// <externalURL>/callback/<provider>.
func New(cfg map[string]config.OAuthProvider, externalURL string) (*Registry, error) {
	r := Registry{providers: make(map[string]*Provider, len(cfg))}
	base := strings.TrimRight(externalURL, "/")
	for name, provider := range cfg {
		if provider.ClientID == "" || provider.ClientSecret == "" {
			continue
		}
		var p *Provider
		switch name {
		case "google":
			p = &Provider{
				name: name,
				conf: &oauth2.Config{
					ClientID:     provider.ClientID,
					ClientSecret: provider.ClientSecret,
					Endpoint:     google.Endpoint,
					RedirectURL:  base + "/callback/google",
					Scopes:       []string{"openid", "email", "profile"},
				},
				userInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
				parse:       parseGoogle,
			}
		case "github":
			p = &Provider{
				name: name,
				conf: &oauth2.Config{
					ClientID:     provider.ClientID,
					ClientSecret: provider.ClientSecret,
					Endpoint:     github.Endpoint,
					RedirectURL:  base + "/callback/github",
					Scopes:       []string{"read:user", "user:email"},
				},
				userInfoURL: "https://api.github.com/user",
				parse:       parseGithub,
			}
		default:
			return nil, fmt.Errorf("unsupported oauth provider %q", name)
		}
		r.providers[name] = p
	}
	return &r, nil
}

func (r *Registry) Get(name string) (*Provider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}

func parseGoogle(body []byte) (UserInfo, error) {
	var payload struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return UserInfo{}, err
	}
	if payload.ID == "" {
		return UserInfo{}, fmt.Errorf("google userinfo without id")
	}
	return UserInfo{ID: payload.ID, Email: payload.Email, Name: payload.Name}, nil
}

func parseGithub(body []byte) (UserInfo, error) {
	var payload struct {
		ID    int64  `json:"id"`
		Login string `json:"login"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return UserInfo{}, err
	}
	if payload.ID == 0 {
		return UserInfo{}, fmt.Errorf("github userinfo without id")
	}
	name := payload.Name
	if name == "" {
		name = payload.Login
	}
	return UserInfo{ID: fmt.Sprintf("%d", payload.ID), Email: payload.Email, Name: name}, nil
}

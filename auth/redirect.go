package auth

import (
	"golang.org/x/oauth2"

	"github.com/geeom/personal-assistant-web/internal/config"
)

// BuildAuthorizationURL serializes the provider authorization request
// into a URL for a full-page redirect. Navigation is the caller's job.
func BuildAuthorizationURL(cfg config.Config, nonce string) string {
	oauthCfg := oauth2.Config{
		ClientID:    cfg.GetClientID(),
		RedirectURL: cfg.GetRedirectURI(),
		Scopes:      cfg.GetScopes(),
		Endpoint: oauth2.Endpoint{
			AuthURL: cfg.GetAuthEndpoint(),
		},
	}
	return oauthCfg.AuthCodeURL(nonce, oauth2.AccessTypeOnline)
}

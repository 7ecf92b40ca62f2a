package auth

import (
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/geeom/personal-assistant-web/browser"
)

// CallbackParams carries the authorization code and echoed state the
// provider appended to the redirect URI. The code's authenticity is not
// checked here; the backend rejects bad codes during the exchange.
type CallbackParams struct {
	Code  string
	State string
}

// ParseCallback extracts code and state from the current location.
// Returns false when the URL carries no query string or either
// parameter is missing.
func ParseCallback(rawURL string) (CallbackParams, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.RawQuery == "" {
		return CallbackParams{}, false
	}

	query := u.Query()
	code := query.Get("code")
	state := query.Get("state")
	if code == "" || state == "" {
		return CallbackParams{}, false
	}

	return CallbackParams{Code: code, State: state}, true
}

// ClearURLParams rewrites browser history so the address bar shows the
// bare path again. Without this a refresh would replay the spent
// authorization code.
func ClearURLParams(window browser.Window) {
	rawURL, err := window.CurrentURL()
	if err != nil {
		return
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	if err := window.RewriteURL(path); err != nil {
		log.Warn().Err(err).Msg("could not rewrite url after callback")
	}
}

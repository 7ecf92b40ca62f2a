package config

type OAuth struct{}

var _ OAuthConfig = OAuth{}

func (OAuth) GetAuthEndpoint() string {
	return "https://accounts.google.com/o/oauth2/v2/auth"
}

func (OAuth) GetClientID() string {
	return "126932716262-m3jg96nhn9efg7mkee5k9d9aqnu0282l.apps.googleusercontent.com"
}

func (OAuth) GetScopes() []string {
	return []string{"openid", "email", "profile"}
}

// GetStateStorageKey is the reserved localStorage key holding the
// pending oauth nonce. Absent when no flow is in progress.
func (OAuth) GetStateStorageKey() string {
	return "oauth_state"
}

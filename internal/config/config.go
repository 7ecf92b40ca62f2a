package config

type Config interface {
	EnvConfig
	OAuthConfig
}

// EnvConfig resolves the environment-dependent endpoints: local
// development targets in DEV, the deployed targets in PROD.
type EnvConfig interface {
	GetEnv() string
	GetAppName() string
	GetBackendURL() string
	GetRedirectURI() string
}

// OAuthConfig holds the fixed provider parameters of the authorization
// request.
type OAuthConfig interface {
	GetAuthEndpoint() string
	GetClientID() string
	GetScopes() []string
	GetStateStorageKey() string
}

type mainConfig struct {
	EnvVars
	OAuth
}

func New() (Config, error) {
	vars, err := ParseEnvVars()
	if err != nil {
		return nil, err
	}
	return mainConfig{EnvVars: vars}, nil
}

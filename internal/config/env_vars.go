package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

const (
	EnvDev  = "DEV"
	EnvProd = "PROD"
)

// Per-environment endpoint constants. The env vars below exist only for
// local overrides; normal builds run entirely on these.
const (
	devRedirectURI  = "http://localhost:8080/"
	prodRedirectURI = "https://geeom.github.io/personal_assistant/"

	devBackendURL  = "http://localhost:3000"
	prodBackendURL = "https://personal-assistant-backend.fly.dev"
)

type EnvVars struct {
	Env         string `env:"ENV" envDefault:"DEV"`
	AppName     string `env:"APP_NAME" envDefault:"Personal Assistant"`
	BackendURL  string `env:"BACKEND_URL"`
	RedirectURI string `env:"REDIRECT_URI"`
}

var _ EnvConfig = EnvVars{}

func ParseEnvVars() (EnvVars, error) {
	var vars EnvVars
	if err := env.Parse(&vars); err != nil {
		return EnvVars{}, fmt.Errorf("parse env: %w", err)
	}
	vars.Env = strings.ToUpper(vars.Env)
	return vars, nil
}

func (e EnvVars) GetEnv() string {
	if e.Env == "" {
		return EnvDev
	}
	return e.Env
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetBackendURL() string {
	if e.BackendURL != "" {
		return e.BackendURL
	}
	if e.GetEnv() == EnvProd {
		return prodBackendURL
	}
	return devBackendURL
}

func (e EnvVars) GetRedirectURI() string {
	if e.RedirectURI != "" {
		return e.RedirectURI
	}
	if e.GetEnv() == EnvProd {
		return prodRedirectURI
	}
	return devRedirectURI
}

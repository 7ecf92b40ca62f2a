// Package app drives the application's authentication lifecycle: it
// detects an OAuth callback on load, validates the echoed state against
// the stashed nonce, runs the code exchange and lands the application in
// an authenticated or failed phase.
package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/geeom/personal-assistant-web/auth"
	"github.com/geeom/personal-assistant-web/browser"
	"github.com/geeom/personal-assistant-web/internal/config"
)

// Phase is the application lifecycle state. Exactly one is active at a
// time.
type Phase int

const (
	PhaseCheckingAuth Phase = iota
	PhaseUnauthenticated
	PhaseAuthenticating
	PhaseAuthenticated
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseCheckingAuth:
		return "checking-auth"
	case PhaseUnauthenticated:
		return "unauthenticated"
	case PhaseAuthenticating:
		return "authenticating"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Exchanger trades an authorization code for a backend session.
type Exchanger interface {
	Exchange(ctx context.Context, code string) (*auth.SessionResponse, error)
}

// App orchestrates the authentication flow. It is the sole writer of
// the session and phase; the rendering layer observes transitions
// through the phase listener and must not mutate either directly.
type App struct {
	window    browser.Window
	config    config.Config
	states    *auth.StateStore
	exchanger Exchanger

	phase      Phase
	failReason string
	session    auth.Session

	generateState func() string
	onPhase       func(Phase)
}

// Option defines a function type to modify the App instance.
type Option func(*App)

// WithPhaseListener registers fn to be called synchronously after every
// phase transition. Presentation concern; the core never reads it back.
func WithPhaseListener(fn func(Phase)) Option {
	return func(a *App) {
		a.onPhase = fn
	}
}

// WithStateGenerator sets the nonce generator (primarily for testing).
func WithStateGenerator(fn func() string) Option {
	return func(a *App) {
		a.generateState = fn
	}
}

func New(cfg config.Config, window browser.Window, exchanger Exchanger, options ...Option) *App {
	a := &App{
		window:        window,
		config:        cfg,
		states:        auth.NewStateStore(window, cfg.GetStateStorageKey()),
		exchanger:     exchanger,
		phase:         PhaseCheckingAuth,
		generateState: auth.GenerateState,
	}
	for _, option := range options {
		option(a)
	}
	return a
}

func (a *App) Phase() Phase {
	return a.phase
}

// FailReason returns the user-facing message behind PhaseFailed, empty
// in every other phase.
func (a *App) FailReason() string {
	return a.failReason
}

func (a *App) Session() auth.Session {
	return a.session
}

// Bootstrap runs the mount-time transition. Callback detection, state
// validation, nonce deletion and URL scrubbing all complete before the
// exchange suspends, so a duplicate callback in another tab cannot
// interleave with the nonce's consumption. Cancelling ctx abandons an
// in-flight exchange; the phase is then left at authenticating, which
// only matters if the application survives the teardown that cancelled
// it.
func (a *App) Bootstrap(ctx context.Context) {
	currentURL, err := a.window.CurrentURL()
	if err != nil {
		// A transient location read failure must not drop an existing
		// session; treat it as "no callback".
		log.Warn().Err(err).Msg("could not read current url")
	}

	params, ok := auth.ParseCallback(currentURL)
	if !ok {
		if a.session.IsAuthenticated() {
			a.setPhase(PhaseAuthenticated)
		} else {
			a.setPhase(PhaseUnauthenticated)
		}
		return
	}

	saved, ok := a.states.Load()
	if !ok {
		// A callback nobody initiated: benign stale tab or a forged
		// redirect. Either way there is nothing to recover, so reset
		// rather than escalate. The URL is scrubbed even on rejection
		// so a refresh cannot replay the callback.
		log.Warn().Err(auth.MissingSavedStateErr).Msg("ignoring oauth callback")
		auth.ClearURLParams(a.window)
		a.setPhase(PhaseUnauthenticated)
		return
	}
	if saved != params.State {
		// Reject silently; do not leak which side mismatched.
		log.Warn().Err(auth.StateMismatchErr).Msg("ignoring oauth callback")
		auth.ClearURLParams(a.window)
		a.setPhase(PhaseUnauthenticated)
		return
	}

	a.states.Clear()
	auth.ClearURLParams(a.window)
	a.setPhase(PhaseAuthenticating)

	resp, err := a.exchanger.Exchange(ctx, params.Code)
	if err != nil {
		log.Error().Err(err).Msg("token exchange failed")
		a.fail(err.Error())
		return
	}

	a.session = auth.Session{Token: resp.Token, User: &resp.User}
	a.setPhase(PhaseAuthenticated)
}

// SignIn begins a new authorization flow: a fresh nonce is stashed and
// the browser leaves for the provider's consent page. Signing in again
// (including "try again" after a failure) overwrites whatever nonce a
// prior attempt left behind.
func (a *App) SignIn() {
	nonce := a.generateState()
	a.states.Save(nonce)

	authURL := auth.BuildAuthorizationURL(a.config, nonce)
	if err := a.window.Navigate(authURL); err != nil {
		log.Error().Err(err).Msg("could not navigate to provider")
		a.fail("could not open the sign-in page")
	}
}

// SignOut drops the session locally and returns to unauthenticated.
// Neither the provider nor the backend is told.
func (a *App) SignOut() {
	a.session = auth.Session{}
	a.setPhase(PhaseUnauthenticated)
}

func (a *App) setPhase(phase Phase) {
	a.phase = phase
	if phase != PhaseFailed {
		a.failReason = ""
	}
	a.notify()
}

func (a *App) fail(reason string) {
	a.phase = PhaseFailed
	a.failReason = reason
	a.notify()
}

func (a *App) notify() {
	if a.onPhase != nil {
		a.onPhase(a.phase)
	}
}

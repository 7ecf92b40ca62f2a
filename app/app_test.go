package app_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/geeom/personal-assistant-web/app"
	"github.com/geeom/personal-assistant-web/auth"
	"github.com/geeom/personal-assistant-web/browser/windowfake"
	"github.com/geeom/personal-assistant-web/internal/config"
)

type stubExchanger struct {
	resp     *auth.SessionResponse
	err      error
	calls    int
	lastCode string
}

func (s *stubExchanger) Exchange(_ context.Context, code string) (*auth.SessionResponse, error) {
	s.calls++
	s.lastCode = code
	return s.resp, s.err
}

func sessionResponse() *auth.SessionResponse {
	return &auth.SessionResponse{
		Token: "t1",
		User:  auth.UserInfo{ID: 1, GoogleID: "g1", Email: "e@x.com", Name: "E"},
	}
}

func newTestConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.New()
	require.NoError(t, err)
	return cfg
}

func saveNonce(t *testing.T, window *windowfake.FakeWindow, cfg config.Config, nonce string) {
	t.Helper()
	require.NoError(t, window.SetItem(cfg.GetStateStorageKey(), nonce))
}

// Every processed callback, accepted or rejected, must leave the
// address bar free of code/state so a refresh cannot replay it.
func requireURLScrubbed(t *testing.T, window *windowfake.FakeWindow) {
	t.Helper()
	current, err := window.CurrentURL()
	require.NoError(t, err)
	_, ok := auth.ParseCallback(current)
	require.False(t, ok)
}

func TestBootstrap_NoCallback(t *testing.T) {
	cfg := newTestConfig(t)

	t.Run("no session lands unauthenticated", func(t *testing.T) {
		window := windowfake.New("http://localhost:8080/")
		exchanger := &stubExchanger{}
		a := app.New(cfg, window, exchanger)

		a.Bootstrap(context.Background())

		require.Equal(t, app.PhaseUnauthenticated, a.Phase())
		require.Zero(t, exchanger.calls)
	})

	t.Run("existing session lands authenticated", func(t *testing.T) {
		window := windowfake.New("http://localhost:8080/?code=c1&state=abc")
		exchanger := &stubExchanger{resp: sessionResponse()}
		a := app.New(cfg, window, exchanger)
		saveNonce(t, window, cfg, "abc")

		a.Bootstrap(context.Background())
		require.Equal(t, app.PhaseAuthenticated, a.Phase())

		// Reload with a clean URL: the session is still held, so the
		// second pass stays authenticated without another exchange.
		a.Bootstrap(context.Background())
		require.Equal(t, app.PhaseAuthenticated, a.Phase())
		require.Equal(t, 1, exchanger.calls)
	})

	t.Run("location read failure keeps an existing session", func(t *testing.T) {
		window := windowfake.New("http://localhost:8080/?code=c1&state=abc")
		exchanger := &stubExchanger{resp: sessionResponse()}
		a := app.New(cfg, window, exchanger)
		saveNonce(t, window, cfg, "abc")

		a.Bootstrap(context.Background())
		require.Equal(t, app.PhaseAuthenticated, a.Phase())

		window.SetURL("")

		a.Bootstrap(context.Background())
		require.Equal(t, app.PhaseAuthenticated, a.Phase())
		require.Equal(t, 1, exchanger.calls)
	})
}

func TestBootstrap_ValidCallback(t *testing.T) {
	cfg := newTestConfig(t)
	window := windowfake.New("http://localhost:8080/?code=c1&state=abc")
	exchanger := &stubExchanger{resp: sessionResponse()}

	var phases []app.Phase
	a := app.New(cfg, window, exchanger, app.WithPhaseListener(func(p app.Phase) {
		phases = append(phases, p)
	}))
	saveNonce(t, window, cfg, "abc")

	a.Bootstrap(context.Background())

	require.Equal(t, app.PhaseAuthenticated, a.Phase())
	require.Equal(t, []app.Phase{app.PhaseAuthenticating, app.PhaseAuthenticated}, phases)
	require.Equal(t, 1, exchanger.calls)
	require.Equal(t, "c1", exchanger.lastCode)

	session := a.Session()
	require.True(t, session.IsAuthenticated())
	require.Equal(t, "t1", session.Token)
	require.Equal(t, int64(1), session.User.ID)
	require.Equal(t, "g1", session.User.GoogleID)
	require.Equal(t, "e@x.com", session.User.Email)
	require.Equal(t, "E", session.User.Name)

	// Nonce consumed, URL scrubbed.
	_, ok, err := window.GetItem(cfg.GetStateStorageKey())
	require.NoError(t, err)
	require.False(t, ok)
	current, err := window.CurrentURL()
	require.NoError(t, err)
	require.Equal(t, "/", current)
}

func TestBootstrap_RejectedCallbacks(t *testing.T) {
	cfg := newTestConfig(t)

	t.Run("state mismatch resets silently", func(t *testing.T) {
		window := windowfake.New("http://localhost:8080/?code=c1&state=xyz")
		exchanger := &stubExchanger{resp: sessionResponse()}
		a := app.New(cfg, window, exchanger)
		saveNonce(t, window, cfg, "abc")

		a.Bootstrap(context.Background())

		require.Equal(t, app.PhaseUnauthenticated, a.Phase())
		require.Zero(t, exchanger.calls)
		require.False(t, a.Session().IsAuthenticated())
		requireURLScrubbed(t, window)
	})

	t.Run("missing saved state resets silently", func(t *testing.T) {
		window := windowfake.New("http://localhost:8080/?code=c1&state=abc")
		exchanger := &stubExchanger{resp: sessionResponse()}
		a := app.New(cfg, window, exchanger)

		a.Bootstrap(context.Background())

		require.Equal(t, app.PhaseUnauthenticated, a.Phase())
		require.Zero(t, exchanger.calls)
		requireURLScrubbed(t, window)
	})

	t.Run("unavailable storage is treated as missing state", func(t *testing.T) {
		window := windowfake.New("http://localhost:8080/?code=c1&state=abc")
		exchanger := &stubExchanger{resp: sessionResponse()}
		a := app.New(cfg, window, exchanger)
		saveNonce(t, window, cfg, "abc")
		window.FailStorage(errors.New("storage unavailable"))

		a.Bootstrap(context.Background())

		require.Equal(t, app.PhaseUnauthenticated, a.Phase())
		require.Zero(t, exchanger.calls)
		requireURLScrubbed(t, window)
	})
}

func TestBootstrap_ExchangeFailure(t *testing.T) {
	cfg := newTestConfig(t)
	window := windowfake.New("http://localhost:8080/?code=c1&state=abc")
	exchanger := &stubExchanger{err: errors.Wrap(auth.AuthServerErr, "authentication failed with status 401")}
	a := app.New(cfg, window, exchanger)
	saveNonce(t, window, cfg, "abc")

	a.Bootstrap(context.Background())

	require.Equal(t, app.PhaseFailed, a.Phase())
	require.NotEmpty(t, a.FailReason())
	require.False(t, a.Session().IsAuthenticated())
	require.Nil(t, a.Session().User)
}

func TestSignIn(t *testing.T) {
	cfg := newTestConfig(t)

	t.Run("stashes the nonce and leaves for the provider", func(t *testing.T) {
		window := windowfake.New("http://localhost:8080/")
		a := app.New(cfg, window, &stubExchanger{}, app.WithStateGenerator(func() string { return "nonce-1" }))

		a.SignIn()

		saved, ok, err := window.GetItem(cfg.GetStateStorageKey())
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "nonce-1", saved)

		navigations := window.Navigations()
		require.Len(t, navigations, 1)
		u, err := url.Parse(navigations[0])
		require.NoError(t, err)
		require.Equal(t, "nonce-1", u.Query().Get("state"))
		require.Equal(t, "code", u.Query().Get("response_type"))
	})

	t.Run("second sign-in overwrites the pending nonce", func(t *testing.T) {
		window := windowfake.New("http://localhost:8080/")
		nonces := []string{"nonce-1", "nonce-2"}
		a := app.New(cfg, window, &stubExchanger{}, app.WithStateGenerator(func() string {
			next := nonces[0]
			nonces = nonces[1:]
			return next
		}))

		a.SignIn()
		a.SignIn()

		saved, ok, err := window.GetItem(cfg.GetStateStorageKey())
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "nonce-2", saved)
	})
}

func TestSignOut(t *testing.T) {
	cfg := newTestConfig(t)
	window := windowfake.New("http://localhost:8080/?code=c1&state=abc")
	exchanger := &stubExchanger{resp: sessionResponse()}
	a := app.New(cfg, window, exchanger)
	saveNonce(t, window, cfg, "abc")

	a.Bootstrap(context.Background())
	require.Equal(t, app.PhaseAuthenticated, a.Phase())

	a.SignOut()

	require.Equal(t, app.PhaseUnauthenticated, a.Phase())
	require.False(t, a.Session().IsAuthenticated())
	require.Nil(t, a.Session().User)
}

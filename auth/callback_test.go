package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geeom/personal-assistant-web/auth"
	"github.com/geeom/personal-assistant-web/browser/windowfake"
)

func TestParseCallback(t *testing.T) {
	t.Run("code and state present", func(t *testing.T) {
		params, ok := auth.ParseCallback("http://localhost:8080/?code=4%2FabcDEF&state=xyz")
		require.True(t, ok)
		require.Equal(t, "4/abcDEF", params.Code)
		require.Equal(t, "xyz", params.State)
	})

	t.Run("no query string", func(t *testing.T) {
		_, ok := auth.ParseCallback("http://localhost:8080/")
		require.False(t, ok)
	})

	t.Run("missing code", func(t *testing.T) {
		_, ok := auth.ParseCallback("http://localhost:8080/?state=xyz")
		require.False(t, ok)
	})

	t.Run("missing state", func(t *testing.T) {
		_, ok := auth.ParseCallback("http://localhost:8080/?code=abc")
		require.False(t, ok)
	})

	t.Run("unrelated query params only", func(t *testing.T) {
		_, ok := auth.ParseCallback("http://localhost:8080/?utm_source=mail")
		require.False(t, ok)
	})
}

func TestClearURLParams(t *testing.T) {
	t.Run("strips the query string", func(t *testing.T) {
		window := windowfake.New("http://localhost:8080/inbox?code=abc&state=xyz")

		auth.ClearURLParams(window)

		current, err := window.CurrentURL()
		require.NoError(t, err)
		require.Equal(t, "/inbox", current)
	})

	t.Run("idempotent: cleaned url parses as no callback", func(t *testing.T) {
		window := windowfake.New("http://localhost:8080/?code=abc&state=xyz")

		auth.ClearURLParams(window)
		current, err := window.CurrentURL()
		require.NoError(t, err)

		_, ok := auth.ParseCallback(current)
		require.False(t, ok)

		auth.ClearURLParams(window)
		again, err := window.CurrentURL()
		require.NoError(t, err)
		require.Equal(t, current, again)
	})
}

package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/landing/core/cookie"
)

func TestJar(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{testSecret})
	require.NoError(t, err)

	t.Run("absent cookies read as false", func(t *testing.T) {
		t.Parallel()

		jar := m.Jar(httptest.NewRequest(http.MethodGet, "/", nil))

		v, ok := jar.Get("user_id")
		assert.False(t, ok)
		assert.Empty(t, v)

		v, ok = jar.Private("user_id")
		assert.False(t, ok)
		assert.Empty(t, v)
	})

	t.Run("private round trip", func(t *testing.T) {
		t.Parallel()

		jar := m.Jar(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, jar.AddPrivate("user_id", "42"))
		assert.Equal(t, 1, jar.Pending())

		v, ok := jar.Private("user_id")
		require.True(t, ok)
		assert.Equal(t, "42", v)

		sealed, ok := jar.Get("user_id")
		assert.False(t, ok, "queued private cookie is not readable as plain")
		assert.Empty(t, sealed)

		w := httptest.NewRecorder()
		jar.Flush(w)
		assert.Zero(t, jar.Pending())

		next := m.Jar(replay(w))
		v, ok = next.Private("user_id")
		require.True(t, ok)
		assert.Equal(t, "42", v)

		raw, ok := next.Get("user_id")
		require.True(t, ok)
		assert.NotEqual(t, "42", raw)
	})

	t.Run("forged private cookie reads as false", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "user_id", Value: "42"})

		_, ok := m.Jar(r).Private("user_id")
		assert.False(t, ok)
	})

	t.Run("reads see queued changes", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "theme", Value: "light"})
		jar := m.Jar(r)

		v, ok := jar.Get("theme")
		require.True(t, ok)
		assert.Equal(t, "light", v)

		require.NoError(t, jar.Add("theme", "dark"))
		v, _ = jar.Get("theme")
		assert.Equal(t, "dark", v)

		require.NoError(t, jar.AddPrivate("user_id", "7"))
		v, ok = jar.Private("user_id")
		require.True(t, ok)
		assert.Equal(t, "7", v)

		jar.Remove("theme")
		_, ok = jar.Get("theme")
		assert.False(t, ok)

		jar.RemovePrivate("user_id")
		_, ok = jar.Private("user_id")
		assert.False(t, ok)
	})

	t.Run("plain cookie is not private", func(t *testing.T) {
		t.Parallel()

		jar := m.Jar(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, jar.Add("user_id", "42"))

		_, ok := jar.Private("user_id")
		assert.False(t, ok)
	})

	t.Run("flush writes last change per name", func(t *testing.T) {
		t.Parallel()

		jar := m.Jar(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, jar.Add("a", "1"))
		require.NoError(t, jar.Add("b", "2"))
		require.NoError(t, jar.Add("a", "3"))

		w := httptest.NewRecorder()
		jar.Flush(w)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 2)
		assert.Equal(t, "b", cookies[0].Name)
		assert.Equal(t, "a", cookies[1].Name)
		assert.Equal(t, "3", cookies[1].Value)
	})

	t.Run("oversized cookie is not queued", func(t *testing.T) {
		t.Parallel()

		small, err := cookie.NewWithOptions([]string{testSecret}, nil, cookie.WithMaxSize(64))
		require.NoError(t, err)

		jar := small.Jar(httptest.NewRequest(http.MethodGet, "/", nil))
		err = jar.AddPrivate("user_id", "a-value-long-enough-to-overflow-the-limit")
		var tooLarge cookie.ErrCookieTooLarge
		assert.ErrorAs(t, err, &tooLarge)
		assert.Zero(t, jar.Pending())
	})
}

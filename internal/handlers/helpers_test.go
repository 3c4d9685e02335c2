package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/envisionar/portal/internal/handlers"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = handlers.NewValidator()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(testSessionSecret))))
	return e
}

// lastCookie returns the last Set-Cookie with the given name; every session
// save writes a new one.
func lastCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	var found *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			found = c
		}
	}
	return found
}

// assertFlashMessage decodes the flash session written by the response and
// checks the first message under key.
func assertFlashMessage(t *testing.T, rec *httptest.ResponseRecorder, key, expectedMessage string) {
	t.Helper()

	cookie := lastCookie(rec, "flash-session")
	require.NotNil(t, cookie, "response did not write the flash session")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	sess, err := sessions.NewCookieStore([]byte(testSessionSecret)).Get(req, "flash-session")
	require.NoError(t, err)

	flashes := sess.Flashes(key)
	require.NotEmpty(t, flashes, "expected flash message but found none for key: %s", key)
	assert.Equal(t, expectedMessage, flashes[0])
}

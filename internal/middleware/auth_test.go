package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/envisionar/portal/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type tokenAuth map[string]string

func (a tokenAuth) SignIn(ctx context.Context, email, password string) (string, error) {
	return "", domain.ErrInvalidCredentials
}

func (a tokenAuth) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	email, ok := a[token]
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	return &domain.Identity{Email: email}, nil
}

func TestAuthMiddleware(t *testing.T) {
	e := echo.New()
	auth := tokenAuth{"good-token": "ana@example.com"}

	e.GET("/dashboard-pastor", func(c echo.Context) error {
		return c.String(http.StatusOK, "Welcome "+IdentityFrom(c).Email)
	}, Auth(auth))

	t.Run("no cookie redirects to login", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard-pastor", nil))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("valid token passes the identity on", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard-pastor", nil)
		req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "good-token"})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Welcome ana@example.com", rec.Body.String())
	})

	t.Run("invalid token is cleared and redirected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard-pastor", nil)
		req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "forged"})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
		assert.Contains(t, rec.Header().Get("Set-Cookie"), AuthCookieName+"=;")
		assert.Contains(t, rec.Header().Get("Set-Cookie"), "Max-Age=0")
	})
}

func TestSetAuthCookie(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	SetAuthCookie(c, "tok")

	cookie := rec.Result().Cookies()[0]
	assert.Equal(t, AuthCookieName, cookie.Name)
	assert.Equal(t, "tok", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure, "plain HTTP request")
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
}

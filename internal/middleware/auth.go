package middleware

import (
	"net/http"
	"time"

	"github.com/envisionar/portal/internal/domain"
	"github.com/labstack/echo/v4"
)

const (
	// IdentityContextKey holds the *domain.Identity of the signed-in user.
	IdentityContextKey = "identity"

	// AuthCookieName is the cookie carrying the backend session token.
	AuthCookieName = "auth_token"

	authCookieMaxAge = 24 * time.Hour
	loginPath        = "/"
)

// Auth protects routes that need a signed-in user. Requests without a valid
// token are redirected to the login page; this is not treated as an error.
func Auth(auth domain.Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(AuthCookieName)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusSeeOther, loginPath)
			}

			identity, err := auth.Authenticate(c.Request().Context(), cookie.Value)
			if err != nil || identity == nil {
				FromContext(c.Request().Context()).Info("Rejected auth token",
					"event", "auth_token_rejected", "error", err)
				ClearAuthCookie(c)
				return c.Redirect(http.StatusSeeOther, loginPath)
			}

			c.Set(IdentityContextKey, identity)
			return next(c)
		}
	}
}

// IdentityFrom returns the identity stored by Auth, or nil.
func IdentityFrom(c echo.Context) *domain.Identity {
	id, _ := c.Get(IdentityContextKey).(*domain.Identity)
	return id
}

// SetAuthCookie stores token in an HttpOnly cookie. Secure is set when the
// request arrived over TLS.
func SetAuthCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(authCookieMaxAge),
		HttpOnly: true,
		Secure:   c.IsTLS(),
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearAuthCookie expires the auth cookie.
func ClearAuthCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

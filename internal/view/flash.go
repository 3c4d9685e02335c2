package view

import (
	"log/slog"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	flashSessionName = "flash-session"
	flashKeySuccess  = "success"
	flashKeyError    = "error"
	flashKeyEmail    = "form_email"
)

// FlashData holds the toasts queued for the next page render.
type FlashData struct {
	Success []string
	Error   []string
}

// Empty reports whether there is nothing to show.
func (f FlashData) Empty() bool {
	return len(f.Success) == 0 && len(f.Error) == 0
}

// setFlash sets a flash message in the session.
func setFlash(c echo.Context, key, message string) {
	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		slog.WarnContext(c.Request().Context(), "Flash session unreadable, starting a new one", "error", err)
	}
	sess.AddFlash(message, key)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		slog.ErrorContext(c.Request().Context(), "Failed to save flash session", "event", "flash_save_failure", "error", err)
	}
}

// SetFlashSuccess sets a success flash message.
func SetFlashSuccess(c echo.Context, message string) {
	setFlash(c, flashKeySuccess, message)
}

// SetFlashError sets an error flash message.
func SetFlashError(c echo.Context, message string) {
	setFlash(c, flashKeyError, message)
}

// SetFormEmail remembers the submitted email so the login form can be
// pre-filled after a failed attempt.
func SetFormEmail(c echo.Context, email string) {
	setFlash(c, flashKeyEmail, email)
}

// GetFlashData retrieves and clears the queued toasts and the remembered email.
func GetFlashData(c echo.Context) (FlashData, string) {
	var data FlashData

	sess, _ := session.Get(flashSessionName, c)

	// Flashes() returns and removes the values for a key.
	success := sess.Flashes(flashKeySuccess)
	errs := sess.Flashes(flashKeyError)
	emails := sess.Flashes(flashKeyEmail)

	if len(success)+len(errs)+len(emails) == 0 {
		return data, ""
	}
	data.Success = toStrings(success)
	data.Error = toStrings(errs)
	_ = sess.Save(c.Request(), c.Response())

	var email string
	if list := toStrings(emails); len(list) > 0 {
		email = list[len(list)-1]
	}
	return data, email
}

func toStrings(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

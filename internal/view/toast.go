package view

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

const (
	toastSuccessClass = "toast toast-success bg-green-600 text-white px-4 py-3 rounded shadow"
	toastErrorClass   = "toast toast-error bg-red-600 text-white px-4 py-3 rounded shadow"
)

// Toasts renders the queued flash messages as dismissible toasts.
func Toasts(flash FlashData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if flash.Empty() {
			return nil
		}
		if _, err := io.WriteString(w, `<div id="toasts" class="fixed top-4 right-4 space-y-2 z-50" aria-live="polite">`); err != nil {
			return err
		}
		for _, msg := range flash.Success {
			if err := writeToast(w, toastSuccessClass, "status", msg); err != nil {
				return err
			}
		}
		for _, msg := range flash.Error {
			if err := writeToast(w, toastErrorClass, "alert", msg); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func writeToast(w io.Writer, class, role, msg string) error {
	_, err := fmt.Fprintf(w, `<div class="%s" role="%s" onclick="this.remove()">%s</div>`,
		class, role, templ.EscapeString(msg))
	return err
}

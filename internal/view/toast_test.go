package view

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

func TestToasts(t *testing.T) {
	var buf bytes.Buffer
	err := Toasts(FlashData{
		Success: []string{"Bem-vindo"},
		Error:   []string{"<b>falhou</b>"},
	}).Render(context.Background(), &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `role="status" onclick="this.remove()">Bem-vindo</div>`)
	assert.Contains(t, out, "&lt;b&gt;falhou&lt;/b&gt;", "messages are escaped")
	assert.Contains(t, out, "toast-error")
}

func TestToasts_EmptyRendersNothing(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Toasts(FlashData{}).Render(context.Background(), &buf))
	assert.Empty(t, buf.String())
}

func TestTemplInsideGomponents(t *testing.T) {
	page := h.Div(h.ID("wrap"), Templ(context.Background(), Toasts(FlashData{Success: []string{"ok"}})), g.Text("!"))

	var buf bytes.Buffer
	require.NoError(t, page.Render(&buf))
	assert.Contains(t, buf.String(), `<div id="wrap"><div id="toasts"`)
	assert.Contains(t, buf.String(), "!</div>")
}

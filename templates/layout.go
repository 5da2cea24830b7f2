package templates

import "github.com/a-h/templ"

// Page renders a full HTML document around content. Dialogs open into the
// #dialog-root element.
func Page(title string, content templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(title)
		h.raw(`</title>`)
		h.raw(`<script src="https://unpkg.com/htmx.org@2.0.4"></script>`)
		h.raw(`<script src="/static/js/app.js" defer></script>`)
		h.raw(`</head><body><main class="container">`)
		h.render(content)
		h.raw(`</main><div id="dialog-root"></div><div id="toast-root"></div></body></html>`)
	})
}

// SessionForm lets the operator store the identifiers used on submissions.
func SessionForm(userID, acCode, accoID string) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<form class="session-form" hx-post="/session" hx-swap="none">`)
		for _, f := range []struct{ label, name, value string }{
			{"User Id", "user_id", userID},
			{"Account Code", "ac_code", acCode},
			{"Account Id", "accoid", accoID},
		} {
			h.raw(`<label>`)
			h.text(f.label)
			h.raw(` <input type="text"`)
			h.attr("name", f.name)
			h.attr("value", f.value)
			h.raw(`></label>`)
		}
		h.raw(`<button type="submit">Save</button></form>`)
	})
}

// Package templates renders the dialog and list markup as templ components.
package templates

import (
	"context"
	"encoding/json"
	"io"

	"github.com/a-h/templ"
)

// htmlWriter writes markup and keeps the first write error.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newHTMLWriter(ctx context.Context, w io.Writer) *htmlWriter {
	return &htmlWriter{ctx: ctx, w: w}
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// text writes s with HTML escaping.
func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with the value escaped.
func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

func (h *htmlWriter) render(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

// component adapts a writer callback into a templ.Component.
func component(fn func(h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		fn(h)
		return h.err
	})
}

// hxVals encodes extra request values for an hx-vals attribute.
func hxVals(v map[string]string) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// DialogDOMID is the element id of a dialog's root node.
func DialogDOMID(dialogID string) string {
	return "dialog-" + dialogID
}

// DerivedDOMID is the element id of a tender dialog's GST block.
func DerivedDOMID(dialogID string) string {
	return "derived-" + dialogID
}

type fieldInput struct {
	DialogID string
	Label    string
	Name     string
	Value    string
	Type     string
	Error    string
	ReadOnly bool
	List     string
	// Target, when set, receives the response of a field edit.
	Target string
}

func (h *htmlWriter) input(f fieldInput) {
	if f.Type == "" {
		f.Type = "text"
	}
	h.raw(`<div class="form-field">`)
	h.raw(`<label`)
	h.attr("for", f.DialogID+"-"+f.Name)
	h.raw(`>`)
	h.text(f.Label)
	h.raw(`</label><input name="value"`)
	h.attr("id", f.DialogID+"-"+f.Name)
	h.attr("type", f.Type)
	h.attr("value", f.Value)
	if f.List != "" {
		h.attr("list", f.List)
	}
	if f.ReadOnly {
		h.raw(` readonly`)
	} else {
		h.fieldEditAttrs(f.DialogID, f.Name, f.Target)
	}
	h.raw(`>`)
	h.fieldError(f.Error)
	h.raw(`</div>`)
}

type selectOption struct {
	Value string
	Label string
}

type fieldSelect struct {
	DialogID    string
	Label       string
	Name        string
	Value       string
	Placeholder string
	Options     []selectOption
	Error       string
}

func (h *htmlWriter) selectField(f fieldSelect) {
	h.raw(`<div class="form-field">`)
	h.raw(`<label`)
	h.attr("for", f.DialogID+"-"+f.Name)
	h.raw(`>`)
	h.text(f.Label)
	h.raw(`</label><select name="value"`)
	h.attr("id", f.DialogID+"-"+f.Name)
	h.fieldEditAttrs(f.DialogID, f.Name, "")
	h.raw(`>`)
	if f.Placeholder != "" {
		h.raw(`<option value="">`)
		h.text(f.Placeholder)
		h.raw(`</option>`)
	}
	for _, opt := range f.Options {
		h.raw(`<option`)
		h.attr("value", opt.Value)
		if opt.Value == f.Value {
			h.raw(` selected`)
		}
		h.raw(`>`)
		h.text(opt.Label)
		h.raw(`</option>`)
	}
	h.raw(`</select>`)
	h.fieldError(f.Error)
	h.raw(`</div>`)
}

func (h *htmlWriter) fieldEditAttrs(dialogID, name, target string) {
	h.attr("hx-post", "/dialogs/"+dialogID+"/fields")
	h.attr("hx-trigger", "change")
	h.attr("hx-vals", hxVals(map[string]string{"name": name}))
	if target != "" {
		h.attr("hx-target", "#"+target)
		h.attr("hx-swap", "outerHTML")
	} else {
		h.attr("hx-swap", "none")
	}
}

func (h *htmlWriter) fieldError(msg string) {
	if msg == "" {
		return
	}
	h.raw(`<p class="field-error">`)
	h.text(msg)
	h.raw(`</p>`)
}

// dialogShell wraps body in the modal chrome shared by both dialogs.
func (h *htmlWriter) dialogShell(dialogID, title string, body func()) {
	h.raw(`<div class="modal-backdrop"`)
	h.attr("id", DialogDOMID(dialogID))
	h.raw(`><div class="modal" role="dialog" aria-modal="true"><div class="modal-header"><h2>`)
	h.text(title)
	h.raw(`</h2><button type="button" class="modal-close" aria-label="close"`)
	h.closeAttrs(dialogID)
	h.raw(`>&times;</button></div>`)
	body()
	h.raw(`</div></div>`)
}

func (h *htmlWriter) closeAttrs(dialogID string) {
	h.attr("hx-delete", "/dialogs/"+dialogID)
	h.attr("hx-target", "#"+DialogDOMID(dialogID))
	h.attr("hx-swap", "outerHTML")
}

func (h *htmlWriter) formError(errs map[string]string) {
	if msg, ok := errs["_form"]; ok {
		h.raw(`<div class="alert alert-error">`)
		h.text(msg)
		h.raw(`</div>`)
	}
}

package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tenderdesk/dialogs"
	"tenderdesk/services"
	"tenderdesk/templates"
)

// TenderAPI is the remote API as the dialog handlers use it.
type TenderAPI interface {
	services.ReferenceSource
	services.Submitter
}

// renderDialog writes a dialog fragment for HTMX requests and a full page
// otherwise.
func renderDialog(e *core.RequestEvent, status int, title string, component templ.Component) error {
	if e.Request.Header.Get("HX-Request") != "true" {
		component = templates.Page(title, component)
	}
	if status != http.StatusOK {
		e.Response.WriteHeader(status)
	}
	return component.Render(e.Request.Context(), e.Response)
}

func dialogNotFound(e *core.RequestEvent) error {
	return ErrorToast(e, http.StatusNotFound, "This dialog has expired. Please open it again.")
}

// fieldEditError maps a SetField failure to a response.
func fieldEditError(e *core.RequestEvent, err error) error {
	var fe *services.FieldError
	switch {
	case errors.Is(err, dialogs.ErrDialogNotFound):
		return dialogNotFound(e)
	case errors.As(err, &fe):
		return ErrorToast(e, http.StatusUnprocessableEntity, fe.Error())
	case errors.Is(err, services.ErrUnknownField), errors.Is(err, services.ErrReadOnlyField):
		return ErrorToast(e, http.StatusBadRequest, "This field cannot be edited")
	default:
		log.Printf("dialog_field: unexpected error: %v", err)
		return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}

// HandleDialogField applies one field edit to an open dialog. Rate and GST
// edits on a tender dialog answer with the refreshed GST block.
// Route: POST /dialogs/{dialogId}/fields
func HandleDialogField(app *pocketbase.PocketBase, reg *dialogs.Registry) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		d, err := reg.Get(e.Request.PathValue("dialogId"), "")
		if err != nil {
			return dialogNotFound(e)
		}
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}
		name := e.Request.FormValue("name")
		value := e.Request.FormValue("value")

		switch d.Kind {
		case dialogs.KindResale:
			if err := d.Do(func() error { return d.Resale.SetField(name, value) }); err != nil {
				return fieldEditError(e, err)
			}
			return e.NoContent(http.StatusNoContent)

		case dialogs.KindTender:
			var rec services.TenderRecord
			err := d.Do(func() error {
				_, err := d.Tender.SetField(name, value)
				rec = d.Tender.Record()
				return err
			})
			if err != nil {
				return fieldEditError(e, err)
			}
			if !services.AffectsGST(name) {
				return e.NoContent(http.StatusNoContent)
			}
			return templates.TenderDerivedFields(d.ID, rec).Render(e.Request.Context(), e.Response)
		}
		return dialogNotFound(e)
	}
}

// HandleDialogSubmit runs the submission gateway for an open dialog. Only
// one submission per dialog may be in flight.
// Route: POST /dialogs/{dialogId}/submit
func HandleDialogSubmit(app *pocketbase.PocketBase, reg *dialogs.Registry, api TenderAPI) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		d, err := reg.Get(e.Request.PathValue("dialogId"), "")
		if err != nil {
			return dialogNotFound(e)
		}

		if err := d.BeginSubmit(); err != nil {
			return ErrorToast(e, http.StatusConflict, "A submission is already in progress")
		}
		defer d.EndSubmit()

		switch d.Kind {
		case dialogs.KindResale:
			return submitResale(e, reg, d, api)
		case dialogs.KindTender:
			return submitTender(app, e, reg, d, api)
		}
		return dialogNotFound(e)
	}
}

// HandleDialogClose cancels whatever the dialog still has in flight and
// forgets it. Closing an unknown dialog is not an error.
// Route: DELETE /dialogs/{dialogId}
func HandleDialogClose(app *pocketbase.PocketBase, reg *dialogs.Registry) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		reg.Close(e.Request.PathValue("dialogId"))
		return e.String(http.StatusOK, "")
	}
}

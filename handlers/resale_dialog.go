package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tenderdesk/dialogs"
	"tenderdesk/services"
	"tenderdesk/templates"
)

const resaleTitle = "My Order Resale"

// HandleResaleOpen opens a publish dialog with today's dates and the
// reference lists fetched from the API.
// Route: GET /resale/new
func HandleResaleOpen(app *pocketbase.PocketBase, reg *dialogs.Registry, api TenderAPI) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		d := reg.Open(dialogs.KindResale, GetSession(e.Request), func(d *dialogs.Dialog) {
			d.Resale = services.NewResaleForm(time.Now())

			// Abort the loads if either the dialog or the opening request goes away.
			ctx, cancel := context.WithCancel(d.Context())
			defer cancel()
			stop := context.AfterFunc(e.Request.Context(), cancel)
			defer stop()

			d.RefData = services.LoadReferenceData(ctx, api)
		})

		if err := e.Request.Context().Err(); err != nil {
			reg.Close(d.ID)
			return err
		}

		data := templates.ResaleDialogData{
			DialogID: d.ID,
			Record:   d.Resale.Record(),
			RefData:  d.RefData,
			Errors:   make(map[string]string),
		}
		return renderDialog(e, http.StatusOK, resaleTitle, templates.ResaleDialog(data))
	}
}

// HandleResaleItem stores the product picked in the side selector.
// Route: POST /dialogs/{dialogId}/item
func HandleResaleItem(app *pocketbase.PocketBase, reg *dialogs.Registry) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		d, err := reg.Get(e.Request.PathValue("dialogId"), dialogs.KindResale)
		if err != nil {
			return dialogNotFound(e)
		}
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		code := 0
		if raw := strings.TrimSpace(e.Request.FormValue("itemcode")); raw != "" {
			code, err = strconv.Atoi(raw)
			if err != nil {
				return ErrorToast(e, http.StatusUnprocessableEntity, "Product code must be a whole number")
			}
		}

		var ic *int
		if raw := strings.TrimSpace(e.Request.FormValue("ic")); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return ErrorToast(e, http.StatusUnprocessableEntity, "Product IC must be a whole number")
			}
			ic = &n
		}
		name := strings.TrimSpace(e.Request.FormValue("Item_Name"))

		err = d.Do(func() error {
			d.Resale.SelectItem(code, name, ic)
			return nil
		})
		if err != nil {
			return dialogNotFound(e)
		}
		return e.NoContent(http.StatusNoContent)
	}
}

func submitResale(e *core.RequestEvent, reg *dialogs.Registry, d *dialogs.Dialog, api TenderAPI) error {
	gw := services.NewGateway(api, d.Session)

	var rec services.ResaleRecord
	err := d.Do(func() error {
		rec = d.Resale.Record()
		return gw.PublishResale(d.Context(), d.Resale, d.RefData)
	})

	var verr *services.ValidationError
	switch {
	case err == nil:
		reg.Close(d.ID)
		SetToast(e, "success", "Resale tender published")
		return e.String(http.StatusOK, "")

	case errors.As(err, &verr):
		return renderResaleErrors(e, d, rec, verr.Fields)

	case errors.Is(err, services.ErrUnknownCompany):
		return renderResaleErrors(e, d, rec, map[string]string{"Mill_Code": "Selected company not found"})

	case errors.Is(err, dialogs.ErrDialogNotFound):
		return dialogNotFound(e)

	default:
		// The create path closes without a banner; the gateway already logged.
		log.Printf("resale_dialog: dialog %s closed after failed publish", d.ID)
		reg.Close(d.ID)
		return e.String(http.StatusOK, "")
	}
}

func renderResaleErrors(e *core.RequestEvent, d *dialogs.Dialog, rec services.ResaleRecord, errs map[string]string) error {
	SetToast(e, "warning", "Please fix the errors below")
	data := templates.ResaleDialogData{
		DialogID: d.ID,
		Record:   rec,
		RefData:  d.RefData,
		Errors:   errs,
	}
	return renderDialog(e, http.StatusUnprocessableEntity, resaleTitle, templates.ResaleDialog(data))
}

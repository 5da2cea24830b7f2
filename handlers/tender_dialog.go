package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tenderdesk/dialogs"
	"tenderdesk/services"
	"tenderdesk/templates"
)

const tenderTitle = "Update eTender"

// updateCloseDelay is how long the update dialog shows its banner before
// the client removes it.
const updateCloseDelay = 500 * time.Millisecond

// HandleTenderOpen opens an update dialog seeded from the mirrored tender.
// Route: GET /tenders/{millTenderId}/edit
func HandleTenderOpen(app *pocketbase.PocketBase, reg *dialogs.Registry) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id, err := strconv.Atoi(e.Request.PathValue("millTenderId"))
		if err != nil || id <= 0 {
			return ErrorToast(e, http.StatusBadRequest, "Invalid tender id")
		}

		rec, err := services.FindMirroredTender(app, id)
		if err != nil {
			log.Printf("tender_dialog: %v", err)
			return ErrorToast(e, http.StatusNotFound, "Tender not found")
		}

		d := reg.Open(dialogs.KindTender, GetSession(e.Request), func(d *dialogs.Dialog) {
			d.Tender = services.NewTenderForm(services.RecordToTender(rec))
		})

		data := templates.TenderDialogData{
			DialogID: d.ID,
			Record:   d.Tender.Record(),
			Errors:   make(map[string]string),
		}
		return renderDialog(e, http.StatusOK, tenderTitle, templates.TenderDialog(data))
	}
}

func submitTender(app *pocketbase.PocketBase, e *core.RequestEvent, reg *dialogs.Registry, d *dialogs.Dialog, api TenderAPI) error {
	gw := services.NewGateway(api, d.Session)
	onUpdated := func(t services.TenderRecord) {
		if err := services.UpsertMirroredTender(app, t); err != nil {
			log.Printf("tender_dialog: could not refresh mirror for tender %d: %v", t.MillTenderID, err)
		}
	}

	var rec, confirmed services.TenderRecord
	err := d.Do(func() error {
		rec = d.Tender.Record()
		var err error
		confirmed, err = gw.UpdateTender(d.Context(), d.Tender, onUpdated)
		return err
	})

	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		SetToast(e, "warning", "Please fix the errors below")
		data := templates.TenderDialogData{DialogID: d.ID, Record: rec, Errors: verr.Fields}
		return renderDialog(e, http.StatusUnprocessableEntity, tenderTitle, templates.TenderDialog(data))

	case errors.Is(err, dialogs.ErrDialogNotFound):
		return dialogNotFound(e)

	case err != nil:
		SetToast(e, "error", "Could not update tender. Please try again.")

	default:
		SetToast(e, "success", "Tender updated successfully!")
		AddTrigger(e, "tenderUpdated", map[string]int{"id": confirmed.MillTenderID})
	}

	// Either way the banner shows briefly and the dialog goes away.
	reg.Close(d.ID)
	CloseDialog(e, d.ID, updateCloseDelay)
	e.Response.Header().Set("HX-Reswap", "none")
	return e.String(http.StatusOK, "")
}

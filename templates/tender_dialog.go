package templates

import (
	"strconv"

	"github.com/a-h/templ"

	"tenderdesk/services"
)

// TenderDialogData is everything the update dialog renders.
type TenderDialogData struct {
	DialogID string
	Record   services.TenderRecord
	Errors   map[string]string
}

// TenderDialog renders the "Update eTender" modal.
func TenderDialog(data TenderDialogData) templ.Component {
	return component(func(h *htmlWriter) {
		h.dialogShell(data.DialogID, "Update eTender", func() {
			renderTenderBody(h, data)
		})
	})
}

// TenderDerivedFields renders the read-only GST block. Rate and GST edits
// swap it in place.
func TenderDerivedFields(dialogID string, rec services.TenderRecord) templ.Component {
	return component(func(h *htmlWriter) {
		renderDerived(h, dialogID, rec)
	})
}

func renderDerived(h *htmlWriter, dialogID string, rec services.TenderRecord) {
	h.raw(`<div class="derived"`)
	h.attr("id", DerivedDOMID(dialogID))
	h.raw(`>`)
	h.input(fieldInput{DialogID: dialogID, Label: "Base Rate GST Amount", Name: "Base_Rate_GST_Amount", Value: rec.BaseRateGSTAmount, ReadOnly: true})
	h.input(fieldInput{DialogID: dialogID, Label: "Rate Including GST", Name: "Rate_Including_GST", Value: rec.RateIncludingGST, ReadOnly: true})
	h.raw(`<p class="hint">`)
	h.text(services.FormatINR(rec.RateIncludingGST))
	h.raw(` per quintal incl. GST</p></div>`)
}

func renderTenderBody(h *htmlWriter, data TenderDialogData) {
	id := data.DialogID
	rec := data.Record
	errs := data.Errors
	derived := DerivedDOMID(id)

	h.raw(`<div class="modal-body">`)
	h.formError(errs)

	h.input(fieldInput{DialogID: id, Label: "Mill Name", Name: "mill_user_name", Value: rec.MillUserName, Error: errs["mill_user_name"]})
	h.input(fieldInput{DialogID: id, Label: "Product", Name: "item_name", Value: rec.ItemName, Error: errs["item_name"]})

	delivery := make([]selectOption, 0, len(services.DeliveryFromOptions))
	for _, o := range services.DeliveryFromOptions {
		delivery = append(delivery, selectOption{Value: o.Value, Label: o.Label})
	}
	h.selectField(fieldSelect{
		DialogID: id,
		Label:    "Delivery From",
		Name:     "Delivery_From",
		Value:    rec.DeliveryFrom,
		Options:  delivery,
		Error:    errs["Delivery_From"],
	})

	h.input(fieldInput{DialogID: id, Label: "Quantity", Name: "Quantity", Value: formatNumber(rec.Quantity), Type: "number", Error: errs["Quantity"]})
	h.input(fieldInput{DialogID: id, Label: "Packing", Name: "Packing", Value: formatNumber(rec.Packing), Type: "number", Error: errs["Packing"]})
	h.input(fieldInput{DialogID: id, Label: "Season", Name: "Season", Value: rec.Season, Error: errs["Season"]})
	h.input(fieldInput{DialogID: id, Label: "Lifting Date", Name: "Lifting_Date", Value: rec.LiftingDate, Type: "date", Error: errs["Lifting_Date"]})
	h.input(fieldInput{DialogID: id, Label: "Payment Date", Name: "Last_Dateof_Payment", Value: rec.LastDateOfPayment, Type: "date", Error: errs["Last_Dateof_Payment"]})

	h.input(fieldInput{DialogID: id, Label: "Base Rate", Name: "Base_Rate", Value: rec.BaseRate, Error: errs["Base_Rate"], Target: derived})
	h.input(fieldInput{DialogID: id, Label: "GST %", Name: "Base_Rate_GST_Perc", Value: rec.BaseRateGSTPerc, Error: errs["Base_Rate_GST_Perc"], Target: derived, List: id + "-gst-options"})
	h.raw(`<datalist`)
	h.attr("id", id+"-gst-options")
	h.raw(`>`)
	for _, p := range services.GSTOptions {
		h.raw(`<option`)
		h.attr("value", strconv.Itoa(p))
		h.raw(`></option>`)
	}
	h.raw(`</datalist>`)
	renderDerived(h, id, rec)

	h.input(fieldInput{DialogID: id, Label: "Start Date", Name: "Start_Date", Value: rec.StartDate, Type: "date", Error: errs["Start_Date"]})
	h.input(fieldInput{DialogID: id, Label: "Start Time", Name: "Start_Time", Value: rec.StartTime, Type: "time", Error: errs["Start_Time"]})
	h.input(fieldInput{DialogID: id, Label: "End Date", Name: "End_Date", Value: rec.EndDate, Type: "date", Error: errs["End_Date"]})
	h.input(fieldInput{DialogID: id, Label: "End Time", Name: "End_Time", Value: rec.EndTime, Type: "time", Error: errs["End_Time"]})
	h.raw(`</div>`)

	h.raw(`<div class="modal-footer"><button type="button" class="btn-secondary"`)
	h.closeAttrs(id)
	h.raw(`>Cancel</button><button type="button" class="btn-primary"`)
	h.attr("hx-post", "/dialogs/"+id+"/submit")
	h.attr("hx-target", "#"+DialogDOMID(id))
	h.attr("hx-swap", "outerHTML")
	h.raw(` hx-disabled-elt="this">Update</button></div>`)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

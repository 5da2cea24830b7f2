package templates

import (
	"strconv"

	"github.com/a-h/templ"

	"tenderdesk/services"
)

// ResaleDialogData is everything the publish dialog renders.
type ResaleDialogData struct {
	DialogID string
	Record   services.ResaleRecord
	RefData  services.ReferenceData
	Errors   map[string]string
}

// ResaleDialog renders the "My Order Resale" modal.
func ResaleDialog(data ResaleDialogData) templ.Component {
	return component(func(h *htmlWriter) {
		h.dialogShell(data.DialogID, "My Order Resale", func() {
			renderResaleBody(h, data)
		})
	})
}

func renderResaleBody(h *htmlWriter, data ResaleDialogData) {
	id := data.DialogID
	rec := data.Record
	errs := data.Errors

	h.raw(`<div class="modal-body">`)
	h.formError(errs)

	h.input(fieldInput{DialogID: id, Label: "Date", Name: "Date", Value: rec.Date, Type: "date", Error: errs["Date"]})

	companies := make([]selectOption, 0, len(data.RefData.Companies))
	for _, c := range data.RefData.Companies {
		companies = append(companies, selectOption{Value: strconv.Itoa(c.ID), Label: c.Name})
	}
	millCode := ""
	if rec.MillCode != 0 {
		millCode = strconv.Itoa(rec.MillCode)
	}
	h.selectField(fieldSelect{
		DialogID:    id,
		Label:       "Mill Name",
		Name:        "Mill_Code",
		Value:       millCode,
		Placeholder: "Select Mill",
		Options:     companies,
		Error:       errs["Mill_Code"],
	})

	renderItemPicker(h, id, rec)

	h.input(fieldInput{DialogID: id, Label: "Start Date", Name: "Start_Date", Value: rec.StartDate, Type: "date", Error: errs["Start_Date"]})
	h.input(fieldInput{DialogID: id, Label: "Start Time", Name: "Start_Time", Value: rec.StartTime, Type: "time", Error: errs["Start_Time"]})
	h.input(fieldInput{DialogID: id, Label: "End Date", Name: "End_Date", Value: rec.EndDate, Type: "date", Error: errs["End_Date"]})
	h.input(fieldInput{DialogID: id, Label: "End Time", Name: "End_Time", Value: rec.EndTime, Type: "time", Error: errs["End_Time"]})

	h.selectField(fieldSelect{
		DialogID:    id,
		Label:       "Grade",
		Name:        "Grade",
		Value:       rec.Grade,
		Placeholder: "Select Grade",
		Options:     masterOptions(data.RefData.Grades),
		Error:       errs["Grade"],
	})
	h.selectField(fieldSelect{
		DialogID:    id,
		Label:       "Season",
		Name:        "Season",
		Value:       rec.Season,
		Placeholder: "Select Season",
		Options:     masterOptions(data.RefData.Seasons),
		Error:       errs["Season"],
	})

	h.input(fieldInput{DialogID: id, Label: "Lifting Date", Name: "Lifting_date", Value: rec.LiftingDate, Type: "date", Error: errs["Lifting_date"]})
	h.input(fieldInput{DialogID: id, Label: "Payment Date", Name: "Payment_Date", Value: rec.PaymentDate, Type: "date", Error: errs["Payment_Date"]})
	h.input(fieldInput{DialogID: id, Label: "Sale Rate", Name: "Display_Rate", Value: rec.DisplayRate, Error: errs["Display_Rate"]})
	h.input(fieldInput{DialogID: id, Label: "Sale Quantal", Name: "Display_Qty", Value: rec.DisplayQty, Error: errs["Display_Qty"]})
	h.raw(`</div>`)

	h.raw(`<div class="modal-footer"><button type="button" class="btn-secondary"`)
	h.closeAttrs(id)
	h.raw(`>Cancel</button><button type="button" class="btn-primary"`)
	h.attr("hx-post", "/dialogs/"+id+"/submit")
	h.attr("hx-target", "#"+DialogDOMID(id))
	h.attr("hx-swap", "outerHTML")
	h.raw(` hx-disabled-elt="this">Publish</button></div>`)
}

// Grade and Season select on the display name, which is what the API stores.
func masterOptions(opts []services.MasterOption) []selectOption {
	out := make([]selectOption, 0, len(opts))
	for _, o := range opts {
		out = append(out, selectOption{Value: o.Name, Label: o.Name})
	}
	return out
}

func renderItemPicker(h *htmlWriter, id string, rec services.ResaleRecord) {
	h.raw(`<form class="item-picker"`)
	h.attr("hx-post", "/dialogs/"+id+"/item")
	h.raw(` hx-swap="none"><label>Select Product</label>`)
	code := ""
	if rec.ItemCode != 0 {
		code = strconv.Itoa(rec.ItemCode)
	}
	ic := ""
	if rec.IC != nil {
		ic = strconv.Itoa(*rec.IC)
	}
	h.raw(`<input type="number" name="itemcode" placeholder="Code"`)
	h.attr("value", code)
	h.raw(`><input type="text" name="Item_Name" placeholder="Product"`)
	h.attr("value", rec.ItemName)
	h.raw(`><input type="number" name="ic" placeholder="IC"`)
	h.attr("value", ic)
	h.raw(`><button type="submit">Select</button></form>`)
}

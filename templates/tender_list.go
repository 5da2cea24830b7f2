package templates

import (
	"strconv"

	"github.com/a-h/templ"

	"tenderdesk/services"
)

// TenderListData backs the mirrored tender list.
type TenderListData struct {
	Tenders []services.TenderRecord
	Session services.Session
	Import  *services.TenderImportResult
}

// TenderListPage renders the list as a full document.
func TenderListPage(data TenderListData) templ.Component {
	return Page("Mill Tenders", TenderListContent(data))
}

// TenderListContent renders the list body only, for HTMX swaps.
func TenderListContent(data TenderListData) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<section id="tender-list"><header class="page-header"><h1>Mill Tenders</h1><div class="actions">`)
		h.raw(`<button type="button" hx-get="/resale/new" hx-target="#dialog-root" hx-swap="beforeend">My Order Resale</button>`)
		h.raw(`<a class="btn" href="/tenders/export">Export Excel</a>`)
		h.raw(`<form hx-post="/tenders/import" hx-encoding="multipart/form-data" hx-target="#tender-list" hx-swap="outerHTML">`)
		h.raw(`<input type="file" name="file" accept=".xlsx,.csv" required><button type="submit">Import</button></form>`)
		h.raw(`</div></header>`)

		h.render(SessionForm(data.Session.UserID, data.Session.AcCode, data.Session.AccoID))

		if data.Import != nil {
			renderImportSummary(h, data.Import)
		}

		if len(data.Tenders) == 0 {
			h.raw(`<p class="empty">No tenders yet. Import a sheet to get started.</p></section>`)
			return
		}

		h.raw(`<table class="data-table"><thead><tr>`)
		for _, col := range []string{"Tender ID", "Mill Name", "Product", "Season", "Quantity", "Base Rate", "GST %", "Rate Including GST", "Start", "End", ""} {
			h.raw(`<th>`)
			h.text(col)
			h.raw(`</th>`)
		}
		h.raw(`</tr></thead><tbody>`)
		for _, t := range data.Tenders {
			id := strconv.Itoa(t.MillTenderID)
			h.raw(`<tr`)
			h.attr("id", "tender-"+id)
			h.raw(`>`)
			for _, cell := range []string{
				id,
				t.MillUserName,
				t.ItemName,
				t.Season,
				formatNumber(t.Quantity),
				services.FormatINR(t.BaseRate),
				t.BaseRateGSTPerc,
				services.FormatINR(t.RateIncludingGST),
				t.StartDate + " " + t.StartTime,
				t.EndDate + " " + t.EndTime,
			} {
				h.raw(`<td>`)
				h.text(cell)
				h.raw(`</td>`)
			}
			h.raw(`<td><button type="button"`)
			h.attr("hx-get", "/tenders/"+id+"/edit")
			h.raw(` hx-target="#dialog-root" hx-swap="beforeend">Edit</button></td></tr>`)
		}
		h.raw(`</tbody></table></section>`)
	})
}

func renderImportSummary(h *htmlWriter, res *services.TenderImportResult) {
	h.raw(`<div class="import-summary"><p>`)
	h.text(strconv.Itoa(len(res.Tenders)) + " of " + strconv.Itoa(res.TotalRows) + " rows imported")
	h.raw(`</p>`)
	if len(res.Errors) > 0 {
		h.raw(`<ul class="import-errors">`)
		for _, e := range res.Errors {
			h.raw(`<li>`)
			h.text("Row " + strconv.Itoa(e.Row) + ", " + e.Field + ": " + e.Message)
			h.raw(`</li>`)
		}
		h.raw(`</ul>`)
	}
	h.raw(`</div>`)
}

package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tenderdesk/services"
	"tenderdesk/templates"
)

func renderTenderList(e *core.RequestEvent, data templates.TenderListData) error {
	var component templ.Component
	if e.Request.Header.Get("HX-Request") == "true" {
		component = templates.TenderListContent(data)
	} else {
		component = templates.TenderListPage(data)
	}
	return component.Render(e.Request.Context(), e.Response)
}

// HandleTenderList shows the mirrored tenders.
// Route: GET /tenders
func HandleTenderList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tenders, err := services.ListMirroredTenders(app)
		if err != nil {
			log.Printf("tender_list: %v", err)
			tenders = nil
		}
		return renderTenderList(e, templates.TenderListData{
			Tenders: tenders,
			Session: GetSession(e.Request),
		})
	}
}

// HandleTenderImport loads a .xlsx or .csv sheet into the mirror. Valid rows
// are stored; invalid rows are reported back with the refreshed list.
// Route: POST /tenders/import
func HandleTenderImport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "File too large or invalid form data")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Please select a file to upload")
		}
		defer file.Close()

		result, err := services.ParseTenderSheet(file, header.Filename)
		if err != nil {
			log.Printf("tender_import: parse %s: %v", header.Filename, err)
			return ErrorToast(e, http.StatusUnprocessableEntity, err.Error())
		}

		saved := result.Tenders[:0]
		for _, t := range result.Tenders {
			if err := services.UpsertMirroredTender(app, t); err != nil {
				log.Printf("tender_import: %v", err)
				result.Errors = append(result.Errors, services.ImportRowError{
					Field:   "MillTenderId",
					Message: fmt.Sprintf("tender %d could not be saved", t.MillTenderID),
				})
				continue
			}
			saved = append(saved, t)
		}
		result.Tenders = saved

		if len(result.Errors) > 0 {
			SetToast(e, "warning", fmt.Sprintf("Imported %d of %d rows", len(saved), result.TotalRows))
		} else {
			SetToast(e, "success", fmt.Sprintf("Imported %d tenders", len(saved)))
		}

		tenders, err := services.ListMirroredTenders(app)
		if err != nil {
			log.Printf("tender_import: reload list: %v", err)
		}
		return renderTenderList(e, templates.TenderListData{
			Tenders: tenders,
			Session: GetSession(e.Request),
			Import:  result,
		})
	}
}

// HandleTenderExport downloads the mirrored tenders as an Excel file.
// Route: GET /tenders/export
func HandleTenderExport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tenders, err := services.ListMirroredTenders(app)
		if err != nil {
			log.Printf("tender_export: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to load tenders")
		}

		xlsxBytes, err := services.GenerateTenderExcel(tenders)
		if err != nil {
			log.Printf("tender_export: generate failed: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("MillTenders_%s.xlsx", time.Now().Format("20060102"))
		e.Response.Header().Set("Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

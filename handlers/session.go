package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tenderdesk/services"
)

// HandleSessionSave stores the identifiers submitted on behalf of the user
// and binds them to the caller through the session cookie.
// Route: POST /session
func HandleSessionSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		session := services.Session{
			UserID: strings.TrimSpace(e.Request.FormValue("user_id")),
			AcCode: strings.TrimSpace(e.Request.FormValue("ac_code")),
			AccoID: strings.TrimSpace(e.Request.FormValue("accoid")),
		}

		key := ""
		if cookie, err := e.Request.Cookie(sessionCookie); err == nil {
			key = cookie.Value
		}
		if key == "" {
			key = uuid.NewString()
		}

		if err := services.SaveSession(app, key, session); err != nil {
			log.Printf("session: could not save session: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		http.SetCookie(e.Response, &http.Cookie{
			Name:     sessionCookie,
			Value:    key,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		SetToast(e, "success", "Session saved")

		if e.Request.Header.Get("HX-Request") == "true" {
			return e.String(http.StatusOK, "")
		}
		return e.Redirect(http.StatusFound, "/tenders")
	}
}

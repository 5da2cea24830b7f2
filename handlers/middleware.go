package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tenderdesk/services"
)

type contextKey string

const SessionKey contextKey = "session"

// sessionCookie holds the key of the caller's row in the sessions collection.
const sessionCookie = "tender_session"

// GetSession extracts the acting session from the request context. A request
// without a stored session yields empty identifiers.
func GetSession(r *http.Request) services.Session {
	if val, ok := r.Context().Value(SessionKey).(services.Session); ok {
		return val
	}
	return services.Session{}
}

// SessionMiddleware reads the "tender_session" cookie, loads the stored
// identifiers and puts them in the request context for the dialog handlers.
func SessionMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		attachSession(app, e)
		return e.Next()
	}
}

func attachSession(app *pocketbase.PocketBase, e *core.RequestEvent) {
	var session services.Session

	cookie, err := e.Request.Cookie(sessionCookie)
	if err == nil && cookie.Value != "" {
		loaded, err := services.LoadSession(app, cookie.Value)
		if err == nil {
			session = loaded
		} else {
			log.Printf("middleware: session %s not found, clearing cookie", cookie.Value)
			http.SetCookie(e.Response, &http.Cookie{
				Name:   sessionCookie,
				Value:  "",
				Path:   "/",
				MaxAge: -1,
			})
		}
	}

	ctx := context.WithValue(e.Request.Context(), SessionKey, session)
	e.Request = e.Request.WithContext(ctx)
}

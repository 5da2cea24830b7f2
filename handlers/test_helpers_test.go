package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tenderdesk/apiclient"
	"tenderdesk/dialogs"
	"tenderdesk/services"
	"tenderdesk/testhelpers"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// dialogEnv bundles what the dialog handlers need in a test.
type dialogEnv struct {
	app *pocketbase.PocketBase
	reg *dialogs.Registry
	api *testhelpers.FakeAPI
	cli *apiclient.Client
}

func newDialogEnv(t *testing.T) *dialogEnv {
	t.Helper()

	api := testhelpers.NewFakeAPI(t)
	return &dialogEnv{
		app: testhelpers.NewTestApp(t),
		reg: dialogs.NewRegistry(context.Background()),
		api: api,
		cli: apiclient.New(api.URL(), 5*time.Second),
	}
}

func withSession(req *http.Request, s services.Session) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), SessionKey, s))
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	return req
}

// postField sends one field edit to a dialog.
func (env *dialogEnv) postField(t *testing.T, dialogID, name, value string) *httptest.ResponseRecorder {
	t.Helper()

	req := formRequest(http.MethodPost, "/dialogs/"+dialogID+"/fields", url.Values{"name": {name}, "value": {value}})
	req.SetPathValue("dialogId", dialogID)
	rec := httptest.NewRecorder()
	if err := HandleDialogField(env.app, env.reg)(newTestRequestEvent(env.app, req, rec)); err != nil {
		t.Fatalf("field handler returned error: %v", err)
	}
	return rec
}

// submit posts the dialog's submit action.
func (env *dialogEnv) submit(t *testing.T, dialogID string) *httptest.ResponseRecorder {
	t.Helper()

	req := formRequest(http.MethodPost, "/dialogs/"+dialogID+"/submit", url.Values{})
	req.SetPathValue("dialogId", dialogID)
	rec := httptest.NewRecorder()
	if err := HandleDialogSubmit(env.app, env.reg, env.cli)(newTestRequestEvent(env.app, req, rec)); err != nil {
		t.Fatalf("submit handler returned error: %v", err)
	}
	return rec
}

// onlyDialogID returns the id of the single open dialog.
func (env *dialogEnv) onlyDialogID(t *testing.T, body string) string {
	t.Helper()

	if env.reg.Len() != 1 {
		t.Fatalf("expected exactly one open dialog, got %d", env.reg.Len())
	}
	const marker = `id="dialog-`
	i := strings.Index(body, marker)
	if i < 0 {
		t.Fatalf("dialog id not found in body: %s", body)
	}
	rest := body[i+len(marker):]
	return rest[:strings.Index(rest, `"`)]
}

package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"tenderdesk/testhelpers"
)

func (env *dialogEnv) openResale(t *testing.T) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/resale/new", nil)
	req.Header.Set("HX-Request", "true")
	req = withSession(req, testhelpers.DefaultSession)
	rec := httptest.NewRecorder()

	if err := HandleResaleOpen(env.app, env.reg, env.cli)(newTestRequestEvent(env.app, req, rec)); err != nil {
		t.Fatalf("open handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	return env.onlyDialogID(t, rec.Body.String())
}

func (env *dialogEnv) fillResale(t *testing.T, dialogID string, overrides map[string]string) {
	t.Helper()

	values := map[string]string{
		"Mill_Code":    "3001",
		"Grade":        "M-30",
		"Season":       "2025-26",
		"Display_Rate": "3650",
		"Display_Qty":  "200",
		"Start_Time":   "10:00",
		"End_Time":     "18:00",
	}
	for k, v := range overrides {
		values[k] = v
	}
	for name, value := range values {
		if rec := env.postField(t, dialogID, name, value); rec.Code != http.StatusNoContent {
			t.Fatalf("set %s: expected 204, got %d: %s", name, rec.Code, rec.Body.String())
		}
	}
}

func TestHandleResaleOpen_RendersReferenceData(t *testing.T) {
	env := newDialogEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/resale/new", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	if err := HandleResaleOpen(env.app, env.reg, env.cli)(newTestRequestEvent(env.app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body,
		"My Order Resale", "Select Mill", `value="3001"`, "Shree Mill",
		`value="M-30"`, `value="2025-26"`, "Publish",
	)
	// Units are loaded but no select offers them.
	testhelpers.AssertHTMLNotContains(t, body, "Quintal", "<html")
	if env.reg.Len() != 1 {
		t.Errorf("expected one open dialog, got %d", env.reg.Len())
	}
}

func TestHandleResaleOpen_FullPageWithoutHTMX(t *testing.T) {
	env := newDialogEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/resale/new", nil)
	rec := httptest.NewRecorder()
	if err := HandleResaleOpen(env.app, env.reg, env.cli)(newTestRequestEvent(env.app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "<!DOCTYPE html>", "My Order Resale")
}

func TestHandleResaleOpen_APIDownStillOpens(t *testing.T) {
	env := newDialogEnv(t)
	env.api.Server.Close()

	id := env.openResale(t)
	if id == "" {
		t.Fatal("expected a dialog id")
	}
	d, err := env.reg.Get(id, "")
	if err != nil {
		t.Fatalf("dialog not registered: %v", err)
	}
	if len(d.RefData.Companies) != 0 || len(d.RefData.Grades) != 0 || len(d.RefData.Seasons) != 0 {
		t.Errorf("expected empty reference data, got %+v", d.RefData)
	}
}

func TestResaleSubmit_Publishes(t *testing.T) {
	env := newDialogEnv(t)
	id := env.openResale(t)
	env.fillResale(t, id, nil)

	itemReq := formRequest(http.MethodPost, "/dialogs/"+id+"/item", url.Values{
		"itemcode": {"14"}, "Item_Name": {"Sugar M-30"}, "ic": {"88"},
	})
	itemReq.SetPathValue("dialogId", id)
	itemRec := httptest.NewRecorder()
	if err := HandleResaleItem(env.app, env.reg)(newTestRequestEvent(env.app, itemReq, itemRec)); err != nil {
		t.Fatalf("item handler returned error: %v", err)
	}
	if itemRec.Code != http.StatusNoContent {
		t.Fatalf("item: expected 204, got %d", itemRec.Code)
	}

	rec := env.submit(t, id)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	testhelpers.AssertHXTrigger(t, rec.Header().Get("HX-Trigger"), "showToast")

	batches := env.api.PublishedListings()
	if len(batches) != 1 || len(batches[0]) != 1 {
		t.Fatalf("expected one batch with one listing, got %+v", batches)
	}
	got := batches[0][0]
	if got.MillCode != 3001 || got.MillAccoID != 901 {
		t.Errorf("company fields = %d/%d, want 3001/901", got.MillCode, got.MillAccoID)
	}
	if got.UserID != "5" || got.PaymentAcCode != "AC9" || got.PtAccoID != "77" {
		t.Errorf("session fields not merged: %+v", got)
	}
	if got.TenderNo != 0 || got.ItemCode != 14 || got.ItemName != "Sugar M-30" || got.IC == nil || *got.IC != 88 {
		t.Errorf("item fields = %+v", got)
	}
	if env.reg.Len() != 0 {
		t.Error("expected dialog to be closed after publish")
	}
}

func TestResaleSubmit_ValidationBlocksRequest(t *testing.T) {
	env := newDialogEnv(t)
	id := env.openResale(t)
	env.fillResale(t, id, map[string]string{"Mill_Code": "", "Display_Qty": ""})

	rec := env.submit(t, id)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Company is required", "Sale Quantal is required")
	if len(env.api.PublishedListings()) != 0 {
		t.Error("expected no request to the API")
	}
	if env.reg.Len() != 1 {
		t.Error("expected dialog to stay open")
	}
}

func TestResaleSubmit_UnknownCompany(t *testing.T) {
	env := newDialogEnv(t)
	id := env.openResale(t)
	env.fillResale(t, id, map[string]string{"Mill_Code": "999"})

	rec := env.submit(t, id)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Selected company not found")
	if len(env.api.PublishedListings()) != 0 {
		t.Error("expected no request to the API")
	}
}

func TestResaleSubmit_APIFailureClosesSilently(t *testing.T) {
	env := newDialogEnv(t)
	id := env.openResale(t)
	env.fillResale(t, id, nil)
	env.api.SetFailure(http.StatusInternalServerError)

	rec := env.submit(t, id)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if rec.Header().Get("HX-Trigger") != "" {
		t.Errorf("expected no banner, got HX-Trigger %s", rec.Header().Get("HX-Trigger"))
	}
	if env.reg.Len() != 0 {
		t.Error("expected dialog to be closed")
	}
}

func TestResaleItem_Rejects(t *testing.T) {
	env := newDialogEnv(t)
	id := env.openResale(t)

	tests := []struct {
		name string
		form url.Values
	}{
		{"bad code", url.Values{"itemcode": {"abc"}}},
		{"bad ic", url.Values{"itemcode": {"1"}, "ic": {"x"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := formRequest(http.MethodPost, "/dialogs/"+id+"/item", tt.form)
			req.SetPathValue("dialogId", id)
			rec := httptest.NewRecorder()
			if err := HandleResaleItem(env.app, env.reg)(newTestRequestEvent(env.app, req, rec)); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusUnprocessableEntity {
				t.Errorf("expected status 422, got %d", rec.Code)
			}
		})
	}
}

func TestDialogField_Errors(t *testing.T) {
	env := newDialogEnv(t)
	id := env.openResale(t)

	if rec := env.postField(t, id, "Tender_No", "4"); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown field: expected 400, got %d", rec.Code)
	}
	if rec := env.postField(t, id, "Mill_Code", "abc"); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("non-numeric Mill_Code: expected 422, got %d", rec.Code)
	}
	if rec := env.postField(t, "missing", "Grade", "M-30"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown dialog: expected 404, got %d", rec.Code)
	}
}

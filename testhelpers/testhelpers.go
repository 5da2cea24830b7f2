// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tenderdesk/apiclient"
	"tenderdesk/collections"
	"tenderdesk/services"
)

// DefaultSession is the session most tests act under.
var DefaultSession = services.Session{UserID: "5", AcCode: "AC9", AccoID: "77"}

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestSession stores a session row under key.
func CreateTestSession(t *testing.T, app *pocketbase.PocketBase, key string, s services.Session) {
	t.Helper()

	if err := services.SaveSession(app, key, s); err != nil {
		t.Fatalf("failed to save test session: %v", err)
	}
}

// SampleTender returns a complete tender as the API would hand it out.
func SampleTender(id int) apiclient.MillTender {
	uid := 5
	return apiclient.MillTender{
		MillTenderID:      id,
		MillCode:          12,
		DeliveryFrom:      "ExMill",
		SugarType:         "S",
		Quantity:          500,
		Packing:           50,
		Season:            "2025-26",
		LiftingDate:       "2026-03-12",
		LastDateOfPayment: "2026-03-11",
		UserID:            &uid,
		MillUserName:      "Shree Mill",
		ItemName:          "Sugar M-30",
		StartDate:         "2026-03-09",
		StartTime:         "10:00",
		EndDate:           "2026-03-10",
		EndTime:           "18:00",
		MillUserID:        "MU-1",
		BaseRate:          "100",
		BaseRateGSTPerc:   "18",
		BaseRateGSTAmount: "18.00",
		RateIncludingGST:  "118.00",
		TenderType:        "T",
	}
}

// CreateTestMillTender mirrors t locally and returns the stored row.
func CreateTestMillTender(t *testing.T, app *pocketbase.PocketBase, tender apiclient.MillTender) *core.Record {
	t.Helper()

	if err := services.UpsertMirroredTender(app, tender); err != nil {
		t.Fatalf("failed to save test mill tender: %v", err)
	}
	rec, err := services.FindMirroredTender(app, tender.MillTenderID)
	if err != nil {
		t.Fatalf("failed to reload test mill tender: %v", err)
	}
	return rec
}

// FakeAPI is an in-memory stand-in for the tender API. Handlers may be
// swapped per test; requests received are recorded.
type FakeAPI struct {
	Server *httptest.Server

	mu        sync.Mutex
	Companies []apiclient.Company
	Master    []apiclient.SystemMasterEntry
	Published [][]apiclient.ResaleListing
	Updated   []apiclient.MillTender

	// FailWith, when non-zero, makes write endpoints answer with that status.
	FailWith int
	// Block, when set, holds write requests until it is closed.
	Block chan struct{}
}

// NewFakeAPI starts a fake API seeded with one company and a grade, season
// and unit entry. The server is closed when the test finishes.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()

	f := &FakeAPI{
		Companies: []apiclient.Company{
			{UserID: 12, CompanyName: "Shree Mill", AccoID: 901, AcCode: 3001},
		},
		Master: []apiclient.SystemMasterEntry{
			{ID: 1, SystemType: "S", SystemNameE: "M-30"},
			{ID: 2, SystemType: "Z", SystemNameE: "2025-26"},
			{ID: 3, SystemType: "U", SystemNameE: "Quintal"},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /companieslist", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, f.Companies)
	})
	mux.HandleFunc("GET /get_system_master", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, f.Master)
	})
	mux.HandleFunc("POST /publishlist-tender", func(w http.ResponseWriter, r *http.Request) {
		if !f.hold(w, r) {
			return
		}
		var listings []apiclient.ResaleListing
		if err := json.NewDecoder(r.Body).Decode(&listings); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.Published = append(f.Published, listings)
		f.mu.Unlock()
		writeJSON(w, map[string]string{"message": "ok"})
	})
	mux.HandleFunc("PUT /update_mill_tender", func(w http.ResponseWriter, r *http.Request) {
		if !f.hold(w, r) {
			return
		}
		var tender apiclient.MillTender
		if err := json.NewDecoder(r.Body).Decode(&tender); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.Updated = append(f.Updated, tender)
		f.mu.Unlock()
		writeJSON(w, map[string]any{"MillTender": tender})
	})

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)
	return f
}

// URL is the base URL to hand to apiclient.New.
func (f *FakeAPI) URL() string {
	return f.Server.URL
}

// PublishedListings returns every listing batch received so far.
func (f *FakeAPI) PublishedListings() [][]apiclient.ResaleListing {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]apiclient.ResaleListing(nil), f.Published...)
}

// UpdatedTenders returns every tender update received so far.
func (f *FakeAPI) UpdatedTenders() []apiclient.MillTender {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]apiclient.MillTender(nil), f.Updated...)
}

// SetFailure makes subsequent write requests answer with status.
func (f *FakeAPI) SetFailure(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FailWith = status
}

func (f *FakeAPI) hold(w http.ResponseWriter, r *http.Request) bool {
	f.mu.Lock()
	block := f.Block
	status := f.FailWith
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-r.Context().Done():
			return false
		}
	}
	if status != 0 {
		http.Error(w, "upstream rejected the request", status)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHTMLNotContains checks that body contains none of the fragments.
func AssertHTMLNotContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if strings.Contains(body, frag) {
			t.Errorf("expected HTML not to contain %q\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHXTrigger checks that the HX-Trigger header carries event.
func AssertHXTrigger(t *testing.T, headerVal, event string) {
	t.Helper()

	var parsed map[string]json.RawMessage
	if err := json.Unmarshal([]byte(headerVal), &parsed); err != nil {
		t.Errorf("HX-Trigger %q is not valid JSON: %v", headerVal, err)
		return
	}
	if _, ok := parsed[event]; !ok {
		t.Errorf("expected HX-Trigger to carry %q, got %s", event, headerVal)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

package services

import (
	"testing"

	"github.com/pocketbase/pocketbase"

	"tenderdesk/collections"
)

// newStoreTestApp bootstraps a throwaway PocketBase app with the tender
// collections in place.
func newStoreTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	app := pocketbase.NewWithConfig(pocketbase.Config{DefaultDataDir: t.TempDir()})
	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}
	collections.Setup(app)
	return app
}

func TestUpsertMirroredTender_InsertThenReplace(t *testing.T) {
	app := newStoreTestApp(t)

	tender := NewTenderForm(sampleTender()).Record()
	uid := 5
	tender.UserID = &uid
	if err := UpsertMirroredTender(app, tender); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	tender.BaseRate = "200"
	tender.MillUserName = "Renamed Mill"
	if err := UpsertMirroredTender(app, tender); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	records, err := app.FindAllRecords(millTendersCollection)
	if err != nil {
		t.Fatalf("FindAllRecords: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 row after replace, got %d", len(records))
	}

	got := RecordToTender(records[0])
	if got.BaseRate != "200" || got.MillUserName != "Renamed Mill" {
		t.Errorf("row not replaced: %+v", got)
	}
	if got.UserID == nil || *got.UserID != 5 {
		t.Errorf("UserId = %v, want 5", got.UserID)
	}
	if got.Quantity != 500 || got.DeliveryFrom != "ExMill" || got.TenderType != "T" {
		t.Errorf("fields lost in round trip: %+v", got)
	}
}

func TestUpsertMirroredTender_RejectsMissingID(t *testing.T) {
	app := newStoreTestApp(t)

	if err := UpsertMirroredTender(app, TenderRecord{}); err == nil {
		t.Error("expected an error for a tender without id")
	}
}

func TestRecordToTender_NullUserID(t *testing.T) {
	app := newStoreTestApp(t)

	if err := UpsertMirroredTender(app, sampleTender()); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	rec, err := FindMirroredTender(app, 42)
	if err != nil {
		t.Fatalf("FindMirroredTender: %v", err)
	}
	if got := RecordToTender(rec); got.UserID != nil {
		t.Errorf("UserId = %v, want nil", *got.UserID)
	}
}

func TestFindMirroredTender_Missing(t *testing.T) {
	app := newStoreTestApp(t)

	if _, err := FindMirroredTender(app, 99); err == nil {
		t.Error("expected an error for an unknown tender")
	}
}

func TestListMirroredTenders_Order(t *testing.T) {
	app := newStoreTestApp(t)

	for _, tc := range []struct {
		id    int
		start string
	}{
		{1, "2026-03-01"},
		{2, "2026-03-05"},
		{3, "2026-03-05"},
	} {
		tender := sampleTender()
		tender.MillTenderID = tc.id
		tender.StartDate = tc.start
		if err := UpsertMirroredTender(app, tender); err != nil {
			t.Fatalf("upsert %d: %v", tc.id, err)
		}
	}

	list, err := ListMirroredTenders(app)
	if err != nil {
		t.Fatalf("ListMirroredTenders: %v", err)
	}
	var ids []int
	for _, tender := range list {
		ids = append(ids, tender.MillTenderID)
	}
	want := []int{3, 2, 1}
	if len(ids) != len(want) {
		t.Fatalf("got ids %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("got ids %v, want %v", ids, want)
		}
	}
}

func TestSessions_SaveAndLoad(t *testing.T) {
	app := newStoreTestApp(t)

	want := Session{UserID: "5", AcCode: "AC9", AccoID: "77"}
	if err := SaveSession(app, "k1", want); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	got, err := LoadSession(app, "k1")
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	if err := SaveSession(app, "", want); err == nil {
		t.Error("expected an error for an empty key")
	}
	if _, err := LoadSession(app, "nope"); err == nil {
		t.Error("expected an error for an unknown key")
	}
}

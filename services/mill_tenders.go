package services

import (
	"fmt"
	"sort"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

const millTendersCollection = "mill_tenders"

// RecordToTender converts a mirrored mill_tenders row into a TenderRecord.
func RecordToTender(rec *core.Record) TenderRecord {
	t := TenderRecord{
		MillTenderID:      rec.GetInt("mill_tender_id"),
		MillCode:          rec.GetInt("mill_code"),
		DeliveryFrom:      rec.GetString("delivery_from"),
		SugarType:         rec.GetString("sugar_type"),
		Quantity:          rec.GetFloat("quantity"),
		Packing:           rec.GetFloat("packing"),
		Season:            rec.GetString("season"),
		LiftingDate:       rec.GetString("lifting_date"),
		LastDateOfPayment: rec.GetString("last_date_of_payment"),
		MillUserName:      rec.GetString("mill_user_name"),
		ItemName:          rec.GetString("item_name"),
		StartDate:         rec.GetString("start_date"),
		StartTime:         rec.GetString("start_time"),
		EndDate:           rec.GetString("end_date"),
		EndTime:           rec.GetString("end_time"),
		MillUserID:        rec.GetString("mill_user_id"),
		BaseRate:          rec.GetString("base_rate"),
		BaseRateGSTPerc:   rec.GetString("base_rate_gst_perc"),
		BaseRateGSTAmount: rec.GetString("base_rate_gst_amount"),
		RateIncludingGST:  rec.GetString("rate_including_gst"),
		TenderType:        rec.GetString("tender_type"),
	}
	if uid := rec.GetInt("user_id"); uid != 0 {
		t.UserID = &uid
	}
	return t
}

// applyTender copies every TenderRecord field onto a mill_tenders row.
func applyTender(rec *core.Record, t TenderRecord) {
	rec.Set("mill_tender_id", t.MillTenderID)
	rec.Set("mill_code", t.MillCode)
	rec.Set("delivery_from", t.DeliveryFrom)
	rec.Set("sugar_type", t.SugarType)
	rec.Set("quantity", t.Quantity)
	rec.Set("packing", t.Packing)
	rec.Set("season", t.Season)
	rec.Set("lifting_date", t.LiftingDate)
	rec.Set("last_date_of_payment", t.LastDateOfPayment)
	rec.Set("mill_user_name", t.MillUserName)
	rec.Set("item_name", t.ItemName)
	rec.Set("start_date", t.StartDate)
	rec.Set("start_time", t.StartTime)
	rec.Set("end_date", t.EndDate)
	rec.Set("end_time", t.EndTime)
	rec.Set("mill_user_id", t.MillUserID)
	rec.Set("base_rate", t.BaseRate)
	rec.Set("base_rate_gst_perc", t.BaseRateGSTPerc)
	rec.Set("base_rate_gst_amount", t.BaseRateGSTAmount)
	rec.Set("rate_including_gst", t.RateIncludingGST)
	rec.Set("tender_type", t.TenderType)
	if t.UserID != nil {
		rec.Set("user_id", *t.UserID)
	} else {
		rec.Set("user_id", 0)
	}
}

// FindMirroredTender returns the mirrored row for a remote tender id.
func FindMirroredTender(app *pocketbase.PocketBase, millTenderID int) (*core.Record, error) {
	records, err := app.FindRecordsByFilter(
		millTendersCollection,
		"mill_tender_id = {:id}",
		"", 1, 0,
		map[string]any{"id": millTenderID},
	)
	if err != nil {
		return nil, fmt.Errorf("query mill tender %d: %w", millTenderID, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("mill tender %d not mirrored", millTenderID)
	}
	return records[0], nil
}

// UpsertMirroredTender stores t, replacing the row with the same remote id.
func UpsertMirroredTender(app *pocketbase.PocketBase, t TenderRecord) error {
	if t.MillTenderID <= 0 {
		return fmt.Errorf("mill tender id must be positive, got %d", t.MillTenderID)
	}

	rec, err := FindMirroredTender(app, t.MillTenderID)
	if err != nil {
		col, colErr := app.FindCollectionByNameOrId(millTendersCollection)
		if colErr != nil {
			return fmt.Errorf("find %s collection: %w", millTendersCollection, colErr)
		}
		rec = core.NewRecord(col)
	}

	applyTender(rec, t)
	if err := app.Save(rec); err != nil {
		return fmt.Errorf("save mill tender %d: %w", t.MillTenderID, err)
	}
	return nil
}

// ListMirroredTenders returns every mirrored tender, newest start date first.
func ListMirroredTenders(app *pocketbase.PocketBase) ([]TenderRecord, error) {
	records, err := app.FindAllRecords(millTendersCollection)
	if err != nil {
		return nil, fmt.Errorf("list mill tenders: %w", err)
	}

	out := make([]TenderRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, RecordToTender(rec))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartDate != out[j].StartDate {
			return out[i].StartDate > out[j].StartDate
		}
		return out[i].MillTenderID > out[j].MillTenderID
	})
	return out, nil
}

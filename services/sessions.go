package services

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

const sessionsCollection = "sessions"

// SaveSession stores the identifiers for key, replacing any previous values.
func SaveSession(app *pocketbase.PocketBase, key string, s Session) error {
	if key == "" {
		return fmt.Errorf("session key is empty")
	}

	records, err := app.FindRecordsByFilter(
		sessionsCollection,
		"session_key = {:key}",
		"", 1, 0,
		map[string]any{"key": key},
	)
	if err != nil {
		return fmt.Errorf("query session: %w", err)
	}

	var rec *core.Record
	if len(records) > 0 {
		rec = records[0]
	} else {
		col, err := app.FindCollectionByNameOrId(sessionsCollection)
		if err != nil {
			return fmt.Errorf("find %s collection: %w", sessionsCollection, err)
		}
		rec = core.NewRecord(col)
		rec.Set("session_key", key)
	}

	rec.Set("user_id", s.UserID)
	rec.Set("ac_code", s.AcCode)
	rec.Set("accoid", s.AccoID)
	if err := app.Save(rec); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// LoadSession returns the identifiers stored for key.
func LoadSession(app *pocketbase.PocketBase, key string) (Session, error) {
	records, err := app.FindRecordsByFilter(
		sessionsCollection,
		"session_key = {:key}",
		"", 1, 0,
		map[string]any{"key": key},
	)
	if err != nil {
		return Session{}, fmt.Errorf("query session: %w", err)
	}
	if len(records) == 0 {
		return Session{}, fmt.Errorf("session %q not found", key)
	}

	rec := records[0]
	return Session{
		UserID: rec.GetString("user_id"),
		AcCode: rec.GetString("ac_code"),
		AccoID: rec.GetString("accoid"),
	}, nil
}

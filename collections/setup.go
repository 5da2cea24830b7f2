package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the sessions and mill_tenders
// collections exist.
func Setup(app *pocketbase.PocketBase) {
	ensureCollection(app, "sessions", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "session_key", Required: true})
		c.Fields.Add(&core.TextField{Name: "user_id", Required: false})
		c.Fields.Add(&core.TextField{Name: "ac_code", Required: false})
		c.Fields.Add(&core.TextField{Name: "accoid", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_sessions_session_key", true, "session_key", "")
	})

	// Local mirror of tenders confirmed by the remote API. The remote side
	// stays authoritative; rows are replaced on every confirmed update.
	ensureCollection(app, "mill_tenders", func(c *core.Collection) {
		c.Fields.Add(&core.NumberField{Name: "mill_tender_id", Required: true, OnlyInt: true})
		c.Fields.Add(&core.NumberField{Name: "mill_code", Required: false, OnlyInt: true})
		c.Fields.Add(&core.SelectField{
			Name:      "delivery_from",
			Required:  false,
			Values:    []string{"ExMill", "ExWarehouse"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "sugar_type", Required: false})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: false})
		c.Fields.Add(&core.NumberField{Name: "packing", Required: false})
		c.Fields.Add(&core.TextField{Name: "season", Required: false})
		c.Fields.Add(&core.TextField{Name: "lifting_date", Required: false})
		c.Fields.Add(&core.TextField{Name: "last_date_of_payment", Required: false})
		c.Fields.Add(&core.NumberField{Name: "user_id", Required: false, OnlyInt: true})
		c.Fields.Add(&core.TextField{Name: "mill_user_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "item_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "start_date", Required: false})
		c.Fields.Add(&core.TextField{Name: "start_time", Required: false})
		c.Fields.Add(&core.TextField{Name: "end_date", Required: false})
		c.Fields.Add(&core.TextField{Name: "end_time", Required: false})
		c.Fields.Add(&core.TextField{Name: "mill_user_id", Required: false})
		c.Fields.Add(&core.TextField{Name: "base_rate", Required: false})
		c.Fields.Add(&core.TextField{Name: "base_rate_gst_perc", Required: false})
		c.Fields.Add(&core.TextField{Name: "base_rate_gst_amount", Required: false})
		c.Fields.Add(&core.TextField{Name: "rate_including_gst", Required: false})
		c.Fields.Add(&core.TextField{Name: "tender_type", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_mill_tenders_mill_tender_id", true, "mill_tender_id", "")
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}

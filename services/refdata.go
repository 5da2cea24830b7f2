package services

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"tenderdesk/apiclient"
)

// System master discriminators.
const (
	SystemTypeGrade  = "S"
	SystemTypeSeason = "Z"
	SystemTypeUnit   = "U"
)

// ReferenceSource is the part of the API the loader reads from.
type ReferenceSource interface {
	Companies(ctx context.Context) ([]apiclient.Company, error)
	SystemMaster(ctx context.Context) ([]apiclient.SystemMasterEntry, error)
}

// CompanyOption is a mill offered in the company select. ID is the display
// account code; AccoID is the internal account id sent on submission.
type CompanyOption struct {
	ID     int
	Name   string
	AccoID int
}

// MasterOption is one system master entry offered in a select.
type MasterOption struct {
	ID   int
	Name string
}

// ReferenceData holds the select options of the publish dialog.
type ReferenceData struct {
	Companies []CompanyOption
	Grades    []MasterOption
	Seasons   []MasterOption
}

// FindCompany returns the company whose ID matches millCode.
func (r ReferenceData) FindCompany(millCode int) (CompanyOption, bool) {
	for _, c := range r.Companies {
		if c.ID == millCode {
			return c, true
		}
	}
	return CompanyOption{}, false
}

// LoadReferenceData issues both reads concurrently. A failed read is logged
// and leaves its lists empty; the dialog stays usable either way.
func LoadReferenceData(ctx context.Context, src ReferenceSource) ReferenceData {
	var data ReferenceData
	var g errgroup.Group

	g.Go(func() error {
		companies, err := src.Companies(ctx)
		if err != nil {
			log.Printf("refdata: could not fetch companies: %v", err)
			return nil
		}
		data.Companies = MapCompanies(companies)
		return nil
	})

	g.Go(func() error {
		entries, err := src.SystemMaster(ctx)
		if err != nil {
			log.Printf("refdata: could not fetch system master: %v", err)
			return nil
		}
		if len(entries) == 0 {
			log.Printf("refdata: no system master data found")
			return nil
		}
		byType := PartitionSystemMaster(entries)
		data.Grades = byType[SystemTypeGrade]
		data.Seasons = byType[SystemTypeSeason]
		return nil
	})

	_ = g.Wait()
	return data
}

// MapCompanies converts API company rows into select options, keeping order.
func MapCompanies(rows []apiclient.Company) []CompanyOption {
	out := make([]CompanyOption, 0, len(rows))
	for _, c := range rows {
		out = append(out, CompanyOption{
			ID:     c.AcCode,
			Name:   c.CompanyName,
			AccoID: c.AccoID,
		})
	}
	return out
}

// PartitionSystemMaster groups entries by System_Type, preserving order.
// Units ("U") are grouped too although no dialog offers them yet.
func PartitionSystemMaster(entries []apiclient.SystemMasterEntry) map[string][]MasterOption {
	out := make(map[string][]MasterOption)
	for _, e := range entries {
		out[e.SystemType] = append(out[e.SystemType], MasterOption{
			ID:   e.ID,
			Name: e.SystemNameE,
		})
	}
	return out
}

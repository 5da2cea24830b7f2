package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"tenderdesk/apiclient"
)

// ErrUnknownCompany is returned when the selected Mill_Code is not among the
// companies loaded for the dialog.
var ErrUnknownCompany = errors.New("selected company not found")

// Session carries the acting user's identifiers. Values are passed through
// to the API verbatim.
type Session struct {
	UserID string
	AcCode string
	AccoID string
}

// Submitter is the part of the API the gateway writes to.
type Submitter interface {
	PublishResale(ctx context.Context, listings []apiclient.ResaleListing) error
	UpdateMillTender(ctx context.Context, tender apiclient.MillTender) (apiclient.MillTender, error)
}

// Gateway validates dialog records, merges the session context into them and
// sends them to the API.
type Gateway struct {
	api     Submitter
	session Session
}

// NewGateway binds a gateway to one session.
func NewGateway(api Submitter, session Session) *Gateway {
	return &Gateway{api: api, session: session}
}

// BuildResaleListing merges a validated resale record with the session and
// the selected company into the API payload.
func BuildResaleListing(rec ResaleRecord, company CompanyOption, session Session) apiclient.ResaleListing {
	return apiclient.ResaleListing{
		Date:          rec.Date,
		MillCode:      rec.MillCode,
		Grade:         rec.Grade,
		Season:        rec.Season,
		LiftingDate:   rec.LiftingDate,
		PaymentDate:   rec.PaymentDate,
		DisplayRate:   rec.DisplayRate,
		DisplayQty:    rec.DisplayQty,
		StartDate:     rec.StartDate,
		StartTime:     rec.StartTime,
		EndDate:       rec.EndDate,
		EndTime:       rec.EndTime,
		ItemCode:      rec.ItemCode,
		TenderNo:      0,
		ItemName:      rec.ItemName,
		UserID:        session.UserID,
		PaymentAcCode: session.AcCode,
		PtAccoID:      session.AccoID,
		MillAccoID:    company.AccoID,
		IC:            rec.IC,
	}
}

// PublishResale validates the form and creates one resale listing. Nothing
// is sent when validation fails or the company is unknown.
func (g *Gateway) PublishResale(ctx context.Context, form *ResaleForm, ref ReferenceData) error {
	if errs := form.Validate(); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	rec := form.Record()
	company, ok := ref.FindCompany(rec.MillCode)
	if !ok {
		log.Printf("gateway: publish: mill code %d not among %d loaded companies", rec.MillCode, len(ref.Companies))
		return fmt.Errorf("mill code %d: %w", rec.MillCode, ErrUnknownCompany)
	}

	listing := BuildResaleListing(rec, company, g.session)
	if err := g.api.PublishResale(ctx, []apiclient.ResaleListing{listing}); err != nil {
		log.Printf("gateway: publish: could not publish resale listing: %v", err)
		return fmt.Errorf("publish resale: %w", err)
	}
	return nil
}

// UpdateTender validates the form and sends the full tender. On success the
// server-confirmed record is handed to onUpdated and returned.
func (g *Gateway) UpdateTender(ctx context.Context, form *TenderForm, onUpdated func(TenderRecord)) (TenderRecord, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return TenderRecord{}, &ValidationError{Fields: errs}
	}

	form.recalculate()
	rec := form.Record()

	confirmed, err := g.api.UpdateMillTender(ctx, rec)
	if err != nil {
		log.Printf("gateway: update: could not update tender %d: %v", rec.MillTenderID, err)
		return TenderRecord{}, fmt.Errorf("update tender %d: %w", rec.MillTenderID, err)
	}

	if onUpdated != nil {
		onUpdated(confirmed)
	}
	return confirmed, nil
}

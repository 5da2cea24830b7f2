package services

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ResaleRecord is the resale listing being composed in the publish dialog.
// ItemCode, ItemName and IC come from the product picker and are optional.
type ResaleRecord struct {
	Date        string `json:"Date"`
	MillCode    int    `json:"Mill_Code"`
	Grade       string `json:"Grade"`
	Season      string `json:"Season"`
	LiftingDate string `json:"Lifting_date"`
	PaymentDate string `json:"Payment_Date"`
	DisplayRate string `json:"Display_Rate"`
	DisplayQty  string `json:"Display_Qty"`
	StartDate   string `json:"Start_Date"`
	StartTime   string `json:"Start_Time"`
	EndDate     string `json:"End_Date"`
	EndTime     string `json:"End_Time"`

	ItemCode int    `json:"itemcode"`
	ItemName string `json:"Item_Name"`
	IC       *int   `json:"ic"`
}

// Validate applies the publish dialog schema.
func (r ResaleRecord) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Date, validation.Required.Error("Date is required")),
		validation.Field(&r.MillCode,
			validation.Required.Error("Company is required"),
			validation.Min(1).Error("Company is required"),
		),
		validation.Field(&r.Grade, validation.Required.Error("Grade is required")),
		validation.Field(&r.Season, validation.Required.Error("Season is required")),
		validation.Field(&r.LiftingDate, validation.Required.Error("Lifting Date is required")),
		validation.Field(&r.PaymentDate, validation.Required.Error("Payment Date is required")),
		validation.Field(&r.DisplayRate, validation.Required.Error("Sale Rate is required")),
		validation.Field(&r.DisplayQty, validation.Required.Error("Sale Quantal is required")),
		validation.Field(&r.StartDate, validation.Required.Error("Start Date is required")),
		validation.Field(&r.StartTime, validation.Required.Error("Start Time is required")),
		validation.Field(&r.EndDate, validation.Required.Error("End Date is required")),
		validation.Field(&r.EndTime, validation.Required.Error("End Time is required")),
	)
}

var resaleSetters = map[string]fieldSetter[ResaleRecord]{
	"Date":         setString(func(r *ResaleRecord) *string { return &r.Date }),
	"Mill_Code":    setInt("Mill_Code", func(r *ResaleRecord) *int { return &r.MillCode }),
	"Grade":        setString(func(r *ResaleRecord) *string { return &r.Grade }),
	"Season":       setString(func(r *ResaleRecord) *string { return &r.Season }),
	"Lifting_date": setString(func(r *ResaleRecord) *string { return &r.LiftingDate }),
	"Payment_Date": setString(func(r *ResaleRecord) *string { return &r.PaymentDate }),
	"Display_Rate": setString(func(r *ResaleRecord) *string { return &r.DisplayRate }),
	"Display_Qty":  setString(func(r *ResaleRecord) *string { return &r.DisplayQty }),
	"Start_Date":   setString(func(r *ResaleRecord) *string { return &r.StartDate }),
	"Start_Time":   setString(func(r *ResaleRecord) *string { return &r.StartTime }),
	"End_Date":     setString(func(r *ResaleRecord) *string { return &r.EndDate }),
	"End_Time":     setString(func(r *ResaleRecord) *string { return &r.EndTime }),
}

// ResaleForm owns the record edited in one publish dialog. It is not safe
// for concurrent use; the owning dialog serializes access.
type ResaleForm struct {
	record ResaleRecord
}

// NewResaleForm returns a form whose date fields default to the local date
// of now. Mill_Code starts at 0, which validation rejects.
func NewResaleForm(now time.Time) *ResaleForm {
	today := now.Format(DateLayout)
	return &ResaleForm{
		record: ResaleRecord{
			Date:        today,
			LiftingDate: today,
			PaymentDate: today,
			StartDate:   today,
			EndDate:     today,
		},
	}
}

// Record returns a copy of the current record.
func (f *ResaleForm) Record() ResaleRecord {
	return f.record
}

// SetField replaces one field and leaves the rest untouched.
func (f *ResaleForm) SetField(name, value string) error {
	set, ok := resaleSetters[name]
	if !ok {
		return fmt.Errorf("resale %q: %w", name, ErrUnknownField)
	}
	return set(&f.record, value)
}

// SelectItem stores the product picked in the side selector.
func (f *ResaleForm) SelectItem(code int, name string, ic *int) {
	f.record.ItemCode = code
	f.record.ItemName = name
	f.record.IC = ic
}

// Validate returns field -> message for every violated rule, or an empty map.
func (f *ResaleForm) Validate() map[string]string {
	return errorMap(f.record.Validate())
}

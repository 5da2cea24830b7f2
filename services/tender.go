package services

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"tenderdesk/apiclient"
)

// TenderRecord is the mill tender edited in the update dialog.
type TenderRecord = apiclient.MillTender

const (
	fieldBaseRate    = "Base_Rate"
	fieldBaseRateGST = "Base_Rate_GST_Perc"
)

var tenderSetters = map[string]fieldSetter[TenderRecord]{
	"Mill_Code":           setInt("Mill_Code", func(r *TenderRecord) *int { return &r.MillCode }),
	"mill_user_name":      setString(func(r *TenderRecord) *string { return &r.MillUserName }),
	"item_name":           setString(func(r *TenderRecord) *string { return &r.ItemName }),
	"Delivery_From":       setString(func(r *TenderRecord) *string { return &r.DeliveryFrom }),
	"Sugar_Type":          setString(func(r *TenderRecord) *string { return &r.SugarType }),
	"Quantity":            setFloat("Quantity", func(r *TenderRecord) *float64 { return &r.Quantity }),
	"Packing":             setFloat("Packing", func(r *TenderRecord) *float64 { return &r.Packing }),
	"Season":              setString(func(r *TenderRecord) *string { return &r.Season }),
	"Lifting_Date":        setString(func(r *TenderRecord) *string { return &r.LiftingDate }),
	"Last_Dateof_Payment": setString(func(r *TenderRecord) *string { return &r.LastDateOfPayment }),
	"MillUserId":          setString(func(r *TenderRecord) *string { return &r.MillUserID }),
	fieldBaseRate:         setString(func(r *TenderRecord) *string { return &r.BaseRate }),
	fieldBaseRateGST:      setString(func(r *TenderRecord) *string { return &r.BaseRateGSTPerc }),
	"Start_Date":          setString(func(r *TenderRecord) *string { return &r.StartDate }),
	"Start_Time":          setString(func(r *TenderRecord) *string { return &r.StartTime }),
	"End_Date":            setString(func(r *TenderRecord) *string { return &r.EndDate }),
	"End_Time":            setString(func(r *TenderRecord) *string { return &r.EndTime }),
}

// Fields that belong to the schema but are owned by the server or the GST
// calculator.
var tenderReadOnly = map[string]bool{
	"MillTenderId":         true,
	"UserId":               true,
	"Base_Rate_GST_Amount": true,
	"Rate_Including_GST":   true,
	"Tender_Type":          true,
}

// TenderForm owns the record edited in one update dialog. It is not safe for
// concurrent use; the owning dialog serializes access.
type TenderForm struct {
	record TenderRecord
}

// NewTenderForm seeds the form from an existing tender and derives its GST
// fields straight away.
func NewTenderForm(t TenderRecord) *TenderForm {
	f := &TenderForm{record: t}
	f.recalculate()
	return f
}

// Record returns a copy of the current record.
func (f *TenderForm) Record() TenderRecord {
	return f.record
}

// SetField replaces one field. It reports whether the derived GST fields were
// recomputed, which happens only when the base rate or GST percentage changed.
func (f *TenderForm) SetField(name, value string) (bool, error) {
	if tenderReadOnly[name] {
		return false, fmt.Errorf("tender %q: %w", name, ErrReadOnlyField)
	}
	set, ok := tenderSetters[name]
	if !ok {
		return false, fmt.Errorf("tender %q: %w", name, ErrUnknownField)
	}

	before := f.record.BaseRate + "\x00" + f.record.BaseRateGSTPerc
	if err := set(&f.record, value); err != nil {
		return false, err
	}
	if !AffectsGST(name) {
		return false, nil
	}
	if f.record.BaseRate+"\x00"+f.record.BaseRateGSTPerc == before {
		return false, nil
	}

	f.recalculate()
	return true, nil
}

// AffectsGST reports whether editing name can change the derived GST fields.
func AffectsGST(name string) bool {
	return name == fieldBaseRate || name == fieldBaseRateGST
}

func (f *TenderForm) recalculate() {
	gst := CalcTenderGST(f.record.BaseRate, f.record.BaseRateGSTPerc)
	f.record.BaseRateGSTAmount = gst.GSTAmount
	f.record.RateIncludingGST = gst.RateIncludingGST
	f.record.TenderType = TenderTypeCode
}

// Validate returns field -> message for every violated rule, or an empty map.
func (f *TenderForm) Validate() map[string]string {
	r := f.record
	err := validation.ValidateStruct(&r,
		validation.Field(&r.MillTenderID,
			validation.Required.Error("Tender is required"),
			validation.Min(1).Error("Tender is required"),
		),
		validation.Field(&r.DeliveryFrom, validation.In(deliveryFromValues()...).Error("Select a delivery option")),
		validation.Field(&r.Quantity, validation.Min(0.0).Error("Quantity cannot be negative")),
		validation.Field(&r.Packing, validation.Min(0.0).Error("Packing cannot be negative")),
		validation.Field(&r.StartDate,
			validation.Required.Error("Start Date is required"),
			validation.Date(DateLayout).Error("Start Date must be YYYY-MM-DD"),
		),
		validation.Field(&r.EndDate,
			validation.Required.Error("End Date is required"),
			validation.Date(DateLayout).Error("End Date must be YYYY-MM-DD"),
		),
	)
	return errorMap(err)
}

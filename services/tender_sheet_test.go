package services

import (
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestGenerateTenderExcel(t *testing.T) {
	tender := NewTenderForm(sampleTender()).Record()
	tender.MillUserName = "=HYPERLINK(\"x\")"

	data, err := GenerateTenderExcel([]TenderRecord{tender})
	if err != nil {
		t.Fatalf("GenerateTenderExcel: %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(data))
	if err != nil {
		t.Fatalf("open generated workbook: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet != "Mill Tenders" {
		t.Errorf("sheet name = %q, want Mill Tenders", sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(rows))
	}
	if rows[0][0] != "Tender ID" || rows[0][len(TenderSheetColumns)-1] != "Tender Type" {
		t.Errorf("unexpected header row: %v", rows[0])
	}

	byHeader := make(map[string]string)
	for i, h := range rows[0] {
		if i < len(rows[1]) {
			byHeader[h] = rows[1][i]
		}
	}
	checks := map[string]string{
		"Tender ID":          "42",
		"Mill Name":          "'=HYPERLINK(\"x\")",
		"GST Amount":         "18.00",
		"Rate Including GST": "118.00",
		"Tender Type":        "T",
	}
	for header, want := range checks {
		if got := byHeader[header]; got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
}

func TestParseTenderSheet_ExcelRoundTrip(t *testing.T) {
	data, err := GenerateTenderExcel([]TenderRecord{NewTenderForm(sampleTender()).Record()})
	if err != nil {
		t.Fatalf("GenerateTenderExcel: %v", err)
	}

	result, err := ParseTenderSheet(bytesReader(data), "tenders.xlsx")
	if err != nil {
		t.Fatalf("ParseTenderSheet: %v", err)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected row errors: %+v", result.Errors)
	}
	if len(result.Tenders) != 1 {
		t.Fatalf("got %d tenders, want 1", len(result.Tenders))
	}

	got := result.Tenders[0]
	if got.MillTenderID != 42 || got.MillCode != 12 || got.Quantity != 500 {
		t.Errorf("identity fields not restored: %+v", got)
	}
	if got.BaseRateGSTAmount != "18.00" || got.RateIncludingGST != "118.00" {
		t.Errorf("derived fields = %q / %q, want 18.00 / 118.00", got.BaseRateGSTAmount, got.RateIncludingGST)
	}
}

func TestParseTenderSheet_CSV(t *testing.T) {
	csvData := strings.Join([]string{
		"MillTenderId,Delivery From,Base Rate,GST %,GST Amount,Start Date,End Date,Quantity",
		"7,ExMill,3650,5,999,2026-04-01,2026-04-02,100",
		"abc,ExMill,100,5,,2026-04-01,2026-04-02,1",
		"8,Truck,100,5,,2026-04-01,,x",
	}, "\n")

	result, err := ParseTenderSheet(strings.NewReader(csvData), "tenders.CSV")
	if err != nil {
		t.Fatalf("ParseTenderSheet: %v", err)
	}
	if result.TotalRows != 3 {
		t.Errorf("TotalRows = %d, want 3", result.TotalRows)
	}
	if len(result.Tenders) != 1 {
		t.Fatalf("got %d valid tenders, want 1", len(result.Tenders))
	}

	got := result.Tenders[0]
	if got.MillTenderID != 7 || got.BaseRate != "3650" {
		t.Errorf("unexpected tender: %+v", got)
	}
	// The sheet's GST Amount column is ignored in favour of the calculator.
	if got.BaseRateGSTAmount != "182.50" || got.RateIncludingGST != "3832.50" {
		t.Errorf("derived fields = %q / %q, want 182.50 / 3832.50", got.BaseRateGSTAmount, got.RateIncludingGST)
	}

	fieldsByRow := make(map[int][]string)
	for _, e := range result.Errors {
		fieldsByRow[e.Row] = append(fieldsByRow[e.Row], e.Field)
	}
	if len(fieldsByRow[3]) != 1 || fieldsByRow[3][0] != "MillTenderId" {
		t.Errorf("row 3 errors = %v, want only MillTenderId", fieldsByRow[3])
	}
	wantRow4 := map[string]bool{"Delivery_From": true, "End_Date": true, "Quantity": true}
	for _, field := range fieldsByRow[4] {
		delete(wantRow4, field)
	}
	if len(wantRow4) != 0 {
		t.Errorf("row 4 missing errors for %v (got %v)", wantRow4, fieldsByRow[4])
	}
}

func TestParseTenderSheet_NonFiniteNumbers(t *testing.T) {
	csvData := strings.Join([]string{
		"Tender ID,Delivery From,Base Rate,GST %,Start Date,End Date,Quantity,Packing",
		"7,ExMill,100,5,2026-04-01,2026-04-02,Inf,50",
		"8,ExMill,100,5,2026-04-01,2026-04-02,10,NaN",
	}, "\n")

	result, err := ParseTenderSheet(strings.NewReader(csvData), "tenders.csv")
	if err != nil {
		t.Fatalf("ParseTenderSheet: %v", err)
	}
	if len(result.Tenders) != 0 {
		t.Errorf("expected no valid tenders, got %+v", result.Tenders)
	}

	want := map[int]string{2: "Quantity", 3: "Packing"}
	for _, e := range result.Errors {
		if want[e.Row] == e.Field && strings.Contains(e.Message, "must be a number") {
			delete(want, e.Row)
		}
	}
	if len(want) != 0 {
		t.Errorf("missing number errors %v (got %+v)", want, result.Errors)
	}
}

func TestParseTenderSheet_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		body     string
		wantErr  string
	}{
		{"unsupported extension", "tenders.txt", "a,b\n1,2", "unsupported file format"},
		{"header only", "tenders.csv", "MillTenderId,Base_Rate", "at least one data row"},
		{"no id column", "tenders.csv", "Base_Rate\n100", "Tender ID"},
		{"bad excel", "tenders.xlsx", "not a zip", "failed to open Excel file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTenderSheet(strings.NewReader(tt.body), tt.fileName)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestSheetColName(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "A"},
		{25, "Z"},
		{26, "AA"},
		{51, "AZ"},
		{52, "BA"},
	}
	for _, tt := range tests {
		if got := sheetColName(tt.index); got != tt.want {
			t.Errorf("sheetColName(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// TenderSheetColumn defines a column of the tender spreadsheet. Field is the
// API field name, which import also accepts as a header.
type TenderSheetColumn struct {
	Header string
	Field  string
	Width  float64
}

// TenderSheetColumns is the column layout shared by export and import.
var TenderSheetColumns = []TenderSheetColumn{
	{Header: "Tender ID", Field: "MillTenderId", Width: 12},
	{Header: "Mill Code", Field: "Mill_Code", Width: 12},
	{Header: "Mill Name", Field: "mill_user_name", Width: 28},
	{Header: "Product", Field: "item_name", Width: 24},
	{Header: "Delivery From", Field: "Delivery_From", Width: 16},
	{Header: "Sugar Type", Field: "Sugar_Type", Width: 12},
	{Header: "Quantity", Field: "Quantity", Width: 12},
	{Header: "Packing", Field: "Packing", Width: 10},
	{Header: "Season", Field: "Season", Width: 12},
	{Header: "Lifting Date", Field: "Lifting_Date", Width: 14},
	{Header: "Payment Date", Field: "Last_Dateof_Payment", Width: 14},
	{Header: "Base Rate", Field: "Base_Rate", Width: 12},
	{Header: "GST %", Field: "Base_Rate_GST_Perc", Width: 8},
	{Header: "GST Amount", Field: "Base_Rate_GST_Amount", Width: 12},
	{Header: "Rate Including GST", Field: "Rate_Including_GST", Width: 18},
	{Header: "Start Date", Field: "Start_Date", Width: 14},
	{Header: "Start Time", Field: "Start_Time", Width: 10},
	{Header: "End Date", Field: "End_Date", Width: 14},
	{Header: "End Time", Field: "End_Time", Width: 10},
	{Header: "Mill User Id", Field: "MillUserId", Width: 14},
	{Header: "Tender Type", Field: "Tender_Type", Width: 10},
}

func tenderCellValue(t TenderRecord, field string) any {
	switch field {
	case "MillTenderId":
		return t.MillTenderID
	case "Mill_Code":
		return t.MillCode
	case "mill_user_name":
		return sanitizeExcelCell(t.MillUserName)
	case "item_name":
		return sanitizeExcelCell(t.ItemName)
	case "Delivery_From":
		return t.DeliveryFrom
	case "Sugar_Type":
		return sanitizeExcelCell(t.SugarType)
	case "Quantity":
		return t.Quantity
	case "Packing":
		return t.Packing
	case "Season":
		return sanitizeExcelCell(t.Season)
	case "Lifting_Date":
		return t.LiftingDate
	case "Last_Dateof_Payment":
		return t.LastDateOfPayment
	case "Base_Rate":
		return t.BaseRate
	case "Base_Rate_GST_Perc":
		return t.BaseRateGSTPerc
	case "Base_Rate_GST_Amount":
		return t.BaseRateGSTAmount
	case "Rate_Including_GST":
		return t.RateIncludingGST
	case "Start_Date":
		return t.StartDate
	case "Start_Time":
		return t.StartTime
	case "End_Date":
		return t.EndDate
	case "End_Time":
		return t.EndTime
	case "MillUserId":
		return sanitizeExcelCell(t.MillUserID)
	case "Tender_Type":
		return t.TenderType
	}
	return ""
}

// GenerateTenderExcel writes the tender list to a single-sheet workbook.
func GenerateTenderExcel(tenders []TenderRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Mill Tenders"
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	dataStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create data style: %w", err)
	}

	lastCol := sheetColName(len(TenderSheetColumns) - 1)
	for i, col := range TenderSheetColumns {
		letter := sheetColName(i)
		f.SetColWidth(sheetName, letter, letter, col.Width)
		f.SetCellValue(sheetName, letter+"1", col.Header)
	}
	f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle)

	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	for rowIdx, t := range tenders {
		rowStr := strconv.Itoa(rowIdx + 2)
		for colIdx, col := range TenderSheetColumns {
			f.SetCellValue(sheetName, sheetColName(colIdx)+rowStr, tenderCellValue(t, col.Field))
		}
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, dataStyle)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// ImportRowError is a problem found on one spreadsheet row.
type ImportRowError struct {
	Row     int
	Field   string
	Message string
}

// TenderImportResult summarises a parsed tender sheet. Tenders holds only the
// rows that passed validation, with their GST fields recomputed.
type TenderImportResult struct {
	TotalRows int
	Tenders   []TenderRecord
	Errors    []ImportRowError
}

// ParseTenderSheet reads a .csv or .xlsx tender sheet. Headers may be the
// export labels or the API field names. Derived GST columns are ignored and
// recomputed.
func ParseTenderSheet(file io.Reader, fileName string) (*TenderImportResult, error) {
	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		headers, dataRows, err = parseExcel(file)
	default:
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	fields := mapTenderHeaders(headers)
	idCol := -1
	for i, f := range fields {
		if f == "MillTenderId" {
			idCol = i
		}
	}
	if idCol < 0 {
		return nil, fmt.Errorf("missing %q column", "Tender ID")
	}

	result := &TenderImportResult{TotalRows: len(dataRows)}
	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2
		cell := func(i int) string {
			if i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}

		id, err := strconv.Atoi(cell(idCol))
		if err != nil || id <= 0 {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Field: "MillTenderId", Message: "Tender ID must be a positive whole number"})
			continue
		}

		form := NewTenderForm(TenderRecord{MillTenderID: id})
		var rowErrors []ImportRowError
		for i, field := range fields {
			if field == "" || field == "MillTenderId" || tenderReadOnly[field] {
				continue
			}
			if _, err := form.SetField(field, cell(i)); err != nil {
				var fe *FieldError
				msg := err.Error()
				if errors.As(err, &fe) {
					msg = fe.Message
				}
				rowErrors = append(rowErrors, ImportRowError{Row: rowNum, Field: field, Message: msg})
			}
		}
		for field, msg := range form.Validate() {
			rowErrors = append(rowErrors, ImportRowError{Row: rowNum, Field: field, Message: msg})
		}

		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			continue
		}
		result.Tenders = append(result.Tenders, form.Record())
	}
	return result, nil
}

// mapTenderHeaders maps each header to its API field name, or "" when the
// column is not recognised.
func mapTenderHeaders(headers []string) []string {
	lookup := make(map[string]string, len(TenderSheetColumns)*2)
	for _, c := range TenderSheetColumns {
		lookup[strings.ToLower(c.Header)] = c.Field
		lookup[strings.ToLower(c.Field)] = c.Field
	}

	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = lookup[strings.ToLower(strings.TrimSpace(h))]
	}
	return out
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the first sheet.
func parseExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	return rows[0], rows[1:], nil
}

// sanitizeExcelCell neutralises values a spreadsheet would read as a formula.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1,
		}
	}
	return borders
}

// sheetColName converts a 0-based column index to an Excel column letter (A, B, ..., Z, AA, ...).
func sheetColName(index int) string {
	name := ""
	for index >= 0 {
		name = string(rune('A'+index%26)) + name
		index = index/26 - 1
	}
	return name
}

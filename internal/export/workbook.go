// Package export produces the per-user transaction template workbook and
// stores it in a Sink.
package export

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the template rows.
const SheetName = "Transactions"

// Header is the first row of the template, in column order.
var Header = []string{"amount", "date", "description", "category", "subcategory", "account"}

// SampleRow is one example transaction in the template.
type SampleRow struct {
	Amount      float64
	Date        civil.Date
	Description string
	Category    string
	Subcategory string
	Account     string
}

// SampleRows returns the example rows written below the header.
func SampleRows() []SampleRow {
	return []SampleRow{
		{5000, civil.Date{Year: 2025, Month: 4, Day: 1}, "Salary", "Income", "Salary", "Bank"},
		{200, civil.Date{Year: 2025, Month: 4, Day: 2}, "Snacks", "Expense", "Food", "Cash"},
		{1500, civil.Date{Year: 2025, Month: 4, Day: 3}, "Mutual Fund", "Asset", "Investments", "Bank"},
		{10000, civil.Date{Year: 2025, Month: 4, Day: 4}, "EMI", "Liability", "Loan", "Credit Card"},
	}
}

// BuildTemplate renders the template workbook as xlsx bytes.
func BuildTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("BuildTemplate: renaming sheet: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("BuildTemplate: writing header: %w", err)
	}

	for i, r := range SampleRows() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("BuildTemplate: cell name: %w", err)
		}
		row := []interface{}{r.Amount, r.Date.String(), r.Description, r.Category, r.Subcategory, r.Account}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("BuildTemplate: writing row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("BuildTemplate: encoding: %w", err)
	}
	return buf.Bytes(), nil
}

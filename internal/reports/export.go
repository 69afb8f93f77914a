package reports

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportFinancialXLSX renders a financial report as a workbook with a summary
// sheet plus the raw movement and sale lines.
func ExportFinancialXLSX(report FinancialReport) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Summary"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}

	summaryRows := [][]interface{}{
		{"Period", fmt.Sprintf("%s to %s", report.From, report.To)},
		{"Total sales", report.Summary.TotalSales.StringFixed(2)},
		{"Total in", report.Summary.TotalIn.StringFixed(2)},
		{"Total out", report.Summary.TotalOut.StringFixed(2)},
		{"Net", report.Summary.Net.StringFixed(2)},
		{"Average ticket", report.Summary.AverageTicket.StringFixed(2)},
		{"Order count", report.Summary.OrderCount},
	}
	for i, row := range summaryRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, err
		}
	}

	movSheet := "Movements"
	if _, err := f.NewSheet(movSheet); err != nil {
		return nil, err
	}
	header := []interface{}{"Date", "Direction", "Category", "Description", "Amount"}
	if err := f.SetSheetRow(movSheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, m := range report.Movements {
		row := []interface{}{m.Date, m.Direction, m.Category, m.Description, m.Amount.StringFixed(2)}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(movSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	salesSheet := "Orders"
	if _, err := f.NewSheet(salesSheet); err != nil {
		return nil, err
	}
	header = []interface{}{"Date", "Order", "Total", "Items", "Customer", "Status"}
	if err := f.SetSheetRow(salesSheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, s := range report.Sales {
		row := []interface{}{s.Date, s.OrderNumber, s.Total.StringFixed(2), s.ItemCount, s.Customer, s.Status}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(salesSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

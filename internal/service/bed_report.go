package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	bedSheetName     = "Beds"
	summarySheetName = "Summary"
	reportTimeLayout = "2006-01-02 15:04"
)

// BedReportHeader is the header row of the bed sheet
var BedReportHeader = []string{
	"Ward",
	"Room",
	"Bed",
	"Type",
	"Status",
	"Patient ID",
	"Patient Name",
	"Priority",
	"Workflow Status",
	"Admitted",
	"Expected Discharge",
	"Last Updated",
}

var bedReportColumnWidths = []float64{18, 10, 8, 10, 14, 16, 24, 10, 20, 18, 20, 18}

// BedReportRow is one bed and, when occupied, its active admission
type BedReportRow struct {
	Ward                  string
	RoomNumber            string
	BedNumber             string
	Type                  string
	Status                string
	PatientID             string
	PatientName           string
	Priority              string
	WorkflowStatus        string
	AdmissionDate         *time.Time
	ExpectedDischargeDate *time.Time
	LastUpdated           time.Time
}

type BedReportSummary struct {
	Ward            string
	GeneratedAt     time.Time
	Total           int64
	Available       int64
	Occupied        int64
	Cleaning        int64
	Maintenance     int64
	Reserved        int64
	UtilizationRate float64
}

// GenerateBedStatusReport renders the bed status workbook as xlsx bytes
func GenerateBedStatusReport(rows []BedReportRow, summary BedReportSummary) ([]byte, error) {
	f := excelize.NewFile()
	// WriteTo needs the file open, so Close is called explicitly below

	index, err := f.NewSheet(bedSheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range BedReportHeader {
		if err := setCellValue(f, bedSheetName, col+1, 1, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell: %w", err)
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(bedSheetName, name, name, bedReportColumnWidths[col]); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(BedReportHeader), 1)
	if err := f.SetCellStyle(bedSheetName, "A1", lastHeader, headerStyle); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to set header style: %w", err)
	}

	for i, r := range rows {
		values := []interface{}{
			r.Ward,
			r.RoomNumber,
			r.BedNumber,
			r.Type,
			r.Status,
			r.PatientID,
			r.PatientName,
			r.Priority,
			r.WorkflowStatus,
			formatReportTime(r.AdmissionDate),
			formatReportTime(r.ExpectedDischargeDate),
			r.LastUpdated.Format(reportTimeLayout),
		}
		for col, value := range values {
			if value == "" {
				continue
			}
			if err := setCellValue(f, bedSheetName, col+1, i+2, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell value at row %d, col %d: %w", i+2, col+1, err)
			}
		}
	}

	if err := f.SetPanes(bedSheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	ward := summary.Ward
	if ward == "" {
		ward = "All wards"
	}
	summaryRows := [][]interface{}{
		{"Ward", ward},
		{"Generated At", summary.GeneratedAt.Format(reportTimeLayout)},
		{"Total Beds", summary.Total},
		{"Available", summary.Available},
		{"Occupied", summary.Occupied},
		{"Cleaning", summary.Cleaning},
		{"Maintenance", summary.Maintenance},
		{"Reserved", summary.Reserved},
		{"Utilization Rate (%)", summary.UtilizationRate},
	}
	for i, row := range summaryRows {
		for col, value := range row {
			if err := setCellValue(f, summarySheetName, col+1, i+1, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set summary cell: %w", err)
			}
		}
	}
	if err := f.SetColWidth(summarySheetName, "A", "A", 22); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}

	return buf.Bytes(), nil
}

func setCellValue(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}

func formatReportTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(reportTimeLayout)
}

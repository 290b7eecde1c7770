package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestGenerateBedStatusReport(t *testing.T) {
	admitted := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	rows := []BedReportRow{
		{
			Ward: "ICU", RoomNumber: "101", BedNumber: "A", Type: "ICU", Status: "Occupied",
			PatientID: "P1", PatientName: "Jane Roe", Priority: "Critical", WorkflowStatus: "Admitted",
			AdmissionDate: &admitted, LastUpdated: admitted,
		},
		{Ward: "ICU", RoomNumber: "101", BedNumber: "B", Type: "ICU", Status: "Available", LastUpdated: admitted},
	}
	summary := BedReportSummary{
		Ward:            "ICU",
		GeneratedAt:     admitted.Add(time.Hour),
		Total:           2,
		Available:       1,
		Occupied:        1,
		UtilizationRate: 50,
	}

	content, err := GenerateBedStatusReport(rows, summary)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{bedSheetName, summarySheetName}, f.GetSheetList())

	sheet, err := f.GetRows(bedSheetName)
	require.NoError(t, err)
	require.Len(t, sheet, 3)
	assert.Equal(t, BedReportHeader, sheet[0])
	assert.Equal(t, "Jane Roe", sheet[1][6])
	assert.Equal(t, "2024-05-01 09:30", sheet[1][9])
	// Empty patient columns stay blank
	assert.Equal(t, "Available", sheet[2][4])
	assert.Len(t, sheet[2], len(BedReportHeader))
	assert.Empty(t, sheet[2][5])

	ward, err := f.GetCellValue(summarySheetName, "B1")
	require.NoError(t, err)
	assert.Equal(t, "ICU", ward)
	total, err := f.GetCellValue(summarySheetName, "B3")
	require.NoError(t, err)
	assert.Equal(t, "2", total)
	rate, err := f.GetCellValue(summarySheetName, "B9")
	require.NoError(t, err)
	assert.Equal(t, "50", rate)
}

func TestGenerateBedStatusReport_AllWards(t *testing.T) {
	content, err := GenerateBedStatusReport(nil, BedReportSummary{GeneratedAt: time.Now()})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	ward, err := f.GetCellValue(summarySheetName, "B1")
	require.NoError(t, err)
	assert.Equal(t, "All wards", ward)
}

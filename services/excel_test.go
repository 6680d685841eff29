package services

import (
	"bytes"
	"testing"
	"time"

	"intern-portal/models"
	"intern-portal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportRoster(t *testing.T) {
	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 30)
	internID := "GWING123456"

	interns := []models.Intern{
		{
			ID:              1,
			FullName:        "Jane Doe",
			Email:           "jane@x.com",
			Mobile:          "+919876543210",
			Role:            "Backend",
			Status:          utils.StatusOfferSent,
			InternID:        &internID,
			StartDate:       &start,
			EndDate:         &end,
			OfferLetterSent: true,
		},
		{
			ID:       2,
			FullName: "John Roe",
			Email:    "john@x.com",
			Role:     "Frontend",
			Status:   utils.StatusPending,
		},
	}

	data, err := ExportRoster(interns)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Full Name", rows[0][1])
	assert.Equal(t, "Jane Doe", rows[1][1])
	assert.Equal(t, "GWING123456", rows[1][9])
	assert.Equal(t, "2026-01-10", rows[1][10])
	assert.Equal(t, "John Roe", rows[2][1])
	assert.Equal(t, utils.StatusPending, rows[2][8])
}

func TestExportRosterEmpty(t *testing.T) {
	data, err := ExportRoster(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 1) // header only
}

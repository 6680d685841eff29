package services

import (
	"fmt"
	"time"

	"intern-portal/models"

	"github.com/xuri/excelize/v2"
)

var rosterHeaders = []string{
	"ID", "Full Name", "Email", "Mobile", "Qualification", "Role",
	"Duration", "College", "Status", "Intern ID", "Start Date", "End Date",
	"Offer Letter Sent", "Certificate Sent",
}

// ExportRoster builds an xlsx workbook with one row per applicant, for the
// admin roster download.
func ExportRoster(interns []models.Intern) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	for col, header := range rosterHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("error building header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("error writing header: %w", err)
		}
	}

	formatDate := func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("2006-01-02")
	}

	for row, intern := range interns {
		internID := ""
		if intern.InternID != nil {
			internID = *intern.InternID
		}
		values := []interface{}{
			intern.ID, intern.FullName, intern.Email, intern.Mobile,
			intern.Qualification, intern.Role, intern.Duration, intern.College,
			intern.Status, internID, formatDate(intern.StartDate),
			formatDate(intern.EndDate), intern.OfferLetterSent, intern.CertificateSent,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("error building cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("error writing row %d: %w", row+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

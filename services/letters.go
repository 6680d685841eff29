package services

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "intern-portal/errors"
	"intern-portal/models"

	"github.com/jung-kurt/gofpdf"
)

// Template image file names expected under the template directory
const (
	letterheadTemplate  = "letterhead.png"
	certificateTemplate = "certificate-bg.png"
)

// letterDate renders dates the way they appear on the printed documents,
// e.g. "Jan 02 2006".
func letterDate(t time.Time) string {
	return t.Format("Jan 02 2006")
}

// PDFRenderer renders offer letters and certificates from template images
// stored on local disk.
type PDFRenderer struct {
	TemplateDir string
}

func NewPDFRenderer(templateDir string) *PDFRenderer {
	return &PDFRenderer{TemplateDir: templateDir}
}

// templatePath checks that the named template image exists and returns its
// path. A missing template is a dependency failure, not a render bug.
func (r *PDFRenderer) templatePath(name string) (string, error) {
	path := filepath.Join(r.TemplateDir, name)
	if _, err := os.Stat(path); err != nil {
		return "", apperrors.NewDependencyError(fmt.Sprintf("template image missing: %s", path), err)
	}
	return path, nil
}

// RenderOfferLetter produces a portrait A4 offer letter: full-page
// letterhead background, header block (date, intern id, salutation), then a
// fixed sequence of justified paragraphs advanced by a constant vertical
// pitch. Paragraphs are assumed to fit one page.
func (r *PDFRenderer) RenderOfferLetter(intern *models.Intern, start, end time.Time, internID string) ([]byte, error) {
	background, err := r.templatePath(letterheadTemplate)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	// Keep content streams uncompressed so the text layer stays searchable,
	// matching the output of the previous generator.
	pdf.SetCompression(false)
	pdf.AddPage()

	pageWidth, pageHeight := pdf.GetPageSize()
	pdf.ImageOptions(background, 0, 0, pageWidth, pageHeight, false,
		gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	pdf.SetFont("Helvetica", "", 12)

	const (
		marginX   = 15.0
		startY    = 50.0
		lineH     = 6.0
		paraPitch = 30.0
	)

	pdf.Text(marginX, startY, fmt.Sprintf("Date: %s", letterDate(start)))
	pdf.Text(marginX, startY+10, fmt.Sprintf("ID: %s", internID))
	pdf.Text(marginX, startY+30, fmt.Sprintf("Dear %s,", strings.ToUpper(intern.FullName)))

	paragraphs := []string{
		fmt.Sprintf("We are delighted to extend a virtual internship offer for the %s position at GWING SOFTWARE TECHNOLOGIES. Your skills and enthusiasm align well with our team, and we are excited to have you join us.", intern.Role),
		fmt.Sprintf("The internship will commence on %s, and conclude on %s. This program is designed to provide you with hands-on experience and opportunities to develop your skills. This is an unpaid internship.", letterDate(start), letterDate(end)),
		"As an intern, you will be responsible for completing assigned tasks to the best of your ability and adhering to all company guidelines.",
		"By accepting this offer, you confirm your commitment to diligently executing assigned tasks and maintaining a high standard of work.",
		"We look forward to welcoming you to the GWING team and supporting your career aspirations.",
	}

	currentY := startY + 45
	for _, paragraph := range paragraphs {
		pdf.SetXY(marginX, currentY)
		pdf.MultiCell(pageWidth-2*marginX, lineH, paragraph, "", "J", false)
		currentY += paraPitch
	}

	return outputPDF(pdf)
}

// RenderCertificate produces a landscape A4 completion certificate:
// full-page background, centered id line, centered uppercase name, centered
// word-wrapped body naming the role and date range.
func (r *PDFRenderer) RenderCertificate(intern *models.Intern, start, end time.Time) ([]byte, error) {
	background, err := r.templatePath(certificateTemplate)
	if err != nil {
		return nil, err
	}

	internID := ""
	if intern.InternID != nil {
		internID = *intern.InternID
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetCompression(false)
	pdf.AddPage()

	pageWidth, pageHeight := pdf.GetPageSize()
	pdf.ImageOptions(background, 0, 0, pageWidth, pageHeight, false,
		gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	pdf.SetTextColor(11, 19, 32)

	pdf.SetFont("Helvetica", "", 14)
	centerText(pdf, pageWidth, 88, fmt.Sprintf("This certificate is proudly presented to ID: %s", internID))

	pdf.SetFont("Helvetica", "B", 30)
	centerText(pdf, pageWidth, 110, strings.ToUpper(intern.FullName))

	pdf.SetFont("Helvetica", "", 14)
	body := fmt.Sprintf("successfully completed Remote Internship at GWING Software Technologies, as a %s Intern, actively contributing to projects from %s to %s with unwavering dedication.",
		intern.Role, letterDate(start), letterDate(end))

	bodyWidth := pageWidth - 70
	pdf.SetXY((pageWidth-bodyWidth)/2, 116)
	pdf.MultiCell(bodyWidth, 7, body, "", "C", false)

	return outputPDF(pdf)
}

// centerText draws a single line horizontally centered at baseline y
func centerText(pdf *gofpdf.Fpdf, pageWidth, y float64, text string) {
	textWidth := pdf.GetStringWidth(text)
	pdf.Text((pageWidth-textWidth)/2, y, text)
}

func outputPDF(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, apperrors.NewDependencyError("error generating PDF", err)
	}
	return buf.Bytes(), nil
}

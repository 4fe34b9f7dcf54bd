package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/campuskit/registrar-core/models"
)

// PDFRenderer renders a roster sheet into a printable PDF.
type PDFRenderer struct{}

// NewPDFRenderer constructs a PDF roster renderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render creates a one-page roster document with course details followed by
// the enrolled students in roster order.
func (r *PDFRenderer) Render(sheet models.RosterSheet) ([]byte, error) {
	if sheet.CourseCode == "" {
		return nil, fmt.Errorf("pdf roster requires a course code")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "COURSE ROSTER", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "", 10)
	details := [][2]string{
		{"Course", fmt.Sprintf("%s - %s", sheet.CourseCode, sheet.CourseName)},
		{"Seats", fmt.Sprintf("%d of %d taken", len(sheet.Enrolled), sheet.Capacity)},
		{"Registration deadline", sheet.Deadline.Format(time.RFC1123)},
		{"Generated", sheet.GeneratedAt.Format(time.RFC1123)},
	}
	for _, detail := range details {
		pdf.CellFormat(50, 7, detail[0], "", 0, "", false, 0, "")
		pdf.CellFormat(0, 7, detail[1], "", 1, "", false, 0, "")
	}
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(20, 8, "#", "1", 0, "C", false, 0, "")
	pdf.CellFormat(170, 8, "Student ID", "1", 1, "", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	for i, studentID := range sheet.Enrolled {
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(170, 7, studentID, "1", 1, "", false, 0, "")
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

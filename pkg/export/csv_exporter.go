package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/campuskit/registrar-core/models"
)

var rosterHeaders = []string{"position", "student_id", "course_code", "course_name", "deadline"}

// CSVRenderer renders a roster sheet into CSV bytes, one row per enrolled
// student. An empty roster yields just the header row.
type CSVRenderer struct{}

// NewCSVRenderer builds a CSV roster renderer.
func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

// Render produces CSV encoded bytes for the roster sheet.
func (r *CSVRenderer) Render(sheet models.RosterSheet) ([]byte, error) {
	if sheet.CourseCode == "" {
		return nil, fmt.Errorf("csv roster requires a course code")
	}

	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(rosterHeaders); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}

	deadline := sheet.Deadline.Format(time.RFC3339)
	for i, studentID := range sheet.Enrolled {
		record := []string{
			strconv.Itoa(i + 1),
			studentID,
			sheet.CourseCode,
			sheet.CourseName,
			deadline,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

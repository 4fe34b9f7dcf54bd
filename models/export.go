package models

import "time"

// ExportFormat selects the rendering for roster exports.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// RosterSheet is the export view of a course roster.
type RosterSheet struct {
	CourseCode  string    `json:"course_code"`
	CourseName  string    `json:"course_name"`
	Capacity    int       `json:"capacity"`
	Deadline    time.Time `json:"deadline"`
	Enrolled    []string  `json:"enrolled"`
	GeneratedAt time.Time `json:"generated_at"`
}

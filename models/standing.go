package models

// AcademicStanding represents the academic performance level of a student,
// derived from their CGPA.
type AcademicStanding string

const (
	StandingExcellent    AcademicStanding = "EXCELLENT"
	StandingGood         AcademicStanding = "GOOD"
	StandingSatisfactory AcademicStanding = "SATISFACTORY"
	StandingProbation    AcademicStanding = "PROBATION"
)

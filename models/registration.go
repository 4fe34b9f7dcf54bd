package models

// RegistrationOutcome is the business result of a registration attempt. It is
// always returned as a value, never raised as an error.
type RegistrationOutcome string

// Possible registration outcomes. OutcomeTimeConflict is reserved for
// schedule-overlap checking and is never produced by the current engine.
const (
	OutcomeSuccess            RegistrationOutcome = "SUCCESS"
	OutcomeCourseFull         RegistrationOutcome = "COURSE_FULL"
	OutcomePrereqNotMet       RegistrationOutcome = "PREREQ_NOT_MET"
	OutcomeTimeConflict       RegistrationOutcome = "TIME_CONFLICT"
	OutcomeAlreadyEnrolled    RegistrationOutcome = "ALREADY_ENROLLED"
	OutcomeRegistrationClosed RegistrationOutcome = "REGISTRATION_CLOSED"
)

package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/campuskit/registrar-core/models"
	appErrors "github.com/campuskit/registrar-core/pkg/errors"
)

type courseDirectory interface {
	Find(ctx context.Context, code string) (*models.Course, error)
	Enroll(ctx context.Context, code, studentID string) error
}

type auditTrail interface {
	Create(ctx context.Context, event *models.RegistrationAudit) error
}

// StudentRecord is the collaborator contract a student record must expose to
// the registration engine. The engine reads the completed-or-enrolled course
// list and notifies the record after all validations pass; it never mutates a
// record on a failure path.
type StudentRecord interface {
	StudentID() string
	EnrolledCourses() []string
	EnrollInCourse(code string) bool
}

// RegistrationService is the registration decision engine. It orchestrates a
// registration attempt against the course directory and the student's own
// record, holding a single lock across the whole validate-then-commit sequence
// so two racing registrations cannot both take the last seat.
type RegistrationService struct {
	mu      sync.Mutex
	courses courseDirectory
	audit   auditTrail
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time
}

// NewRegistrationService constructs the engine. The audit trail and metrics
// service are optional.
func NewRegistrationService(courses courseDirectory, audit auditTrail, metrics *MetricsService, logger *zap.Logger) *RegistrationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{
		courses: courses,
		audit:   audit,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// Register attempts to enroll the student in the course identified by code.
// Checks run in a fixed order and the first failing one decides the outcome:
// registration period, duplicate enrollment, capacity, prerequisites. An
// unknown course is a structural error, not an outcome. State is mutated only
// after every check passes; failure paths leave both the roster and the
// student record untouched.
func (s *RegistrationService) Register(ctx context.Context, student StudentRecord, code string) (models.RegistrationOutcome, error) {
	if student == nil {
		return "", appErrors.Clone(appErrors.ErrValidation, "student record is required")
	}

	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	course, err := s.courses.Find(ctx, code)
	if err != nil {
		s.record(ctx, student.StudentID(), code, appErrors.FromError(err).Code, time.Since(start))
		return "", err
	}

	outcome := s.decide(course, student)
	if outcome == models.OutcomeSuccess {
		// The student record is notified first: a refusal (the course is
		// already on the record, or the course-load limit is reached) must
		// leave the roster untouched.
		if !student.EnrollInCourse(code) {
			outcome = models.OutcomeAlreadyEnrolled
		} else if err := s.courses.Enroll(ctx, code, student.StudentID()); err != nil {
			s.logger.Error("roster insert failed after validation",
				zap.String("course", code),
				zap.String("student", student.StudentID()),
				zap.Error(err),
			)
			s.record(ctx, student.StudentID(), code, appErrors.FromError(err).Code, time.Since(start))
			return "", err
		}
	}

	s.record(ctx, student.StudentID(), code, string(outcome), time.Since(start))
	return outcome, nil
}

// decide runs the ordered validation sequence against a course snapshot.
func (s *RegistrationService) decide(course *models.Course, student StudentRecord) models.RegistrationOutcome {
	if s.now().After(course.Deadline) {
		return models.OutcomeRegistrationClosed
	}

	studentID := student.StudentID()
	for _, enrolled := range course.Enrolled {
		if enrolled == studentID {
			return models.OutcomeAlreadyEnrolled
		}
	}

	if len(course.Enrolled) >= course.Capacity {
		return models.OutcomeCourseFull
	}

	if !prerequisitesMet(course.Prerequisites, student.EnrolledCourses()) {
		return models.OutcomePrereqNotMet
	}

	return models.OutcomeSuccess
}

// prerequisitesMet checks that every prerequisite appears in the student's
// completed-or-enrolled list. Membership only: no transitive closure, and a
// course still in progress counts.
func prerequisitesMet(prerequisites, courses []string) bool {
	if len(prerequisites) == 0 {
		return true
	}
	taken := make(map[string]struct{}, len(courses))
	for _, c := range courses {
		taken[c] = struct{}{}
	}
	for _, p := range prerequisites {
		if _, ok := taken[p]; !ok {
			return false
		}
	}
	return true
}

func (s *RegistrationService) record(ctx context.Context, studentID, code, result string, latency time.Duration) {
	s.metrics.ObserveRegistration(result, latency)

	if s.audit != nil {
		event := &models.RegistrationAudit{
			Action:     models.AuditActionRegister,
			StudentID:  studentID,
			CourseCode: code,
			Result:     result,
			Latency:    latency,
		}
		if err := s.audit.Create(ctx, event); err != nil {
			s.logger.Warn("audit write failed", zap.Error(err))
		}
	}

	s.logger.Debug("registration attempt",
		zap.String("student", studentID),
		zap.String("course", code),
		zap.String("result", result),
		zap.Duration("latency", latency),
	)
}

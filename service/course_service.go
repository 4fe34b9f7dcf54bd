package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campuskit/registrar-core/models"
	appErrors "github.com/campuskit/registrar-core/pkg/errors"
)

// courseStore is the slice of the course directory the admin service needs.
type courseStore interface {
	AddCourse(ctx context.Context, code, name string, capacity int, prerequisites []string, deadline time.Time) (*models.Course, error)
	Withdraw(ctx context.Context, code, studentID string) bool
	EnrollmentCount(ctx context.Context, code string) (int, error)
	IsFull(ctx context.Context, code string) (bool, error)
	Find(ctx context.Context, code string) (*models.Course, error)
	Codes(ctx context.Context) []string
}

// CreateCourseRequest carries the fields needed to open a course for
// registration. Capacity is left unconstrained here so the directory stays
// the single authority on capacity rules.
type CreateCourseRequest struct {
	Code          string    `json:"code" validate:"required"`
	Name          string    `json:"name" validate:"required"`
	Capacity      int       `json:"capacity"`
	Prerequisites []string  `json:"prerequisites"`
	Deadline      time.Time `json:"deadline" validate:"required"`
}

// CourseService handles course administration: opening courses and
// processing withdrawals. Registration itself goes through
// RegistrationService.
type CourseService struct {
	courses  courseStore
	audit    auditTrail
	metrics  *MetricsService
	validate *validator.Validate
	logger   *zap.Logger
}

func NewCourseService(courses courseStore, audit auditTrail, metrics *MetricsService, logger *zap.Logger) *CourseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{
		courses:  courses,
		audit:    audit,
		metrics:  metrics,
		validate: validator.New(),
		logger:   logger,
	}
}

// Create validates the request and opens the course in the directory.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course definition")
	}

	course, err := s.courses.AddCourse(ctx, req.Code, req.Name, req.Capacity, req.Prerequisites, req.Deadline)
	if err != nil {
		return nil, err
	}

	s.metrics.IncCourses()
	s.logger.Info("course opened",
		zap.String("code", course.Code),
		zap.Int("capacity", course.Capacity),
		zap.Time("deadline", course.Deadline))
	return course, nil
}

// Withdraw removes the student from the course roster and reports whether
// they were enrolled. Withdrawals are accepted at any time, including after
// the registration deadline, and never consult prerequisites or capacity.
func (s *CourseService) Withdraw(ctx context.Context, code, studentID string) bool {
	start := time.Now()
	removed := s.courses.Withdraw(ctx, code, studentID)

	result := models.WithdrawResultNotEnrolled
	if removed {
		result = models.WithdrawResultRemoved
	}

	s.metrics.ObserveWithdrawal(removed)
	if s.audit != nil {
		event := &models.RegistrationAudit{
			Action:     models.AuditActionWithdraw,
			StudentID:  studentID,
			CourseCode: code,
			Result:     result,
			Latency:    time.Since(start),
		}
		if err := s.audit.Create(ctx, event); err != nil {
			s.logger.Warn("failed to record withdrawal audit event", zap.Error(err))
		}
	}

	s.logger.Debug("withdrawal processed",
		zap.String("course", code),
		zap.String("student", studentID),
		zap.Bool("removed", removed))
	return removed
}

// EnrollmentCount reports how many students are on the course roster.
func (s *CourseService) EnrollmentCount(ctx context.Context, code string) (int, error) {
	return s.courses.EnrollmentCount(ctx, code)
}

// IsFull reports whether the course has no seats left.
func (s *CourseService) IsFull(ctx context.Context, code string) (bool, error) {
	return s.courses.IsFull(ctx, code)
}

// Roster returns the ordered student IDs enrolled in the course.
func (s *CourseService) Roster(ctx context.Context, code string) ([]string, error) {
	course, err := s.courses.Find(ctx, code)
	if err != nil {
		return nil, err
	}
	return course.Enrolled, nil
}

// Codes lists every course code in the directory in lexical order.
func (s *CourseService) Codes(ctx context.Context) []string {
	return s.courses.Codes(ctx)
}

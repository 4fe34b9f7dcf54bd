package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/campuskit/registrar-core/models"
	appErrors "github.com/campuskit/registrar-core/pkg/errors"
)

// courseRecord is the live, mutable state of a single course. Only the
// repository touches it; callers get snapshots.
type courseRecord struct {
	code          string
	name          string
	capacity      int
	prerequisites map[string]struct{}
	roster        map[string]struct{}
	deadline      time.Time
	createdAt     time.Time
}

func (c *courseRecord) snapshot() *models.Course {
	prereqs := make([]string, 0, len(c.prerequisites))
	for code := range c.prerequisites {
		prereqs = append(prereqs, code)
	}
	sort.Strings(prereqs)

	enrolled := make([]string, 0, len(c.roster))
	for id := range c.roster {
		enrolled = append(enrolled, id)
	}
	sort.Strings(enrolled)

	return &models.Course{
		Code:          c.code,
		Name:          c.name,
		Capacity:      c.capacity,
		Prerequisites: prereqs,
		Enrolled:      enrolled,
		Deadline:      c.deadline,
		CreatedAt:     c.createdAt,
	}
}

// CourseRepository is the in-memory directory of all course records and their
// rosters. It exclusively owns course state and upholds the roster invariant
// len(roster) <= capacity against any caller.
type CourseRepository struct {
	mu      sync.RWMutex
	courses map[string]*courseRecord
	logger  *zap.Logger
}

// NewCourseRepository constructs an empty course directory.
func NewCourseRepository(logger *zap.Logger) *CourseRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseRepository{
		courses: make(map[string]*courseRecord),
		logger:  logger,
	}
}

// AddCourse creates a course record with an empty roster. It fails with
// ErrDuplicateCourse when the code is already present and ErrInvalidCapacity
// for a negative capacity.
func (r *CourseRepository) AddCourse(ctx context.Context, code, name string, capacity int, prerequisites []string, deadline time.Time) (*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.courses[code]; ok {
		return nil, appErrors.Clone(appErrors.ErrDuplicateCourse, "course "+code+" already exists")
	}
	if capacity < 0 {
		return nil, appErrors.ErrInvalidCapacity
	}

	prereqs := make(map[string]struct{}, len(prerequisites))
	for _, p := range prerequisites {
		if p == "" {
			continue
		}
		prereqs[p] = struct{}{}
	}

	record := &courseRecord{
		code:          code,
		name:          name,
		capacity:      capacity,
		prerequisites: prereqs,
		roster:        make(map[string]struct{}),
		deadline:      deadline,
		createdAt:     time.Now().UTC(),
	}
	r.courses[code] = record

	r.logger.Debug("course added",
		zap.String("code", code),
		zap.Int("capacity", capacity),
		zap.Time("deadline", deadline),
	)
	return record.snapshot(), nil
}

// Enroll inserts a student into the course roster. It performs no business
// validation beyond existence and the capacity invariant; the registration
// engine runs the full check sequence before calling it. Inserting an already
// enrolled student is a no-op.
func (r *CourseRepository) Enroll(ctx context.Context, code, studentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.courses[code]
	if !ok {
		return appErrors.Clone(appErrors.ErrUnknownCourse, "course "+code+" does not exist")
	}
	if _, enrolled := record.roster[studentID]; enrolled {
		return nil
	}
	if len(record.roster) >= record.capacity {
		return appErrors.Clone(appErrors.ErrCourseFull, "course "+code+" roster is at capacity")
	}
	record.roster[studentID] = struct{}{}
	return nil
}

// Withdraw removes a student from the course roster, reporting whether the
// student was actually removed. Unknown courses and students that were never
// enrolled report false. Withdrawal carries no deadline or other validation.
func (r *CourseRepository) Withdraw(ctx context.Context, code, studentID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.courses[code]
	if !ok {
		return false
	}
	if _, enrolled := record.roster[studentID]; !enrolled {
		return false
	}
	delete(record.roster, studentID)
	return true
}

// EnrollmentCount returns the current roster size.
func (r *CourseRepository) EnrollmentCount(ctx context.Context, code string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.courses[code]
	if !ok {
		return 0, appErrors.Clone(appErrors.ErrUnknownCourse, "course "+code+" does not exist")
	}
	return len(record.roster), nil
}

// IsFull reports whether the roster has reached capacity.
func (r *CourseRepository) IsFull(ctx context.Context, code string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.courses[code]
	if !ok {
		return false, appErrors.Clone(appErrors.ErrUnknownCourse, "course "+code+" does not exist")
	}
	return len(record.roster) >= record.capacity, nil
}

// Find returns a read-only snapshot of a course.
func (r *CourseRepository) Find(ctx context.Context, code string) (*models.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.courses[code]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnknownCourse, "course "+code+" does not exist")
	}
	return record.snapshot(), nil
}

// Codes returns all course codes in lexical order.
func (r *CourseRepository) Codes(ctx context.Context) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codes := make([]string, 0, len(r.courses))
	for code := range r.courses {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

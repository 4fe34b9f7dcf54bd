package student

import (
	"strings"
	"sync"

	"github.com/campuskit/registrar-core/models"
	appErrors "github.com/campuskit/registrar-core/pkg/errors"
)

// Student is a university student record: identity, academic performance, and
// the ordered list of courses completed or in progress. The course list is
// append-only and doubles as the prerequisite-satisfaction source, so a course
// still in progress satisfies a prerequisite.
//
// A record is shared between its owning subsystem and the registration engine,
// so all methods are safe for concurrent use.
type Student struct {
	mu         sync.Mutex
	id         string
	name       string
	department string
	cgpa       float64
	semester   int
	maxLoad    int
	courses    []string
	enrolled   map[string]struct{}
}

// New constructs a student record. The id is required; records start in
// semester 1 with an empty course list and no course-load limit.
func New(id, name, department string) (*Student, error) {
	if strings.TrimSpace(id) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id is required")
	}
	return &Student{
		id:         id,
		name:       name,
		department: department,
		semester:   1,
		enrolled:   make(map[string]struct{}),
	}, nil
}

// SetCourseLoadLimit caps how many courses the record accepts. Zero or
// negative removes the limit.
func (s *Student) SetCourseLoadLimit(limit int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit < 0 {
		limit = 0
	}
	s.maxLoad = limit
}

// StudentID returns the unique student identifier.
func (s *Student) StudentID() string {
	return s.id
}

// Name returns the student's full name.
func (s *Student) Name() string {
	return s.name
}

// Department returns the department the student belongs to.
func (s *Student) Department() string {
	return s.department
}

// Semester returns the current semester, starting at 1.
func (s *Student) Semester() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.semester
}

// CGPA returns the current cumulative grade point average.
func (s *Student) CGPA() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cgpa
}

// EnrollInCourse appends a course code to the record. It reports false when
// the code is already on the record or the course-load limit is reached; the
// list never shrinks within the registration core's scope.
func (s *Student) EnrollInCourse(code string) bool {
	if code == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.enrolled[code]; ok {
		return false
	}
	if s.maxLoad > 0 && len(s.courses) >= s.maxLoad {
		return false
	}
	s.enrolled[code] = struct{}{}
	s.courses = append(s.courses, code)
	return true
}

// EnrolledCourses returns the completed-or-enrolled course codes in enrollment
// order. The returned slice is a copy.
func (s *Student) EnrolledCourses() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.courses))
	copy(out, s.courses)
	return out
}

// UpdateCGPA sets the cumulative GPA. Values outside [0, 10] are rejected.
func (s *Student) UpdateCGPA(value float64) error {
	if value < 0 || value > 10 {
		return appErrors.Clone(appErrors.ErrValidation, "cgpa must be between 0 and 10")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cgpa = value
	return nil
}

// Standing classifies the student's academic standing from their CGPA.
func (s *Student) Standing() models.AcademicStanding {
	s.mu.Lock()
	defer s.mu.Unlock()
	return standingFor(s.cgpa)
}

// AdvanceSemester moves the student to the next semester. Students on
// probation are held back and the call reports false.
func (s *Student) AdvanceSemester() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if standingFor(s.cgpa) == models.StandingProbation {
		return false
	}
	s.semester++
	return true
}

func standingFor(cgpa float64) models.AcademicStanding {
	switch {
	case cgpa >= 9.0:
		return models.StandingExcellent
	case cgpa >= 7.0:
		return models.StandingGood
	case cgpa >= 5.0:
		return models.StandingSatisfactory
	default:
		return models.StandingProbation
	}
}

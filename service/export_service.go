package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/campuskit/registrar-core/models"
	appErrors "github.com/campuskit/registrar-core/pkg/errors"
)

// rosterSource is the slice of the course directory the exporter needs.
type rosterSource interface {
	Find(ctx context.Context, code string) (*models.Course, error)
}

// rosterRenderer turns a roster sheet into export bytes.
type rosterRenderer interface {
	Render(sheet models.RosterSheet) ([]byte, error)
}

// ExportService produces roster sheets and renders them in the supported
// export formats.
type ExportService struct {
	courses   rosterSource
	renderers map[models.ExportFormat]rosterRenderer
	logger    *zap.Logger
	now       func() time.Time
}

func NewExportService(courses rosterSource, csv, pdf rosterRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	renderers := make(map[models.ExportFormat]rosterRenderer, 2)
	if csv != nil {
		renderers[models.ExportFormatCSV] = csv
	}
	if pdf != nil {
		renderers[models.ExportFormatPDF] = pdf
	}
	return &ExportService{
		courses:   courses,
		renderers: renderers,
		logger:    logger,
		now:       time.Now,
	}
}

// RosterSheet builds the export view of a course roster.
func (s *ExportService) RosterSheet(ctx context.Context, code string) (models.RosterSheet, error) {
	course, err := s.courses.Find(ctx, code)
	if err != nil {
		return models.RosterSheet{}, err
	}

	return models.RosterSheet{
		CourseCode:  course.Code,
		CourseName:  course.Name,
		Capacity:    course.Capacity,
		Deadline:    course.Deadline,
		Enrolled:    course.Enrolled,
		GeneratedAt: s.now().UTC(),
	}, nil
}

// Render produces the roster export for the course in the requested format.
func (s *ExportService) Render(ctx context.Context, code string, format models.ExportFormat) ([]byte, error) {
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}

	sheet, err := s.RosterSheet(ctx, code)
	if err != nil {
		return nil, err
	}

	data, err := renderer.Render(sheet)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "roster export failed")
	}

	s.logger.Debug("roster exported",
		zap.String("course", code),
		zap.String("format", string(format)),
		zap.Int("bytes", len(data)))
	return data, nil
}

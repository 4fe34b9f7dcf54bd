// Package registrar assembles the registration core: configuration, logging,
// the course directory, and the services around it. Front ends embed a Core
// instead of wiring the packages by hand; anything needing finer control can
// still compose repository, service, and student directly.
package registrar

import (
	"context"

	"go.uber.org/zap"

	"github.com/campuskit/registrar-core/pkg/config"
	"github.com/campuskit/registrar-core/pkg/export"
	"github.com/campuskit/registrar-core/pkg/logger"
	"github.com/campuskit/registrar-core/repository"
	"github.com/campuskit/registrar-core/service"
	"github.com/campuskit/registrar-core/student"
)

// Core bundles the assembled registration components.
type Core struct {
	Config  *config.Config
	Logger  *zap.Logger
	Courses *repository.CourseRepository
	Audit   *repository.AuditLogRepository
	Metrics *service.MetricsService
	Engine  *service.RegistrationService
	Admin   *service.CourseService
	Catalog *service.CatalogService
	Export  *service.ExportService
}

// New assembles a Core. A nil cfg is loaded from the environment and .env; a
// nil logger is built from the config. The audit trail is only attached when
// enabled in the config.
func New(cfg *config.Config, logr *zap.Logger) (*Core, error) {
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if logr == nil {
		built, err := logger.New(cfg)
		if err != nil {
			return nil, err
		}
		logr = built
	}

	courses := repository.NewCourseRepository(logr)
	metrics := service.NewMetricsService()

	core := &Core{
		Config:  cfg,
		Logger:  logr,
		Courses: courses,
		Metrics: metrics,
	}

	if cfg.Audit.Enabled {
		core.Audit = repository.NewAuditLogRepository(cfg.Audit.Capacity)
		core.Engine = service.NewRegistrationService(courses, core.Audit, metrics, logr)
		core.Admin = service.NewCourseService(courses, core.Audit, metrics, logr)
	} else {
		core.Engine = service.NewRegistrationService(courses, nil, metrics, logr)
		core.Admin = service.NewCourseService(courses, nil, metrics, logr)
	}

	core.Catalog = service.NewCatalogService(core.Admin, logr)
	core.Export = service.NewExportService(courses, export.NewCSVRenderer(), export.NewPDFRenderer(), logr)

	return core, nil
}

// SeedCatalog loads every catalog file from the configured directory. It is a
// no-op returning a zero result when no directory is configured.
func (c *Core) SeedCatalog(ctx context.Context) (service.CatalogLoadResult, error) {
	if c.Config.Catalog.Dir == "" {
		return service.CatalogLoadResult{}, nil
	}
	return c.Catalog.LoadDir(ctx, c.Config.Catalog.Dir)
}

// NewStudent creates a student record with the configured course-load limit
// applied.
func (c *Core) NewStudent(id, name, department string) (*student.Student, error) {
	s, err := student.New(id, name, department)
	if err != nil {
		return nil, err
	}
	if limit := c.Config.Registration.MaxCourseLoad; limit > 0 {
		s.SetCourseLoadLimit(limit)
	}
	return s, nil
}

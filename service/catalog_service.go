package service

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/campuskit/registrar-core/models"
	appErrors "github.com/campuskit/registrar-core/pkg/errors"
)

// courseCreator is the slice of CourseService the catalog loader needs.
type courseCreator interface {
	Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error)
}

type catalogFile struct {
	Courses []catalogEntry `yaml:"courses"`
}

type catalogEntry struct {
	Code          string    `yaml:"code"`
	Name          string    `yaml:"name"`
	Capacity      int       `yaml:"capacity"`
	Prerequisites []string  `yaml:"prerequisites"`
	Deadline      time.Time `yaml:"deadline"`
}

// CatalogLoadResult reports how many catalog entries were registered and how
// many were skipped because they failed validation or collided with an
// existing course.
type CatalogLoadResult struct {
	Loaded  int
	Skipped int
}

// CatalogService seeds the course directory from YAML catalog files. Invalid
// entries are skipped with a warning so one bad record does not block the
// rest of the catalog.
type CatalogService struct {
	creator courseCreator
	logger  *zap.Logger
}

func NewCatalogService(creator courseCreator, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{creator: creator, logger: logger}
}

// LoadReader decodes one YAML catalog document and registers its courses.
func (s *CatalogService) LoadReader(ctx context.Context, r io.Reader) (CatalogLoadResult, error) {
	var result CatalogLoadResult

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file catalogFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return result, nil
		}
		return result, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed catalog document")
	}

	for _, entry := range file.Courses {
		_, err := s.creator.Create(ctx, CreateCourseRequest{
			Code:          entry.Code,
			Name:          entry.Name,
			Capacity:      entry.Capacity,
			Prerequisites: entry.Prerequisites,
			Deadline:      entry.Deadline,
		})
		if err != nil {
			result.Skipped++
			s.logger.Warn("skipping catalog entry",
				zap.String("code", entry.Code),
				zap.Error(err))
			continue
		}
		result.Loaded++
	}

	return result, nil
}

// LoadFile registers the courses defined in a single YAML catalog file.
func (s *CatalogService) LoadFile(ctx context.Context, path string) (CatalogLoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return CatalogLoadResult{}, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "catalog file not readable")
	}
	defer f.Close()

	result, err := s.LoadReader(ctx, f)
	if err != nil {
		return result, err
	}

	s.logger.Info("catalog file loaded",
		zap.String("path", path),
		zap.Int("loaded", result.Loaded),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

// LoadDir loads every .yml/.yaml file in dir in lexical order. Files that
// fail to parse are skipped with a warning; per-entry failures are already
// handled by LoadReader.
func (s *CatalogService) LoadDir(ctx context.Context, dir string) (CatalogLoadResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return CatalogLoadResult{}, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "catalog directory not readable")
	}

	var total CatalogLoadResult
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yml") && !strings.HasSuffix(name, ".yaml") {
			continue
		}

		result, err := s.LoadFile(ctx, filepath.Join(dir, name))
		if err != nil {
			s.logger.Warn("skipping catalog file", zap.String("file", name), zap.Error(err))
			continue
		}
		total.Loaded += result.Loaded
		total.Skipped += result.Skipped
	}

	return total, nil
}

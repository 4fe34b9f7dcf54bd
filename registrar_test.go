package registrar

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campuskit/registrar-core/models"
	"github.com/campuskit/registrar-core/pkg/config"
	"github.com/campuskit/registrar-core/service"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:          config.EnvDevelopment,
		Log:          config.LogConfig{Level: "debug", Format: "console"},
		Registration: config.RegistrationConfig{MaxCourseLoad: 2},
		Audit:        config.AuditConfig{Enabled: true, Capacity: 16},
	}
}

func TestCoreRegisterFlow(t *testing.T) {
	core, err := New(testConfig(), zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, core.Audit)
	ctx := context.Background()

	_, err = core.Admin.Create(ctx, service.CreateCourseRequest{
		Code:     "CS201",
		Name:     "Data Structures",
		Capacity: 30,
		Deadline: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	alice, err := core.NewStudent("S001", "Alice Johnson", "CS")
	require.NoError(t, err)

	outcome, err := core.Engine.Register(ctx, alice, "CS201")
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeSuccess, outcome)

	events := core.Audit.List(ctx, 0)
	require.Len(t, events, 1)
	assert.Equal(t, string(models.OutcomeSuccess), events[0].Result)

	data, err := core.Export.Render(ctx, "CS201", models.ExportFormatCSV)
	require.NoError(t, err)
	assert.Contains(t, string(data), "S001")

	assert.Equal(t, uint64(1), core.Metrics.Snapshot().AttemptsTotal)
}

func TestCoreNewStudentAppliesCourseLoadLimit(t *testing.T) {
	core, err := New(testConfig(), zap.NewNop())
	require.NoError(t, err)

	s, err := core.NewStudent("S002", "Bob Lee", "MATH")
	require.NoError(t, err)

	assert.True(t, s.EnrollInCourse("MATH101"))
	assert.True(t, s.EnrollInCourse("MATH102"))
	assert.False(t, s.EnrollInCourse("MATH103"), "configured course load is 2")
}

func TestCoreSeedCatalog(t *testing.T) {
	dir := t.TempDir()
	doc := "courses:\n  - code: CS101\n    name: Intro to Programming\n    capacity: 120\n    deadline: 2027-01-15T23:59:59Z\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.yaml"), []byte(doc), 0o600))

	cfg := testConfig()
	cfg.Catalog.Dir = dir
	core, err := New(cfg, zap.NewNop())
	require.NoError(t, err)

	result, err := core.SeedCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Loaded)
	assert.Equal(t, []string{"CS101"}, core.Courses.Codes(context.Background()))
}

func TestCoreSeedCatalogUnconfigured(t *testing.T) {
	core, err := New(testConfig(), zap.NewNop())
	require.NoError(t, err)

	result, err := core.SeedCatalog(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.Loaded)
}

func TestCoreAuditDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Audit.Enabled = false
	core, err := New(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, core.Audit)

	ctx := context.Background()
	_, err = core.Admin.Create(ctx, service.CreateCourseRequest{
		Code:     "CS201",
		Name:     "Data Structures",
		Capacity: 1,
		Deadline: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	alice, err := core.NewStudent("S003", "Carol Diaz", "CS")
	require.NoError(t, err)

	outcome, err := core.Engine.Register(ctx, alice, "CS201")
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeSuccess, outcome)
}

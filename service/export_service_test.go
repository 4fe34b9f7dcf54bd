package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campuskit/registrar-core/models"
	appErrors "github.com/campuskit/registrar-core/pkg/errors"
	"github.com/campuskit/registrar-core/pkg/export"
	"github.com/campuskit/registrar-core/repository"
)

var rosterDeadline = time.Date(2027, time.January, 15, 23, 59, 59, 0, time.UTC)

func newExportServiceForTest(t *testing.T) *ExportService {
	t.Helper()
	repo := repository.NewCourseRepository(zap.NewNop())
	ctx := context.Background()

	_, err := repo.AddCourse(ctx, "CS201", "Data Structures", 30, []string{"CS101"}, rosterDeadline)
	require.NoError(t, err)
	require.NoError(t, repo.Enroll(ctx, "CS201", "bob"))
	require.NoError(t, repo.Enroll(ctx, "CS201", "alice"))

	svc := NewExportService(repo, export.NewCSVRenderer(), export.NewPDFRenderer(), zap.NewNop())
	svc.now = func() time.Time { return rosterDeadline.Add(-time.Hour) }
	return svc
}

func TestExportServiceRosterSheet(t *testing.T) {
	svc := newExportServiceForTest(t)

	sheet, err := svc.RosterSheet(context.Background(), "CS201")
	require.NoError(t, err)
	assert.Equal(t, "CS201", sheet.CourseCode)
	assert.Equal(t, "Data Structures", sheet.CourseName)
	assert.Equal(t, 30, sheet.Capacity)
	assert.Equal(t, rosterDeadline, sheet.Deadline)
	assert.Equal(t, []string{"alice", "bob"}, sheet.Enrolled)
	assert.Equal(t, rosterDeadline.Add(-time.Hour), sheet.GeneratedAt)

	_, err = svc.RosterSheet(context.Background(), "GHOST404")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnknownCourse))
}

func TestExportServiceRenderCSV(t *testing.T) {
	svc := newExportServiceForTest(t)

	data, err := svc.Render(context.Background(), "CS201", models.ExportFormatCSV)
	require.NoError(t, err)

	want := "position,student_id,course_code,course_name,deadline\n" +
		"1,alice,CS201,Data Structures,2027-01-15T23:59:59Z\n" +
		"2,bob,CS201,Data Structures,2027-01-15T23:59:59Z\n"
	assert.Equal(t, want, string(data))
}

func TestExportServiceRenderPDF(t *testing.T) {
	svc := newExportServiceForTest(t)

	data, err := svc.Render(context.Background(), "CS201", models.ExportFormatPDF)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "PDF output must start with the magic header")
	assert.NotEmpty(t, data)
}

func TestExportServiceRenderUnsupportedFormat(t *testing.T) {
	svc := newExportServiceForTest(t)

	_, err := svc.Render(context.Background(), "CS201", models.ExportFormat("xml"))
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestExportServiceRenderUnknownCourse(t *testing.T) {
	svc := newExportServiceForTest(t)

	_, err := svc.Render(context.Background(), "GHOST404", models.ExportFormatCSV)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnknownCourse))
}

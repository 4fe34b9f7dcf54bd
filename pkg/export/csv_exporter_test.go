package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/registrar-core/models"
)

func TestCSVRendererRender(t *testing.T) {
	sheet := models.RosterSheet{
		CourseCode: "CS201",
		CourseName: "Data Structures",
		Capacity:   2,
		Deadline:   time.Date(2027, time.January, 15, 23, 59, 59, 0, time.UTC),
		Enrolled:   []string{"alice", "bob"},
	}

	data, err := NewCSVRenderer().Render(sheet)
	require.NoError(t, err)

	want := "position,student_id,course_code,course_name,deadline\n" +
		"1,alice,CS201,Data Structures,2027-01-15T23:59:59Z\n" +
		"2,bob,CS201,Data Structures,2027-01-15T23:59:59Z\n"
	assert.Equal(t, want, string(data))
}

func TestCSVRendererEmptyRoster(t *testing.T) {
	sheet := models.RosterSheet{CourseCode: "CS201", CourseName: "Data Structures"}

	data, err := NewCSVRenderer().Render(sheet)
	require.NoError(t, err)
	assert.Equal(t, "position,student_id,course_code,course_name,deadline\n", string(data))
}

func TestCSVRendererRequiresCourseCode(t *testing.T) {
	_, err := NewCSVRenderer().Render(models.RosterSheet{})
	require.Error(t, err)
}

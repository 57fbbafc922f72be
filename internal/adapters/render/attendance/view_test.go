package attendance

import (
	"testing"
	"time"

	"github.com/bnema/attendance-cli/internal/application"
	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderToday(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)

	output, err := RenderToday([]application.DayEntry{
		{
			Student:    domain.Student{ID: "1", RollNumber: "R1", Name: "Aswin"},
			Status:     domain.StatusPresent,
			Recorded:   true,
			RecordedAt: now,
		},
		{
			Student: domain.Student{ID: "2", RollNumber: "R2", Name: "Edwin"},
			Status:  domain.StatusAbsent,
		},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "Attendance for 2026-02-14")
	assert.Contains(t, output, "students: 2  present: 1  partial: 0  absent: 1")
	assert.Contains(t, output, "Aswin (R1)")
	assert.Contains(t, output, "Present")
	assert.Contains(t, output, "Absent (no record)")
}

func TestRenderTodayEmpty(t *testing.T) {
	output, err := RenderToday(nil, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "Attendance today")
	assert.Contains(t, output, "No students enrolled.")
}

func TestRenderReport(t *testing.T) {
	output, err := RenderReport([]domain.StudentSummary{
		{
			Student:    domain.Student{ID: "1", RollNumber: "R1", Name: "Aswin"},
			Present:    3,
			Partial:    1,
			Days:       4,
			Percentage: 87.5,
		},
		{
			Student:    domain.Student{ID: "2", RollNumber: "R2", Name: "Edwin"},
			Present:    1,
			Absent:     3,
			Days:       4,
			Percentage: 25,
		},
		{
			Student: domain.Student{ID: "3", RollNumber: "R3", Name: "Tom"},
		},
	})

	require.NoError(t, err)
	assert.Contains(t, output, "students: 3")
	assert.Contains(t, output, " 87.5%")
	assert.Contains(t, output, "present 3  partial 1  absent 0  days 4")
	assert.Contains(t, output, "below 75% attendance")
	assert.Contains(t, output, "no attendance recorded")
	assert.Contains(t, output, "[")
	assert.Contains(t, output, "]")
}

func TestRenderRecent(t *testing.T) {
	recordedAt := time.Date(2026, 2, 14, 9, 30, 5, 0, time.UTC)

	output, err := RenderRecent([]application.RecentEntry{
		{
			Record: domain.Record{
				StudentID:  "1",
				Date:       "2026-02-14",
				Status:     domain.StatusPartial,
				RecordedAt: recordedAt,
			},
			StudentName: "Aswin",
		},
	})

	require.NoError(t, err)
	assert.Contains(t, output, "records: 1")
	assert.Contains(t, output, "2026-02-14")
	assert.Contains(t, output, "Aswin")
	assert.Contains(t, output, "Partial")
	assert.Contains(t, output, "09:30:05")
}

func TestRenderSessions(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)

	output, err := RenderSessions([]domain.SessionRecord{
		{
			ID:        "s-1",
			ClassID:   "CS-A",
			Subject:   "Math",
			StartedAt: now.Add(-time.Hour),
			EndedAt:   now.Add(-15 * time.Minute),
			Recognitions: []domain.Recognition{
				{Identity: "Aswin", Confidence: 91, ObservedAt: now.Add(-50 * time.Minute)},
			},
			Present:     1,
			Absent:      2,
			CommitError: "write attendance for 2: disk full",
		},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "sessions: 1")
	assert.Contains(t, output, "CS-A / Math")
	assert.Contains(t, output, "10:00")
	assert.Contains(t, output, "(45m0s)")
	assert.Contains(t, output, "present 1  absent 2  recognitions 1")
	assert.Contains(t, output, "commit incomplete: write attendance for 2: disk full")
}

func TestRenderProgressBarClamps(t *testing.T) {
	s := newStyles()

	assert.Equal(t, "", renderProgressBar(50, 0, s))
	assert.Contains(t, renderProgressBar(150, 4, s), "====")
	assert.Contains(t, renderProgressBar(-10, 4, s), "----")
}

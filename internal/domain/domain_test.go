package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		student Student
		wantErr string
	}{
		{
			name:    "valid",
			student: Student{ID: "1", RollNumber: "R-01", Name: "Aswin"},
		},
		{
			name:    "missing id",
			student: Student{RollNumber: "R-01", Name: "Aswin"},
			wantErr: "id is required",
		},
		{
			name:    "missing roll number",
			student: Student{ID: "1", RollNumber: "  ", Name: "Aswin"},
			wantErr: "roll number is required",
		},
		{
			name:    "missing name",
			student: Student{ID: "1", RollNumber: "R-01"},
			wantErr: "name is required",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.student.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestSortStudentsOrdersNumericIDsFirst(t *testing.T) {
	t.Parallel()

	students := []Student{{ID: "10"}, {ID: "b"}, {ID: "2"}, {ID: "a"}, {ID: "1"}}
	SortStudents(students)

	ids := make([]StudentID, 0, len(students))
	for _, student := range students {
		ids = append(ids, student.ID)
	}
	assert.Equal(t, []StudentID{"1", "2", "10", "a", "b"}, ids)
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	status, err := ParseStatus(" Present ")
	require.NoError(t, err)
	assert.Equal(t, StatusPresent, status)

	_, err = ParseStatus("late")
	assert.ErrorContains(t, err, "unsupported attendance status")
}

func TestSessionAcceptRejectsAtOrBelowThreshold(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	session := NewSession("s-1", "CS-101", "Math")
	require.NoError(t, session.Activate(now))

	_, outcome := session.Accept(Detection{Identity: "Tom", Confidence: 75}, now, DefaultAcceptThreshold)
	assert.Equal(t, OutcomeRejected, outcome)
	_, outcome = session.Accept(Detection{Identity: "Tom", Confidence: 80}, now, DefaultAcceptThreshold)
	assert.Equal(t, OutcomeRejected, outcome)
	assert.Empty(t, session.Recognitions())
	assert.False(t, session.Seen("Tom"))
}

func TestSessionAcceptFirstSightingWins(t *testing.T) {
	t.Parallel()

	first := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	session := NewSession("s-1", "CS-101", "Math")
	require.NoError(t, session.Activate(first))

	recognition, outcome := session.Accept(Detection{Identity: "Aswin", Confidence: 92}, first, DefaultAcceptThreshold)
	require.Equal(t, OutcomeAccepted, outcome)
	assert.Equal(t, Recognition{Identity: "Aswin", Confidence: 92, ObservedAt: first}, recognition)

	_, outcome = session.Accept(Detection{Identity: " aswin ", Confidence: 99}, first.Add(2*time.Second), DefaultAcceptThreshold)
	assert.Equal(t, OutcomeDuplicate, outcome)

	assert.Equal(t, []Recognition{{Identity: "Aswin", Confidence: 92, ObservedAt: first}}, session.Recognitions())
}

func TestSessionTransitions(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	session := NewSession("s-1", "CS-101", "Math")
	assert.Equal(t, SessionIdle, session.State)

	require.ErrorIs(t, session.End(now), ErrSessionNotActive)
	require.NoError(t, session.Activate(now))
	require.ErrorIs(t, session.Activate(now), ErrAlreadyActive)

	_, outcome := session.Accept(Detection{Identity: "Edwin", Confidence: 90}, now, DefaultAcceptThreshold)
	require.Equal(t, OutcomeAccepted, outcome)

	require.NoError(t, session.End(now.Add(time.Minute)))
	assert.Equal(t, SessionEnded, session.State)
	require.ErrorIs(t, session.Activate(now), ErrSessionNotActive)

	_, outcome = session.Accept(Detection{Identity: "Tom", Confidence: 95}, now, DefaultAcceptThreshold)
	assert.Equal(t, OutcomeInactive, outcome)
	assert.Len(t, session.Recognitions(), 1)
}

func TestSessionCloneIsIndependent(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	session := NewSession("s-1", "CS-101", "Math")
	require.NoError(t, session.Activate(now))
	_, _ = session.Accept(Detection{Identity: "Aswin", Confidence: 92}, now, DefaultAcceptThreshold)

	clone := session.Clone()
	_, _ = session.Accept(Detection{Identity: "Tom", Confidence: 92}, now, DefaultAcceptThreshold)

	assert.Len(t, clone.Recognitions(), 1)
	assert.Len(t, session.Recognitions(), 2)
}

func TestReconcileMarksOnlyRecognizedStudentsPresent(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	roster := []Student{
		{ID: "1", RollNumber: "R-01", Name: "Aswin"},
		{ID: "2", RollNumber: "R-02", Name: "Edwin"},
		{ID: "3", RollNumber: "R-03", Name: "Tom"},
	}
	recognitions := []Recognition{
		{Identity: "Aswin", Confidence: 92, ObservedAt: now},
		{Identity: "Stranger", Confidence: 99, ObservedAt: now},
	}

	records := Reconcile(roster, recognitions, "2026-03-02", DefaultAcceptThreshold, now)

	require.Len(t, records, 3)
	assert.Equal(t, StatusPresent, records["1"].Status)
	assert.Equal(t, StatusAbsent, records["2"].Status)
	assert.Equal(t, StatusAbsent, records["3"].Status)
	for id, record := range records {
		assert.Equal(t, id, record.StudentID)
		assert.Equal(t, "2026-03-02", record.Date)
	}

	present, absent := CountStatuses(records)
	assert.Equal(t, 1, present)
	assert.Equal(t, 2, absent)
}

func TestReconcileIgnoresRecognitionsAtThreshold(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	roster := []Student{{ID: "3", RollNumber: "R-03", Name: "Tom"}}

	records := Reconcile(roster, []Recognition{{Identity: "Tom", Confidence: 80}}, "2026-03-02", DefaultAcceptThreshold, now)
	assert.Equal(t, StatusAbsent, records["3"].Status)
}

func TestSummarizeCountsLatestStatusPerDay(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	roster := []Student{{ID: "1", Name: "Aswin"}, {ID: "2", Name: "Edwin"}}
	records := []Record{
		{StudentID: "1", Date: "2026-03-02", Status: StatusAbsent, RecordedAt: base},
		{StudentID: "1", Date: "2026-03-02", Status: StatusPresent, RecordedAt: base.Add(time.Hour)},
		{StudentID: "1", Date: "2026-03-03", Status: StatusPartial, RecordedAt: base.Add(24 * time.Hour)},
		{StudentID: "1", Date: "2026-03-04", Status: StatusAbsent, RecordedAt: base.Add(48 * time.Hour)},
		{StudentID: "9", Date: "2026-03-02", Status: StatusPresent, RecordedAt: base},
	}

	summaries := Summarize(roster, records)
	require.Len(t, summaries, 2)
	assert.Equal(t, 3, summaries[0].Days)
	assert.Equal(t, 1, summaries[0].Present)
	assert.Equal(t, 1, summaries[0].Partial)
	assert.Equal(t, 1, summaries[0].Absent)
	assert.Equal(t, 50.0, summaries[0].Percentage)
	assert.Zero(t, summaries[1].Days)
	assert.Zero(t, summaries[1].Percentage)
}

func TestPartialCommitErrorListsFailures(t *testing.T) {
	t.Parallel()

	writeErr := errors.New("store offline")
	err := &PartialCommitError{
		Date:      "2026-03-02",
		Succeeded: []StudentID{"1"},
		Failed:    map[StudentID]error{"3": writeErr, "2": writeErr},
	}

	assert.Equal(t, []StudentID{"2", "3"}, err.FailedIDs())
	assert.ErrorIs(t, err, writeErr)
	assert.Contains(t, err.Error(), "1 written, 2 failed (2, 3)")

	var wrapped error = err
	var partial *PartialCommitError
	require.ErrorAs(t, wrapped, &partial)
}

package application

import (
	"context"
	"fmt"

	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/bnema/attendance-cli/internal/ports"
)

const DefaultRecentLimit = 10

// AttendanceService answers the read side of attendance and the manual mark
// operation. Dates are always the clock's current day.
type AttendanceService struct {
	roster  ports.RosterProvider
	store   ports.AttendanceStore
	archive ports.SessionArchive
	clock   ports.Clock
}

func NewAttendanceService(roster ports.RosterProvider, store ports.AttendanceStore, archive ports.SessionArchive, clock ports.Clock) *AttendanceService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &AttendanceService{
		roster:  roster,
		store:   store,
		archive: archive,
		clock:   clock,
	}
}

// Today lists every enrolled student with their latest status for the current
// day. Students without a record are Absent.
func (s *AttendanceService) Today(ctx context.Context) ([]DayEntry, error) {
	students, err := s.roster.ListStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}

	records, err := s.store.ListByDate(ctx, domain.DateOf(s.clock.Now()))
	if err != nil {
		return nil, fmt.Errorf("list attendance by date: %w", err)
	}
	latest := domain.LatestByStudent(records)

	entries := make([]DayEntry, 0, len(students))
	for _, student := range students {
		entry := DayEntry{Student: student, Status: domain.StatusAbsent}
		if record, ok := latest[student.ID]; ok {
			entry.Status = record.Status
			entry.Recorded = true
			entry.RecordedAt = record.RecordedAt
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (s *AttendanceService) Report(ctx context.Context) ([]domain.StudentSummary, error) {
	students, err := s.roster.ListStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}

	records, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}

	return domain.Summarize(students, records), nil
}

func (s *AttendanceService) Recent(ctx context.Context, limit int) ([]RecentEntry, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	students, err := s.roster.ListStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	names := make(map[domain.StudentID]string, len(students))
	for _, student := range students {
		names[student.ID] = student.Name
	}

	records, err := s.store.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent attendance: %w", err)
	}

	entries := make([]RecentEntry, 0, len(records))
	for _, record := range records {
		name, ok := names[record.StudentID]
		if !ok {
			name = string(record.StudentID)
		}
		entries = append(entries, RecentEntry{Record: record, StudentName: name})
	}

	return entries, nil
}

// Mark writes today's status for the student whose name matches, ignoring case
// and extra whitespace.
func (s *AttendanceService) Mark(ctx context.Context, cmd MarkAttendanceCommand) (domain.Record, error) {
	cmd.normalize()
	if err := validateCommand(cmd); err != nil {
		return domain.Record{}, err
	}

	students, err := s.roster.ListStudents(ctx)
	if err != nil {
		return domain.Record{}, fmt.Errorf("list students: %w", err)
	}

	key := domain.IdentityKey(cmd.Name)
	for _, student := range students {
		if domain.IdentityKey(student.Name) != key {
			continue
		}

		now := s.clock.Now()
		record := domain.Record{
			StudentID:  student.ID,
			Date:       domain.DateOf(now),
			Status:     cmd.Status,
			RecordedAt: now,
		}
		if err := s.store.WriteAttendance(ctx, record.StudentID, record.Date, record.Status); err != nil {
			return domain.Record{}, fmt.Errorf("write attendance: %w", err)
		}
		return record, nil
	}

	return domain.Record{}, fmt.Errorf("%w: %s", domain.ErrStudentNotFound, cmd.Name)
}

func (s *AttendanceService) Sessions(ctx context.Context, limit int) ([]domain.SessionRecord, error) {
	if s.archive == nil {
		return nil, nil
	}

	sessions, err := s.archive.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	return sessions, nil
}

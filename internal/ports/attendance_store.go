package ports

import (
	"context"

	"github.com/bnema/attendance-cli/internal/domain"
)

type AttendanceStore interface {
	WriteAttendance(ctx context.Context, id domain.StudentID, date string, status domain.Status) error
	ListByDate(ctx context.Context, date string) ([]domain.Record, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Record, error)
	ListAll(ctx context.Context) ([]domain.Record, error)
	DeleteByStudent(ctx context.Context, id domain.StudentID) error
}

type SessionArchive interface {
	Save(ctx context.Context, record domain.SessionRecord) error
	List(ctx context.Context, limit int) ([]domain.SessionRecord, error)
}

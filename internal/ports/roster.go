package ports

import (
	"context"

	"github.com/bnema/attendance-cli/internal/domain"
)

type RosterProvider interface {
	ListStudents(ctx context.Context) ([]domain.Student, error)
}

type StudentRepository interface {
	RosterProvider
	GetByID(ctx context.Context, id domain.StudentID) (domain.Student, error)
	Save(ctx context.Context, student domain.Student) error
	Delete(ctx context.Context, id domain.StudentID) error
}

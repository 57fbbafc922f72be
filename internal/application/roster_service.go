package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/bnema/attendance-cli/internal/ports"
)

type RosterService struct {
	repo  ports.StudentRepository
	store ports.AttendanceStore
}

func NewRosterService(repo ports.StudentRepository, store ports.AttendanceStore) *RosterService {
	return &RosterService{repo: repo, store: store}
}

func (s *RosterService) List(ctx context.Context) ([]domain.Student, error) {
	students, err := s.repo.ListStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}

	return students, nil
}

func (s *RosterService) Get(ctx context.Context, id domain.StudentID) (domain.Student, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Student{}, fmt.Errorf("get student by id: %w", err)
	}

	return student, nil
}

// Add enrolls a student. An empty or "0" id picks the lowest free positive number.
func (s *RosterService) Add(ctx context.Context, cmd AddStudentCommand) (domain.Student, error) {
	cmd.normalize()
	if err := validateCommand(cmd); err != nil {
		return domain.Student{}, err
	}

	if n, err := strconv.Atoi(string(cmd.ID)); err == nil && n < 0 {
		return domain.Student{}, fmt.Errorf("student id must be a positive number or empty/0 for auto assignment")
	}

	students, err := s.repo.ListStudents(ctx)
	if err != nil {
		return domain.Student{}, fmt.Errorf("list students: %w", err)
	}

	id := cmd.ID
	if id == "" || id == "0" {
		id = nextStudentID(students)
	}

	for _, existing := range students {
		if existing.ID == id {
			return domain.Student{}, fmt.Errorf("student %s already exists", id)
		}
		if sameRollNumber(existing.RollNumber, cmd.RollNumber) {
			return domain.Student{}, fmt.Errorf("%w: %s", domain.ErrDuplicateRollNumber, cmd.RollNumber)
		}
	}

	student := domain.Student{ID: id, RollNumber: cmd.RollNumber, Name: cmd.Name}
	if err := s.repo.Save(ctx, student); err != nil {
		return domain.Student{}, fmt.Errorf("save student: %w", err)
	}

	return student, nil
}

// Update changes the non-empty fields of an enrolled student.
func (s *RosterService) Update(ctx context.Context, cmd UpdateStudentCommand) (domain.Student, error) {
	cmd.normalize()
	if err := validateCommand(cmd); err != nil {
		return domain.Student{}, err
	}

	student, err := s.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return domain.Student{}, fmt.Errorf("get student by id: %w", err)
	}

	if cmd.RollNumber != "" && !sameRollNumber(cmd.RollNumber, student.RollNumber) {
		students, err := s.repo.ListStudents(ctx)
		if err != nil {
			return domain.Student{}, fmt.Errorf("list students: %w", err)
		}
		for _, existing := range students {
			if existing.ID != student.ID && sameRollNumber(existing.RollNumber, cmd.RollNumber) {
				return domain.Student{}, fmt.Errorf("%w: %s", domain.ErrDuplicateRollNumber, cmd.RollNumber)
			}
		}
		student.RollNumber = cmd.RollNumber
	}
	if cmd.Name != "" {
		student.Name = cmd.Name
	}

	if err := s.repo.Save(ctx, student); err != nil {
		return domain.Student{}, fmt.Errorf("save student: %w", err)
	}

	return student, nil
}

// Remove unenrolls a student together with their attendance history.
func (s *RosterService) Remove(ctx context.Context, id domain.StudentID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("get student by id: %w", err)
	}

	if err := s.store.DeleteByStudent(ctx, id); err != nil {
		return fmt.Errorf("delete student attendance: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrStudentNotFound) {
			return nil
		}
		return fmt.Errorf("delete student: %w", err)
	}

	return nil
}

func nextStudentID(students []domain.Student) domain.StudentID {
	used := make(map[int]struct{}, len(students))
	for _, student := range students {
		n, err := strconv.Atoi(string(student.ID))
		if err != nil || n <= 0 {
			continue
		}
		used[n] = struct{}{}
	}

	for i := 1; ; i++ {
		if _, ok := used[i]; !ok {
			return domain.StudentID(strconv.Itoa(i))
		}
	}
}

func sameRollNumber(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

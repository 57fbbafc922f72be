package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type StudentID string

type Student struct {
	ID         StudentID
	RollNumber string
	Name       string
}

func (s Student) Validate() error {
	if strings.TrimSpace(string(s.ID)) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(s.RollNumber) == "" {
		return fmt.Errorf("roll number is required")
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("name is required")
	}

	return nil
}

func (s *Student) Normalize() {
	if s == nil {
		return
	}

	s.ID = StudentID(strings.TrimSpace(string(s.ID)))
	s.RollNumber = strings.TrimSpace(s.RollNumber)
	s.Name = strings.TrimSpace(s.Name)
}

// SortStudents orders numeric ids numerically and everything else lexically after them.
func SortStudents(students []Student) {
	sort.SliceStable(students, func(i, j int) bool {
		left, leftErr := strconv.Atoi(string(students[i].ID))
		right, rightErr := strconv.Atoi(string(students[j].ID))
		switch {
		case leftErr == nil && rightErr == nil:
			return left < right
		case leftErr == nil:
			return true
		case rightErr == nil:
			return false
		default:
			return students[i].ID < students[j].ID
		}
	})
}

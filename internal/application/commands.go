package application

import (
	"strings"

	"github.com/bnema/attendance-cli/internal/domain"
)

type CommitPolicy string

const (
	CommitPolicyBatch        CommitPolicy = "batch"
	CommitPolicyPerDetection CommitPolicy = "per_detection"
)

func (p CommitPolicy) Valid() bool {
	switch p {
	case CommitPolicyBatch, CommitPolicyPerDetection:
		return true
	default:
		return false
	}
}

type StartSessionCommand struct {
	ClassID string `json:"class_id" validate:"required,max=64"`
	Subject string `json:"subject" validate:"required,max=128"`
}

func (c *StartSessionCommand) normalize() {
	c.ClassID = strings.TrimSpace(c.ClassID)
	c.Subject = strings.TrimSpace(c.Subject)
}

type AddStudentCommand struct {
	ID         domain.StudentID `json:"id"`
	RollNumber string           `json:"roll_number" validate:"required,max=32"`
	Name       string           `json:"name" validate:"required,max=128"`
}

func (c *AddStudentCommand) normalize() {
	c.ID = domain.StudentID(strings.TrimSpace(string(c.ID)))
	c.RollNumber = strings.TrimSpace(c.RollNumber)
	c.Name = strings.TrimSpace(c.Name)
}

type UpdateStudentCommand struct {
	ID         domain.StudentID `json:"id" validate:"required"`
	RollNumber string           `json:"roll_number" validate:"omitempty,max=32"`
	Name       string           `json:"name" validate:"omitempty,max=128"`
}

func (c *UpdateStudentCommand) normalize() {
	c.ID = domain.StudentID(strings.TrimSpace(string(c.ID)))
	c.RollNumber = strings.TrimSpace(c.RollNumber)
	c.Name = strings.TrimSpace(c.Name)
}

type MarkAttendanceCommand struct {
	Name   string        `json:"name" validate:"required"`
	Status domain.Status `json:"status" validate:"omitempty,oneof=present partial absent"`
}

func (c *MarkAttendanceCommand) normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Status = domain.Status(strings.ToLower(strings.TrimSpace(string(c.Status))))
	if c.Status == "" {
		c.Status = domain.StatusPresent
	}
}

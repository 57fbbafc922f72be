package domain

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

type Status string

const (
	StatusPresent Status = "present"
	StatusPartial Status = "partial"
	StatusAbsent  Status = "absent"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusPartial, StatusAbsent:
		return true
	default:
		return false
	}
}

func (s Status) Label() string {
	switch s {
	case StatusPresent:
		return "Present"
	case StatusPartial:
		return "Partial"
	case StatusAbsent:
		return "Absent"
	default:
		return string(s)
	}
}

func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", fmt.Errorf("unsupported attendance status %q", raw)
	}

	return status, nil
}

type Record struct {
	StudentID  StudentID
	Date       string
	Status     Status
	RecordedAt time.Time
}

func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

func ValidateDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("invalid attendance date %q", date)
	}

	return nil
}

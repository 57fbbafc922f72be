package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidSelection    = errors.New("invalid class or subject selection")
	ErrDeviceUnavailable   = errors.New("capture device unavailable")
	ErrDeviceLost          = errors.New("capture device lost")
	ErrCaptureReleased     = errors.New("capture handle released")
	ErrFrameTimeout        = errors.New("frame timeout")
	ErrRecognizerTimeout   = errors.New("recognizer timeout")
	ErrAlreadyActive       = errors.New("session already active")
	ErrSessionNotActive    = errors.New("session not active")
	ErrStudentNotFound     = errors.New("student not found")
	ErrDuplicateRollNumber = errors.New("roll number already enrolled")
)

// PartialCommitError reports which per-student writes of a batch commit failed.
// Records that were written stay written.
type PartialCommitError struct {
	Date      string
	Succeeded []StudentID
	Failed    map[StudentID]error
}

func (e *PartialCommitError) Error() string {
	failed := e.FailedIDs()
	ids := make([]string, 0, len(failed))
	for _, id := range failed {
		ids = append(ids, string(id))
	}

	return fmt.Sprintf("partial attendance commit for %s: %d written, %d failed (%s)",
		e.Date, len(e.Succeeded), len(failed), strings.Join(ids, ", "))
}

func (e *PartialCommitError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failed))
	for _, id := range e.FailedIDs() {
		errs = append(errs, e.Failed[id])
	}

	return errs
}

func (e *PartialCommitError) FailedIDs() []StudentID {
	ids := make([]StudentID, 0, len(e.Failed))
	for id := range e.Failed {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

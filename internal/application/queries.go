package application

import (
	"time"

	"github.com/bnema/attendance-cli/internal/domain"
)

type DayEntry struct {
	Student    domain.Student
	Status     domain.Status
	Recorded   bool
	RecordedAt time.Time
}

type RecentEntry struct {
	Record      domain.Record
	StudentName string
}

type StopReason string

const (
	StopReasonStopped    StopReason = "stopped"
	StopReasonDeviceLost StopReason = "device_lost"
)

type StopResult struct {
	Session      domain.Session
	Reason       StopReason
	Recognitions []domain.Recognition
	Records      map[domain.StudentID]domain.Record
	Stats        EngineStats
}

type EngineStats struct {
	Ticks              int
	Frames             int
	FrameErrors        int
	RecognizerTimeouts int
	RecognizerErrors   int
	Accepted           int
	Rejected           int
	Duplicates         int
	Unenrolled         int
	LiveWrites         int
	LiveWriteErrors    int
}

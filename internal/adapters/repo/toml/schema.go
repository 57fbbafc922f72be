package toml

import "fmt"

const (
	currentStudentsSchemaVersion   = 1
	currentAttendanceSchemaVersion = 1
	currentSessionsSchemaVersion   = 1
)

func checkVersion(kind string, version, current int) error {
	if version > current {
		return fmt.Errorf("unsupported %s schema version %d (current %d)", kind, version, current)
	}

	return nil
}

type studentsFileSchema struct {
	Version  int             `toml:"version"`
	Students []studentSchema `toml:"students"`
}

func (s *studentsFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentStudentsSchemaVersion
	}
}

func (s studentsFileSchema) validateVersion() error {
	return checkVersion("students", s.Version, currentStudentsSchemaVersion)
}

type studentSchema struct {
	ID         string `toml:"id"`
	RollNumber string `toml:"roll_number"`
	Name       string `toml:"name"`
}

type attendanceFileSchema struct {
	Version int            `toml:"version"`
	NextSeq int64          `toml:"next_seq"`
	Records []recordSchema `toml:"records"`
}

func (s *attendanceFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentAttendanceSchemaVersion
	}
	if s.NextSeq == 0 {
		s.NextSeq = int64(len(s.Records)) + 1
	}
}

func (s attendanceFileSchema) validateVersion() error {
	return checkVersion("attendance", s.Version, currentAttendanceSchemaVersion)
}

type recordSchema struct {
	Seq        int64  `toml:"seq"`
	StudentID  string `toml:"student_id"`
	Date       string `toml:"date"`
	Status     string `toml:"status"`
	RecordedAt string `toml:"recorded_at"`
}

type sessionsFileSchema struct {
	Version  int             `toml:"version"`
	Sessions []sessionSchema `toml:"sessions"`
}

func (s *sessionsFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSessionsSchemaVersion
	}
}

func (s sessionsFileSchema) validateVersion() error {
	return checkVersion("sessions", s.Version, currentSessionsSchemaVersion)
}

type sessionSchema struct {
	ID           string              `toml:"id"`
	ClassID      string              `toml:"class_id"`
	Subject      string              `toml:"subject"`
	StartedAt    string              `toml:"started_at"`
	EndedAt      string              `toml:"ended_at"`
	Present      int                 `toml:"present"`
	Absent       int                 `toml:"absent"`
	CommitError  string              `toml:"commit_error,omitempty"`
	Recognitions []recognitionSchema `toml:"recognitions,omitempty"`
}

type recognitionSchema struct {
	Identity   string  `toml:"identity"`
	Confidence float64 `toml:"confidence"`
	ObservedAt string  `toml:"observed_at"`
}

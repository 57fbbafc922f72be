package toml

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/bnema/attendance-cli/internal/ports"
	"github.com/spf13/viper"
)

const (
	attendancePathKey  = "attendance.path"
	attendanceFileName = "attendance.toml"
	sessionsPathKey    = "sessions.path"
	sessionsFileName   = "sessions.toml"
)

// AttendanceRepository appends every write; readers see the latest write per
// student and day.
type AttendanceRepository struct {
	path  string
	mu    *sync.RWMutex
	clock ports.Clock
}

var _ ports.AttendanceStore = (*AttendanceRepository)(nil)

func NewAttendanceRepository(cfg *viper.Viper, clock ports.Clock) (*AttendanceRepository, error) {
	path, err := resolvePath(cfg, attendancePathKey, attendanceFileName)
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &AttendanceRepository{path: path, mu: lockForPath(path), clock: clock}, nil
}

func (r *AttendanceRepository) WriteAttendance(ctx context.Context, id domain.StudentID, date string, status domain.Status) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := domain.ValidateDate(date); err != nil {
		return err
	}
	if !status.Valid() {
		return fmt.Errorf("unsupported attendance status %q", status)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	file.Records = append(file.Records, recordSchema{
		Seq:        file.NextSeq,
		StudentID:  string(id),
		Date:       date,
		Status:     string(status),
		RecordedAt: formatTime(r.clock.Now()),
	})
	file.NextSeq++

	if err := ctx.Err(); err != nil {
		return err
	}

	return writeTOMLFile(r.path, file)
}

func (r *AttendanceRepository) ListByDate(ctx context.Context, date string) ([]domain.Record, error) {
	return r.list(ctx, func(entry recordSchema) bool { return entry.Date == date }, 0, false)
}

func (r *AttendanceRepository) ListRecent(ctx context.Context, limit int) ([]domain.Record, error) {
	return r.list(ctx, nil, limit, true)
}

func (r *AttendanceRepository) ListAll(ctx context.Context) ([]domain.Record, error) {
	return r.list(ctx, nil, 0, false)
}

func (r *AttendanceRepository) DeleteByStudent(ctx context.Context, id domain.StudentID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	kept := file.Records[:0]
	for _, entry := range file.Records {
		if entry.StudentID != string(id) {
			kept = append(kept, entry)
		}
	}
	file.Records = kept

	return writeTOMLFile(r.path, file)
}

func (r *AttendanceRepository) list(ctx context.Context, keep func(recordSchema) bool, limit int, newestFirst bool) ([]domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	entries := make([]recordSchema, 0, len(file.Records))
	for _, entry := range file.Records {
		if keep == nil || keep(entry) {
			entries = append(entries, entry)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if newestFirst {
			return entries[i].Seq > entries[j].Seq
		}
		return entries[i].Seq < entries[j].Seq
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	records := make([]domain.Record, 0, len(entries))
	for _, entry := range entries {
		records = append(records, fromRecordSchema(entry))
	}

	return records, nil
}

func (r *AttendanceRepository) readSchema() (attendanceFileSchema, error) {
	var file attendanceFileSchema
	if err := readTOMLFile(r.path, "attendance", &file); err != nil {
		return attendanceFileSchema{}, err
	}
	if err := file.validateVersion(); err != nil {
		return attendanceFileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func fromRecordSchema(entry recordSchema) domain.Record {
	return domain.Record{
		StudentID:  domain.StudentID(entry.StudentID),
		Date:       entry.Date,
		Status:     domain.Status(entry.Status),
		RecordedAt: parseTime(entry.RecordedAt),
	}
}

// SessionRepository archives finished sessions in sessions.toml.
type SessionRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.SessionArchive = (*SessionRepository)(nil)

func NewSessionRepository(cfg *viper.Viper) (*SessionRepository, error) {
	path, err := resolvePath(cfg, sessionsPathKey, sessionsFileName)
	if err != nil {
		return nil, err
	}

	return &SessionRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *SessionRepository) Save(ctx context.Context, record domain.SessionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSessionSchema(record)
	updated := false
	for i := range file.Sessions {
		if file.Sessions[i].ID == encoded.ID {
			file.Sessions[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Sessions = append(file.Sessions, encoded)
	}

	return writeTOMLFile(r.path, file)
}

// List returns archived sessions, most recently ended first. A non-positive
// limit returns all of them.
func (r *SessionRepository) List(ctx context.Context, limit int) ([]domain.SessionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	sessions := make([]domain.SessionRecord, 0, len(file.Sessions))
	for _, entry := range file.Sessions {
		sessions = append(sessions, fromSessionSchema(entry))
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].EndedAt.After(sessions[j].EndedAt)
	})
	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}

	return sessions, nil
}

func (r *SessionRepository) readSchema() (sessionsFileSchema, error) {
	var file sessionsFileSchema
	if err := readTOMLFile(r.path, "sessions", &file); err != nil {
		return sessionsFileSchema{}, err
	}
	if err := file.validateVersion(); err != nil {
		return sessionsFileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func toSessionSchema(record domain.SessionRecord) sessionSchema {
	recognitions := make([]recognitionSchema, 0, len(record.Recognitions))
	for _, recognition := range record.Recognitions {
		recognitions = append(recognitions, recognitionSchema{
			Identity:   recognition.Identity,
			Confidence: recognition.Confidence,
			ObservedAt: formatTime(recognition.ObservedAt),
		})
	}

	return sessionSchema{
		ID:           record.ID,
		ClassID:      record.ClassID,
		Subject:      record.Subject,
		StartedAt:    formatTime(record.StartedAt),
		EndedAt:      formatTime(record.EndedAt),
		Present:      record.Present,
		Absent:       record.Absent,
		CommitError:  record.CommitError,
		Recognitions: recognitions,
	}
}

func fromSessionSchema(entry sessionSchema) domain.SessionRecord {
	var recognitions []domain.Recognition
	for _, recognition := range entry.Recognitions {
		recognitions = append(recognitions, domain.Recognition{
			Identity:   recognition.Identity,
			Confidence: recognition.Confidence,
			ObservedAt: parseTime(recognition.ObservedAt),
		})
	}

	return domain.SessionRecord{
		ID:           entry.ID,
		ClassID:      entry.ClassID,
		Subject:      entry.Subject,
		StartedAt:    parseTime(entry.StartedAt),
		EndedAt:      parseTime(entry.EndedAt),
		Recognitions: recognitions,
		Present:      entry.Present,
		Absent:       entry.Absent,
		CommitError:  entry.CommitError,
	}
}

// Package sqlite persists the roster, attendance records and the session archive
// in a single SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/attendance-cli/internal/adapters/repo/sqlite/migrations"
	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/bnema/attendance-cli/internal/platform/sqlitemigrate"
	"github.com/bnema/attendance-cli/internal/ports"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const dsnPragmas = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=synchronous(NORMAL)"

type Store struct {
	db    *sql.DB
	clock ports.Clock
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens the database at path, creating its directory, and applies the
// embedded migrations.
func Open(ctx context.Context, path string, clock ports.Clock) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o700); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	db, err := sql.Open("sqlite", cleanPath+dsnPragmas)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(ctx, db, migrations.FS, ""); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db, clock: clock}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Students() *StudentStore {
	return &StudentStore{db: s.db}
}

func (s *Store) Attendance() *AttendanceStore {
	return &AttendanceStore{db: s.db, clock: s.clock}
}

func (s *Store) Sessions() *SessionStore {
	return &SessionStore{db: s.db}
}

type StudentStore struct {
	db *sql.DB
}

var _ ports.StudentRepository = (*StudentStore)(nil)

func (s *StudentStore) ListStudents(ctx context.Context) ([]domain.Student, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, roll_number, name FROM students`)
	if err != nil {
		return nil, fmt.Errorf("query students: %w", err)
	}
	defer rows.Close()

	var students []domain.Student
	for rows.Next() {
		var student domain.Student
		var id string
		if err := rows.Scan(&id, &student.RollNumber, &student.Name); err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		student.ID = domain.StudentID(id)
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}
	domain.SortStudents(students)

	return students, nil
}

func (s *StudentStore) GetByID(ctx context.Context, id domain.StudentID) (domain.Student, error) {
	var student domain.Student
	err := s.db.QueryRowContext(ctx,
		`SELECT roll_number, name FROM students WHERE id = ?`, string(id),
	).Scan(&student.RollNumber, &student.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Student{}, domain.ErrStudentNotFound
	}
	if err != nil {
		return domain.Student{}, fmt.Errorf("get student: %w", err)
	}
	student.ID = id

	return student, nil
}

func (s *StudentStore) Save(ctx context.Context, student domain.Student) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	student.Normalize()
	if err := student.Validate(); err != nil {
		return fmt.Errorf("validate student: %w", err)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO students (id, roll_number, name) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET roll_number = excluded.roll_number, name = excluded.name`,
		string(student.ID), student.RollNumber, student.Name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateRollNumber, student.RollNumber)
		}
		return fmt.Errorf("save student: %w", err)
	}

	return nil
}

func (s *StudentStore) Delete(ctx context.Context, id domain.StudentID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM students WHERE id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if affected == 0 {
		return domain.ErrStudentNotFound
	}

	return nil
}

// AttendanceStore appends every write; the newest row per student and day wins.
type AttendanceStore struct {
	db    *sql.DB
	clock ports.Clock
}

var _ ports.AttendanceStore = (*AttendanceStore)(nil)

func (s *AttendanceStore) WriteAttendance(ctx context.Context, id domain.StudentID, date string, status domain.Status) error {
	if err := domain.ValidateDate(date); err != nil {
		return err
	}
	if !status.Valid() {
		return fmt.Errorf("unsupported attendance status %q", status)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO attendance (student_id, date, status, recorded_at) VALUES (?, ?, ?, ?)`,
		string(id), date, string(status), toMillis(s.clock.Now()),
	)
	if err != nil {
		return fmt.Errorf("insert attendance: %w", err)
	}

	return nil
}

func (s *AttendanceStore) ListByDate(ctx context.Context, date string) ([]domain.Record, error) {
	return s.query(ctx, `SELECT student_id, date, status, recorded_at FROM attendance WHERE date = ? ORDER BY id`, date)
}

func (s *AttendanceStore) ListRecent(ctx context.Context, limit int) ([]domain.Record, error) {
	if limit <= 0 {
		limit = -1
	}
	return s.query(ctx, `SELECT student_id, date, status, recorded_at FROM attendance ORDER BY id DESC LIMIT ?`, limit)
}

func (s *AttendanceStore) ListAll(ctx context.Context) ([]domain.Record, error) {
	return s.query(ctx, `SELECT student_id, date, status, recorded_at FROM attendance ORDER BY id`)
}

func (s *AttendanceStore) DeleteByStudent(ctx context.Context, id domain.StudentID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM attendance WHERE student_id = ?`, string(id)); err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}

	return nil
}

func (s *AttendanceStore) query(ctx context.Context, query string, args ...any) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attendance: %w", err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		var (
			id, status string
			recordedAt int64
			record     domain.Record
		)
		if err := rows.Scan(&id, &record.Date, &status, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		record.StudentID = domain.StudentID(id)
		record.Status = domain.Status(status)
		record.RecordedAt = fromMillis(recordedAt)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendance: %w", err)
	}

	return records, nil
}

type SessionStore struct {
	db *sql.DB
}

var _ ports.SessionArchive = (*SessionStore)(nil)

func (s *SessionStore) Save(ctx context.Context, record domain.SessionRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin session transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (id, class_id, subject, started_at, ended_at, present, absent, commit_error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   class_id = excluded.class_id,
		   subject = excluded.subject,
		   started_at = excluded.started_at,
		   ended_at = excluded.ended_at,
		   present = excluded.present,
		   absent = excluded.absent,
		   commit_error = excluded.commit_error`,
		record.ID, record.ClassID, record.Subject,
		toMillis(record.StartedAt), toMillis(record.EndedAt),
		record.Present, record.Absent, record.CommitError,
	); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM session_recognitions WHERE session_id = ?`, record.ID); err != nil {
		return fmt.Errorf("clear session recognitions: %w", err)
	}
	for i, recognition := range record.Recognitions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO session_recognitions (session_id, position, identity, confidence, observed_at) VALUES (?, ?, ?, ?, ?)`,
			record.ID, i, recognition.Identity, recognition.Confidence, toMillis(recognition.ObservedAt),
		); err != nil {
			return fmt.Errorf("save session recognition: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session: %w", err)
	}

	return nil
}

func (s *SessionStore) List(ctx context.Context, limit int) ([]domain.SessionRecord, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, class_id, subject, started_at, ended_at, present, absent, commit_error
		 FROM sessions ORDER BY ended_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}

	var sessions []domain.SessionRecord
	for rows.Next() {
		var (
			record             domain.SessionRecord
			startedAt, endedAt int64
		)
		if err := rows.Scan(&record.ID, &record.ClassID, &record.Subject, &startedAt, &endedAt,
			&record.Present, &record.Absent, &record.CommitError); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan session: %w", err)
		}
		record.StartedAt = fromMillis(startedAt)
		record.EndedAt = fromMillis(endedAt)
		sessions = append(sessions, record)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	_ = rows.Close()

	for i := range sessions {
		recognitions, err := s.recognitions(ctx, sessions[i].ID)
		if err != nil {
			return nil, err
		}
		sessions[i].Recognitions = recognitions
	}

	return sessions, nil
}

func (s *SessionStore) recognitions(ctx context.Context, sessionID string) ([]domain.Recognition, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT identity, confidence, observed_at FROM session_recognitions WHERE session_id = ? ORDER BY position`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("query session recognitions: %w", err)
	}
	defer rows.Close()

	var recognitions []domain.Recognition
	for rows.Next() {
		var (
			recognition domain.Recognition
			observedAt  int64
		)
		if err := rows.Scan(&recognition.Identity, &recognition.Confidence, &observedAt); err != nil {
			return nil, fmt.Errorf("scan session recognition: %w", err)
		}
		recognition.ObservedAt = fromMillis(observedAt)
		recognitions = append(recognitions, recognition)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session recognitions: %w", err)
	}

	return recognitions, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}

	switch sqliteErr.Code() {
	case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	default:
		return false
	}
}

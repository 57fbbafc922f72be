package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/bnema/attendance-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	StoreDirKey      = "store.dir"
	studentsPathKey  = "students.path"
	storeFileMode    = 0o600
	storeDirMode     = 0o700
	defaultStoreDir  = ".attendance"
	studentsFileName = "students.toml"
	tempFilePattern  = ".attendance-*.toml.tmp"
	timeLayout       = time.RFC3339Nano
)

// Repository keeps the roster in a single students.toml file.
type Repository struct {
	path string
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.StudentRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	path, err := resolvePath(cfg, studentsPathKey, studentsFileName)
	if err != nil {
		return nil, err
	}

	return &Repository{path: path, mu: lockForPath(path)}, nil
}

func (r *Repository) Save(ctx context.Context, student domain.Student) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	student.Normalize()
	if err := student.Validate(); err != nil {
		return fmt.Errorf("validate student: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toStudentSchema(student)
	updated := false
	for i := range file.Students {
		if file.Students[i].ID == encoded.ID {
			file.Students[i] = encoded
			updated = true
			break
		}
	}

	if !updated {
		file.Students = append(file.Students, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return writeTOMLFile(r.path, file)
}

func (r *Repository) GetByID(ctx context.Context, id domain.StudentID) (domain.Student, error) {
	if err := ctx.Err(); err != nil {
		return domain.Student{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Student{}, err
	}

	for _, entry := range file.Students {
		if entry.ID == string(id) {
			return fromStudentSchema(entry), nil
		}
	}

	return domain.Student{}, domain.ErrStudentNotFound
}

func (r *Repository) ListStudents(ctx context.Context) ([]domain.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	students := make([]domain.Student, 0, len(file.Students))
	for _, entry := range file.Students {
		students = append(students, fromStudentSchema(entry))
	}
	domain.SortStudents(students)

	return students, nil
}

func (r *Repository) Delete(ctx context.Context, id domain.StudentID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	kept := file.Students[:0]
	found := false
	for _, entry := range file.Students {
		if entry.ID == string(id) {
			found = true
			continue
		}
		kept = append(kept, entry)
	}
	if !found {
		return domain.ErrStudentNotFound
	}
	file.Students = kept

	return writeTOMLFile(r.path, file)
}

func (r *Repository) readSchema() (studentsFileSchema, error) {
	var file studentsFileSchema
	if err := readTOMLFile(r.path, "students", &file); err != nil {
		return studentsFileSchema{}, err
	}
	if err := file.validateVersion(); err != nil {
		return studentsFileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

// resolvePath returns the configured path for key, falling back to fileName
// inside the store directory.
func resolvePath(cfg *viper.Viper, key, fileName string) (string, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path := cfg.GetString(key)
	if path == "" {
		dir := cfg.GetString(StoreDirKey)
		if dir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("resolve home directory: %w", err)
			}
			dir = filepath.Join(homeDir, defaultStoreDir)
		}
		path = filepath.Join(dir, fileName)
	}

	return normalizePath(path)
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve store path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

// readTOMLFile leaves out untouched when the file does not exist yet.
func readTOMLFile(path, kind string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s file: %w", kind, err)
	}

	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s file: %w", kind, err)
	}

	return nil
}

func writeTOMLFile(path string, file any) error {
	if err := os.MkdirAll(filepath.Dir(path), storeDirMode); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tempFile.Chmod(storeFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace file: %w", err)
	}

	cleanup = false

	return nil
}

func toStudentSchema(student domain.Student) studentSchema {
	return studentSchema{
		ID:         string(student.ID),
		RollNumber: student.RollNumber,
		Name:       student.Name,
	}
}

func fromStudentSchema(entry studentSchema) domain.Student {
	return domain.Student{
		ID:         domain.StudentID(entry.ID),
		RollNumber: entry.RollNumber,
		Name:       entry.Name,
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(timeLayout)
}

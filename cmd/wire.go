package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	capturesim "github.com/bnema/attendance-cli/internal/adapters/capture/sim"
	recognizersim "github.com/bnema/attendance-cli/internal/adapters/recognizer/sim"
	sqlitestore "github.com/bnema/attendance-cli/internal/adapters/repo/sqlite"
	tomlrepo "github.com/bnema/attendance-cli/internal/adapters/repo/toml"
	"github.com/bnema/attendance-cli/internal/application"
	"github.com/bnema/attendance-cli/internal/config"
	"github.com/bnema/attendance-cli/internal/platform/logging"
	"github.com/bnema/attendance-cli/internal/platform/otel"
	"github.com/bnema/attendance-cli/internal/ports"
	"github.com/bnema/attendance-cli/internal/version"
	"github.com/spf13/viper"
)

const (
	serviceName    = "attendance-cli"
	sqliteFileName = "attendance.db"
)

type app struct {
	cfg        config.Config
	logger     *slog.Logger
	roster     *application.RosterService
	attendance *application.AttendanceService
	engine     *application.SessionEngine
	engineCfg  application.EngineConfig
	engineDeps application.SessionEngineDeps
	now        func() time.Time
	closers    []func(context.Context) error
}

type stores struct {
	students   ports.StudentRepository
	attendance ports.AttendanceStore
	sessions   ports.SessionArchive
	close      func(context.Context) error
}

func wireApp() (*app, error) {
	ctx := context.Background()

	v := viper.New()
	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	shutdownTracing, err := otel.Setup(ctx, otel.Settings{
		Endpoint:    cfg.Telemetry.Endpoint,
		Enabled:     cfg.Telemetry.Enabled,
		ServiceName: serviceName,
		Version:     version.Version,
	})
	if err != nil {
		return nil, fmt.Errorf("wire tracing: %w", err)
	}

	clock := ports.SystemClock{}
	st, err := wireStores(ctx, v, cfg.Store, clock)
	if err != nil {
		return nil, errors.Join(err, shutdownTracing(ctx))
	}

	device, recognizer, err := wireCapture(cfg, st.students)
	if err != nil {
		return nil, errors.Join(err, st.close(ctx), shutdownTracing(ctx))
	}

	engineCfg := application.EngineConfig{
		Interval:          cfg.Session.Interval,
		AcceptThreshold:   cfg.Session.AcceptThreshold,
		FrameTimeout:      cfg.Session.FrameTimeout,
		RecognizerTimeout: cfg.Session.RecognizerTimeout,
		CommitPolicy:      application.CommitPolicy(cfg.Session.CommitPolicy),
		CommitConcurrency: cfg.Commit.MaxConcurrency,
	}
	engineDeps := application.SessionEngineDeps{
		Roster:     st.students,
		Device:     device,
		Recognizer: recognizer,
		Store:      st.attendance,
		Archive:    st.sessions,
		Clock:      clock,
		Logger:     logger,
	}

	return &app{
		cfg:        cfg,
		logger:     logger,
		roster:     application.NewRosterService(st.students, st.attendance),
		attendance: application.NewAttendanceService(st.students, st.attendance, st.sessions, clock),
		engine:     application.NewSessionEngine(engineCfg, engineDeps),
		engineCfg:  engineCfg,
		engineDeps: engineDeps,
		now:        time.Now,
		closers:    []func(context.Context) error{st.close, shutdownTracing},
	}, nil
}

func wireStores(ctx context.Context, v *viper.Viper, cfg config.Store, clock ports.Clock) (stores, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		db, err := sqlitestore.Open(ctx, filepath.Join(cfg.Dir, sqliteFileName), clock)
		if err != nil {
			return stores{}, fmt.Errorf("wire sqlite store: %w", err)
		}
		return stores{
			students:   db.Students(),
			attendance: db.Attendance(),
			sessions:   db.Sessions(),
			close:      func(context.Context) error { return db.Close() },
		}, nil
	default:
		students, err := tomlrepo.NewRepository(v)
		if err != nil {
			return stores{}, fmt.Errorf("wire student repository: %w", err)
		}
		attendance, err := tomlrepo.NewAttendanceRepository(v, clock)
		if err != nil {
			return stores{}, fmt.Errorf("wire attendance repository: %w", err)
		}
		sessions, err := tomlrepo.NewSessionRepository(v)
		if err != nil {
			return stores{}, fmt.Errorf("wire session repository: %w", err)
		}
		return stores{
			students:   students,
			attendance: attendance,
			sessions:   sessions,
			close:      func(context.Context) error { return nil },
		}, nil
	}
}

func wireCapture(cfg config.Config, roster ports.RosterProvider) (ports.CaptureDevice, ports.Recognizer, error) {
	device := capturesim.NewDevice(capturesim.Config{
		Width:      cfg.Capture.Width,
		Height:     cfg.Capture.Height,
		FrameDelay: cfg.Capture.FrameDelay,
	}, ports.SystemClock{})

	recognizer, err := recognizersim.New(recognizersim.Config{
		MinConfidence: cfg.Recognizer.MinConfidence,
		MaxConfidence: cfg.Recognizer.MaxConfidence,
		MissRatio:     cfg.Recognizer.MissRatio,
		Seed:          cfg.Recognizer.Seed,
		Latency:       cfg.Recognizer.Latency,
	}, roster)
	if err != nil {
		return nil, nil, fmt.Errorf("wire recognizer: %w", err)
	}

	return device, recognizer, nil
}

// sessionEngine returns the configured engine, or a fresh one sharing its
// dependencies when the commit policy is overridden for a single run.
func (a *app) sessionEngine(policy string) (*application.SessionEngine, error) {
	if policy == "" || application.CommitPolicy(policy) == a.engineCfg.CommitPolicy {
		return a.engine, nil
	}

	commitPolicy := application.CommitPolicy(policy)
	if !commitPolicy.Valid() {
		return nil, fmt.Errorf("unsupported commit policy %q", policy)
	}

	cfg := a.engineCfg
	cfg.CommitPolicy = commitPolicy
	return application.NewSessionEngine(cfg, a.engineDeps), nil
}

func (a *app) close(ctx context.Context) error {
	var errs []error
	for _, closeFn := range a.closers {
		errs = append(errs, closeFn(ctx))
	}
	a.closers = nil
	return errors.Join(errs...)
}

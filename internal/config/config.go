package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	storeDir   = ".attendance"

	BackendTOML   = "toml"
	BackendSQLite = "sqlite"
	DeviceSim     = "sim"
)

// Env holds the environment overrides. They win over the config file.
type Env struct {
	ConfigFile    string `env:"ATT_CONFIG"`
	StoreBackend  string `env:"ATT_STORE_BACKEND"`
	StoreDir      string `env:"ATT_STORE_DIR"`
	CaptureDevice string `env:"ATT_CAPTURE_DEVICE"`
	LogLevel      string `env:"ATT_LOG_LEVEL" envDefault:"info"`
	LogFormat     string `env:"ATT_LOG_FORMAT" envDefault:"text"`
	OTelEndpoint  string `env:"ATT_OTEL_ENDPOINT"`
	OTelEnabled   bool   `env:"ATT_OTEL_ENABLED" envDefault:"true"`
}

type Config struct {
	Session    Session
	Commit     Commit
	Store      Store
	Capture    Capture
	Recognizer Recognizer
	Log        Log
	Telemetry  Telemetry
}

type Session struct {
	Interval          time.Duration
	AcceptThreshold   float64
	FrameTimeout      time.Duration
	RecognizerTimeout time.Duration
	CommitPolicy      string
}

type Commit struct {
	MaxConcurrency int
}

type Store struct {
	Backend string
	Dir     string
}

type Capture struct {
	Device     string
	Width      int
	Height     int
	FrameDelay time.Duration
}

type Recognizer struct {
	MinConfidence float64
	MaxConfidence float64
	MissRatio     float64
	Seed          uint64
	Latency       time.Duration
}

type Log struct {
	Level  string
	Format string
}

type Telemetry struct {
	Endpoint string
	Enabled  bool
}

func setDefaults(v *viper.Viper, homeDir string) {
	v.SetDefault("session.interval", "2s")
	v.SetDefault("session.accept_threshold", 80.0)
	v.SetDefault("session.frame_timeout", "1s")
	v.SetDefault("session.recognizer_timeout", "1500ms")
	v.SetDefault("session.commit_policy", "batch")
	v.SetDefault("commit.max_concurrency", 4)
	v.SetDefault("store.backend", BackendTOML)
	v.SetDefault("store.dir", filepath.Join(homeDir, storeDir))
	v.SetDefault("capture.device", DeviceSim)
	v.SetDefault("capture.width", 640)
	v.SetDefault("capture.height", 480)
	v.SetDefault("capture.frame_delay", "0s")
	v.SetDefault("recognizer.min_confidence", 80.0)
	v.SetDefault("recognizer.max_confidence", 100.0)
	v.SetDefault("recognizer.miss_ratio", 0.2)
	v.SetDefault("recognizer.seed", 0)
	v.SetDefault("recognizer.latency", "0s")
}

// Load reads $HOME/.attendance/config.toml (or the file named by ATT_CONFIG) into
// v, applies environment overrides on top and returns the resolved settings.
// The same viper instance is what the storage adapters read their paths from.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		return Config{}, errors.New("viper instance is required")
	}

	var overrides Env
	if err := env.Parse(&overrides); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}

	setDefaults(v, homeDir)

	if overrides.ConfigFile != "" {
		v.SetConfigFile(overrides.ConfigFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(filepath.Join(homeDir, storeDir))
	}

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	applyOverrides(v, overrides)

	cfg := Config{
		Session: Session{
			Interval:          v.GetDuration("session.interval"),
			AcceptThreshold:   v.GetFloat64("session.accept_threshold"),
			FrameTimeout:      v.GetDuration("session.frame_timeout"),
			RecognizerTimeout: v.GetDuration("session.recognizer_timeout"),
			CommitPolicy:      strings.ToLower(strings.TrimSpace(v.GetString("session.commit_policy"))),
		},
		Commit: Commit{MaxConcurrency: v.GetInt("commit.max_concurrency")},
		Store: Store{
			Backend: strings.ToLower(strings.TrimSpace(v.GetString("store.backend"))),
			Dir:     v.GetString("store.dir"),
		},
		Capture: Capture{
			Device:     strings.ToLower(strings.TrimSpace(v.GetString("capture.device"))),
			Width:      v.GetInt("capture.width"),
			Height:     v.GetInt("capture.height"),
			FrameDelay: v.GetDuration("capture.frame_delay"),
		},
		Recognizer: Recognizer{
			MinConfidence: v.GetFloat64("recognizer.min_confidence"),
			MaxConfidence: v.GetFloat64("recognizer.max_confidence"),
			MissRatio:     v.GetFloat64("recognizer.miss_ratio"),
			Seed:          v.GetUint64("recognizer.seed"),
			Latency:       v.GetDuration("recognizer.latency"),
		},
		Log:       Log{Level: overrides.LogLevel, Format: overrides.LogFormat},
		Telemetry: Telemetry{Endpoint: overrides.OTelEndpoint, Enabled: overrides.OTelEnabled},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func applyOverrides(v *viper.Viper, overrides Env) {
	if overrides.StoreBackend != "" {
		v.Set("store.backend", overrides.StoreBackend)
	}
	if overrides.StoreDir != "" {
		v.Set("store.dir", overrides.StoreDir)
	}
	if overrides.CaptureDevice != "" {
		v.Set("capture.device", overrides.CaptureDevice)
	}
}

func (c Config) Validate() error {
	var errs []error

	if c.Session.Interval <= 0 {
		errs = append(errs, fmt.Errorf("session.interval must be positive"))
	}
	if c.Session.AcceptThreshold < 0 || c.Session.AcceptThreshold > 100 {
		errs = append(errs, fmt.Errorf("session.accept_threshold must be within [0, 100]"))
	}
	if c.Session.FrameTimeout <= 0 {
		errs = append(errs, fmt.Errorf("session.frame_timeout must be positive"))
	}
	if c.Session.RecognizerTimeout <= 0 {
		errs = append(errs, fmt.Errorf("session.recognizer_timeout must be positive"))
	}
	switch c.Session.CommitPolicy {
	case "batch", "per_detection":
	default:
		errs = append(errs, fmt.Errorf("unsupported session.commit_policy %q", c.Session.CommitPolicy))
	}
	if c.Commit.MaxConcurrency <= 0 {
		errs = append(errs, fmt.Errorf("commit.max_concurrency must be positive"))
	}
	switch c.Store.Backend {
	case BackendTOML, BackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("unsupported store.backend %q", c.Store.Backend))
	}
	if strings.TrimSpace(c.Store.Dir) == "" {
		errs = append(errs, fmt.Errorf("store.dir is empty"))
	}
	if c.Capture.Device != DeviceSim {
		errs = append(errs, fmt.Errorf("unsupported capture.device %q", c.Capture.Device))
	}

	return errors.Join(errs...)
}

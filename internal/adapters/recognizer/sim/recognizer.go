// Package sim provides a stand-in recognizer that reports random enrolled
// students with a random confidence.
package sim

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/bnema/attendance-cli/internal/ports"
)

const (
	DefaultMinConfidence = 80.0
	DefaultMaxConfidence = 100.0
	DefaultMissRatio     = 0.2
)

type Config struct {
	MinConfidence float64
	MaxConfidence float64
	// MissRatio is the share of frames in which no face is found.
	MissRatio float64
	// Seed makes the sequence reproducible. Zero picks a time based seed.
	Seed    uint64
	Latency time.Duration
}

type Recognizer struct {
	cfg    Config
	roster ports.RosterProvider

	mu  sync.Mutex
	rng *rand.Rand
}

var _ ports.Recognizer = (*Recognizer)(nil)

func New(cfg Config, roster ports.RosterProvider) (*Recognizer, error) {
	if cfg.MinConfidence == 0 && cfg.MaxConfidence == 0 {
		cfg.MinConfidence = DefaultMinConfidence
		cfg.MaxConfidence = DefaultMaxConfidence
	}
	if cfg.MinConfidence < 0 || cfg.MaxConfidence > 100 || cfg.MinConfidence > cfg.MaxConfidence {
		return nil, fmt.Errorf("confidence range [%v, %v] must lie within [0, 100]", cfg.MinConfidence, cfg.MaxConfidence)
	}
	if cfg.MissRatio < 0 || cfg.MissRatio > 1 {
		return nil, fmt.Errorf("miss ratio %v must lie within [0, 1]", cfg.MissRatio)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return &Recognizer{
		cfg:    cfg,
		roster: roster,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}, nil
}

func (r *Recognizer) Recognize(ctx context.Context, frame domain.Frame) ([]domain.Detection, error) {
	if r.cfg.Latency > 0 {
		timer := time.NewTimer(r.cfg.Latency)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
	}

	students, err := r.roster.ListStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students for frame %d: %w", frame.Seq, err)
	}
	if len(students) == 0 {
		return nil, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.rng.Float64() < r.cfg.MissRatio {
		return nil, nil
	}

	student := students[r.rng.IntN(len(students))]
	confidence := r.cfg.MinConfidence + r.rng.Float64()*(r.cfg.MaxConfidence-r.cfg.MinConfidence)

	return []domain.Detection{{
		Identity:   student.Name,
		Confidence: math.Round(confidence*100) / 100,
	}}, nil
}

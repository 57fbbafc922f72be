// Package sim provides a synthetic capture device that produces numbered frames
// at a fixed pace.
package sim

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/bnema/attendance-cli/internal/ports"
	"github.com/google/uuid"
)

const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

type Config struct {
	Width      int
	Height     int
	FrameDelay time.Duration
	// Unavailable makes every Acquire fail.
	Unavailable bool
	// LoseAfter reports the device lost once this many frames were produced. Zero disables it.
	LoseAfter int
}

type Device struct {
	cfg   Config
	clock ports.Clock

	mu       sync.Mutex
	acquired int
	released int
	active   *Handle
}

var _ ports.CaptureDevice = (*Device)(nil)

func NewDevice(cfg Config, clock ports.Clock) *Device {
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultHeight
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Device{cfg: cfg, clock: clock}
}

// Acquire hands out the device exclusively; a second Acquire fails until the
// first handle is released.
func (d *Device) Acquire(ctx context.Context) (ports.CaptureHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cfg.Unavailable {
		return nil, fmt.Errorf("%w: simulated camera disabled", domain.ErrDeviceUnavailable)
	}
	if d.active != nil {
		return nil, fmt.Errorf("%w: device busy", domain.ErrDeviceUnavailable)
	}

	d.acquired++
	d.active = &Handle{device: d}
	return d.active, nil
}

func (d *Device) Acquired() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.acquired
}

func (d *Device) Released() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.released
}

func (d *Device) release(h *Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.released++
	if d.active == h {
		d.active = nil
	}
}

type Handle struct {
	device *Device

	mu       sync.Mutex
	seq      uint64
	released bool
}

func (h *Handle) NextFrame(ctx context.Context) (domain.Frame, error) {
	if err := h.check(); err != nil {
		return domain.Frame{}, err
	}

	if delay := h.device.cfg.FrameDelay; delay > 0 {
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return domain.Frame{}, fmt.Errorf("%w: %w", domain.ErrFrameTimeout, ctx.Err())
			}
			return domain.Frame{}, ctx.Err()
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.released {
		return domain.Frame{}, domain.ErrCaptureReleased
	}
	if lose := h.device.cfg.LoseAfter; lose > 0 && h.seq >= uint64(lose) {
		return domain.Frame{}, domain.ErrDeviceLost
	}

	h.seq++
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, h.seq)

	return domain.Frame{
		Seq:        h.seq,
		CapturedAt: h.device.clock.Now(),
		Width:      h.device.cfg.Width,
		Height:     h.device.cfg.Height,
		Data:       data,
		TraceID:    uuid.NewString(),
	}, nil
}

func (h *Handle) check() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.released {
		return domain.ErrCaptureReleased
	}
	return nil
}

func (h *Handle) Release() error {
	h.mu.Lock()
	if h.released {
		h.mu.Unlock()
		return nil
	}
	h.released = true
	h.mu.Unlock()

	h.device.release(h)
	return nil
}

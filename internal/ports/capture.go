package ports

import (
	"context"

	"github.com/bnema/attendance-cli/internal/domain"
)

// CaptureDevice hands out exclusive handles on a frame source.
type CaptureDevice interface {
	Acquire(ctx context.Context) (CaptureHandle, error)
}

// CaptureHandle must be released on every exit path. Release is idempotent and
// NextFrame fails with domain.ErrCaptureReleased afterwards.
type CaptureHandle interface {
	NextFrame(ctx context.Context) (domain.Frame, error)
	Release() error
}

// Recognizer returns zero or more candidate identities for a frame. An empty
// result means no face was found.
type Recognizer interface {
	Recognize(ctx context.Context, frame domain.Frame) ([]domain.Detection, error)
}

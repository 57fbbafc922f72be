package domain

import (
	"strings"
	"time"
)

// DefaultAcceptThreshold is the confidence a detection must exceed to be recorded.
const DefaultAcceptThreshold = 80.0

type Frame struct {
	Seq        uint64
	CapturedAt time.Time
	Width      int
	Height     int
	Data       []byte
	TraceID    string
}

type Detection struct {
	Identity   string
	Confidence float64
}

func (d Detection) Accepted(threshold float64) bool {
	return strings.TrimSpace(d.Identity) != "" && d.Confidence > threshold
}

type Recognition struct {
	Identity   string
	Confidence float64
	ObservedAt time.Time
}

package application

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/bnema/attendance-cli/internal/application"

func tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

package otel

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSetupWithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), Settings{Enabled: true, ServiceName: "att"})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetupDisabledIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), Settings{Endpoint: "http://127.0.0.1:4318", ServiceName: "att"})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetupRegistersProvider(t *testing.T) {
	shutdown, err := Setup(context.Background(), Settings{Endpoint: "http://127.0.0.1:4318", Enabled: true, ServiceName: "att", Version: "test"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = shutdown(ctx)
}

package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"mesa-console/internal/config/configs"
)

func TestSetupNoopWhenDisabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), configs.Otel{Enabled: false, Endpoint: "http://localhost:4318"})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetupNoopWhenEndpointEmpty(t *testing.T) {
	shutdown, err := Setup(context.Background(), configs.Otel{Enabled: true})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, shutdown(ctx))
}

func TestSetupCreatesProvider(t *testing.T) {
	// Non-routable address: nothing is exported, shutdown still returns.
	shutdown, err := Setup(context.Background(), configs.Otel{
		Enabled:     true,
		Endpoint:    "http://192.0.2.1:4318",
		ServiceName: "mesa-console-test",
	})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

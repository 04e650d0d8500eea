package httpserver

import (
	"context"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type noRoutes struct{}

func (noRoutes) Register(_ *echo.Echo) {}

func TestRegisterBuildsRouterAndTracer(t *testing.T) {
	e, tp, err := Register(zap.NewNop(), noRoutes{})
	require.NoError(t, err)
	require.NotNil(t, e)
	require.NotNil(t, tp)

	require.NoError(t, tp.Shutdown(context.Background()))
}

func TestRegisterAndStartStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- RegisterAndStart(ctx, zap.NewNop(), "127.0.0.1:0", noRoutes{})
	}()

	// Let the listener come up before asking it to drain.
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err, "cancellation is a clean shutdown, not an error")
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down after cancellation")
	}
}

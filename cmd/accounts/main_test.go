package main

import (
	"context"
	"sync"
	"testing"
	"time"

	"accounts/internal/delivery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

type recordingDelivery struct {
	served chan struct{}
}

func (d *recordingDelivery) Serve(context.Context) error {
	close(d.served)

	return nil
}

func TestStartServer_ServesAfterEarlierHooks(t *testing.T) {
	lc := fxtest.NewLifecycle(t)

	var (
		mu        sync.Mutex
		storeDone bool
	)
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			storeDone = true

			return nil
		},
	})

	d := &recordingDelivery{served: make(chan struct{})}
	startServer(context.Background(), startServerParams{
		Lifecycle:  lc,
		Deliveries: []delivery.Delivery{d},
	})

	select {
	case <-d.served:
		t.Fatal("delivery served before the lifecycle started")
	case <-time.After(50 * time.Millisecond):
	}

	lc.RequireStart()
	defer lc.RequireStop()

	select {
	case <-d.served:
	case <-time.After(time.Second):
		require.FailNow(t, "delivery was not served after start")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, storeDone)
}

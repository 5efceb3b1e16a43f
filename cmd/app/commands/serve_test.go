package commands

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeService blocks in Start until Shutdown is called or startErr is returned.
type fakeService struct {
	startErr  error
	stopped   chan struct{}
	shutdowns atomic.Int32
}

func newFakeService() *fakeService {
	return &fakeService{stopped: make(chan struct{})}
}

func (s *fakeService) Start(context.Context) error {
	if s.startErr != nil {
		return s.startErr
	}
	<-s.stopped
	return nil
}

func (s *fakeService) Shutdown(context.Context) error {
	if s.shutdowns.Add(1) == 1 {
		close(s.stopped)
	}
	return nil
}

type fakeRunner struct {
	ran atomic.Bool
	err error
}

func (r *fakeRunner) Run(ctx context.Context) error {
	r.ran.Store(true)
	if r.err != nil {
		return r.err
	}
	<-ctx.Done()
	return nil
}

func TestRunServices(t *testing.T) {
	t.Run("stops-on-context-cancel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		service := newFakeService()
		runner := &fakeRunner{}

		done := make(chan error, 1)
		go func() {
			done <- RunServices(ctx, discardLogger(), time.Second, []Service{service}, runner)
		}()

		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("RunServices did not return")
		}
		assert.True(t, runner.ran.Load())
		assert.Equal(t, int32(1), service.shutdowns.Load())
	})

	t.Run("runner-failure-shuts-services-down", func(t *testing.T) {
		service := newFakeService()
		runner := &fakeRunner{err: errors.New("clipboard gone")}

		err := RunServices(context.Background(), discardLogger(), time.Second, []Service{service}, runner)

		require.EqualError(t, err, "clipboard gone")
		assert.Equal(t, int32(1), service.shutdowns.Load())
	})

	t.Run("start-failure", func(t *testing.T) {
		service := newFakeService()
		service.startErr = errors.New("address in use")

		err := RunServices(context.Background(), discardLogger(), time.Second, []Service{service})

		require.EqualError(t, err, "address in use")
	})
}

func TestRunWatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	runner := &fakeRunner{}

	done := make(chan error, 1)
	go func() {
		done <- RunWatch(ctx, runner, nil, discardLogger(), time.Second)
	}()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("RunWatch did not return")
	}
}

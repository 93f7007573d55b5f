package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunOnce_RunsRegisteredJobs(t *testing.T) {
	s := NewScheduler()
	ran := 0
	s.Register(Job{Name: "first", Interval: time.Hour, Run: func(ctx context.Context) error {
		ran++
		return nil
	}})
	s.Register(Job{Name: "second", Interval: time.Hour, Run: func(ctx context.Context) error {
		ran++
		return nil
	}})

	require.NoError(t, s.RunOnce(context.Background()))
	assert.Equal(t, 2, ran)
}

func TestRunOnce_StopsAtFirstError(t *testing.T) {
	s := NewScheduler()
	boom := errors.New("boom")
	laterRan := false
	s.Register(Job{Name: "failing", Interval: time.Hour, Run: func(ctx context.Context) error {
		return boom
	}})
	s.Register(Job{Name: "later", Interval: time.Hour, Run: func(ctx context.Context) error {
		laterRan = true
		return nil
	}})

	assert.ErrorIs(t, s.RunOnce(context.Background()), boom)
	assert.False(t, laterRan)
}

func TestStartStop_RunsImmediately(t *testing.T) {
	s := NewScheduler()
	ran := make(chan struct{}, 1)
	s.Register(Job{Name: "tick", Interval: time.Hour, Run: func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}})

	s.Start()
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
}

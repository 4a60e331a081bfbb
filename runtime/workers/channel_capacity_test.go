package workers

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestChannelCapacityWorker_Sample(t *testing.T) {
	req := require.New(t)
	events := make(chan int, 4)
	events <- 1
	events <- 2
	worker := NewChannelCapacityWorker(slog.Default(), []NamedChannel{
		{Name: "events", Channel: events},
		{Name: "not a channel", Channel: 42},
	}, time.Hour, 50)

	samples := worker.Sample()

	req.Equal([]ChannelCapacity{{Name: "events", Capacity: 4, Length: 2}}, samples)
	req.Equal(samples, worker.Latest())
}

func TestChannelCapacityWorker_Run_Stops_With_Context(t *testing.T) {
	req := require.New(t)
	events := make(chan int, 1)
	worker := NewChannelCapacityWorker(slog.Default(), []NamedChannel{{Name: "events", Channel: events}}, 5*time.Millisecond, 80)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()
	req.Eventually(func() bool { return len(worker.Latest()) == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	req.NoError(<-done)
}

func TestHeartbeatWorker_Samples_Process(t *testing.T) {
	req := require.New(t)
	worker := NewHeartbeatWorker(slog.Default(), time.Hour)
	_, ok := worker.Latest()
	req.False(ok)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	req.Eventually(func() bool {
		_, ok := worker.Latest()
		return ok
	}, 2*time.Second, 10*time.Millisecond)
	stats, _ := worker.Latest()
	req.Positive(stats.PID)
	req.Positive(stats.RSS)
	cancel()
	req.NoError(<-done)
}

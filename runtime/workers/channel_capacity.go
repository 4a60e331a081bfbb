package workers

import (
	"context"
	"log/slog"
	"reflect"
	"sync"
	"time"
)

type NamedChannel struct {
	Name    string
	Channel any
}

// ChannelCapacity is one sample of a buffered channel.
type ChannelCapacity struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Length   int    `json:"length"`
}

// ChannelCapacityWorker periodically samples the length and capacity of
// buffered channels and warns when one is filled above threshold percent.
// Reading len and cap is non-blocking, so this won't interfere with the
// goroutines using the channels.
type ChannelCapacityWorker struct {
	log            *slog.Logger
	channels       []NamedChannel
	metricInterval time.Duration
	threshold      int

	mu     sync.Mutex
	latest []ChannelCapacity
}

func NewChannelCapacityWorker(log *slog.Logger, channels []NamedChannel,
	metricInterval time.Duration, threshold int) *ChannelCapacityWorker {
	return &ChannelCapacityWorker{
		log:            log,
		channels:       channels,
		metricInterval: metricInterval,
		threshold:      threshold,
	}
}

func (w *ChannelCapacityWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping channel sampling")
			return nil
		case <-ticker.C:
			w.Sample()
		}
	}
}

// Sample reads every channel once and stores the result.
func (w *ChannelCapacityWorker) Sample() []ChannelCapacity {
	samples := make([]ChannelCapacity, 0, len(w.channels))
	for _, nc := range w.channels {
		v := reflect.ValueOf(nc.Channel)
		if v.Kind() != reflect.Chan {
			w.log.Error("Provided object is not a channel", "name", nc.Name)
			continue
		}
		sample := ChannelCapacity{Name: nc.Name, Capacity: v.Cap(), Length: v.Len()}
		if sample.Capacity > 0 && sample.Length*100 >= sample.Capacity*w.threshold {
			w.log.Warn("Channel is filling up", "name", sample.Name, "length", sample.Length, "capacity", sample.Capacity)
		}
		samples = append(samples, sample)
	}

	w.mu.Lock()
	w.latest = samples
	w.mu.Unlock()
	return samples
}

// Latest returns the last samples taken.
func (w *ChannelCapacityWorker) Latest() []ChannelCapacity {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]ChannelCapacity(nil), w.latest...)
}

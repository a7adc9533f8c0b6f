package events

import (
	"context"
	"fmt"

	"tracking/internal/core/ports"

	"golang.org/x/sync/errgroup"
)

// FanoutPublisher delivers each event to all sinks concurrently.
type FanoutPublisher struct {
	sinks []namedSink
}

type namedSink struct {
	name      string
	publisher ports.OrderEventPublisher
}

// NewFanoutPublisher creates a publisher with no sinks.
func NewFanoutPublisher() *FanoutPublisher {
	return &FanoutPublisher{}
}

// With registers a sink. Nil publishers are ignored so optional sinks
// (for example a broker that is not configured) can be passed unconditionally.
func (f *FanoutPublisher) With(name string, publisher ports.OrderEventPublisher) *FanoutPublisher {
	if publisher != nil {
		f.sinks = append(f.sinks, namedSink{name: name, publisher: publisher})
	}
	return f
}

// Publish waits for every sink and returns the first failure, labelled with
// the sink name. A failing sink does not stop the others.
func (f *FanoutPublisher) Publish(ctx context.Context, event ports.OrderEvent) error {
	var g errgroup.Group

	for _, sink := range f.sinks {
		g.Go(func() error {
			if err := sink.publisher.Publish(ctx, event); err != nil {
				return fmt.Errorf("%s: %w", sink.name, err)
			}
			return nil
		})
	}

	return g.Wait()
}

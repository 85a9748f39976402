package stream

import "context"

// StreamConsumer pulls evaluation requests off a stream, runs them through
// the pipeline and publishes results. Start blocks until the context is
// canceled.
type StreamConsumer interface {
	Setup(ctx context.Context) error
	Start(ctx context.Context) error
	Stop() error
}

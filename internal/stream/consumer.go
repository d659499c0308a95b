package stream

import "context"

// StreamConsumer pulls analysis requests from a message stream and
// feeds them through the engine.
type StreamConsumer interface {
	Setup(ctx context.Context) error
	Start(ctx context.Context) error
	Stop() error
}

package telemetry

import (
	"context"
	"time"
)

// Instrumentation records the storefront's domain metrics.
type Instrumentation interface {
	RecordIntent(ctx context.Context, intent string, err error)
	RecordAssistantExchange(ctx context.Context, duration time.Duration, err error)
	Shutdown(ctx context.Context) error
}

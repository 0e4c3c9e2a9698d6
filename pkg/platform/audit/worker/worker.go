// Package worker drains audit events from a channel into a store, keeping
// background processing testable without wiring queue implementations.
package worker

import (
	"context"
	"log/slog"

	audit "fundsight/pkg/platform/audit"
)

// Worker consumes audit events from an inbox and persists them. Store
// failures are logged and skipped; the trail is best-effort and must never
// wedge the drain loop.
type Worker struct {
	store  audit.Store
	inbox  <-chan audit.Event
	logger *slog.Logger
}

func NewWorker(store audit.Store, inbox <-chan audit.Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run drains the inbox until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "append audit event", "action", event.Action, "error", err)
			}
		}
	}
}

package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes client-core events to an slog.Logger. Useful for
// development when you want to see session events in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given
// slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("category", event.Category.String()),
	}

	if event.ConnectionID != "" {
		attrs = append(attrs, slog.String("conn_id", event.ConnectionID))
	}
	if event.EndpointName != "" {
		attrs = append(attrs, slog.String("endpoint", event.EndpointName))
	}
	if event.ServerAddr != "" {
		attrs = append(attrs, slog.String("server", event.ServerAddr))
	}

	switch {
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Operation != nil:
		attrs = append(attrs,
			slog.String("operation", event.Operation.Operation),
			slog.Uint64("object", uint64(event.Operation.ObjectID)),
			slog.Uint64("instance", uint64(event.Operation.InstanceID)),
			slog.String("status", event.Operation.Status),
		)
	case event.Credential != nil:
		attrs = append(attrs,
			slog.String("action", event.Credential.Action),
			slog.String("role", event.Credential.Role),
			slog.Bool("succeeded", event.Credential.Succeeded),
		)
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "session", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)

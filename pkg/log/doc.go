// Package log captures structured client-core events for debugging
// and audit.
//
// Events are produced by the session layer (state transitions,
// lifecycle notifications, credential commits) and by the adapter
// (failed operations). Applications receive them through the Logger
// interface; NewSlogAdapter bridges events into a standard
// slog.Logger, and EncodeEvent serializes them as compact CBOR with
// integer keys for file capture.
package log

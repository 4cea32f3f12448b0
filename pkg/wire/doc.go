// Package wire defines the protocol-facing vocabulary of the client core.
//
// It holds the CoAP-like status codes returned to the protocol engine,
// the tagged handler result kinds and their deterministic mapping to
// status codes, the operation bitmask and target descriptor passed to
// resource handlers, and the minimal-length integer codec used as the
// canonical binary representation of integer resource values.
//
// # Status Codes
//
// Status values use the CoAP code-point layout (class<<5 | detail), so
// StatusContent is 2.05, StatusChanged is 2.04 and so on. The protocol
// engine forwards them onto the wire unchanged.
//
// # Handler Results
//
// Resource handlers never return status codes directly. They return a
// ResultKind out of a closed set (completed, async, and the error
// kinds); the interaction layer maps a kind plus the operation that
// produced it to a Status via ResultKind.Status.
package wire

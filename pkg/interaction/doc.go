// Package interaction adapts generic protocol calls onto per-resource
// handlers.
//
// The protocol engine invokes one entry point per verb (Read, Write,
// Execute, Create, Delete, Discover), each addressing an object
// instance and a set of resource ids. The adapter resolves the target
// against the registry, fans the call out to the resource handlers in
// registry order, converts between the protocol's typed values and the
// handlers' byte-buffer contract, and maps handler result kinds to
// CoAP-like status codes.
//
// An empty resource-id set on a read means "the whole object": the
// adapter enumerates every registered resource in registry order. A
// multi-resource call is all-or-nothing from the adapter's viewpoint;
// it stops at the first resource that does not succeed and reports
// that resource's status.
package interaction

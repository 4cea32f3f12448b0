// Package security defines the narrow provider interface through which
// the client core consumes credential storage and hash primitives, and
// the in-RAM staging store for credentials acquired during bootstrap.
//
// Credentials are staged per server role (bootstrap or device
// management) as the security-object write handlers run, and committed
// to the provider all-or-nothing once the bootstrap exchange succeeds.
// A failed commit leaves the staging buffers untouched so the exchange
// can be retried; a successful commit zeroes them so no partial
// credentials linger in memory.
package security

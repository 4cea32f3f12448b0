// Package objects provides the built-in object catalogue: the
// Security (0), Server (1) and Device (3) objects with their resource
// handlers.
//
// The security handlers implement the reserved instance convention
// (instance 0 addresses the bootstrap server, instance 1 the
// device-management server) and stage written credentials into the
// session's credential store for an all-or-nothing commit once the
// bootstrap exchange completes.
package objects

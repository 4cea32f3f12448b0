// Package session drives the client session lifecycle: transport
// connection setup and teardown, the bootstrap/registration state
// machine, the periodic protocol-engine step timer, and translation of
// engine lifecycle events into application status callbacks.
//
// The Manager is single-owner by design. The step callback, the
// receive callback, and the public Connect/Disconnect/Notify entry
// points are one logical flow of control; callers embedding the
// Manager in a multi-threaded host must serialize access themselves,
// for example by running it on one event-loop goroutine or behind an
// explicit mutex.
package session

// Package transport defines the narrow socket surface the session
// layer consumes, plus a plain UDP implementation of it.
//
// The wire-level CoAP/DTLS engine lives outside the client core; the
// session layer only needs to open a socket, send datagrams, receive
// them through a callback and close the socket again. Platform ports
// supply their own Conn implementation when UDP sockets are not
// available directly.
package transport

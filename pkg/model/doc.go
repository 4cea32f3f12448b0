// Package model implements the object/resource data model and the
// runtime registry built from it.
//
// The model follows the Object > Instance > Resource hierarchy: an
// object groups resources (Security, Server, Device, ...), an object
// may have one or more instances, and a resource is a single
// addressable value or action within an instance.
//
// Object and resource descriptors are static tables, typically
// compiled in. At registration time the Registry merges the built-in
// table with an optional caller-supplied table into runtime nodes it
// exclusively owns; the nodes are released as one batch by
// UnregisterAll.
//
// Resource handlers are optional per capability: a resource with no
// read handler must never be read, and the interaction layer rejects
// such calls rather than dereferencing a nil handler.
package model

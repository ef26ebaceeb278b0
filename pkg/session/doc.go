// Package session provides the request-scoped, lazily-loaded, deferred-write
// session layer.
//
// Each request gets its own Session built from the signed session_id cookie.
// No backend I/O happens until the first read or write; content then lives
// in memory for the request's remainder and is flushed to the store at most
// once, at request end, only if something changed. A cookie referencing an
// unknown id yields an empty session; an undecodable stored blob is an
// internal failure. Reset rotates the id to defeat session fixation on
// privilege changes.
//
// Two concurrent requests presenting the same cookie each hold an
// independent snapshot; the last flush wins. The service accepts this
// last-writer-wins race instead of optimistic versioning.
package session

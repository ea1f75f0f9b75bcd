// Package store persists the usage ledger between service runs.
//
// # Backends
//
// Two durable backends are provided. FileBackend writes the whole ledger
// as a single compressed blob (see the codec subpackage) with atomic
// replace semantics, and is the default. SQLiteBackend keeps one row per
// application and suits installs that want to inspect state with sqlite3.
// MemoryBackend backs tests.
//
// # Failure Model
//
// A backend with no prior state loads an empty ledger; that is a normal
// first run, not an error. State that exists but cannot be decoded is
// surfaced with an error matching codec.ErrCorruptState so the caller can
// apply its reset policy. Save always replaces state wholesale.
package store

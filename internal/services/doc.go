// Package services implements every ContactPro operation on top of the
// contact store, the undo/redo history, the query engine, the codec and the
// persistence gateway.
//
// A ContactService is the explicit session context handed to whichever
// renderer drives the application (REPL, TUI or HTTP API). All methods are
// safe for concurrent use; operations are serialised so each one runs to
// completion before the next starts.
//
// Every mutating operation validates its input, snapshots the collection
// into the history, mutates the store and then persists the whole
// collection through the gateway. Undo and redo replace the collection
// without taking a new snapshot.
package services

// Package state holds the canonical state graph of the emulated e-paper
// device and its durable persistence.
//
// The package provides three cooperating pieces:
//
//   - Store: the single in-process source of truth (variables, templates,
//     bitmaps, settings) with atomic-per-call typed operations
//   - Repository / FileRepository: full-snapshot persistence as one JSON
//     document on disk
//   - Clock: the background ticker refreshing the reserved clock variables
//
// # Consistency model
//
// Mutations are atomic at operation granularity; concurrent writers race
// with last-write-wins semantics. Every mutation is followed synchronously
// by a full-snapshot save, so the persisted document is always a consistent
// cross-collection snapshot; partial writes of individual collections
// never occur. Persistence failures are logged and never propagated: the
// in-memory store stays authoritative and keeps serving.
//
// # Lifecycle
//
//	repo := state.NewFileRepository(cfg.Storage.DataFile)
//	store := state.NewStore(repo)
//	store.SetLogger(log)
//	store.Load() // persisted snapshot, or write out the default
package state

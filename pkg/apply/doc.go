// Package apply provides the reference patch applier: an in-memory live
// tree that replays patch sequences emitted by the differ.
//
// Tree exists to close the round-trip law in tests - rendering a Tree that
// replayed Diff(old, new) over old must equal rendering new byte for byte -
// and to give integrators a replayable mirror of whatever their real
// backend displays. Every operation is strict: unknown targets, duplicate
// identities, out-of-range indices, and kind mismatches are errors, never
// silent repairs. A Tree that returned an error holds undefined state and
// should be rebuilt from a known snapshot.
package apply

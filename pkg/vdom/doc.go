// Package vdom provides the virtual tree reconciliation engine for Arbor.
//
// A VNode tree is an immutable snapshot of a UI, rebuilt from scratch on
// every render pass. The Diff function compares two snapshots and returns
// the ordered patch sequence that transforms the first into the second;
// replaying those patches against a live mirror of the old tree yields
// exactly the new tree.
//
// # Core Types
//
// VNode is the tagged variant representing elements, text, raw HTML, and
// empty nodes. Attr covers both static attributes and event handlers; the
// handler form renders as a data-event-{name} attribute carrying an opaque
// dispatch token. Patch is one atomic or batched mutation instruction, and
// Applier is the replay boundary.
//
// # Identity
//
// Diffing matches nodes by ID, and attributes by name; attribute IDs churn
// on every build pass and never produce patches on their own. Because every
// build assigns fresh IDs, Align must copy identity forward from the
// previous tree before a new tree is diffed.
//
// # Reconciliation
//
// Keyed child lists reconcile by explicit key with a longest-increasing-
// subsequence strategy: children already in relative order stay put, so a
// two-element swap in a thousand-element list costs a constant number of
// structural patches instead of a thousand.
package vdom

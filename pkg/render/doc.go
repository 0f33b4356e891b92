// Package render serializes VNode trees to HTML.
//
// Rendering is independent of diffing and doubles as the correctness
// oracle: for any old and new tree, replaying Diff(old, new) against a live
// mirror of old and rendering the result must equal rendering new, byte for
// byte. Only the canonical (non-pretty, non-minified) form carries that
// guarantee.
//
// Elements serialize with their identity in a data-vid attribute and their
// key, when present, in data-key. Text nodes escape their content and carry
// identity in a <!--vid:ID--> marker comment; raw nodes carry the same
// marker but emit their content verbatim. Handlers render as
// data-event-{name} attributes holding the dispatch token.
//
// Serialization failures - malformed tags, attribute names, or identity
// tokens, and children under a void element - are returned as errors, never
// swallowed into malformed markup.
package render

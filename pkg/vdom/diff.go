package vdom

// Diff compares two VNode trees and returns the patches needed to transform
// prev into next. It is pure and synchronous: it never mutates either tree,
// performs no I/O, and independent calls may run concurrently.
//
// A nil prev is a first render and yields a single AddRoot. A nil next
// removes the previous root. Patch order is deterministic: a node's own
// attribute patches precede its descendants' patches, and siblings are
// processed left to right.
func Diff(prev, next *VNode) []Patch {
	var patches []Patch
	switch {
	case prev == nil && next == nil:
		// Nothing to do
	case prev == nil:
		patches = append(patches, NewAddRootPatch(next))
	case next == nil:
		patches = append(patches, NewRemoveNodePatch(prev.ID))
	default:
		diffNode(prev, next, &patches, true)
	}
	return patches
}

// DiffBatched diffs and merges contiguous same-kind single-child patches
// into multi-child batch patches. Replaying the batched sequence yields the
// same tree as replaying the unbatched one.
func DiffBatched(prev, next *VNode) []Patch {
	return Batch(Diff(prev, next))
}

// diffNode recursively compares nodes and appends patches.
// isRoot selects AddRoot over ReplaceNode when a subtree must be replaced
// and there is no parent to address.
func diffNode(prev, next *VNode, patches *[]Patch, isRoot bool) {
	// Different kinds - replace, no recursion into the replaced subtree
	if prev.Kind != next.Kind {
		replaceNode(prev, next, patches, isRoot)
		return
	}

	switch prev.Kind {
	case KindText:
		if prev.ID != next.ID || prev.Text != next.Text {
			*patches = append(*patches, NewSetTextPatch(prev.ID, next.ID, next.Text))
		}

	case KindRaw:
		if prev.ID != next.ID || prev.Text != next.Text {
			*patches = append(*patches, NewSetRawPatch(prev.ID, next.ID, next.Text))
		}

	case KindEmpty:
		// An empty node carries no content; an ID change is an identity
		// change and keeps the applier's ID index exact.
		if prev.ID != next.ID {
			replaceNode(prev, next, patches, isRoot)
		}

	case KindElement:
		// Elements diff in place only when tag and ID both match.
		if prev.Tag != next.Tag || prev.ID != next.ID {
			replaceNode(prev, next, patches, isRoot)
			return
		}
		diffAttrs(prev, next, patches)
		diffChildren(prev, next, patches)
	}
}

// replaceNode emits the patch that swaps an entire subtree.
func replaceNode(prev, next *VNode, patches *[]Patch, isRoot bool) {
	if isRoot {
		*patches = append(*patches, NewAddRootPatch(next))
		return
	}
	*patches = append(*patches, NewReplaceNodePatch(prev.ID, next))
}

// attrKey is the diffing identity of an attribute: its kind and name.
// Attribute IDs churn on every build pass and never participate.
type attrKey struct {
	kind AttrKind
	name string
}

// diffAttrs compares the attribute lists of one element pair.
//
// One pass over the old attributes in order emits removals and in-place
// updates, then one pass over the new attributes in order emits additions.
// A handler whose dispatch token changed rebinds with SetHandler, never a
// remove/add pair. Duplicate names within one list resolve
// first-occurrence-wins; later duplicates are ignored.
func diffAttrs(prev, next *VNode, patches *[]Patch) {
	if len(prev.Attrs) == 0 && len(next.Attrs) == 0 {
		return
	}

	nextByKey := make(map[attrKey]*Attr, len(next.Attrs))
	for i := range next.Attrs {
		key := attrKey{next.Attrs[i].Kind, next.Attrs[i].Name}
		if _, dup := nextByKey[key]; !dup {
			nextByKey[key] = &next.Attrs[i]
		}
	}
	prevSeen := make(map[attrKey]bool, len(prev.Attrs))

	// Removals and updates, old order
	for i := range prev.Attrs {
		old := &prev.Attrs[i]
		key := attrKey{old.Kind, old.Name}
		if prevSeen[key] {
			continue
		}
		prevSeen[key] = true

		cur, ok := nextByKey[key]
		if !ok {
			if old.Kind == AttrEvent {
				*patches = append(*patches, NewRemoveHandlerPatch(prev.ID, old.Name))
			} else {
				*patches = append(*patches, NewRemoveAttrPatch(prev.ID, old.Name))
			}
			continue
		}

		// ID churn alone never produces a patch.
		if old.Kind == AttrEvent {
			if old.Value != cur.Value || old.HasRef() != cur.HasRef() {
				*patches = append(*patches, NewSetHandlerPatch(prev.ID, cur.Name, cur.Value, cur.HasRef()))
			}
		} else if old.Value != cur.Value {
			*patches = append(*patches, NewSetAttrPatch(prev.ID, cur.Name, cur.Value))
		}
	}

	// Additions, new order
	addSeen := make(map[attrKey]bool, len(next.Attrs))
	for i := range next.Attrs {
		cur := &next.Attrs[i]
		key := attrKey{cur.Kind, cur.Name}
		if addSeen[key] {
			continue
		}
		addSeen[key] = true
		if prevSeen[key] {
			continue
		}
		if cur.Kind == AttrEvent {
			*patches = append(*patches, NewAddHandlerPatch(prev.ID, *cur))
		} else {
			*patches = append(*patches, NewAddAttrPatch(prev.ID, *cur))
		}
	}
}

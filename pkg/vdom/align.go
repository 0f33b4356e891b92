package vdom

// Align copies identity tokens from a previous tree onto a freshly built
// tree by structural correspondence, so that Diff sees intended identity
// instead of the fresh IDs every build pass produces. Without this step
// every render pass would look like a total tree replacement.
//
// Align mutates next in place and must run before next is handed to Diff;
// prev is never modified. Correspondence rules:
//   - Nodes correspond when their kinds match (and, for elements, their
//     tags match). A corresponding node inherits the previous node's ID.
//   - Attributes correspond by (kind, name); a corresponding attribute
//     inherits the previous attribute's ID.
//   - Children pair up by explicit key when either list carries keys,
//     positionally otherwise. A duplicated key pairs its first occurrence
//     on each side only; unpaired children keep their fresh IDs.
func Align(prev, next *VNode) {
	if prev == nil || next == nil {
		return
	}
	if prev.Kind != next.Kind {
		return
	}
	if prev.Kind == KindElement && prev.Tag != next.Tag {
		return
	}

	next.ID = prev.ID

	if prev.Kind == KindElement {
		alignAttrs(prev.Attrs, next.Attrs)
		alignChildren(prev.Children, next.Children)
	}
}

// alignAttrs copies attribute IDs forward by (kind, name).
func alignAttrs(prev, next []Attr) {
	if len(prev) == 0 || len(next) == 0 {
		return
	}
	for i := range next {
		for j := range prev {
			if prev[j].Kind == next[i].Kind && prev[j].Name == next[i].Name {
				next[i].ID = prev[j].ID
				break
			}
		}
	}
}

// alignChildren pairs children by key when keys are present, by position
// otherwise, and recurses into each pair.
func alignChildren(prev, next []*VNode) {
	if hasExplicitKeys(prev) || hasExplicitKeys(next) {
		prevByKey := make(map[string]*VNode, len(prev))
		for _, child := range prev {
			key := child.MatchKey()
			if _, dup := prevByKey[key]; !dup {
				prevByKey[key] = child
			}
		}
		// Each previous child is claimed at most once, first occurrence
		// wins. Later duplicates of a key keep their fresh IDs so the diff
		// sees them as unmatched instead of colliding on one identity.
		for _, child := range next {
			if child.Key == "" {
				continue
			}
			if prevChild, ok := prevByKey[child.Key]; ok {
				delete(prevByKey, child.Key)
				Align(prevChild, child)
			}
		}
		return
	}

	n := len(prev)
	if len(next) < n {
		n = len(next)
	}
	for i := 0; i < n; i++ {
		Align(prev[i], next[i])
	}
}

// hasExplicitKeys returns true if any child carries an explicit Key.
func hasExplicitKeys(children []*VNode) bool {
	for _, child := range children {
		if child != nil && child.Key != "" {
			return true
		}
	}
	return false
}

package vdom

// diffChildren compares the child lists of one element pair. Keyed
// reconciliation triggers when any child in either list carries an explicit
// Key; otherwise children diff positionally.
func diffChildren(prev, next *VNode, patches *[]Patch) {
	if hasExplicitKeys(prev.Children) || hasExplicitKeys(next.Children) {
		diffKeyedChildren(prev, prev.Children, next.Children, patches)
		return
	}
	diffUnkeyedChildren(prev, prev.Children, next.Children, patches)
}

// diffUnkeyedChildren handles children without keys using positional
// matching. Shared indices diff recursively; trailing old children are
// removed; trailing new children are inserted.
func diffUnkeyedChildren(parent *VNode, prev, next []*VNode, patches *[]Patch) {
	shared := len(prev)
	if len(next) < shared {
		shared = len(next)
	}

	for i := 0; i < shared; i++ {
		diffNode(prev[i], next[i], patches, false)
	}
	for i := shared; i < len(prev); i++ {
		*patches = append(*patches, NewRemoveNodePatch(prev[i].ID))
	}
	for i := shared; i < len(next); i++ {
		*patches = append(*patches, NewInsertNodePatch(parent.ID, i, next[i]))
	}
}

// diffKeyedChildren reconciles keyed child lists with minimal relocation.
//
// Children match across the lists by key (explicit Key, node ID otherwise),
// first occurrence wins; later duplicates are ordinary unmatched children.
// Matched children whose old positions form the longest increasing
// subsequence in new order stay put and diff recursively in place. Every
// other child is removed from its old position and, when still wanted,
// reinserted at its new position carrying the new subtree as payload.
//
// All removals are emitted before all insertions, and insertions run left
// to right, so strictly sequential index-addressed replay reproduces the
// new order exactly. Cost is O(n log n) via patience-sorted LIS.
func diffKeyedChildren(parent *VNode, prev, next []*VNode, patches *[]Patch) {
	s := checkoutScratch()
	defer checkinScratch(s)

	// Key -> index maps, first occurrence wins.
	for i, child := range prev {
		key := child.MatchKey()
		if _, dup := s.prevIdx[key]; !dup {
			s.prevIdx[key] = i
		}
	}
	for j, child := range next {
		key := child.MatchKey()
		if _, dup := s.nextIdx[key]; !dup {
			s.nextIdx[key] = j
		}
	}

	// matchOf[j] is the old position of the matched counterpart of next[j],
	// or -1 when next[j] is new-only or a later duplicate.
	matchOf := s.grow(&s.matchOf, len(next))
	// matchedBy[i] is the new position that claimed prev[i], or -1.
	matchedBy := s.grow(&s.matchedBy, len(prev))
	for i := range matchedBy {
		matchedBy[i] = -1
	}
	for j, child := range next {
		matchOf[j] = -1
		key := child.MatchKey()
		if s.nextIdx[key] != j {
			continue
		}
		if i, ok := s.prevIdx[key]; ok {
			matchOf[j] = i
			matchedBy[i] = j
		}
	}

	// Old positions of the matched pairs, listed in new order, and the new
	// position each entry came from.
	s.oldPos = s.oldPos[:0]
	s.seqNext = s.seqNext[:0]
	for j, i := range matchOf {
		if i >= 0 {
			s.oldPos = append(s.oldPos, i)
			s.seqNext = append(s.seqNext, j)
		}
	}

	// stable[j] marks next positions whose counterpart needs no relocation.
	stable := s.growBool(&s.stable, len(next))
	for j := range stable {
		stable[j] = false
	}
	if len(s.oldPos) > 0 {
		keep := s.growBool(&s.keep, len(s.oldPos))
		longestIncreasing(s.oldPos, &s.tails, &s.links, keep)
		for m, kept := range keep {
			if kept {
				stable[s.seqNext[m]] = true
			}
		}
	}

	// Removals first, old order: unmatched old children, and matched
	// children leaving the stable run.
	for i, child := range prev {
		j := matchedBy[i]
		if j < 0 || !stable[j] {
			*patches = append(*patches, NewRemoveNodePatch(child.ID))
		}
	}

	// Then the new list left to right: stable pairs recurse in place,
	// everything else is inserted at its new position.
	for j, child := range next {
		if i := matchOf[j]; i >= 0 && stable[j] {
			diffNode(prev[i], child, patches, false)
			continue
		}
		*patches = append(*patches, NewInsertNodePatch(parent.ID, j, child))
	}
}

// longestIncreasing computes the longest strictly increasing subsequence of
// seq by patience sorting with binary search over tails, O(n log n).
// Positions on the subsequence are marked true in keep; tails and links are
// caller-owned work arrays.
func longestIncreasing(seq []int, tails, links *[]int, keep []bool) {
	t := (*tails)[:0]
	l := (*links)[:0]

	for m, v := range seq {
		// Binary search for the leftmost tail whose value is >= v.
		lo, hi := 0, len(t)
		for lo < hi {
			mid := (lo + hi) / 2
			if seq[t[mid]] < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo > 0 {
			l = append(l, t[lo-1])
		} else {
			l = append(l, -1)
		}
		if lo == len(t) {
			t = append(t, m)
		} else {
			t[lo] = m
		}
	}

	for m := range keep {
		keep[m] = false
	}
	if len(t) > 0 {
		for cur := t[len(t)-1]; cur >= 0; cur = l[cur] {
			keep[cur] = true
		}
	}

	*tails = t
	*links = l
}

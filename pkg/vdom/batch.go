package vdom

// Batch merges contiguous runs of same-kind single-child patches into
// multi-child batch patches: consecutive InsertNode patches against one
// parent at consecutive indices become one InsertNodes (or InsertTexts /
// InsertRaws when every payload in the run is a text / raw node), and
// consecutive RemoveNode patches become one RemoveNodes.
//
// Batching only reduces patch count; replaying the batched sequence yields
// exactly the tree the unbatched sequence yields. Runs of length one pass
// through untouched.
func Batch(patches []Patch) []Patch {
	if len(patches) < 2 {
		return patches
	}

	out := make([]Patch, 0, len(patches))
	for i := 0; i < len(patches); {
		switch patches[i].Op {
		case PatchInsertNode:
			run := insertRunLength(patches[i:])
			if run < 2 {
				out = append(out, patches[i])
				i++
				continue
			}
			out = append(out, mergeInsertRun(patches[i:i+run]))
			i += run

		case PatchRemoveNode:
			run := removeRunLength(patches[i:])
			if run < 2 {
				out = append(out, patches[i])
				i++
				continue
			}
			ids := make([]string, run)
			for k := 0; k < run; k++ {
				ids[k] = patches[i+k].NodeID
			}
			out = append(out, NewRemoveNodesPatch(ids))
			i += run

		default:
			out = append(out, patches[i])
			i++
		}
	}
	return out
}

// insertRunLength returns the length of the leading run of InsertNode
// patches sharing one parent at consecutive indices.
func insertRunLength(patches []Patch) int {
	first := patches[0]
	n := 1
	for n < len(patches) {
		p := patches[n]
		if p.Op != PatchInsertNode || p.ParentID != first.ParentID || p.Index != first.Index+n {
			break
		}
		n++
	}
	return n
}

// removeRunLength returns the length of the leading run of RemoveNode
// patches.
func removeRunLength(patches []Patch) int {
	n := 1
	for n < len(patches) && patches[n].Op == PatchRemoveNode {
		n++
	}
	return n
}

// mergeInsertRun folds an insert run into a single batch patch, using the
// compact text/raw forms when the payloads allow it.
func mergeInsertRun(run []Patch) Patch {
	allText := true
	allRaw := true
	for _, p := range run {
		if p.Node.Kind != KindText {
			allText = false
		}
		if p.Node.Kind != KindRaw {
			allRaw = false
		}
	}

	if allText || allRaw {
		texts := make([]TextContent, len(run))
		for k, p := range run {
			texts[k] = TextContent{ID: p.Node.ID, Value: p.Node.Text}
		}
		if allText {
			return NewInsertTextsPatch(run[0].ParentID, run[0].Index, texts)
		}
		return NewInsertRawsPatch(run[0].ParentID, run[0].Index, texts)
	}

	nodes := make([]*VNode, len(run))
	for k, p := range run {
		nodes[k] = p.Node
	}
	return NewInsertNodesPatch(run[0].ParentID, run[0].Index, nodes)
}

package vdom

import "fmt"

// Applier replays a patch sequence against some live representation of the
// tree. It exposes one operation per patch kind; every operation addresses
// nodes purely by ID and must be applied strictly in the order received.
//
// A patch referencing an ID the applier can no longer find is the applier's
// error to surface; the differ only guarantees correctness against the
// trees it was handed at the moment Diff was invoked.
type Applier interface {
	AddRoot(node *VNode) error
	ReplaceNode(nodeID string, node *VNode) error
	InsertNode(parentID string, index int, node *VNode) error
	RemoveNode(nodeID string) error
	SetText(nodeID, newID, value string) error
	SetRaw(nodeID, newID, value string) error
	AddAttr(nodeID string, attr Attr) error
	SetAttr(nodeID, name, value string) error
	RemoveAttr(nodeID, name string) error
	AddHandler(nodeID string, attr Attr) error
	SetHandler(nodeID, event, token string, hasRef bool) error
	RemoveHandler(nodeID, event string) error
	InsertNodes(parentID string, index int, nodes []*VNode) error
	RemoveNodes(nodeIDs []string) error
	InsertTexts(parentID string, index int, texts []TextContent) error
	InsertRaws(parentID string, index int, texts []TextContent) error
}

// Apply dispatches each patch to the applier in order, stopping at the
// first error.
func Apply(a Applier, patches []Patch) error {
	for i := range patches {
		if err := applyOne(a, &patches[i]); err != nil {
			return fmt.Errorf("apply %s: %w", patches[i].Op, err)
		}
	}
	return nil
}

func applyOne(a Applier, p *Patch) error {
	switch p.Op {
	case PatchAddRoot:
		return a.AddRoot(p.Node)
	case PatchReplaceNode:
		return a.ReplaceNode(p.NodeID, p.Node)
	case PatchInsertNode:
		return a.InsertNode(p.ParentID, p.Index, p.Node)
	case PatchRemoveNode:
		return a.RemoveNode(p.NodeID)
	case PatchSetText:
		return a.SetText(p.NodeID, p.NewID, p.Value)
	case PatchSetRaw:
		return a.SetRaw(p.NodeID, p.NewID, p.Value)
	case PatchAddAttr:
		return a.AddAttr(p.NodeID, p.Attr)
	case PatchSetAttr:
		return a.SetAttr(p.NodeID, p.Name, p.Value)
	case PatchRemoveAttr:
		return a.RemoveAttr(p.NodeID, p.Name)
	case PatchAddHandler:
		return a.AddHandler(p.NodeID, p.Attr)
	case PatchSetHandler:
		return a.SetHandler(p.NodeID, p.Name, p.Value, p.HasRef)
	case PatchRemoveHandler:
		return a.RemoveHandler(p.NodeID, p.Name)
	case PatchInsertNodes:
		return a.InsertNodes(p.ParentID, p.Index, p.Nodes)
	case PatchRemoveNodes:
		return a.RemoveNodes(p.NodeIDs)
	case PatchInsertTexts:
		return a.InsertTexts(p.ParentID, p.Index, p.Texts)
	case PatchInsertRaws:
		return a.InsertRaws(p.ParentID, p.Index, p.Texts)
	default:
		return fmt.Errorf("unknown patch op 0x%02X", uint8(p.Op))
	}
}

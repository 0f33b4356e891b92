package vdom

// PatchOp is the type of patch operation. Values are wire-stable; the
// binary codec in pkg/protocol writes them as-is.
type PatchOp uint8

const (
	PatchAddRoot       PatchOp = 0x01 // Install a new root tree
	PatchReplaceNode   PatchOp = 0x02 // Replace a subtree
	PatchInsertNode    PatchOp = 0x03 // Insert one child
	PatchRemoveNode    PatchOp = 0x04 // Remove one child
	PatchSetText       PatchOp = 0x05 // Update text content (and node ID)
	PatchSetRaw        PatchOp = 0x06 // Update raw HTML content (and node ID)
	PatchAddAttr       PatchOp = 0x07 // Add attribute
	PatchSetAttr       PatchOp = 0x08 // Update attribute value
	PatchRemoveAttr    PatchOp = 0x09 // Remove attribute
	PatchAddHandler    PatchOp = 0x0A // Add event handler
	PatchSetHandler    PatchOp = 0x0B // Rebind event handler
	PatchRemoveHandler PatchOp = 0x0C // Remove event handler
	PatchInsertNodes   PatchOp = 0x10 // Insert a run of children (batched)
	PatchRemoveNodes   PatchOp = 0x11 // Remove a run of children (batched)
	PatchInsertTexts   PatchOp = 0x12 // Insert a run of text nodes (batched)
	PatchInsertRaws    PatchOp = 0x13 // Insert a run of raw nodes (batched)
)

// String returns the string representation of the PatchOp.
func (op PatchOp) String() string {
	switch op {
	case PatchAddRoot:
		return "AddRoot"
	case PatchReplaceNode:
		return "ReplaceNode"
	case PatchInsertNode:
		return "InsertNode"
	case PatchRemoveNode:
		return "RemoveNode"
	case PatchSetText:
		return "SetText"
	case PatchSetRaw:
		return "SetRaw"
	case PatchAddAttr:
		return "AddAttr"
	case PatchSetAttr:
		return "SetAttr"
	case PatchRemoveAttr:
		return "RemoveAttr"
	case PatchAddHandler:
		return "AddHandler"
	case PatchSetHandler:
		return "SetHandler"
	case PatchRemoveHandler:
		return "RemoveHandler"
	case PatchInsertNodes:
		return "InsertNodes"
	case PatchRemoveNodes:
		return "RemoveNodes"
	case PatchInsertTexts:
		return "InsertTexts"
	case PatchInsertRaws:
		return "InsertRaws"
	default:
		return "Unknown"
	}
}

// TextContent is the payload of one text or raw node inside a batched
// insert run.
type TextContent struct {
	ID    string
	Value string
}

// Patch represents a single tree mutation. Patches address nodes purely by
// ID and are safe to apply strictly in the order emitted.
type Patch struct {
	Op       PatchOp
	NodeID   string        // Target node ID
	ParentID string        // Parent for insert ops
	Index    int           // Insert position
	Name     string        // Attribute or event name
	Value    string        // Attribute value, dispatch token, or text content
	NewID    string        // Replacement node ID for SetText/SetRaw
	HasRef   bool          // Handler ref presence for SetHandler
	Attr     Attr          // Full attribute for AddAttr/AddHandler
	Node     *VNode        // Payload for AddRoot/ReplaceNode/InsertNode
	Nodes    []*VNode      // Payload for InsertNodes
	Texts    []TextContent // Payload for InsertTexts/InsertRaws
	NodeIDs  []string      // Targets for RemoveNodes
}

// NewAddRootPatch creates an AddRoot patch.
func NewAddRootPatch(node *VNode) Patch {
	return Patch{Op: PatchAddRoot, Node: node}
}

// NewReplaceNodePatch creates a ReplaceNode patch.
func NewReplaceNodePatch(nodeID string, node *VNode) Patch {
	return Patch{Op: PatchReplaceNode, NodeID: nodeID, Node: node}
}

// NewInsertNodePatch creates an InsertNode patch.
func NewInsertNodePatch(parentID string, index int, node *VNode) Patch {
	return Patch{Op: PatchInsertNode, ParentID: parentID, Index: index, Node: node}
}

// NewRemoveNodePatch creates a RemoveNode patch.
func NewRemoveNodePatch(nodeID string) Patch {
	return Patch{Op: PatchRemoveNode, NodeID: nodeID}
}

// NewSetTextPatch creates a SetText patch.
func NewSetTextPatch(nodeID, newID, value string) Patch {
	return Patch{Op: PatchSetText, NodeID: nodeID, NewID: newID, Value: value}
}

// NewSetRawPatch creates a SetRaw patch.
func NewSetRawPatch(nodeID, newID, value string) Patch {
	return Patch{Op: PatchSetRaw, NodeID: nodeID, NewID: newID, Value: value}
}

// NewAddAttrPatch creates an AddAttr patch.
func NewAddAttrPatch(nodeID string, attr Attr) Patch {
	return Patch{Op: PatchAddAttr, NodeID: nodeID, Name: attr.Name, Value: attr.Value, Attr: attr}
}

// NewSetAttrPatch creates a SetAttr patch.
func NewSetAttrPatch(nodeID, name, value string) Patch {
	return Patch{Op: PatchSetAttr, NodeID: nodeID, Name: name, Value: value}
}

// NewRemoveAttrPatch creates a RemoveAttr patch.
func NewRemoveAttrPatch(nodeID, name string) Patch {
	return Patch{Op: PatchRemoveAttr, NodeID: nodeID, Name: name}
}

// NewAddHandlerPatch creates an AddHandler patch.
func NewAddHandlerPatch(nodeID string, attr Attr) Patch {
	return Patch{Op: PatchAddHandler, NodeID: nodeID, Name: attr.Name, Value: attr.Value, HasRef: attr.HasRef(), Attr: attr}
}

// NewSetHandlerPatch creates a SetHandler patch.
func NewSetHandlerPatch(nodeID, event, token string, hasRef bool) Patch {
	return Patch{Op: PatchSetHandler, NodeID: nodeID, Name: event, Value: token, HasRef: hasRef}
}

// NewRemoveHandlerPatch creates a RemoveHandler patch.
func NewRemoveHandlerPatch(nodeID, event string) Patch {
	return Patch{Op: PatchRemoveHandler, NodeID: nodeID, Name: event}
}

// NewInsertNodesPatch creates a batched InsertNodes patch.
func NewInsertNodesPatch(parentID string, index int, nodes []*VNode) Patch {
	return Patch{Op: PatchInsertNodes, ParentID: parentID, Index: index, Nodes: nodes}
}

// NewRemoveNodesPatch creates a batched RemoveNodes patch.
func NewRemoveNodesPatch(nodeIDs []string) Patch {
	return Patch{Op: PatchRemoveNodes, NodeIDs: nodeIDs}
}

// NewInsertTextsPatch creates a batched InsertTexts patch.
func NewInsertTextsPatch(parentID string, index int, texts []TextContent) Patch {
	return Patch{Op: PatchInsertTexts, ParentID: parentID, Index: index, Texts: texts}
}

// NewInsertRawsPatch creates a batched InsertRaws patch.
func NewInsertRawsPatch(parentID string, index int, texts []TextContent) Patch {
	return Patch{Op: PatchInsertRaws, ParentID: parentID, Index: index, Texts: texts}
}

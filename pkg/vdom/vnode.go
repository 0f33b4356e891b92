package vdom

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement VKind = iota // <div>, <button>, etc.
	KindText                 // Plain text node
	KindRaw                  // Raw HTML (dangerous)
	KindEmpty                // Renders nothing
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindRaw:
		return "Raw"
	case KindEmpty:
		return "Empty"
	default:
		return "Unknown"
	}
}

// VNode is the virtual DOM node. Trees are immutable once built; Diff never
// mutates a node it observes, and Align is the only pass allowed to touch a
// freshly built tree before it is handed to Diff.
type VNode struct {
	ID       string   // Opaque identity token, stable within one Diff call
	Kind     VKind    // Node type
	Tag      string   // Element tag name (e.g., "div")
	Attrs    []Attr   // Ordered attributes and handlers (KindElement only)
	Children []*VNode // Child nodes (KindElement only)
	Text     string   // For KindText and KindRaw
	Key      string   // Explicit reconciliation key
}

// ValueRef projects an event payload before dispatch. Only its presence or
// absence participates in diffing; two refs are never compared.
type ValueRef func(payload []byte) []byte

// AttrKind discriminates static attributes from event handlers.
type AttrKind uint8

const (
	AttrStatic AttrKind = iota // Plain name="value" attribute
	AttrEvent                  // Event handler, rendered as data-event-{name}
)

// String returns the string representation of the AttrKind.
func (k AttrKind) String() string {
	switch k {
	case AttrStatic:
		return "Static"
	case AttrEvent:
		return "Event"
	default:
		return "Unknown"
	}
}

// Attr is a single attribute or event handler on an element.
// The ID is regenerated on every build pass and is ignored by diffing;
// identity is the (Kind, Name) pair.
type Attr struct {
	Kind  AttrKind
	ID    string   // Opaque identity token; churns freely across builds
	Name  string   // Attribute name, or event name for AttrEvent
	Value string   // Attribute value, or dispatch token for AttrEvent
	Ref   ValueRef // AttrEvent only; optional payload projection
}

// IsEvent returns true if the attribute is an event handler.
func (a Attr) IsEvent() bool {
	return a.Kind == AttrEvent
}

// HasRef returns true if the handler carries a payload projection.
func (a Attr) HasRef() bool {
	return a.Ref != nil
}

// EffectiveName returns the name the attribute serializes under:
// the plain name for static attributes, data-event-{name} for handlers.
func (a Attr) EffectiveName() string {
	if a.Kind == AttrEvent {
		return EventAttrPrefix + a.Name
	}
	return a.Name
}

// EventAttrPrefix prefixes the synthesized attribute name of every handler.
const EventAttrPrefix = "data-event-"

// IsElement returns true for element nodes.
func (v *VNode) IsElement() bool {
	return v != nil && v.Kind == KindElement
}

// MatchKey returns the key a child reconciles under: the explicit Key when
// set, the node ID otherwise.
func (v *VNode) MatchKey() string {
	if v == nil {
		return ""
	}
	if v.Key != "" {
		return v.Key
	}
	return v.ID
}

// Clone returns a deep copy of the tree. Handler refs are shared, not
// copied; a ValueRef is an opaque function value with no identity semantics.
func (v *VNode) Clone() *VNode {
	if v == nil {
		return nil
	}
	c := &VNode{
		ID:   v.ID,
		Kind: v.Kind,
		Tag:  v.Tag,
		Text: v.Text,
		Key:  v.Key,
	}
	if len(v.Attrs) > 0 {
		c.Attrs = make([]Attr, len(v.Attrs))
		copy(c.Attrs, v.Attrs)
	}
	if len(v.Children) > 0 {
		c.Children = make([]*VNode, len(v.Children))
		for i, child := range v.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

// Count returns the number of nodes in the tree, the root included.
func (v *VNode) Count() int {
	if v == nil {
		return 0
	}
	n := 1
	for _, child := range v.Children {
		n += child.Count()
	}
	return n
}

// FindByID returns the node with the given ID, or nil.
func FindByID(root *VNode, id string) *VNode {
	if root == nil {
		return nil
	}
	if root.ID == id {
		return root
	}
	for _, child := range root.Children {
		if found := FindByID(child, id); found != nil {
			return found
		}
	}
	return nil
}

// CollectIDs returns a map of ID to node for every node in the tree.
func CollectIDs(root *VNode) map[string]*VNode {
	result := make(map[string]*VNode)
	collectIDs(root, result)
	return result
}

func collectIDs(node *VNode, result map[string]*VNode) {
	if node == nil {
		return
	}
	if node.ID != "" {
		result[node.ID] = node
	}
	for _, child := range node.Children {
		collectIDs(child, result)
	}
}

package apply

import (
	"errors"
	"fmt"

	"github.com/arbor-dev/arbor/pkg/vdom"
)

// Strict application errors. Every failure surfaces; a patch that cannot be
// applied exactly is never dropped.
var (
	ErrNotFound        = errors.New("apply: target node not found")
	ErrDuplicateID     = errors.New("apply: duplicate node id")
	ErrIndexOutOfRange = errors.New("apply: child index out of range")
	ErrWrongKind       = errors.New("apply: wrong node kind")
	ErrAttrNotFound    = errors.New("apply: attribute not found")
	ErrAttrExists      = errors.New("apply: attribute already present")
)

// Tree is an in-memory live mirror of a VNode tree that implements
// vdom.Applier. It deep-clones everything it takes in, so mutation never
// aliases an input tree, and maintains id -> node and id -> parent indexes
// so every patch resolves its target in constant time.
type Tree struct {
	root    *vdom.VNode
	nodes   map[string]*vdom.VNode
	parents map[string]*vdom.VNode
}

// New creates a live tree mirroring initial. A nil initial is an empty
// tree awaiting its first AddRoot.
func New(initial *vdom.VNode) (*Tree, error) {
	t := &Tree{
		nodes:   make(map[string]*vdom.VNode),
		parents: make(map[string]*vdom.VNode),
	}
	if initial != nil {
		t.root = initial.Clone()
		if err := t.index(t.root, nil); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Root returns the live root. Callers must treat the returned tree as
// read-only; it is the applier's mutable state.
func (t *Tree) Root() *vdom.VNode {
	return t.root
}

// Lookup returns the live node with the given id, or nil.
func (t *Tree) Lookup(id string) *vdom.VNode {
	return t.nodes[id]
}

// Len returns the number of indexed nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// index registers a subtree in the id indexes, rejecting duplicate ids.
func (t *Tree) index(node *vdom.VNode, parent *vdom.VNode) error {
	if node == nil {
		return nil
	}
	if _, exists := t.nodes[node.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateID, node.ID)
	}
	t.nodes[node.ID] = node
	if parent != nil {
		t.parents[node.ID] = parent
	}
	for _, child := range node.Children {
		if err := t.index(child, node); err != nil {
			return err
		}
	}
	return nil
}

// unindex removes a subtree from the id indexes.
func (t *Tree) unindex(node *vdom.VNode) {
	if node == nil {
		return
	}
	delete(t.nodes, node.ID)
	delete(t.parents, node.ID)
	for _, child := range node.Children {
		t.unindex(child)
	}
}

// resolve returns the live node for id or a not-found error.
func (t *Tree) resolve(id string) (*vdom.VNode, error) {
	node, ok := t.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return node, nil
}

// AddRoot installs a new root, discarding any previous tree.
func (t *Tree) AddRoot(node *vdom.VNode) error {
	clone := node.Clone()
	nodes := make(map[string]*vdom.VNode)
	parents := make(map[string]*vdom.VNode)
	old := *t
	t.nodes, t.parents, t.root = nodes, parents, clone
	if err := t.index(clone, nil); err != nil {
		*t = old
		return err
	}
	return nil
}

// ReplaceNode swaps the subtree rooted at nodeID for a clone of node.
func (t *Tree) ReplaceNode(nodeID string, node *vdom.VNode) error {
	target, err := t.resolve(nodeID)
	if err != nil {
		return err
	}
	parent := t.parents[nodeID]
	clone := node.Clone()

	t.unindex(target)
	if err := t.index(clone, parent); err != nil {
		return err
	}
	if parent == nil {
		t.root = clone
		return nil
	}
	for i, child := range parent.Children {
		if child == target {
			parent.Children[i] = clone
			return nil
		}
	}
	return fmt.Errorf("%w: %q detached from parent", ErrNotFound, nodeID)
}

// InsertNode inserts a clone of node under parentID at index.
func (t *Tree) InsertNode(parentID string, index int, node *vdom.VNode) error {
	parent, err := t.resolve(parentID)
	if err != nil {
		return err
	}
	if parent.Kind != vdom.KindElement {
		return fmt.Errorf("%w: insert under %s node %q", ErrWrongKind, parent.Kind, parentID)
	}
	if index < 0 || index > len(parent.Children) {
		return fmt.Errorf("%w: index %d of %d", ErrIndexOutOfRange, index, len(parent.Children))
	}
	clone := node.Clone()
	if err := t.index(clone, parent); err != nil {
		return err
	}
	parent.Children = append(parent.Children, nil)
	copy(parent.Children[index+1:], parent.Children[index:])
	parent.Children[index] = clone
	return nil
}

// RemoveNode removes the subtree rooted at nodeID.
func (t *Tree) RemoveNode(nodeID string) error {
	target, err := t.resolve(nodeID)
	if err != nil {
		return err
	}
	parent := t.parents[nodeID]
	t.unindex(target)
	if parent == nil {
		t.root = nil
		return nil
	}
	for i, child := range parent.Children {
		if child == target {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %q detached from parent", ErrNotFound, nodeID)
}

// SetText updates a text node's content and identity.
func (t *Tree) SetText(nodeID, newID, value string) error {
	return t.setContent(nodeID, newID, value, vdom.KindText)
}

// SetRaw updates a raw node's content and identity.
func (t *Tree) SetRaw(nodeID, newID, value string) error {
	return t.setContent(nodeID, newID, value, vdom.KindRaw)
}

func (t *Tree) setContent(nodeID, newID, value string, kind vdom.VKind) error {
	node, err := t.resolve(nodeID)
	if err != nil {
		return err
	}
	if node.Kind != kind {
		return fmt.Errorf("%w: %s content update on %s node %q", ErrWrongKind, kind, node.Kind, nodeID)
	}
	if newID != nodeID {
		if _, exists := t.nodes[newID]; exists {
			return fmt.Errorf("%w: %q", ErrDuplicateID, newID)
		}
		parent := t.parents[nodeID]
		delete(t.nodes, nodeID)
		delete(t.parents, nodeID)
		t.nodes[newID] = node
		if parent != nil {
			t.parents[newID] = parent
		}
		node.ID = newID
	}
	node.Text = value
	return nil
}

// AddAttr appends a static attribute.
func (t *Tree) AddAttr(nodeID string, attr vdom.Attr) error {
	return t.addAttribute(nodeID, attr, vdom.AttrStatic)
}

// AddHandler appends an event handler.
func (t *Tree) AddHandler(nodeID string, attr vdom.Attr) error {
	return t.addAttribute(nodeID, attr, vdom.AttrEvent)
}

func (t *Tree) addAttribute(nodeID string, attr vdom.Attr, kind vdom.AttrKind) error {
	node, err := t.resolve(nodeID)
	if err != nil {
		return err
	}
	if node.Kind != vdom.KindElement {
		return fmt.Errorf("%w: attribute on %s node %q", ErrWrongKind, node.Kind, nodeID)
	}
	if findAttr(node, kind, attr.Name) >= 0 {
		return fmt.Errorf("%w: %q on %q", ErrAttrExists, attr.Name, nodeID)
	}
	attr.Kind = kind
	node.Attrs = append(node.Attrs, attr)
	return nil
}

// SetAttr updates the value of an existing static attribute.
func (t *Tree) SetAttr(nodeID, name, value string) error {
	node, err := t.resolve(nodeID)
	if err != nil {
		return err
	}
	i := findAttr(node, vdom.AttrStatic, name)
	if i < 0 {
		return fmt.Errorf("%w: %q on %q", ErrAttrNotFound, name, nodeID)
	}
	node.Attrs[i].Value = value
	return nil
}

// RemoveAttr removes a static attribute.
func (t *Tree) RemoveAttr(nodeID, name string) error {
	return t.removeAttribute(nodeID, name, vdom.AttrStatic)
}

// RemoveHandler removes an event handler.
func (t *Tree) RemoveHandler(nodeID, event string) error {
	return t.removeAttribute(nodeID, event, vdom.AttrEvent)
}

func (t *Tree) removeAttribute(nodeID, name string, kind vdom.AttrKind) error {
	node, err := t.resolve(nodeID)
	if err != nil {
		return err
	}
	i := findAttr(node, kind, name)
	if i < 0 {
		return fmt.Errorf("%w: %q on %q", ErrAttrNotFound, name, nodeID)
	}
	node.Attrs = append(node.Attrs[:i], node.Attrs[i+1:]...)
	return nil
}

// SetHandler rebinds an existing handler's dispatch token and ref presence.
func (t *Tree) SetHandler(nodeID, event, token string, hasRef bool) error {
	node, err := t.resolve(nodeID)
	if err != nil {
		return err
	}
	i := findAttr(node, vdom.AttrEvent, event)
	if i < 0 {
		return fmt.Errorf("%w: handler %q on %q", ErrAttrNotFound, event, nodeID)
	}
	node.Attrs[i].Value = token
	// Ref contents never cross a patch; only presence is tracked.
	if hasRef && node.Attrs[i].Ref == nil {
		node.Attrs[i].Ref = passthroughRef
	} else if !hasRef {
		node.Attrs[i].Ref = nil
	}
	return nil
}

// InsertNodes inserts a batch of children at consecutive indices.
func (t *Tree) InsertNodes(parentID string, index int, nodes []*vdom.VNode) error {
	for k, node := range nodes {
		if err := t.InsertNode(parentID, index+k, node); err != nil {
			return err
		}
	}
	return nil
}

// RemoveNodes removes a batch of subtrees.
func (t *Tree) RemoveNodes(nodeIDs []string) error {
	for _, id := range nodeIDs {
		if err := t.RemoveNode(id); err != nil {
			return err
		}
	}
	return nil
}

// InsertTexts inserts a batch of text nodes at consecutive indices.
func (t *Tree) InsertTexts(parentID string, index int, texts []vdom.TextContent) error {
	return t.insertContents(parentID, index, texts, vdom.KindText)
}

// InsertRaws inserts a batch of raw nodes at consecutive indices.
func (t *Tree) InsertRaws(parentID string, index int, texts []vdom.TextContent) error {
	return t.insertContents(parentID, index, texts, vdom.KindRaw)
}

func (t *Tree) insertContents(parentID string, index int, texts []vdom.TextContent, kind vdom.VKind) error {
	for k, tc := range texts {
		node := &vdom.VNode{ID: tc.ID, Kind: kind, Text: tc.Value}
		if err := t.InsertNode(parentID, index+k, node); err != nil {
			return err
		}
	}
	return nil
}

// findAttr returns the index of the attribute with the given kind and name,
// or -1.
func findAttr(node *vdom.VNode, kind vdom.AttrKind, name string) int {
	for i := range node.Attrs {
		if node.Attrs[i].Kind == kind && node.Attrs[i].Name == name {
			return i
		}
	}
	return -1
}

// passthroughRef stands in for a ref whose presence crossed a patch but
// whose projection did not.
func passthroughRef(payload []byte) []byte {
	return payload
}

package vdom

import (
	"fmt"
	"sync"
)

// IDGenerator generates locally-unique identity tokens for nodes and
// attributes. Every freshly constructed node gets a fresh ID; persistence of
// identity across builds is Align's job, not the generator's.
type IDGenerator struct {
	prefix  string
	counter uint64
	mu      sync.Mutex
}

// NewIDGenerator creates an IDGenerator with the default "n" prefix.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{prefix: "n"}
}

// NewIDGeneratorWithPrefix creates an IDGenerator with a custom prefix.
func NewIDGeneratorWithPrefix(prefix string) *IDGenerator {
	return &IDGenerator{prefix: prefix}
}

// Next returns the next ID (e.g., "n1", "n2", ...).
func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("%s%d", g.prefix, g.counter)
}

// Reset resets the counter to 0.
func (g *IDGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter = 0
}

// Current returns the current counter value without incrementing.
func (g *IDGenerator) Current() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.counter
}

// Builder constructs VNode trees, stamping every node and attribute with a
// fresh ID from its generator.
type Builder struct {
	gen *IDGenerator
}

// NewBuilder creates a Builder with a fresh generator.
func NewBuilder() *Builder {
	return &Builder{gen: NewIDGenerator()}
}

// NewBuilderWith creates a Builder over an existing generator.
func NewBuilderWith(gen *IDGenerator) *Builder {
	return &Builder{gen: gen}
}

// Element creates an element node.
func (b *Builder) Element(tag string, attrs []Attr, children ...*VNode) *VNode {
	return &VNode{
		ID:       b.gen.Next(),
		Kind:     KindElement,
		Tag:      tag,
		Attrs:    attrs,
		Children: children,
	}
}

// KeyedElement creates an element node with an explicit reconciliation key.
func (b *Builder) KeyedElement(key, tag string, attrs []Attr, children ...*VNode) *VNode {
	n := b.Element(tag, attrs, children...)
	n.Key = key
	return n
}

// Text creates a text node.
func (b *Builder) Text(value string) *VNode {
	return &VNode{ID: b.gen.Next(), Kind: KindText, Text: value}
}

// Raw creates a raw HTML node. The content is emitted verbatim by the
// renderer; the caller owns sanitization.
func (b *Builder) Raw(html string) *VNode {
	return &VNode{ID: b.gen.Next(), Kind: KindRaw, Text: html}
}

// Empty creates an empty node.
func (b *Builder) Empty() *VNode {
	return &VNode{ID: b.gen.Next(), Kind: KindEmpty}
}

// Attr creates a static attribute.
func (b *Builder) Attr(name, value string) Attr {
	return Attr{Kind: AttrStatic, ID: b.gen.Next(), Name: name, Value: value}
}

// On creates an event handler attribute. The token is the opaque dispatch
// token the handler renders and fires with.
func (b *Builder) On(event, token string) Attr {
	return Attr{Kind: AttrEvent, ID: b.gen.Next(), Name: event, Value: token}
}

// OnRef creates an event handler attribute carrying a payload projection.
func (b *Builder) OnRef(event, token string, ref ValueRef) Attr {
	return Attr{Kind: AttrEvent, ID: b.gen.Next(), Name: event, Value: token, Ref: ref}
}

package htmltree

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/arbor-dev/arbor/pkg/vdom"
)

// ErrNoContent is returned when the input holds no usable nodes.
var ErrNoContent = errors.New("htmltree: no content")

// idMarkerPrefix is the comment form text node identity renders as.
const idMarkerPrefix = "vid:"

// Parse reads markup and returns the single root node of the resulting
// VNode tree. Inputs with multiple top-level nodes are an error; use
// ParseFragment for those.
func Parse(r io.Reader) (*vdom.VNode, error) {
	roots, err := ParseFragment(r)
	if err != nil {
		return nil, err
	}
	if len(roots) > 1 {
		return nil, fmt.Errorf("htmltree: %d top-level nodes, want 1", len(roots))
	}
	return roots[0], nil
}

// ParseFragment reads markup and returns VNode trees for every top-level
// node. Identity embedded by the renderer is recovered: data-vid becomes
// the node ID, data-key the reconciliation key, data-event-* attributes
// become handlers, and <!--vid:x--> markers attach to the text node that
// follows them. Nodes the markup gives no identity receive fresh IDs, so
// the result is immediately diffable. Whitespace-only text between
// elements is skipped. Raw and Empty nodes do not survive a render/parse
// round trip; raw content comes back as parsed markup.
func ParseFragment(r io.Reader) ([]*vdom.VNode, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	parsed, err := html.ParseFragment(r, ctx)
	if err != nil {
		return nil, fmt.Errorf("htmltree: parse: %w", err)
	}

	c := &converter{gen: vdom.NewIDGeneratorWithPrefix("p")}
	roots := c.convertSiblings(parsed)
	if len(roots) == 0 {
		return nil, ErrNoContent
	}
	return roots, nil
}

// converter carries the fresh-ID generator and the pending identity marker
// through one conversion pass.
type converter struct {
	gen       *vdom.IDGenerator
	pendingID string
}

// convertSiblings converts a run of sibling nodes, threading identity
// markers into the text nodes that follow them.
func (c *converter) convertSiblings(nodes []*html.Node) []*vdom.VNode {
	var out []*vdom.VNode
	for _, n := range nodes {
		if v := c.convert(n); v != nil {
			out = append(out, v)
		}
	}
	c.pendingID = ""
	return out
}

func (c *converter) convert(n *html.Node) *vdom.VNode {
	switch n.Type {
	case html.ElementNode:
		return c.convertElement(n)

	case html.TextNode:
		id := c.pendingID
		c.pendingID = ""
		if id == "" && strings.TrimSpace(n.Data) == "" {
			return nil
		}
		if id == "" {
			id = c.gen.Next()
		}
		return &vdom.VNode{ID: id, Kind: vdom.KindText, Text: n.Data}

	case html.CommentNode:
		if strings.HasPrefix(n.Data, idMarkerPrefix) {
			c.pendingID = n.Data[len(idMarkerPrefix):]
		}
		return nil

	default:
		// Doctype and document nodes carry no tree content
		return nil
	}
}

func (c *converter) convertElement(n *html.Node) *vdom.VNode {
	c.pendingID = ""
	node := &vdom.VNode{Kind: vdom.KindElement, Tag: n.Data}

	for _, a := range n.Attr {
		switch {
		case a.Key == "data-vid":
			node.ID = a.Val
		case a.Key == "data-key":
			node.Key = a.Val
		case strings.HasPrefix(a.Key, vdom.EventAttrPrefix):
			node.Attrs = append(node.Attrs, vdom.Attr{
				Kind:  vdom.AttrEvent,
				ID:    c.gen.Next(),
				Name:  a.Key[len(vdom.EventAttrPrefix):],
				Value: a.Val,
			})
		default:
			node.Attrs = append(node.Attrs, vdom.Attr{
				Kind:  vdom.AttrStatic,
				ID:    c.gen.Next(),
				Name:  a.Key,
				Value: a.Val,
			})
		}
	}
	if node.ID == "" {
		node.ID = c.gen.Next()
	}

	var children []*html.Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		children = append(children, child)
	}
	node.Children = c.convertSiblings(children)
	return node
}

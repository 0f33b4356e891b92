package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/arbor-dev/arbor/pkg/vdom"
)

// Config configures the HTML renderer.
type Config struct {
	// Pretty enables pretty-printed output with indentation. Only the
	// canonical (non-pretty) form is the diff oracle.
	Pretty bool

	// Indent is the string used per indentation level in pretty mode.
	// Defaults to two spaces.
	Indent string
}

// Renderer serializes VNode trees to HTML. It is pure: rendering produces
// no patches and touches no shared state, so one Renderer may serve
// concurrent calls.
type Renderer struct {
	config Config
}

// New creates a Renderer with the given configuration.
func New(config Config) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// Render serializes a tree to the writer.
func (r *Renderer) Render(w io.Writer, node *vdom.VNode) error {
	return r.renderNode(w, node, 0)
}

// RenderString serializes a tree to a string.
func (r *Renderer) RenderString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// String renders a tree in canonical form. This is the byte-exact oracle
// the round-trip law is stated against.
func String(node *vdom.VNode) (string, error) {
	return New(Config{}).RenderString(node)
}

// renderNode dispatches rendering based on node kind.
func (r *Renderer) renderNode(w io.Writer, node *vdom.VNode, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, depth)
	case vdom.KindText:
		return r.renderText(w, node)
	case vdom.KindRaw:
		return r.renderRaw(w, node)
	case vdom.KindEmpty:
		return nil
	default:
		return fmt.Errorf("render: unknown node kind %d", node.Kind)
	}
}

// renderElement renders an HTML element with its identity, attributes, and
// children.
func (r *Renderer) renderElement(w io.Writer, node *vdom.VNode, depth int) error {
	tag := node.Tag
	if !isValidTag(tag) {
		return fmt.Errorf("render: malformed tag %q", tag)
	}
	if err := checkID(node.ID); err != nil {
		return err
	}

	if r.config.Pretty && depth > 0 {
		if err := r.writeIndent(w, depth); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, `<%s data-vid="%s"`, tag, node.ID); err != nil {
		return err
	}
	if node.Key != "" {
		if _, err := fmt.Fprintf(w, ` data-key="%s"`, escapeAttr(node.Key)); err != nil {
			return err
		}
	}

	if err := r.renderAttrs(w, node); err != nil {
		return err
	}

	if isVoidElement(tag) {
		if len(node.Children) > 0 {
			return fmt.Errorf("render: void element <%s> has children", tag)
		}
		if _, err := w.Write([]byte{'>'}); err != nil {
			return err
		}
		if r.config.Pretty {
			if _, err := w.Write([]byte{'\n'}); err != nil {
				return err
			}
		}
		return nil
	}

	if _, err := w.Write([]byte{'>'}); err != nil {
		return err
	}

	hasBlockChildren := len(node.Children) > 0 && !isInlineElement(tag)
	if r.config.Pretty && hasBlockChildren {
		if _, err := w.Write([]byte{'\n'}); err != nil {
			return err
		}
	}

	for _, child := range node.Children {
		if err := r.renderNode(w, child, depth+1); err != nil {
			return err
		}
	}

	if r.config.Pretty && hasBlockChildren {
		if err := r.writeIndent(w, depth); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "</%s>", tag); err != nil {
		return err
	}
	if r.config.Pretty {
		if _, err := w.Write([]byte{'\n'}); err != nil {
			return err
		}
	}
	return nil
}

// renderAttrs renders attributes in model order. Static attributes escape
// their values; boolean attributes with an empty value render name-only;
// handlers render as data-event-{name}="{token}".
func (r *Renderer) renderAttrs(w io.Writer, node *vdom.VNode) error {
	for _, attr := range node.Attrs {
		if !isValidAttrName(attr.Name) {
			return fmt.Errorf("render: malformed attribute name %q", attr.Name)
		}

		if attr.Kind == vdom.AttrEvent {
			if _, err := fmt.Fprintf(w, ` %s%s="%s"`, vdom.EventAttrPrefix, attr.Name, escapeAttr(attr.Value)); err != nil {
				return err
			}
			continue
		}

		if attr.Value == "" && isBooleanAttr(attr.Name) {
			if _, err := fmt.Fprintf(w, " %s", attr.Name); err != nil {
				return err
			}
			continue
		}

		if _, err := fmt.Fprintf(w, ` %s="%s"`, attr.Name, escapeAttr(attr.Value)); err != nil {
			return err
		}
	}
	return nil
}

// renderText renders a text node: identity marker comment, then the
// HTML-escaped content.
func (r *Renderer) renderText(w io.Writer, node *vdom.VNode) error {
	if err := checkID(node.ID); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "<!--vid:%s-->%s", node.ID, escapeHTML(node.Text))
	return err
}

// renderRaw renders a raw node: identity marker comment, then the content
// verbatim. Unescaped by design; sanitization is the responsibility of
// whoever constructed the node.
func (r *Renderer) renderRaw(w io.Writer, node *vdom.VNode) error {
	if err := checkID(node.ID); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "<!--vid:%s-->%s", node.ID, node.Text)
	return err
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w io.Writer, depth int) error {
	for i := 0; i < depth; i++ {
		if _, err := io.WriteString(w, r.config.Indent); err != nil {
			return err
		}
	}
	return nil
}

// checkID rejects IDs that cannot appear safely inside a comment marker or
// an attribute value. Emitting a malformed ID silently would be a markup
// injection, not a degraded output.
func checkID(id string) error {
	if !isValidID(id) {
		return fmt.Errorf("render: malformed node id %q", id)
	}
	return nil
}

// isValidID reports whether id is non-empty, uses only identifier-safe
// runes, and cannot terminate a comment early.
func isValidID(id string) bool {
	if id == "" || strings.Contains(id, "--") {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_' || c == '.' || c == ':':
		default:
			return false
		}
	}
	return true
}

// isValidTag reports whether tag is a well-formed element name.
func isValidTag(tag string) bool {
	if tag == "" {
		return false
	}
	for i, c := range tag {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '-'):
		default:
			return false
		}
	}
	return true
}

// isValidAttrName reports whether name is a well-formed attribute or event
// name.
func isValidAttrName(name string) bool {
	if name == "" {
		return false
	}
	for i, c := range name {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c == '_' || c == ':':
		case i > 0 && (c >= '0' && c <= '9' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}

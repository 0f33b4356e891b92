package htmltree

import (
	"errors"
	"strings"
	"testing"

	"github.com/arbor-dev/arbor/pkg/render"
	"github.com/arbor-dev/arbor/pkg/vdom"
)

func parseString(t *testing.T, markup string) *vdom.VNode {
	t.Helper()
	node, err := Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return node
}

func TestParseRecoversIdentity(t *testing.T) {
	node := parseString(t, `<div data-vid="n1" class="box"><span data-vid="n2"><!--vid:n3-->hello</span></div>`)

	if node.ID != "n1" || node.Tag != "div" {
		t.Fatalf("root = %+v, want div#n1", node)
	}
	if len(node.Attrs) != 1 || node.Attrs[0].Name != "class" || node.Attrs[0].Value != "box" {
		t.Errorf("attrs = %v", node.Attrs)
	}
	span := node.Children[0]
	if span.ID != "n2" {
		t.Errorf("span ID = %q, want n2", span.ID)
	}
	txt := span.Children[0]
	if txt.Kind != vdom.KindText || txt.ID != "n3" || txt.Text != "hello" {
		t.Errorf("text = %+v, want text#n3 hello", txt)
	}
}

func TestParseRecoversKeysAndHandlers(t *testing.T) {
	node := parseString(t, `<li data-vid="n1" data-key="row-3" data-event-click="tok-5" class="row"></li>`)

	if node.Key != "row-3" {
		t.Errorf("Key = %q, want row-3", node.Key)
	}
	if len(node.Attrs) != 2 {
		t.Fatalf("attrs = %v, want handler and class", node.Attrs)
	}
	h := node.Attrs[0]
	if h.Kind != vdom.AttrEvent || h.Name != "click" || h.Value != "tok-5" {
		t.Errorf("handler = %+v", h)
	}
	if node.Attrs[1].Kind != vdom.AttrStatic || node.Attrs[1].Name != "class" {
		t.Errorf("static attr = %+v", node.Attrs[1])
	}
}

func TestParseFreshIDsWhereAbsent(t *testing.T) {
	node := parseString(t, `<div><p>plain</p></div>`)

	if node.ID == "" || !strings.HasPrefix(node.ID, "p") {
		t.Errorf("root ID = %q, want generated", node.ID)
	}
	p := node.Children[0]
	txt := p.Children[0]
	if txt.Kind != vdom.KindText || txt.ID == "" {
		t.Errorf("text = %+v, want fresh ID", txt)
	}
	if node.ID == p.ID || p.ID == txt.ID {
		t.Error("generated IDs collide")
	}
}

func TestParseSkipsLayoutWhitespace(t *testing.T) {
	node := parseString(t, "<ul data-vid=\"n1\">\n  <li data-vid=\"n2\"></li>\n  <li data-vid=\"n3\"></li>\n</ul>")

	if len(node.Children) != 2 {
		t.Fatalf("children = %v, want the two list items", node.Children)
	}
	if node.Children[0].ID != "n2" || node.Children[1].ID != "n3" {
		t.Errorf("child IDs = %q, %q", node.Children[0].ID, node.Children[1].ID)
	}
}

func TestParseKeepsMarkedWhitespace(t *testing.T) {
	// An identity marker pins the following text node even when it is all
	// whitespace.
	node := parseString(t, `<pre data-vid="n1"><!--vid:n2-->   </pre>`)
	if len(node.Children) != 1 || node.Children[0].Text != "   " {
		t.Errorf("children = %+v, want preserved whitespace text", node.Children)
	}
}

func TestParseFragmentMultipleRoots(t *testing.T) {
	roots, err := ParseFragment(strings.NewReader(`<div data-vid="a"></div><div data-vid="b"></div>`))
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}
	if len(roots) != 2 || roots[0].ID != "a" || roots[1].ID != "b" {
		t.Errorf("roots = %v", roots)
	}

	if _, err := Parse(strings.NewReader(`<div></div><div></div>`)); err == nil {
		t.Error("Parse accepted multiple roots")
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "   \n\t  ", "<!-- just a comment -->"} {
		if _, err := ParseFragment(strings.NewReader(in)); !errors.Is(err, ErrNoContent) {
			t.Errorf("ParseFragment(%q): err = %v, want ErrNoContent", in, err)
		}
	}
}

func TestParseUnescapesEntities(t *testing.T) {
	node := parseString(t, `<div data-vid="n1" title="a &quot;b&quot;"><!--vid:n2-->x &amp; y</div>`)
	if got := node.Attrs[0].Value; got != `a "b"` {
		t.Errorf("attr value = %q", got)
	}
	if got := node.Children[0].Text; got != "x & y" {
		t.Errorf("text = %q", got)
	}
}

// Rendered markup parses back into a tree that renders byte-identically.
func TestParseRenderRoundTrip(t *testing.T) {
	trees := map[string]*vdom.VNode{
		"simple": {
			ID: "n1", Kind: vdom.KindElement, Tag: "div",
			Attrs: []vdom.Attr{{Kind: vdom.AttrStatic, ID: "a1", Name: "class", Value: "page"}},
			Children: []*vdom.VNode{
				{ID: "n2", Kind: vdom.KindText, Text: "hello & welcome"},
			},
		},
		"keyed list": {
			ID: "n1", Kind: vdom.KindElement, Tag: "ul",
			Children: []*vdom.VNode{
				{ID: "n2", Kind: vdom.KindElement, Tag: "li", Key: "a",
					Children: []*vdom.VNode{{ID: "n3", Kind: vdom.KindText, Text: "A"}}},
				{ID: "n4", Kind: vdom.KindElement, Tag: "li", Key: "b",
					Children: []*vdom.VNode{{ID: "n5", Kind: vdom.KindText, Text: "B"}}},
			},
		},
		"handlers and booleans": {
			ID: "n1", Kind: vdom.KindElement, Tag: "form",
			Children: []*vdom.VNode{
				{ID: "n2", Kind: vdom.KindElement, Tag: "input",
					Attrs: []vdom.Attr{
						{Kind: vdom.AttrStatic, ID: "a1", Name: "type", Value: "text"},
						{Kind: vdom.AttrStatic, ID: "a2", Name: "disabled", Value: ""},
					}},
				{ID: "n3", Kind: vdom.KindElement, Tag: "button",
					Attrs: []vdom.Attr{{Kind: vdom.AttrEvent, ID: "h1", Name: "click", Value: "tok-1"}},
					Children: []*vdom.VNode{{ID: "n4", Kind: vdom.KindText, Text: "Go"}}},
			},
		},
	}

	for name, tree := range trees {
		t.Run(name, func(t *testing.T) {
			markup, err := render.String(tree)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			reparsed := parseString(t, markup)
			again, err := render.String(reparsed)
			if err != nil {
				t.Fatalf("render reparsed: %v", err)
			}
			if again != markup {
				t.Errorf("round trip drifted\nfirst:  %s\nsecond: %s", markup, again)
			}
		})
	}
}

// A parsed tree diffs cleanly against a parsed mutation of itself, which is
// how the command line front end drives the engine.
func TestParsedTreesDiff(t *testing.T) {
	old := parseString(t, `<div data-vid="n1"><!--vid:n2-->before</div>`)
	next := parseString(t, `<div data-vid="n1"><!--vid:n2-->after</div>`)

	patches := vdom.Diff(old, next)
	if len(patches) != 1 || patches[0].Op != vdom.PatchSetText || patches[0].Value != "after" {
		t.Errorf("patches = %v, want single SetText", patches)
	}
}

package protocol

import (
	"errors"
	"testing"

	"github.com/arbor-dev/arbor/pkg/vdom"
)

func sampleTree() *vdom.VNode {
	return &vdom.VNode{
		ID: "1", Kind: vdom.KindElement, Tag: "div",
		Attrs: []vdom.Attr{
			{Kind: vdom.AttrStatic, ID: "a1", Name: "class", Value: "box"},
			{Kind: vdom.AttrEvent, ID: "h1", Name: "click", Value: "tok-9"},
		},
		Children: []*vdom.VNode{
			{ID: "2", Kind: vdom.KindText, Text: "hello"},
			{ID: "3", Kind: vdom.KindRaw, Text: "<hr>"},
			{ID: "4", Kind: vdom.KindEmpty},
			{
				ID: "5", Kind: vdom.KindElement, Tag: "li", Key: "row-1",
				Children: []*vdom.VNode{{ID: "6", Kind: vdom.KindText, Text: "deep"}},
			},
		},
	}
}

func encodeNode(node *vdom.VNode) []byte {
	e := NewEncoder()
	EncodeNode(e, node)
	return e.Bytes()
}

func assertTreeEqual(t *testing.T, got, want *vdom.VNode) {
	t.Helper()
	if (got == nil) != (want == nil) {
		t.Fatalf("node = %+v, want %+v", got, want)
	}
	if got == nil {
		return
	}
	if got.ID != want.ID || got.Kind != want.Kind || got.Tag != want.Tag ||
		got.Key != want.Key || got.Text != want.Text {
		t.Fatalf("node = %+v, want %+v", got, want)
	}
	if len(got.Attrs) != len(want.Attrs) {
		t.Fatalf("attrs = %v, want %v", got.Attrs, want.Attrs)
	}
	for i := range want.Attrs {
		g, w := got.Attrs[i], want.Attrs[i]
		if g.Kind != w.Kind || g.ID != w.ID || g.Name != w.Name || g.Value != w.Value || g.HasRef() != w.HasRef() {
			t.Fatalf("attr[%d] = %+v, want %+v", i, g, w)
		}
	}
	if len(got.Children) != len(want.Children) {
		t.Fatalf("children count = %d, want %d", len(got.Children), len(want.Children))
	}
	for i := range want.Children {
		assertTreeEqual(t, got.Children[i], want.Children[i])
	}
}

func TestNodeRoundTrip(t *testing.T) {
	want := sampleTree()
	got, err := DecodeNode(NewDecoder(encodeNode(want)))
	if err != nil {
		t.Fatalf("DecodeNode: %v", err)
	}
	assertTreeEqual(t, got, want)
}

func TestNodeNilRoundTrip(t *testing.T) {
	data := encodeNode(nil)
	if len(data) != 1 || data[0] != nullMarker {
		t.Fatalf("nil encoding = %x, want single null marker", data)
	}
	got, err := DecodeNode(NewDecoder(data))
	if err != nil || got != nil {
		t.Errorf("DecodeNode(nil frame) = %+v, %v", got, err)
	}
}

func TestNodeRefPresenceCrossesWire(t *testing.T) {
	node := &vdom.VNode{
		ID: "1", Kind: vdom.KindElement, Tag: "button",
		Attrs: []vdom.Attr{{
			Kind: vdom.AttrEvent, ID: "h1", Name: "click", Value: "t",
			Ref: func(p []byte) []byte { return p[:0] },
		}},
	}

	got, err := DecodeNode(NewDecoder(encodeNode(node)))
	if err != nil {
		t.Fatalf("DecodeNode: %v", err)
	}
	if !got.Attrs[0].HasRef() {
		t.Error("ref presence lost on the wire")
	}
	// The projection itself never crosses; the stand-in is a passthrough.
	payload := []byte("payload")
	if out := got.Attrs[0].Ref(payload); string(out) != "payload" {
		t.Errorf("stand-in ref = %q, want passthrough", out)
	}
}

func TestNodeUnknownKind(t *testing.T) {
	e := NewEncoder()
	e.WriteByte(0x7E)
	e.WriteString("1")
	_, err := DecodeNode(NewDecoder(e.Bytes()))
	if !errors.Is(err, ErrUnknownNodeKind) {
		t.Errorf("err = %v, want ErrUnknownNodeKind", err)
	}
}

func TestNodeDepthLimit(t *testing.T) {
	// A chain one deeper than MaxNodeDepth must fail decode.
	root := &vdom.VNode{ID: "n0", Kind: vdom.KindElement, Tag: "div"}
	cur := root
	for i := 1; i <= MaxNodeDepth+1; i++ {
		child := &vdom.VNode{ID: "x", Kind: vdom.KindElement, Tag: "div"}
		cur.Children = []*vdom.VNode{child}
		cur = child
	}

	_, err := DecodeNode(NewDecoder(encodeNode(root)))
	if !errors.Is(err, ErrMaxDepthExceeded) {
		t.Errorf("err = %v, want ErrMaxDepthExceeded", err)
	}
}

func TestNodeDepthWithinLimit(t *testing.T) {
	root := &vdom.VNode{ID: "n0", Kind: vdom.KindElement, Tag: "div"}
	cur := root
	for i := 1; i <= MaxNodeDepth; i++ {
		child := &vdom.VNode{ID: "x", Kind: vdom.KindElement, Tag: "div"}
		cur.Children = []*vdom.VNode{child}
		cur = child
	}

	if _, err := DecodeNode(NewDecoder(encodeNode(root))); err != nil {
		t.Errorf("tree at the depth limit failed: %v", err)
	}
}

func TestNodeTruncation(t *testing.T) {
	full := encodeNode(sampleTree())
	for cut := 0; cut < len(full); cut++ {
		if _, err := DecodeNode(NewDecoder(full[:cut])); err == nil {
			t.Errorf("truncation at %d decoded without error", cut)
		}
	}
}

package apply

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/arbor-dev/arbor/pkg/render"
	"github.com/arbor-dev/arbor/pkg/vdom"
)

// replayEquals applies the patch stream for old -> next to a live mirror of
// old and asserts the rendered result matches the rendered target byte for
// byte. The canonical renderer is the oracle.
func replayEquals(t *testing.T, old, next *vdom.VNode, patches []vdom.Patch) {
	t.Helper()

	tree, err := New(old)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := vdom.Apply(tree, patches); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	got, err := render.String(tree.Root())
	if err != nil {
		t.Fatalf("render applied tree: %v", err)
	}
	want, err := render.String(next)
	if err != nil {
		t.Fatalf("render target tree: %v", err)
	}
	if got != want {
		t.Errorf("replayed tree renders differently\n got: %s\nwant: %s", got, want)
	}
}

func keyedRow(key, id, textID, label string) *vdom.VNode {
	row := el(id, "li", []vdom.Attr{attr(id+"-a", "class", "row")}, text(textID, label))
	row.Key = key
	return row
}

func rows(n int) *vdom.VNode {
	children := make([]*vdom.VNode, n)
	for i := range children {
		children[i] = keyedRow(
			fmt.Sprintf("k%d", i),
			fmt.Sprintf("e%d", i),
			fmt.Sprintf("t%d", i),
			fmt.Sprintf("row %d", i),
		)
	}
	return el("root", "ul", nil, children...)
}

func TestRoundTripScenarios(t *testing.T) {
	tests := []struct {
		name string
		old  *vdom.VNode
		next *vdom.VNode
	}{
		{
			name: "text update",
			old:  el("1", "div", nil, text("2", "A")),
			next: el("1", "div", nil, text("2", "B")),
		},
		{
			name: "attr update and add",
			old:  el("1", "div", []vdom.Attr{attr("a1", "class", "x")}),
			next: el("1", "div", []vdom.Attr{attr("a2", "class", "y"), attr("a3", "title", "T")}),
		},
		{
			name: "subtree replace",
			old:  el("1", "div", nil, el("2", "span", nil, text("3", "x"))),
			next: el("1", "div", nil, el("9", "p", nil, text("10", "y"))),
		},
		{
			name: "root replace",
			old:  el("1", "div", nil),
			next: &vdom.VNode{ID: "2", Kind: vdom.KindText, Text: "plain"},
		},
		{
			name: "keyed swap",
			old: el("1", "ul", nil,
				keyedRow("a", "2", "3", "A"), keyedRow("b", "4", "5", "B")),
			next: el("1", "ul", nil,
				keyedRow("b", "4", "5", "B"), keyedRow("a", "2", "3", "A")),
		},
		{
			name: "handler rebind",
			old:  el("1", "button", []vdom.Attr{handler("h1", "click", "tok-1")}),
			next: el("1", "button", []vdom.Attr{handler("h2", "click", "tok-2")}),
		},
		{
			name: "raw content",
			old:  el("1", "div", nil, &vdom.VNode{ID: "2", Kind: vdom.KindRaw, Text: "<b>old</b>"}),
			next: el("1", "div", nil, &vdom.VNode{ID: "2", Kind: vdom.KindRaw, Text: "<i>new</i>"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			replayEquals(t, tt.old, tt.next, vdom.Diff(tt.old, tt.next))
		})
		t.Run(tt.name+" batched", func(t *testing.T) {
			replayEquals(t, tt.old, tt.next, vdom.DiffBatched(tt.old, tt.next))
		})
	}
}

func TestRoundTripListMutations(t *testing.T) {
	const n = 40
	mutations := []struct {
		name   string
		mutate func(children []*vdom.VNode) []*vdom.VNode
	}{
		{"reverse", func(c []*vdom.VNode) []*vdom.VNode {
			for i, j := 0, len(c)-1; i < j; i, j = i+1, j-1 {
				c[i], c[j] = c[j], c[i]
			}
			return c
		}},
		{"drop every third", func(c []*vdom.VNode) []*vdom.VNode {
			out := c[:0]
			for i, child := range c {
				if i%3 != 0 {
					out = append(out, child)
				}
			}
			return out
		}},
		{"rotate", func(c []*vdom.VNode) []*vdom.VNode {
			out := make([]*vdom.VNode, 0, len(c))
			out = append(out, c[5:]...)
			return append(out, c[:5]...)
		}},
		{"append block", func(c []*vdom.VNode) []*vdom.VNode {
			for i := 0; i < 10; i++ {
				c = append(c, keyedRow(
					fmt.Sprintf("new%d", i),
					fmt.Sprintf("ne%d", i),
					fmt.Sprintf("nt%d", i),
					"fresh",
				))
			}
			return c
		}},
	}

	for _, m := range mutations {
		t.Run(m.name, func(t *testing.T) {
			old := rows(n)
			next := rows(n)
			next.Children = m.mutate(next.Children)
			replayEquals(t, old, next, vdom.Diff(old, next))
		})
		t.Run(m.name+" batched", func(t *testing.T) {
			old := rows(n)
			next := rows(n)
			next.Children = m.mutate(next.Children)
			replayEquals(t, old, next, vdom.DiffBatched(old, next))
		})
	}
}

// A live tree tracks an evolving source of truth across many diff/apply
// cycles without drifting.
func TestRoundTripMultiCycle(t *testing.T) {
	faker := gofakeit.New(7)

	current := rows(20)
	tree, err := New(current)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for cycle := 0; cycle < 25; cycle++ {
		next := current.Clone()

		switch cycle % 4 {
		case 0: // shuffle
			faker.ShuffleAnySlice(next.Children)
		case 1: // rewrite some labels
			for _, child := range next.Children {
				if faker.Bool() {
					child.Children[0].Text = faker.Word()
				}
			}
		case 2: // drop a child
			if len(next.Children) > 1 {
				i := faker.IntRange(0, len(next.Children)-1)
				next.Children = append(next.Children[:i], next.Children[i+1:]...)
			}
		case 3: // grow
			id := fmt.Sprintf("c%d", cycle)
			next.Children = append(next.Children, keyedRow("k"+id, "e"+id, "t"+id, faker.Word()))
		}

		patches := vdom.DiffBatched(current, next)
		if err := vdom.Apply(tree, patches); err != nil {
			t.Fatalf("cycle %d: Apply: %v", cycle, err)
		}

		got, err := render.String(tree.Root())
		if err != nil {
			t.Fatalf("cycle %d: render live: %v", cycle, err)
		}
		want, err := render.String(next)
		if err != nil {
			t.Fatalf("cycle %d: render target: %v", cycle, err)
		}
		if got != want {
			t.Fatalf("cycle %d: live tree drifted\n got: %s\nwant: %s", cycle, got, want)
		}
		current = next
	}
}

// Duplicate sibling keys survive the whole rebuild pipeline: alignment
// leaves later duplicates on fresh IDs, the diff treats them as unmatched,
// and replay never sees an ID collision.
func TestRoundTripDuplicateKeys(t *testing.T) {
	buildDup := func(labels []string) *vdom.VNode {
		b := vdom.NewBuilder()
		children := make([]*vdom.VNode, len(labels))
		for i, label := range labels {
			children[i] = b.KeyedElement("a", "li", nil, b.Text(label))
		}
		return b.Element("ul", nil, children...)
	}

	tests := []struct {
		name string
		old  []string
		next []string
	}{
		{"unchanged", []string{"first", "second"}, []string{"first", "second"}},
		{"content change", []string{"first", "second"}, []string{"first", "changed"}},
		{"duplicate dropped", []string{"first", "second"}, []string{"first"}},
		{"duplicate added", []string{"first"}, []string{"first", "second"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			old := buildDup(tt.old)
			next := buildDup(tt.next)
			vdom.Align(old, next)
			replayEquals(t, old, next, vdom.Diff(old, next))
		})
	}
}

func TestRoundTripBatchedMatchesUnbatched(t *testing.T) {
	old := rows(30)
	next := rows(30)
	next.Children = append(next.Children[10:], next.Children[:5]...)

	plain, err := New(old)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	batched, err := New(old)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := vdom.Apply(plain, vdom.Diff(old, next)); err != nil {
		t.Fatalf("apply unbatched: %v", err)
	}
	if err := vdom.Apply(batched, vdom.DiffBatched(old, next)); err != nil {
		t.Fatalf("apply batched: %v", err)
	}

	a, err := render.String(plain.Root())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	b, err := render.String(batched.Root())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if a != b {
		t.Errorf("batched replay diverged\nunbatched: %s\n  batched: %s", a, b)
	}
}

package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/arbor-dev/arbor/internal/config"
	"github.com/arbor-dev/arbor/pkg/htmltree"
	"github.com/arbor-dev/arbor/pkg/protocol"
	"github.com/arbor-dev/arbor/pkg/render"
	"github.com/arbor-dev/arbor/pkg/vdom"
)

func diffCmd() *cobra.Command {
	var batch bool
	var markupDiff bool
	var stats bool
	var out string

	cmd := &cobra.Command{
		Use:   "diff <old.html> <new.html>",
		Short: "Diff two markup snapshots",
		Long: `Diff parses two markup snapshots, aligns identity from the old tree
onto the new one, and prints the patch script that transforms the old
snapshot into the new one.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(".")
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("batch") {
				batch = cfg.Diff.Batch
			}

			oldTree, err := parseTreeFile(args[0])
			if err != nil {
				return err
			}
			newTree, err := parseTreeFile(args[1])
			if err != nil {
				return err
			}

			vdom.Align(oldTree, newTree)

			var patches []vdom.Patch
			if batch {
				patches = vdom.DiffBatched(oldTree, newTree)
			} else {
				patches = vdom.Diff(oldTree, newTree)
			}

			if len(patches) == 0 {
				success("trees are identical, no patches")
			} else {
				success("%d patch(es)", len(patches))
				for i := range patches {
					info("%3d  %s", i+1, describePatch(&patches[i]))
				}
			}

			if stats {
				printStats(patches)
			}

			if markupDiff {
				if err := printMarkupDiff(args[0], args[1], oldTree, newTree); err != nil {
					return err
				}
			}

			if out != "" {
				frame := protocol.PatchFrame{Seq: 1, Patches: patches}
				if err := os.WriteFile(out, protocol.EncodePatches(&frame), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", out, err)
				}
				success("wrote binary frame to %s", out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&batch, "batch", false, "Merge contiguous patches into batch patches")
	cmd.Flags().BoolVar(&markupDiff, "markup-diff", false, "Also print a unified diff of the rendered markup")
	cmd.Flags().BoolVar(&stats, "stats", false, "Print per-operation patch counts")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the binary patch frame to a file")

	return cmd
}

// parseTreeFile reads one markup file into a VNode tree.
func parseTreeFile(path string) (*vdom.VNode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	tree, err := htmltree.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return tree, nil
}

// describePatch renders one patch as a human-readable line.
func describePatch(p *vdom.Patch) string {
	switch p.Op {
	case vdom.PatchAddRoot:
		return fmt.Sprintf("AddRoot %s", nodeSummary(p.Node))
	case vdom.PatchReplaceNode:
		return fmt.Sprintf("ReplaceNode %s -> %s", p.NodeID, nodeSummary(p.Node))
	case vdom.PatchInsertNode:
		return fmt.Sprintf("InsertNode %s[%d] = %s", p.ParentID, p.Index, nodeSummary(p.Node))
	case vdom.PatchRemoveNode:
		return fmt.Sprintf("RemoveNode %s", p.NodeID)
	case vdom.PatchSetText:
		return fmt.Sprintf("SetText %s -> %s %q", p.NodeID, p.NewID, p.Value)
	case vdom.PatchSetRaw:
		return fmt.Sprintf("SetRaw %s -> %s (%d bytes)", p.NodeID, p.NewID, len(p.Value))
	case vdom.PatchAddAttr:
		return fmt.Sprintf("AddAttr %s %s=%q", p.NodeID, p.Name, p.Value)
	case vdom.PatchSetAttr:
		return fmt.Sprintf("SetAttr %s %s=%q", p.NodeID, p.Name, p.Value)
	case vdom.PatchRemoveAttr:
		return fmt.Sprintf("RemoveAttr %s %s", p.NodeID, p.Name)
	case vdom.PatchAddHandler:
		return fmt.Sprintf("AddHandler %s on:%s=%q", p.NodeID, p.Name, p.Value)
	case vdom.PatchSetHandler:
		return fmt.Sprintf("SetHandler %s on:%s=%q ref=%v", p.NodeID, p.Name, p.Value, p.HasRef)
	case vdom.PatchRemoveHandler:
		return fmt.Sprintf("RemoveHandler %s on:%s", p.NodeID, p.Name)
	case vdom.PatchInsertNodes:
		return fmt.Sprintf("InsertNodes %s[%d] x%d", p.ParentID, p.Index, len(p.Nodes))
	case vdom.PatchRemoveNodes:
		return fmt.Sprintf("RemoveNodes [%s]", strings.Join(p.NodeIDs, " "))
	case vdom.PatchInsertTexts:
		return fmt.Sprintf("InsertTexts %s[%d] x%d", p.ParentID, p.Index, len(p.Texts))
	case vdom.PatchInsertRaws:
		return fmt.Sprintf("InsertRaws %s[%d] x%d", p.ParentID, p.Index, len(p.Texts))
	default:
		return fmt.Sprintf("%s %s", p.Op, p.NodeID)
	}
}

// nodeSummary renders a short description of a patch payload node.
func nodeSummary(node *vdom.VNode) string {
	if node == nil {
		return "<nil>"
	}
	switch node.Kind {
	case vdom.KindElement:
		return fmt.Sprintf("<%s id=%s children=%d>", node.Tag, node.ID, len(node.Children))
	case vdom.KindText:
		return fmt.Sprintf("text id=%s %q", node.ID, node.Text)
	case vdom.KindRaw:
		return fmt.Sprintf("raw id=%s (%d bytes)", node.ID, len(node.Text))
	default:
		return fmt.Sprintf("%s id=%s", node.Kind, node.ID)
	}
}

// printStats prints per-op patch counts.
func printStats(patches []vdom.Patch) {
	counts := make(map[string]int)
	for i := range patches {
		counts[patches[i].Op.String()]++
	}
	ops := make([]string, 0, len(counts))
	for op := range counts {
		ops = append(ops, op)
	}
	sort.Strings(ops)

	fmt.Println()
	info("patch operations:")
	for _, op := range ops {
		info("  %-14s %d", op, counts[op])
	}
}

// printMarkupDiff prints a unified diff of the two rendered snapshots.
func printMarkupDiff(oldName, newName string, oldTree, newTree *vdom.VNode) error {
	pretty := render.New(render.Config{Pretty: true})
	oldHTML, err := pretty.RenderString(oldTree)
	if err != nil {
		return err
	}
	newHTML, err := pretty.RenderString(newTree)
	if err != nil {
		return err
	}

	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(oldHTML),
		B:        difflib.SplitLines(newHTML),
		FromFile: oldName,
		ToFile:   newName,
		Context:  3,
	})
	if err != nil {
		return fmt.Errorf("markup diff: %w", err)
	}
	fmt.Println()
	fmt.Print(text)
	return nil
}

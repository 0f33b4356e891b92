package protocol

// Depth limits to prevent stack overflow attacks via deeply nested
// structures. These complement the allocation limits in decoder.go.
const (
	// MaxNodeDepth limits the nesting depth of encoded VNode trees.
	// 256 levels is sufficient for any reasonable UI hierarchy.
	MaxNodeDepth = 256

	// MaxPatchDepth limits the nesting depth of patch payloads. Patches
	// carry VNodes (AddRoot, ReplaceNode, inserts), so this bounds node
	// nesting inside a patch stream.
	MaxPatchDepth = 128
)

// checkDepth returns ErrMaxDepthExceeded once current passes max.
func checkDepth(current, max int) error {
	if current > max {
		return ErrMaxDepthExceeded
	}
	return nil
}

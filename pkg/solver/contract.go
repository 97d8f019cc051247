package solver

import "github.com/cfrtree/cfrtree/pkg/tree"

// Solver is the minimal surface exposed to a reporter: run iterations and
// query the converged strategy. *CFR satisfies it; a reporter needs
// nothing else to read out a solved tree.
type Solver[S any] interface {
	// Iterate runs one solver iteration starting at root, sampling
	// sampledState as this iteration's information-state partition.
	Iterate(root *tree.RootNode, sampledState *S)

	// GetStrategy writes the output strategy over the sibling group
	// starting at node, at parameter slot paramIdx, into out.
	GetStrategy(node tree.NodePtr, paramIdx int, out []float32)

	// GetUtilities is reserved for a future reporter that wants the raw
	// per-player utility vector a subtree resolves to, without re-running
	// cfr. Not used by the engine itself today.
	GetUtilities(node tree.NodePtr, out []float32)
}

var _ Solver[struct{}] = (*CFR[struct{}, struct{}, struct{}])(nil)

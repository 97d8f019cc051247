package tree

import (
	"fmt"

	"github.com/cfrtree/cfrtree/pkg/arena"
	"github.com/hashicorp/go-multierror"
)

// CheckActionSiblingGroup verifies, for one group of n action siblings
// with parameter count k starting at first, the two structural
// properties spec.md §3/§8 require:
//
//   - contiguity: child j's Parameters() pointer equals the parameter
//     block base plus j*k;
//   - sibling count: walking next_sibling yields exactly n nodes.
//
// Every violation found is collected rather than returning on the first,
// via go-multierror, since a single misallocation can otherwise mask a
// second, unrelated one in the same sibling group.
func CheckActionSiblingGroup[A any, P any](first NodePtr, n int, k int) error {
	var result *multierror.Error

	siblings := Siblings(first)
	if len(siblings) != n {
		result = multierror.Append(result, fmt.Errorf("sibling list has %d nodes, want %d", len(siblings), n))
	}

	var base *P
	for j, s := range siblings {
		node := AsAction[A, P](s)
		if j == 0 {
			base = node.Parameters()
			continue
		}
		want := arena.Index(base, j*k)
		if node.Parameters() != want {
			result = multierror.Append(result, fmt.Errorf(
				"child %d parameters pointer = %p, want base+%d*%d = %p", j, node.Parameters(), j, k, want))
		}
	}

	return result.ErrorOrNil()
}

// CheckParametersZero verifies every one of n*k freshly allocated
// CfrParameter-shaped slots reads back as zero, given an accessor that
// extracts (regret, strategy) from slot i. It is generic over the
// accessor rather than the concrete parameter type so it can be reused by
// pkg/solver's tests without an import cycle.
func CheckParametersZero(n int, get func(i int) (regret, strategy float32)) error {
	var result *multierror.Error
	for i := 0; i < n; i++ {
		regret, strategy := get(i)
		if regret != 0 {
			result = multierror.Append(result, fmt.Errorf("slot %d cumulative_regret = %v, want 0", i, regret))
		}
		if strategy != 0 {
			result = multierror.Append(result, fmt.Errorf("slot %d cumulative_strategy = %v, want 0", i, strategy))
		}
	}
	return result.ErrorOrNil()
}

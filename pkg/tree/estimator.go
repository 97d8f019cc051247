package tree

import (
	"github.com/cfrtree/cfrtree/pkg/arena"
	"github.com/cfrtree/cfrtree/pkg/gamedef"
)

// Counts tallies what a full tree build from a given root would consume:
// the number of action nodes, chance nodes, and total parameter slots.
type Counts struct {
	ActionNodes int
	ChanceNodes int
	Parameters  int
}

// MemoryBounds is the (min, max) byte range computed from Counts: min is
// the exact byte count a real allocation produces, and max adds the
// largest possible alignment slack a root node's own alignment could
// introduce ahead of the first sibling group.
type MemoryBounds struct {
	Min int
	Max int
}

// Estimator walks a game tree without allocating real memory, tallying
// node and parameter counts so a caller can presize an Arena exactly (up
// to alignment slack) before building it for real. It is generic over the
// same S, A, C, P the Builder uses, so its DummyArena-driven accounting
// makes identical padding decisions to the real allocator.
type Estimator[S any, A any, C any, P any] struct {
	Game gamedef.FullGame[S, A, C]
}

// NewEstimator constructs an Estimator for g.
func NewEstimator[S any, A any, C any, P any](g gamedef.FullGame[S, A, C]) *Estimator[S, A, C, P] {
	return &Estimator[S, A, C, P]{Game: g}
}

// FromRoot walks the tree rooted at state and returns its counts together
// with the corresponding memory bounds.
func (e *Estimator[S, A, C, P]) FromRoot(state *S) (Counts, MemoryBounds) {
	d := arena.NewUnboundedDummy()
	var counts Counts

	// Root node itself.
	if err := d.Reserve(1, arena.SizeOf[RootNode](), arena.AlignOf[RootNode]()); err != nil {
		panic("tree: estimator root reservation failed on an unbounded dummy")
	}

	e.walk(state, d, &counts)

	min := d.Len()
	max := min + arena.AlignOf[RootNode]() - 1
	return counts, MemoryBounds{Min: min, Max: max}
}

// Fits reports whether the tree rooted at state would fit a real Arena of
// budgetBytes, by re-driving a bounded Dummy over the same walk. Useful
// for callers that want to verify a budget without committing to it.
func (e *Estimator[S, A, C, P]) Fits(state *S, budgetBytes int) bool {
	d := arena.NewDummy(budgetBytes)
	if err := d.Reserve(1, arena.SizeOf[RootNode](), arena.AlignOf[RootNode]()); err != nil {
		return false
	}
	var counts Counts
	ok := true
	func() {
		defer func() {
			if recover() != nil {
				ok = false
			}
		}()
		e.walk(state, d, &counts)
	}()
	return ok
}

func (e *Estimator[S, A, C, P]) walk(state *S, d *arena.Dummy, counts *Counts) {
	stage := e.Game.GetStage(state)
	if stage.Kind == gamedef.StageTerminal {
		return
	}

	var events []gamedef.Event[A, C]
	e.Game.PopulateEvents(state, &events)
	n := len(events)
	if n == 0 {
		return
	}

	if stage.Kind == gamedef.StageAction {
		k := e.Game.ParameterCount(state)
		if err := d.Reserve(n, arena.SizeOf[ActionNode[A, P]](), arena.AlignOf[ActionNode[A, P]]()); err != nil {
			panic(err)
		}
		if err := d.Reserve(n*k, arena.SizeOf[P](), arena.AlignOf[P]()); err != nil {
			panic(err)
		}
		counts.ActionNodes += n
		counts.Parameters += n * k
	} else {
		if err := d.Reserve(n, arena.SizeOf[ChanceNode[C]](), arena.AlignOf[ChanceNode[C]]()); err != nil {
			panic(err)
		}
		counts.ChanceNodes += n
	}

	for _, ev := range events {
		child := e.Game.CloneState(state)
		e.Game.AdvanceState(child, ev)
		e.walk(child, d, counts)
	}
}

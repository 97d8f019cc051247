package tree

import (
	"testing"

	"github.com/cfrtree/cfrtree/pkg/arena"
	"github.com/cfrtree/cfrtree/pkg/gamedef"
)

// binaryGame is a minimal synthetic FullGame used only by this package's
// own tests: a fixed-depth binary action tree with no chance nodes, two
// actions per decision, and a single parameter slot (K=1, since every
// decision belongs to the same lone player and info partition).
type binaryGame struct {
	depth int
}

type binaryState struct {
	remaining int
}

func (g *binaryGame) CloneState(s *binaryState) *binaryState {
	cp := *s
	return &cp
}

func (g *binaryGame) AdvanceState(s *binaryState, ev gamedef.Event[int, int]) {
	if ev.IsChance {
		panic("binaryGame: chance event at an action-only game")
	}
	s.remaining--
}

func (g *binaryGame) PopulateEvents(s *binaryState, out *[]gamedef.Event[int, int]) {
	*out = (*out)[:0]
	if s.remaining <= 0 {
		return
	}
	*out = append(*out, gamedef.Event[int, int]{Action: 0}, gamedef.Event[int, int]{Action: 1})
}

func (g *binaryGame) GetStage(s *binaryState) gamedef.Stage {
	if s.remaining <= 0 {
		return gamedef.Stage{Kind: gamedef.StageTerminal}
	}
	return gamedef.Stage{Kind: gamedef.StageAction, Player: 0}
}

func (g *binaryGame) GetChanceWeight(s *binaryState, c int) float32 { panic("no chance nodes") }
func (g *binaryGame) SampleChance(s *binaryState, rng gamedef.PRNG) (int, int) {
	panic("no chance nodes")
}
func (g *binaryGame) GetBranchingHint(s *binaryState) int { return 2 }
func (g *binaryGame) GetTerminalUtilities(s *binaryState, out []float32) {
	out[0] = 1
}
func (g *binaryGame) ParameterCount(s *binaryState) int { return 1 }
func (g *binaryGame) ParameterIndex(s *binaryState) int { return 0 }

func TestEstimatorAndBuilder_BoundsBracketActualLength(t *testing.T) {
	g := &binaryGame{depth: 4}
	est := NewEstimator[binaryState, int, int, testParam](g)
	counts, bounds := est.FromRoot(&binaryState{remaining: g.depth})

	// A full binary tree of depth d has 2^1+2^2+...+2^d action nodes.
	want := 0
	for i := 1; i <= g.depth; i++ {
		want += 1 << uint(i)
	}
	if counts.ActionNodes != want {
		t.Fatalf("ActionNodes = %d, want %d", counts.ActionNodes, want)
	}
	if counts.ChanceNodes != 0 {
		t.Fatalf("ChanceNodes = %d, want 0", counts.ChanceNodes)
	}
	if counts.Parameters != want {
		t.Fatalf("Parameters = %d, want %d (K=1)", counts.Parameters, want)
	}

	a := arena.New(bounds.Max)
	builder := NewBuilder[binaryState, int, int, testParam](g)
	root, err := builder.AllocateTree(a, &binaryState{remaining: g.depth})
	if err != nil {
		t.Fatalf("AllocateTree: %v", err)
	}
	if root == nil {
		t.Fatal("AllocateTree returned nil root")
	}

	if a.Len() < bounds.Min || a.Len() > bounds.Max {
		t.Fatalf("arena.Len()=%d not within estimated bounds [%d,%d]", a.Len(), bounds.Min, bounds.Max)
	}
}

func TestBuilder_TerminalStatesGetNoChildren(t *testing.T) {
	g := &binaryGame{depth: 1}
	est := NewEstimator[binaryState, int, int, testParam](g)
	_, bounds := est.FromRoot(&binaryState{remaining: g.depth})

	a := arena.New(bounds.Max)
	builder := NewBuilder[binaryState, int, int, testParam](g)
	root, err := builder.AllocateTree(a, &binaryState{remaining: g.depth})
	if err != nil {
		t.Fatalf("AllocateTree: %v", err)
	}

	first := root.FirstChild()
	if first == nil {
		t.Fatal("expected root to have children")
	}
	for _, s := range Siblings(first) {
		node := AsAction[int, testParam](s)
		if node.FirstChild() != nil {
			t.Errorf("leaf-depth action node should have no children")
		}
	}
}

func TestBuilding_Twice_ProducesIdenticalByteCounts(t *testing.T) {
	g := &binaryGame{depth: 3}
	est := NewEstimator[binaryState, int, int, testParam](g)
	_, bounds := est.FromRoot(&binaryState{remaining: g.depth})

	builder := NewBuilder[binaryState, int, int, testParam](g)

	a1 := arena.New(bounds.Max)
	if _, err := builder.AllocateTree(a1, &binaryState{remaining: g.depth}); err != nil {
		t.Fatalf("first AllocateTree: %v", err)
	}

	a2 := arena.New(bounds.Max)
	if _, err := builder.AllocateTree(a2, &binaryState{remaining: g.depth}); err != nil {
		t.Fatalf("second AllocateTree: %v", err)
	}

	if a1.Len() != a2.Len() {
		t.Fatalf("a1.Len()=%d a2.Len()=%d, expected identical builds", a1.Len(), a2.Len())
	}
}

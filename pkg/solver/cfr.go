package solver

import (
	"github.com/chewxy/math32"

	"github.com/cfrtree/cfrtree/pkg/gamedef"
	"github.com/cfrtree/cfrtree/pkg/tree"
)

// CFR is a vanilla Counterfactual Regret Minimization engine. All mutable
// solver state lives in the tree's CfrParameter slots; CFR itself holds
// nothing beyond the game it solves and the player count.
type CFR[S any, A any, C any] struct {
	game    gamedef.FullGame[S, A, C]
	players int
}

// New constructs a CFR engine for game with the given (compile-time fixed)
// player count.
func New[S any, A any, C any](game gamedef.FullGame[S, A, C], players int) *CFR[S, A, C] {
	if players <= 0 {
		panic("solver: players must be positive")
	}
	return &CFR[S, A, C]{game: game, players: players}
}

// Iterate runs one CFR iteration starting at root's first child, using
// sampledState as the single information-state partition sampled for this
// iteration, and discards the returned utilities.
func (c *CFR[S, A, C]) Iterate(root *tree.RootNode, sampledState *S) {
	first := root.FirstChild()
	if first == nil {
		return
	}

	paramIdx := 0
	if c.game.GetStage(sampledState).Kind == gamedef.StageAction {
		paramIdx = c.game.ParameterIndex(sampledState)
	}

	reach := make([]float32, c.players)
	for i := range reach {
		reach[i] = 1
	}

	_ = c.cfr(first, sampledState, paramIdx, reach)
}

// cfr recurses over node/state in lockstep, exactly per spec.md §4.7:
// terminal states return utilities directly; chance stages weight-and-sum
// over children without scaling the outbound reach vector; action stages
// regret-match over the sibling group at paramIdx, update regret and
// strategy in place, and recurse with each child's own parameter index.
func (c *CFR[S, A, C]) cfr(node tree.NodePtr, state *S, paramIdx int, reach []float32) []float32 {
	stage := c.game.GetStage(state)

	switch stage.Kind {
	case gamedef.StageTerminal:
		utilities := make([]float32, c.players)
		c.game.GetTerminalUtilities(state, utilities)
		return utilities

	case gamedef.StageChance:
		return c.cfrChance(node, state, reach)

	case gamedef.StageAction:
		return c.cfrAction(node, state, stage.Player, paramIdx, reach)

	default:
		panic("solver: unknown stage kind")
	}
}

func (c *CFR[S, A, C]) cfrChance(node tree.NodePtr, state *S, reach []float32) []float32 {
	utilities := make([]float32, c.players)

	for sib := node; sib != nil; sib = tree.NextSiblingOf(sib) {
		chanceNode := tree.AsChance[C](sib)
		chance := chanceNode.Result()
		w := c.game.GetChanceWeight(state, chance)

		childState := c.game.CloneState(state)
		c.game.AdvanceState(childState, gamedef.Event[A, C]{IsChance: true, Chance: chance})

		childParamIdx := 0
		if c.game.GetStage(childState).Kind == gamedef.StageAction {
			childParamIdx = c.game.ParameterIndex(childState)
		}

		childFirst := tree.FirstChildOf(sib)
		childUtil := c.cfr(childFirst, childState, childParamIdx, reach)
		for p := 0; p < c.players; p++ {
			utilities[p] += w * childUtil[p]
		}
	}
	return utilities
}

func (c *CFR[S, A, C]) cfrAction(node tree.NodePtr, state *S, player int, paramIdx int, reach []float32) []float32 {
	siblings := tree.Siblings(node)
	numActions := len(siblings)

	actionNodes := make([]*tree.ActionNode[A, CfrParameter], numActions)
	params := make([]*CfrParameter, numActions)
	for i, sib := range siblings {
		actionNodes[i] = tree.AsAction[A, CfrParameter](sib)
		params[i] = actionNodes[i].ParamAt(paramIdx)
	}

	sigma := regretMatchingStrategy(params)

	utilities := make([]float32, c.players)
	actionUtil := make([][]float32, numActions)

	for i := 0; i < numActions; i++ {
		nextReach := make([]float32, c.players)
		copy(nextReach, reach)
		nextReach[player] = reach[player] * sigma[i]

		params[i].addStrategy(nextReach[player])

		childState := c.game.CloneState(state)
		c.game.AdvanceState(childState, gamedef.Event[A, C]{Action: actionNodes[i].Action()})

		childParamIdx := 0
		if c.game.GetStage(childState).Kind == gamedef.StageAction {
			childParamIdx = c.game.ParameterIndex(childState)
		}

		childFirst := tree.FirstChildOf(siblings[i])
		u := c.cfr(childFirst, childState, childParamIdx, nextReach)
		actionUtil[i] = u

		for p := 0; p < c.players; p++ {
			utilities[p] += sigma[i] * u[p]
		}
	}

	// Counterfactual reach of opponents+chance: product of all reach
	// entries except player's own, which is replaced by 1.
	cfReach := float32(1)
	for p := 0; p < c.players; p++ {
		if p == player {
			continue
		}
		cfReach *= reach[p]
	}

	for i := 0; i < numActions; i++ {
		regretDelta := (actionUtil[i][player] - utilities[player]) * cfReach
		params[i].addRegret(regretDelta)
	}

	return utilities
}

// regretMatchingStrategy computes the current strategy over one sibling
// group's parameters by regret matching: proportional to positive
// cumulative regret, or uniform if none is positive.
func regretMatchingStrategy(params []*CfrParameter) []float32 {
	n := len(params)
	sigma := make([]float32, n)

	var posTotal float32
	for i, p := range params {
		r := math32.Max(p.CumulativeRegret(), 0)
		sigma[i] = r
		posTotal += r
	}

	if posTotal > 0 {
		for i := range sigma {
			sigma[i] /= posTotal
		}
	} else {
		uniform := 1 / float32(n)
		for i := range sigma {
			sigma[i] = uniform
		}
	}
	return sigma
}

// GetStrategy reads the time-averaged strategy over the sibling group
// starting at node (all variant tree.ActionNode[A, CfrParameter]) at
// paramIdx: the normalized cumulative strategy if positive, uniform
// otherwise. This is CFR's output strategy — regret-matching drives
// sampling, this drives reporting.
func (c *CFR[S, A, C]) GetStrategy(node tree.NodePtr, paramIdx int, out []float32) {
	siblings := tree.Siblings(node)
	if len(out) != len(siblings) {
		panic("solver: GetStrategy output buffer has the wrong length")
	}

	var total float32
	for i, sib := range siblings {
		p := tree.AsAction[A, CfrParameter](sib).ParamAt(paramIdx)
		out[i] = math32.Max(p.CumulativeStrategy(), 0)
		total += out[i]
	}

	if total > 0 {
		for i := range out {
			out[i] /= total
		}
		return
	}
	uniform := 1 / float32(len(siblings))
	for i := range out {
		out[i] = uniform
	}
}

// GetUtilities is reserved per the solver contract; no reporter in this
// repository uses it yet, so it is unimplemented rather than guessed at.
func (c *CFR[S, A, C]) GetUtilities(node tree.NodePtr, out []float32) {
	panic("solver: GetUtilities is reserved and not yet implemented")
}

// Package kuhn is a sample Kuhn poker game used only as a test harness for
// pkg/tree and pkg/solver. Concrete game rules are explicitly out of the
// hard core's scope; this package exists solely so the kernel has something
// concrete to build trees from and solve in its own test suite (spec.md
// §8's Kuhn fixtures).
//
// Game and State are player-count agnostic: N is simply len(State.Cards),
// mirroring original_source/kuhn/src/lib.rs's KuhnGame<const N: usize> (Go
// has no const generics, so the count is carried at the value level
// instead of the type level). Each player is dealt one card from an
// (N+1)-card deck (ranks 0..N), the standard generalization of 2-player
// Kuhn poker to N players. Betting is single-round, no-raise: the first
// player to bet is matched or folded by every other player exactly once,
// in turn order starting immediately after the bettor.
package kuhn

import "github.com/cfrtree/cfrtree/pkg/gamedef"

// Players and DeckSize describe this repository's primary sample harness:
// spec.md §8 scenario 4's 3-player fixture. Game and State themselves
// support any player count via NewDeal/DealRandom (see
// TestEstimator_TwoPlayerAllocationFit and TestGetTerminalUtilities_TwoPlayerFixtures
// in kuhn_test.go for the 2-player instance scenarios 5 and 6 require).
const (
	Players  = 3
	DeckSize = Players + 1
)

// Action is the single binary choice available at every Kuhn decision
// point: Pass (or, facing a bet, Fold) versus Bet (or, facing a bet,
// Call). The two contexts share one representation because they are
// mechanically identical: a chip commitment, or none.
type Action uint8

const (
	// PassOrFold declines to add chips.
	PassOrFold Action = iota
	// BetOrCall commits one extra chip.
	BetOrCall
)

// Chance is unused: this harness's tree is built from an already-dealt
// state, so no chance node is ever materialized (see DealRandom and
// SampleChance). The type exists only to satisfy gamedef.Game's type
// parameter.
type Chance struct{}

// State is one node of Kuhn's game state: who holds which card (Cards has
// one entry per player, fixing N), whether anyone has bet, which players
// have matched that bet, whose turn it is, and whether play has reached
// showdown. Mirrors original_source/kuhn/src/lib.rs's KuhnState<const N>
// field-for-field (cards, bet, called, stage), except stage collapses to
// (ToAct, Showdown) rather than a separate enum.
type State struct {
	Cards    []uint8
	Bet      bool
	Called   []bool
	ToAct    int
	Showdown bool
}

// NewDeal returns a fresh pre-action state for the given per-player card
// assignment (each in [0, len(cards)]), player 0 to act first. len(cards)
// fixes this state's player count for its whole lifetime.
func NewDeal(cards []uint8) *State {
	cardsCopy := make([]uint8, len(cards))
	copy(cardsCopy, cards)
	return &State{Cards: cardsCopy, Called: make([]bool, len(cards))}
}

// Game implements gamedef.FullGame[State, Action, Chance] for Kuhn poker,
// generic over the player count fixed by each State's Cards length.
type Game struct{}

var _ gamedef.FullGame[State, Action, Chance] = Game{}

// CloneState returns an independent copy of s, including its own copies
// of the Cards and Called slices so sibling recursions never alias.
func (Game) CloneState(s *State) *State {
	cp := *s
	cp.Cards = append([]uint8(nil), s.Cards...)
	cp.Called = append([]bool(nil), s.Called...)
	return &cp
}

// AdvanceState applies ev to s in place, per
// original_source/kuhn/src/lib.rs's advance_state: once any player bets,
// every other player responds exactly once with Call (Bet) or Fold
// (Pass), in turn order starting immediately after the bettor; showdown
// is reached either by a full round of checks or once the response chain
// wraps back around to the bettor. Panics if ev carries a chance payload
// (this harness never reaches a chance stage) or if s is already at
// showdown.
func (Game) AdvanceState(s *State, ev gamedef.Event[Action, Chance]) {
	if ev.IsChance {
		panic("kuhn: chance event advanced against a game with no chance stages")
	}
	if s.Showdown {
		panic("kuhn: cannot advance a state that is at showdown")
	}

	n := len(s.Cards)
	player := s.ToAct
	next := (player + 1) % n

	switch {
	case s.Bet:
		if ev.Action == BetOrCall {
			s.Called[player] = true
		}
		if s.Called[next] {
			s.Showdown = true
		} else {
			s.ToAct = next
		}
	case ev.Action == BetOrCall:
		s.Bet = true
		s.Called[player] = true
		s.ToAct = next
	case next < player:
		// Checked, and was the last player to act this round.
		s.Showdown = true
	default:
		s.ToAct = next
	}
}

// PopulateEvents clears out and appends the two legal events for any
// non-terminal state.
func (Game) PopulateEvents(s *State, out *[]gamedef.Event[Action, Chance]) {
	*out = (*out)[:0]
	if s.Showdown {
		return
	}
	*out = append(*out,
		gamedef.Event[Action, Chance]{Action: BetOrCall},
		gamedef.Event[Action, Chance]{Action: PassOrFold},
	)
}

// GetStage classifies s: terminal at showdown, otherwise an action stage
// for ToAct.
func (Game) GetStage(s *State) gamedef.Stage {
	if s.Showdown {
		return gamedef.Stage{Kind: gamedef.StageTerminal}
	}
	return gamedef.Stage{Kind: gamedef.StageAction, Player: s.ToAct}
}

// GetChanceWeight never runs: this harness's states never reach a chance
// stage.
func (Game) GetChanceWeight(s *State, c Chance) float32 {
	panic("kuhn: GetChanceWeight called on a game with no chance stages")
}

// SampleChance never runs, for the same reason. Random deals are dealt
// externally by DealRandom, not by an in-tree chance node.
func (Game) SampleChance(s *State, rng gamedef.PRNG) (Chance, int) {
	panic("kuhn: SampleChance called on a game with no chance stages")
}

// GetBranchingHint is a non-binding presizing hint: every Kuhn decision is
// binary, and showdown has none.
func (Game) GetBranchingHint(s *State) int {
	if s.Showdown {
		return 0
	}
	return 2
}

// GetTerminalUtilities computes each player's net chip result at the
// terminal state s, per original_source/kuhn/src/lib.rs's
// get_terminal_utilities: the pot is N antes plus one extra chip per
// player who called (or made) the bet; the winner is the highest card
// among callers if a bet was made, or the highest card overall otherwise;
// winners net pot-2 if they called (or made) the bet, pot-1 if no bet was
// made, and non-winners net -2 if they called, -1 otherwise.
func (Game) GetTerminalUtilities(s *State, out []float32) {
	if !s.Showdown {
		panic("kuhn: GetTerminalUtilities called before showdown")
	}
	n := len(s.Cards)
	if len(out) != n {
		panic("kuhn: GetTerminalUtilities output buffer has the wrong length")
	}

	calledCount := 0
	for _, c := range s.Called {
		if c {
			calledCount++
		}
	}
	pot := float32(n + calledCount)

	winner := -1
	best := -1
	for i, c := range s.Cards {
		if s.Bet && !s.Called[i] {
			continue
		}
		// >= matches the reference's max_by_key, which returns the last
		// of equally-maximum elements; cards are unique in a real deal,
		// so this only matters for hand-constructed fixture states.
		if int(c) >= best {
			best = int(c)
			winner = i
		}
	}

	for i := range out {
		switch {
		case i == winner && s.Called[i]:
			out[i] = pot - 2
		case i == winner:
			out[i] = pot - 1
		case s.Called[i]:
			out[i] = -2
		default:
			out[i] = -1
		}
	}
}

// ParameterCount is constant for a given player count: N+1 slots, one per
// possible private card.
func (Game) ParameterCount(s *State) int { return len(s.Cards) + 1 }

// ParameterIndex returns the acting player's own card rank. Panics if s
// is not at an action stage.
func (Game) ParameterIndex(s *State) int {
	stage := Game{}.GetStage(s)
	if stage.Kind != gamedef.StageAction {
		panic("kuhn: ParameterIndex called on a non-action state")
	}
	return int(s.Cards[stage.Player])
}

// DealRandom draws a uniformly random injective assignment of players of
// the players+1 deck ranks using rng, and returns the corresponding fresh
// State. Used by the training harness to sample a new information-state
// partition each CFR iteration; a statically built tree can be reused
// across deals dealt this way, since tree shape does not depend on which
// cards were dealt.
func DealRandom(rng gamedef.PRNG, players int) *State {
	deck := make([]uint8, players+1)
	for i := range deck {
		deck[i] = uint8(i)
	}
	// Fisher-Yates over the first `players` elements.
	for i := 0; i < players; i++ {
		j := i + int(rng.Uint32()%uint32(players+1-i))
		deck[i], deck[j] = deck[j], deck[i]
	}
	return NewDeal(deck[:players])
}

// Package gamedef is the narrow contract by which the tree builder and the
// CFR engine observe an arbitrary extensive-form game. It defines no
// concrete game: Kuhn poker, hold'em state machines, and card/rank/suit
// utilities are external collaborators that implement this contract (see
// internal/kuhn for the sample used by this repo's own tests).
package gamedef

// StageKind classifies a state into exactly one of the three disjoint
// buckets a game can be in.
type StageKind uint8

const (
	// StageAction means a player must choose among populate-events
	// output, i.e. the next sibling group will be action nodes.
	StageAction StageKind = iota
	// StageChance means chance picks the next event; the next sibling
	// group will be chance nodes.
	StageChance
	// StageTerminal means the state has no children; get_terminal_utilities
	// may be called on it.
	StageTerminal
)

// Stage is the classification of a game state. Player is only meaningful
// when Kind == StageAction.
type Stage struct {
	Kind   StageKind
	Player int
}

// Event is the tagged union Action(A) | Chance(C) from the data model.
// Exactly one of Action/Chance is meaningful, selected by IsChance.
type Event[A any, C any] struct {
	IsChance bool
	Action   A
	Chance   C
}

// PRNG is satisfied by anything that can produce a u32/u64 on demand. The
// JKISS32 generator in pkg/rng is one concrete, reproducible instance;
// Game.SampleChance accepts any implementation.
type PRNG interface {
	Uint32() uint32
	Uint64() uint64
}

// Game supplies everything the tree builder and CFR engine need to
// observe an arbitrary extensive-form game: advancing states, listing
// legal events in deterministic order, classifying stages, weighing and
// sampling chance outcomes, and scoring terminals.
//
// State must be independently clonable; games that prefer make/undo over
// cloning may implement CloneState as a genuine copy and still satisfy
// this contract, at the cost of giving up the make/undo optimization
// spec.md §4.5 allows.
type Game[S any, A any, C any] interface {
	// CloneState returns an independent copy of state, so that sibling
	// recursions do not observe each other's mutations.
	CloneState(state *S) *S

	// AdvanceState transitions state in place by ev. It panics if ev is
	// inconsistent with the state's current stage (e.g. a chance event
	// presented at an action stage) — a contract violation, not a
	// recoverable error.
	AdvanceState(state *S, ev Event[A, C])

	// PopulateEvents clears out and appends either all legal actions or
	// all possible chance outcomes for state, never a mix. The order is
	// significant and must be deterministic for a given state: position i
	// of the output corresponds to sibling i in the arena.
	PopulateEvents(state *S, out *[]Event[A, C])

	// GetStage classifies state.
	GetStage(state *S) Stage

	// GetChanceWeight returns the probability weight of chance outcome c
	// at state. Weights across one sibling group sum to 1.
	GetChanceWeight(state *S, c C) float32

	// SampleChance draws one chance event together with its index in the
	// order PopulateEvents would produce, using rng for randomness.
	SampleChance(state *S, rng PRNG) (C, int)

	// GetBranchingHint returns a non-binding hint used only to presize
	// buffers during estimation; it never affects correctness.
	GetBranchingHint(state *S) int

	// GetTerminalUtilities writes each player's payoff for state into out,
	// which has length equal to the player count. It panics if state is
	// not terminal or out has the wrong length.
	GetTerminalUtilities(state *S, out []float32)
}

// ParameterMapping supplies the per-information-set addressing a game
// needs alongside Game: how many parameter slots each action sibling
// group has, and which of those slots the current state maps to.
type ParameterMapping[S any] interface {
	// ParameterCount returns K, the number of parameter slots per action
	// sibling in the group of state's own children. It is constant
	// across all sibling groups whose parent states share a stage-kind.
	ParameterCount(state *S) int

	// ParameterIndex returns which of the K slots the current information
	// partition (e.g. the acting player's private card) maps to. It
	// panics if state is not at an action stage.
	ParameterIndex(state *S) int
}

// FullGame composes Game and ParameterMapping: the complete surface the
// tree package and solver package require from a host application.
type FullGame[S any, A any, C any] interface {
	Game[S, A, C]
	ParameterMapping[S]
}

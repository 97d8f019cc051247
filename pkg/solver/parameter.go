// Package solver implements vanilla Counterfactual Regret Minimization
// (CFR) over a tree built by pkg/tree: a recursive, player-symmetric pass
// that maintains per-action cumulative regret and cumulative strategy
// with regret-matching, reading and writing the arena's parameter slots
// in place.
package solver

import "github.com/cfrtree/cfrtree/pkg/vcell"

// CfrParameter is the Parameter type CFR allocates one of per (action
// sibling, information-set slot): two float32 fields, each behind a
// volatile cell so a concurrent reader observes monotonic updates.
// Initialized to zero at allocation.
type CfrParameter struct {
	regret   vcell.Float32
	strategy vcell.Float32
}

// Init zero-fills the parameter. The zero value is already zero, so this
// exists only to satisfy tree.Initializer — CFR's own Parameter trait
// implementation is the zero-fill the spec calls out explicitly.
func (p *CfrParameter) Init() {
	p.regret.Store(0)
	p.strategy.Store(0)
}

// CumulativeRegret returns the current cumulative regret.
func (p *CfrParameter) CumulativeRegret() float32 { return p.regret.Load() }

// CumulativeStrategy returns the current cumulative strategy.
func (p *CfrParameter) CumulativeStrategy() float32 { return p.strategy.Load() }

// addRegret adds delta to cumulative regret and returns the new value.
func (p *CfrParameter) addRegret(delta float32) float32 { return p.regret.Add(delta) }

// addStrategy adds delta to cumulative strategy and returns the new value.
func (p *CfrParameter) addStrategy(delta float32) float32 { return p.strategy.Add(delta) }

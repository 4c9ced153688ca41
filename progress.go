package evergreen

import (
	"fmt"
	"math"
)

// Policy selects how an Integrator moves progress towards its target.
type Policy uint8

const (
	// PolicyLinear moves progress by at most dt*rate*speed per frame.
	PolicyLinear Policy = iota
	// PolicyProportional moves progress by (target-p)*dt*rate*speed per
	// frame, an exponential approach where slow entities visibly lag.
	PolicyProportional
)

func (p Policy) String() string {
	switch p {
	case PolicyLinear:
		return "linear"
	case PolicyProportional:
		return "proportional"
	default:
		return fmt.Sprintf("Policy(%d)", uint8(p))
	}
}

// ParsePolicy parses "linear" or "proportional".
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "linear":
		return PolicyLinear, nil
	case "proportional":
		return PolicyProportional, nil
	}
	return 0, fmt.Errorf("%w: unknown policy %q", ErrInvalidConfig, s)
}

// SnapEpsilon is the remaining distance below which the proportional policy
// lands exactly on its target.
const SnapEpsilon = 1e-4

// Integrator owns the progress values of one population. Each value starts
// at 0 (chaos) and stays in [0, 1].
//
// A shared integrator tracks one value for the whole population; a
// per-entity integrator tracks one value per entity, each with its own speed.
type Integrator struct {
	policy Policy
	rate   float64
	speeds []float64
	p      []float64
}

// NewIntegrator creates a per-entity integrator. speeds[i] scales entity i's
// rate and must be positive; non-positive speeds are treated as 1.
func NewIntegrator(policy Policy, rate float64, speeds []float64) *Integrator {
	s := make([]float64, len(speeds))
	for i, v := range speeds {
		if v <= 0 || math.IsNaN(v) {
			v = 1
		}
		s[i] = v
	}
	return &Integrator{
		policy: policy,
		rate:   rate,
		speeds: s,
		p:      make([]float64, len(speeds)),
	}
}

// NewSharedIntegrator creates an integrator with a single progress value.
func NewSharedIntegrator(policy Policy, rate float64) *Integrator {
	return NewIntegrator(policy, rate, []float64{1})
}

// Policy returns the integration policy.
func (g *Integrator) Policy() Policy {
	return g.policy
}

// Len returns the number of progress values.
func (g *Integrator) Len() int {
	return len(g.p)
}

// At returns progress value i.
func (g *Integrator) At(i int) float64 {
	return g.p[i]
}

// Values returns the live progress slice. The returned slice MUST NOT be mutated.
func (g *Integrator) Values() []float64 {
	return g.p
}

// Reset returns every value to 0 (chaos).
func (g *Integrator) Reset() {
	clear(g.p)
}

// Settled reports whether every value equals the target's progress.
func (g *Integrator) Settled(target TreeState) bool {
	want := target.Progress()
	for _, v := range g.p {
		if v != want {
			return false
		}
	}
	return true
}

// Advance moves every value towards target by one frame of dt seconds.
// A negative or NaN dt is treated as 0. Values never overshoot the target,
// and a value already at the target does not move.
func (g *Integrator) Advance(dt float64, target TreeState) {
	for i := range g.p {
		g.AdvanceAt(i, dt, target)
	}
}

// AdvanceAt advances value i only. Populations that skip part of a frame use
// it to leave the skipped entities untouched.
func (g *Integrator) AdvanceAt(i int, dt float64, target TreeState) float64 {
	if !(dt > 0) {
		return g.p[i]
	}
	want := target.Progress()
	step := dt * g.rate * g.speeds[i]
	switch g.policy {
	case PolicyProportional:
		g.p[i] = stepProportional(g.p[i], want, step)
	default:
		g.p[i] = stepLinear(g.p[i], want, step)
	}
	return g.p[i]
}

// stepLinear moves p towards want by at most step.
func stepLinear(p, want, step float64) float64 {
	if p < want {
		return math.Min(p+step, want)
	}
	if p > want {
		return math.Max(p-step, want)
	}
	return p
}

// stepProportional moves p by the fraction k of its remaining distance. k is
// capped at 1 so a long frame lands on the target instead of passing it.
func stepProportional(p, want, k float64) float64 {
	if p == want {
		return p
	}
	if k > 1 {
		k = 1
	}
	p += (want - p) * k
	if math.Abs(want-p) < SnapEpsilon {
		return want
	}
	return clamp01(p)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package evergreen

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
	State  string  `yaml:"state,omitempty"`
}

type testScript struct {
	Steps []testStep `yaml:"steps"`
}

// ErrInvalidScript is returned by LoadTestScript for malformed scripts.
var ErrInvalidScript = errors.New("invalid test script")

// TestRunner sequences toggles, clicks, waits and screenshots across frames
// for automated visual testing. Attach to a Scene via SetTestRunner.
//
// A script looks like:
//
//	steps:
//	  - action: wait
//	    frames: 120
//	  - action: screenshot
//	    label: formed
//	  - action: toggle
//	  - action: target
//	    state: formed
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a YAML test script. JSON input also parses.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script testScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: %w: no steps", ErrInvalidScript)
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "toggle", "click", "wait", "screenshot":
		case "target":
			if _, err := ParseTreeState(st.State); err != nil {
				return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("parse test script: %w: step %d: unknown action %q", ErrInvalidScript, i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the scene. Its step method runs at
// the start of every Step.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// TestRunner returns the attached runner, or nil.
func (s *Scene) TestRunner() *TestRunner {
	return s.testRunner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "click":
		s.InjectClick(st.X, st.Y)
	case "toggle":
		s.InjectToggle()
	case "target":
		state, _ := ParseTreeState(st.State)
		s.SetTarget(state)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}

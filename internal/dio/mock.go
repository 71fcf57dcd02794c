package dio

import "sync"

// ScriptedInput is a test Input that returns a fixed script of readings,
// then repeats its final entry. Safe for concurrent use.
type ScriptedInput struct {
	mu     sync.Mutex
	script []Step
	idx    int
	reads  int
}

// Step is one scripted poll result.
type Step struct {
	Value bool
	Err   error
}

// NewScriptedInput builds an input from the given steps. An empty script
// reads false forever.
func NewScriptedInput(steps ...Step) *ScriptedInput {
	return &ScriptedInput{script: steps}
}

// TriggerAfter returns an input that reads false n times, then true.
func TriggerAfter(n int) *ScriptedInput {
	steps := make([]Step, n+1)
	steps[n] = Step{Value: true}
	return NewScriptedInput(steps...)
}

// Read pops the next scripted step.
func (s *ScriptedInput) Read() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	if len(s.script) == 0 {
		return false, nil
	}
	step := s.script[s.idx]
	if s.idx < len(s.script)-1 {
		s.idx++
	}
	return step.Value, step.Err
}

// Reads returns how many polls have been issued.
func (s *ScriptedInput) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

package circuit

import (
	"errors"
	"fmt"
)

// ErrCycle is returned when a signal reaches the gate that produced it
var ErrCycle = errors.New("combinational cycle")

// Topology contains information about the circuit structure
type Topology struct {
	Circuit      *Circuit
	Levels       []int      // Level of each signal, indexed by SignalID
	MaxLevel     int        // Logic depth of the circuit
	FanoutPoints []SignalID // Signals that feed more than one gate input
}

// Stats summarises a circuit for reporting
type Stats struct {
	Gates        int
	Signals      int
	Inputs       int
	GatesByType  map[GateType]int
	Depth        int
	FanoutPoints int
}

// NewTopology creates a new topology analyzer for the given circuit
func NewTopology(c *Circuit) *Topology {
	return &Topology{
		Circuit: c,
		Levels:  make([]int, c.NumSignals()),
	}
}

// Analyze runs every topological analysis
func (t *Topology) Analyze() {
	t.ComputeLevels()
	t.IdentifyFanoutPoints()
}

// ComputeLevels assigns a level to each signal. Primary inputs are level 0
// and a gate output sits one level above its deepest input. Gates are stored
// in creation order, which is already a topological order, so one pass is enough.
func (t *Topology) ComputeLevels() {
	t.Levels = make([]int, t.Circuit.NumSignals())
	t.MaxLevel = 0

	for _, gate := range t.Circuit.Gates() {
		level := max(t.Levels[gate.Inputs[0]], t.Levels[gate.Inputs[1]]) + 1
		t.Levels[gate.Output] = level
		if level > t.MaxLevel {
			t.MaxLevel = level
		}
	}
}

// IdentifyFanoutPoints identifies all fanout points in the circuit
func (t *Topology) IdentifyFanoutPoints() {
	t.FanoutPoints = make([]SignalID, 0)

	for _, s := range t.Circuit.Signals() {
		if s.IsFanoutPoint() {
			t.FanoutPoints = append(t.FanoutPoints, s.ID)
		}
	}
}

// Level returns the level of a signal
func (t *Topology) Level(id SignalID) int {
	return t.Levels[id]
}

// CheckAcyclic walks the graph from every gate output and reports the first
// signal that is, directly or transitively, an input of its own driver.
func (t *Topology) CheckAcyclic() error {
	const (
		unvisited = iota
		active
		done
	)
	c := t.Circuit
	state := make([]int, c.NumSignals())

	var visit func(id SignalID) error
	visit = func(id SignalID) error {
		switch state[id] {
		case active:
			return fmt.Errorf("%w through %s", ErrCycle, c.Signal(id))
		case done:
			return nil
		}
		state[id] = active
		if driver := c.Signal(id).Driver; driver >= 0 {
			for _, in := range c.Gate(driver).Inputs {
				if err := visit(in); err != nil {
					return err
				}
			}
		}
		state[id] = done
		return nil
	}

	for _, s := range c.Signals() {
		if err := visit(s.ID); err != nil {
			return err
		}
	}
	return nil
}

// TransitiveInputs returns every signal that feeds the given signal, in
// ascending handle order.
func (t *Topology) TransitiveInputs(id SignalID) []SignalID {
	c := t.Circuit
	seen := make([]bool, c.NumSignals())
	queue := []SignalID{id}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		driver := c.Signal(current).Driver
		if driver < 0 {
			continue
		}
		for _, in := range c.Gate(driver).Inputs {
			if !seen[in] {
				seen[in] = true
				queue = append(queue, in)
			}
		}
	}

	result := make([]SignalID, 0)
	for i, ok := range seen {
		if ok {
			result = append(result, SignalID(i))
		}
	}
	return result
}

// Stats returns summary statistics. Analyze must have been called.
func (t *Topology) Stats() Stats {
	inputs := 0
	for _, s := range t.Circuit.Signals() {
		if s.IsInput() {
			inputs++
		}
	}
	return Stats{
		Gates:        t.Circuit.NumGates(),
		Signals:      t.Circuit.NumSignals(),
		Inputs:       inputs,
		GatesByType:  t.Circuit.CountByType(),
		Depth:        t.MaxLevel,
		FanoutPoints: len(t.FanoutPoints),
	}
}

package circuit

import (
	"fmt"
	"strings"
)

// Circuit is an append-only gate graph. It owns every signal and gate it
// creates; callers refer to them through SignalID handles.
type Circuit struct {
	Name    string
	signals []Signal
	gates   []Gate
}

// NewCircuit creates a new circuit with the given name
func NewCircuit(name string) *Circuit {
	return &Circuit{
		Name:    name,
		signals: make([]Signal, 0),
		gates:   make([]Gate, 0),
	}
}

// AddInput appends a named primary input signal
func (c *Circuit) AddInput(name string) SignalID {
	id := SignalID(len(c.signals))
	c.signals = append(c.signals, Signal{
		ID:     id,
		Name:   name,
		Kind:   PrimaryInput,
		Driver: -1,
	})
	return id
}

// AddGate creates the gate selected by the operator symbol, wires its two
// inputs and returns the gate's unnamed output signal.
func (c *Circuit) AddGate(symbol string, a, b SignalID) (SignalID, error) {
	gateType, err := ParseOperator(symbol)
	if err != nil {
		return NoSignal, err
	}
	return c.AddGateType(gateType, a, b)
}

// AddGateType creates a gate of a known type. Both operands must already
// exist, so no gate can feed back into its own inputs.
func (c *Circuit) AddGateType(gateType GateType, a, b SignalID) (SignalID, error) {
	for _, in := range [2]SignalID{a, b} {
		if !c.valid(in) {
			return NoSignal, fmt.Errorf("gate input %d does not exist", in)
		}
	}

	gateID := len(c.gates)
	out := SignalID(len(c.signals))
	c.signals = append(c.signals, Signal{
		ID:     out,
		Kind:   GateOutput,
		Driver: gateID,
	})
	c.gates = append(c.gates, Gate{
		ID:     gateID,
		Type:   gateType,
		Inputs: [2]SignalID{a, b},
		Output: out,
	})

	// Connect inputs
	c.signals[a].Fanout = append(c.signals[a].Fanout, gateID)
	c.signals[b].Fanout = append(c.signals[b].Fanout, gateID)

	return out, nil
}

// Label names a signal. Unknown handles are ignored.
func (c *Circuit) Label(id SignalID, name string) {
	if !c.valid(id) {
		return
	}
	c.signals[id].Name = name
}

// Signal returns a signal by handle
func (c *Circuit) Signal(id SignalID) *Signal {
	if !c.valid(id) {
		return nil
	}
	return &c.signals[id]
}

// Gate returns a gate by index
func (c *Circuit) Gate(id int) *Gate {
	if id < 0 || id >= len(c.gates) {
		return nil
	}
	return &c.gates[id]
}

// Gates returns all gates in creation order. The slice must not be modified.
func (c *Circuit) Gates() []Gate {
	return c.gates
}

// Signals returns all signals in creation order. The slice must not be modified.
func (c *Circuit) Signals() []Signal {
	return c.signals
}

// NumGates returns the number of gates
func (c *Circuit) NumGates() int {
	return len(c.gates)
}

// NumSignals returns the number of signals
func (c *Circuit) NumSignals() int {
	return len(c.signals)
}

// CountByType returns the number of gates of each type
func (c *Circuit) CountByType() map[GateType]int {
	counts := make(map[GateType]int, len(GateTypes))
	for _, g := range c.gates {
		counts[g.Type]++
	}
	return counts
}

func (c *Circuit) valid(id SignalID) bool {
	return id >= 0 && int(id) < len(c.signals)
}

// String returns a netlist-like listing of the circuit
func (c *Circuit) String() string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Circuit: %s\n", c.Name))

	builder.WriteString("Inputs: ")
	for i := range c.signals {
		if c.signals[i].IsInput() {
			builder.WriteString(fmt.Sprintf("%s ", &c.signals[i]))
		}
	}
	builder.WriteString("\n")

	for _, g := range c.gates {
		builder.WriteString(fmt.Sprintf("%s = %s %s %s\n",
			&c.signals[g.Output], &c.signals[g.Inputs[0]], g.Type.Symbol(), &c.signals[g.Inputs[1]]))
	}

	return builder.String()
}

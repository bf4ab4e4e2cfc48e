package circuit

import (
	"errors"
	"fmt"
)

// ErrUnsupportedOperator is returned for operator symbols outside the netlist grammar
var ErrUnsupportedOperator = errors.New("unsupported operator")

// GateType represents the type of logic gate
type GateType int

const (
	AND GateType = iota
	XOR
	XNOR
)

// String returns a string representation of the gate type
func (gt GateType) String() string {
	switch gt {
	case AND:
		return "AND"
	case XOR:
		return "XOR"
	case XNOR:
		return "XNOR"
	default:
		return "UNKNOWN"
	}
}

// Symbol returns the netlist operator symbol for the gate type
func (gt GateType) Symbol() string {
	switch gt {
	case AND:
		return "x"
	case XOR:
		return "+"
	case XNOR:
		return "#"
	default:
		return "?"
	}
}

// ParseOperator converts a netlist operator symbol to its gate type.
// The mapping is total over the grammar; anything else is an error, never a default.
func ParseOperator(symbol string) (GateType, error) {
	switch symbol {
	case "x":
		return AND, nil
	case "+":
		return XOR, nil
	case "#":
		return XNOR, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedOperator, symbol)
	}
}

// GateTypes lists every supported gate type in declaration order
var GateTypes = []GateType{AND, XOR, XNOR}

// Gate represents a two-input logic gate in the circuit
type Gate struct {
	ID     int         // Index in the circuit's gate arena
	Type   GateType    // Type of the gate
	Inputs [2]SignalID // Input slots, each bound once at creation
	Output SignalID    // Output signal
}

// String returns a string representation of the gate
func (g *Gate) String() string {
	return fmt.Sprintf("g%d(%s %d %d -> %d)", g.ID, g.Type, g.Inputs[0], g.Inputs[1], g.Output)
}

// Package gnarkgen hands a compiled netlist to the gnark circuit frontend.
// Primary inputs become secret variables and exposed outputs become public
// variables constrained to the values computed by the gate graph.
package gnarkgen

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"

	"github.com/fyerfyer/netlistc/pkg/circuit"
	"github.com/fyerfyer/netlistc/pkg/netlist"
)

// Circuit is a gnark circuit whose constraints are the netlist's gates
type Circuit struct {
	Inputs  []frontend.Variable
	Outputs []frontend.Variable `gnark:",public"`

	netlist *netlist.Result
}

// New allocates a circuit definition sized for the netlist's interface
func New(res *netlist.Result) *Circuit {
	return &Circuit{
		Inputs:  make([]frontend.Variable, len(res.Interface.Inputs())),
		Outputs: make([]frontend.Variable, len(res.Interface.Outputs())),
		netlist: res,
	}
}

// Define emits one constraint group per gate, in netlist order
func (c *Circuit) Define(api frontend.API) error {
	ckt := c.netlist.Circuit
	values := make([]frontend.Variable, ckt.NumSignals())

	for i, p := range c.netlist.Interface.Inputs() {
		api.AssertIsBoolean(c.Inputs[i])
		values[p.Signal] = c.Inputs[i]
	}

	for _, g := range ckt.Gates() {
		a, b := values[g.Inputs[0]], values[g.Inputs[1]]
		if a == nil || b == nil {
			return fmt.Errorf("gate %d reads an unassigned signal", g.ID)
		}
		switch g.Type {
		case circuit.AND:
			values[g.Output] = api.And(a, b)
		case circuit.XOR:
			values[g.Output] = api.Xor(a, b)
		case circuit.XNOR:
			values[g.Output] = api.Sub(1, api.Xor(a, b))
		default:
			return fmt.Errorf("gate %d: %w: %s", g.ID, circuit.ErrUnsupportedOperator, g.Type)
		}
	}

	for i, p := range c.netlist.Interface.Outputs() {
		api.AssertIsEqual(values[p.Signal], c.Outputs[i])
	}
	return nil
}

// Assign builds a witness assignment from input and output bit vectors in
// interface order.
func Assign(res *netlist.Result, inputs, outputs []bool) (*Circuit, error) {
	c := New(res)
	if len(inputs) != len(c.Inputs) {
		return nil, fmt.Errorf("expected %d input bits, got %d", len(c.Inputs), len(inputs))
	}
	if len(outputs) != len(c.Outputs) {
		return nil, fmt.Errorf("expected %d output bits, got %d", len(c.Outputs), len(outputs))
	}
	for i, v := range inputs {
		c.Inputs[i] = bit(v)
	}
	for i, v := range outputs {
		c.Outputs[i] = bit(v)
	}
	return c, nil
}

func bit(v bool) int {
	if v {
		return 1
	}
	return 0
}

// Compile compiles the netlist into a BN254 rank-1 constraint system
func Compile(res *netlist.Result) (constraint.ConstraintSystem, error) {
	cs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, New(res))
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s: %w", res.Circuit.Name, err)
	}
	return cs, nil
}

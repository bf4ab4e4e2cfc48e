package netlist

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/fyerfyer/netlistc/pkg/circuit"
)

// Binding associates a netlist name with a signal handle
type Binding struct {
	Name   string
	Signal circuit.SignalID
}

// Resolver is the symbol table of one compilation. It maps names to
// handles in the circuit's arena and never owns the signals themselves.
// Insertion order is kept alongside the maps.
type Resolver struct {
	circuit     *circuit.Circuit
	inputPrefix string

	inputs      map[string]circuit.SignalID
	inputOrder  []Binding
	signals     map[string]circuit.SignalID
	signalOrder []Binding
	declared    bool
}

// NewResolver creates an empty resolver over the given circuit
func NewResolver(c *circuit.Circuit, inputPrefix string) *Resolver {
	return &Resolver{
		circuit:     c,
		inputPrefix: inputPrefix,
		inputs:      make(map[string]circuit.SignalID),
		signals:     make(map[string]circuit.SignalID),
	}
}

// DeclarePrimaryInputs registers count primary inputs named <prefix>0..<prefix>count-1.
// It must be called once, before any signal is recorded.
func (r *Resolver) DeclarePrimaryInputs(count int) error {
	if r.declared {
		return errors.New("primary inputs already declared")
	}
	if len(r.signalOrder) > 0 {
		return errors.New("primary inputs must be declared before any gate")
	}
	if count < 0 {
		return fmt.Errorf("negative primary input count %d", count)
	}

	for i := 0; i < count; i++ {
		name := r.inputPrefix + strconv.Itoa(i)
		id := r.circuit.AddInput(name)
		r.inputs[name] = id
		r.inputOrder = append(r.inputOrder, Binding{Name: name, Signal: id})
	}
	r.declared = true
	return nil
}

// Resolve looks a name up among the primary inputs, then among produced signals
func (r *Resolver) Resolve(name string) (circuit.SignalID, error) {
	if id, ok := r.inputs[name]; ok {
		return id, nil
	}
	if id, ok := r.signals[name]; ok {
		return id, nil
	}
	return circuit.NoSignal, fmt.Errorf("%w: %s", ErrUnresolvedReference, name)
}

// Record binds a freshly produced signal under name. Names are unique per
// compilation, including primary input names.
func (r *Resolver) Record(name string, id circuit.SignalID) error {
	_, isInput := r.inputs[name]
	_, isSignal := r.signals[name]
	if isInput || isSignal {
		return fmt.Errorf("%w: %s", ErrDuplicateDefinition, name)
	}
	r.signals[name] = id
	r.signalOrder = append(r.signalOrder, Binding{Name: name, Signal: id})
	return nil
}

// Inputs returns the primary input bindings in declaration order
func (r *Resolver) Inputs() []Binding {
	return r.inputOrder
}

// Signals returns the produced signal bindings in the order they were recorded
func (r *Resolver) Signals() []Binding {
	return r.signalOrder
}

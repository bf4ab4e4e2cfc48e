package netlist

import (
	"strings"

	"github.com/fyerfyer/netlistc/pkg/circuit"
)

// Direction is the direction of an interface port
type Direction int

const (
	In Direction = iota
	Out
)

// String returns a string representation of the direction
func (d Direction) String() string {
	if d == In {
		return "In"
	}
	return "Out"
}

// Port is one named, directioned signal of the circuit interface
type Port struct {
	Name      string
	Direction Direction
	Signal    circuit.SignalID
}

// Interface is the ordered port list handed downstream: primary inputs in
// declaration order followed by exposed outputs in first-seen order.
type Interface struct {
	Ports    []Port
	internal []Binding
	index    map[string]int
}

// Package partitions the resolver's recorded signals into exposed outputs
// and internal wiring and assembles the circuit interface.
func Package(r *Resolver, outputPrefixes []string) *Interface {
	ifc := &Interface{
		Ports:    make([]Port, 0, len(r.Inputs())),
		internal: make([]Binding, 0),
		index:    make(map[string]int),
	}

	for _, b := range r.Inputs() {
		ifc.add(Port{Name: b.Name, Direction: In, Signal: b.Signal})
	}
	for _, b := range r.Signals() {
		if IsExposed(b.Name, outputPrefixes) {
			ifc.add(Port{Name: b.Name, Direction: Out, Signal: b.Signal})
		} else {
			ifc.internal = append(ifc.internal, b)
		}
	}
	return ifc
}

// IsExposed reports whether a signal name carries one of the output prefixes
func IsExposed(name string, outputPrefixes []string) bool {
	for _, p := range outputPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

func (ifc *Interface) add(p Port) {
	ifc.index[p.Name] = len(ifc.Ports)
	ifc.Ports = append(ifc.Ports, p)
}

// Inputs returns the input ports
func (ifc *Interface) Inputs() []Port {
	return ifc.filter(In)
}

// Outputs returns the exposed output ports
func (ifc *Interface) Outputs() []Port {
	return ifc.filter(Out)
}

func (ifc *Interface) filter(d Direction) []Port {
	ports := make([]Port, 0)
	for _, p := range ifc.Ports {
		if p.Direction == d {
			ports = append(ports, p)
		}
	}
	return ports
}

// Lookup returns the port with the given name
func (ifc *Interface) Lookup(name string) (Port, bool) {
	i, ok := ifc.index[name]
	if !ok {
		return Port{}, false
	}
	return ifc.Ports[i], true
}

// Internal returns the signals left out of the interface, in first-seen order
func (ifc *Interface) Internal() []Binding {
	return ifc.internal
}

package circuit

import (
	"fmt"
)

// SignalID is a handle into the circuit's signal arena
type SignalID int

// NoSignal marks an absent signal handle
const NoSignal SignalID = -1

// SignalKind represents how a signal is produced
type SignalKind int

const (
	PrimaryInput SignalKind = iota
	GateOutput
)

// String returns a string representation of the signal kind
func (k SignalKind) String() string {
	switch k {
	case PrimaryInput:
		return "input"
	case GateOutput:
		return "gate"
	default:
		return "unknown"
	}
}

// Signal represents a boolean value in the circuit
type Signal struct {
	ID     SignalID   // Index in the arena
	Name   string     // Name bound by the compiler; empty until labelled
	Kind   SignalKind // Producer kind
	Driver int        // Index of the producing gate (-1 for primary inputs)
	Fanout []int      // Indices of gates consuming this signal
}

// String returns a string representation of the signal
func (s *Signal) String() string {
	if s.Name == "" {
		return fmt.Sprintf("#%d", s.ID)
	}
	return s.Name
}

// IsInput returns true if the signal is a primary input
func (s *Signal) IsInput() bool {
	return s.Kind == PrimaryInput
}

// IsFanoutPoint returns true if the signal feeds more than one gate input slot
func (s *Signal) IsFanoutPoint() bool {
	return len(s.Fanout) > 1
}

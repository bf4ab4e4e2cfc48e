package netlist

import (
	"errors"
	"fmt"

	"github.com/fyerfyer/netlistc/pkg/circuit"
)

var (
	ErrMalformedLine       = errors.New("malformed line")
	ErrUnresolvedReference = errors.New("unresolved reference")
	ErrDuplicateDefinition = errors.New("duplicate definition")
	ErrUnsupportedOperator = circuit.ErrUnsupportedOperator
)

// LineError reports a compilation failure at a specific netlist line.
// Err is one of the package sentinels and can be matched with errors.Is.
type LineError struct {
	Line   int    // 1-based line number in the netlist file
	Text   string // Raw line text
	Symbol string // Offending name or operator, empty for malformed lines
	Err    error
}

func (e *LineError) Error() string {
	if e.Symbol == "" {
		return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
	}
	return fmt.Sprintf("line %d: %v %q: %q", e.Line, e.Err, e.Symbol, e.Text)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

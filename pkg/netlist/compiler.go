package netlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fyerfyer/netlistc/pkg/circuit"
	"github.com/fyerfyer/netlistc/pkg/config"
	"github.com/fyerfyer/netlistc/pkg/utils"
)

// maxLineSize bounds a single netlist line
const maxLineSize = 1 << 20

// Result is a fully resolved netlist: the gate graph plus its interface
type Result struct {
	Circuit   *circuit.Circuit
	Interface *Interface
}

// Compiler turns netlist text into a circuit graph. A Compiler holds no
// per-compilation state, so Compile may be called concurrently.
type Compiler struct {
	config config.Config
	logger *utils.Logger
}

// NewCompiler creates a compiler with the given settings. A nil logger discards output.
func NewCompiler(cfg config.Config, logger *utils.Logger) (*Compiler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &Compiler{config: cfg, logger: logger}, nil
}

// Config returns the compiler's settings
func (c *Compiler) Config() config.Config {
	return c.config
}

// Compile reads a whole netlist and builds its circuit in one forward pass.
// It stops at the first bad line and returns no partial result.
func (c *Compiler) Compile(r io.Reader, name string) (*Result, error) {
	ckt := circuit.NewCircuit(name)
	resolver := NewResolver(ckt, c.config.InputPrefix)
	if err := resolver.DeclarePrimaryInputs(c.config.InputCount); err != nil {
		return nil, err
	}
	c.logger.Circuit("declared %d primary inputs for %s", c.config.InputCount, name)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := scanner.Text()

		// Skip header and empty lines
		if lineNo <= c.config.HeaderLines || strings.TrimSpace(text) == "" {
			continue
		}

		if err := c.compileLine(ckt, resolver, lineNo, text); err != nil {
			c.logger.Error("%s: %v", name, err)
			return nil, err
		}
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			err = &LineError{Line: lineNo + 1, Text: "line too long", Err: ErrMalformedLine}
			c.logger.Error("%s: %v", name, err)
			return nil, err
		}
		return nil, fmt.Errorf("error reading netlist: %w", err)
	}

	ifc := Package(resolver, c.config.OutputPrefixes)
	c.logger.Circuit("%s: %d gates, %d outputs, %d internal signals",
		name, ckt.NumGates(), len(ifc.Outputs()), len(ifc.Internal()))

	return &Result{Circuit: ckt, Interface: ifc}, nil
}

// compileLine tokenizes, resolves, builds and records a single gate line
func (c *Compiler) compileLine(ckt *circuit.Circuit, resolver *Resolver, lineNo int, text string) error {
	a, err := Tokenize(lineNo, text)
	if err != nil {
		return err
	}

	var operands [2]circuit.SignalID
	for i, operand := range [2]string{a.A, a.B} {
		id, err := resolver.Resolve(operand)
		if err != nil {
			return &LineError{Line: lineNo, Text: text, Symbol: operand, Err: ErrUnresolvedReference}
		}
		operands[i] = id
	}

	out, err := ckt.AddGate(a.Operator, operands[0], operands[1])
	if err != nil {
		if errors.Is(err, ErrUnsupportedOperator) {
			return &LineError{Line: lineNo, Text: text, Symbol: a.Operator, Err: ErrUnsupportedOperator}
		}
		return fmt.Errorf("line %d: %w", lineNo, err)
	}

	if err := resolver.Record(a.Target, out); err != nil {
		return &LineError{Line: lineNo, Text: text, Symbol: a.Target, Err: ErrDuplicateDefinition}
	}
	ckt.Label(out, a.Target)

	c.logger.Parse("line %d: %s = %s", lineNo, a.Target, ckt.Gate(ckt.Signal(out).Driver))
	return nil
}

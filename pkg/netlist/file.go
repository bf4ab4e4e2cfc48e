package netlist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CompileFile reads a netlist file and compiles it. The circuit is named
// after the file with its extension removed.
func (c *Compiler) CompileFile(filename string) (*Result, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	c.logger.Info("Parsing netlist from %s", filename)
	return c.Compile(file, CircuitName(filename))
}

// CircuitName derives a circuit name from a netlist path
func CircuitName(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

package netlist

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fyerfyer/netlistc/pkg/circuit"
	"github.com/fyerfyer/netlistc/pkg/config"
	"github.com/fyerfyer/netlistc/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCompiler(t *testing.T, headerLines, inputs int, outputs ...string) *Compiler {
	t.Helper()
	cfg := config.Default()
	cfg.HeaderLines = headerLines
	cfg.InputCount = inputs
	cfg.OutputPrefixes = outputs
	c, err := NewCompiler(cfg, nil)
	require.NoError(t, err)
	return c
}

func portNames(ports []Port) []string {
	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.Name
	}
	return names
}

func TestCompileAndXor(t *testing.T) {
	c := newTestCompiler(t, 0, 3, "S")
	res, err := c.Compile(strings.NewReader("W0 = U0 x U1\nS0 = W0 + U2\n"), "example")
	require.NoError(t, err)

	ifc := res.Interface
	assert.Equal(t, []string{"U0", "U1", "U2"}, portNames(ifc.Inputs()))
	assert.Equal(t, []string{"S0"}, portNames(ifc.Outputs()))
	require.Len(t, ifc.Internal(), 1)
	assert.Equal(t, "W0", ifc.Internal()[0].Name)

	ckt := res.Circuit
	require.Equal(t, 2, ckt.NumGates())
	and, xor := ckt.Gate(0), ckt.Gate(1)
	assert.Equal(t, circuit.AND, and.Type)
	assert.Equal(t, circuit.XOR, xor.Type)

	assert.Equal(t, and.Output, ifc.Internal()[0].Signal)
	assert.Equal(t, and.Output, xor.Inputs[0])

	s0, ok := ifc.Lookup("S0")
	require.True(t, ok)
	assert.Equal(t, xor.Output, s0.Signal)
	assert.Equal(t, "S0", ckt.Signal(s0.Signal).Name)

	u2, _ := ifc.Lookup("U2")
	assert.Equal(t, u2.Signal, xor.Inputs[1])
}

func TestCompileOperatorMapping(t *testing.T) {
	c := newTestCompiler(t, 0, 2, "S")
	res, err := c.Compile(strings.NewReader("S0 = U0 x U1\nS1 = U0 + U1\nS2 = U0 # U1\n"), "ops")
	require.NoError(t, err)

	want := []circuit.GateType{circuit.AND, circuit.XOR, circuit.XNOR}
	for i, g := range res.Circuit.Gates() {
		assert.Equal(t, want[i], g.Type)
	}
}

func TestCompileUnresolvedReference(t *testing.T) {
	c := newTestCompiler(t, 0, 3, "S")
	_, err := c.Compile(strings.NewReader("T1 = U0 x U1\nS0 = T1 + Z9\n"), "bad")

	require.ErrorIs(t, err, ErrUnresolvedReference)
	var lineErr *LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 2, lineErr.Line)
	assert.Equal(t, "Z9", lineErr.Symbol)
	assert.Contains(t, err.Error(), "Z9")
}

func TestCompileForwardReferenceIsUnresolved(t *testing.T) {
	c := newTestCompiler(t, 0, 2, "S")
	_, err := c.Compile(strings.NewReader("S0 = T1 + U0\nT1 = U0 x U1\n"), "forward")

	var lineErr *LineError
	require.ErrorAs(t, err, &lineErr)
	assert.ErrorIs(t, err, ErrUnresolvedReference)
	assert.Equal(t, 1, lineErr.Line)
	assert.Equal(t, "T1", lineErr.Symbol)
}

func TestCompileUndeclaredInput(t *testing.T) {
	c := newTestCompiler(t, 0, 2, "S")
	_, err := c.Compile(strings.NewReader("S0 = U0 + U2\n"), "undeclared")
	assert.ErrorIs(t, err, ErrUnresolvedReference)
}

func TestCompileSelfReference(t *testing.T) {
	c := newTestCompiler(t, 0, 2, "S")
	_, err := c.Compile(strings.NewReader("T1 = T1 x U0\n"), "loop")
	assert.ErrorIs(t, err, ErrUnresolvedReference)
}

func TestCompileDuplicateDefinition(t *testing.T) {
	c := newTestCompiler(t, 0, 2, "S", "W")
	res, err := c.Compile(strings.NewReader("W0 = U0 + U1\nW0 = U0 + U1\n"), "dup")

	assert.Nil(t, res)
	require.ErrorIs(t, err, ErrDuplicateDefinition)
	var lineErr *LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 2, lineErr.Line)
	assert.Equal(t, "W0", lineErr.Symbol)
}

func TestCompileRedefineInput(t *testing.T) {
	c := newTestCompiler(t, 0, 2, "S")
	_, err := c.Compile(strings.NewReader("U1 = U0 + U0\n"), "dup")
	assert.ErrorIs(t, err, ErrDuplicateDefinition)
}

func TestCompileUnsupportedOperator(t *testing.T) {
	c := newTestCompiler(t, 0, 2, "S")
	for _, op := range []string{"&", "|", "X", "++", "*"} {
		_, err := c.Compile(strings.NewReader("S0 = U0 "+op+" U1\n"), "op")
		require.ErrorIs(t, err, ErrUnsupportedOperator, op)

		var lineErr *LineError
		require.ErrorAs(t, err, &lineErr)
		assert.Equal(t, op, lineErr.Symbol)
	}
}

func TestCompileMalformedLine(t *testing.T) {
	c := newTestCompiler(t, 0, 2, "S")
	_, err := c.Compile(strings.NewReader("S0 = U0 + U1\nS1 := U0 x U1\n"), "malformed")

	require.ErrorIs(t, err, ErrMalformedLine)
	var lineErr *LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 2, lineErr.Line)
	assert.Equal(t, "S1 := U0 x U1", lineErr.Text)
}

func TestCompileSkipsHeaderAndBlankLines(t *testing.T) {
	header := "this header\nis = not a gate\n\n"
	c := newTestCompiler(t, 3, 2, "S")
	res, err := c.Compile(strings.NewReader(header+"\nS0 = U0 x U1\n   \nS1 = S0 + U1\n"), "header")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Circuit.NumGates())
	assert.Equal(t, []string{"S0", "S1"}, portNames(res.Interface.Outputs()))
}

func TestCompileErrorLineNumbersCountHeader(t *testing.T) {
	c := newTestCompiler(t, 2, 2, "S")
	_, err := c.Compile(strings.NewReader("h1\nh2\nS0 = U0 x Q\n"), "lines")

	var lineErr *LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 3, lineErr.Line)
}

func TestCompileFile(t *testing.T) {
	c := newTestCompiler(t, 6, 3, "S", "W")
	res, err := c.CompileFile(filepath.Join("testdata", "fulladder.txt"))
	require.NoError(t, err)

	assert.Equal(t, "fulladder", res.Circuit.Name)
	assert.Equal(t, 6, res.Circuit.NumGates())
	assert.Equal(t, []string{"U0", "U1", "U2"}, portNames(res.Interface.Inputs()))
	assert.Equal(t, []string{"S0", "W0", "S1"}, portNames(res.Interface.Outputs()))

	topo := circuit.NewTopology(res.Circuit)
	topo.Analyze()
	require.NoError(t, topo.CheckAcyclic())
	assert.Equal(t, 3, topo.MaxLevel)

	counts := res.Circuit.CountByType()
	assert.Equal(t, 2, counts[circuit.AND])
	assert.Equal(t, 3, counts[circuit.XOR])
	assert.Equal(t, 1, counts[circuit.XNOR])
}

func TestCompileFileMissing(t *testing.T) {
	c := newTestCompiler(t, 6, 3, "S")
	_, err := c.CompileFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCompileDeterministic(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "fulladder.txt"))
	require.NoError(t, err)
	c := newTestCompiler(t, 6, 3, "S", "W")

	first, err := c.Compile(strings.NewReader(string(data)), "run")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := c.Compile(strings.NewReader(string(data)), "run")
		require.NoError(t, err)
		assert.Equal(t, first.Circuit.Gates(), again.Circuit.Gates())
		assert.Equal(t, first.Circuit.Signals(), again.Circuit.Signals())
		assert.Equal(t, first.Interface.Ports, again.Interface.Ports)
	}
}

func TestCompileConcurrent(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "fulladder.txt"))
	require.NoError(t, err)
	c := newTestCompiler(t, 6, 3, "S", "W")

	results := make([]*Result, 8)
	errs := make([]error, 8)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.Compile(strings.NewReader(string(data)), "concurrent")
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, results[0].Interface.Ports, results[i].Interface.Ports)
		assert.Equal(t, results[0].Circuit.Gates(), results[i].Circuit.Gates())
	}
}

func TestCompileExposedSignalsStayResolvable(t *testing.T) {
	c := newTestCompiler(t, 0, 2, "S", "W")
	res, err := c.Compile(strings.NewReader("W0 = U0 x U1\nS0 = W0 # U0\n"), "chain")
	require.NoError(t, err)
	assert.Equal(t, []string{"W0", "S0"}, portNames(res.Interface.Outputs()))
	assert.Empty(t, res.Interface.Internal())
}

func TestNewCompilerRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.InputPrefix = ""
	_, err := NewCompiler(cfg, nil)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestCircuitName(t *testing.T) {
	assert.Equal(t, "AESReverseDepth", CircuitName("/tmp/nets/AESReverseDepth.txt"))
	assert.Equal(t, "sbox", CircuitName("sbox"))
}

func TestCompileLongLine(t *testing.T) {
	c := newTestCompiler(t, 0, 2, "S")
	long := "S1 = U0 x " + strings.Repeat("U", 2*maxLineSize) + "\n"
	res, err := c.Compile(strings.NewReader("S0 = U0 + U1\n"+long), "long")

	assert.Nil(t, res)
	require.ErrorIs(t, err, ErrMalformedLine)
	var lineErr *LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 2, lineErr.Line)
}

func TestCompileAcceptsLinesAboveScannerDefault(t *testing.T) {
	c := newTestCompiler(t, 0, 2, "S")
	name := "T" + strings.Repeat("x", 100*1024)
	res, err := c.Compile(strings.NewReader(name+" = U0 x U1\nS0 = "+name+" + U1\n"), "wide")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Circuit.NumGates())
}

func TestCompileTracesGates(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.HeaderLines = 0
	cfg.InputCount = 2
	c, err := NewCompiler(cfg, utils.NewWriterLogger(utils.TraceLevel, &buf))
	require.NoError(t, err)

	_, err = c.Compile(strings.NewReader("S0 = U0 # U1\n"), "trace")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "PARSE: line 1: S0 = g0(XNOR 0 1 -> 2)")
}

func TestCompilerConfig(t *testing.T) {
	c := newTestCompiler(t, 4, 5, "Z")
	cfg := c.Config()
	assert.Equal(t, 4, cfg.HeaderLines)
	assert.Equal(t, 5, cfg.InputCount)
	assert.Equal(t, []string{"Z"}, cfg.OutputPrefixes)
}

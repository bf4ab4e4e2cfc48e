package netlist

import (
	"regexp"
	"strings"
)

// assignRegex matches `target = operandA OP operandB`
var assignRegex = regexp.MustCompile(`^(\w+)\s*=\s*(\w+)\s+(\S+)\s+(\w+)$`)

// Assignment is one tokenized gate line
type Assignment struct {
	Line     int
	Text     string
	Target   string
	Operator string
	A        string
	B        string
}

// Tokenize splits one gate line into its target, operator and operands.
// The operator is not checked here; unknown symbols are rejected when the gate is built.
func Tokenize(lineNo int, text string) (Assignment, error) {
	matches := assignRegex.FindStringSubmatch(strings.TrimSpace(text))
	if matches == nil {
		return Assignment{}, &LineError{Line: lineNo, Text: text, Err: ErrMalformedLine}
	}
	return Assignment{
		Line:     lineNo,
		Text:     text,
		Target:   matches[1],
		A:        matches[2],
		Operator: matches[3],
		B:        matches[4],
	}, nil
}

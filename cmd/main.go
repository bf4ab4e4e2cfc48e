package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Each call returns fresh flag state.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "netlistc",
		Short: "netlistc compiles two-operand gate netlists into circuit graphs",
		Long: `netlistc reads netlists of the form "T1 = U0 x U1" (x AND, + XOR, # XNOR),
resolves every signal, and hands the resulting gate graph to the gnark circuit frontend.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().Bool("verbose", false, "Verbose output")
	rootCmd.PersistentFlags().String("log", "", "Log file (default: stdout)")
	rootCmd.AddCommand(newCompileCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"
	"strings"

	gnarklogger "github.com/consensys/gnark/logger"
	"github.com/spf13/cobra"

	"github.com/fyerfyer/netlistc/pkg/circuit"
	"github.com/fyerfyer/netlistc/pkg/config"
	"github.com/fyerfyer/netlistc/pkg/gnarkgen"
	"github.com/fyerfyer/netlistc/pkg/netlist"
	"github.com/fyerfyer/netlistc/pkg/utils"
)

func newCompileCmd() *cobra.Command {
	compileCmd := &cobra.Command{
		Use:   "compile <netlist>",
		Short: "Compile a netlist file",
		Long: `Compiles a netlist, prints a summary of the resulting circuit and, with --r1cs,
writes the gnark constraint system built from it.`,
		Args: cobra.ExactArgs(1),
		RunE: runCompile,
	}

	flags := compileCmd.Flags()
	flags.String("config", "", "YAML config file")
	flags.Int("header-lines", 0, "Number of header lines to skip")
	flags.Int("inputs", 0, "Number of primary inputs")
	flags.String("input-prefix", "", "Primary input name prefix")
	flags.StringSlice("outputs", nil, "Exposed output name prefixes")
	flags.String("r1cs", "", "Write the compiled constraint system to this file")
	flags.Bool("listing", false, "Print the resolved netlist")
	return compileCmd
}

func runCompile(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	compiler, err := netlist.NewCompiler(cfg, logger)
	if err != nil {
		return err
	}
	settings := compiler.Config()
	logger.Debug("Config: header_lines=%d input_count=%d input_prefix=%s output_prefixes=%s",
		settings.HeaderLines, settings.InputCount, settings.InputPrefix, strings.Join(settings.OutputPrefixes, ","))

	res, err := compiler.CompileFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to compile netlist: %w", err)
	}

	topo := circuit.NewTopology(res.Circuit)
	topo.Analyze()
	printSummary(logger, res, topo.Stats())

	if listing, _ := cmd.Flags().GetBool("listing"); listing {
		fmt.Fprint(cmd.OutOrStdout(), res.Circuit.String())
	}

	if path, _ := cmd.Flags().GetString("r1cs"); path != "" {
		if err := writeConstraintSystem(logger, res, path); err != nil {
			return err
		}
	}
	return nil
}

func newLogger(cmd *cobra.Command) (*utils.Logger, error) {
	level := utils.InfoLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = utils.DebugLevel
	}
	if logFile, _ := cmd.Flags().GetString("log"); logFile != "" {
		logger, err := utils.NewFileLogger(level, logFile)
		if err != nil {
			return nil, fmt.Errorf("error creating log file: %w", err)
		}
		return logger, nil
	}
	utils.SetDefaultLogLevel(level)
	return utils.DefaultLogger, nil
}

// loadConfig starts from the defaults or a config file, then applies explicitly set flags
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()
	cfg := config.Default()
	if path, _ := flags.GetString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
	}

	if flags.Changed("header-lines") {
		cfg.HeaderLines, _ = flags.GetInt("header-lines")
	}
	if flags.Changed("inputs") {
		cfg.InputCount, _ = flags.GetInt("inputs")
	}
	if flags.Changed("input-prefix") {
		cfg.InputPrefix, _ = flags.GetString("input-prefix")
	}
	if flags.Changed("outputs") {
		cfg.OutputPrefixes, _ = flags.GetStringSlice("outputs")
	}
	return cfg, cfg.Validate()
}

func printSummary(logger *utils.Logger, res *netlist.Result, stats circuit.Stats) {
	kinds := make([]string, 0, len(circuit.GateTypes))
	for _, gt := range circuit.GateTypes {
		kinds = append(kinds, fmt.Sprintf("%s=%d", gt, stats.GatesByType[gt]))
	}

	logger.Info("Circuit: %s", res.Circuit.Name)
	logger.Info("Gates: %d (%s)", stats.Gates, strings.Join(kinds, " "))
	logger.Info("Signals: %d", stats.Signals)
	logger.Info("Primary inputs: %d", len(res.Interface.Inputs()))
	logger.Info("Exposed outputs: %d", len(res.Interface.Outputs()))
	logger.Info("Internal signals: %d", len(res.Interface.Internal()))
	logger.Info("Depth: %d", stats.Depth)
	logger.Info("Fanout points: %d", stats.FanoutPoints)
}

func writeConstraintSystem(logger *utils.Logger, res *netlist.Result, path string) error {
	// gnark reports its own compile progress; keep it in the same log
	gnarklogger.Set(*logger.Zerolog())

	cs, err := gnarkgen.Compile(res)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	n, err := cs.WriteTo(file)
	if err != nil {
		return fmt.Errorf("error writing constraint system: %w", err)
	}
	logger.Info("Wrote %d constraints (%d bytes) to %s", cs.GetNbConstraints(), n, path)
	return nil
}

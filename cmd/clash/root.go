package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/clashbench/clash/cli"
	"github.com/clashbench/clash/config"
	"github.com/clashbench/clash/progress"
	"github.com/clashbench/clash/report"
	"github.com/clashbench/clash/runner"
	"github.com/clashbench/clash/stats"
)

type rootOptions struct {
	cli.Flags
	runs       int
	warmup     int
	export     string
	configPath string
	debug      bool
	quiet      bool
}

func newRootCmd() *cobra.Command {
	cmd, _ := newRoot()
	return cmd
}

func newRoot() (*cobra.Command, *rootOptions) {
	opts := new(rootOptions)
	cmd := &cobra.Command{
		Use:   "clash [flags] command command [command ...]",
		Short: "run commands head-to-head and compare their performance",
		Long: `
Clash benchmarks two or more commands against each other, measuring
wall-clock time and peak memory for every run, and reports aggregate
statistics with a winner for each metric.  Commands are given as
quoted strings, e.g.

  clash --runs 10 --warmup 2 "./sortsum-go" "python3 sort_sum.py"

A scenario can also be loaded from a YAML file with --config; flags
given on the command line override values from the file.
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}
	fs := cmd.Flags()
	fs.IntVarP(&opts.runs, "runs", "r", config.DefaultRuns, "number of measured runs per command")
	fs.IntVarP(&opts.warmup, "warmup", "w", 0, "number of unmeasured warmup runs per command")
	fs.StringVarP(&opts.export, "export", "e", "", "export results to a JSON file")
	fs.StringVarP(&opts.configPath, "config", "c", "", "load the scenario from a YAML file")
	fs.BoolVar(&opts.debug, "debug", false, "log each run as it completes")
	fs.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress the live progress line")
	opts.Flags.SetFlags(fs)
	cmd.AddCommand(newVersionCmd())
	return cmd, opts
}

// scenario merges the config file, flags, and positional arguments.
// Commands on the command line replace the file's command list, and
// explicitly set flags win over file values.
func scenario(cmd *cobra.Command, opts *rootOptions, args []string) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return nil, err
		}
	}
	if len(args) > 0 {
		cfg.Commands = args
	}
	if cmd.Flags().Changed("runs") || opts.configPath == "" {
		cfg.Runs = opts.runs
	}
	if cmd.Flags().Changed("warmup") || opts.configPath == "" {
		cfg.Warmup = opts.warmup
	}
	if cmd.Flags().Changed("export") || opts.configPath == "" {
		cfg.Export = opts.export
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, opts *rootOptions, args []string) error {
	ctx, cleanup, err := opts.Flags.Init()
	if err != nil {
		return err
	}
	defer cleanup()
	cfg, err := scenario(cmd, opts, args)
	if err != nil {
		return err
	}
	log := zap.NewNop()
	if opts.debug {
		if log, err = zap.NewDevelopment(); err != nil {
			return err
		}
		defer log.Sync()
	}

	var meter *progress.Meter
	if !opts.quiet && term.IsTerminal(int(os.Stderr.Fd())) {
		meter = progress.NewMeter(os.Stderr)
	}
	r := &runner.Runner{Runs: cfg.Runs, Warmup: cfg.Warmup, Log: log}
	var all []stats.Command
	for i, command := range cfg.Commands {
		if !opts.quiet {
			fmt.Printf("  [%d] Benchmarking: %s\n", i+1, command)
		}
		label := command
		results, err := r.Run(ctx, command, func(done, total int, warmup bool) {
			if meter != nil {
				meter.Update(label, done, total, warmup)
			}
		})
		if err != nil {
			if meter != nil {
				meter.Close()
			}
			return err
		}
		all = append(all, stats.Compute(command, results))
	}
	if meter != nil {
		meter.Close()
	}

	report.Render(os.Stdout, all)
	if cfg.Export != "" {
		if err := report.WriteJSON(cfg.Export, all); err != nil {
			return fmt.Errorf("exporting results: %w", err)
		}
		if !opts.quiet {
			fmt.Printf("  Results exported to %s\n", cfg.Export)
		}
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the clash version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(cli.VersionString())
		},
	}
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/partonsim/partonsim/shower"
	_ "github.com/partonsim/partonsim/shower/defaults"
	"github.com/partonsim/partonsim/shower/hardprocess"
	"github.com/partonsim/partonsim/shower/metrics"
	"github.com/partonsim/partonsim/shower/store"
	"github.com/partonsim/partonsim/shower/trace"
)

var (
	// CLI flags for the run
	seed        int64   // Seed of the run; event n uses a key derived from (seed, n)
	numEvents   int     // Number of events to generate
	workers     int     // Number of parallel generators
	logLevel    string  // Log verbosity level
	configPath  string  // YAML file with shower.Config overrides
	listEvents  int     // Print the record of the first N events
	listShowers bool    // Also print the shower component state of listed events
	dbPath      string  // SQLite file for events and traces; empty disables storage
	metricsOut  string  // Prometheus textfile path; empty disables export
	traceLevel  string  // Branching trace verbosity
	ecm         float64 // Collision energy in GeV
	process     string  // Hard process name
	miEnabled   bool    // Multiple interactions on or off
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "partonsim",
	Short: "Interleaved parton-shower event generator",
}

// runCmd generates events using parameters from the config file, the
// environment and CLI flags, in increasing order of precedence.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate events",
	Run: func(cmd *cobra.Command, args []string) {
		env, err := loadEnv()
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		applyEnvToFlags(cmd, env)

		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := resolveConfig(cmd, env)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level %q (valid: none, branchings, candidates)", traceLevel)
		}
		if numEvents < 0 {
			logrus.Fatalf("--events must be >= 0, got %d", numEvents)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		shutdown, err := setupTelemetry(ctx, env.OTelEndpoint, env.OTelEnabled)
		if err != nil {
			logrus.Warnf("tracing disabled: %v", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logrus.Warnf("flush traces: %v", err)
			}
		}()
		if metricsOut != "" {
			metrics.Register()
		}

		opts := runOptions{
			Seed:        seed,
			Events:      numEvents,
			Workers:     workers,
			TraceLevel:  trace.TraceLevel(traceLevel),
			List:        listEvents,
			ListShowers: listShowers,
			Out:         os.Stdout,
		}
		if dbPath != "" {
			st, err := store.Open(dbPath)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			defer func() { _ = st.Close() }()
			cfgYAML, err := marshalConfig(cfg)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			runID, err := st.BeginRun(ctx, seed, cfgYAML)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			opts.Store, opts.RunID = st, runID
			logrus.Infof("Storing run %s in %s", runID, dbPath)
		}

		logrus.Infof("Starting run: %d events, process=%s, ecm=%.0f GeV, seed=%d, workers=%d",
			numEvents, cfg.Process, cfg.ECM, seed, workers)
		startTime := time.Now()

		res, err := runEvents(ctx, cfg, opts)
		if err != nil {
			logrus.Fatalf("run failed: %v", err)
		}
		res.Metrics.Print()
		if res.Trace.Config.Enabled() {
			printTraceSummary(os.Stdout, trace.Summarize(res.Trace))
		}
		if metricsOut != "" {
			if err := metrics.WriteTextfile(metricsOut); err != nil {
				logrus.Errorf("write metrics: %v", err)
			}
		}
		logrus.Infof("Run complete in %v.", time.Since(startTime).Round(time.Millisecond))
	},
}

// configCmd prints the effective configuration as YAML.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective shower configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv()
		if err != nil {
			return err
		}
		cfg, err := resolveConfig(cmd, env)
		if err != nil {
			return err
		}
		out, err := marshalConfig(cfg)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

// resolveConfig layers the YAML file, the environment and changed flags
// over shower.DefaultConfig and validates the result.
func resolveConfig(cmd *cobra.Command, env envConfig) (shower.Config, error) {
	path := configPath
	if !cmd.Flags().Changed("config") && env.ConfigPath != "" {
		path = env.ConfigPath
	}
	cfg, err := loadConfig(path)
	if err != nil {
		return cfg, err
	}
	applyEnvToConfig(&cfg, env)

	// Flags only override when explicitly set, so file values survive.
	if cmd.Flags().Changed("ecm") {
		cfg.ECM = ecm
	}
	if cmd.Flags().Changed("process") {
		cfg.Process = process
	}
	if cmd.Flags().Changed("mi") {
		cfg.MI.Enabled = miEnabled
	}
	if !hardprocess.IsValidProcess(cfg.Process) {
		return cfg, fmt.Errorf("unknown process %q (valid: %s)", cfg.Process, strings.Join(hardprocess.Names(), ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(c *cobra.Command) {
	c.Flags().StringVar(&configPath, "config", "", "YAML file with shower configuration overrides")
	c.Flags().Float64Var(&ecm, "ecm", shower.DefaultConfig().ECM, "Collision energy in GeV")
	c.Flags().StringVar(&process, "process", shower.DefaultConfig().Process,
		"Hard process ("+strings.Join(hardprocess.Names(), ", ")+")")
	c.Flags().BoolVar(&miEnabled, "mi", shower.DefaultConfig().MI.Enabled, "Enable multiple interactions")
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed of the run")
	runCmd.Flags().IntVar(&numEvents, "events", 100, "Number of events to generate")
	runCmd.Flags().IntVar(&workers, "workers", 1, "Number of parallel generators")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().IntVar(&listEvents, "list", 0, "Print the event record of the first N events")
	runCmd.Flags().BoolVar(&listShowers, "list-showers", false, "With --list, also print the MI, ISR and FSR state after each listed event")
	runCmd.Flags().StringVar(&dbPath, "db", "", "SQLite file to store events and traces in")
	runCmd.Flags().StringVar(&metricsOut, "metrics-out", "", "Write Prometheus metrics to this textfile")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", "none", "Branching trace level (none, branchings, candidates)")
	addConfigFlags(runCmd)
	addConfigFlags(configCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(configCmd)
}

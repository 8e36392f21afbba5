package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hartwell-dyer/cdcl/internal/dimacs"
	"github.com/hartwell-dyer/cdcl/internal/solver"
)

// Exit codes per spec.md section 6/7: 10 SAT, 20 UNSAT, 1 usage error,
// 2 parse/IO error, 130 interrupted (the POSIX 128+SIGINT convention).
const (
	exitSAT         = 10
	exitUNSAT       = 20
	exitUsage       = 1
	exitParse       = 2
	exitInterrupted = 130
	exitUnknown     = 3 // resource limit reached without a definite answer; not part of spec's core taxonomy
)

const defaultSeed = 5201314 // original_source/main.py's seed, kept as the reproducible default

var rootCmd = &cobra.Command{
	Use:           "cdcl <path-to-cnf>",
	Short:         "Solve a DIMACS CNF formula with a CDCL SAT solver",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSolve,
}

var (
	flagSeed         int64
	flagTimeout      time.Duration
	flagMaxConflicts int64
	flagVerbose      bool
)

func init() {
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "random seed (overrides SAT_SEED and the default)")
	rootCmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "search time limit, 0 for unlimited")
	rootCmd.Flags().Int64Var(&flagMaxConflicts, "max-conflicts", 0, "conflict budget, 0 for unlimited")
	rootCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "log search diagnostics and dump metrics to stderr")
}

func resolveSeed(cmd *cobra.Command) (int64, error) {
	if cmd.Flags().Changed("seed") {
		return flagSeed, nil
	}
	if raw, ok := os.LookupEnv("SAT_SEED"); ok && raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("SAT_SEED: %w", err)
		}
		return seed, nil
	}
	return defaultSeed, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	path := args[0]

	seed, err := resolveSeed(cmd)
	if err != nil {
		return &usageError{err}
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if flagVerbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}

	s := solver.NewSolver(solver.Options{
		MaxConflicts: flagMaxConflicts,
		Timeout:      flagTimeout,
		Seed:         seed,
		Logger:       logger,
	})

	if err := dimacs.Load(path, s); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	start := time.Now()
	status, _ := s.Solve(ctx)
	elapsed := time.Since(start)

	logger.WithFields(logrus.Fields{
		"status":  status.String(),
		"elapsed": elapsed,
	}).Debug("search finished")

	if flagVerbose {
		dumpMetrics(logger, s)
	}

	switch status {
	case solver.StatusSatisfiable:
		printModel(s)
		return &exitCode{exitSAT}
	case solver.StatusUnsatisfiable:
		fmt.Println("s UNSATISFIABLE")
		return &exitCode{exitUNSAT}
	case solver.StatusInterrupted:
		return &exitCode{exitInterrupted}
	default: // StatusUnknown: a resource limit was hit, not cancellation or an answer.
		fmt.Println("c status: unknown (resource limit reached)")
		return &exitCode{exitUnknown}
	}
}

func printModel(s *solver.Solver) {
	fmt.Println("s SATISFIABLE")
	model := s.Model()
	var sb strings.Builder
	sb.WriteString("v")
	for v, val := range model {
		lit := v + 1
		if val == solver.False {
			lit = -lit
		}
		fmt.Fprintf(&sb, " %d", lit)
	}
	sb.WriteString(" 0")
	fmt.Println(sb.String())
}

// usageError marks an error as a CLI usage mistake (spec.md section 7's
// UsageError) rather than a parse or solver failure.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// exitCode lets RunE communicate a specific process exit code without
// cobra printing it as an error.
type exitCode struct{ code int }

func (e *exitCode) Error() string { return "" }

func dumpMetrics(logger *logrus.Logger, s *solver.Solver) {
	mfs, err := s.MetricsRegistry().Gather()
	if err != nil {
		logger.WithError(err).Warn("could not gather metrics")
		return
	}
	for _, mf := range mfs {
		logger.Debugf("%s", mf.String())
	}
}

func main() {
	cmd := rootCmd
	cmd.SetArgs(os.Args[1:])
	err := cmd.Execute()

	switch e := err.(type) {
	case nil:
		os.Exit(0)
	case *exitCode:
		os.Exit(e.code)
	case *usageError:
		fmt.Fprintln(os.Stderr, "usage error:", e.Error())
		os.Exit(exitUsage)
	case *dimacs.ParseError:
		fmt.Fprintln(os.Stderr, "parse error:", e.Error())
		os.Exit(exitParse)
	default:
		fmt.Fprintln(os.Stderr, "error:", err.Error())
		os.Exit(exitUsage)
	}
}

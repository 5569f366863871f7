package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/fiplan/internal/calculation"
	"github.com/rgehrsitz/fiplan/internal/config"
	"github.com/rgehrsitz/fiplan/internal/domain"
)

// cliLogger implements calculation.Logger using the standard log package
type cliLogger struct{}

func (cliLogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (cliLogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (cliLogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (cliLogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fiplan",
		Short: "Retirement projection calculator",
		Long: `Project capital year by year from savings and returns and find the
first year a withdrawal rate covers the retirement income target.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		projectCmd(),
		validateCmd(),
		initCmd(),
		cashflowCmd(),
		compareCmd(),
		sensitivityCmd(),
		solveCmd(),
		profileCmd(),
		serveCmd(),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fiplan %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

// newEngine creates a projection engine, logging through the CLI when debug is set
func newEngine(cmd *cobra.Command) *calculation.ProjectionEngine {
	engine := calculation.NewProjectionEngine()
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		log.SetOutput(cmd.ErrOrStderr())
		engine.SetLogger(cliLogger{})
	}
	return engine
}

// loadConfiguration reads a YAML or JSON configuration file
func loadConfiguration(path string) (*domain.Configuration, error) {
	return config.NewInputParser().LoadFromFile(path)
}

// printDiagnostics reports cash flows the projection ignores
func printDiagnostics(w io.Writer, diagnostics []domain.Diagnostic) {
	if len(diagnostics) == 0 {
		return
	}
	fmt.Fprintf(w, "%d cash flow(s) ignored:\n", len(diagnostics))
	for _, d := range diagnostics {
		fmt.Fprintf(w, "  - %s\n", d)
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/liftoff-dev/liftoff/internal/bootstrap"
	"github.com/liftoff-dev/liftoff/internal/config"
	"github.com/liftoff-dev/liftoff/internal/dispatch"
	"github.com/liftoff-dev/liftoff/internal/prompt"
)

var (
	envFile      string
	manifestFile string
	depsFile     string
	assumeYes    bool
	verbose      bool
)

// rootCmd is the application entry point. Action tokens accumulate into one
// request and run in fixed order: create-db, test, shell, run-server.
var rootCmd = &cobra.Command{
	Use:   "liftoff [action...]",
	Short: "Deployment bootstrapper for the API server",
	Long: `Liftoff validates the runtime environment of the API server, resolves its
declared dependencies (remediating interactively when one is missing), probes
connectivity to the dependent service, and then runs the requested actions.

Actions:
  d, create-db     initialize the database
  t, test          run the test suite (plus advisory style checkers)
  s, shell         open an interactive console
  r, run-server    start the server`,
	Args: cobra.ArbitraryArgs,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging()
	},
	SilenceUsage: true,
	RunE:         runRoot,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "config", "liftoff.env", "environment file with deployment keys")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.Flags().StringVar(&manifestFile, "manifest", "liftoff.yaml", "collaborator command manifest")
	rootCmd.Flags().StringVar(&depsFile, "deps", "dependencies.txt", "dependency declaration file")
	rootCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "answer yes to every remediation prompt")
}

func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	actions, unknown := parseActions(args)
	if unknown != "" {
		fmt.Fprintf(os.Stderr, "unknown action: %s\n\n", unknown)
		return cmd.Help()
	}

	manifest, err := config.LoadManifest(manifestFile)
	if err != nil {
		return err
	}

	b := bootstrap.New(envFile, depsFile, manifest)
	if assumeYes {
		b.Confirm = prompt.Always(true)
	}

	result, err := b.Run(cmd.Context(), actions)
	if err != nil {
		return err
	}
	for _, warning := range result.Warnings {
		slog.Warn("run completed with warning", "run_id", result.RunID, "warning", warning)
	}
	return nil
}

// parseActions maps command-line tokens to the action request. The first
// unrecognized token is returned so the caller can show usage.
func parseActions(tokens []string) (dispatch.ActionRequest, string) {
	var req dispatch.ActionRequest
	for _, token := range tokens {
		switch token {
		case "d", "create-db":
			req.InitDB = true
		case "t", "test":
			req.RunTests = true
		case "s", "shell":
			req.OpenShell = true
		case "r", "run-server":
			req.RunServer = true
		default:
			return dispatch.ActionRequest{}, token
		}
	}
	return req, ""
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	// Using TextHandler for CLI friendliness
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

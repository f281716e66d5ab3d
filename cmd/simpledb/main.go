// Package main implements the simpledb binary. It hosts the engine
// behind two front ends: an interactive shell and an HTTP server. The
// exec subcommand runs statements non-interactively for scripting.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ChrispusGatia/simple-rdbms-pesapal2026/internal/app"
	"github.com/ChrispusGatia/simple-rdbms-pesapal2026/internal/config"
	"github.com/ChrispusGatia/simple-rdbms-pesapal2026/internal/repl"
)

var (
	version = "dev"
	commit  = "unknown"
)

var (
	configFile string
	seedFile   string
	httpAddr   string
	noStats    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "simpledb",
	Short: "In-memory relational engine with a SQL-like shell",
	Long: `simpledb hosts an in-memory relational engine supporting CREATE TABLE,
INSERT, SELECT (with a single inner join), UPDATE and DELETE. Run it as
an interactive shell, as an HTTP server, or execute statements directly.`,
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Run the interactive shell",
	Long:  `Read statements from stdin and print results until EOF or "exit".`,
	Args:  cobra.NoArgs,
	RunE:  runREPL,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long:  `Serve the query API over HTTP until interrupted.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var execCmd = &cobra.Command{
	Use:   "exec <statement> [statement ...]",
	Short: "Execute statements and print results",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExec,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("simpledb %s (commit %s)\n", version, commit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&seedFile, "seed", "", "Seed file of statements to execute on startup")
	rootCmd.PersistentFlags().BoolVar(&noStats, "no-stats", false, "Disable statement statistics collection")
	serveCmd.Flags().StringVar(&httpAddr, "addr", "", "HTTP listen address")

	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves configuration in precedence order: defaults,
// then config file, then environment, then flags.
func loadConfig() (*config.Config, error) {
	// A missing .env file is fine, only load errors from a present
	// one are worth surfacing.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.LoadFromFile(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	config.LoadFromEnv(cfg)

	if seedFile != "" {
		cfg.SeedFile = seedFile
	}
	if httpAddr != "" {
		cfg.HTTP.Addr = httpAddr
	}
	if noStats {
		cfg.Stats.Enabled = false
	}
	return cfg, nil
}

func runREPL(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	return a.RunREPL()
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := app.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return a.RunServer(ctx)
}

func runExec(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := app.New(cfg)
	if err != nil {
		return err
	}

	for _, sql := range args {
		res, err := a.ExecuteSQL(sql)
		if err != nil {
			return err
		}
		repl.WriteResult(os.Stdout, res)
	}
	return nil
}

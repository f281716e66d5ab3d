// Package app wires the engine together for the front ends: one
// database, one executor, optional statistics, optional seed data.
package app

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	httpapi "github.com/ChrispusGatia/simple-rdbms-pesapal2026/internal/api/http"
	"github.com/ChrispusGatia/simple-rdbms-pesapal2026/internal/config"
	"github.com/ChrispusGatia/simple-rdbms-pesapal2026/internal/observability"
	"github.com/ChrispusGatia/simple-rdbms-pesapal2026/internal/query/executor"
	"github.com/ChrispusGatia/simple-rdbms-pesapal2026/internal/query/parser"
	"github.com/ChrispusGatia/simple-rdbms-pesapal2026/internal/repl"
	"github.com/ChrispusGatia/simple-rdbms-pesapal2026/internal/storage"
)

// App owns the engine and its front ends for one process.
type App struct {
	cfg      *config.Config
	db       *storage.Database
	stats    *observability.QueryStats
	executor *executor.Executor
}

// New builds an App from the given configuration. The database is
// constructed here, once, and handed to everything that needs it;
// there is no process-wide instance.
func New(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	a := &App{
		cfg: cfg,
		db:  storage.NewDatabase(),
	}
	if cfg.Stats.Enabled {
		a.stats = observability.NewQueryStats(cfg.Stats.Window)
	}
	a.executor = executor.New(a.db, a.stats)

	if cfg.SeedFile != "" {
		if err := a.seed(cfg.SeedFile); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Database returns the engine's database.
func (a *App) Database() *storage.Database {
	return a.db
}

// Executor returns the statement executor.
func (a *App) Executor() *executor.Executor {
	return a.executor
}

// ExecuteSQL parses and executes one statement string.
func (a *App) ExecuteSQL(sql string) (*executor.Result, error) {
	stmt, err := parser.Parse(sql)
	if err != nil {
		return nil, err
	}
	return a.executor.Execute(stmt)
}

// seed executes the statements in the seed file, one per line. Blank
// lines and lines starting with -- are skipped. A failing seed
// statement aborts startup; a half-seeded database is worse than none.
func (a *App) seed(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	lineNo := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		if _, err := a.ExecuteSQL(line); err != nil {
			return fmt.Errorf("seed file %s line %d: %w", path, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}
	log.Printf("Seeded database from %s (%d lines)", path, lineNo)
	return nil
}

// RunREPL runs the interactive shell on stdin/stdout until EOF or an
// exit command.
func (a *App) RunREPL() error {
	return repl.New(a.db, a.executor, a.cfg.REPL.Prompt, os.Stdin, os.Stdout).Run()
}

// RunServer runs the web front end until the context is canceled, then
// shuts it down gracefully.
func (a *App) RunServer(ctx context.Context) error {
	srv := &http.Server{
		Addr:         a.cfg.HTTP.Addr,
		Handler:      httpapi.NewMux(a.executor, a.db, a.stats),
		ReadTimeout:  a.cfg.HTTP.ReadTimeout,
		WriteTimeout: a.cfg.HTTP.WriteTimeout,
		IdleTimeout:  a.cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	if a.stats != nil {
		go a.pruneStats(ctx)
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Printf("Shutting down HTTP server")
	return srv.Shutdown(shutdownCtx)
}

// pruneStats drops stale statistics entries once per retention window
// until the context is canceled.
func (a *App) pruneStats(ctx context.Context) {
	ticker := time.NewTicker(a.cfg.Stats.Window)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			a.stats.Prune(now)
		}
	}
}

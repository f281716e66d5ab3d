// Package repl implements the interactive shell. It is a thin
// collaborator over the engine: every line goes through parse and
// execute, plus a couple of meta commands for convenience.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	engerr "github.com/ChrispusGatia/simple-rdbms-pesapal2026/internal/errors"
	"github.com/ChrispusGatia/simple-rdbms-pesapal2026/internal/query/executor"
	"github.com/ChrispusGatia/simple-rdbms-pesapal2026/internal/query/parser"
	"github.com/ChrispusGatia/simple-rdbms-pesapal2026/internal/storage"
)

// REPL reads statements line by line and prints their results.
type REPL struct {
	db       *storage.Database
	executor *executor.Executor
	prompt   string
	in       io.Reader
	out      io.Writer
}

// New creates a REPL reading from in and writing to out.
func New(db *storage.Database, exec *executor.Executor, prompt string, in io.Reader, out io.Writer) *REPL {
	return &REPL{
		db:       db,
		executor: exec,
		prompt:   prompt,
		in:       in,
		out:      out,
	}
}

// Run reads lines until EOF or an exit command.
func (r *REPL) Run() error {
	fmt.Fprintln(r.out, "simpledb interactive shell")
	fmt.Fprintln(r.out, "Type a SQL statement, .help for help, or exit to quit.")

	scanner := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out, r.prompt)
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch strings.ToLower(line) {
		case "exit", "quit", "q":
			fmt.Fprintln(r.out, "Bye.")
			return nil
		}

		r.Eval(line)
	}
}

// Eval executes one input line and prints the outcome.
func (r *REPL) Eval(line string) {
	if strings.HasPrefix(line, ".") {
		r.evalMeta(line)
		return
	}

	stmt, err := parser.Parse(line)
	if err != nil {
		fmt.Fprintf(r.out, "error: %v\n", err)
		if engerr.IsSyntax(err) {
			fmt.Fprintln(r.out, "hint: type .help for the statement forms")
		}
		return
	}
	result, err := r.executor.Execute(stmt)
	if err != nil {
		fmt.Fprintf(r.out, "error: %v\n", err)
		return
	}
	r.printResult(result)
}

// evalMeta handles shell meta commands.
func (r *REPL) evalMeta(line string) {
	switch line {
	case ".tables":
		names := r.db.ListTables()
		if len(names) == 0 {
			fmt.Fprintln(r.out, "no tables")
			return
		}
		for _, name := range names {
			fmt.Fprintln(r.out, name)
		}
	case ".help":
		fmt.Fprintln(r.out, "statements: CREATE TABLE, INSERT INTO, SELECT, UPDATE, DELETE")
		fmt.Fprintln(r.out, "meta:       .tables  .help  exit")
	default:
		fmt.Fprintf(r.out, "unknown meta command %q (try .help)\n", line)
	}
}

func (r *REPL) printResult(result *executor.Result) {
	WriteResult(r.out, result)
}

// WriteResult renders a result: a table for queries, a summary line
// for everything else.
func WriteResult(out io.Writer, result *executor.Result) {
	if len(result.Columns) > 0 {
		tw := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(result.Columns, "\t"))
		for _, cells := range result.ValueGrid() {
			parts := make([]string, len(cells))
			for i, v := range cells {
				parts[i] = v.Display()
			}
			fmt.Fprintln(tw, strings.Join(parts, "\t"))
		}
		tw.Flush()
	}
	if result.Message != "" {
		fmt.Fprintln(out, result.Message)
	}
}

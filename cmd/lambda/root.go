package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/go-lambda/blc/expr"
	"github.com/go-lambda/blc/internal/diagnostic"
	"github.com/go-lambda/blc/parse"
	"github.com/go-lambda/blc/prelude"
	"github.com/go-lambda/blc/printer"
	"github.com/go-lambda/blc/reduce"
	"github.com/go-lambda/blc/resolve"
)

// session holds the global table and configuration shared across every
// file and REPL line in one run, so an assignment made while reading one
// file is visible to the next.
type session struct {
	globalArena *expr.Arena
	globals     *resolve.Globals
	budget      int
	trace       bool
	out         io.Writer
	traceOut    io.Writer
}

func newSession(out, traceOut io.Writer, budget int, trace bool) (*session, error) {
	arena := expr.NewGlobalArena()
	globals := resolve.NewGlobals(arena)
	if err := prelude.Load(arena, globals); err != nil {
		return nil, errors.Wrap(err, "loading prelude")
	}
	return &session{
		globalArena: arena,
		globals:     globals,
		budget:      budget,
		trace:       trace,
		out:         out,
		traceOut:    traceOut,
	}, nil
}

func (s *session) reduceOptions() reduce.Options {
	opts := reduce.Options{Budget: s.budget}
	if s.trace {
		opts.Observer = func(step int, e expr.Ref) {
			fmt.Fprintf(s.traceOut, "step %d: %s\n", step, printer.Print(e))
		}
	}
	return opts
}

// run parses src as a sequence of statements, defining assignments into
// the session's global table and printing the reduced form of every
// evaluation statement to out. A parse, assignment, or (non-budget)
// evaluation error is printed to traceOut and that statement is skipped
// rather than aborting the rest of src; after a parse or assignment error,
// p.Recover resynchronizes the parser at the next statement start. The
// caller learns whether anything failed through the returned bool, so one
// bad statement in a file never hides the statements after it.
func (s *session) run(file, src string) bool {
	ok := true
	p := parse.NewParser(file, src)
	for !p.AtEOF() {
		if p.NextIsAssignment() {
			if _, err := p.ParseAssignment(s.globalArena, s.globals); err != nil {
				fmt.Fprintln(s.traceOut, err)
				p.Recover()
				ok = false
			}
			continue
		}

		evalArena := expr.NewEvalArena()
		stmt, err := p.ParseEval(evalArena, s.globals)
		if err != nil {
			fmt.Fprintln(s.traceOut, err)
			p.Recover()
			ok = false
			continue
		}
		result, _, err := reduce.Reduce(evalArena, s.globals, stmt.Expr, s.reduceOptions())
		if err != nil {
			var exceeded *diagnostic.ReductionLimitExceeded
			if !errors.As(err, &exceeded) {
				fmt.Fprintln(s.traceOut, err)
				ok = false
				continue
			}
			fmt.Fprintf(s.out, "%s (budget exhausted)\n", printer.Print(exceeded.Partial))
			continue
		}
		fmt.Fprintln(s.out, printer.Print(result))
	}
	return ok
}

var (
	flagBudget      int
	flagInteractive bool
	flagTrace       bool
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "lambda [files...]",
		Short: "Evaluate untyped lambda calculus source",
		Long: `lambda evaluates untyped lambda calculus source files using normal-order
beta reduction, with a standard prelude of booleans, pairs, Church
arithmetic, and primality predicates loaded before anything else.`,
		RunE: runRoot,
	}
	root.PersistentFlags().IntVarP(&flagBudget, "budget", "b", reduce.DefaultBudget, "maximum reduction steps (beta-reductions and global expansions) per top-level expression")
	root.PersistentFlags().BoolVarP(&flagInteractive, "interactive", "i", false, "start a REPL after processing any given files")
	root.PersistentFlags().BoolVarP(&flagTrace, "steps", "s", false, "trace each reduction step to stderr")

	root.AddCommand(newEncodeCommand())
	root.AddCommand(newDecodeCommand())
	return root
}

// errBatchFailed is returned by runRoot when at least one statement
// across any file failed, so the process exits nonzero even though every
// file was fully processed.
var errBatchFailed = errors.New("one or more statements failed")

func runRoot(cmd *cobra.Command, args []string) error {
	sess, err := newSession(cmd.OutOrStdout(), cmd.ErrOrStderr(), flagBudget, flagTrace)
	if err != nil {
		return err
	}

	hadError := false
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), diagnostic.WrapIO(path, err))
			hadError = true
			continue
		}
		if ok := sess.run(path, string(data)); !ok {
			hadError = true
		}
	}

	if flagInteractive || len(args) == 0 {
		if err := repl(sess, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
			return err
		}
	}
	if hadError {
		return errBatchFailed
	}
	return nil
}

func repl(sess *session, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		line := scanner.Text()
		switch line {
		case ":quit", ":exit":
			return nil
		case ":globals":
			for _, name := range sess.globals.Names() {
				fmt.Fprintln(out, name)
			}
			fmt.Fprint(out, "> ")
			continue
		case "":
			fmt.Fprint(out, "> ")
			continue
		}

		sess.run("<repl>", line)
		fmt.Fprint(out, "> ")
	}
	return scanner.Err()
}

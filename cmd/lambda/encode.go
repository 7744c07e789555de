package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/go-lambda/blc"
	"github.com/go-lambda/blc/expr"
	"github.com/go-lambda/blc/internal/diagnostic"
	"github.com/go-lambda/blc/parse"
	"github.com/go-lambda/blc/reduce"
)

var (
	encodeTerm      string
	encodeEvaluate  bool
	alphaBinary     bool
	alphaZeroWidth  bool
	alphaZeroSymbol string
	alphaOneSymbol  string
)

func newEncodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode [FILES...]",
		Short: "Binary-Lambda-Calculus-encode an expression",
		Long: `encode parses --term against the prelude plus any globals defined by
FILES (evaluated in order, same as the root command), then
Binary-Lambda-Calculus-encodes the result.`,
		RunE: runEncode,
	}
	cmd.Flags().StringVar(&encodeTerm, "term", "", "expression source to encode (required)")
	cmd.Flags().BoolVar(&encodeEvaluate, "evaluate", false, "reduce to normal form before encoding")
	addAlphabetFlags(cmd)
	cmd.MarkFlagRequired("term")
	return cmd
}

func addAlphabetFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&alphaBinary, "binary", false, "write packed bits instead of the default ASCII '0'/'1' text")
	cmd.Flags().BoolVar(&alphaZeroWidth, "zero-width", false, "use the zero-width alphabet (U+FFA0 for 0, U+3164 for 1)")
	cmd.Flags().StringVar(&alphaZeroSymbol, "zero", "", "custom symbol for bit 0 (requires --one)")
	cmd.Flags().StringVar(&alphaOneSymbol, "one", "", "custom symbol for bit 1 (requires --zero)")
	cmd.MarkFlagsMutuallyExclusive("binary", "zero-width", "zero")
	cmd.MarkFlagsRequiredTogether("zero", "one")
}

func resolveAlphabet() blc.Alphabet {
	switch {
	case alphaBinary:
		return blc.Binary
	case alphaZeroWidth:
		return blc.ZeroWidth
	case alphaZeroSymbol != "" || alphaOneSymbol != "":
		return blc.Custom(alphaZeroSymbol, alphaOneSymbol)
	default:
		return blc.ASCII
	}
}

func runEncode(cmd *cobra.Command, args []string) error {
	alphabet := resolveAlphabet()

	sess, err := newSession(cmd.OutOrStdout(), cmd.ErrOrStderr(), flagBudget, flagTrace)
	if err != nil {
		return err
	}

	hadError := false
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return diagnostic.WrapIO(path, err)
		}
		if ok := sess.run(path, string(data)); !ok {
			hadError = true
		}
	}

	evalArena := expr.NewEvalArena()
	p := parse.NewParser("<term>", encodeTerm)
	stmt, err := p.ParseEval(evalArena, sess.globals)
	if err != nil {
		return err
	}

	bits, err := blc.EncodeEvaluated(alphabet, stmt.Expr, blc.EvaluateOptions{
		Arena:    evalArena,
		Globals:  sess.globals,
		Evaluate: encodeEvaluate,
		Reduce:   reduce.Options{Budget: flagBudget},
	})
	if err != nil {
		return err
	}

	if _, err := cmd.OutOrStdout().Write(bits); err != nil {
		return err
	}
	if hadError {
		return errBatchFailed
	}
	return nil
}

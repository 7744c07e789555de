package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/go-lambda/blc"
	"github.com/go-lambda/blc/expr"
	"github.com/go-lambda/blc/internal/diagnostic"
	"github.com/go-lambda/blc/printer"
	"github.com/go-lambda/blc/reduce"
	"github.com/go-lambda/blc/resolve"
)

var (
	decodeData     string
	decodeEvaluate bool
)

func newDecodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [FILE]",
		Short: "Decode a Binary Lambda Calculus stream into an expression",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDecode,
	}
	cmd.Flags().StringVar(&decodeData, "data", "", "encoded data to decode; reads stdin if omitted and no FILE is given")
	cmd.Flags().BoolVar(&decodeEvaluate, "evaluate", false, "reduce the decoded expression to normal form before printing")
	addAlphabetFlags(cmd)
	return cmd
}

func runDecode(cmd *cobra.Command, args []string) error {
	alphabet := resolveAlphabet()

	data, err := readDecodeInput(cmd, args)
	if err != nil {
		return err
	}

	arena := expr.NewEvalArena()
	result, err := blc.DecodeBytes(arena, alphabet, data)
	if err != nil {
		return err
	}

	if decodeEvaluate {
		// A decoded expression can never contain a GlobalRef, so an
		// empty global table is all the reducer needs.
		globals := resolve.NewGlobals(expr.NewGlobalArena())
		reduced, _, err := reduce.Reduce(arena, globals, result, reduce.Options{Budget: flagBudget})
		if err != nil {
			var exceeded *diagnostic.ReductionLimitExceeded
			if !errors.As(err, &exceeded) {
				return err
			}
			_, werr := io.WriteString(cmd.OutOrStdout(), printer.Print(exceeded.Partial)+" (budget exhausted)\n")
			return werr
		}
		result = reduced
	}

	_, err = io.WriteString(cmd.OutOrStdout(), printer.Print(result)+"\n")
	return err
}

// readDecodeInput resolves the encoded bytes to decode: a positional FILE
// argument wins, then --data, then stdin.
func readDecodeInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, diagnostic.WrapIO(args[0], err)
		}
		return data, nil
	}
	if decodeData != "" {
		return []byte(decodeData), nil
	}
	return io.ReadAll(cmd.InOrStdin())
}

// Package blc implements the Binary Lambda Calculus codec of lambda spec
// §4.6: a bit-exact encoder/decoder between Expressions and BLC, with a
// pluggable symbol alphabet sitting above the bit grammar.
package blc

import (
	"bytes"
	"fmt"

	"github.com/go-lambda/blc/expr"
	"github.com/go-lambda/blc/internal/diagnostic"
	"github.com/go-lambda/blc/reduce"
	"github.com/go-lambda/blc/resolve"
)

// Encode recursively emits e's bits per the BLC grammar: `00` then body
// for a Lambda, `01` then left then right for an Apply, `1^k0` for a Term
// with de Bruijn index k. It fails if e still contains an unresolved
// GlobalRef — BLC has no representation for a named reference.
func Encode(w BitWriter, e expr.Ref) error {
	switch e.Kind() {
	case expr.KindLambda:
		if err := writeBits(w, 0, 0); err != nil {
			return err
		}
		return Encode(w, e.Body())

	case expr.KindApply:
		if err := writeBits(w, 0, 1); err != nil {
			return err
		}
		if err := Encode(w, e.Left()); err != nil {
			return err
		}
		return Encode(w, e.Right())

	case expr.KindTerm:
		for i := uint64(0); i < e.Index(); i++ {
			if err := w.WriteBit(1); err != nil {
				return err
			}
		}
		return w.WriteBit(0)

	default:
		return fmt.Errorf("blc: cannot encode unresolved global %q", e.Identifier())
	}
}

func writeBits(w BitWriter, bits ...byte) error {
	for _, b := range bits {
		if err := w.WriteBit(b); err != nil {
			return err
		}
	}
	return nil
}

// EncodeBytes encodes e into alphabet's wire representation and returns
// the resulting bytes, flushing any tail padding the alphabet requires.
func EncodeBytes(alphabet Alphabet, e expr.Ref) ([]byte, error) {
	var buf bytes.Buffer
	w := alphabet.Writer(&buf)
	if err := Encode(w, e); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EvaluateOptions configures evaluate-then-encode.
type EvaluateOptions struct {
	Arena    *expr.Arena
	Globals  *resolve.Globals
	Reduce   reduce.Options
	Evaluate bool
}

// EncodeEvaluated optionally reduces e to normal form (using the same
// reducer and step-observer plumbing as ordinary evaluation) before
// encoding it, per §4.6's "evaluate first" option. If opts.Evaluate is
// false, e is encoded as-is.
func EncodeEvaluated(alphabet Alphabet, e expr.Ref, opts EvaluateOptions) ([]byte, error) {
	if !opts.Evaluate {
		return EncodeBytes(alphabet, e)
	}
	reduced, _, err := reduce.Reduce(opts.Arena, opts.Globals, e, opts.Reduce)
	if err != nil {
		return nil, err
	}
	return EncodeBytes(alphabet, reduced)
}

// Decode consumes a bit stream matching the BLC grammar and builds the
// corresponding Expression in arena, failing with *diagnostic.MalformedBLC
// on an invalid prefix or a premature end of stream.
func Decode(arena *expr.Arena, r BitReader) (expr.Ref, error) {
	bit, err := r.ReadBit()
	if err != nil {
		return expr.Ref{}, diagnostic.NewMalformedBLC(r.Offset(), "unexpected end of stream")
	}

	if bit == 1 {
		count := uint64(1)
		for {
			b, err := r.ReadBit()
			if err != nil {
				return expr.Ref{}, diagnostic.NewMalformedBLC(r.Offset(), "unexpected end of stream in term index")
			}
			if b == 0 {
				break
			}
			count++
		}
		return expr.Term(count), nil
	}

	tag, err := r.ReadBit()
	if err != nil {
		return expr.Ref{}, diagnostic.NewMalformedBLC(r.Offset(), "unexpected end of stream after '0' prefix")
	}

	if tag == 0 {
		body, err := Decode(arena, r)
		if err != nil {
			return expr.Ref{}, err
		}
		return arena.Lambda("", body), nil
	}

	left, err := Decode(arena, r)
	if err != nil {
		return expr.Ref{}, err
	}
	right, err := Decode(arena, r)
	if err != nil {
		return expr.Ref{}, err
	}
	return arena.Apply(left, right), nil
}

// DecodeBytes decodes a complete expression from data using alphabet.
func DecodeBytes(arena *expr.Arena, alphabet Alphabet, data []byte) (expr.Ref, error) {
	return Decode(arena, alphabet.Reader(data))
}

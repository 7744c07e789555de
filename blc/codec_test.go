package blc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-lambda/blc/expr"
	"github.com/go-lambda/blc/reduce"
	"github.com/go-lambda/blc/resolve"
)

func churchNumeral(a *expr.Arena, n uint64) expr.Ref {
	body := expr.Term(1)
	for i := uint64(0); i < n; i++ {
		body = a.Apply(expr.Term(2), body)
	}
	return a.Lambda("f", a.Lambda("x", body))
}

func TestEncodeTrue(t *testing.T) {
	a := expr.NewEvalArena()
	// true = K = \x.\y.x
	true_ := a.Lambda("x", a.Lambda("y", expr.Term(2)))

	bits, err := EncodeBytes(ASCII, true_)
	require.NoError(t, err)
	assert.Equal(t, "0000110", string(bits))
}

func TestDecodeChurchThree(t *testing.T) {
	arena := expr.NewEvalArena()
	got, err := DecodeBytes(arena, ASCII, []byte("000001110011100111010"))
	require.NoError(t, err)

	want := churchNumeral(arena, 3)
	assert.True(t, expr.Equal(got, want))
}

func TestBinaryRoundTrip(t *testing.T) {
	arena := expr.NewEvalArena()
	for n := uint64(0); n <= 16; n++ {
		t.Run("", func(t *testing.T) {
			original := churchNumeral(arena, n)
			bits, err := EncodeBytes(Binary, original)
			require.NoError(t, err)

			decodeArena := expr.NewEvalArena()
			decoded, err := DecodeBytes(decodeArena, Binary, bits)
			require.NoError(t, err)
			assert.True(t, expr.Equal(original, decoded))
		})
	}
}

func TestASCIIRoundTripIgnoresOtherCharacters(t *testing.T) {
	arena := expr.NewEvalArena()
	original := churchNumeral(arena, 3)

	bits, err := EncodeBytes(ASCII, original)
	require.NoError(t, err)

	noisy := "  " + string(bits[:3]) + "\n# comment\n" + string(bits[3:])
	decodeArena := expr.NewEvalArena()
	decoded, err := DecodeBytes(decodeArena, ASCII, []byte(noisy))
	require.NoError(t, err)
	assert.True(t, expr.Equal(original, decoded))
}

func TestCustomAlphabetRoundTrip(t *testing.T) {
	arena := expr.NewEvalArena()
	original := churchNumeral(arena, 4)

	alphabet := Custom("zero", "one")
	bits, err := EncodeBytes(alphabet, original)
	require.NoError(t, err)

	decodeArena := expr.NewEvalArena()
	decoded, err := DecodeBytes(decodeArena, alphabet, bits)
	require.NoError(t, err)
	assert.True(t, expr.Equal(original, decoded))
}

func TestZeroWidthRoundTrip(t *testing.T) {
	arena := expr.NewEvalArena()
	original := churchNumeral(arena, 2)

	bits, err := EncodeBytes(ZeroWidth, original)
	require.NoError(t, err)

	decodeArena := expr.NewEvalArena()
	decoded, err := DecodeBytes(decodeArena, ZeroWidth, bits)
	require.NoError(t, err)
	assert.True(t, expr.Equal(original, decoded))
}

func TestDecodeMalformedOnTruncatedStream(t *testing.T) {
	arena := expr.NewEvalArena()
	_, err := DecodeBytes(arena, Binary, []byte{0x40}) // "01" (Apply) then six zero padding bits, read as three Lambda prefixes, then end of stream
	require.Error(t, err)
}

func TestDecodeMalformedOnEmptyStream(t *testing.T) {
	arena := expr.NewEvalArena()
	_, err := DecodeBytes(arena, ASCII, []byte(""))
	require.Error(t, err)
}

func TestEncodeRejectsUnresolvedGlobal(t *testing.T) {
	_, err := EncodeBytes(ASCII, expr.GlobalRef("succ"))
	require.Error(t, err)
}

func TestEncodeEvaluatedReducesBeforeEncoding(t *testing.T) {
	globalArena := expr.NewGlobalArena()
	globals := resolve.NewGlobals(globalArena)

	// test := \n.\f.\x.(f (n f x))
	testBody := globalArena.Apply(expr.Term(2), globalArena.Apply(globalArena.Apply(expr.Term(3), expr.Term(2)), expr.Term(1)))
	test := globalArena.Lambda("n", globalArena.Lambda("f", globalArena.Lambda("x", testBody)))

	arena := expr.NewEvalArena()
	two := churchNumeral(arena, 2)
	applied := arena.Apply(test, two)

	evaluatedBits, err := EncodeEvaluated(ASCII, applied, EvaluateOptions{
		Arena: arena, Globals: globals, Evaluate: true, Reduce: reduce.Options{Budget: 1000},
	})
	require.NoError(t, err)

	three := churchNumeral(arena, 3)
	wantBits, err := EncodeBytes(ASCII, three)
	require.NoError(t, err)

	assert.Equal(t, string(wantBits), string(evaluatedBits))
}

package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solidity-lsp/internal/lsptype"
)

func TestTranslateAndPositionOfAreInverses(t *testing.T) {
	text := "contract C {\n    uint x;\n}\n"

	offset, err := Translate(text, 1, 8)
	require.NoError(t, err)

	pos := PositionOf(text, offset)
	assert.Equal(t, uint32(1), pos.Line)
	assert.Equal(t, uint32(8), pos.Character)
}

func TestTranslateTreatsCRLFAsOneBreak(t *testing.T) {
	text := "a\r\nb\r\nc"
	offset, err := Translate(text, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 6, offset)
}

func TestTranslateOutOfBounds(t *testing.T) {
	_, err := Translate("short", 5, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestTranslateCountsUTF16SurrogatePairAsTwoColumns(t *testing.T) {
	text := "x = \U0001F600;" // emoji is one rune, two UTF-16 code units
	offset, err := Translate(text, 0, 6)
	require.NoError(t, err)
	assert.Equal(t, len(text)-1, offset) // just before the closing semicolon
}

func TestApplyRangeReplaceIdempotentWhenTextUnchanged(t *testing.T) {
	buf := "line one\nline two\n"
	rng := lsptype.Range{
		Start: lsptype.Position{Line: 1, Character: 0},
		End:   lsptype.Position{Line: 1, Character: 4},
	}
	out, err := ApplyRangeReplace(buf, rng, "line")
	require.NoError(t, err)
	assert.Equal(t, buf, out)
}

func TestApplyRangeReplaceSplicesReplacement(t *testing.T) {
	buf := "line one\nline two\n"
	rng := lsptype.Range{
		Start: lsptype.Position{Line: 1, Character: 0},
		End:   lsptype.Position{Line: 1, Character: 0},
	}
	out, err := ApplyRangeReplace(buf, rng, "bad ")
	require.NoError(t, err)
	assert.Equal(t, "line one\nbad line two\n", out)
}

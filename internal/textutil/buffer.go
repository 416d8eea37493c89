// Package textutil converts between LSP (line, UTF-16-column) positions and
// byte offsets into a UTF-8 document buffer, and applies ranged replacements
// (spec §4.1).
//
// spec §9 flags that the original core treats LSP's UTF-16 code-unit columns
// as raw byte offsets, and calls that a compliance bug an implementer should
// fix. This package implements the corrected behavior: Translate and
// PositionOf both count UTF-16 code units per rune while walking the line.
package textutil

import (
	"errors"
	"unicode/utf16"
	"unicode/utf8"

	"solidity-lsp/internal/lsptype"
)

// ErrOutOfBounds is returned by Translate when the requested line or column
// exceeds the buffer.
var ErrOutOfBounds = errors.New("position out of bounds")

// Translate converts a zero-based (line, column) position, where column
// counts UTF-16 code units, into a byte offset into text.
func Translate(text string, line, column int) (int, error) {
	if line < 0 || column < 0 {
		return 0, ErrOutOfBounds
	}

	offset := 0
	currentLine := 0

	for currentLine < line {
		idx := indexLineBreak(text[offset:])
		if idx < 0 {
			return 0, ErrOutOfBounds
		}
		offset += idx + lineBreakLen(text[offset+idx:])
		currentLine++
	}

	lineEnd := offset + lineLength(text[offset:])
	lineText := text[offset:lineEnd]

	units := 0
	byteIdx := 0
	for byteIdx < len(lineText) {
		if units == column {
			return offset + byteIdx, nil
		}
		r, size := utf8.DecodeRuneInString(lineText[byteIdx:])
		if n := utf16.RuneLen(r); n > 0 {
			units += n
		} else {
			units++
		}
		byteIdx += size
	}
	if units == column {
		return offset + byteIdx, nil
	}
	return 0, ErrOutOfBounds
}

// PositionOf converts a byte offset back into a zero-based (line, column)
// position, the inverse of Translate.
func PositionOf(text string, offset int) lsptype.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}

	line := 0
	lineStart := 0
	for i := 0; i < offset; {
		if text[i] == '\n' {
			line++
			i++
			lineStart = i
			continue
		}
		if text[i] == '\r' {
			skip := 1
			if i+1 < len(text) && text[i+1] == '\n' {
				skip = 2
			}
			line++
			i += skip
			lineStart = i
			continue
		}
		i++
	}

	column := 0
	for _, r := range text[lineStart:offset] {
		column += utf16.RuneLen(r)
	}
	return lsptype.Position{Line: uint32(line), Character: uint32(column)}
}

// ApplyRangeReplace splices replacement into buf over the half-open byte
// interval named by rng, translated via Translate. It is idempotent only
// when replacement equals the original slice, per spec §4.1.
func ApplyRangeReplace(buf string, rng lsptype.Range, replacement string) (string, error) {
	start, err := Translate(buf, int(rng.Start.Line), int(rng.Start.Character))
	if err != nil {
		return "", err
	}
	end, err := Translate(buf, int(rng.End.Line), int(rng.End.Character))
	if err != nil {
		return "", err
	}
	if end < start {
		return "", ErrOutOfBounds
	}
	var out []byte
	out = append(out, buf[:start]...)
	out = append(out, replacement...)
	out = append(out, buf[end:]...)
	return string(out), nil
}

func indexLineBreak(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' || s[i] == '\r' {
			return i
		}
	}
	return -1
}

func lineBreakLen(s string) int {
	if len(s) == 0 {
		return 0
	}
	if s[0] == '\r' && len(s) > 1 && s[1] == '\n' {
		return 2
	}
	return 1
}

func lineLength(s string) int {
	idx := indexLineBreak(s)
	if idx < 0 {
		return len(s)
	}
	return idx
}

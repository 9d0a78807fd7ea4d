package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-isatty"
)

// OpSink turns an Op stream into actual terminal bytes. Apply is called
// once per repainted line with that line's ops, in order (plus once with a
// lone OpClearAutowrap when the line fills the width).
type OpSink interface {
	Apply(ops []Op)
	// MoveCursor repositions the real cursor to (row, col) in the current
	// frame, used once after all lines have been repainted.
	MoveCursor(row, col int)
}

// NewSink picks an ANSI-emitting sink when w is a real console (per
// go-isatty) and a plain-text sink otherwise, matching the product's
// documented "redirected output" degradation.
func NewSink(w io.Writer, fd uintptr) OpSink {
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return &ansiSink{w: w}
	}
	return &plainSink{w: w}
}

// Palette maps a Face to the SGR attribute string to emit before writing
// cells in that face. ansiSink always uses the built-in defaultPalette; the
// settings registry's colour table is not read by this package.
type Palette map[Face]string

var defaultPalette = Palette{
	FaceDefault:      "",
	FaceSuggestion:   "38;5;8", // dim gray
	FaceControl:      "7",      // reverse video
	FaceScrollMarker: "1",      // bold
}

type ansiSink struct {
	w       io.Writer
	row     int
	col     int
	curFace Face
	faceSet bool
	palette Palette
}

func (s *ansiSink) Apply(ops []Op) {
	if s.palette == nil {
		s.palette = defaultPalette
	}
	for _, op := range ops {
		switch op.Kind {
		case OpMoveTo:
			io.WriteString(s.w, ansi.CursorPosition(op.Col+1, s.row+1))
			s.col = op.Col
		case OpWrite:
			s.writeCells(op.Cells)
		case OpInsertBlank:
			io.WriteString(s.w, ansi.InsertCharacter(op.Count))
		case OpDeleteChars:
			io.WriteString(s.w, ansi.DeleteCharacter(op.Count))
		case OpEraseToEOL:
			io.WriteString(s.w, ansi.EraseLineRight)
		case OpClearAutowrap:
			io.WriteString(s.w, " \r")
		}
	}
}

func (s *ansiSink) writeCells(cells Line) {
	var b strings.Builder
	for _, c := range cells {
		if c.R == 0 {
			// Padding cell trailing a double-width glyph: the terminal
			// already advanced past this column when it drew the glyph.
			continue
		}
		if !s.faceSet || c.Face != s.curFace {
			if sgr, ok := s.palette[c.Face]; ok && sgr != "" {
				b.WriteString(ansi.SGR(sgr))
			} else {
				b.WriteString(ansi.ResetStyle)
			}
			s.curFace = c.Face
			s.faceSet = true
		}
		b.WriteRune(c.R)
	}
	io.WriteString(s.w, b.String())
	s.col += len(cells)
}

func (s *ansiSink) MoveCursor(row, col int) {
	io.WriteString(s.w, ansi.CursorPosition(col+1, row+1))
	s.row, s.col = row, col
}

// plainSink degrades to plain text for redirected/non-console output: it
// writes only the runes of OpWrite cells, with no newline between lines
// and no cursor motion, erase, or SGR sequences.
type plainSink struct {
	w io.Writer
}

func (s *plainSink) Apply(ops []Op) {
	for _, op := range ops {
		if op.Kind == OpWrite {
			for _, c := range op.Cells {
				if c.R == 0 {
					continue
				}
				fmt.Fprintf(s.w, "%c", c.R)
			}
		}
	}
}

func (s *plainSink) MoveCursor(row, col int) {}

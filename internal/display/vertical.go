package display

import "gitlab.com/tinyland/lab/clinkgo/internal/cellwidth"

// ParseVertical lays buf out onto a grid of rows each width cells wide,
// wrapping whenever a rune (or the two-cell "^X" escape used for a raw
// control byte) would overflow the current row, then windows that grid down
// to availableRows (when positive and smaller than the full row count)
// around the cursor's row, injecting scroll markers on the clipped edges.
// It reports the cursor's row/column within the resulting (possibly
// windowed) grid for the given cursor rune-offset into buf. Runes at or
// past suggestionStart (none, if suggestionStart < 0) are painted
// in FaceSuggestion instead of FaceDefault — used to overlay ghost text
// without it ever affecting the real buffer length.
func ParseVertical(buf []rune, cursor, width, suggestionStart, availableRows int) Frame {
	if width < 1 {
		width = 1
	}
	var lines []Line
	var line Line
	col := 0
	cursorRow, cursorCol := 0, 0

	flush := func() {
		lines = append(lines, line)
		line = nil
		col = 0
	}

	for i, r := range buf {
		if i == cursor {
			cursorRow = len(lines)
			cursorCol = col
		}
		cells := controlOrRune(r)
		if suggestionStart >= 0 && i >= suggestionStart {
			for j := range cells {
				if cells[j].Face == FaceDefault {
					cells[j].Face = FaceSuggestion
				}
			}
		}
		if col+len(cells) > width {
			flush()
		}
		for _, c := range cells {
			line = append(line, c)
			col++
		}
	}
	if cursor >= len(buf) {
		cursorRow = len(lines)
		cursorCol = col
	}
	flush()

	return windowVertical(lines, cursorRow, cursorCol, width, availableRows)
}

// windowVertical clips lines to an availableRows-tall window that keeps
// cursorRow visible, when the full grid needs more rows than that. The
// topmost visible row gets its leading cell replaced with a '<' scroll
// marker and the bottommost visible row gets its trailing cell(s) replaced
// with '>' (spaces padded out to the column before it) whenever rows above
// or below the window are hidden — mirroring the product's vertical
// scroll-marker behavior. ScrollTop/ScrollBottom on the returned Frame hold
// the window's row range in the full (unwindowed) grid, or -1/-1 when no
// windowing was needed.
func windowVertical(lines []Line, cursorRow, cursorCol, width, availableRows int) Frame {
	if availableRows < 1 || len(lines) <= availableRows {
		return Frame{Lines: lines, CursorRow: cursorRow, CursorCol: cursorCol, ScrollTop: -1, ScrollBottom: -1}
	}

	top := cursorRow - availableRows + 1
	if top < 0 {
		top = 0
	}
	bottom := top + availableRows
	if bottom > len(lines) {
		bottom = len(lines)
		top = bottom - availableRows
	}

	visible := make([]Line, bottom-top)
	copy(visible, lines[top:bottom])

	if top > 0 {
		visible[0] = markScrollTop(visible[0])
	}
	if bottom < len(lines) {
		visible[len(visible)-1] = markScrollBottom(visible[len(visible)-1], width)
	}

	return Frame{
		Lines:        visible,
		CursorRow:    cursorRow - top,
		CursorCol:    cursorCol,
		ScrollTop:    top,
		ScrollBottom: bottom,
	}
}

// markScrollTop replaces l's first cell with a '<' scroll marker,
// indicating rows above it in the full grid are hidden.
func markScrollTop(l Line) Line {
	out := make(Line, len(l))
	copy(out, l)
	if len(out) == 0 {
		out = append(out, Cell{})
	}
	out[0] = Cell{R: '<', Face: FaceScrollMarker}
	return out
}

// markScrollBottom pads l with default-face spaces out to width-1 columns,
// then replaces the final column with a '>' scroll marker, indicating rows
// below it in the full grid are hidden.
func markScrollBottom(l Line, width int) Line {
	out := make(Line, len(l))
	copy(out, l)
	for len(out) < width-1 {
		out = append(out, Cell{R: ' ', Face: FaceDefault})
	}
	if len(out) > width-1 {
		out = out[:width-1]
	}
	out = append(out, Cell{R: '>', Face: FaceScrollMarker})
	return out
}

// controlOrRune returns the cell(s) a single input rune renders as: raw
// control bytes (everything below 0x20 except the ones readline treats as
// plain, i.e. none here — the line buffer never contains \n) become a
// two-cell "^X" escape in FaceControl. A double-width rune (per
// internal/cellwidth) returns its glyph cell followed by one padding cell
// (R==0) so grid-column counts match real terminal columns; the sink
// skips padding cells when writing since the terminal already advanced
// past that column when it drew the wide glyph. Zero-width combining
// marks are dropped rather than merged onto the preceding cell — a
// deliberate simplification, since Cell carries a single rune and this
// buffer rarely carries combining marks in practice.
func controlOrRune(r rune) []Cell {
	if r < 0x20 {
		return []Cell{
			{R: '^', Face: FaceControl},
			{R: rune(r + 0x40), Face: FaceControl},
		}
	}
	if r == 0x7f {
		return []Cell{
			{R: '^', Face: FaceControl},
			{R: '?', Face: FaceControl},
		}
	}
	switch cellwidth.Width(r) {
	case 0:
		return nil
	case 2:
		return []Cell{{R: r, Face: FaceDefault}, {R: 0, Face: FaceDefault}}
	default:
		return []Cell{{R: r, Face: FaceDefault}}
	}
}

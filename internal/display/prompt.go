package display

// Mode selects vertical (wrapped, multi-row) or horizontal (single
// scrolling row) layout.
type Mode int

const (
	ModeAuto Mode = iota
	ModeVertical
	ModeHorizontal
)

// SelectMode applies the mode-selection rule: an explicit request always
// wins; otherwise vertical mode is used unless maxRows is exactly 1 or
// fewer than two terminal rows are available, in which case horizontal
// mode keeps the whole edit line on one row. The number of rows the input
// itself would need is not considered.
func SelectMode(requested Mode, maxRows, availableRows int) Mode {
	if requested != ModeAuto {
		return requested
	}
	if maxRows == 1 || availableRows < 2 {
		return ModeHorizontal
	}
	return ModeVertical
}

// Renderer holds the last painted frame so Render can diff against it.
type Renderer struct {
	width  int
	prev   Frame
	hOff   int
	sink   OpSink
	mode   Mode
	marked bool
}

// NewRenderer constructs a Renderer that paints width-cell-wide rows
// through sink.
func NewRenderer(sink OpSink, width int) *Renderer {
	return &Renderer{sink: sink, width: width}
}

// SetWidth updates the render width (e.g. on a terminal resize), forcing a
// full repaint on the next Render.
func (r *Renderer) SetWidth(width int) {
	if width != r.width {
		r.width = width
		r.prev = Frame{}
	}
}

// Render lays buf out (applying the mode rule), appends the suggestion as a
// trailing ghost-text segment when it's non-empty and the cursor is at the
// end of the line (vertical mode only; a long suggestion wraps like the
// rest of the line), diffs every row against the previous frame, and
// drives the sink. The suggestion never affects rl_end / the buffer's
// real length.
func (r *Renderer) Render(buf []rune, cursor int, suggestion string, mode Mode, maxRows, availableRows int) {
	effective := SelectMode(mode, maxRows, availableRows)

	var frame Frame
	if effective == ModeHorizontal {
		frame, r.hOff = ParseHorizontal(buf, cursor, r.width, r.hOff)
	} else {
		suggestionStart := -1
		withSuggestion := buf
		if suggestion != "" && cursor == len(buf) {
			suggestionStart = len(buf)
			withSuggestion = appendSuggestion(buf, cursor, suggestion)
		}
		rows := availableRows
		if maxRows > 0 && maxRows < rows {
			rows = maxRows
		}
		frame = ParseVertical(withSuggestion, cursor, r.width, suggestionStart, rows)
	}
	r.mode = effective

	n := len(frame.Lines)
	if len(r.prev.Lines) > n {
		n = len(r.prev.Lines)
	}
	for i := 0; i < n; i++ {
		var have, want Line
		if i < len(r.prev.Lines) {
			have = r.prev.Lines[i]
		}
		if i < len(frame.Lines) {
			want = frame.Lines[i]
		}
		ops := DiffLine(have, want)
		if len(ops) == 0 {
			continue
		}
		r.sink.Apply(ops)
		if NeedsAutowrapClear(want, r.width) {
			r.sink.Apply([]Op{{Kind: OpClearAutowrap}})
		}
	}

	r.sink.MoveCursor(frame.CursorRow, frame.CursorCol)
	r.prev = frame
}

// appendSuggestion appends the ghost-text hint to buf for display purposes
// only, when the cursor sits at the end of the real buffer (suggestions
// are never shown mid-line) and the text is non-empty.
func appendSuggestion(buf []rune, cursor int, suggestion string) []rune {
	if suggestion == "" || cursor != len(buf) {
		return buf
	}
	out := make([]rune, 0, len(buf)+len(suggestion))
	out = append(out, buf...)
	out = append(out, []rune(suggestion)...)
	return out
}

// SuggestionHint is the product's own "[Right]-Accept Suggestion" footer
// text. Render does not append it after the ghost text.
const SuggestionHint = "  [Right]-Accept Suggestion"

package hostio

// writeDispatcher is write_console's logic in isolation: given the bytes a
// console-write call carries, decide whether this write is the tagged
// prompt (to be captured and swallowed) and update the "More? "
// continuation bias for the next read.
type writeDispatcher struct {
	prompt TaggedPrompt
	more   moreContinuationState
}

// dispatch returns true if chars was the tagged prompt (the caller must
// not forward it to the real console).
func (w *writeDispatcher) dispatch(chars string) bool {
	w.more.check(chars)
	return w.prompt.Capture(chars)
}

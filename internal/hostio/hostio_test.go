package hostio

import (
	"bytes"
	"strings"
	"testing"
)

func TestTagPrependsHiddenTagOnce(t *testing.T) {
	tagged := Tag("$p$g")
	if !strings.HasPrefix(tagged, promptTagHidden) {
		t.Fatalf("Tag() = %q, want prefix %q", tagged, promptTagHidden)
	}
	if Tag(tagged) != tagged {
		t.Fatalf("Tag() on an already-tagged value should be a no-op, got %q", Tag(tagged))
	}
}

func TestTaggedPromptCaptureStripsTag(t *testing.T) {
	var p TaggedPrompt
	tagged := promptTagHidden + "C:\\> "
	if !p.Capture(tagged) {
		t.Fatal("Capture() should recognize a hidden-tagged write")
	}
	text, ok := p.Get()
	if !ok || text != "C:\\> " {
		t.Fatalf("Get() = (%q, %v), want (%q, true)", text, ok, "C:\\> ")
	}
}

func TestTaggedPromptCaptureRejectsUntaggedWrite(t *testing.T) {
	var p TaggedPrompt
	if p.Capture("hello, world") {
		t.Fatal("Capture() should not recognize an untagged write")
	}
	if _, ok := p.Get(); ok {
		t.Fatal("Get() should report unset after a rejected capture")
	}
}

func TestTaggedPromptClear(t *testing.T) {
	var p TaggedPrompt
	p.Capture(promptTagVisible + "foo")
	p.Clear()
	if _, ok := p.Get(); ok {
		t.Fatal("Get() should report unset after Clear()")
	}
}

func TestCollapseBackspaces(t *testing.T) {
	cases := map[string]string{
		"abc":        "abc",
		"ab\bc":      "ac",
		"abc\b\b\b":  "",
		"\babc":      "abc",
		"C\bL\bI\b ": " ",
	}
	for in, want := range cases {
		if got := CollapseBackspaces(in); got != want {
			t.Errorf("CollapseBackspaces(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSplitSegmentsSinglePlainLine(t *testing.T) {
	got := SplitSegments("dir /w")
	if len(got) != 1 || got[0] != "dir /w" {
		t.Fatalf("SplitSegments(plain) = %v", got)
	}
}

func TestSplitSegmentsMultiCommandExpansion(t *testing.T) {
	resolved := "echo one" + string(segmentSeparator) + "echo two" + string(segmentSeparator) + "echo three"
	got := SplitSegments(resolved)
	want := []string{"echo one", "echo two", "echo three"}
	if len(got) != len(want) {
		t.Fatalf("SplitSegments() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("segment %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLineQueuePlaysBackInOrder(t *testing.T) {
	var q lineQueue
	q.reset([]string{"a", "b", "c"})
	for _, want := range []string{"a", "b", "c"} {
		got, ok := q.next()
		if !ok || got != want {
			t.Fatalf("next() = (%q, %v), want (%q, true)", got, ok, want)
		}
	}
	if _, ok := q.next(); ok {
		t.Fatal("next() should report false once drained")
	}
}

func TestClassifyReadSingleChar(t *testing.T) {
	if got := classifyRead(1, false, "anything", true); got != readCaseSingleChar {
		t.Fatalf("classifyRead(1, ...) = %v, want readCaseSingleChar", got)
	}
}

func TestClassifyReadNoPromptFallsThrough(t *testing.T) {
	if got := classifyRead(80, false, "", false); got != readCaseQueuedOrPassthrough {
		t.Fatalf("classifyRead() = %v, want readCaseQueuedOrPassthrough", got)
	}
}

func TestClassifyReadMoreContinuationOverridesPrompt(t *testing.T) {
	if got := classifyRead(80, true, "C:\\> ", true); got != readCaseQueuedOrPassthrough {
		t.Fatalf("classifyRead() = %v, want readCaseQueuedOrPassthrough", got)
	}
}

func TestClassifyReadCapturedPromptRunsEditor(t *testing.T) {
	if got := classifyRead(80, false, "C:\\> ", true); got != readCaseEditLine {
		t.Fatalf("classifyRead() = %v, want readCaseEditLine", got)
	}
}

func TestAutoAnswerStateTwoCallProtocol(t *testing.T) {
	var st autoAnswerState
	r1, ok1 := st.check(AutoAnswerYes, "Terminate batch job (Y/N)? ", true)
	if !ok1 || r1 != fallbackYes {
		t.Fatalf("first check() = (%q, %v), want (%q, true)", r1, ok1, string(fallbackYes))
	}
	r2, ok2 := st.check(AutoAnswerYes, "Terminate batch job (Y/N)? ", true)
	if !ok2 || r2 != '\n' {
		t.Fatalf("second check() = (%q, %v), want ('\\n', true)", r2, ok2)
	}
	if _, ok3 := st.check(AutoAnswerYes, "Terminate batch job (Y/N)? ", true); ok3 {
		t.Fatal("third check() should not fire (infinite-loop guard)")
	}
}

func TestAutoAnswerStateIgnoresUnrelatedPrompt(t *testing.T) {
	var st autoAnswerState
	if _, ok := st.check(AutoAnswerYes, "Overwrite foo.txt (Y/N)? ", true); ok {
		t.Fatal("check() should only match the terminate-batch-job prompt")
	}
}

func TestAutoAnswerStateRespectsOffMode(t *testing.T) {
	var st autoAnswerState
	if _, ok := st.check(AutoAnswerOff, "Terminate batch job (Y/N)? ", true); ok {
		t.Fatal("check() should not fire when auto-answer is off")
	}
}

func TestMoreContinuationDetection(t *testing.T) {
	var st moreContinuationState
	st.check("More? ")
	if !st.take() {
		t.Fatal("take() should report true right after a More? write")
	}
	if st.take() {
		t.Fatal("take() should be single-shot")
	}
}

type fakeEditor struct {
	result   string
	accepted bool
}

func (f fakeEditor) EditLine(prompt, rprompt, initial string) (string, bool) {
	return f.result, f.accepted
}

type fakeResolver struct {
	resolved string
	ok       bool
}

func (f fakeResolver) Resolve(line string) (string, bool) { return f.resolved, f.ok }

func TestSessionEditCyclePlainLine(t *testing.T) {
	var out bytes.Buffer
	hooks := NewFakeHooks(strings.NewReader(""), &out)
	var accepted []string
	sess := NewSession(hooks, fakeEditor{result: "dir", accepted: true}, nil, AutoAnswerOff, false, func(line string) {
		accepted = append(accepted, line)
	})
	sess.write.prompt.Capture(promptTagHidden + "C:\\> ")

	got, err := sess.ReadConsole(1024)
	if err != nil {
		t.Fatalf("ReadConsole: %v", err)
	}
	if got != "dir\r\n" {
		t.Fatalf("ReadConsole() = %q, want %q", got, "dir\r\n")
	}
	if len(accepted) != 1 || accepted[0] != "dir" {
		t.Fatalf("onAccept callback = %v, want [dir]", accepted)
	}
}

func TestSessionEditCycleMultiSegmentExpansion(t *testing.T) {
	var out bytes.Buffer
	hooks := NewFakeHooks(strings.NewReader(""), &out)
	resolved := "echo a" + string(segmentSeparator) + "echo b"
	sess := NewSession(hooks, fakeEditor{result: "clink", accepted: true}, fakeResolver{resolved: resolved, ok: true}, AutoAnswerOff, false, nil)
	sess.write.prompt.Capture(promptTagHidden + "C:\\> ")

	first, err := sess.ReadConsole(1024)
	if err != nil {
		t.Fatalf("ReadConsole: %v", err)
	}
	if first != "echo a\r\n" {
		t.Fatalf("first segment = %q, want %q", first, "echo a\r\n")
	}

	// The next read has no captured prompt (it was cleared after the edit
	// cycle) so it should drain the queue rather than invoke the editor
	// again.
	second, err := sess.ReadConsole(1024)
	if err != nil {
		t.Fatalf("ReadConsole: %v", err)
	}
	if second != "echo b" {
		t.Fatalf("second segment = %q, want %q", second, "echo b")
	}
}

func TestSessionWriteConsoleSwallowsTaggedPrompt(t *testing.T) {
	var out bytes.Buffer
	hooks := NewFakeHooks(strings.NewReader(""), &out)
	sess := NewSession(hooks, fakeEditor{}, nil, AutoAnswerOff, false, nil)

	if err := sess.WriteConsole(promptTagHidden + "C:\\> "); err != nil {
		t.Fatalf("WriteConsole: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("tagged prompt write should be swallowed, got %q forwarded", out.String())
	}
	text, ok := sess.write.prompt.Get()
	if !ok || text != "C:\\> " {
		t.Fatalf("prompt capture = (%q, %v), want (%q, true)", text, ok, "C:\\> ")
	}
}

func TestSessionWriteConsoleForwardsOrdinaryText(t *testing.T) {
	var out bytes.Buffer
	hooks := NewFakeHooks(strings.NewReader(""), &out)
	sess := NewSession(hooks, fakeEditor{}, nil, AutoAnswerOff, false, nil)

	if err := sess.WriteConsole("hello\n"); err != nil {
		t.Fatalf("WriteConsole: %v", err)
	}
	if out.String() != "hello\n" {
		t.Fatalf("WriteConsole() forwarded %q, want %q", out.String(), "hello\n")
	}
}

func TestSessionSetEnvTagsPromptVariable(t *testing.T) {
	var out bytes.Buffer
	hooks := NewFakeHooks(strings.NewReader(""), &out)
	sess := NewSession(hooks, fakeEditor{}, nil, AutoAnswerOff, false, nil)

	if err := sess.SetEnv("PROMPT", "$p$g"); err != nil {
		t.Fatalf("SetEnv: %v", err)
	}
	got, ok := hooks.GetEnv("PROMPT")
	if !ok || !strings.HasPrefix(got, promptTagHidden) {
		t.Fatalf("SetEnv(PROMPT) stored %q, want a tagged value", got)
	}

	if err := sess.SetEnv("PATH", "C:\\bin"); err != nil {
		t.Fatalf("SetEnv: %v", err)
	}
	if got, _ := hooks.GetEnv("PATH"); got != "C:\\bin" {
		t.Fatalf("SetEnv(PATH) = %q, want untagged passthrough", got)
	}
}

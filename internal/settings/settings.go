// Package settings is the typed configuration registry every other
// component reads from instead of touching environment variables or
// ad-hoc flags directly.
package settings

import "gitlab.com/tinyland/lab/clinkgo/internal/history"

// SlashMode mirrors internal/match's translation modes.
type SlashMode int

const (
	SlashOff SlashMode = iota
	SlashSystem
	SlashSlash
	SlashBackslash
	SlashAutomatic
)

// CaseMode mirrors internal/match's case-fold selection modes.
type CaseMode int

const (
	CaseOff CaseMode = iota
	CaseOn
	CaseRelaxed
)

// ExpandMode controls when history "!"-designator expansion applies with
// respect to quoting.
type ExpandMode int

const (
	ExpandOff ExpandMode = iota
	ExpandOn
	ExpandNotSquoted
	ExpandNotDquoted
	ExpandNotQuoted
)

// TimeStampMode controls whether/how history entries carry timestamps.
type TimeStampMode int

const (
	TimeStampOff TimeStampMode = iota
	TimeStampSave
	TimeStampShow
)

// AutoAnswer controls the hooked host's Y/N/All auto-response behavior.
type AutoAnswer int

const (
	AutoAnswerOff AutoAnswer = iota
	AutoAnswerYes
	AutoAnswerNo
)

// AutosuggestStrategy names which Source order the suggestion engine
// consults.
type AutosuggestStrategy int

const (
	StrategyMatchHistory AutosuggestStrategy = iota
	StrategyHistoryMatch
	StrategyMatch
	StrategyHistory
	StrategyCompletion
)

// ColourTriple is an SGR attribute triple (foreground, background, bold)
// for one semantic display face.
type ColourTriple struct {
	Fg   string
	Bg   string
	Bold bool
}

// Config is the full effective settings tree, decoded from TOML over
// DefaultConfig and then overridden by CLINKGO_* environment variables.
type Config struct {
	Doskey struct {
		Enhanced bool `toml:"enhanced"`
	} `toml:"doskey"`

	Match struct {
		TranslateSlashes SlashMode `toml:"translate_slashes"`
		IgnoreCase       CaseMode  `toml:"ignore_case"`
		Substring        bool      `toml:"substring"`
	} `toml:"match"`

	History struct {
		Shared           bool             `toml:"shared"`
		MaxLines         int              `toml:"max_lines"`
		IgnoreSpace      bool             `toml:"ignore_space"`
		DupeMode         history.DupeMode `toml:"dupe_mode"`
		ExpandMode       ExpandMode       `toml:"expand_mode"`
		TimeStamp        TimeStampMode    `toml:"time_stamp"`
		CompactThreshold int              `toml:"compact_threshold"`
	} `toml:"history"`

	Cmd struct {
		AutoAnswer AutoAnswer `toml:"auto_answer"`
	} `toml:"cmd"`

	Clink struct {
		MaxInputRows int `toml:"max_input_rows"`
	} `toml:"clink"`

	Autosuggest struct {
		Enable       bool                `toml:"enable"`
		Async        bool                `toml:"async"`
		AsyncDelay   Duration            `toml:"async_delay"`
		Hint         bool                `toml:"hint"`
		OriginalCase bool                `toml:"original_case"`
		Strategy     AutosuggestStrategy `toml:"strategy"`
	} `toml:"autosuggest"`

	Colour map[string]ColourTriple `toml:"colour"`
}

// MaxHistoryLines is the hard ceiling 0 ("unlimited") is capped at.
const MaxHistoryLines = 999_999

// EffectiveMaxLines returns History.MaxLines with the 0-means-unlimited
// rule resolved to the documented cap.
func (c *Config) EffectiveMaxLines() int {
	if c.History.MaxLines <= 0 {
		return MaxHistoryLines
	}
	if c.History.MaxLines > MaxHistoryLines {
		return MaxHistoryLines
	}
	return c.History.MaxLines
}

// HistoryOptions adapts the registry's history fields to internal/history's
// Options shape.
func (c *Config) HistoryOptions() history.Options {
	return history.Options{
		IgnoreLeadingSpace: c.History.IgnoreSpace,
		DupeMode:           c.History.DupeMode,
		Timestamp:          c.History.TimeStamp != TimeStampOff,
		MaxLines:           c.EffectiveMaxLines(),
		CompactThreshold:   c.History.CompactThreshold,
	}
}

package settings

import "gitlab.com/tinyland/lab/clinkgo/internal/history"

// DefaultConfig returns the registry's built-in defaults, used whenever no
// config file is found and as the base that file/env overrides layer on
// top of.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Doskey.Enhanced = true

	cfg.Match.TranslateSlashes = SlashSystem
	cfg.Match.IgnoreCase = CaseRelaxed
	cfg.Match.Substring = false

	cfg.History.Shared = false
	cfg.History.MaxLines = 10000
	cfg.History.IgnoreSpace = true
	cfg.History.DupeMode = history.DupeErasePrev
	cfg.History.ExpandMode = ExpandOn
	cfg.History.TimeStamp = TimeStampOff
	cfg.History.CompactThreshold = 500

	cfg.Cmd.AutoAnswer = AutoAnswerOff

	cfg.Clink.MaxInputRows = 0 // use screen height

	cfg.Autosuggest.Enable = true
	cfg.Autosuggest.Async = true
	cfg.Autosuggest.AsyncDelay = Duration{0}
	cfg.Autosuggest.Hint = true
	cfg.Autosuggest.OriginalCase = false
	cfg.Autosuggest.Strategy = StrategyMatchHistory

	cfg.Colour = map[string]ColourTriple{
		"suggestion":    {Fg: "8", Bold: false},
		"control":       {Fg: "0", Bg: "7", Bold: false},
		"scroll_marker": {Fg: "15", Bold: true},
		"selection":     {Fg: "0", Bg: "11", Bold: false},
	}

	return cfg
}

package settings

import "fmt"

// String/UnmarshalText/MarshalText on every enum here let TOML and YAML
// encode/decode them as their lower-snake-case names instead of raw ints,
// and let Dump render something a human would actually configure.

func (m SlashMode) String() string {
	switch m {
	case SlashOff:
		return "off"
	case SlashSystem:
		return "system"
	case SlashSlash:
		return "slash"
	case SlashBackslash:
		return "backslash"
	case SlashAutomatic:
		return "automatic"
	default:
		return "unknown"
	}
}

func (m *SlashMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "off":
		*m = SlashOff
	case "system":
		*m = SlashSystem
	case "slash":
		*m = SlashSlash
	case "backslash":
		*m = SlashBackslash
	case "automatic":
		*m = SlashAutomatic
	default:
		return fmt.Errorf("settings: unknown match.translate_slashes value %q", text)
	}
	return nil
}

func (m SlashMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m CaseMode) String() string {
	switch m {
	case CaseOff:
		return "off"
	case CaseOn:
		return "on"
	case CaseRelaxed:
		return "relaxed"
	default:
		return "unknown"
	}
}

func (m *CaseMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "off":
		*m = CaseOff
	case "on":
		*m = CaseOn
	case "relaxed":
		*m = CaseRelaxed
	default:
		return fmt.Errorf("settings: unknown match.ignore_case value %q", text)
	}
	return nil
}

func (m CaseMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m ExpandMode) String() string {
	switch m {
	case ExpandOff:
		return "off"
	case ExpandOn:
		return "on"
	case ExpandNotSquoted:
		return "not_squoted"
	case ExpandNotDquoted:
		return "not_dquoted"
	case ExpandNotQuoted:
		return "not_quoted"
	default:
		return "unknown"
	}
}

func (m *ExpandMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "off":
		*m = ExpandOff
	case "on":
		*m = ExpandOn
	case "not_squoted":
		*m = ExpandNotSquoted
	case "not_dquoted":
		*m = ExpandNotDquoted
	case "not_quoted":
		*m = ExpandNotQuoted
	default:
		return fmt.Errorf("settings: unknown history.expand_mode value %q", text)
	}
	return nil
}

func (m ExpandMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m TimeStampMode) String() string {
	switch m {
	case TimeStampOff:
		return "off"
	case TimeStampSave:
		return "save"
	case TimeStampShow:
		return "show"
	default:
		return "unknown"
	}
}

func (m *TimeStampMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "off":
		*m = TimeStampOff
	case "save":
		*m = TimeStampSave
	case "show":
		*m = TimeStampShow
	default:
		return fmt.Errorf("settings: unknown history.time_stamp value %q", text)
	}
	return nil
}

func (m TimeStampMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (a AutoAnswer) String() string {
	switch a {
	case AutoAnswerOff:
		return "off"
	case AutoAnswerYes:
		return "answer_yes"
	case AutoAnswerNo:
		return "answer_no"
	default:
		return "unknown"
	}
}

func (a *AutoAnswer) UnmarshalText(text []byte) error {
	switch string(text) {
	case "off":
		*a = AutoAnswerOff
	case "answer_yes":
		*a = AutoAnswerYes
	case "answer_no":
		*a = AutoAnswerNo
	default:
		return fmt.Errorf("settings: unknown cmd.auto_answer value %q", text)
	}
	return nil
}

func (a AutoAnswer) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (s AutosuggestStrategy) String() string {
	switch s {
	case StrategyMatchHistory:
		return "match_history"
	case StrategyHistoryMatch:
		return "history_match"
	case StrategyMatch:
		return "match"
	case StrategyHistory:
		return "history"
	case StrategyCompletion:
		return "completion"
	default:
		return "unknown"
	}
}

func (s *AutosuggestStrategy) UnmarshalText(text []byte) error {
	switch string(text) {
	case "match_history":
		*s = StrategyMatchHistory
	case "history_match":
		*s = StrategyHistoryMatch
	case "match":
		*s = StrategyMatch
	case "history":
		*s = StrategyHistory
	case "completion":
		*s = StrategyCompletion
	default:
		return fmt.Errorf("settings: unknown autosuggest.strategy value %q", text)
	}
	return nil
}

func (s AutosuggestStrategy) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

package settings

import "gitlab.com/tinyland/lab/clinkgo/internal/match"

// MatchCaseMode adapts Match.IgnoreCase to internal/match's own CaseMode,
// which Select actually consumes.
func (c *Config) MatchCaseMode() match.CaseMode {
	switch c.Match.IgnoreCase {
	case CaseOff:
		return match.CaseExact
	case CaseOn:
		return match.CaseCaseless
	case CaseRelaxed:
		return match.CaseRelaxed
	default:
		return match.CaseRelaxed
	}
}

// MatchSlashMode adapts Match.TranslateSlashes to internal/match's own
// SlashMode, which TranslateSlashes actually consumes.
func (c *Config) MatchSlashMode() match.SlashMode {
	switch c.Match.TranslateSlashes {
	case SlashOff:
		return match.SlashOff
	case SlashSystem:
		return match.SlashSystem
	case SlashSlash:
		return match.SlashForward
	case SlashBackslash:
		return match.SlashBackward
	case SlashAutomatic:
		return match.SlashAutomatic
	default:
		return match.SlashSystem
	}
}

package historytui

import (
	"fmt"
	"strings"
)

const (
	zoneConfirmYes = "confirm-yes"
	zoneConfirmNo  = "confirm-no"
)

func (m *Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(borderStyle.Width(m.width - 2).Render(m.renderBody()))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	return m.zones.Scan(b.String())
}

func (m *Model) renderBody() string {
	if m.confirm {
		prompt := dangerStyle.Render(fmt.Sprintf("delete %q?", m.pending.Text))
		yes := m.zones.Mark(zoneConfirmYes, dangerStyle.Render("[y]es"))
		no := m.zones.Mark(zoneConfirmNo, dimStyle.Render("[n]o"))
		return prompt + "  " + yes + "   " + no
	}
	return m.list.View()
}

func (m *Model) renderStatusBar() string {
	if m.searching {
		return m.search.View()
	}
	if m.err != nil {
		return dangerStyle.Render(m.err.Error())
	}
	hints := statusHints
	if m.statusMsg != "" {
		hints = m.statusMsg + "  |  " + hints
	}
	return dimStyle.Render(hints)
}

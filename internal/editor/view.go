package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cigen/internal/platform"
	"cigen/internal/preset"
)

// Rows of fixed chrome around the two panes: header, platform bar,
// description line, footer.
const chromeHeight = 4

const treeWidth = 44

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	enabledStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	changedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	activeTab     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	menuStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
	treeStyle     = lipgloss.NewStyle().Width(treeWidth).MaxWidth(treeWidth)
)

func (m Model) previewWidth() int {
	w := m.width - treeWidth - 1
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	header := headerStyle.Render("cigen") + dimStyle.Render(fmt.Sprintf(
		"  %s %s  %s", m.state.ProjectType, m.state.LanguageVersion, m.state.WorkingDir))

	var right string
	if m.state.MenuOpen {
		right = m.renderMenu()
	} else {
		right = m.vp.View()
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderTree(), " ", right)

	return strings.Join([]string{
		header,
		m.renderPlatformBar(),
		body,
		dimStyle.Render(m.state.Description),
		m.renderFooter(),
	}, "\n")
}

func (m Model) renderPlatformBar() string {
	parts := make([]string, 0, len(platform.All()))
	for _, p := range platform.All() {
		name := p.Name()
		if p == m.state.Target {
			parts = append(parts, activeTab.Render("["+name+"]"))
		} else {
			parts = append(parts, dimStyle.Render(" "+name+" "))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) renderFooter() string {
	help := "↑/↓ move  ←/→ collapse/expand  space toggle  shift+j/k scroll  tab platform  p menu  W write  q quit"
	if m.state.HasExisting {
		help += "  " + dimStyle.Render("(diff vs existing file)")
	}
	return dimStyle.Render(help)
}

// renderTree draws the visible window of tree rows, keeping the cursor in
// view.
func (m Model) renderTree() string {
	height := m.height - chromeHeight
	if height < 1 {
		height = 1
	}

	start := 0
	if m.state.Cursor >= height {
		start = m.state.Cursor - height + 1
	}
	end := start + height
	if end > len(m.state.Items) {
		end = len(m.state.Items)
	}

	lines := make([]string, 0, height)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderItem(m.state.Items[i], i == m.state.Cursor))
	}
	return treeStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderItem(item TreeItem, selected bool) string {
	p, ok := m.state.Registry().Lookup(item.PresetID)
	if !ok {
		return ""
	}
	cfg := m.state.Config(item.PresetID)

	var line string
	switch item.Kind {
	case ItemPreset:
		expand := "▶"
		if m.state.IsPresetExpanded(item.PresetID) {
			expand = "▼"
		}
		dot := disabledStyle.Render("○")
		if cfg.AnyBoolOn() {
			dot = enabledStyle.Render("●")
		}
		line = fmt.Sprintf("%s %s %s", expand, dot, p.Name())

	case ItemFeature:
		expand := "▶"
		if m.state.IsFeatureExpanded(item.PresetID, item.FeatureID) {
			expand = "▼"
		}
		line = fmt.Sprintf("  %s %s", expand, featureName(p, item.FeatureID))

	case ItemOption:
		meta, found := optionMeta(p, item.FeatureID, item.OptionID)
		if !found {
			return ""
		}
		value, _ := cfg.Get(item.OptionID)
		line = "    " + renderOption(meta, value)
	}

	if selected {
		return cursorStyle.Render(line)
	}
	return line
}

// renderOption formats one option row: a checkbox for booleans, the selected
// variant for enums, the literal value otherwise. Non-default values are
// called out in yellow.
func renderOption(meta preset.OptionMeta, value preset.OptionValue) string {
	var text string
	switch value.Kind {
	case preset.KindBool:
		box := "[ ]"
		if value.Bool {
			box = "[✓]"
		}
		text = fmt.Sprintf("%s %s", box, meta.DisplayName)
	case preset.KindEnum:
		text = fmt.Sprintf("%s (%s)", meta.DisplayName, value.Selected)
	case preset.KindString:
		text = fmt.Sprintf("%s: %s", meta.DisplayName, value.Str)
	default:
		text = fmt.Sprintf("%s: %d", meta.DisplayName, value.Int)
	}
	if !value.Equal(meta.Default) {
		return changedStyle.Render(text)
	}
	return text
}

func (m Model) renderMenu() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Select platform") + "\n\n")
	for i, p := range platform.All() {
		row := "  " + p.Name()
		if i == m.state.MenuCursor {
			row = cursorStyle.Render("> " + p.Name())
		}
		b.WriteString(row + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("enter select  esc cancel"))
	return menuStyle.Render(b.String())
}

func featureName(p preset.Preset, featureID string) string {
	for _, f := range p.Features() {
		if f.ID == featureID {
			return f.DisplayName
		}
	}
	return featureID
}

func optionMeta(p preset.Preset, featureID, optionID string) (preset.OptionMeta, bool) {
	for _, f := range p.Features() {
		if f.ID != featureID {
			continue
		}
		for _, opt := range f.Options {
			if opt.ID == optionID {
				return opt, true
			}
		}
	}
	return preset.OptionMeta{}, false
}

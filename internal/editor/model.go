package editor

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Model wraps the session state for bubbletea. All key handling delegates to
// State methods so the transitions stay testable without a terminal.
type Model struct {
	state *State

	vp          viewport.Model
	width       int
	height      int
	ready       bool
	lastPreview string
}

// NewModel wraps an editor state.
func NewModel(s *State) Model {
	return Model{state: s}
}

// State exposes the underlying session state.
func (m Model) State() *State { return m.state }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		paneHeight := m.height - chromeHeight
		if paneHeight < 1 {
			paneHeight = 1
		}
		if !m.ready {
			m.vp = viewport.New(m.previewWidth(), paneHeight)
			m.ready = true
		} else {
			m.vp.Width = m.previewWidth()
			m.vp.Height = paneHeight
		}
		m.syncPreview(true)
		return m, nil

	case tea.KeyMsg:
		if m.state.MenuOpen {
			return m.updateMenu(msg)
		}
		return m.updateMain(msg)
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.state.MoveMenuCursor(-1)
	case "down", "j":
		m.state.MoveMenuCursor(1)
	case "enter", " ":
		m.state.SelectFromMenu()
		m.syncPreview(false)
	case "esc", "q", "p":
		m.state.CloseMenu()
	case "ctrl+c":
		m.state.ShouldQuit = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.state.ShouldQuit = true
		return m, tea.Quit

	case "W":
		m.state.ShouldWrite = true
		m.state.ShouldQuit = true
		return m, tea.Quit

	case "up", "k":
		m.state.MoveCursor(-1)

	case "down", "j":
		m.state.MoveCursor(1)

	case "K":
		m.state.ScrollPreview(-1)
		m.applyScroll()

	case "J":
		m.state.ScrollPreview(1)
		m.applyScroll()

	case "right", "l":
		if item, ok := m.state.CurrentItem(); ok {
			switch item.Kind {
			case ItemPreset:
				m.state.ExpandPreset(item.PresetID)
			case ItemFeature:
				m.state.ExpandFeature(item.PresetID, item.FeatureID)
			}
		}

	case "left", "h":
		if item, ok := m.state.CurrentItem(); ok {
			switch item.Kind {
			case ItemPreset:
				m.state.CollapsePreset(item.PresetID)
			case ItemFeature:
				m.state.CollapseFeature(item.PresetID, item.FeatureID)
			case ItemOption:
				m.state.CollapseToFeature(item.PresetID, item.FeatureID)
			}
		}

	case " ", "enter":
		if item, ok := m.state.CurrentItem(); ok {
			switch item.Kind {
			case ItemPreset:
				m.state.TogglePreset(item.PresetID)
			case ItemFeature:
				if m.state.IsFeatureExpanded(item.PresetID, item.FeatureID) {
					m.state.CollapseFeature(item.PresetID, item.FeatureID)
				} else {
					m.state.ExpandFeature(item.PresetID, item.FeatureID)
				}
			case ItemOption:
				m.state.ToggleOption(item.PresetID, item.OptionID)
			}
			m.syncPreview(false)
		}

	case "tab":
		m.state.CyclePlatform()
		m.syncPreview(false)

	case "p":
		m.state.OpenMenu()
	}
	return m, nil
}

// syncPreview pushes the rendered preview (or the diff, or the generation
// error) into the viewport. Content changes reset the scroll; force rebuilds
// even when the text is unchanged, for resize handling.
func (m *Model) syncPreview(force bool) {
	if !m.ready {
		return
	}
	var content string
	switch {
	case m.state.GenError != "":
		content = errorStyle.Render("generation failed:\n\n" + m.state.GenError)
	case m.state.HasExisting:
		content = RenderDiff(ComputeDiff(m.state.Existing, m.state.Preview))
	default:
		content = RenderPlain(m.state.Preview)
	}
	if !force && content == m.lastPreview {
		return
	}
	m.lastPreview = content
	m.vp.SetContent(content)
	m.applyScroll()
}

// applyScroll mirrors the state's scroll position into the viewport, then
// reads back the clamped offset so the two never drift apart.
func (m *Model) applyScroll() {
	m.vp.SetYOffset(m.state.PreviewScroll)
	m.state.PreviewScroll = m.vp.YOffset
}

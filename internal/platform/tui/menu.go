package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/starbird/internal/config"
	"github.com/vovakirdan/starbird/internal/core"
)

// MenuChoice is what the player picked on the title screen.
type MenuChoice int

const (
	MenuChoiceNone MenuChoice = iota
	MenuChoicePlay
	MenuChoiceScores
	MenuChoiceQuit
)

// menuItem is one line of the title screen.
type menuItem struct {
	label  string
	choice MenuChoice
}

var menuItems = []menuItem{
	{"Play", MenuChoicePlay},
	{"Difficulty", MenuChoiceNone},
	{"High Scores", MenuChoiceScores},
	{"Quit", MenuChoiceQuit},
}

// difficultyRow is the index of the difficulty selector in menuItems.
const difficultyRow = 1

var presets = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
}

var titleArt = []string{
	`  ___ _____ _   ___ ___ ___ ___ ___  `,
	` / __|_   _/_\ | _ \ _ )_ _| _ \   \ `,
	` \__ \ | |/ _ \|   / _ \| ||   / |) |`,
	` |___/ |_/_/ \_\_|_\___/___|_|_\___/ `,
}

// MenuModel is the Bubble Tea model for the title screen.
type MenuModel struct {
	cursor    int
	preset    int
	width     int
	height    int
	best      int
	player    string
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	choice    MenuChoice
}

// NewMenuModel creates a title screen. best is the high score shown under
// the title.
func NewMenuModel(cfg core.RuntimeConfig, preset config.DifficultyPreset, player string, best int) MenuModel {
	m := MenuModel{
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		best:      best,
		player:    player,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		preset:    1,
	}
	for i, p := range presets {
		if p == preset {
			m.preset = i
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.choice = MenuChoiceQuit
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		if m.cursor == difficultyRow {
			m.preset = (m.preset + len(presets) - 1) % len(presets)
		}

	case MenuActionRight:
		if m.cursor == difficultyRow {
			m.preset = (m.preset + 1) % len(presets)
		}

	case MenuActionSelect:
		if m.cursor == difficultyRow {
			m.preset = (m.preset + 1) % len(presets)
			return m, nil
		}
		m.choice = menuItems[m.cursor].choice
		return m, tea.Quit

	case MenuActionScoreboard:
		m.choice = MenuChoiceScores
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice == MenuChoiceQuit {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

	var b strings.Builder
	b.WriteString("\n")
	for _, line := range titleArt {
		b.WriteString(titleStyle.Render(centerText(line, m.width)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	sub := "Fly through the pipes. Mind the black holes."
	if m.player != "" {
		sub = fmt.Sprintf("Welcome, %s. Best: %d", m.player, m.best)
	} else if m.best > 0 {
		sub = fmt.Sprintf("Best: %d", m.best)
	}
	b.WriteString(dimStyle.Render(centerText(sub, m.width)))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		label := item.label
		if i == difficultyRow {
			label = fmt.Sprintf("Difficulty: < %s >", presets[m.preset])
		}
		if i == m.cursor {
			b.WriteString(activeStyle.Render(centerText("> "+label, m.width)))
		} else {
			b.WriteString(centerText("  "+label, m.width))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Difficulty  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(dimStyle.Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}

// Choice returns what the player picked, MenuChoiceNone while undecided.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Preset returns the selected difficulty.
func (m MenuModel) Preset() config.DifficultyPreset {
	return presets[m.preset]
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice MenuChoice
	Preset config.DifficultyPreset
	Config core.RuntimeConfig
}

// RunMenu runs the title screen and returns the selection result.
func RunMenu(cfg core.RuntimeConfig, preset config.DifficultyPreset, best int) (MenuResult, error) {
	model := NewMenuModel(cfg, preset, "", best)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Choice: MenuChoiceQuit, Preset: preset, Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.Choice() == MenuChoiceNone {
		return MenuResult{Choice: MenuChoiceQuit, Preset: preset, Config: cfg}, nil
	}

	return MenuResult{Choice: m.Choice(), Preset: m.Preset(), Config: m.Config()}, nil
}

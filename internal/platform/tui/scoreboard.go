package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-dodge/internal/registry"
	"github.com/vovakirdan/tui-dodge/internal/storage"
)

// scoreboardRuns is how many runs of a variant the table holds.
const scoreboardRuns = 50

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Prev  key.Binding
	Next  key.Binding
	Clear key.Binding
	Back  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Prev, k.Next, k.Clear, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Prev, k.Next},
		{k.Clear, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("left", "prev variant"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("right", "next variant"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear runs"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows the recorded runs of one variant at a time: its
// keyed best score, history statistics and the top runs.
type ScoreboardModel struct {
	variants []registry.GameInfo
	cursor   int
	store    *storage.Store

	best  int
	runs  []storage.ScoreEntry
	stats *storage.GameStats

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int

	// confirmClear is set by the first press of the clear key.
	confirmClear bool
	status       string

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard over every registered variant.
// A nil store shows empty boards.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	return newScoreboard(store, registry.List(), width, height)
}

func newScoreboard(store *storage.Store, variants []registry.GameInfo, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		variants: variants,
		store:    store,
		keys:     DefaultScoreboardKeyMap(),
		help:     help.New(),
		width:    width,
		height:   height,
	}
	m.table = newRunTable(height)
	m.load()
	return m
}

func newRunTable(height int) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 9},
			{Title: "Survived", Width: 9},
			{Title: "When", Width: 15},
			{Title: "Run", Width: 8},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-11, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m ScoreboardModel) variant() (registry.GameInfo, bool) {
	if len(m.variants) == 0 {
		return registry.GameInfo{}, false
	}
	return m.variants[m.cursor], true
}

// load reads the selected variant's record and history.
func (m *ScoreboardModel) load() {
	m.best, m.runs, m.stats = 0, nil, nil
	v, ok := m.variant()
	if ok && m.store != nil {
		if best, err := m.store.LoadHighScore(storage.HighScoreKey(v.ID)); err == nil {
			m.best = best
		}
		if runs, err := m.store.TopScores(v.ID, scoreboardRuns); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.GetGameStats(v.ID); err == nil {
			m.stats = stats
		}
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			humanize.Comma(int64(r.Score)),
			formatSurvived(r.Duration),
			humanize.Time(r.CreatedAt),
			shortRunID(r.RunID),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) move(delta int) {
	if len(m.variants) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.variants)) % len(m.variants)
	m.confirmClear = false
	m.status = ""
	m.load()
}

// clear deletes the selected variant's runs on the second press of the
// clear key. The keyed best survives.
func (m *ScoreboardModel) clear() {
	v, ok := m.variant()
	if !ok || m.store == nil || len(m.runs) == 0 {
		return
	}
	if !m.confirmClear {
		m.confirmClear = true
		m.status = fmt.Sprintf("Press x again to delete %d runs of %s", len(m.runs), v.Title)
		return
	}

	m.confirmClear = false
	if err := m.store.ClearScores(v.ID); err != nil {
		m.status = "Could not clear runs: " + err.Error()
		return
	}
	m.status = "Run history cleared"
	m.load()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !key.Matches(msg, m.keys.Clear) && m.confirmClear {
			m.confirmClear = false
			m.status = ""
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.move(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.move(-1)
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			m.clear()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetHeight(max(m.height-11, 3))
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var (
	boardTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardBestStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	boardDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	boardStatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	boardFrameStyle  = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)
)

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "HIGH SCORES"
	if v, ok := m.variant(); ok {
		title = v.Title
		if len(m.variants) > 1 {
			title = "< " + title + " >"
		}
	}
	b.WriteString(centerText(boardTitleStyle.Render(title), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(boardBestStyle.Render("Best "+humanize.Comma(int64(m.best))), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(boardDimStyle.Render(m.statsLine()), m.width))
	b.WriteString("\n\n")

	if len(m.runs) == 0 {
		b.WriteString(centerText(boardDimStyle.Italic(true).Render("No runs recorded yet."), m.width))
		b.WriteString("\n")
	} else {
		b.WriteString(centerText(boardFrameStyle.Render(m.table.View()), m.width))
		b.WriteString("\n")
		b.WriteString(centerText(boardDimStyle.Render(m.selectedLine()), m.width))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(centerText(boardStatusStyle.Render(m.status), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// statsLine summarizes the selected variant's run history.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	return fmt.Sprintf("%s runs  |  avg %.1f  |  played %s  |  last %s",
		humanize.Comma(int64(m.stats.GamesCount)),
		m.stats.AvgScore,
		m.stats.TotalDuration.Round(time.Second),
		humanize.Time(m.stats.LastPlayed),
	)
}

// selectedLine shows the full record of the highlighted run.
func (m ScoreboardModel) selectedLine() string {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return ""
	}
	r := m.runs[i]
	return fmt.Sprintf("run %s  |  %s", r.RunID, r.CreatedAt.Local().Format("2006-01-02 15:04"))
}

// formatSurvived shows run length with tenths below a minute.
func formatSurvived(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return d.Round(time.Second).String()
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	finalModel, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}

package ui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/svxdash/internal/prefs"
	"github.com/five82/svxdash/internal/state"
	"github.com/five82/svxdash/internal/talker"
)

const (
	clockTick = time.Second
	// maxOnAir caps the on-air panel so the log keeps most of the screen.
	maxOnAir = 5
	// flashFor is how long a status message stays in the command bar.
	flashFor = 3 * time.Second
)

// Options configure the dashboard.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Refresh   func() error
	LogPath   string
	PollTick  time.Duration
	Prefs     prefs.Prefs
	PrefsPath string
	Logger    *slog.Logger
}

// Model is the bubbletea model for the dashboard.
type Model struct {
	ctx       context.Context
	store     *state.Store
	refresh   func() error
	logPath   string
	pollTick  time.Duration
	prefsPath string
	logger    *slog.Logger

	prefs      prefs.Prefs
	theme      Theme
	order      talker.Order
	talkerOnly bool

	snapshot    state.Snapshot
	lastUpdated time.Time
	now         time.Time

	viewport viewport.Model
	width    int
	height   int
	ready    bool

	flash      string
	flashUntil time.Time
}

type tickMsg time.Time

type refreshedMsg struct{ err error }

// New builds the model. Run calls it; tests drive it directly.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	order := talker.Ascending
	if opts.Prefs.NewestFirst {
		order = talker.Descending
	}
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}

	m := Model{
		ctx:        ctx,
		store:      store,
		refresh:    opts.Refresh,
		logPath:    opts.LogPath,
		pollTick:   opts.PollTick,
		prefsPath:  opts.PrefsPath,
		logger:     logger,
		prefs:      opts.Prefs,
		theme:      GetTheme(opts.Prefs.Theme),
		order:      order,
		talkerOnly: opts.Prefs.TalkersOnly,
		now:        time.Now(),
		viewport:   viewport.New(0, 0),
	}
	m.syncSnapshot()
	return m
}

// Run starts the dashboard and blocks until the user quits or the context ends.
func Run(opts Options) error {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(opts.Context))
	if _, err := p.Run(); err != nil && opts.Context.Err() == nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func tick() tea.Cmd {
	return tea.Tick(clockTick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case tickMsg:
		if m.ctx.Err() != nil {
			return m, tea.Quit
		}
		m.now = time.Time(msg)
		m.syncSnapshot()
		m.layout()
		return m, tick()

	case refreshedMsg:
		if msg.err != nil {
			m.setFlash("refresh failed", m.now)
		}
		m.syncSnapshot()
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Order):
		if m.order == talker.Descending {
			m.order = talker.Ascending
		} else {
			m.order = talker.Descending
		}
		m.prefs.NewestFirst = m.order == talker.Descending
		m.savePrefs()
		m.layout()
		m.jumpToNewest()
		return m, nil

	case key.Matches(msg, keys.Talkers):
		m.talkerOnly = !m.talkerOnly
		m.prefs.TalkersOnly = m.talkerOnly
		m.savePrefs()
		m.layout()
		return m, nil

	case key.Matches(msg, keys.Theme):
		m.prefs.Theme = NextTheme(m.theme.Name)
		m.theme = GetTheme(m.prefs.Theme)
		m.savePrefs()
		m.layout()
		return m, nil

	case key.Matches(msg, keys.Refresh):
		if m.refresh == nil {
			return m, nil
		}
		refresh := m.refresh
		return m, func() tea.Msg { return refreshedMsg{err: refresh()} }

	case key.Matches(msg, keys.Top):
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, keys.Bottom):
		m.viewport.GotoBottom()
		return m, nil

	case key.Matches(msg, keys.Up):
		m.viewport.LineUp(1)
		return m, nil

	case key.Matches(msg, keys.Down):
		m.viewport.LineDown(1)
		return m, nil

	case key.Matches(msg, keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}
	return m, nil
}

func (m *Model) syncSnapshot() {
	m.snapshot = m.store.Snapshot()
	if !m.snapshot.ReadAt.IsZero() {
		m.lastUpdated = m.snapshot.ReadAt
	}
}

func (m *Model) savePrefs() {
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("save prefs failed", "error", err)
		m.setFlash("prefs not saved", m.now)
	}
}

func (m *Model) setFlash(text string, now time.Time) {
	m.flash = text
	m.flashUntil = now.Add(flashFor)
}

func (m Model) activeFlash() string {
	if m.flash == "" || m.now.After(m.flashUntil) {
		return ""
	}
	return m.flash
}

// entries assembles the stored window at the model's clock so active
// durations advance between polls.
func (m Model) entries() []talker.Entry {
	all := m.snapshot.Window.Entries(m.now, m.order)
	if !m.talkerOnly {
		return all
	}
	out := make([]talker.Entry, 0, len(all))
	for _, e := range all {
		if talker.Classify(e.Message).Kind != talker.KindOther {
			out = append(out, e)
		}
	}
	return out
}

// layout sizes the viewport around the header, on-air panel and command bar,
// then re-renders the log. The newest line stays in view when it was before.
func (m *Model) layout() {
	if !m.ready {
		return
	}
	followNewest := m.atNewest()

	onAir := min(len(m.snapshot.Window.Active()), maxOnAir)
	chrome := 2 // header + command bar
	if onAir > 0 {
		chrome += onAir + 1
	}
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-chrome, 1)
	m.viewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.Panel))
	m.viewport.SetContent(m.renderEntries(m.entries(), m.width))

	if followNewest {
		m.jumpToNewest()
	}
}

func (m Model) atNewest() bool {
	if m.order == talker.Descending {
		return m.viewport.AtTop()
	}
	return m.viewport.AtBottom()
}

func (m *Model) jumpToNewest() {
	if m.order == talker.Descending {
		m.viewport.GotoTop()
	} else {
		m.viewport.GotoBottom()
	}
}

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	parts := []string{m.renderHeader()}
	if panel := m.renderOnAir(); panel != "" {
		parts = append(parts, panel)
	}
	parts = append(parts, m.viewport.View(), m.renderCommandBar())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

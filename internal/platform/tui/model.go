package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/TomNeyland/endless-tower/internal/core"
	"github.com/TomNeyland/endless-tower/internal/games/tower"
	"github.com/TomNeyland/endless-tower/internal/storage"
)

// Model is the Bubble Tea model for running the tower game.
type Model struct {
	game       *tower.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	keys       *KeyMapper
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	record     storage.HighScoreRecord
	newFlags   storage.NewRecords
	quitting   bool
	runSaved   bool // Whether this session's run has been recorded
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game *tower.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		keys:       NewKeyMapper(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
	}
	if store != nil {
		if rec, err := store.HighScore(); err == nil {
			m.record = rec
		}
	}
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		// A quit mid-session still counts the session as played.
		m.recordRun()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// A mid-climb resize restarts the session; the tower layout depends on
	// the shaft width.
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.recordRun() // games played always advances, even for a restart
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.runSaved = false
		m.newFlags = storage.NewRecords{}
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.runSaved {
		m.recordRun()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordRun persists the current session exactly once: its run history row
// plus the field-wise-max update of the best record.
func (m *Model) recordRun() {
	if m.runSaved || m.store == nil {
		return
	}
	m.runSaved = true

	stats := m.game.FinalStats()
	if !m.gameState.GameOver {
		stats = m.game.SessionStats() // aborted session: record what stands
	}

	rec, flags, err := m.store.RecordSession(storage.RunResult{
		Height:         stats.Height,
		Score:          stats.TotalScore,
		SurvivalMs:     stats.SurvivalMs,
		LongestChain:   stats.LongestChain,
		TotalChains:    stats.TotalChains,
		PerfectBounces: stats.PerfectBounces,
		TotalBounces:   stats.TotalBounces,
		MagneticChains: stats.MagneticChains,
	})
	if err != nil {
		if m.logger != nil {
			m.logger.Warn("could not record session", "error", err)
		}
		return
	}
	m.record = rec
	m.newFlags = flags
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	if m.gameState.GameOver && m.newFlags.Any() {
		m.screen.DrawTextCentered(m.screen.Height()-2, "NEW RECORD!")
	}

	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(game *tower.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

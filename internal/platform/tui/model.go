package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-bricks/internal/core"
	"github.com/vovakirdan/tui-bricks/internal/games/bricks"
	"github.com/vovakirdan/tui-bricks/internal/savefile"
	"github.com/vovakirdan/tui-bricks/internal/storage"
)

const (
	defaultFrameRate = 30
	toastDuration    = 3 * time.Second
	eventBuffer      = 64
)

// ModelOptions configures the play model.
type ModelOptions struct {
	FrameRate     int    // Redraws per second
	Debug         bool   // Enables the level skip key
	ScreenshotDir string // Where ctrl+s writes; ~/.bricks/screenshots when empty
	Width, Height int
}

// Model is the Bubble Tea model for playing bricks. The simulation runs
// on the runner's own scheduler; the model only forwards keys and draws
// the latest snapshot.
type Model struct {
	runner   *bricks.Runner
	renderer *bricks.Renderer
	screen   *core.Screen
	events   <-chan bricks.Event
	keys     KeyMap
	help     help.Model
	opts     ModelOptions

	toast      string
	toastColor core.Color
	toastUntil time.Time
	quitting   bool
}

// NewModel creates a model driving runner.
func NewModel(runner *bricks.Runner, opts ModelOptions) Model {
	if opts.FrameRate <= 0 {
		opts.FrameRate = defaultFrameRate
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		cfg := core.DefaultConfig()
		opts.Width, opts.Height = cfg.ScreenW, cfg.ScreenH
	}

	events := make(chan bricks.Event, eventBuffer)
	runner.Session().Subscribe(bricks.ListenerFunc(func(e bricks.Event) {
		select {
		case events <- e:
		default:
			// The UI is behind; it only loses a toast.
		}
	}))

	return Model{
		runner:   runner,
		renderer: bricks.NewRenderer(runner.Session().Geometry()),
		screen:   core.NewScreen(opts.Width, max(1, opts.Height-1)),
		events:   events,
		keys:     DefaultKeyMap(opts.Debug),
		help:     help.New(),
		opts:     opts,
	}
}

// Init starts the redraw loop and the event pump.
func (m Model) Init() tea.Cmd {
	return tea.Batch(frameCmd(m.opts.FrameRate), waitForEvent(m.events))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, max(1, msg.Height-1))
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		if m.toast != "" && time.Time(msg).After(m.toastUntil) {
			m.toast = ""
		}
		return m, frameCmd(m.opts.FrameRate)

	case EventMsg:
		m.handleEvent(bricks.Event(msg))
		return m, waitForEvent(m.events)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		if path, err := m.saveScreenshot(); err != nil {
			m.showToast("Screenshot failed", core.ColorBrightRed)
		} else {
			m.showToast("Saved "+filepath.Base(path), core.ColorGray)
		}
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		m.runner.Close()
		return m, tea.Quit
	}
	if action != core.ActionNone {
		m.runner.Handle(action)
	}
	return m, nil
}

// handleEvent turns session events into short status messages.
func (m *Model) handleEvent(e bricks.Event) {
	switch e.Kind {
	case bricks.EventLevelMessage:
		m.showToast(e.Text, core.ColorBrightYellow)
	case bricks.EventLifeLost:
		m.showToast("-1 heart", core.ColorBrightRed)
	case bricks.EventStarCollected:
		m.showToast("GOLD!", core.ColorGold)
	case bricks.EventHeartCollected:
		m.showToast("+1 heart  +5 special", core.ColorPink)
	case bricks.EventBonusCollected:
		m.showToast(fmt.Sprintf("+%d", e.Points), core.ColorBrightGreen)
	case bricks.EventSaved:
		m.showToast("Game saved", core.ColorBrightGreen)
	case bricks.EventSaveFailed:
		m.showToast("Save failed: "+describe(e.Err), core.ColorBrightRed)
	case bricks.EventLoaded:
		m.showToast(fmt.Sprintf("Loaded level %d", e.Level), core.ColorBrightGreen)
	case bricks.EventLoadFailed:
		m.showToast("Load failed: "+describe(e.Err), core.ColorBrightRed)
	}
}

// describe shortens an I/O error for the status line.
func describe(err error) string {
	switch {
	case err == nil:
		return "unknown error"
	case errors.Is(err, os.ErrNotExist), errors.Is(err, storage.ErrNoSave):
		return "no save found"
	case errors.Is(err, savefile.ErrTruncated), errors.Is(err, savefile.ErrCorrupt):
		return "save is damaged"
	case errors.Is(err, savefile.ErrUnsupportedVersion):
		return "save is from another version"
	}
	return err.Error()
}

func (m *Model) showToast(text string, c core.Color) {
	m.toast = text
	m.toastColor = c
	m.toastUntil = time.Now().Add(toastDuration)
}

// saveScreenshot writes the current screen as plain text.
func (m Model) saveScreenshot() (string, error) {
	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".bricks", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	m.draw()
	path := filepath.Join(dir, fmt.Sprintf("bricks_%s.txt", time.Now().Format("20060102_150405")))
	return path, os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// draw renders the latest snapshot and status line into the screen buffer.
func (m Model) draw() {
	m.renderer.Render(m.runner.Latest(), m.screen)
	if m.toast != "" && m.screen.Height() > 1 {
		m.screen.DrawTextCentered(1, m.toast, m.toastColor)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.draw()
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program for runner and blocks until the
// player quits.
func Run(runner *bricks.Runner, opts ModelOptions) error {
	model := NewModel(runner, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	runner.Close()
	return err
}

// Package tui provides the Bubble Tea front end for the bricks game.
// It handles the terminal UI loop, key bindings, score table and SSH play.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-bricks/internal/games/bricks"
)

// FrameMsg is sent to trigger a redraw.
type FrameMsg time.Time

// frameCmd returns a Bubble Tea command that sends frame messages at the specified rate.
func frameCmd(rate int) tea.Cmd {
	interval := time.Second / time.Duration(rate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// EventMsg carries a session event into the Bubble Tea loop.
type EventMsg bricks.Event

// waitForEvent returns a command that delivers the next event from ch.
func waitForEvent(ch <-chan bricks.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return nil
		}
		return EventMsg(e)
	}
}

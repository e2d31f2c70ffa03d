package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone      Action = iota
	ActionLeft             // A, Left arrow - move paddle left
	ActionRight            // D, Right arrow - move paddle right
	ActionLaunch           // Space - release the ball
	ActionSpecial          // C - spend a power-up
	ActionSave             // S - write a save
	ActionLoad             // L - restore the last save
	ActionRestart          // Esc, R - start over from level 1
	ActionNewGame          // Enter - leave the title screen
	ActionNextLevel        // N - debug level advance
	ActionQuit             // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionLaunch:
		return "Launch"
	case ActionSpecial:
		return "Special"
	case ActionSave:
		return "Save"
	case ActionLoad:
		return "Load"
	case ActionRestart:
		return "Restart"
	case ActionNewGame:
		return "NewGame"
	case ActionNextLevel:
		return "NextLevel"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

package bricks

// EventKind identifies a notification from the session.
type EventKind int

const (
	EventBlockDestroyed EventKind = iota
	EventLifeLost
	EventGameOver
	EventLevelStarted
	EventLevelMessage
	EventWin
	EventBonusSpawned
	EventBonusCollected
	EventStarCollected
	EventHeartCollected
	EventGoldExpired
	EventSaved
	EventSaveFailed
	EventLoaded
	EventLoadFailed
)

// String returns the name of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventBlockDestroyed:
		return "block-destroyed"
	case EventLifeLost:
		return "life-lost"
	case EventGameOver:
		return "game-over"
	case EventLevelStarted:
		return "level-started"
	case EventLevelMessage:
		return "level-message"
	case EventWin:
		return "win"
	case EventBonusSpawned:
		return "bonus-spawned"
	case EventBonusCollected:
		return "bonus-collected"
	case EventStarCollected:
		return "star-collected"
	case EventHeartCollected:
		return "heart-collected"
	case EventGoldExpired:
		return "gold-expired"
	case EventSaved:
		return "saved"
	case EventSaveFailed:
		return "save-failed"
	case EventLoaded:
		return "loaded"
	case EventLoadFailed:
		return "load-failed"
	default:
		return "unknown"
	}
}

// Event is a notification for the presentation layer. Only the fields
// relevant to the kind are set.
type Event struct {
	Kind   EventKind
	X, Y   float64 // Where it happened, in playfield units
	Points int     // Score change shown in a popup (-1 for a lost life)
	Score  int     // Score after the event
	Level  int
	Text   string
	Err    error
}

// Listener receives session events. OnEvent is called outside the session
// lock but from simulation goroutines, so it must not block.
type Listener interface {
	OnEvent(Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Event)

// OnEvent calls f(e).
func (f ListenerFunc) OnEvent(e Event) {
	f(e)
}

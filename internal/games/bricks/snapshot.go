package bricks

import "github.com/vovakirdan/tui-bricks/internal/core"

// BlockView is the visible part of a block.
type BlockView struct {
	Row   int        `json:"row"`
	Col   int        `json:"col"`
	X     float64    `json:"x"`
	Y     float64    `json:"y"`
	Kind  Kind       `json:"kind"`
	Color core.Color `json:"color"`
}

// BonusView is the visible part of a falling bonus.
type BonusView struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Snapshot is a read-only copy of the session taken under its lock.
// Renderers and spectators only ever see snapshots.
type Snapshot struct {
	Phase     Phase       `json:"phase"`
	Level     int         `json:"level"`
	Score     int         `json:"score"`
	Lives     int         `json:"lives"`
	PowerUps  int         `json:"power_ups"`
	Destroyed int         `json:"destroyed"`
	Total     int         `json:"total"`
	Time      int64       `json:"time"`
	Gold      bool        `json:"gold"`
	Stuck     bool        `json:"stuck"`
	BallX     float64     `json:"ball_x"`
	BallY     float64     `json:"ball_y"`
	VX        float64     `json:"vx"`
	PaddleX   float64     `json:"paddle_x"`
	PaddleY   float64     `json:"paddle_y"`
	Blocks    []BlockView `json:"blocks"`
	Bonuses   []BonusView `json:"bonuses"`
	Message   string      `json:"message,omitempty"`
}

// Snapshot copies the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &s.st
	snap := Snapshot{
		Phase:     s.phase,
		Level:     st.level,
		Score:     st.score,
		Lives:     st.lives,
		PowerUps:  st.powerUps,
		Destroyed: st.destroyed,
		Total:     st.total,
		Time:      st.time,
		Gold:      st.gold,
		Stuck:     st.stuck,
		BallX:     st.ballX,
		BallY:     st.ballY,
		VX:        st.vX,
		PaddleX:   st.paddleX,
		PaddleY:   st.paddleY,
		Blocks:    make([]BlockView, 0, len(st.blocks)),
		Message:   s.message,
	}
	for i := range st.blocks {
		b := &st.blocks[i]
		if b.Destroyed {
			continue
		}
		snap.Blocks = append(snap.Blocks, BlockView{
			Row: b.Row, Col: b.Col, X: b.X, Y: b.Y, Kind: b.Kind, Color: b.Color,
		})
	}
	for _, bn := range st.bonuses {
		if bn.Live(s.geo.FieldH) {
			snap.Bonuses = append(snap.Bonuses, BonusView{X: bn.X, Y: bn.Y})
		}
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Time)                   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level)            //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)            //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)            //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Destroyed)        //#nosec G115 -- hash computation
	h = h*31 + uint64(int64(snap.BallX*1e6)) //#nosec G115 -- hash computation
	h = h*31 + uint64(int64(snap.BallY*1e6)) //#nosec G115 -- hash computation
	h = h*31 + uint64(int64(snap.PaddleX))   //#nosec G115 -- hash computation
	for _, b := range snap.Blocks {
		h = h*31 + uint64(b.Row*64+b.Col) //#nosec G115 -- hash computation
		h = h*31 + uint64(b.Kind)         //#nosec G115 -- hash computation
	}
	for _, b := range snap.Bonuses {
		h = h*31 + uint64(int64(b.Y*1e6)) //#nosec G115 -- hash computation
	}
	return h
}

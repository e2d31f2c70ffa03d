package bricks

import "math"

// PaddleVX returns the horizontal speed after a paddle bounce. relation is
// the ball's offset from the paddle center divided by half the paddle
// width, so -1 and 1 are the paddle edges.
func PaddleVX(relation float64, level int) float64 {
	a := math.Abs(relation)
	switch {
	case a <= 0.3:
		return a
	case a <= 0.7:
		return a*1.5 + float64(level)/3.5
	default:
		return a*2 + float64(level)/3.5
	}
}

// PhysicsTick advances the simulation by one physics step. It returns an
// ErrInvariant error if the step left the state inconsistent.
func (s *Session) PhysicsTick() error {
	s.mu.Lock()
	if s.phase != PhaseRunning {
		s.mu.Unlock()
		return nil
	}
	s.step()
	err := s.checkInvariants()
	s.unlockAndDispatch()
	return err
}

// step runs one physics step. Caller holds mu.
func (s *Session) step() {
	st := &s.st

	if st.destroyed == st.total {
		s.advanceLevel()
		return
	}

	if s.moveBall() {
		if s.phase != PhaseRunning {
			return
		}
		st.multiplier = 1
		if st.gold {
			st.multiplier = s.cfg.Rules.GoldMultiplier
		}
		s.collidePaddle()
		s.collideWalls()
		s.collideBlocks()
		st.collision.steer(&st.down, &st.right, st.bounceRight)
	}

	s.expireGold()
	s.updateBonuses()
}

func (s *Session) resetCollision() {
	s.st.collision, s.st.bounceRight = CollisionNone, false
}

// moveBall integrates the ball and handles the top and bottom bounds.
// It returns false when the ball touched the top wall, which ends the
// collision checks for this step.
func (s *Session) moveBall() bool {
	st := &s.st

	if st.stuck {
		s.clampToPaddle()
	} else {
		if st.down {
			st.ballY += s.geo.VY
		} else {
			st.ballY -= s.geo.VY
		}
		if st.right {
			st.ballX += st.vX
		} else {
			st.ballX -= st.vX
		}
	}

	if st.ballY <= 0 {
		s.resetCollision()
		st.down = true
		return false
	}

	if st.ballY >= s.geo.FieldH {
		st.down = false
		if !st.gold {
			s.loseLife()
		}
	}
	return true
}

func (s *Session) loseLife() {
	st := &s.st
	st.lives--
	st.stuck = true
	s.emit(Event{
		Kind:   EventLifeLost,
		X:      s.geo.FieldW / 2,
		Y:      s.geo.FieldH / 2,
		Points: -1,
		Score:  st.score,
		Level:  st.level,
	})

	if st.lives == 0 {
		s.phase = PhaseGameOver
		s.logger.Info("game over", "level", st.level, "score", st.score)
		s.emit(Event{Kind: EventGameOver, Score: st.score, Level: st.level})
	}
}

func (s *Session) collidePaddle() {
	st := &s.st
	if st.ballY < st.paddleY-s.geo.BallRadius {
		return
	}
	if st.ballX < st.paddleX || st.ballX > st.paddleX+s.geo.PaddleW {
		return
	}

	st.hitTime = st.time
	s.resetCollision()
	st.down = false

	offset := st.ballX - st.paddleCenterX
	st.vX = PaddleVX(offset/(s.geo.PaddleW/2), st.level)
	st.collision = CollisionPaddle
	st.bounceRight = offset > 0
}

func (s *Session) collideWalls() {
	st := &s.st
	if st.ballX >= s.geo.FieldW {
		s.resetCollision()
		st.collision = CollisionWallRight
	}
	if st.ballX <= 0 {
		s.resetCollision()
		st.collision = CollisionWallLeft
	}
}

// collideBlocks scans the board while the ball is within its rows.
// Every block the ball touches this step is destroyed.
func (s *Session) collideBlocks() {
	st := &s.st
	top, bottom := s.geo.BoardSpan(st.level)
	if st.ballY < top || st.ballY > bottom {
		return
	}

	for i := range st.blocks {
		b := &st.blocks[i]
		face := b.CheckHit(st.ballX, st.ballY)
		if face == HitNone {
			continue
		}

		st.score += st.multiplier
		b.Destroyed = true
		st.destroyed++
		s.resetCollision()
		s.emit(Event{Kind: EventBlockDestroyed, X: b.X, Y: b.Y, Points: st.multiplier, Score: st.score, Level: st.level})

		switch b.Kind {
		case KindChoco:
			bn := NewBonus(s.geo, b.Row, b.Col, st.time)
			st.bonuses = append(st.bonuses, bn)
			s.emit(Event{Kind: EventBonusSpawned, X: bn.X, Y: bn.Y, Level: st.level})
		case KindStar:
			st.gold = true
			st.goldTime = st.time
			st.powerUps++
			s.emit(Event{Kind: EventStarCollected, X: b.X, Y: b.Y, Level: st.level})
		case KindHeart:
			st.lives++
			st.powerUps += 5
			s.emit(Event{Kind: EventHeartCollected, X: b.X, Y: b.Y, Level: st.level})
		}

		st.collision = fromFace(face)
	}
}

// expireGold ends gold status once its duration has fully elapsed.
func (s *Session) expireGold() {
	st := &s.st
	if !st.gold || st.time-st.goldTime < s.cfg.Rules.GoldDuration {
		return
	}
	st.gold = false
	st.multiplier = 1
	s.emit(Event{Kind: EventGoldExpired, Level: st.level})
}

// updateBonuses catches bonuses overlapping the paddle and drops the rest.
func (s *Session) updateBonuses() {
	st := &s.st
	if len(st.bonuses) == 0 {
		return
	}
	paddle := s.geo.PaddleBox(st.paddleX, st.paddleY)
	size := s.geo.BonusSize

	live := st.bonuses[:0]
	for _, bn := range st.bonuses {
		if !bn.Live(s.geo.FieldH) {
			continue
		}
		if bn.Box(size).Intersects(paddle) {
			bn.Taken = true
			st.score += s.cfg.Rules.BonusPoints
			s.emit(Event{
				Kind:   EventBonusCollected,
				X:      bn.X,
				Y:      bn.Y,
				Points: s.cfg.Rules.BonusPoints,
				Score:  st.score,
				Level:  st.level,
			})
			continue
		}
		bn.Y += bn.FallStep(st.time)
		live = append(live, bn)
	}
	for i := len(live); i < len(st.bonuses); i++ {
		st.bonuses[i] = nil
	}
	st.bonuses = live
}

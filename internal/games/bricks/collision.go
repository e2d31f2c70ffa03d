package bricks

import "errors"

// Collision is the single collision recorded by the last resolution pass.
// It stays in effect, steering the ball every tick, until the next
// collision replaces it or a reset clears it.
type Collision int

const (
	CollisionNone Collision = iota
	CollisionPaddle
	CollisionWallLeft
	CollisionWallRight
	CollisionBlockLeft
	CollisionBlockRight
	CollisionBlockTop
	CollisionBlockBottom
)

// String returns the name of the collision.
func (c Collision) String() string {
	switch c {
	case CollisionPaddle:
		return "paddle"
	case CollisionWallLeft:
		return "wall-left"
	case CollisionWallRight:
		return "wall-right"
	case CollisionBlockLeft:
		return "block-left"
	case CollisionBlockRight:
		return "block-right"
	case CollisionBlockTop:
		return "block-top"
	case CollisionBlockBottom:
		return "block-bottom"
	default:
		return "none"
	}
}

// fromFace maps a block hit face to its collision.
func fromFace(f HitFace) Collision {
	switch f {
	case HitTop:
		return CollisionBlockTop
	case HitBottom:
		return CollisionBlockBottom
	case HitLeft:
		return CollisionBlockLeft
	case HitRight:
		return CollisionBlockRight
	default:
		return CollisionNone
	}
}

// steer applies the collision to the ball direction.
// Left and right block hits both send the ball rightward.
func (c Collision) steer(down, right *bool, bounceRight bool) {
	switch c {
	case CollisionPaddle:
		*right = bounceRight
	case CollisionWallRight:
		*right = false
	case CollisionWallLeft:
		*right = true
	case CollisionBlockLeft, CollisionBlockRight:
		*right = true
	case CollisionBlockTop:
		*down = false
	case CollisionBlockBottom:
		*down = true
	}
}

// Legacy flag positions in the save layout.
const (
	flagPaddle = iota
	flagPaddleRight
	flagWallRight
	flagWallLeft
	flagBlockRight
	flagBlockBottom
	flagBlockLeft
	flagBlockTop
	flagCount
)

var flagCollision = [flagCount]Collision{
	flagPaddle:      CollisionPaddle,
	flagPaddleRight: CollisionNone,
	flagWallRight:   CollisionWallRight,
	flagWallLeft:    CollisionWallLeft,
	flagBlockRight:  CollisionBlockRight,
	flagBlockBottom: CollisionBlockBottom,
	flagBlockLeft:   CollisionBlockLeft,
	flagBlockTop:    CollisionBlockTop,
}

// ErrConflictingFlags is returned when more than one collision flag is set.
var ErrConflictingFlags = errors.New("bricks: more than one collision flag set")

// Flags expands the collision into the eight save-file flags.
func (c Collision) Flags(bounceRight bool) [flagCount]bool {
	var flags [flagCount]bool
	flags[flagPaddleRight] = bounceRight
	for i, fc := range flagCollision {
		if fc != CollisionNone && fc == c {
			flags[i] = true
		}
	}
	return flags
}

// CollisionFromFlags folds the eight save-file flags back into a collision.
// The paddle direction flag is carried separately.
func CollisionFromFlags(flags [flagCount]bool) (Collision, bool, error) {
	c := CollisionNone
	for i, set := range flags {
		if !set || i == flagPaddleRight {
			continue
		}
		if c != CollisionNone {
			return CollisionNone, false, ErrConflictingFlags
		}
		c = flagCollision[i]
	}
	return c, flags[flagPaddleRight], nil
}

package systems

import "github.com/pthm-cable/flocking/geom"

// Integrate rotates heading toward desired by at most maxTurn, then moves
// one tick at speed and wraps onto the torus.
func Integrate(heading, desired, maxTurn, speed float64, pos geom.Vec2, b geom.Bounds) (float64, geom.Vec2) {
	delta := geom.SignedAngleDiff(heading, desired)
	applied := geom.Clamp(delta, -maxTurn, maxTurn)
	newHeading := geom.NormalizeAngle(heading + applied)

	vel := geom.Direction(newHeading).Scale(speed)
	return newHeading, b.Wrap(pos.Add(vel))
}

// Command is a discrete manual steering input for the controlled prey.
type Command uint8

const (
	CommandNone Command = iota
	CommandTurnLeft
	CommandTurnRight
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CommandTurnLeft:
		return "left"
	case CommandTurnRight:
		return "right"
	default:
		return "none"
	}
}

// ManualHeading converts a command into a desired heading. Screen y points
// down, so turning left decreases the angle. The result still goes through
// Integrate and its turn limit.
func ManualHeading(heading float64, cmd Command, increment float64) float64 {
	switch cmd {
	case CommandTurnLeft:
		return geom.NormalizeAngle(heading - increment)
	case CommandTurnRight:
		return geom.NormalizeAngle(heading + increment)
	default:
		return heading
	}
}

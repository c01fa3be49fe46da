package movement

import "math"

// Defaults match the merchant scene layout.
const (
	DefaultMinY                = -2.94
	DefaultMaxY                = -0.95
	DefaultSpeed               = 3.0
	DefaultInteractionDistance = 1.5
)

// Vec2 is a position in world units.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between two points.
func (v Vec2) Distance(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Facing is the sprite direction the player shows.
type Facing int

const (
	FacingDown Facing = iota
	FacingUp
)

func (f Facing) String() string {
	if f == FacingUp {
		return "up"
	}
	return "down"
}

// Lane restricts vertical movement to a band.
type Lane struct {
	MinY  float64
	MaxY  float64
	Speed float64 // units per second
}

func DefaultLane() Lane {
	return Lane{MinY: DefaultMinY, MaxY: DefaultMaxY, Speed: DefaultSpeed}
}

// Clamp pulls y into the lane.
func (l Lane) Clamp(y float64) float64 {
	return math.Min(math.Max(y, l.MinY), l.MaxY)
}

// Player is the walking character.
type Player struct {
	Pos    Vec2
	Facing Facing
}

// Step moves the player along the lane for dt seconds. dir > 0 walks up,
// dir < 0 walks down. A blocked player does not move or turn.
func (l Lane) Step(p *Player, dir int, dt float64, blocked bool) {
	if blocked || dir == 0 {
		return
	}
	if dir > 0 {
		p.Facing = FacingUp
		dir = 1
	} else {
		p.Facing = FacingDown
		dir = -1
	}
	p.Pos.Y = l.Clamp(p.Pos.Y + float64(dir)*l.Speed*dt)
}

// InRange reports whether two points are strictly closer than dist.
func InRange(a, b Vec2, dist float64) bool {
	return a.Distance(b) < dist
}

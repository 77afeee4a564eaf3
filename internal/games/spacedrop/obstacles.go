package spacedrop

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/space-drop/internal/config"
	"github.com/vovakirdan/space-drop/internal/core"
)

// emptyFieldX stands in for the rightmost obstacle when the field is empty.
const emptyFieldX = -1000

// ObstacleKind is a cosmetic tag. It never affects collision or scoring.
type ObstacleKind int

const (
	KindAsteroidField ObstacleKind = iota
	KindSpaceStation
	KindSatellite
	kindCount
)

func (k ObstacleKind) String() string {
	switch k {
	case KindAsteroidField:
		return "asteroid_field"
	case KindSpaceStation:
		return "space_station"
	case KindSatellite:
		return "satellite"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k ObstacleKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Obstacle is one half of a pair. Pos is the top-left corner.
// Both members of a pair share PairID, Pos.X and GapHeight.
type Obstacle struct {
	PairID    int          `json:"pair_id"`
	Pos       core.Vec2    `json:"pos"`
	Width     float64      `json:"width"`
	Height    float64      `json:"height"`
	IsTop     bool         `json:"is_top"`
	Passed    bool         `json:"passed"`
	Kind      ObstacleKind `json:"kind"`
	GapHeight float64      `json:"gap_height"`
}

// Box returns the full collision rectangle of the obstacle.
func (o Obstacle) Box() core.Box {
	return core.Box{X: o.Pos.X, Y: o.Pos.Y, W: o.Width, H: o.Height}
}

// GapEdges returns the y coordinates of the top and bottom edges of the
// corridor this obstacle belongs to.
func (o Obstacle) GapEdges() (top, bottom float64) {
	if o.IsTop {
		return o.Pos.Y + o.Height, o.Pos.Y + o.Height + o.GapHeight
	}
	return o.Pos.Y - o.GapHeight, o.Pos.Y
}

// GapFunc returns the corridor height for the next pair to spawn.
// It is called once per spawned pair.
type GapFunc func() float64

// Field owns the live obstacles and the RNG that places them.
type Field struct {
	obstacles []Obstacle
	rng       *rand.Rand
	nextPair  int
	world     config.WorldConfig
	cfg       config.ObstacleConfig
}

// NewField creates an empty field with a seeded RNG.
func NewField(world config.WorldConfig, cfg config.ObstacleConfig, seed int64) *Field {
	return &Field{
		obstacles: make([]Obstacle, 0, 16),
		rng:       rand.New(rand.NewSource(seed)),
		world:     world,
		cfg:       cfg,
	}
}

// Reset removes every obstacle. The RNG stream continues, so successive
// runs on the same field see different layouts.
func (f *Field) Reset() {
	f.obstacles = f.obstacles[:0]
	f.nextPair = 0
}

// Obstacles returns the live obstacles. The slice is owned by the field.
func (f *Field) Obstacles() []Obstacle {
	return f.obstacles
}

// Len returns the number of live obstacles.
func (f *Field) Len() int {
	return len(f.obstacles)
}

// Advance scrolls every obstacle left by speed and drops the ones that
// left the screen completely.
func (f *Field) Advance(speed float64) {
	live := f.obstacles[:0]
	for _, o := range f.obstacles {
		o.Pos.X -= speed
		if o.Pos.X < -o.Width {
			continue
		}
		live = append(live, o)
	}
	f.obstacles = live
}

// rightmost returns the largest obstacle x, or emptyFieldX.
func (f *Field) rightmost() float64 {
	x := float64(emptyFieldX)
	for _, o := range f.obstacles {
		x = math.Max(x, o.Pos.X)
	}
	return x
}

// SpawnIfNeeded adds pairs until the queue ahead of the screen is at least
// two spawn distances deep. It returns the number of pairs added.
// Looping instead of spawning one pair per tick keeps the stream continuous
// even when a single tick scrolls the world by more than one spacing.
func (f *Field) SpawnIfNeeded(gap GapFunc) int {
	spawned := 0
	rightmost := f.rightmost()
	limit := f.world.Width + 2*f.cfg.MinSpawnDistance

	for rightmost < limit {
		x := math.Max(f.world.Width, rightmost+f.cfg.MinSpawnDistance)
		f.spawnPair(x, gap())
		rightmost = x
		spawned++
	}
	return spawned
}

// spawnPair places a pair at x with a gap of the given height.
func (f *Field) spawnPair(x, gap float64) {
	h := f.world.Height
	lo := f.cfg.EdgeMargin
	hi := h - gap - f.cfg.EdgeMargin
	if hi < lo {
		hi = lo
	}
	gapTop := lo + f.rng.Float64()*(hi-lo)
	kind := ObstacleKind(f.rng.Intn(int(kindCount)))

	id := f.nextPair
	f.nextPair++

	f.obstacles = append(f.obstacles,
		Obstacle{
			PairID:    id,
			Pos:       core.Vec2{X: x, Y: 0},
			Width:     f.cfg.Width,
			Height:    gapTop,
			IsTop:     true,
			Kind:      kind,
			GapHeight: gap,
		},
		Obstacle{
			PairID:    id,
			Pos:       core.Vec2{X: x, Y: gapTop + gap},
			Width:     f.cfg.Width,
			Height:    h - gapTop - gap,
			Kind:      kind,
			GapHeight: gap,
		},
	)
}

// MarkPassed flags every pair whose right edge is behind craftX and
// returns the bottom members that were newly passed. A pair is reported once.
func (f *Field) MarkPassed(craftX float64) []Obstacle {
	var passed []Obstacle
	for i := range f.obstacles {
		o := &f.obstacles[i]
		if o.Passed || o.Pos.X+o.Width >= craftX {
			continue
		}
		o.Passed = true
		if !o.IsTop {
			passed = append(passed, *o)
		}
	}
	return passed
}

package spacedrop

import (
	"testing"

	"github.com/vovakirdan/space-drop/internal/config"
	"github.com/vovakirdan/space-drop/internal/core"
)

func fieldWith(cfg config.SpaceDropConfig, obstacles ...Obstacle) *Field {
	f := NewField(cfg.World, cfg.Obstacles, 1)
	f.obstacles = append(f.obstacles, obstacles...)
	return f
}

func TestCheckHitboxTouching(t *testing.T) {
	cfg := config.DefaultSpaceDropConfig()
	craft := Craft{Pos: core.Vec2{X: 400, Y: 300}}
	// Hitbox half extent is 30/2 - 5 = 10, so the right edge is x=410.

	tests := []struct {
		name    string
		x       float64
		wantHit bool
	}{
		{"overlapping by 1", 409, true},
		{"touching", 410, false},
		{"clear", 420, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := fieldWith(cfg, Obstacle{PairID: 7, Pos: core.Vec2{X: tc.x, Y: 0}, Width: 60, Height: 600, IsTop: true})
			res := Check(cfg, craft, f)
			if res.Hit != tc.wantHit {
				t.Fatalf("Check() hit = %v, expected %v", res.Hit, tc.wantHit)
			}
			if tc.wantHit && (res.Cause != HitObstacle || res.PairID != 7) {
				t.Errorf("Check() = %+v, expected obstacle hit on pair 7", res)
			}
		})
	}
}

func TestCheckHitboxVerticalTouching(t *testing.T) {
	cfg := config.DefaultSpaceDropConfig()
	craft := Craft{Pos: core.Vec2{X: 400, Y: 300}}
	// Hitbox spans y in [290, 310].

	touching := fieldWith(cfg, Obstacle{Pos: core.Vec2{X: 380, Y: 310}, Width: 60, Height: 290, GapHeight: 200})
	if res := Check(cfg, craft, touching); res.Hit {
		t.Error("bottom obstacle touching the hitbox should not hit")
	}

	overlap := fieldWith(cfg, Obstacle{Pos: core.Vec2{X: 380, Y: 309}, Width: 60, Height: 291, GapHeight: 200})
	if res := Check(cfg, craft, overlap); !res.Hit {
		t.Error("bottom obstacle overlapping by 1 should hit")
	}
}

func TestCheckForgivingHitbox(t *testing.T) {
	cfg := config.DefaultSpaceDropConfig()
	craft := Craft{Pos: core.Vec2{X: 400, Y: 300}}
	// The visual square reaches x=415 but the hitbox stops at 410.
	f := fieldWith(cfg, Obstacle{Pos: core.Vec2{X: 412, Y: 0}, Width: 60, Height: 600, IsTop: true})

	if res := Check(cfg, craft, f); res.Hit {
		t.Error("obstacle inside the visual margin should not hit")
	}
}

func TestCheckBoundary(t *testing.T) {
	cfg := config.DefaultSpaceDropConfig()
	h, m := cfg.World.Height, cfg.Collision.BoundaryMargin

	tests := []struct {
		y       float64
		wantHit bool
	}{
		{h + m + 1, true},
		{h + m, false},
		{h, false},
		{-m, false},
		{-m - 1, true},
	}

	for _, tc := range tests {
		craft := Craft{Pos: core.Vec2{X: 400, Y: tc.y}}
		res := Check(cfg, craft, fieldWith(cfg))
		if res.Hit != tc.wantHit {
			t.Errorf("y=%v: hit = %v, expected %v", tc.y, res.Hit, tc.wantHit)
		}
		if res.Hit && res.Cause != HitBoundary {
			t.Errorf("y=%v: cause = %v, expected boundary", tc.y, res.Cause)
		}
	}
}

func TestCheckPassIdempotent(t *testing.T) {
	cfg := config.DefaultSpaceDropConfig()
	craft := Craft{Pos: core.Vec2{X: 400, Y: 300}}
	f := fieldWith(cfg,
		Obstacle{PairID: 3, Pos: core.Vec2{X: 300, Y: 0}, Width: 60, Height: 200, IsTop: true, GapHeight: 200},
		Obstacle{PairID: 3, Pos: core.Vec2{X: 300, Y: 400}, Width: 60, Height: 200, GapHeight: 200},
	)

	first := Check(cfg, craft, f)
	if len(first.Passed) != 1 || first.Passed[0].PairID != 3 || first.Passed[0].IsTop {
		t.Fatalf("first Check should report the bottom member once, got %+v", first.Passed)
	}

	second := Check(cfg, craft, f)
	if len(second.Passed) != 0 {
		t.Errorf("pair reported again: %+v", second.Passed)
	}
	for _, o := range f.Obstacles() {
		if !o.Passed {
			t.Errorf("obstacle %+v should be marked passed", o)
		}
	}
}

func TestCheckNotPassedWhileAlongside(t *testing.T) {
	cfg := config.DefaultSpaceDropConfig()
	craft := Craft{Pos: core.Vec2{X: 400, Y: 300}}
	// Right edge exactly at the craft center is not yet a pass.
	f := fieldWith(cfg, Obstacle{Pos: core.Vec2{X: 340, Y: 400}, Width: 60, Height: 200, GapHeight: 200})

	if res := Check(cfg, craft, f); len(res.Passed) != 0 {
		t.Errorf("pair level with the craft should not count, got %+v", res.Passed)
	}
}

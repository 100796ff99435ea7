package spatial

import (
	"testing"

	"gridwright/internal/domain/world"
)

func plainsState(t *testing.T, size int) *world.State {
	t.Helper()
	s, err := world.NewState(world.Config{MapSize: size})
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	return s
}

func setTerrain(t *testing.T, s *world.State, p world.Point, k world.TerrainKind) {
	t.Helper()
	if err := s.SetCell(p, world.Cell{Terrain: k}); err != nil {
		t.Fatalf("SetCell(%s): %v", p, err)
	}
}

func TestFindNearbyLocation_FirstInScanOrderWinsTies(t *testing.T) {
	s := plainsState(t, 5)
	origin := world.Point{X: 2, Y: 2}
	_, _ = s.MarkOccupied(origin)

	for i := 0; i < 3; i++ {
		got, ok := FindNearbyLocation(s, origin, Query{MaxDistance: 1})
		if !ok {
			t.Fatalf("expected a location")
		}
		if want := (world.Point{X: -1, Y: 0}); got != want {
			t.Fatalf("offset=%v want %v", got, want)
		}
	}
}

func TestFindNearbyLocation_PrefersOriginWhenFree(t *testing.T) {
	s := plainsState(t, 5)
	got, ok := FindNearbyLocation(s, world.Point{X: 2, Y: 2}, Query{MaxDistance: 2})
	if !ok || got != (world.Point{}) {
		t.Fatalf("offset=%v ok=%v want (0,0)", got, ok)
	}
}

func TestFindNearbyLocation_SkipsOccupiedUnknownAndFilteredTerrain(t *testing.T) {
	s, err := world.NewState(world.Config{MapSize: 5, Grid: [][]*world.Cell{}})
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	origin := world.Point{X: 2, Y: 2}
	setTerrain(t, s, world.Point{X: 1, Y: 2}, world.TerrainRiver)
	setTerrain(t, s, world.Point{X: 2, Y: 1}, world.TerrainPlains)
	_, _ = s.MarkOccupied(world.Point{X: 2, Y: 1})
	setTerrain(t, s, world.Point{X: 3, Y: 2}, world.TerrainPlains)
	setTerrain(t, s, world.Point{X: 2, Y: 4}, world.TerrainPlains)

	got, ok := FindNearbyLocation(s, origin, Query{MaxDistance: 2, Terrain: []world.TerrainKind{world.TerrainPlains}})
	if !ok {
		t.Fatalf("expected a location")
	}
	if want := (world.Point{X: 1, Y: 0}); got != want {
		t.Fatalf("offset=%v want %v", got, want)
	}
}

func TestFindNearbyLocation_StaysInsideManhattanBallAndBounds(t *testing.T) {
	s, err := world.NewState(world.Config{MapSize: 5, Grid: [][]*world.Cell{}})
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	// (1,1) is a diagonal step of length 2 from the corner; radius 1 must not reach it.
	setTerrain(t, s, world.Point{X: 1, Y: 1}, world.TerrainPlains)
	if got, ok := FindNearbyLocation(s, world.Point{X: 0, Y: 0}, Query{MaxDistance: 1}); ok {
		t.Fatalf("expected none, got %v", got)
	}
	got, ok := FindNearbyLocation(s, world.Point{X: 0, Y: 0}, Query{MaxDistance: 2})
	if !ok || got != (world.Point{X: 1, Y: 1}) {
		t.Fatalf("offset=%v ok=%v want (1,1)", got, ok)
	}
}

func TestFindNearbyLocation_TargetRanking(t *testing.T) {
	s := plainsState(t, 5)
	origin := world.Point{X: 2, Y: 2}
	_, _ = s.MarkOccupied(origin)

	target := world.Point{X: 4, Y: 2}
	got, ok := FindNearbyLocation(s, origin, Query{MaxDistance: 1, Target: &target})
	if !ok || got != (world.Point{X: 1, Y: 0}) {
		t.Fatalf("offset=%v ok=%v want (1,0)", got, ok)
	}

	// (1,2) and (2,1) are both 3 away from (0,0); (1,2) comes first in scan order.
	corner := world.Point{}
	got, ok = FindNearbyLocation(s, origin, Query{MaxDistance: 1, Target: &corner})
	if !ok || got != (world.Point{X: -1, Y: 0}) {
		t.Fatalf("offset=%v ok=%v want (-1,0)", got, ok)
	}
}

func TestFindNearbyLocation_NoneWhenEverythingBlocked(t *testing.T) {
	s := plainsState(t, 2)
	for _, p := range []world.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}} {
		_, _ = s.MarkOccupied(p)
	}
	if got, ok := FindNearbyLocation(s, world.Point{}, Query{MaxDistance: 3}); ok {
		t.Fatalf("expected none, got %v", got)
	}
}

func TestFindClosestFeature_RowMajorTieBreak(t *testing.T) {
	s := plainsState(t, 5)
	origin := world.Point{X: 2, Y: 2}
	setTerrain(t, s, world.Point{X: 0, Y: 2}, world.TerrainRiver)
	setTerrain(t, s, world.Point{X: 2, Y: 0}, world.TerrainRiver)

	got, ok := FindClosestRiver(s, origin)
	if !ok || got != (world.Point{X: 2, Y: 0}) {
		t.Fatalf("river=%v ok=%v want (2,0)", got, ok)
	}

	setTerrain(t, s, world.Point{X: 3, Y: 2}, world.TerrainRiver)
	got, ok = FindClosestRiver(s, origin)
	if !ok || got != (world.Point{X: 3, Y: 2}) {
		t.Fatalf("river=%v ok=%v want (3,2)", got, ok)
	}
}

func TestFindClosestFeature_Absent(t *testing.T) {
	s := plainsState(t, 5)
	if got, ok := FindClosestRiver(s, world.Point{X: 1, Y: 1}); ok {
		t.Fatalf("expected no river, got %v", got)
	}
	if _, ok := FindClosestFeature(s, world.Point{}, world.TerrainLake); ok {
		t.Fatalf("expected no lake")
	}
}

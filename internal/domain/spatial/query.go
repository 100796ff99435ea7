// Package spatial answers "where near here" questions against a world.State.
// Every search is a brute-force scan in a fixed order; the order decides ties
// and callers rely on it, so any faster index must keep it.
package spatial

import "gridwright/internal/domain/world"

type Query struct {
	MaxDistance int
	// Terrain restricts candidates to these kinds. Empty means any known terrain.
	Terrain []world.TerrainKind
	// Target switches the ranking from "closest to origin" to "closest to
	// Target".
	Target *world.Point
}

func (q Query) accepts(k world.TerrainKind) bool {
	if len(q.Terrain) == 0 {
		return true
	}
	for _, t := range q.Terrain {
		if t == k {
			return true
		}
	}
	return false
}

// FindNearbyLocation scans the Manhattan ball of radius q.MaxDistance around
// origin, dx ascending then dy ascending, and returns the offset of the best
// free tile with known, accepted terrain. The first candidate wins ties.
func FindNearbyLocation(s *world.State, origin world.Point, q Query) (world.Point, bool) {
	var best world.Point
	bestDist := 0
	found := false
	for dx := -q.MaxDistance; dx <= q.MaxDistance; dx++ {
		for dy := -q.MaxDistance; dy <= q.MaxDistance; dy++ {
			step := abs(dx) + abs(dy)
			if step > q.MaxDistance {
				continue
			}
			p := world.Point{X: origin.X + dx, Y: origin.Y + dy}
			if !s.InBounds(p) {
				continue
			}
			terrain := s.Terrain(p)
			if !terrain.Known() || !q.accepts(terrain) {
				continue
			}
			if s.IsOccupied(p) {
				continue
			}
			dist := step
			if q.Target != nil {
				dist = world.Manhattan(p, *q.Target)
			}
			if !found || dist < bestDist {
				best = world.Point{X: dx, Y: dy}
				bestDist = dist
				found = true
			}
		}
	}
	return best, found
}

// FindClosestFeature scans the whole map row by row and returns the absolute
// location of the nearest cell of the given terrain.
func FindClosestFeature(s *world.State, origin world.Point, feature world.TerrainKind) (world.Point, bool) {
	var best world.Point
	bestDist := 0
	found := false
	size := s.MapSize()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			p := world.Point{X: x, Y: y}
			if s.Terrain(p) != feature {
				continue
			}
			dist := world.Manhattan(origin, p)
			if !found || dist < bestDist {
				best = p
				bestDist = dist
				found = true
			}
		}
	}
	return best, found
}

func FindClosestRiver(s *world.State, origin world.Point) (world.Point, bool) {
	return FindClosestFeature(s, origin, world.TerrainRiver)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

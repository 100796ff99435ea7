package policy

import (
	"gridwright/internal/domain/spatial"
	"gridwright/internal/domain/world"
)

// engineer explores once, then deploys whatever the factory has in stock, then
// walks toward water.
type engineer struct {
	tuning world.Tuning
	log    Logger
}

func (b engineer) Decide(s *world.State, a *world.Agent) Action {
	if !a.HasExplored {
		if !s.CanAfford(b.tuning.ExploreCost) {
			b.log.Debugf("engineer %d cannot afford to explore (balance=%d)", a.ID, s.Balance())
			return None()
		}
		a.HasExplored = true
		b.log.Debugf("engineer %d explores", a.ID)
		return explore()
	}

	factory, ok := s.FirstAgent(world.AgentFactory)
	if !ok {
		b.log.Warnf("engineer %d: no factory in world state, idling", a.ID)
		return None()
	}

	if act, ok := b.deploy(s, a, factory); ok {
		return act
	}
	if act, ok := b.moveToWater(s, a); ok {
		return act
	}
	b.log.Debugf("engineer %d has nothing to do (balance=%d)", a.ID, s.Balance())
	return None()
}

func (b engineer) deploy(s *world.State, a, factory *world.Agent) (Action, bool) {
	for _, kind := range b.tuning.DeployPriority {
		if factory.Warehouse.Count(kind) < 1 {
			continue
		}
		offset, ok := spatial.FindNearbyLocation(s, a.Location, spatial.Query{
			MaxDistance: b.tuning.DeployRadius,
			Terrain:     b.tuning.BuildTerrain,
		})
		if !ok {
			continue
		}
		dest := a.Location.Add(offset)
		if err := s.Reserve(dest, world.Occupant{AgentID: a.ID, Kind: string(kind), Team: a.Team}); err != nil {
			b.log.Warnf("engineer %d: reserve %s for %s: %v", a.ID, dest, kind, err)
			continue
		}
		if err := factory.AddStock(kind, -1); err != nil {
			s.Release(dest)
			b.log.Warnf("engineer %d: take %s from factory %d: %v", a.ID, kind, factory.ID, err)
			continue
		}
		b.log.Debugf("engineer %d deploys %s at %s", a.ID, kind, dest)
		return deploy(kind, offset), true
	}
	return Action{}, false
}

func (b engineer) moveToWater(s *world.State, a *world.Agent) (Action, bool) {
	water, ok := spatial.FindClosestFeature(s, a.Location, b.tuning.WaterFeature)
	if !ok {
		b.log.Debugf("engineer %d: no %s on the known map", a.ID, b.tuning.WaterFeature)
		return Action{}, false
	}
	offset, ok := spatial.FindNearbyLocation(s, a.Location, spatial.Query{
		MaxDistance: b.tuning.MoveRadius,
		Target:      &water,
	})
	if !ok {
		return Action{}, false
	}
	b.log.Debugf("engineer %d moves %s toward %s at %s", a.ID, offset, b.tuning.WaterFeature, water)
	return move(offset), true
}

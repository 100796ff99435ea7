package policy

import (
	"gridwright/internal/domain/spatial"
	"gridwright/internal/domain/world"
)

// factory works down a fixed ladder: first engineer, plant stock, more
// engineers. Every spend keeps enough balance for each engineer, plus the next
// one, to deploy a plant.
type factory struct {
	tuning world.Tuning
	log    Logger
}

func (b factory) Decide(s *world.State, a *world.Agent) Action {
	engineers := s.CountAgents(world.AgentEngineer)
	reserve := (engineers + 1) * b.tuning.DeployCost

	if engineers == 0 && s.CanAfford(b.tuning.EngineerCost) {
		if act, ok := b.buildEngineer(s, a); ok {
			return act
		}
	}

	for _, offer := range b.tuning.PlantOffers {
		if a.Warehouse.Count(offer.Kind) >= b.tuning.WarehouseCap {
			continue
		}
		if s.Balance()-offer.Cost < reserve {
			continue
		}
		if err := a.AddStock(offer.Kind, 1); err != nil {
			b.log.Warnf("factory %d: stock %s: %v", a.ID, offer.Kind, err)
			continue
		}
		if err := s.Debit(offer.Cost); err != nil {
			_ = a.AddStock(offer.Kind, -1)
			b.log.Warnf("factory %d: pay for %s: %v", a.ID, offer.Kind, err)
			continue
		}
		b.log.Debugf("factory %d assembles %s (cost=%d, balance=%d)", a.ID, offer.Kind, offer.Cost, s.Balance())
		return assemble(offer.Kind)
	}

	if s.CanAfford(b.tuning.EngineerCost + reserve) {
		if act, ok := b.buildEngineer(s, a); ok {
			return act
		}
	}

	b.log.Debugf("factory %d has nothing to do (balance=%d)", a.ID, s.Balance())
	return None()
}

func (b factory) buildEngineer(s *world.State, a *world.Agent) (Action, bool) {
	offset, ok := spatial.FindNearbyLocation(s, a.Location, spatial.Query{
		MaxDistance: b.tuning.BuildRadius,
		Terrain:     b.tuning.BuildTerrain,
	})
	if !ok {
		b.log.Debugf("factory %d: no free tile within %d to build on", a.ID, b.tuning.BuildRadius)
		return Action{}, false
	}
	dest := a.Location.Add(offset)
	if err := s.Reserve(dest, world.Occupant{AgentID: a.ID, Kind: string(world.AgentEngineer), Team: a.Team}); err != nil {
		b.log.Warnf("factory %d: reserve %s: %v", a.ID, dest, err)
		return Action{}, false
	}
	if err := s.Debit(b.tuning.EngineerCost); err != nil {
		s.Release(dest)
		b.log.Warnf("factory %d: pay for engineer: %v", a.ID, err)
		return Action{}, false
	}
	b.log.Debugf("factory %d builds an engineer at %s (balance=%d)", a.ID, dest, s.Balance())
	return buildBot(offset), true
}

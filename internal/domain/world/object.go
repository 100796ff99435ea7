package world

import (
	"errors"
	"fmt"
)

type AgentKind string

const (
	AgentEngineer AgentKind = "ENGINEER_BOT"
	AgentFactory  AgentKind = "FACTORY"
	AgentUnknown  AgentKind = "UNKNOWN"
)

func ParseAgentKind(tag string) AgentKind {
	switch k := AgentKind(tag); k {
	case AgentEngineer, AgentFactory:
		return k
	default:
		return AgentUnknown
	}
}

type PowerPlantKind string

const (
	PlantSolarPanels PowerPlantKind = "SOLAR_PANELS"
	PlantWindmill    PowerPlantKind = "WINDMILL"
	PlantGeothermal  PowerPlantKind = "GEOTHERMAL"
	PlantDam         PowerPlantKind = "DAM"
)

func ParsePowerPlant(tag string) (PowerPlantKind, bool) {
	switch k := PowerPlantKind(tag); k {
	case PlantSolarPanels, PlantWindmill, PlantGeothermal, PlantDam:
		return k, true
	default:
		return "", false
	}
}

var ErrNegativeStock = errors.New("warehouse stock cannot go negative")

// Warehouse is a factory's on-hand count of assembled power plants.
type Warehouse map[PowerPlantKind]int

func (w Warehouse) Count(kind PowerPlantKind) int {
	return w[kind]
}

func (w Warehouse) Clone() Warehouse {
	if w == nil {
		return nil
	}
	out := make(Warehouse, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

type Agent struct {
	ID       int
	Kind     AgentKind
	RawType  string
	Location Point
	Team     string
	// Warehouse is nil for everything but factories.
	Warehouse   Warehouse
	HasExplored bool
}

func (a *Agent) AddStock(kind PowerPlantKind, delta int) error {
	next := a.Warehouse.Count(kind) + delta
	if next < 0 {
		return fmt.Errorf("%w: agent %d %s", ErrNegativeStock, a.ID, kind)
	}
	if a.Warehouse == nil {
		a.Warehouse = Warehouse{}
	}
	a.Warehouse[kind] = next
	return nil
}

func (a Agent) Occupant() Occupant {
	return Occupant{AgentID: a.ID, Kind: a.RawType, Team: a.Team}
}

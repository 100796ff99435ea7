package world

import (
	"errors"
	"fmt"
)

type PlantOffer struct {
	Kind PowerPlantKind `yaml:"kind"`
	Cost int            `yaml:"cost"`
}

// Tuning holds every cost, radius and ordering the decision policies read.
type Tuning struct {
	ExploreCost  int `yaml:"explore_cost"`
	DeployCost   int `yaml:"deploy_cost"`
	EngineerCost int `yaml:"engineer_cost"`
	WarehouseCap int `yaml:"warehouse_cap"`

	DeployRadius int `yaml:"deploy_radius"`
	MoveRadius   int `yaml:"move_radius"`
	BuildRadius  int `yaml:"build_radius"`

	BuildTerrain   []TerrainKind    `yaml:"build_terrain"`
	WaterFeature   TerrainKind      `yaml:"water_feature"`
	PlantOffers    []PlantOffer     `yaml:"plant_offers"`
	DeployPriority []PowerPlantKind `yaml:"deploy_priority"`
}

func DefaultTuning() Tuning {
	return Tuning{
		ExploreCost:  10,
		DeployCost:   10,
		EngineerCost: 100,
		WarehouseCap: 3,
		DeployRadius: 2,
		MoveRadius:   2,
		BuildRadius:  5,
		BuildTerrain: []TerrainKind{TerrainPlains},
		WaterFeature: TerrainRiver,
		PlantOffers: []PlantOffer{
			{Kind: PlantWindmill, Cost: 100},
			{Kind: PlantSolarPanels, Cost: 500},
			{Kind: PlantGeothermal, Cost: 500},
			{Kind: PlantDam, Cost: 1000},
		},
		DeployPriority: []PowerPlantKind{PlantSolarPanels, PlantWindmill, PlantGeothermal, PlantDam},
	}
}

var ErrInvalidTuning = errors.New("invalid tuning")

func (t Tuning) Validate() error {
	if t.ExploreCost < 0 || t.DeployCost < 0 || t.EngineerCost < 0 {
		return fmt.Errorf("%w: costs must be non-negative", ErrInvalidTuning)
	}
	if t.WarehouseCap <= 0 {
		return fmt.Errorf("%w: warehouse_cap must be positive", ErrInvalidTuning)
	}
	if t.DeployRadius < 0 || t.MoveRadius < 0 || t.BuildRadius < 0 {
		return fmt.Errorf("%w: radii must be non-negative", ErrInvalidTuning)
	}
	for _, k := range t.BuildTerrain {
		if !k.Known() {
			return fmt.Errorf("%w: build_terrain %q", ErrInvalidTuning, k)
		}
	}
	if !t.WaterFeature.Known() {
		return fmt.Errorf("%w: water_feature %q", ErrInvalidTuning, t.WaterFeature)
	}
	for _, o := range t.PlantOffers {
		if _, ok := ParsePowerPlant(string(o.Kind)); !ok || o.Cost < 0 {
			return fmt.Errorf("%w: plant offer %q", ErrInvalidTuning, o.Kind)
		}
	}
	for _, k := range t.DeployPriority {
		if _, ok := ParsePowerPlant(string(k)); !ok {
			return fmt.Errorf("%w: deploy_priority %q", ErrInvalidTuning, k)
		}
	}
	return nil
}

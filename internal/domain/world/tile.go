package world

type TerrainKind string

const (
	TerrainNone     TerrainKind = ""
	TerrainPlains   TerrainKind = "PLAINS"
	TerrainRiver    TerrainKind = "RIVER"
	TerrainLake     TerrainKind = "LAKE"
	TerrainForest   TerrainKind = "FOREST"
	TerrainMountain TerrainKind = "MOUNTAIN"
	TerrainDesert   TerrainKind = "DESERT"
	TerrainUnknown  TerrainKind = "UNKNOWN"
)

// ParseTerrain maps a platform terrain tag onto the known set. Tags this build
// does not recognise become TerrainUnknown, which never satisfies a filter.
func ParseTerrain(tag string) TerrainKind {
	switch k := TerrainKind(tag); k {
	case TerrainNone, TerrainPlains, TerrainRiver, TerrainLake, TerrainForest, TerrainMountain, TerrainDesert:
		return k
	default:
		return TerrainUnknown
	}
}

func (k TerrainKind) Known() bool {
	return k != TerrainNone && k != TerrainUnknown
}

// Occupant is whatever blocks a tile: a live agent or something an agent put
// there (a deployed plant, an engineer still being built).
type Occupant struct {
	AgentID int    `json:"id"`
	Kind    string `json:"type"`
	Team    string `json:"team,omitempty"`
}

type Cell struct {
	Terrain  TerrainKind `json:"type,omitempty"`
	Occupant *Occupant   `json:"agent,omitempty"`
}

func (c Cell) clone() Cell {
	if c.Occupant != nil {
		occ := *c.Occupant
		c.Occupant = &occ
	}
	return c
}

func (c Cell) Equal(o Cell) bool {
	if c.Terrain != o.Terrain {
		return false
	}
	if c.Occupant == nil || o.Occupant == nil {
		return c.Occupant == nil && o.Occupant == nil
	}
	return *c.Occupant == *o.Occupant
}

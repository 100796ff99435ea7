package world

// CellPayload is one map cell as the game host sends it, either in the
// session map or in an agent's view.
type CellPayload struct {
	Type     *string          `json:"type,omitempty"`
	Location []int            `json:"location,omitempty"`
	Agent    *OccupantPayload `json:"agent,omitempty"`
}

type OccupantPayload struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
	Team string `json:"team,omitempty"`
}

func (c CellPayload) Cell() Cell {
	out := Cell{}
	if c.Type != nil {
		out.Terrain = ParseTerrain(*c.Type)
	}
	if c.Agent != nil {
		out.Occupant = &Occupant{AgentID: c.Agent.ID, Kind: c.Agent.Type, Team: c.Agent.Team}
	}
	return out
}

// Point reports the cell's declared location; ok is false when the payload
// does not carry a usable [x, y] pair.
func (c CellPayload) Point() (Point, bool) {
	if len(c.Location) != 2 {
		return Point{}, false
	}
	return Point{X: c.Location[0], Y: c.Location[1]}, true
}

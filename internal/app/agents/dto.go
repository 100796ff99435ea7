package agents

import "gridwright/internal/domain/world"

type UpsertRequest struct {
	ID        int            `json:"-"`
	Type      string         `json:"type"`
	Location  world.Point    `json:"location"`
	Team      string         `json:"team,omitempty"`
	Warehouse map[string]int `json:"warehouse,omitempty"`
}

type PatchRequest struct {
	ID        int            `json:"-"`
	Location  *world.Point   `json:"location,omitempty"`
	Warehouse map[string]int `json:"warehouse,omitempty"`
}

type RemoveRequest struct {
	ID int `json:"-"`
}

type AgentResponse struct {
	ID          int             `json:"id"`
	Type        string          `json:"type"`
	Location    world.Point     `json:"location"`
	Team        string          `json:"team,omitempty"`
	Warehouse   world.Warehouse `json:"warehouse,omitempty"`
	HasExplored bool            `json:"has_explored"`
}

type ViewRequest struct {
	AgentID int                    `json:"-"`
	Map     [][]*world.CellPayload `json:"map"`
}

type ViewResponse struct {
	Updated       int `json:"updated"`
	Skipped       int `json:"skipped"`
	OccupiedAdded int `json:"occupied_added"`
}

func toResponse(a world.Agent) AgentResponse {
	return AgentResponse{
		ID:          a.ID,
		Type:        a.RawType,
		Location:    a.Location,
		Team:        a.Team,
		Warehouse:   a.Warehouse.Clone(),
		HasExplored: a.HasExplored,
	}
}

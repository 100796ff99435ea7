package session

import "gridwright/internal/domain/world"

type InitRequest struct {
	MapSize     *int                   `json:"map_size,omitempty"`
	InitBalance *int                   `json:"init_balance,omitempty"`
	Team        *string                `json:"team,omitempty"`
	Map         [][]*world.CellPayload `json:"map,omitempty"`
}

type InitResponse struct {
	SessionID    string `json:"session_id"`
	MapSize      int    `json:"map_size"`
	Balance      int    `json:"balance"`
	Team         string `json:"team"`
	MapGenerated bool   `json:"map_generated"`
}

type RoundRequest struct {
	Round   int `json:"round"`
	Balance int `json:"balance"`
}

type RoundResponse struct {
	Round   int `json:"round"`
	Balance int `json:"balance"`
}

type AgentView struct {
	ID          int             `json:"id"`
	Type        string          `json:"type"`
	Location    world.Point     `json:"location"`
	Team        string          `json:"team,omitempty"`
	Warehouse   world.Warehouse `json:"warehouse,omitempty"`
	HasExplored bool            `json:"has_explored"`
}

type SnapshotResponse struct {
	SessionID string        `json:"session_id"`
	MapSize   int           `json:"map_size"`
	Team      string        `json:"team"`
	Round     int           `json:"round"`
	Balance   int           `json:"balance"`
	Occupied  []world.Point `json:"occupied"`
	Agents    []AgentView   `json:"agents"`
}

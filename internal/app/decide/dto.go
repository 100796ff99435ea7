package decide

import (
	"gridwright/internal/domain/policy"
	"gridwright/internal/domain/world"
)

type Request struct {
	AgentID int
}

// Response is the action in the shape the game host expects:
// {"type": KIND, "params": {"power_type"?, "d_loc"?}}.
type Response struct {
	Type   string `json:"type"`
	Params Params `json:"params"`
}

type Params struct {
	PowerType string       `json:"power_type,omitempty"`
	DLoc      *world.Point `json:"d_loc,omitempty"`
}

func toResponse(act policy.Action) Response {
	resp := Response{Type: string(act.Kind)}
	if act.PowerType != "" {
		resp.Params.PowerType = string(act.PowerType)
	}
	if act.Offset != nil {
		off := *act.Offset
		resp.Params.DLoc = &off
	}
	return resp
}

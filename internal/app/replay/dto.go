package replay

import "gridwright/internal/app/ports"

type Request struct {
	AgentID int
	Limit   int
	// RoundFrom and RoundTo bound the window inclusively; zero means open.
	RoundFrom int
	RoundTo   int
}

type Response struct {
	AgentID   int                    `json:"agent_id"`
	Decisions []ports.DecisionRecord `json:"decisions"`
	Summary   Summary                `json:"summary"`
}

// Summary folds the returned decisions into per-action counts and the most
// recent outcome.
type Summary struct {
	Actions     map[string]int `json:"actions"`
	LastRound   int            `json:"last_round"`
	LastAction  string         `json:"last_action,omitempty"`
	LastBalance int            `json:"last_balance"`
}

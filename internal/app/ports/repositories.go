package ports

import (
	"context"
	"time"

	"gridwright/internal/domain/world"
)

// DecisionRecord is the audit trail entry for one committed decision.
type DecisionRecord struct {
	SessionID     string       `json:"session_id"`
	Round         int          `json:"round"`
	AgentID       int          `json:"agent_id"`
	AgentType     string       `json:"agent_type"`
	Action        string       `json:"action"`
	PowerType     string       `json:"power_type,omitempty"`
	Offset        *world.Point `json:"d_loc,omitempty"`
	BalanceBefore int          `json:"balance_before"`
	BalanceAfter  int          `json:"balance_after"`
	DecidedAt     time.Time    `json:"decided_at"`
}

type DecisionJournal interface {
	Append(ctx context.Context, rec DecisionRecord) error
}

type DecisionHistory interface {
	// ListByAgentID returns the agent's decisions newest first. limit <= 0
	// means no limit. An agent with no decisions yields an empty slice.
	ListByAgentID(ctx context.Context, agentID int, limit int) ([]DecisionRecord, error)
}

type DecisionPublisher interface {
	Publish(rec DecisionRecord)
}

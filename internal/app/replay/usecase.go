package replay

import (
	"context"
	"errors"

	"gridwright/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid replay request")

type UseCase struct {
	History ports.DecisionHistory
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if req.AgentID < 0 || req.Limit < 0 {
		return Response{}, ErrInvalidRequest
	}
	if req.RoundFrom > 0 && req.RoundTo > 0 && req.RoundFrom > req.RoundTo {
		return Response{}, ErrInvalidRequest
	}
	// The window is applied after the fetch, so the limit is only pushed down
	// when there is no window.
	limit := req.Limit
	if req.RoundFrom > 0 || req.RoundTo > 0 {
		limit = 0
	}
	records, err := u.History.ListByAgentID(ctx, req.AgentID, limit)
	if err != nil {
		return Response{}, err
	}
	records = filterByRoundWindow(records, req.RoundFrom, req.RoundTo)
	if req.Limit > 0 && len(records) > req.Limit {
		records = records[:req.Limit]
	}
	return Response{AgentID: req.AgentID, Decisions: records, Summary: summarize(records)}, nil
}

func filterByRoundWindow(records []ports.DecisionRecord, from, to int) []ports.DecisionRecord {
	if from <= 0 && to <= 0 {
		return records
	}
	out := make([]ports.DecisionRecord, 0, len(records))
	for _, rec := range records {
		if from > 0 && rec.Round < from {
			continue
		}
		if to > 0 && rec.Round > to {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// summarize expects records newest first.
func summarize(records []ports.DecisionRecord) Summary {
	s := Summary{Actions: make(map[string]int)}
	for _, rec := range records {
		s.Actions[rec.Action]++
	}
	if len(records) > 0 {
		latest := records[0]
		s.LastRound = latest.Round
		s.LastAction = latest.Action
		s.LastBalance = latest.BalanceAfter
	}
	return s
}

package decide

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gridwright/internal/app/ports"
	"gridwright/internal/domain/policy"
	"gridwright/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// UseCase answers "what does this agent do now". The decision and its state
// changes run under the store's write lock; the audit sinks run after it is
// released and can never fail the request.
type UseCase struct {
	Store     ports.WorldStore
	Engine    policy.Engine
	Journal   ports.DecisionJournal
	Metrics   ports.DecisionMetrics
	Publisher ports.DecisionPublisher
	Now       func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	var (
		act policy.Action
		rec ports.DecisionRecord
	)
	err := u.Store.Update(ctx, func(s *world.State) error {
		before := s.Balance()
		var agentType string
		if a, ok := s.Agent(req.AgentID); ok {
			agentType = a.RawType
		}
		var err error
		act, err = u.Engine.Decide(s, req.AgentID)
		if err != nil {
			return err
		}
		rec = ports.DecisionRecord{
			SessionID:     s.SessionID(),
			Round:         s.Round(),
			AgentID:       req.AgentID,
			AgentType:     agentType,
			Action:        string(act.Kind),
			PowerType:     string(act.PowerType),
			BalanceBefore: before,
			BalanceAfter:  s.Balance(),
		}
		if act.Offset != nil {
			off := *act.Offset
			rec.Offset = &off
		}
		return nil
	})
	if errors.Is(err, policy.ErrAgentNotFound) {
		if u.Metrics != nil {
			u.Metrics.RecordNotFound()
		}
		hlog.Warnf("decision requested for unknown agent %d", req.AgentID)
		return Response{}, fmt.Errorf("agent %d: %w", req.AgentID, ports.ErrNotFound)
	}
	if err != nil {
		return Response{}, err
	}

	rec.DecidedAt = u.now()
	u.record(ctx, rec)
	hlog.Infof("agent %d (%s) round %d -> %s", rec.AgentID, rec.AgentType, rec.Round, rec.Action)
	return toResponse(act), nil
}

func (u UseCase) record(ctx context.Context, rec ports.DecisionRecord) {
	if u.Metrics != nil {
		u.Metrics.RecordDecision(rec.Action)
	}
	if u.Journal != nil {
		if err := u.Journal.Append(ctx, rec); err != nil {
			hlog.Errorf("journal decision for agent %d: %v", rec.AgentID, err)
		}
	}
	if u.Publisher != nil {
		u.Publisher.Publish(rec)
	}
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now().UTC()
}

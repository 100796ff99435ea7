package agents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gridwright/internal/app/ports"
	"gridwright/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

var ErrInvalidRequest = errors.New("invalid agent request")

type UpsertUseCase struct {
	Store ports.WorldStore
}

func (u UpsertUseCase) Execute(ctx context.Context, req UpsertRequest) (AgentResponse, error) {
	rawType := strings.TrimSpace(req.Type)
	if rawType == "" {
		rawType = string(world.AgentUnknown)
	}
	kind := world.ParseAgentKind(rawType)

	var out AgentResponse
	err := u.Store.Update(ctx, func(s *world.State) error {
		if !s.InBounds(req.Location) {
			return fmt.Errorf("%w: location %s outside %dx%d map", ErrInvalidRequest, req.Location, s.MapSize(), s.MapSize())
		}
		next := world.Agent{
			ID:       req.ID,
			Kind:     kind,
			RawType:  rawType,
			Location: req.Location,
			Team:     req.Team,
		}
		if kind == world.AgentFactory {
			next.Warehouse = parseWarehouse(req.ID, req.Warehouse)
		}
		if prev, ok := s.Agent(req.ID); ok {
			next.HasExplored = prev.HasExplored
			if prev.Location != next.Location {
				s.Release(prev.Location)
			}
		}
		if err := s.Place(next.Location, next.Occupant()); err != nil {
			return err
		}
		s.PutAgent(next)
		out = toResponse(next)
		return nil
	})
	if err != nil {
		return AgentResponse{}, err
	}
	hlog.Debugf("agent %d upserted as %s at %s", out.ID, out.Type, out.Location)
	return out, nil
}

type PatchUseCase struct {
	Store ports.WorldStore
}

func (u PatchUseCase) Execute(ctx context.Context, req PatchRequest) (AgentResponse, error) {
	var out AgentResponse
	err := u.Store.Update(ctx, func(s *world.State) error {
		a, ok := s.Agent(req.ID)
		if !ok {
			return fmt.Errorf("agent %d: %w", req.ID, ports.ErrNotFound)
		}
		if req.Location != nil {
			dest := *req.Location
			if !s.InBounds(dest) {
				return fmt.Errorf("%w: location %s outside %dx%d map", ErrInvalidRequest, dest, s.MapSize(), s.MapSize())
			}
			if dest != a.Location {
				s.Release(a.Location)
				if err := s.Place(dest, a.Occupant()); err != nil {
					return err
				}
				a.Location = dest
			}
		}
		if req.Warehouse != nil {
			a.Warehouse = parseWarehouse(a.ID, req.Warehouse)
		}
		out = toResponse(*a)
		return nil
	})
	if err != nil {
		return AgentResponse{}, err
	}
	return out, nil
}

// RemoveUseCase deletes an agent record. The tile it stood on stays blocked
// unless ReleaseTile is set.
type RemoveUseCase struct {
	Store       ports.WorldStore
	ReleaseTile bool
}

func (u RemoveUseCase) Execute(ctx context.Context, req RemoveRequest) (AgentResponse, error) {
	var out AgentResponse
	err := u.Store.Update(ctx, func(s *world.State) error {
		a, ok := s.DeleteAgent(req.ID)
		if !ok {
			return fmt.Errorf("agent %d: %w", req.ID, ports.ErrNotFound)
		}
		if u.ReleaseTile {
			s.Release(a.Location)
		}
		out = toResponse(a)
		return nil
	})
	if err != nil {
		return AgentResponse{}, err
	}
	hlog.Debugf("agent %d removed (tile released=%t)", out.ID, u.ReleaseTile)
	return out, nil
}

// parseWarehouse keeps the known plant kinds and drops the rest. The result is
// never nil so a factory always carries a warehouse.
func parseWarehouse(agentID int, raw map[string]int) world.Warehouse {
	out := make(world.Warehouse, len(raw))
	for tag, n := range raw {
		kind, ok := world.ParsePowerPlant(tag)
		if !ok {
			hlog.Warnf("agent %d: ignoring unknown warehouse entry %q", agentID, tag)
			continue
		}
		if n < 0 {
			hlog.Warnf("agent %d: clamping negative %s stock %d to 0", agentID, kind, n)
			n = 0
		}
		out[kind] = n
	}
	return out
}

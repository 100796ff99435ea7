package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gridwright/internal/app/ports"
	"gridwright/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
)

var ErrInvalidRequest = errors.New("invalid session request")

type Defaults struct {
	MapSize     int
	InitBalance int
	Team        string
	Terrain     world.TerrainKind
}

func DefaultDefaults() Defaults {
	return Defaults{MapSize: 25, InitBalance: 300, Team: "blue", Terrain: world.TerrainPlains}
}

type InitUseCase struct {
	Store    ports.WorldStore
	Defaults Defaults
	NewID    func() string
}

func (u InitUseCase) Execute(ctx context.Context, req InitRequest) (InitResponse, error) {
	cfg := world.Config{
		MapSize:        u.Defaults.MapSize,
		InitBalance:    u.Defaults.InitBalance,
		Team:           u.Defaults.Team,
		DefaultTerrain: u.Defaults.Terrain,
	}
	if req.MapSize != nil {
		cfg.MapSize = *req.MapSize
	}
	if req.InitBalance != nil {
		cfg.InitBalance = *req.InitBalance
	}
	if req.Team != nil {
		cfg.Team = strings.TrimSpace(*req.Team)
	}
	if req.Map != nil {
		cfg.Grid = gridFromPayload(req.Map)
	}
	newID := u.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	cfg.SessionID = newID()

	s, err := world.NewState(cfg)
	if err != nil {
		return InitResponse{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if err := u.Store.Reset(ctx, s); err != nil {
		return InitResponse{}, err
	}

	generated := req.Map == nil
	if generated {
		hlog.Warnf("no map from the platform, generated a %dx%d %s map", cfg.MapSize, cfg.MapSize, cfg.DefaultTerrain)
	} else {
		hlog.Infof("session %s: received %dx%d map", cfg.SessionID, cfg.MapSize, cfg.MapSize)
	}
	return InitResponse{
		SessionID:    s.SessionID(),
		MapSize:      s.MapSize(),
		Balance:      s.Balance(),
		Team:         s.Team(),
		MapGenerated: generated,
	}, nil
}

func gridFromPayload(rows [][]*world.CellPayload) [][]*world.Cell {
	grid := make([][]*world.Cell, len(rows))
	for y, row := range rows {
		grid[y] = make([]*world.Cell, len(row))
		for x, c := range row {
			if c == nil {
				continue
			}
			cell := c.Cell()
			grid[y][x] = &cell
		}
	}
	return grid
}

type RoundUseCase struct {
	Store ports.WorldStore
}

func (u RoundUseCase) Execute(ctx context.Context, req RoundRequest) (RoundResponse, error) {
	if req.Round < 0 || req.Balance < 0 {
		return RoundResponse{}, ErrInvalidRequest
	}
	err := u.Store.Update(ctx, func(s *world.State) error {
		s.SetRound(req.Round, req.Balance)
		return nil
	})
	if err != nil {
		return RoundResponse{}, err
	}
	return RoundResponse{Round: req.Round, Balance: req.Balance}, nil
}

type SnapshotUseCase struct {
	Store ports.WorldStore
}

func (u SnapshotUseCase) Execute(ctx context.Context) (SnapshotResponse, error) {
	var out SnapshotResponse
	err := u.Store.View(ctx, func(s *world.State) error {
		out = SnapshotResponse{
			SessionID: s.SessionID(),
			MapSize:   s.MapSize(),
			Team:      s.Team(),
			Round:     s.Round(),
			Balance:   s.Balance(),
			Occupied:  s.Occupied(),
		}
		agents := s.Agents()
		out.Agents = make([]AgentView, 0, len(agents))
		for _, a := range agents {
			out.Agents = append(out.Agents, AgentView{
				ID:          a.ID,
				Type:        a.RawType,
				Location:    a.Location,
				Team:        a.Team,
				Warehouse:   a.Warehouse.Clone(),
				HasExplored: a.HasExplored,
			})
		}
		return nil
	})
	return out, err
}

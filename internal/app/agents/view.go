package agents

import (
	"context"

	"gridwright/internal/app/ports"
	"gridwright/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// ViewUseCase merges the sparse map an agent reports into the shared map.
// Occupancy is only ever added here; a unit that left a tile is not cleared.
type ViewUseCase struct {
	Store ports.WorldStore
}

func (u ViewUseCase) Execute(ctx context.Context, req ViewRequest) (ViewResponse, error) {
	var out ViewResponse
	err := u.Store.Update(ctx, func(s *world.State) error {
		for _, row := range req.Map {
			for _, payload := range row {
				if payload == nil {
					continue
				}
				p, ok := payload.Point()
				if !ok {
					out.Skipped++
					continue
				}
				if !s.InBounds(p) {
					hlog.Warnf("agent %d view: skipping out-of-bounds cell %s", req.AgentID, p)
					out.Skipped++
					continue
				}
				next := payload.Cell()
				wasOccupied := s.IsOccupied(p)
				if cur, known := s.CellAt(p); known && cur.Equal(next) {
					out.Skipped++
				} else {
					if err := s.SetCell(p, next); err != nil {
						return err
					}
					out.Updated++
				}
				if next.Occupant == nil {
					continue
				}
				if _, err := s.MarkOccupied(p); err != nil {
					return err
				}
				if !wasOccupied {
					out.OccupiedAdded++
				}
			}
		}
		return nil
	})
	if err != nil {
		return ViewResponse{}, err
	}
	hlog.Debugf("agent %d view: updated=%d skipped=%d occupied_added=%d", req.AgentID, out.Updated, out.Skipped, out.OccupiedAdded)
	return out, nil
}

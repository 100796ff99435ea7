package agents

import (
	"context"
	"errors"
	"testing"

	"gridwright/internal/adapter/repo/memory"
	"gridwright/internal/app/ports"
	"gridwright/internal/domain/world"
)

func newStore(t *testing.T, size int) memory.WorldStore {
	t.Helper()
	s, err := world.NewState(world.Config{MapSize: size, InitBalance: 100})
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	return memory.NewWorldStore(memory.NewStore(s))
}

func inspect(t *testing.T, store memory.WorldStore, fn func(s *world.State)) {
	t.Helper()
	if err := store.View(context.Background(), func(s *world.State) error {
		fn(s)
		return nil
	}); err != nil {
		t.Fatalf("View error: %v", err)
	}
}

func TestUpsert_ReservesLocationAndMirrorsCell(t *testing.T) {
	store := newStore(t, 5)
	resp, err := UpsertUseCase{Store: store}.Execute(context.Background(), UpsertRequest{
		ID: 4, Type: "ENGINEER_BOT", Location: world.Point{X: 2, Y: 3}, Team: "blue",
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if resp.Warehouse != nil {
		t.Fatalf("expected no warehouse for engineer, got %v", resp.Warehouse)
	}
	inspect(t, store, func(s *world.State) {
		p := world.Point{X: 2, Y: 3}
		if !s.IsOccupied(p) {
			t.Fatalf("expected %s occupied", p)
		}
		c, _ := s.CellAt(p)
		if c.Occupant == nil || c.Occupant.AgentID != 4 || c.Occupant.Kind != "ENGINEER_BOT" {
			t.Fatalf("unexpected occupant: %+v", c.Occupant)
		}
	})
}

func TestUpsert_FactoryAlwaysGetsWarehouse(t *testing.T) {
	store := newStore(t, 5)
	resp, err := UpsertUseCase{Store: store}.Execute(context.Background(), UpsertRequest{ID: 1, Type: "FACTORY"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if resp.Warehouse == nil {
		t.Fatalf("expected empty warehouse map for factory")
	}
	resp, err = UpsertUseCase{Store: store}.Execute(context.Background(), UpsertRequest{
		ID: 1, Type: "FACTORY", Warehouse: map[string]int{"DAM": 2, "NUCLEAR": 1},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if got := resp.Warehouse.Count(world.PlantDam); got != 2 {
		t.Fatalf("dams=%d want 2", got)
	}
	if len(resp.Warehouse) != 1 {
		t.Fatalf("expected unknown plant dropped, got %v", resp.Warehouse)
	}
}

func TestUpsert_RejectsOutOfBounds(t *testing.T) {
	store := newStore(t, 3)
	_, err := UpsertUseCase{Store: store}.Execute(context.Background(), UpsertRequest{ID: 1, Type: "FACTORY", Location: world.Point{X: 3, Y: 0}})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	inspect(t, store, func(s *world.State) {
		if len(s.Occupied()) != 0 {
			t.Fatalf("expected no occupancy, got %v", s.Occupied())
		}
	})
}

func TestUpsert_MoveReleasesPreviousTileAndKeepsExplored(t *testing.T) {
	store := newStore(t, 5)
	uc := UpsertUseCase{Store: store}
	if _, err := uc.Execute(context.Background(), UpsertRequest{ID: 2, Type: "ENGINEER_BOT", Location: world.Point{X: 1, Y: 1}}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	_ = store.Update(context.Background(), func(s *world.State) error {
		a, _ := s.Agent(2)
		a.HasExplored = true
		return nil
	})
	resp, err := uc.Execute(context.Background(), UpsertRequest{ID: 2, Type: "ENGINEER_BOT", Location: world.Point{X: 2, Y: 1}})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if !resp.HasExplored {
		t.Fatalf("expected explored flag to survive re-upsert")
	}
	inspect(t, store, func(s *world.State) {
		if s.IsOccupied(world.Point{X: 1, Y: 1}) {
			t.Fatalf("expected old tile released")
		}
		if !s.IsOccupied(world.Point{X: 2, Y: 1}) {
			t.Fatalf("expected new tile occupied")
		}
	})
}

func TestUpsert_UnknownTypeIsStored(t *testing.T) {
	store := newStore(t, 3)
	resp, err := UpsertUseCase{Store: store}.Execute(context.Background(), UpsertRequest{ID: 8, Type: "SCOUT"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if resp.Type != "SCOUT" {
		t.Fatalf("type=%q want SCOUT", resp.Type)
	}
	inspect(t, store, func(s *world.State) {
		a, ok := s.Agent(8)
		if !ok || a.Kind != world.AgentUnknown {
			t.Fatalf("expected unknown kind, got %+v", a)
		}
	})
}

func TestPatch_RelocatesAndReplacesWarehouse(t *testing.T) {
	store := newStore(t, 5)
	if _, err := (UpsertUseCase{Store: store}).Execute(context.Background(), UpsertRequest{
		ID: 1, Type: "FACTORY", Warehouse: map[string]int{"WINDMILL": 3},
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	dest := world.Point{X: 4, Y: 4}
	resp, err := PatchUseCase{Store: store}.Execute(context.Background(), PatchRequest{
		ID: 1, Location: &dest, Warehouse: map[string]int{"SOLAR_PANELS": 1},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if resp.Location != dest {
		t.Fatalf("location=%s want %s", resp.Location, dest)
	}
	if resp.Warehouse.Count(world.PlantWindmill) != 0 || resp.Warehouse.Count(world.PlantSolarPanels) != 1 {
		t.Fatalf("expected warehouse replaced wholesale, got %v", resp.Warehouse)
	}
	inspect(t, store, func(s *world.State) {
		if s.IsOccupied(world.Point{}) {
			t.Fatalf("expected origin released")
		}
		if !s.IsOccupied(dest) {
			t.Fatalf("expected %s occupied", dest)
		}
	})
}

func TestPatch_WithoutLocationKeepsTile(t *testing.T) {
	store := newStore(t, 5)
	if _, err := (UpsertUseCase{Store: store}).Execute(context.Background(), UpsertRequest{ID: 1, Type: "FACTORY", Location: world.Point{X: 1, Y: 2}}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := (PatchUseCase{Store: store}).Execute(context.Background(), PatchRequest{ID: 1, Warehouse: map[string]int{}}); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	inspect(t, store, func(s *world.State) {
		if !s.IsOccupied(world.Point{X: 1, Y: 2}) {
			t.Fatalf("expected tile to stay occupied")
		}
	})
}

func TestPatch_UnknownAgent(t *testing.T) {
	_, err := PatchUseCase{Store: newStore(t, 3)}.Execute(context.Background(), PatchRequest{ID: 42})
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemove_KeepsTileBlockedByDefault(t *testing.T) {
	store := newStore(t, 5)
	p := world.Point{X: 2, Y: 2}
	if _, err := (UpsertUseCase{Store: store}).Execute(context.Background(), UpsertRequest{ID: 3, Type: "ENGINEER_BOT", Location: p}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := (RemoveUseCase{Store: store}).Execute(context.Background(), RemoveRequest{ID: 3}); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	inspect(t, store, func(s *world.State) {
		if _, ok := s.Agent(3); ok {
			t.Fatalf("expected agent deleted")
		}
		if !s.IsOccupied(p) {
			t.Fatalf("expected tile to stay blocked")
		}
	})
}

func TestRemove_ReleasesTileWhenConfigured(t *testing.T) {
	store := newStore(t, 5)
	p := world.Point{X: 2, Y: 2}
	if _, err := (UpsertUseCase{Store: store}).Execute(context.Background(), UpsertRequest{ID: 3, Type: "ENGINEER_BOT", Location: p}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := (RemoveUseCase{Store: store, ReleaseTile: true}).Execute(context.Background(), RemoveRequest{ID: 3}); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	inspect(t, store, func(s *world.State) {
		if s.IsOccupied(p) {
			t.Fatalf("expected tile released")
		}
		c, _ := s.CellAt(p)
		if c.Occupant != nil {
			t.Fatalf("expected cell occupant cleared, got %+v", c.Occupant)
		}
	})
}

func TestRemove_UnknownAgent(t *testing.T) {
	_, err := RemoveUseCase{Store: newStore(t, 3)}.Execute(context.Background(), RemoveRequest{ID: 9})
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

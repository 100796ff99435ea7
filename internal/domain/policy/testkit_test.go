package policy

import (
	"fmt"
	"testing"

	"gridwright/internal/domain/world"
)

type recordingLogger struct {
	debug []string
	warn  []string
}

func (l *recordingLogger) Debugf(format string, v ...interface{}) {
	l.debug = append(l.debug, fmt.Sprintf(format, v...))
}

func (l *recordingLogger) Warnf(format string, v ...interface{}) {
	l.warn = append(l.warn, fmt.Sprintf(format, v...))
}

func newTestEngine() (Engine, *recordingLogger) {
	log := &recordingLogger{}
	return Engine{Tuning: world.DefaultTuning(), Log: log}, log
}

func newWorld(t *testing.T, size, balance int) *world.State {
	t.Helper()
	s, err := world.NewState(world.Config{MapSize: size, InitBalance: balance, Team: "blue"})
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	return s
}

func fillTerrain(t *testing.T, s *world.State, k world.TerrainKind) {
	t.Helper()
	for y := 0; y < s.MapSize(); y++ {
		for x := 0; x < s.MapSize(); x++ {
			if err := s.SetCell(world.Point{X: x, Y: y}, world.Cell{Terrain: k}); err != nil {
				t.Fatalf("SetCell: %v", err)
			}
		}
	}
}

func addAgent(t *testing.T, s *world.State, a world.Agent) *world.Agent {
	t.Helper()
	if a.RawType == "" {
		a.RawType = string(a.Kind)
	}
	if a.Kind == world.AgentFactory && a.Warehouse == nil {
		a.Warehouse = world.Warehouse{}
	}
	s.PutAgent(a)
	if err := s.Place(a.Location, a.Occupant()); err != nil {
		t.Fatalf("Place: %v", err)
	}
	live, _ := s.Agent(a.ID)
	return live
}

func mustDecide(t *testing.T, e Engine, s *world.State, id int) Action {
	t.Helper()
	act, err := e.Decide(s, id)
	if err != nil {
		t.Fatalf("Decide(%d): %v", id, err)
	}
	return act
}

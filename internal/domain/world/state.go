package world

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrInvalidConfig       = errors.New("invalid world config")
	ErrOutOfBounds         = errors.New("location out of bounds")
	ErrTileOccupied        = errors.New("tile already occupied")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

type Config struct {
	SessionID   string
	MapSize     int
	InitBalance int
	Team        string
	// Grid is indexed [y][x]. Nil entries are unknown cells. When Grid is nil
	// the whole map is filled with DefaultTerrain.
	Grid           [][]*Cell
	DefaultTerrain TerrainKind
}

// State is the shared model of one game session: the map, the agents, the
// treasury and the set of blocked tiles.
//
// State holds no lock. Every caller must serialize access to it; a decision
// does check-then-write sequences (balance, vacancy) that are only safe when
// nothing else touches the State in between.
type State struct {
	sessionID   string
	mapSize     int
	initBalance int
	team        string
	round       int
	balance     int

	grid     [][]*Cell
	agents   map[int]*Agent
	occupied map[Point]struct{}
}

func NewState(cfg Config) (*State, error) {
	if cfg.MapSize <= 0 {
		return nil, fmt.Errorf("%w: map size %d", ErrInvalidConfig, cfg.MapSize)
	}
	if cfg.InitBalance < 0 {
		return nil, fmt.Errorf("%w: init balance %d", ErrInvalidConfig, cfg.InitBalance)
	}
	if cfg.DefaultTerrain == TerrainNone {
		cfg.DefaultTerrain = TerrainPlains
	}
	s := &State{
		sessionID:   cfg.SessionID,
		mapSize:     cfg.MapSize,
		initBalance: cfg.InitBalance,
		team:        cfg.Team,
		balance:     cfg.InitBalance,
		grid:        make([][]*Cell, cfg.MapSize),
		agents:      make(map[int]*Agent),
		occupied:    make(map[Point]struct{}),
	}
	for y := range s.grid {
		s.grid[y] = make([]*Cell, cfg.MapSize)
		if cfg.Grid == nil {
			for x := range s.grid[y] {
				s.grid[y][x] = &Cell{Terrain: cfg.DefaultTerrain}
			}
		}
	}
	for y, row := range cfg.Grid {
		for x, c := range row {
			if c == nil {
				continue
			}
			p := Point{X: x, Y: y}
			if !s.InBounds(p) {
				continue
			}
			s.SetCell(p, *c)
		}
	}
	return s, nil
}

func (s *State) SessionID() string { return s.sessionID }
func (s *State) MapSize() int      { return s.mapSize }
func (s *State) InitBalance() int  { return s.initBalance }
func (s *State) Team() string      { return s.team }
func (s *State) Round() int        { return s.round }
func (s *State) Balance() int      { return s.balance }

// SetRound overwrites the round counter and treasury with the values pushed by
// the game host; neither is derived locally.
func (s *State) SetRound(round, balance int) {
	s.round = round
	s.balance = balance
}

func (s *State) CanAfford(cost int) bool {
	return s.balance >= cost
}

func (s *State) Debit(cost int) error {
	if cost < 0 || s.balance < cost {
		return fmt.Errorf("%w: balance %d cost %d", ErrInsufficientBalance, s.balance, cost)
	}
	s.balance -= cost
	return nil
}

func (s *State) InBounds(p Point) bool {
	return p.X >= 0 && p.X < s.mapSize && p.Y >= 0 && p.Y < s.mapSize
}

// CellAt returns a copy of the cell at p. ok is false for unknown cells and
// for locations off the map.
func (s *State) CellAt(p Point) (Cell, bool) {
	if !s.InBounds(p) {
		return Cell{}, false
	}
	c := s.grid[p.Y][p.X]
	if c == nil {
		return Cell{}, false
	}
	return c.clone(), true
}

// Terrain is TerrainNone for unknown cells, off-map locations and cells that
// only carry an occupant.
func (s *State) Terrain(p Point) TerrainKind {
	if !s.InBounds(p) {
		return TerrainNone
	}
	if c := s.grid[p.Y][p.X]; c != nil {
		return c.Terrain
	}
	return TerrainNone
}

// SetCell overwrites the cell at p. A cell carrying an occupant also blocks the
// tile; a cell without one never unblocks it.
func (s *State) SetCell(p Point, c Cell) error {
	if !s.InBounds(p) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, p)
	}
	c = c.clone()
	s.grid[p.Y][p.X] = &c
	if c.Occupant != nil {
		s.occupied[p] = struct{}{}
	}
	return nil
}

func (s *State) IsOccupied(p Point) bool {
	_, ok := s.occupied[p]
	return ok
}

// MarkOccupied blocks p without touching the map cell. It reports whether p
// was newly added.
func (s *State) MarkOccupied(p Point) (bool, error) {
	if !s.InBounds(p) {
		return false, fmt.Errorf("%w: %s", ErrOutOfBounds, p)
	}
	if s.IsOccupied(p) {
		return false, nil
	}
	s.occupied[p] = struct{}{}
	return true, nil
}

// Occupied returns the blocked tiles ordered by row, then column.
func (s *State) Occupied() []Point {
	out := make([]Point, 0, len(s.occupied))
	for p := range s.occupied {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// Reserve claims a free tile for occ, writing the occupant onto the map cell
// and into the occupied set together.
func (s *State) Reserve(p Point, occ Occupant) error {
	if !s.InBounds(p) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, p)
	}
	if s.IsOccupied(p) {
		return fmt.Errorf("%w: %s", ErrTileOccupied, p)
	}
	s.place(p, occ)
	return nil
}

// Place is Reserve without the vacancy check, for positions reported by the
// game host, which is authoritative about where its units stand.
func (s *State) Place(p Point, occ Occupant) error {
	if !s.InBounds(p) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, p)
	}
	s.place(p, occ)
	return nil
}

func (s *State) place(p Point, occ Occupant) {
	c := s.grid[p.Y][p.X]
	if c == nil {
		c = &Cell{}
		s.grid[p.Y][p.X] = c
	}
	c.Occupant = &occ
	s.occupied[p] = struct{}{}
}

// Release frees p in both the occupied set and the map cell.
func (s *State) Release(p Point) {
	if !s.InBounds(p) {
		return
	}
	delete(s.occupied, p)
	if c := s.grid[p.Y][p.X]; c != nil {
		c.Occupant = nil
	}
}

// Agent returns the live record; mutations through it are visible to later
// calls. Callers must hold the same serialization as for the State itself.
func (s *State) Agent(id int) (*Agent, bool) {
	a, ok := s.agents[id]
	return a, ok
}

func (s *State) PutAgent(a Agent) {
	a.Warehouse = a.Warehouse.Clone()
	s.agents[a.ID] = &a
}

func (s *State) DeleteAgent(id int) (Agent, bool) {
	a, ok := s.agents[id]
	if !ok {
		return Agent{}, false
	}
	delete(s.agents, id)
	return *a, true
}

// Agents returns the live records ordered by id.
func (s *State) Agents() []*Agent {
	out := make([]*Agent, 0, len(s.agents))
	for _, a := range s.agents {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *State) CountAgents(kind AgentKind) int {
	n := 0
	for _, a := range s.agents {
		if a.Kind == kind {
			n++
		}
	}
	return n
}

// FirstAgent returns the agent of the given kind with the lowest id.
func (s *State) FirstAgent(kind AgentKind) (*Agent, bool) {
	var first *Agent
	for _, a := range s.agents {
		if a.Kind != kind {
			continue
		}
		if first == nil || a.ID < first.ID {
			first = a
		}
	}
	return first, first != nil
}

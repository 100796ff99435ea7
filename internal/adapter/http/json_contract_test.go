package httpadapter

import (
	"testing"

	"gridwright/internal/app/decide"
	"gridwright/internal/app/session"
	"gridwright/internal/domain/world"
)

func TestDecideResponseMatchesPlatformShape(t *testing.T) {
	offset := world.Point{X: -1, Y: 2}
	cases := []struct {
		name string
		resp decide.Response
		want string
	}{
		{"none", decide.Response{Type: "NONE"}, `{"type":"NONE","params":{}}`},
		{"move", decide.Response{Type: "MOVE", Params: decide.Params{DLoc: &offset}}, `{"type":"MOVE","params":{"d_loc":[-1,2]}}`},
		{"assemble", decide.Response{Type: "ASSEMBLE_POWER_PLANT", Params: decide.Params{PowerType: "DAM"}}, `{"type":"ASSEMBLE_POWER_PLANT","params":{"power_type":"DAM"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := json.Marshal(tc.resp)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if got := string(b); got != tc.want {
				t.Fatalf("json=%s want %s", got, tc.want)
			}
		})
	}
}

func TestSnapshotJSONUsesSnakeCaseAndPairs(t *testing.T) {
	snap := session.SnapshotResponse{
		SessionID: "s1",
		MapSize:   4,
		Occupied:  []world.Point{{X: 1, Y: 2}},
		Agents:    []session.AgentView{{ID: 1, Type: "FACTORY", Location: world.Point{X: 1, Y: 2}}},
	}
	b, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"session_id", "map_size", "occupied", "agents", "balance", "round"} {
		if _, ok := m[key]; !ok {
			t.Fatalf("missing key %q in %s", key, b)
		}
	}
	occ := m["occupied"].([]any)[0].([]any)
	if occ[0] != float64(1) || occ[1] != float64(2) {
		t.Fatalf("occupied[0]=%v want [1 2]", occ)
	}
}

func TestSchemasCompile(t *testing.T) {
	all, err := loadSchemas()
	if err != nil {
		t.Fatalf("load schemas: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("schemas=%d want 5", len(all))
	}
	if err := validateBody(schemaAgent, []byte(`{"type":"FACTORY","location":[1,2],"warehouse":{"WINDMILL":1}}`)); err != nil {
		t.Fatalf("valid agent rejected: %v", err)
	}
	if err := validateBody(schemaAgent, []byte(`{"type":"FACTORY","location":[1]}`)); err == nil {
		t.Fatalf("expected short location to be rejected")
	}
}

package httpadapter

import (
	"context"
	"errors"
	"strconv"

	"gridwright/internal/app/agents"
	"gridwright/internal/app/decide"
	"gridwright/internal/app/ports"
	"gridwright/internal/app/replay"
	"gridwright/internal/app/session"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrInvalidAgentID = errors.New("agent id must be a non-negative integer")

type Handler struct {
	InitUC     session.InitUseCase
	RoundUC    session.RoundUseCase
	SnapshotUC session.SnapshotUseCase
	UpsertUC   agents.UpsertUseCase
	PatchUC    agents.PatchUseCase
	RemoveUC   agents.RemoveUseCase
	ViewUC     agents.ViewUseCase
	DecideUC   decide.UseCase
	ReplayUC   replay.UseCase
	KPI        kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	s.GET("/health", h.health)
	s.POST("/init", h.initSession)
	s.POST("/round", h.round)
	s.GET("/state", h.state)

	agent := s.Group("/agent/:id")
	agent.POST("", h.upsertAgent)
	agent.PATCH("", h.patchAgent)
	agent.DELETE("", h.removeAgent)
	agent.GET("/action", h.action)
	agent.POST("/view", h.view)
	agent.GET("/decisions", h.decisions)

	s.GET("/ops/kpi", h.kpi)
}

type healthResponse struct {
	Status    string `json:"status"`
	SessionID string `json:"session_id,omitempty"`
	Round     int    `json:"round"`
}

func (h Handler) health(c context.Context, ctx *app.RequestContext) {
	snap, err := h.SnapshotUC.Execute(c)
	if errors.Is(err, ports.ErrNoSession) {
		ctx.JSON(consts.StatusOK, healthResponse{Status: "waiting_for_init"})
		return
	}
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, healthResponse{Status: "ok", SessionID: snap.SessionID, Round: snap.Round})
}

func (h Handler) initSession(c context.Context, ctx *app.RequestContext) {
	var body session.InitRequest
	if !bindBody(ctx, schemaInit, &body) {
		return
	}
	resp, err := h.InitUC.Execute(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) round(c context.Context, ctx *app.RequestContext) {
	var body session.RoundRequest
	if !bindBody(ctx, schemaRound, &body) {
		return
	}
	resp, err := h.RoundUC.Execute(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	hlog.Infof("round %d, balance %d", resp.Round, resp.Balance)
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) state(c context.Context, ctx *app.RequestContext) {
	resp, err := h.SnapshotUC.Execute(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) upsertAgent(c context.Context, ctx *app.RequestContext) {
	id, ok := agentIDParam(ctx)
	if !ok {
		return
	}
	var body agents.UpsertRequest
	if !bindBody(ctx, schemaAgent, &body) {
		return
	}
	body.ID = id
	resp, err := h.UpsertUC.Execute(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) patchAgent(c context.Context, ctx *app.RequestContext) {
	id, ok := agentIDParam(ctx)
	if !ok {
		return
	}
	var body agents.PatchRequest
	if !bindBody(ctx, schemaPatch, &body) {
		return
	}
	body.ID = id
	resp, err := h.PatchUC.Execute(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) removeAgent(c context.Context, ctx *app.RequestContext) {
	id, ok := agentIDParam(ctx)
	if !ok {
		return
	}
	resp, err := h.RemoveUC.Execute(c, agents.RemoveRequest{ID: id})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) action(c context.Context, ctx *app.RequestContext) {
	id, ok := agentIDParam(ctx)
	if !ok {
		return
	}
	resp, err := h.DecideUC.Execute(c, decide.Request{AgentID: id})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) view(c context.Context, ctx *app.RequestContext) {
	id, ok := agentIDParam(ctx)
	if !ok {
		return
	}
	var body agents.ViewRequest
	if !bindBody(ctx, schemaView, &body) {
		return
	}
	body.AgentID = id
	resp, err := h.ViewUC.Execute(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) decisions(c context.Context, ctx *app.RequestContext) {
	id, ok := agentIDParam(ctx)
	if !ok {
		return
	}
	req := replay.Request{AgentID: id}
	for _, q := range []struct {
		key string
		dst *int
	}{
		{"limit", &req.Limit},
		{"round_from", &req.RoundFrom},
		{"round_to", &req.RoundTo},
	} {
		raw := string(ctx.Query(q.key))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", q.key+" must be an integer")
			return
		}
		*q.dst = n
	}
	resp, err := h.ReplayUC.Execute(c, req)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func agentIDParam(ctx *app.RequestContext) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id < 0 {
		writeError(ctx, ErrInvalidAgentID)
		return 0, false
	}
	return id, true
}

// bindBody validates the raw body against schema and decodes it into out,
// writing a 400 and returning false on failure.
func bindBody(ctx *app.RequestContext, schema string, out any) bool {
	body := ctx.Request.Body()
	if err := validateBody(schema, body); err != nil {
		writeError(ctx, err)
		return false
	}
	if err := decodeJSON(body, out); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return false
	}
	return true
}

func decodeJSON(body []byte, out any) error {
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrInvalidBody):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, ErrInvalidAgentID),
		errors.Is(err, session.ErrInvalidRequest),
		errors.Is(err, agents.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrNoSession):
		writeErrorBody(ctx, consts.StatusConflict, "no_session", "call /init first")
	default:
		hlog.Errorf("unhandled request error: %v", err)
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

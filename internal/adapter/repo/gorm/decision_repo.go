package gormrepo

import (
	"context"

	"gridwright/internal/adapter/repo/gorm/model"
	"gridwright/internal/app/ports"
	"gridwright/internal/domain/world"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DecisionRepo journals decisions to postgres. Each append also bumps the
// per-session summary row in the same transaction.
type DecisionRepo struct {
	db *gorm.DB
	tx TxManager
}

func NewDecisionRepo(db *gorm.DB) DecisionRepo {
	return DecisionRepo{db: db, tx: NewTxManager(db)}
}

func (r DecisionRepo) Append(ctx context.Context, rec ports.DecisionRecord) error {
	row := toModel(rec)
	return r.tx.RunInTx(ctx, func(ctx context.Context) error {
		db := getDBFromCtx(ctx, r.db)
		if err := db.Create(&row).Error; err != nil {
			return err
		}
		summary := model.DecisionSession{
			SessionID:   rec.SessionID,
			Decisions:   1,
			LastRound:   int32(rec.Round),
			LastBalance: int32(rec.BalanceAfter),
			UpdatedAt:   rec.DecidedAt,
		}
		return db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"decisions":    gorm.Expr("decision_sessions.decisions + 1"),
				"last_round":   summary.LastRound,
				"last_balance": summary.LastBalance,
				"updated_at":   summary.UpdatedAt,
			}),
		}).Create(&summary).Error
	})
}

func (r DecisionRepo) ListByAgentID(ctx context.Context, agentID int, limit int) ([]ports.DecisionRecord, error) {
	rows := []model.DecisionRecord{}
	query := getDBFromCtx(ctx, r.db).
		Where("agent_id = ?", agentID).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{
				{Column: clause.Column{Name: "decided_at"}, Desc: true},
				{Column: clause.Column{Name: "id"}, Desc: true},
			},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]ports.DecisionRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromModel(row))
	}
	return out, nil
}

// SessionSummary returns the running totals for one session.
func (r DecisionRepo) SessionSummary(ctx context.Context, sessionID string) (model.DecisionSession, error) {
	var row model.DecisionSession
	err := getDBFromCtx(ctx, r.db).Where("session_id = ?", sessionID).Limit(1).Find(&row).Error
	if err != nil {
		return model.DecisionSession{}, err
	}
	if row.SessionID == "" {
		return model.DecisionSession{}, ports.ErrNotFound
	}
	return row, nil
}

func toModel(rec ports.DecisionRecord) model.DecisionRecord {
	row := model.DecisionRecord{
		SessionID:     rec.SessionID,
		Round:         int32(rec.Round),
		AgentID:       int32(rec.AgentID),
		AgentType:     rec.AgentType,
		Action:        rec.Action,
		PowerType:     rec.PowerType,
		BalanceBefore: int32(rec.BalanceBefore),
		BalanceAfter:  int32(rec.BalanceAfter),
		DecidedAt:     rec.DecidedAt,
	}
	if rec.Offset != nil {
		x, y := int32(rec.Offset.X), int32(rec.Offset.Y)
		row.OffsetX, row.OffsetY = &x, &y
	}
	return row
}

func fromModel(row model.DecisionRecord) ports.DecisionRecord {
	rec := ports.DecisionRecord{
		SessionID:     row.SessionID,
		Round:         int(row.Round),
		AgentID:       int(row.AgentID),
		AgentType:     row.AgentType,
		Action:        row.Action,
		PowerType:     row.PowerType,
		BalanceBefore: int(row.BalanceBefore),
		BalanceAfter:  int(row.BalanceAfter),
		DecidedAt:     row.DecidedAt,
	}
	if row.OffsetX != nil && row.OffsetY != nil {
		rec.Offset = &world.Point{X: int(*row.OffsetX), Y: int(*row.OffsetY)}
	}
	return rec
}

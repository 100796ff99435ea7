package model

import "time"

const TableNameDecisionRecord = "decision_records"

type DecisionRecord struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement:true" json:"id"`
	SessionID     string    `gorm:"column:session_id;not null" json:"session_id"`
	Round         int32     `gorm:"column:round;not null" json:"round"`
	AgentID       int32     `gorm:"column:agent_id;not null" json:"agent_id"`
	AgentType     string    `gorm:"column:agent_type;not null" json:"agent_type"`
	Action        string    `gorm:"column:action;not null" json:"action"`
	PowerType     string    `gorm:"column:power_type;not null" json:"power_type"`
	OffsetX       *int32    `gorm:"column:offset_x" json:"offset_x"`
	OffsetY       *int32    `gorm:"column:offset_y" json:"offset_y"`
	BalanceBefore int32     `gorm:"column:balance_before;not null" json:"balance_before"`
	BalanceAfter  int32     `gorm:"column:balance_after;not null" json:"balance_after"`
	DecidedAt     time.Time `gorm:"column:decided_at;not null" json:"decided_at"`
}

func (*DecisionRecord) TableName() string {
	return TableNameDecisionRecord
}

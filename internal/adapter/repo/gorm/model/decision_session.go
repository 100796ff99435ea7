package model

import "time"

const TableNameDecisionSession = "decision_sessions"

type DecisionSession struct {
	SessionID   string    `gorm:"column:session_id;primaryKey" json:"session_id"`
	Decisions   int64     `gorm:"column:decisions;not null" json:"decisions"`
	LastRound   int32     `gorm:"column:last_round;not null" json:"last_round"`
	LastBalance int32     `gorm:"column:last_balance;not null" json:"last_balance"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (*DecisionSession) TableName() string {
	return TableNameDecisionSession
}

package types

import (
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
)

const (
  SessionInProgress = "in_progress"
  SessionCompleted  = "completed"
)

type ConversationSession struct {
  gorm.Model
  ID            uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"session_id"`
  UserID        uuid.UUID   `gorm:"index;not null;column:user_id" json:"user_id"`
  User          *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
  Status        string      `gorm:"not null;column:status" json:"status"`
  Language      string      `gorm:"not null;column:language" json:"language"`
  StartedAt     time.Time   `gorm:"not null;default:now();column:started_at" json:"started_at"`
  CompletedAt   *time.Time  `gorm:"column:completed_at" json:"completed_at,omitempty"`
}

func (ConversationSession) TableName() string {
  return "conversation_session"
}

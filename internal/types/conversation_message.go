package types

import (
  "time"
  "gorm.io/gorm"
  "gorm.io/datatypes"
  "github.com/google/uuid"
)

const (
  RoleUser      = "user"
  RoleAssistant = "assistant"
)

// ConversationMessage rows are append-only. Replay into the generation
// adapter depends on stable timestamp-ascending order, so Timestamp is
// set on create and never touched again.
type ConversationMessage struct {
  gorm.Model
  ID            uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"message_id"`
  SessionID     uuid.UUID       `gorm:"index;not null;column:session_id" json:"session_id"`
  Role          string          `gorm:"not null;column:role" json:"role"`
  Content       string          `gorm:"type:text;not null;column:content" json:"content"`
  InputMethod   string          `gorm:"column:input_method" json:"input_method,omitempty"`
  Metadata      datatypes.JSON  `gorm:"column:metadata" json:"-"`
  Timestamp     time.Time       `gorm:"index;not null;default:now();column:timestamp" json:"timestamp"`
}

func (ConversationMessage) TableName() string {
  return "conversation_message"
}

package types

import (
  "time"
  "gorm.io/gorm"
  "gorm.io/datatypes"
  "github.com/google/uuid"
)

// UserProfile holds the structured extraction from one analyzed
// conversation. MentalHealthFlags and AnalysisRaw are persisted for
// counselors but are never serialized into API responses.
type UserProfile struct {
  gorm.Model
  ID                  uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"profile_id"`
  UserID              uuid.UUID       `gorm:"index;not null;column:user_id" json:"user_id"`
  User                *User           `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
  SessionID           *uuid.UUID      `gorm:"index;column:session_id" json:"session_id,omitempty"`
  Interests           datatypes.JSON  `gorm:"column:interests" json:"interests"`
  Strengths           datatypes.JSON  `gorm:"column:strengths" json:"strengths"`
  Values              datatypes.JSON  `gorm:"column:values" json:"values"`
  LearningStyle       string          `gorm:"column:learning_style" json:"learning_style,omitempty"`
  MotivationLevel     int             `gorm:"column:motivation_level" json:"motivation_level,omitempty"`
  CareerPreferences   datatypes.JSON  `gorm:"column:career_preferences" json:"career_preferences,omitempty"`
  MentalHealthFlags   datatypes.JSON  `gorm:"column:mental_health_flags" json:"-"`
  AnalysisRaw         datatypes.JSON  `gorm:"column:analysis_raw" json:"-"`
  CreatedAt           time.Time       `gorm:"not null;default:now()" json:"created_at"`
}

func (UserProfile) TableName() string {
  return "user_profile"
}

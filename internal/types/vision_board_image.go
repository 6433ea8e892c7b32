package types

import (
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
)

const (
  VisionStyleIDBadge       = "id_badge"
  VisionStyleMagazineCover = "magazine_cover"
  VisionStyleAchievement   = "achievement"
)

func IsValidVisionStyle(style string) bool {
  switch style {
  case VisionStyleIDBadge, VisionStyleMagazineCover, VisionStyleAchievement:
    return true
  }
  return false
}

// VisionBoardImage keeps its historical name: ImageURL stores the
// serialized narrative JSON, not a URL. Older rows may hold plain text,
// which readers must tolerate.
type VisionBoardImage struct {
  gorm.Model
  ID                 uuid.UUID              `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"image_id"`
  UserID             uuid.UUID              `gorm:"index;not null;column:user_id" json:"user_id"`
  User               *User                  `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
  RecommendationID   *uuid.UUID             `gorm:"index;column:recommendation_id" json:"recommendation_id,omitempty"`
  Recommendation     *CareerRecommendation  `gorm:"foreignKey:RecommendationID;references:ID" json:"-"`
  Style              string                 `gorm:"not null;column:style" json:"style"`
  ImageURL           string                 `gorm:"type:text;not null;column:image_url" json:"-"`
  Prompt             string                 `gorm:"type:text;column:prompt" json:"-"`
  SafetyCheckPassed  bool                   `gorm:"not null;default:true;column:safety_check_passed" json:"-"`
  GeneratedAt        time.Time              `gorm:"not null;default:now();column:generated_at" json:"generated_at"`
}

func (VisionBoardImage) TableName() string {
  return "vision_board_image"
}

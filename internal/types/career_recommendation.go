package types

import (
  "time"
  "gorm.io/gorm"
  "gorm.io/datatypes"
  "github.com/google/uuid"
)

type CareerRecommendation struct {
  gorm.Model
  ID               uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"recommendation_id"`
  ProfileID        uuid.UUID       `gorm:"index;not null;column:profile_id" json:"profile_id"`
  Profile          *UserProfile    `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProfileID;references:ID" json:"-"`
  CareerPathID     string          `gorm:"not null;column:career_path_id" json:"career_path_id"`
  CareerName       string          `gorm:"not null;column:career_name" json:"career_name"`
  Description      string          `gorm:"type:text;column:description" json:"description"`
  MatchReason      string          `gorm:"type:text;column:match_reason" json:"match_reason"`
  SkillsNeeded     datatypes.JSON  `gorm:"column:skills_needed" json:"skills_needed"`
  ExampleJobs      datatypes.JSON  `gorm:"column:example_jobs" json:"example_jobs"`
  EducationPath    string          `gorm:"type:text;column:education_path" json:"education_path"`
  GrowthPotential  string          `gorm:"type:text;column:growth_potential" json:"growth_potential"`
  IsCustom         bool            `gorm:"not null;default:false;column:is_custom" json:"is_custom"`
  DisplayOrder     int             `gorm:"not null;column:display_order" json:"display_order"`
  CreatedAt        time.Time       `gorm:"not null;default:now()" json:"created_at"`
}

func (CareerRecommendation) TableName() string {
  return "career_recommendation"
}

package types

import (
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
)

const (
  AgeMin = 10
  AgeMax = 17
)

// SupportedLanguages is the closed set of interface languages.
var SupportedLanguages = []string{"ko", "en", "es", "ja"}

func IsSupportedLanguage(code string) bool {
  for _, l := range SupportedLanguages {
    if l == code {
      return true
    }
  }
  return false
}

type User struct {
  gorm.Model
  ID                    uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"user_id"`
  Nickname              string      `gorm:"not null;column:nickname" json:"nickname"`
  Age                   int         `gorm:"not null;column:age" json:"age"`
  Language              string      `gorm:"not null;column:language" json:"language"`
  Country               string      `gorm:"column:country" json:"country,omitempty"`
  PreferredInputMethod  string      `gorm:"column:preferred_input_method" json:"preferred_input_method,omitempty"`
  CreatedAt             time.Time   `gorm:"not null;default:now()" json:"created_at"`
  LastActive            time.Time   `gorm:"not null;default:now();column:last_active" json:"last_active"`
}

func (User) TableName() string {
  return "user"
}

package db

import (
  "fmt"
  "strings"
  "gorm.io/driver/postgres"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  "github.com/pathlightlabs/universe-backend/internal/types"
  "github.com/pathlightlabs/universe-backend/internal/utils"
  "github.com/pathlightlabs/universe-backend/internal/logger"
)

type DatabaseService struct {
  db  *gorm.DB
  log *logger.Logger
}

// NewDatabaseService opens the relational store selected by DB_DRIVER
// (postgres or sqlite). DB_DRIVER=memory is handled by the caller and
// never reaches here.
func NewDatabaseService(log *logger.Logger) (*DatabaseService, error) {
  serviceLog := log.With("service", "DatabaseService")
  driver := strings.ToLower(utils.GetEnv("DB_DRIVER", "postgres", log))

  var gormDB *gorm.DB
  var err error
  switch driver {
  case "sqlite":
    path := utils.GetEnv("SQLITE_PATH", "universe.db", log)
    gormDB, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
    if err != nil {
      return nil, fmt.Errorf("Failed to open sqlite database: %w", err)
    }
  case "postgres":
    postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
    postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
    postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
    postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
    postgresName := utils.GetEnv("POSTGRES_NAME", "universe", log)

    dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)
    gormDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
      DisableForeignKeyConstraintWhenMigrating: true,
    })
    if err != nil {
      return nil, fmt.Errorf("Failed to connect to Postgres: %w", err)
    }
    if err := gormDB.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
      return nil, fmt.Errorf("Failed to enable uuid-ossp extension: %w", err)
    }
  default:
    return nil, fmt.Errorf("Unknown DB_DRIVER %q", driver)
  }

  serviceLog.Info("Database connected", "driver", driver)
  return &DatabaseService{db: gormDB, log: serviceLog}, nil
}

func (s *DatabaseService) AutoMigrateAll() error {
  s.log.Info("Auto migrating tables...")
  err := s.db.AutoMigrate(
    &types.User{},
    &types.ConversationSession{},
    &types.ConversationMessage{},
    &types.UserProfile{},
    &types.CareerRecommendation{},
    &types.VisionBoardImage{},
  )
  if err != nil {
    s.log.Error("Auto migration failed", "error", err)
    return err
  }
  return nil
}

func (s *DatabaseService) DB() *gorm.DB {
  return s.db
}

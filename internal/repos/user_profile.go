package repos

import (
  "context"
  "errors"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/pathlightlabs/universe-backend/internal/logger"
  "github.com/pathlightlabs/universe-backend/internal/types"
)

type UserProfileRepo interface {
  Create(ctx context.Context, tx *gorm.DB, profile *types.UserProfile) (*types.UserProfile, error)
  GetByIDForUser(ctx context.Context, tx *gorm.DB, profileID, userID uuid.UUID) (*types.UserProfile, error)
}

type userProfileRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewUserProfileRepo(db *gorm.DB, baseLog *logger.Logger) UserProfileRepo {
  repoLog := baseLog.With("repo", "UserProfileRepo")
  return &userProfileRepo{db: db, log: repoLog}
}

func (pr *userProfileRepo) Create(ctx context.Context, tx *gorm.DB, profile *types.UserProfile) (*types.UserProfile, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if err := transaction.WithContext(ctx).Create(profile).Error; err != nil {
    return nil, err
  }

  return profile, nil
}

func (pr *userProfileRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, profileID, userID uuid.UUID) (*types.UserProfile, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var result types.UserProfile
  if err := transaction.WithContext(ctx).
    Where("id = ? AND user_id = ?", profileID, userID).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, err
  }

  return &result, nil
}

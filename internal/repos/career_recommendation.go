package repos

import (
  "context"
  "errors"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/pathlightlabs/universe-backend/internal/logger"
  "github.com/pathlightlabs/universe-backend/internal/types"
)

type CareerRecommendationRepo interface {
  Create(ctx context.Context, tx *gorm.DB, rec *types.CareerRecommendation) (*types.CareerRecommendation, error)
  GetByID(ctx context.Context, tx *gorm.DB, recommendationID uuid.UUID) (*types.CareerRecommendation, error)
  ListByProfile(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]*types.CareerRecommendation, error)
  MaxDisplayOrder(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) (int, error)
}

type careerRecommendationRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCareerRecommendationRepo(db *gorm.DB, baseLog *logger.Logger) CareerRecommendationRepo {
  repoLog := baseLog.With("repo", "CareerRecommendationRepo")
  return &careerRecommendationRepo{db: db, log: repoLog}
}

func (rr *careerRecommendationRepo) Create(ctx context.Context, tx *gorm.DB, rec *types.CareerRecommendation) (*types.CareerRecommendation, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  if err := transaction.WithContext(ctx).Create(rec).Error; err != nil {
    return nil, err
  }

  return rec, nil
}

func (rr *careerRecommendationRepo) GetByID(ctx context.Context, tx *gorm.DB, recommendationID uuid.UUID) (*types.CareerRecommendation, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  var result types.CareerRecommendation
  if err := transaction.WithContext(ctx).
    Where("id = ?", recommendationID).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, err
  }

  return &result, nil
}

func (rr *careerRecommendationRepo) ListByProfile(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]*types.CareerRecommendation, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  var results []*types.CareerRecommendation
  if err := transaction.WithContext(ctx).
    Where("profile_id = ?", profileID).
    Order("display_order ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }

  return results, nil
}

func (rr *careerRecommendationRepo) MaxDisplayOrder(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) (int, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  var max int
  if err := transaction.WithContext(ctx).
    Model(&types.CareerRecommendation{}).
    Where("profile_id = ?", profileID).
    Select("COALESCE(MAX(display_order), 0)").
    Scan(&max).Error; err != nil {
    return 0, err
  }

  return max, nil
}

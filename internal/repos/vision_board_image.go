package repos

import (
  "context"
  "errors"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/pathlightlabs/universe-backend/internal/logger"
  "github.com/pathlightlabs/universe-backend/internal/types"
)

type VisionBoardImageRepo interface {
  Create(ctx context.Context, tx *gorm.DB, image *types.VisionBoardImage) (*types.VisionBoardImage, error)
  GetByIDForUser(ctx context.Context, tx *gorm.DB, imageID, userID uuid.UUID) (*types.VisionBoardImage, error)
  ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.VisionBoardImage, error)
}

type visionBoardImageRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewVisionBoardImageRepo(db *gorm.DB, baseLog *logger.Logger) VisionBoardImageRepo {
  repoLog := baseLog.With("repo", "VisionBoardImageRepo")
  return &visionBoardImageRepo{db: db, log: repoLog}
}

func (vr *visionBoardImageRepo) Create(ctx context.Context, tx *gorm.DB, image *types.VisionBoardImage) (*types.VisionBoardImage, error) {
  transaction := tx
  if transaction == nil {
    transaction = vr.db
  }

  if err := transaction.WithContext(ctx).Create(image).Error; err != nil {
    return nil, err
  }

  return image, nil
}

func (vr *visionBoardImageRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, imageID, userID uuid.UUID) (*types.VisionBoardImage, error) {
  transaction := tx
  if transaction == nil {
    transaction = vr.db
  }

  var result types.VisionBoardImage
  if err := transaction.WithContext(ctx).
    Where("id = ? AND user_id = ?", imageID, userID).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, err
  }

  return &result, nil
}

func (vr *visionBoardImageRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.VisionBoardImage, error) {
  transaction := tx
  if transaction == nil {
    transaction = vr.db
  }

  var results []*types.VisionBoardImage
  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("generated_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }

  return results, nil
}

package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/pathlightlabs/universe-backend/internal/logger"
  "github.com/pathlightlabs/universe-backend/internal/types"
)

type ConversationMessageRepo interface {
  Create(ctx context.Context, tx *gorm.DB, message *types.ConversationMessage) (*types.ConversationMessage, error)
  ListBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.ConversationMessage, error)
  CountBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (int64, error)
}

type conversationMessageRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewConversationMessageRepo(db *gorm.DB, baseLog *logger.Logger) ConversationMessageRepo {
  repoLog := baseLog.With("repo", "ConversationMessageRepo")
  return &conversationMessageRepo{db: db, log: repoLog}
}

func (mr *conversationMessageRepo) Create(ctx context.Context, tx *gorm.DB, message *types.ConversationMessage) (*types.ConversationMessage, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }

  if err := transaction.WithContext(ctx).Create(message).Error; err != nil {
    return nil, err
  }

  return message, nil
}

func (mr *conversationMessageRepo) ListBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.ConversationMessage, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }

  var results []*types.ConversationMessage
  if err := transaction.WithContext(ctx).
    Where("session_id = ?", sessionID).
    Order("timestamp ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }

  return results, nil
}

func (mr *conversationMessageRepo) CountBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.ConversationMessage{}).
    Where("session_id = ?", sessionID).
    Count(&count).Error; err != nil {
    return 0, err
  }

  return count, nil
}

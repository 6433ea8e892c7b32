package repos

import (
  "context"
  "errors"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/pathlightlabs/universe-backend/internal/logger"
  "github.com/pathlightlabs/universe-backend/internal/types"
)

type ConversationSessionRepo interface {
  Create(ctx context.Context, tx *gorm.DB, session *types.ConversationSession) (*types.ConversationSession, error)
  GetByIDForUser(ctx context.Context, tx *gorm.DB, sessionID, userID uuid.UUID) (*types.ConversationSession, error)
  MarkCompleted(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, completedAt time.Time) error
}

type conversationSessionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewConversationSessionRepo(db *gorm.DB, baseLog *logger.Logger) ConversationSessionRepo {
  repoLog := baseLog.With("repo", "ConversationSessionRepo")
  return &conversationSessionRepo{db: db, log: repoLog}
}

func (sr *conversationSessionRepo) Create(ctx context.Context, tx *gorm.DB, session *types.ConversationSession) (*types.ConversationSession, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }

  if err := transaction.WithContext(ctx).Create(session).Error; err != nil {
    return nil, err
  }

  return session, nil
}

func (sr *conversationSessionRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, sessionID, userID uuid.UUID) (*types.ConversationSession, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }

  var result types.ConversationSession
  if err := transaction.WithContext(ctx).
    Where("id = ? AND user_id = ?", sessionID, userID).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, err
  }

  return &result, nil
}

func (sr *conversationSessionRepo) MarkCompleted(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, completedAt time.Time) error {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }

  return transaction.WithContext(ctx).
    Model(&types.ConversationSession{}).
    Where("id = ?", sessionID).
    Updates(map[string]interface{}{
      "status":       types.SessionCompleted,
      "completed_at": completedAt,
    }).Error
}

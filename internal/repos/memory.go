package repos

import (
  "context"
  "sort"
  "sync"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/pathlightlabs/universe-backend/internal/types"
)

// MemoryStore is the no-database fallback: one process-wide state
// object created at startup and discarded at shutdown. It satisfies the
// same repo interfaces as the gorm implementations so the service layer
// stays storage-agnostic. The tx argument is accepted and ignored.
type MemoryStore struct {
  mu              sync.RWMutex
  users           map[uuid.UUID]*types.User
  sessions        map[uuid.UUID]*types.ConversationSession
  messages        map[uuid.UUID][]*types.ConversationMessage
  profiles        map[uuid.UUID]*types.UserProfile
  recommendations map[uuid.UUID][]*types.CareerRecommendation
  visionBoards    map[uuid.UUID][]*types.VisionBoardImage
}

func NewMemoryStore() *MemoryStore {
  return &MemoryStore{
    users:           make(map[uuid.UUID]*types.User),
    sessions:        make(map[uuid.UUID]*types.ConversationSession),
    messages:        make(map[uuid.UUID][]*types.ConversationMessage),
    profiles:        make(map[uuid.UUID]*types.UserProfile),
    recommendations: make(map[uuid.UUID][]*types.CareerRecommendation),
    visionBoards:    make(map[uuid.UUID][]*types.VisionBoardImage),
  }
}

func ensureID(id *uuid.UUID) {
  if *id == uuid.Nil {
    *id = uuid.New()
  }
}

// ---- UserRepo ----

type memoryUserRepo struct{ store *MemoryStore }

func NewMemoryUserRepo(store *MemoryStore) UserRepo {
  return &memoryUserRepo{store: store}
}

func (r *memoryUserRepo) Create(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error) {
  r.store.mu.Lock()
  defer r.store.mu.Unlock()
  ensureID(&user.ID)
  r.store.users[user.ID] = user
  return user, nil
}

func (r *memoryUserRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
  r.store.mu.RLock()
  defer r.store.mu.RUnlock()
  return r.store.users[userID], nil
}

func (r *memoryUserRepo) TouchLastActive(ctx context.Context, tx *gorm.DB, userID uuid.UUID, at time.Time) error {
  r.store.mu.Lock()
  defer r.store.mu.Unlock()
  if u, ok := r.store.users[userID]; ok {
    u.LastActive = at
  }
  return nil
}

// ---- ConversationSessionRepo ----

type memorySessionRepo struct{ store *MemoryStore }

func NewMemoryConversationSessionRepo(store *MemoryStore) ConversationSessionRepo {
  return &memorySessionRepo{store: store}
}

func (r *memorySessionRepo) Create(ctx context.Context, tx *gorm.DB, session *types.ConversationSession) (*types.ConversationSession, error) {
  r.store.mu.Lock()
  defer r.store.mu.Unlock()
  ensureID(&session.ID)
  r.store.sessions[session.ID] = session
  r.store.messages[session.ID] = []*types.ConversationMessage{}
  return session, nil
}

func (r *memorySessionRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, sessionID, userID uuid.UUID) (*types.ConversationSession, error) {
  r.store.mu.RLock()
  defer r.store.mu.RUnlock()
  session, ok := r.store.sessions[sessionID]
  if !ok || session.UserID != userID {
    return nil, nil
  }
  return session, nil
}

func (r *memorySessionRepo) MarkCompleted(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, completedAt time.Time) error {
  r.store.mu.Lock()
  defer r.store.mu.Unlock()
  if session, ok := r.store.sessions[sessionID]; ok {
    session.Status = types.SessionCompleted
    at := completedAt
    session.CompletedAt = &at
  }
  return nil
}

// ---- ConversationMessageRepo ----

type memoryMessageRepo struct{ store *MemoryStore }

func NewMemoryConversationMessageRepo(store *MemoryStore) ConversationMessageRepo {
  return &memoryMessageRepo{store: store}
}

func (r *memoryMessageRepo) Create(ctx context.Context, tx *gorm.DB, message *types.ConversationMessage) (*types.ConversationMessage, error) {
  r.store.mu.Lock()
  defer r.store.mu.Unlock()
  ensureID(&message.ID)
  r.store.messages[message.SessionID] = append(r.store.messages[message.SessionID], message)
  return message, nil
}

func (r *memoryMessageRepo) ListBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.ConversationMessage, error) {
  r.store.mu.RLock()
  defer r.store.mu.RUnlock()
  stored := r.store.messages[sessionID]
  results := make([]*types.ConversationMessage, len(stored))
  copy(results, stored)
  // Append order already matches timestamp order; the stable sort only
  // matters if clocks ever run backwards between appends.
  sort.SliceStable(results, func(i, j int) bool {
    return results[i].Timestamp.Before(results[j].Timestamp)
  })
  return results, nil
}

func (r *memoryMessageRepo) CountBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (int64, error) {
  r.store.mu.RLock()
  defer r.store.mu.RUnlock()
  return int64(len(r.store.messages[sessionID])), nil
}

// ---- UserProfileRepo ----

type memoryProfileRepo struct{ store *MemoryStore }

func NewMemoryUserProfileRepo(store *MemoryStore) UserProfileRepo {
  return &memoryProfileRepo{store: store}
}

func (r *memoryProfileRepo) Create(ctx context.Context, tx *gorm.DB, profile *types.UserProfile) (*types.UserProfile, error) {
  r.store.mu.Lock()
  defer r.store.mu.Unlock()
  ensureID(&profile.ID)
  r.store.profiles[profile.ID] = profile
  return profile, nil
}

func (r *memoryProfileRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, profileID, userID uuid.UUID) (*types.UserProfile, error) {
  r.store.mu.RLock()
  defer r.store.mu.RUnlock()
  profile, ok := r.store.profiles[profileID]
  if !ok || profile.UserID != userID {
    return nil, nil
  }
  return profile, nil
}

// ---- CareerRecommendationRepo ----

type memoryRecommendationRepo struct{ store *MemoryStore }

func NewMemoryCareerRecommendationRepo(store *MemoryStore) CareerRecommendationRepo {
  return &memoryRecommendationRepo{store: store}
}

func (r *memoryRecommendationRepo) Create(ctx context.Context, tx *gorm.DB, rec *types.CareerRecommendation) (*types.CareerRecommendation, error) {
  r.store.mu.Lock()
  defer r.store.mu.Unlock()
  ensureID(&rec.ID)
  r.store.recommendations[rec.ProfileID] = append(r.store.recommendations[rec.ProfileID], rec)
  return rec, nil
}

func (r *memoryRecommendationRepo) GetByID(ctx context.Context, tx *gorm.DB, recommendationID uuid.UUID) (*types.CareerRecommendation, error) {
  r.store.mu.RLock()
  defer r.store.mu.RUnlock()
  for _, recs := range r.store.recommendations {
    for _, rec := range recs {
      if rec.ID == recommendationID {
        return rec, nil
      }
    }
  }
  return nil, nil
}

func (r *memoryRecommendationRepo) ListByProfile(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]*types.CareerRecommendation, error) {
  r.store.mu.RLock()
  defer r.store.mu.RUnlock()
  stored := r.store.recommendations[profileID]
  results := make([]*types.CareerRecommendation, len(stored))
  copy(results, stored)
  sort.SliceStable(results, func(i, j int) bool {
    return results[i].DisplayOrder < results[j].DisplayOrder
  })
  return results, nil
}

func (r *memoryRecommendationRepo) MaxDisplayOrder(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) (int, error) {
  r.store.mu.RLock()
  defer r.store.mu.RUnlock()
  max := 0
  for _, rec := range r.store.recommendations[profileID] {
    if rec.DisplayOrder > max {
      max = rec.DisplayOrder
    }
  }
  return max, nil
}

// ---- VisionBoardImageRepo ----

type memoryVisionBoardRepo struct{ store *MemoryStore }

func NewMemoryVisionBoardImageRepo(store *MemoryStore) VisionBoardImageRepo {
  return &memoryVisionBoardRepo{store: store}
}

func (r *memoryVisionBoardRepo) Create(ctx context.Context, tx *gorm.DB, image *types.VisionBoardImage) (*types.VisionBoardImage, error) {
  r.store.mu.Lock()
  defer r.store.mu.Unlock()
  ensureID(&image.ID)
  r.store.visionBoards[image.UserID] = append(r.store.visionBoards[image.UserID], image)
  return image, nil
}

func (r *memoryVisionBoardRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, imageID, userID uuid.UUID) (*types.VisionBoardImage, error) {
  r.store.mu.RLock()
  defer r.store.mu.RUnlock()
  for _, image := range r.store.visionBoards[userID] {
    if image.ID == imageID {
      return image, nil
    }
  }
  return nil, nil
}

func (r *memoryVisionBoardRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.VisionBoardImage, error) {
  r.store.mu.RLock()
  defer r.store.mu.RUnlock()
  stored := r.store.visionBoards[userID]
  results := make([]*types.VisionBoardImage, len(stored))
  copy(results, stored)
  sort.SliceStable(results, func(i, j int) bool {
    return results[i].GeneratedAt.After(results[j].GeneratedAt)
  })
  return results, nil
}

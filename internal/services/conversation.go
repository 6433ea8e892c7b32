package services

import (
  "context"
  "encoding/json"
  "math"
  "strings"
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "github.com/pathlightlabs/universe-backend/internal/apierr"
  "github.com/pathlightlabs/universe-backend/internal/logger"
  "github.com/pathlightlabs/universe-backend/internal/repos"
  "github.com/pathlightlabs/universe-backend/internal/types"
)

// CompletionThreshold is the progress score at which a session has
// enough signal for transcript analysis. The sqrt curve caps at this
// value, so "complete" and "capped" coincide.
const CompletionThreshold = 0.95

// progressTargetMessages is the message count at which the raw sqrt
// curve would reach 1.0.
const progressTargetMessages = 40.0

// progressScore maps a session's total message count (both roles) to a
// score in [0, 0.95]. Early messages move the needle fast, later ones
// slowly.
func progressScore(totalMessages int64) float64 {
  score := math.Sqrt(float64(totalMessages) / progressTargetMessages)
  return math.Min(score, CompletionThreshold)
}

// StartSessionResult is the new session plus its opening assistant
// greeting, already split for staged reveal.
type StartSessionResult struct {
  Session        *types.ConversationSession
  Greeting       *types.ConversationMessage
  Segments       []string
  SegmentDelayMS int
}

// PostMessageResult is one completed exchange: the assistant reply,
// its reveal segments, and the updated progress.
type PostMessageResult struct {
  Reply             *types.ConversationMessage
  Segments          []string
  SegmentDelayMS    int
  ProgressScore     float64
  ReadyForAnalysis  bool
  TotalMessageCount int64
}

// SessionDetail is a session with its full ordered transcript.
type SessionDetail struct {
  Session  *types.ConversationSession
  Messages []*types.ConversationMessage
}

type ConversationService interface {
  StartSession(ctx context.Context, userID uuid.UUID) (*StartSessionResult, error)
  PostUserMessage(ctx context.Context, userID, sessionID uuid.UUID, content, inputMethod string) (*PostMessageResult, error)
  GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*SessionDetail, error)
}

type conversationService struct {
  log         *logger.Logger
  userRepo    repos.UserRepo
  sessionRepo repos.ConversationSessionRepo
  messageRepo repos.ConversationMessageRepo
  gemini      GeminiClient
}

func NewConversationService(
  log *logger.Logger,
  userRepo repos.UserRepo,
  sessionRepo repos.ConversationSessionRepo,
  messageRepo repos.ConversationMessageRepo,
  gemini GeminiClient,
) ConversationService {
  serviceLog := log.With("service", "ConversationService")
  return &conversationService{
    log:         serviceLog,
    userRepo:    userRepo,
    sessionRepo: sessionRepo,
    messageRepo: messageRepo,
    gemini:      gemini,
  }
}

func (cs *conversationService) StartSession(ctx context.Context, userID uuid.UUID) (*StartSessionResult, error) {
  user, err := cs.userRepo.GetByID(ctx, nil, userID)
  if err != nil {
    return nil, err
  }
  if user == nil {
    return nil, apierr.NotFound("User not found")
  }

  now := time.Now()
  session := &types.ConversationSession{
    ID:        uuid.New(),
    UserID:    user.ID,
    Status:    types.SessionInProgress,
    Language:  user.Language,
    StartedAt: now,
  }
  if _, err := cs.sessionRepo.Create(ctx, nil, session); err != nil {
    cs.log.Error("Failed to create session", "user_id", userID.String(), "error", err)
    return nil, err
  }

  greetingText := cs.gemini.GenerateGreeting(ctx, user.Nickname, user.Age, user.Language)
  greeting := &types.ConversationMessage{
    ID:        uuid.New(),
    SessionID: session.ID,
    Role:      types.RoleAssistant,
    Content:   greetingText,
    Timestamp: time.Now(),
  }
  if _, err := cs.messageRepo.Create(ctx, nil, greeting); err != nil {
    cs.log.Error("Failed to persist greeting", "session_id", session.ID.String(), "error", err)
    return nil, err
  }

  if err := cs.userRepo.TouchLastActive(ctx, nil, user.ID, now); err != nil {
    cs.log.Warn("Failed to touch last_active", "user_id", userID.String(), "error", err)
  }

  cs.log.Info("Session started", "session_id", session.ID.String(), "user_id", userID.String())
  return &StartSessionResult{
    Session:        session,
    Greeting:       greeting,
    Segments:       SplitSegments(greetingText),
    SegmentDelayMS: SegmentRevealDelayMS,
  }, nil
}

func (cs *conversationService) PostUserMessage(ctx context.Context, userID, sessionID uuid.UUID, content, inputMethod string) (*PostMessageResult, error) {
  if strings.TrimSpace(content) == "" {
    return nil, apierr.Validation("Content is required")
  }
  if inputMethod == "" {
    inputMethod = "text"
  }

  session, err := cs.sessionRepo.GetByIDForUser(ctx, nil, sessionID, userID)
  if err != nil {
    return nil, err
  }
  if session == nil {
    return nil, apierr.NotFound("Session not found")
  }

  user, err := cs.userRepo.GetByID(ctx, nil, userID)
  if err != nil {
    return nil, err
  }
  if user == nil {
    return nil, apierr.NotFound("User not found")
  }

  userMessage := &types.ConversationMessage{
    ID:          uuid.New(),
    SessionID:   session.ID,
    Role:        types.RoleUser,
    Content:     content,
    InputMethod: inputMethod,
    Timestamp:   time.Now(),
  }
  if _, err := cs.messageRepo.Create(ctx, nil, userMessage); err != nil {
    cs.log.Error("Failed to persist user message", "session_id", sessionID.String(), "error", err)
    return nil, err
  }

  history, err := cs.messageRepo.ListBySession(ctx, nil, session.ID)
  if err != nil {
    return nil, err
  }
  turns := make([]ChatTurn, 0, len(history))
  for _, message := range history {
    turns = append(turns, ChatTurn{Role: message.Role, Content: message.Content})
  }

  systemPrompt := BuildSystemPrompt(session.Language, user.Age)
  result, err := cs.gemini.SendTurn(ctx, turns, systemPrompt, session.Language)
  if err != nil {
    return nil, err
  }

  var metadata datatypes.JSON
  if result.Metadata != nil {
    if raw, merr := json.Marshal(result.Metadata); merr == nil {
      metadata = datatypes.JSON(raw)
    }
  }
  reply := &types.ConversationMessage{
    ID:        uuid.New(),
    SessionID: session.ID,
    Role:      types.RoleAssistant,
    Content:   result.Content,
    Metadata:  metadata,
    Timestamp: time.Now(),
  }
  if _, err := cs.messageRepo.Create(ctx, nil, reply); err != nil {
    cs.log.Error("Failed to persist assistant reply", "session_id", sessionID.String(), "error", err)
    return nil, err
  }

  total, err := cs.messageRepo.CountBySession(ctx, nil, session.ID)
  if err != nil {
    return nil, err
  }
  score := progressScore(total)

  if err := cs.userRepo.TouchLastActive(ctx, nil, user.ID, time.Now()); err != nil {
    cs.log.Warn("Failed to touch last_active", "user_id", userID.String(), "error", err)
  }

  return &PostMessageResult{
    Reply:             reply,
    Segments:          SplitSegments(result.Content),
    SegmentDelayMS:    SegmentRevealDelayMS,
    ProgressScore:     score,
    ReadyForAnalysis:  score >= CompletionThreshold,
    TotalMessageCount: total,
  }, nil
}

func (cs *conversationService) GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*SessionDetail, error) {
  session, err := cs.sessionRepo.GetByIDForUser(ctx, nil, sessionID, userID)
  if err != nil {
    return nil, err
  }
  if session == nil {
    return nil, apierr.NotFound("Session not found")
  }

  messages, err := cs.messageRepo.ListBySession(ctx, nil, session.ID)
  if err != nil {
    return nil, err
  }

  return &SessionDetail{Session: session, Messages: messages}, nil
}

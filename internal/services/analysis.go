package services

import (
  "context"
  "encoding/json"
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "github.com/pathlightlabs/universe-backend/internal/apierr"
  "github.com/pathlightlabs/universe-backend/internal/logger"
  "github.com/pathlightlabs/universe-backend/internal/repos"
  "github.com/pathlightlabs/universe-backend/internal/types"
)

// AnalysisService turns a finished conversation into a persisted
// profile. Sensitive extraction fields stay server-side; the returned
// profile row already has them tagged out of serialization.
type AnalysisService interface {
  AnalyzeSession(ctx context.Context, userID, sessionID uuid.UUID) (*types.UserProfile, error)
}

type analysisService struct {
  log         *logger.Logger
  sessionRepo repos.ConversationSessionRepo
  messageRepo repos.ConversationMessageRepo
  profileRepo repos.UserProfileRepo
  gemini      GeminiClient
}

func NewAnalysisService(
  log *logger.Logger,
  sessionRepo repos.ConversationSessionRepo,
  messageRepo repos.ConversationMessageRepo,
  profileRepo repos.UserProfileRepo,
  gemini GeminiClient,
) AnalysisService {
  serviceLog := log.With("service", "AnalysisService")
  return &analysisService{
    log:         serviceLog,
    sessionRepo: sessionRepo,
    messageRepo: messageRepo,
    profileRepo: profileRepo,
    gemini:      gemini,
  }
}

func (as *analysisService) AnalyzeSession(ctx context.Context, userID, sessionID uuid.UUID) (*types.UserProfile, error) {
  session, err := as.sessionRepo.GetByIDForUser(ctx, nil, sessionID, userID)
  if err != nil {
    return nil, err
  }
  if session == nil {
    return nil, apierr.NotFound("Session not found")
  }

  messages, err := as.messageRepo.ListBySession(ctx, nil, session.ID)
  if err != nil {
    return nil, err
  }
  if len(messages) == 0 {
    return nil, apierr.Validation("Session has no messages to analyze")
  }

  turns := make([]ChatTurn, 0, len(messages))
  for _, message := range messages {
    turns = append(turns, ChatTurn{Role: message.Role, Content: message.Content})
  }

  analysis, err := as.gemini.AnalyzeTranscript(ctx, turns, session.Language)
  if err != nil {
    return nil, err
  }

  sid := session.ID
  profile := &types.UserProfile{
    ID:                uuid.New(),
    UserID:            userID,
    SessionID:         &sid,
    Interests:         marshalJSON(analysis.Interests),
    Strengths:         marshalJSON(analysis.Strengths),
    Values:            marshalJSON(analysis.Values),
    LearningStyle:     analysis.LearningStyle,
    MotivationLevel:   analysis.MotivationLevel,
    CareerPreferences: marshalJSON(analysis.CareerPreferences),
    MentalHealthFlags: marshalJSON(analysis.MentalHealthFlags),
    AnalysisRaw:       marshalJSON(analysis.Raw),
    CreatedAt:         time.Now(),
  }

  created, err := as.profileRepo.Create(ctx, nil, profile)
  if err != nil {
    as.log.Error("Failed to persist profile", "session_id", sessionID.String(), "error", err)
    return nil, err
  }

  if err := as.sessionRepo.MarkCompleted(ctx, nil, session.ID, time.Now()); err != nil {
    as.log.Warn("Failed to mark session completed", "session_id", sessionID.String(), "error", err)
  }

  as.log.Info("Session analyzed", "session_id", sessionID.String(), "profile_id", created.ID.String())
  return created, nil
}

// marshalJSON converts an extracted value to a JSON column, mapping
// unmarshalable or nil input to JSON null.
func marshalJSON(v interface{}) datatypes.JSON {
  if v == nil {
    return datatypes.JSON([]byte("null"))
  }
  raw, err := json.Marshal(v)
  if err != nil {
    return datatypes.JSON([]byte("null"))
  }
  return datatypes.JSON(raw)
}

// summaryFromProfile projects a persisted profile into the slice of it
// that prompts and API responses may see.
func summaryFromProfile(profile *types.UserProfile) *ProfileSummary {
  summary := &ProfileSummary{
    Interests:         unmarshalStrings(profile.Interests),
    Strengths:         unmarshalStrings(profile.Strengths),
    Values:            unmarshalStrings(profile.Values),
    LearningStyle:     profile.LearningStyle,
    MotivationLevel:   profile.MotivationLevel,
  }
  if len(profile.CareerPreferences) > 0 {
    summary.CareerPreferences = json.RawMessage(profile.CareerPreferences)
  }
  return summary
}

func unmarshalStrings(raw datatypes.JSON) []string {
  out := []string{}
  if len(raw) == 0 {
    return out
  }
  _ = json.Unmarshal([]byte(raw), &out)
  if out == nil {
    out = []string{}
  }
  return out
}

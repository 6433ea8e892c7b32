package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/pathlightlabs/universe-backend/internal/apierr"
  "github.com/pathlightlabs/universe-backend/internal/requestdata"
  "github.com/pathlightlabs/universe-backend/internal/services"
)

type ConversationHandler struct {
  conversationService services.ConversationService
  analysisService     services.AnalysisService
}

func NewConversationHandler(conversationService services.ConversationService, analysisService services.AnalysisService) *ConversationHandler {
  return &ConversationHandler{
    conversationService: conversationService,
    analysisService:     analysisService,
  }
}

func (ch *ConversationHandler) StartSession(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    respondError(c, apierr.Unauthorized("Unauthorized"))
    return
  }

  result, err := ch.conversationService.StartSession(c.Request.Context(), rd.UserID)
  if err != nil {
    respondError(c, err)
    return
  }

  c.JSON(http.StatusOK, gin.H{
    "session_id": result.Session.ID,
    "first_message": gin.H{
      "role":      result.Greeting.Role,
      "content":   result.Greeting.Content,
      "timestamp": result.Greeting.Timestamp,
    },
    "segments":         result.Segments,
    "segment_delay_ms": result.SegmentDelayMS,
  })
}

func (ch *ConversationHandler) PostMessage(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    respondError(c, apierr.Unauthorized("Unauthorized"))
    return
  }
  sessionID, err := uuid.Parse(c.Param("sessionId"))
  if err != nil {
    respondError(c, apierr.Validation("invalid session id"))
    return
  }

  var req struct {
    Content     string `json:"content"`
    InputMethod string `json:"input_method"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    respondError(c, apierr.Validation("invalid request body"))
    return
  }

  result, err := ch.conversationService.PostUserMessage(c.Request.Context(), rd.UserID, sessionID, req.Content, req.InputMethod)
  if err != nil {
    respondError(c, err)
    return
  }

  c.JSON(http.StatusOK, gin.H{
    "message_id": result.Reply.ID,
    "ai_response": gin.H{
      "role":      result.Reply.Role,
      "content":   result.Reply.Content,
      "timestamp": result.Reply.Timestamp,
    },
    "segments":           result.Segments,
    "segment_delay_ms":   result.SegmentDelayMS,
    "progress":           result.ProgressScore,
    "ready_for_analysis": result.ReadyForAnalysis,
  })
}

func (ch *ConversationHandler) GetSession(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    respondError(c, apierr.Unauthorized("Unauthorized"))
    return
  }
  sessionID, err := uuid.Parse(c.Param("sessionId"))
  if err != nil {
    respondError(c, apierr.Validation("invalid session id"))
    return
  }

  detail, err := ch.conversationService.GetSession(c.Request.Context(), rd.UserID, sessionID)
  if err != nil {
    respondError(c, err)
    return
  }

  messages := make([]gin.H, 0, len(detail.Messages))
  for _, message := range detail.Messages {
    messages = append(messages, gin.H{
      "message_id":   message.ID,
      "role":         message.Role,
      "content":      message.Content,
      "input_method": message.InputMethod,
      "timestamp":    message.Timestamp,
    })
  }

  c.JSON(http.StatusOK, gin.H{
    "session_id":   detail.Session.ID,
    "status":       detail.Session.Status,
    "started_at":   detail.Session.StartedAt,
    "completed_at": detail.Session.CompletedAt,
    "messages":     messages,
  })
}

func (ch *ConversationHandler) AnalyzeSession(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    respondError(c, apierr.Unauthorized("Unauthorized"))
    return
  }
  sessionID, err := uuid.Parse(c.Param("sessionId"))
  if err != nil {
    respondError(c, apierr.Validation("invalid session id"))
    return
  }

  profile, err := ch.analysisService.AnalyzeSession(c.Request.Context(), rd.UserID, sessionID)
  if err != nil {
    respondError(c, err)
    return
  }

  // Mental-health flags and the raw extractor output stay server-side.
  c.JSON(http.StatusOK, gin.H{
    "profile_id": profile.ID,
    "analysis": gin.H{
      "interests":          profile.Interests,
      "strengths":          profile.Strengths,
      "values":             profile.Values,
      "learning_style":     profile.LearningStyle,
      "motivation_level":   profile.MotivationLevel,
      "career_preferences": profile.CareerPreferences,
    },
  })
}

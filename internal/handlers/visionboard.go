package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/pathlightlabs/universe-backend/internal/apierr"
  "github.com/pathlightlabs/universe-backend/internal/requestdata"
  "github.com/pathlightlabs/universe-backend/internal/services"
)

type VisionBoardHandler struct {
  visionBoardService services.VisionBoardService
}

func NewVisionBoardHandler(visionBoardService services.VisionBoardService) *VisionBoardHandler {
  return &VisionBoardHandler{visionBoardService: visionBoardService}
}

func visionBoardBody(view *services.VisionBoardView) gin.H {
  return gin.H{
    "image_id":     view.Image.ID,
    "style":        view.Image.Style,
    "career_name":  view.CareerName,
    "vision_data":  view.Narrative,
    "generated_at": view.Image.GeneratedAt,
  }
}

func (vh *VisionBoardHandler) Generate(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    respondError(c, apierr.Unauthorized("Unauthorized"))
    return
  }

  var req struct {
    RecommendationID string `json:"recommendation_id"`
    Style            string `json:"style"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    respondError(c, apierr.Validation("invalid request body"))
    return
  }
  if req.RecommendationID == "" {
    respondError(c, apierr.Validation("recommendation_id is required"))
    return
  }
  recommendationID, err := uuid.Parse(req.RecommendationID)
  if err != nil {
    respondError(c, apierr.Validation("invalid recommendation id"))
    return
  }

  view, err := vh.visionBoardService.Generate(c.Request.Context(), rd.UserID, recommendationID, req.Style)
  if err != nil {
    respondError(c, err)
    return
  }

  c.JSON(http.StatusOK, visionBoardBody(view))
}

func (vh *VisionBoardHandler) Get(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    respondError(c, apierr.Unauthorized("Unauthorized"))
    return
  }
  imageID, err := uuid.Parse(c.Param("imageId"))
  if err != nil {
    respondError(c, apierr.Validation("invalid image id"))
    return
  }

  view, err := vh.visionBoardService.Get(c.Request.Context(), rd.UserID, imageID)
  if err != nil {
    respondError(c, err)
    return
  }

  c.JSON(http.StatusOK, visionBoardBody(view))
}

func (vh *VisionBoardHandler) ListForUser(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    respondError(c, apierr.Unauthorized("Unauthorized"))
    return
  }

  views, err := vh.visionBoardService.ListForUser(c.Request.Context(), rd.UserID)
  if err != nil {
    respondError(c, err)
    return
  }

  bodies := make([]gin.H, 0, len(views))
  for _, view := range views {
    bodies = append(bodies, visionBoardBody(view))
  }
  c.JSON(http.StatusOK, gin.H{"vision_boards": bodies})
}

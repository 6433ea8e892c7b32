package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/pathlightlabs/universe-backend/internal/apierr"
  "github.com/pathlightlabs/universe-backend/internal/requestdata"
  "github.com/pathlightlabs/universe-backend/internal/services"
  "github.com/pathlightlabs/universe-backend/internal/types"
)

type RecommendationHandler struct {
  recommendationService services.RecommendationService
}

func NewRecommendationHandler(recommendationService services.RecommendationService) *RecommendationHandler {
  return &RecommendationHandler{recommendationService: recommendationService}
}

func recommendationBody(rec *types.CareerRecommendation) gin.H {
  return gin.H{
    "recommendation_id": rec.ID,
    "career_path_id":    rec.CareerPathID,
    "career_name":       rec.CareerName,
    "description":       rec.Description,
    "match_reason":      rec.MatchReason,
    "skills_needed":     rec.SkillsNeeded,
    "example_jobs":      rec.ExampleJobs,
    "education_path":    rec.EducationPath,
    "growth_potential":  rec.GrowthPotential,
    "is_custom":         rec.IsCustom,
  }
}

func (rh *RecommendationHandler) GetRecommendations(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    respondError(c, apierr.Unauthorized("Unauthorized"))
    return
  }
  profileID, err := uuid.Parse(c.Param("profileId"))
  if err != nil {
    respondError(c, apierr.Validation("invalid profile id"))
    return
  }

  recommendations, err := rh.recommendationService.GetOrCreateRecommendations(c.Request.Context(), rd.UserID, profileID)
  if err != nil {
    respondError(c, err)
    return
  }

  bodies := make([]gin.H, 0, len(recommendations))
  for _, rec := range recommendations {
    bodies = append(bodies, recommendationBody(rec))
  }
  c.JSON(http.StatusOK, gin.H{"recommendations": bodies})
}

func (rh *RecommendationHandler) AddCustomCareer(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    respondError(c, apierr.Unauthorized("Unauthorized"))
    return
  }

  var req struct {
    ProfileID        string `json:"profile_id"`
    CustomCareerName string `json:"custom_career_name"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    respondError(c, apierr.Validation("invalid request body"))
    return
  }
  if req.ProfileID == "" || req.CustomCareerName == "" {
    respondError(c, apierr.Validation("profile_id and custom_career_name are required"))
    return
  }
  profileID, err := uuid.Parse(req.ProfileID)
  if err != nil {
    respondError(c, apierr.Validation("invalid profile id"))
    return
  }

  rec, err := rh.recommendationService.AddCustomCareer(c.Request.Context(), rd.UserID, profileID, req.CustomCareerName)
  if err != nil {
    respondError(c, err)
    return
  }

  c.JSON(http.StatusOK, recommendationBody(rec))
}

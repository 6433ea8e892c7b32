package services

import (
  "context"
  "fmt"
  "strings"
  "time"
  "github.com/google/uuid"
  "golang.org/x/sync/singleflight"
  "github.com/pathlightlabs/universe-backend/internal/apierr"
  "github.com/pathlightlabs/universe-backend/internal/logger"
  "github.com/pathlightlabs/universe-backend/internal/repos"
  "github.com/pathlightlabs/universe-backend/internal/types"
)

// RecommendationService produces and stores career paths for a
// profile. First fetch generates, later fetches return the stored set.
type RecommendationService interface {
  GetOrCreateRecommendations(ctx context.Context, userID, profileID uuid.UUID) ([]*types.CareerRecommendation, error)
  AddCustomCareer(ctx context.Context, userID, profileID uuid.UUID, careerName string) (*types.CareerRecommendation, error)
}

type recommendationService struct {
  log         *logger.Logger
  userRepo    repos.UserRepo
  profileRepo repos.UserProfileRepo
  recRepo     repos.CareerRecommendationRepo
  gemini      GeminiClient
  group       singleflight.Group
}

func NewRecommendationService(
  log *logger.Logger,
  userRepo repos.UserRepo,
  profileRepo repos.UserProfileRepo,
  recRepo repos.CareerRecommendationRepo,
  gemini GeminiClient,
) RecommendationService {
  serviceLog := log.With("service", "RecommendationService")
  return &recommendationService{
    log:         serviceLog,
    userRepo:    userRepo,
    profileRepo: profileRepo,
    recRepo:     recRepo,
    gemini:      gemini,
  }
}

func (rs *recommendationService) GetOrCreateRecommendations(ctx context.Context, userID, profileID uuid.UUID) ([]*types.CareerRecommendation, error) {
  profile, err := rs.profileRepo.GetByIDForUser(ctx, nil, profileID, userID)
  if err != nil {
    return nil, err
  }
  if profile == nil {
    return nil, apierr.NotFound("Profile not found")
  }

  language := rs.languageForUser(ctx, userID)

  // Concurrent fetches for the same profile share one generation.
  result, err, _ := rs.group.Do(profileID.String(), func() (interface{}, error) {
    return rs.getOrGenerate(ctx, profile, language)
  })
  if err != nil {
    return nil, err
  }
  return result.([]*types.CareerRecommendation), nil
}

func (rs *recommendationService) getOrGenerate(ctx context.Context, profile *types.UserProfile, language string) ([]*types.CareerRecommendation, error) {
  existing, err := rs.recRepo.ListByProfile(ctx, nil, profile.ID)
  if err != nil {
    return nil, err
  }
  if len(existing) > 0 {
    return existing, nil
  }

  candidates, err := rs.gemini.GenerateRecommendations(ctx, summaryFromProfile(profile), language)
  if err != nil {
    return nil, err
  }
  if len(candidates) == 0 {
    return nil, apierr.Generation(fmt.Errorf("no recommendations produced for profile"))
  }

  created := make([]*types.CareerRecommendation, 0, len(candidates))
  for i, candidate := range candidates {
    rec := &types.CareerRecommendation{
      ID:              uuid.New(),
      ProfileID:       profile.ID,
      CareerPathID:    fmt.Sprintf("path_%d", i+1),
      CareerName:      candidate.CareerName,
      Description:     candidate.Description,
      MatchReason:     candidate.MatchReason,
      SkillsNeeded:    marshalJSON(candidate.SkillsNeeded),
      ExampleJobs:     marshalJSON(candidate.ExampleJobs),
      EducationPath:   candidate.EducationPath,
      GrowthPotential: candidate.GrowthPotential,
      IsCustom:        false,
      DisplayOrder:    i + 1,
      CreatedAt:       time.Now(),
    }
    if _, err := rs.recRepo.Create(ctx, nil, rec); err != nil {
      rs.log.Error("Failed to persist recommendation", "profile_id", profile.ID.String(), "error", err)
      return nil, err
    }
    created = append(created, rec)
  }

  rs.log.Info("Recommendations generated", "profile_id", profile.ID.String(), "count", len(created))
  return created, nil
}

func (rs *recommendationService) AddCustomCareer(ctx context.Context, userID, profileID uuid.UUID, careerName string) (*types.CareerRecommendation, error) {
  name := strings.TrimSpace(careerName)
  if name == "" {
    return nil, apierr.Validation("Career name is required")
  }

  profile, err := rs.profileRepo.GetByIDForUser(ctx, nil, profileID, userID)
  if err != nil {
    return nil, err
  }
  if profile == nil {
    return nil, apierr.NotFound("Profile not found")
  }

  candidate, err := rs.gemini.EnrichCustomCareer(ctx, name, summaryFromProfile(profile))
  if err != nil {
    return nil, err
  }

  maxOrder, err := rs.recRepo.MaxDisplayOrder(ctx, nil, profile.ID)
  if err != nil {
    return nil, err
  }

  rec := &types.CareerRecommendation{
    ID:              uuid.New(),
    ProfileID:       profile.ID,
    CareerPathID:    fmt.Sprintf("custom_%d", time.Now().UnixMilli()),
    CareerName:      candidate.CareerName,
    Description:     candidate.Description,
    MatchReason:     candidate.MatchReason,
    SkillsNeeded:    marshalJSON(candidate.SkillsNeeded),
    ExampleJobs:     marshalJSON(candidate.ExampleJobs),
    EducationPath:   candidate.EducationPath,
    GrowthPotential: candidate.GrowthPotential,
    IsCustom:        true,
    DisplayOrder:    maxOrder + 1,
    CreatedAt:       time.Now(),
  }
  if rec.CareerName == "" {
    rec.CareerName = name
  }

  if _, err := rs.recRepo.Create(ctx, nil, rec); err != nil {
    rs.log.Error("Failed to persist custom career", "profile_id", profile.ID.String(), "error", err)
    return nil, err
  }

  rs.log.Info("Custom career added", "profile_id", profile.ID.String())
  return rec, nil
}

// languageForUser resolves the language recommendations should be
// written in. English is the default when the lookup fails.
func (rs *recommendationService) languageForUser(ctx context.Context, userID uuid.UUID) string {
  user, err := rs.userRepo.GetByID(ctx, nil, userID)
  if err != nil || user == nil || user.Language == "" {
    return "en"
  }
  return user.Language
}

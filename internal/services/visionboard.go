package services

import (
  "context"
  "encoding/json"
  "time"
  "github.com/google/uuid"
  "github.com/pathlightlabs/universe-backend/internal/apierr"
  "github.com/pathlightlabs/universe-backend/internal/logger"
  "github.com/pathlightlabs/universe-backend/internal/repos"
  "github.com/pathlightlabs/universe-backend/internal/types"
)

// VisionBoardView pairs a stored vision board entry with its decoded
// narrative for the response body.
type VisionBoardView struct {
  Image      *types.VisionBoardImage
  CareerName string
  Narrative  map[string]interface{}
}

type VisionBoardService interface {
  Generate(ctx context.Context, userID, recommendationID uuid.UUID, style string) (*VisionBoardView, error)
  Get(ctx context.Context, userID, imageID uuid.UUID) (*VisionBoardView, error)
  ListForUser(ctx context.Context, userID uuid.UUID) ([]*VisionBoardView, error)
}

type visionBoardService struct {
  log         *logger.Logger
  userRepo    repos.UserRepo
  profileRepo repos.UserProfileRepo
  recRepo     repos.CareerRecommendationRepo
  imageRepo   repos.VisionBoardImageRepo
  gemini      GeminiClient
}

func NewVisionBoardService(
  log *logger.Logger,
  userRepo repos.UserRepo,
  profileRepo repos.UserProfileRepo,
  recRepo repos.CareerRecommendationRepo,
  imageRepo repos.VisionBoardImageRepo,
  gemini GeminiClient,
) VisionBoardService {
  serviceLog := log.With("service", "VisionBoardService")
  return &visionBoardService{
    log:         serviceLog,
    userRepo:    userRepo,
    profileRepo: profileRepo,
    recRepo:     recRepo,
    imageRepo:   imageRepo,
    gemini:      gemini,
  }
}

func (vs *visionBoardService) Generate(ctx context.Context, userID, recommendationID uuid.UUID, style string) (*VisionBoardView, error) {
  if style == "" {
    style = types.VisionStyleMagazineCover
  }
  if !types.IsValidVisionStyle(style) {
    return nil, apierr.Validation("Invalid style. Use: id_badge, magazine_cover, achievement")
  }

  rec, err := vs.recRepo.GetByID(ctx, nil, recommendationID)
  if err != nil {
    return nil, err
  }
  if rec == nil {
    return nil, apierr.NotFound("Recommendation not found")
  }

  // The recommendation exists but must belong to the caller's profile.
  profile, err := vs.profileRepo.GetByIDForUser(ctx, nil, rec.ProfileID, userID)
  if err != nil {
    return nil, err
  }
  if profile == nil {
    return nil, apierr.Forbidden("Forbidden")
  }

  exampleJob := rec.CareerName
  if jobs := unmarshalStrings(rec.ExampleJobs); len(jobs) > 0 {
    exampleJob = jobs[0]
  }

  language := "en"
  if user, uerr := vs.userRepo.GetByID(ctx, nil, userID); uerr == nil && user != nil && user.Language != "" {
    language = user.Language
  }

  narrative, err := vs.gemini.GenerateVisionNarrative(ctx, style, rec.CareerName, exampleJob, language, summaryFromProfile(profile))
  if err != nil {
    return nil, err
  }

  serialized, err := json.Marshal(narrative)
  if err != nil {
    return nil, apierr.Generation(err)
  }

  rid := rec.ID
  image := &types.VisionBoardImage{
    ID:                uuid.New(),
    UserID:            userID,
    RecommendationID:  &rid,
    Style:             style,
    ImageURL:          string(serialized),
    Prompt:            BuildVisionStylePrompt(style, rec.CareerName, exampleJob),
    SafetyCheckPassed: true,
    GeneratedAt:       time.Now(),
  }
  if _, err := vs.imageRepo.Create(ctx, nil, image); err != nil {
    vs.log.Error("Failed to persist vision board entry", "user_id", userID.String(), "error", err)
    return nil, err
  }

  vs.log.Info("Vision board entry generated", "user_id", userID.String(), "style", style)
  return &VisionBoardView{Image: image, CareerName: rec.CareerName, Narrative: narrative}, nil
}

func (vs *visionBoardService) Get(ctx context.Context, userID, imageID uuid.UUID) (*VisionBoardView, error) {
  image, err := vs.imageRepo.GetByIDForUser(ctx, nil, imageID, userID)
  if err != nil {
    return nil, err
  }
  if image == nil {
    return nil, apierr.NotFound("Vision board not found")
  }
  return &VisionBoardView{
    Image:      image,
    CareerName: vs.careerNameFor(ctx, image),
    Narrative:  decodeNarrative(image.ImageURL),
  }, nil
}

func (vs *visionBoardService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*VisionBoardView, error) {
  images, err := vs.imageRepo.ListByUser(ctx, nil, userID)
  if err != nil {
    return nil, err
  }
  views := make([]*VisionBoardView, 0, len(images))
  for _, image := range images {
    views = append(views, &VisionBoardView{
      Image:      image,
      CareerName: vs.careerNameFor(ctx, image),
      Narrative:  decodeNarrative(image.ImageURL),
    })
  }
  return views, nil
}

func (vs *visionBoardService) careerNameFor(ctx context.Context, image *types.VisionBoardImage) string {
  if image.RecommendationID == nil {
    return ""
  }
  rec, err := vs.recRepo.GetByID(ctx, nil, *image.RecommendationID)
  if err != nil || rec == nil {
    return ""
  }
  return rec.CareerName
}

// decodeNarrative re-parses a stored narrative. Rows written before the
// JSON format, or hand-edited ones, come back as a bare description.
func decodeNarrative(stored string) map[string]interface{} {
  var narrative map[string]interface{}
  if err := json.Unmarshal([]byte(stored), &narrative); err != nil || narrative == nil {
    return map[string]interface{}{"description": stored}
  }
  return narrative
}

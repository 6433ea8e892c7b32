package services

import (
  "context"
  "strings"
  "time"
  "github.com/google/uuid"
  "github.com/pathlightlabs/universe-backend/internal/apierr"
  "github.com/pathlightlabs/universe-backend/internal/logger"
  "github.com/pathlightlabs/universe-backend/internal/repos"
  "github.com/pathlightlabs/universe-backend/internal/types"
)

// CreateUserInput carries the signup payload after binding.
type CreateUserInput struct {
  Nickname             string `json:"nickname"`
  Age                  int    `json:"age"`
  Language             string `json:"language"`
  Country              string `json:"country"`
  PreferredInputMethod string `json:"preferred_input_method"`
}

// CreateUserResult pairs the persisted user with the session token
// handed back to the client.
type CreateUserResult struct {
  User         *types.User
  SessionToken string
}

type UserService interface {
  CreateUser(ctx context.Context, input *CreateUserInput) (*CreateUserResult, error)
  GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
}

type userService struct {
  log      *logger.Logger
  userRepo repos.UserRepo
  auth     AuthService
  gemini   GeminiClient
}

func NewUserService(log *logger.Logger, userRepo repos.UserRepo, auth AuthService, gemini GeminiClient) UserService {
  serviceLog := log.With("service", "UserService")
  return &userService{
    log:      serviceLog,
    userRepo: userRepo,
    auth:     auth,
    gemini:   gemini,
  }
}

func (us *userService) CreateUser(ctx context.Context, input *CreateUserInput) (*CreateUserResult, error) {
  nickname := strings.TrimSpace(input.Nickname)
  if nickname == "" || input.Age == 0 || input.Language == "" {
    return nil, apierr.Validation("Missing required fields: nickname, age, language")
  }
  if input.Age < types.AgeMin || input.Age > types.AgeMax {
    return nil, apierr.Validation("Age must be between %d and %d", types.AgeMin, types.AgeMax)
  }
  if !types.IsSupportedLanguage(input.Language) {
    return nil, apierr.Validation("Language must be one of: %s", strings.Join(types.SupportedLanguages, ", "))
  }

  if !us.gemini.ValidateNickname(ctx, nickname) {
    return nil, apierr.Validation("Nickname contains inappropriate language")
  }

  now := time.Now()
  user := &types.User{
    ID:                   uuid.New(),
    Nickname:             nickname,
    Age:                  input.Age,
    Language:             input.Language,
    Country:              input.Country,
    PreferredInputMethod: input.PreferredInputMethod,
    CreatedAt:            now,
    LastActive:           now,
  }

  created, err := us.userRepo.Create(ctx, nil, user)
  if err != nil {
    us.log.Error("Failed to create user", "error", err)
    return nil, err
  }

  token, err := us.auth.IssueToken(created.ID)
  if err != nil {
    us.log.Error("Failed to issue session token", "user_id", created.ID.String(), "error", err)
    return nil, err
  }

  us.log.Info("User created", "user_id", created.ID.String())
  return &CreateUserResult{User: created, SessionToken: token}, nil
}

func (us *userService) GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
  user, err := us.userRepo.GetByID(ctx, nil, userID)
  if err != nil {
    return nil, err
  }
  if user == nil {
    return nil, apierr.NotFound("User not found")
  }
  return user, nil
}

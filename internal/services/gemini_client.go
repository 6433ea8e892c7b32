package services

import (
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "strings"
  "google.golang.org/genai"
  "github.com/pathlightlabs/universe-backend/internal/apierr"
  "github.com/pathlightlabs/universe-backend/internal/logger"
  "github.com/pathlightlabs/universe-backend/internal/utils"
)

// ChatTurn is one message of a conversation as the adapter sees it.
type ChatTurn struct {
  Role    string
  Content string
}

// TurnResult is the assistant reply for one turn plus opaque
// generation metadata persisted with the message.
type TurnResult struct {
  Content  string
  Metadata map[string]interface{}
}

// ProfileSummary is the client-visible slice of a profile, also used
// as grounding context in recommendation and vision prompts.
type ProfileSummary struct {
  Interests         []string        `json:"interests"`
  Strengths         []string        `json:"strengths"`
  Values            []string        `json:"values"`
  LearningStyle     string          `json:"learning_style,omitempty"`
  MotivationLevel   int             `json:"motivation_level,omitempty"`
  CareerPreferences json.RawMessage `json:"career_preferences,omitempty"`
}

// ProfileAnalysis is the structured extraction from a transcript.
type ProfileAnalysis struct {
  Interests         []string
  Strengths         []string
  Values            []string
  LearningStyle     string
  MotivationLevel   int
  CareerPreferences map[string]interface{}
  MentalHealthFlags []string
  UniqueInsights    string
  Raw               map[string]interface{}
}

// CareerCandidate is one career path as returned by the model.
type CareerCandidate struct {
  CareerName      string   `json:"career_name"`
  Description     string   `json:"description"`
  MatchReason     string   `json:"match_reason"`
  SkillsNeeded    []string `json:"skills_needed"`
  ExampleJobs     []string `json:"example_jobs"`
  EducationPath   string   `json:"education_path"`
  GrowthPotential string   `json:"growth_potential"`
}

// GeminiClient is the single point of contact with the generative
// backend. Every structured call follows the same JSON-extraction
// policy: trim, strip a wrapping code fence, parse; a parse failure is
// a hard error with no retry.
type GeminiClient interface {
  ValidateNickname(ctx context.Context, nickname string) bool
  SendTurn(ctx context.Context, turns []ChatTurn, systemPrompt, language string) (*TurnResult, error)
  GenerateGreeting(ctx context.Context, nickname string, age int, language string) string
  AnalyzeTranscript(ctx context.Context, turns []ChatTurn, language string) (*ProfileAnalysis, error)
  GenerateRecommendations(ctx context.Context, profile *ProfileSummary, language string) ([]*CareerCandidate, error)
  EnrichCustomCareer(ctx context.Context, customName string, profile *ProfileSummary) (*CareerCandidate, error)
  GenerateVisionNarrative(ctx context.Context, style, careerName, exampleJob, language string, profile *ProfileSummary) (map[string]interface{}, error)
}

type geminiClient struct {
  log    *logger.Logger
  client *genai.Client
  model  string
}

// NewGeminiClient builds the adapter. A missing GEMINI_API_KEY leaves
// the client nil and every operation degrades per its own contract;
// startup never fails on this.
func NewGeminiClient(ctx context.Context, log *logger.Logger) GeminiClient {
  clientLog := log.With("service", "GeminiClient")
  model := utils.GetEnv("GEMINI_MODEL", "gemini-3-flash-preview", log)

  apiKey := utils.GetEnv("GEMINI_API_KEY", "", nil)
  if apiKey == "" {
    clientLog.Warn("GEMINI_API_KEY is not set. Gemini features will not work.")
    return &geminiClient{log: clientLog, model: model}
  }

  client, err := genai.NewClient(ctx, &genai.ClientConfig{
    APIKey:  apiKey,
    Backend: genai.BackendGeminiAPI,
  })
  if err != nil {
    clientLog.Warn("Failed to init Gemini client, running degraded", "error", err)
    return &geminiClient{log: clientLog, model: model}
  }

  return &geminiClient{log: clientLog, client: client, model: model}
}

func safetySettings() []*genai.SafetySetting {
  return []*genai.SafetySetting{
    {Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
    {Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
    {Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
    {Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
  }
}

func (gc *geminiClient) generateOnce(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
  contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
  resp, err := gc.client.Models.GenerateContent(ctx, gc.model, contents, cfg)
  if err != nil {
    return "", err
  }
  return resp.Text(), nil
}

// NicknameMinLen and NicknameMaxLen bound the fallback length check
// used when the backend cannot be asked.
const (
  NicknameMinLen = 2
  NicknameMaxLen = 50
)

func nicknameLengthOK(nickname string) bool {
  n := len([]rune(nickname))
  return n >= NicknameMinLen && n <= NicknameMaxLen
}

func (gc *geminiClient) ValidateNickname(ctx context.Context, nickname string) bool {
  if gc.client == nil {
    return nicknameLengthOK(nickname)
  }
  text, err := gc.generateOnce(ctx, buildNicknamePrompt(nickname), nil)
  if err != nil {
    gc.log.Warn("Nickname moderation call failed, falling back to length check", "error", err)
    return nicknameLengthOK(nickname)
  }
  return strings.ToUpper(strings.TrimSpace(text)) == "YES"
}

// trimHistory enforces the chat API contract that history must open
// with a user turn: everything before the first user-authored entry is
// dropped; with no user entry at all the history is empty.
func trimHistory(turns []ChatTurn) []ChatTurn {
  for i, turn := range turns {
    if turn.Role == "user" {
      return turns[i:]
    }
  }
  return nil
}

// historyContents maps stored turns onto Gemini contents. Assistant
// turns carry the "model" role on the wire.
func historyContents(history []ChatTurn) []*genai.Content {
  contents := make([]*genai.Content, 0, len(history)+1)
  for _, turn := range history {
    var role genai.Role = genai.RoleModel
    if turn.Role == "user" {
      role = genai.RoleUser
    }
    contents = append(contents, genai.NewContentFromText(turn.Content, role))
  }
  return contents
}

func (gc *geminiClient) SendTurn(ctx context.Context, turns []ChatTurn, systemPrompt, language string) (*TurnResult, error) {
  if gc.client == nil {
    return nil, apierr.Generation(errors.New("Gemini API is not configured"))
  }
  if len(turns) == 0 {
    return nil, apierr.Validation("no message to send")
  }

  last := turns[len(turns)-1]
  history := trimHistory(turns[:len(turns)-1])

  contents := append(historyContents(history), genai.NewContentFromText(last.Content, genai.RoleUser))

  cfg := &genai.GenerateContentConfig{
    SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
    SafetySettings:    safetySettings(),
  }

  resp, err := gc.client.Models.GenerateContent(ctx, gc.model, contents, cfg)
  if err != nil {
    return nil, apierr.Generation(fmt.Errorf("Gemini API error: %w", err))
  }

  metadata := map[string]interface{}{"model": gc.model}
  if len(resp.Candidates) > 0 {
    metadata["finish_reason"] = string(resp.Candidates[0].FinishReason)
  }

  return &TurnResult{Content: resp.Text(), Metadata: metadata}, nil
}

func (gc *geminiClient) GenerateGreeting(ctx context.Context, nickname string, age int, language string) string {
  if gc.client == nil {
    return FallbackGreeting(nickname, language)
  }
  text, err := gc.generateOnce(ctx, buildGreetingPrompt(nickname, age, language), &genai.GenerateContentConfig{
    SafetySettings: safetySettings(),
  })
  if err != nil {
    gc.log.Warn("Greeting generation failed, using fallback", "error", err)
    return FallbackGreeting(nickname, language)
  }
  return strings.TrimSpace(text)
}

func (gc *geminiClient) AnalyzeTranscript(ctx context.Context, turns []ChatTurn, language string) (*ProfileAnalysis, error) {
  if gc.client == nil {
    return nil, apierr.Generation(errors.New("Gemini API is not configured"))
  }

  text, err := gc.generateOnce(ctx, buildAnalysisPrompt(turns), &genai.GenerateContentConfig{
    SafetySettings: safetySettings(),
  })
  if err != nil {
    return nil, apierr.Generation(fmt.Errorf("Analysis error: %w", err))
  }

  var raw map[string]interface{}
  if err := json.Unmarshal([]byte(stripCodeFence(text)), &raw); err != nil {
    return nil, apierr.Parse(fmt.Errorf("Analysis error: %w", err))
  }

  // Individual fields are extracted defensively: a missing or oddly
  // typed field becomes its zero value, never an error.
  return &ProfileAnalysis{
    Interests:         stringSliceField(raw, "interests"),
    Strengths:         stringSliceField(raw, "strengths"),
    Values:            stringSliceField(raw, "values"),
    LearningStyle:     stringField(raw, "learning_style"),
    MotivationLevel:   intField(raw, "motivation_level"),
    CareerPreferences: mapField(raw, "career_preferences"),
    MentalHealthFlags: stringSliceField(raw, "mental_health_flags"),
    UniqueInsights:    stringField(raw, "unique_insights"),
    Raw:               raw,
  }, nil
}

func (gc *geminiClient) GenerateRecommendations(ctx context.Context, profile *ProfileSummary, language string) ([]*CareerCandidate, error) {
  if gc.client == nil {
    return nil, apierr.Generation(errors.New("Gemini API is not configured"))
  }

  text, err := gc.generateOnce(ctx, buildRecommendationsPrompt(profile, language), &genai.GenerateContentConfig{
    SafetySettings: safetySettings(),
  })
  if err != nil {
    return nil, apierr.Generation(fmt.Errorf("Recommendation error: %w", err))
  }

  var candidates []*CareerCandidate
  if err := json.Unmarshal([]byte(stripCodeFence(text)), &candidates); err != nil {
    return nil, apierr.Parse(fmt.Errorf("Recommendation error: %w", err))
  }

  return candidates, nil
}

func (gc *geminiClient) EnrichCustomCareer(ctx context.Context, customName string, profile *ProfileSummary) (*CareerCandidate, error) {
  if gc.client == nil {
    return nil, apierr.Generation(errors.New("Gemini API is not configured"))
  }

  text, err := gc.generateOnce(ctx, buildCustomCareerPrompt(customName, profile), nil)
  if err != nil {
    return nil, apierr.Generation(fmt.Errorf("Custom career error: %w", err))
  }

  var candidate CareerCandidate
  if err := json.Unmarshal([]byte(stripCodeFence(text)), &candidate); err != nil {
    return nil, apierr.Parse(fmt.Errorf("Custom career error: %w", err))
  }

  return &candidate, nil
}

func (gc *geminiClient) GenerateVisionNarrative(ctx context.Context, style, careerName, exampleJob, language string, profile *ProfileSummary) (map[string]interface{}, error) {
  if gc.client == nil {
    return nil, apierr.Generation(errors.New("Gemini API is not configured"))
  }

  prompt := buildVisionNarrativePrompt(style, careerName, exampleJob, language, profile)
  text, err := gc.generateOnce(ctx, prompt, nil)
  if err != nil {
    return nil, apierr.Generation(fmt.Errorf("Generation failed: %w", err))
  }

  var narrative map[string]interface{}
  if err := json.Unmarshal([]byte(stripCodeFence(text)), &narrative); err != nil {
    return nil, apierr.Parse(fmt.Errorf("Generation failed: %w", err))
  }

  return narrative, nil
}

// ---- defensive field extraction ----

func stringSliceField(m map[string]interface{}, key string) []string {
  out := []string{}
  items, ok := m[key].([]interface{})
  if !ok {
    return out
  }
  for _, item := range items {
    if s, ok := item.(string); ok {
      out = append(out, s)
    }
  }
  return out
}

func stringField(m map[string]interface{}, key string) string {
  s, _ := m[key].(string)
  return s
}

func intField(m map[string]interface{}, key string) int {
  switch v := m[key].(type) {
  case float64:
    return int(v)
  case string:
    var n int
    _, _ = fmt.Sscanf(v, "%d", &n)
    return n
  }
  return 0
}

func mapField(m map[string]interface{}, key string) map[string]interface{} {
  sub, _ := m[key].(map[string]interface{})
  return sub
}

package services

import (
  "context"
  "errors"
  "fmt"
  "github.com/pathlightlabs/universe-backend/internal/apierr"
)

// stubGemini is a canned-response adapter for service tests. Fields
// left nil fall back to simple defaults; setting fail forces the error
// path for every structured call.
type stubGemini struct {
  fail            bool
  nicknameVerdict bool
  turnCalls       int
  recCalls        int
  analysis        *ProfileAnalysis
  candidates      []*CareerCandidate
  custom          *CareerCandidate
  narrative       map[string]interface{}
}

func newStubGemini() *stubGemini {
  return &stubGemini{nicknameVerdict: true}
}

func (s *stubGemini) ValidateNickname(ctx context.Context, nickname string) bool {
  return s.nicknameVerdict
}

func (s *stubGemini) SendTurn(ctx context.Context, turns []ChatTurn, systemPrompt, language string) (*TurnResult, error) {
  if s.fail {
    return nil, apierr.Generation(errors.New("Gemini API is not configured"))
  }
  s.turnCalls++
  return &TurnResult{
    Content:  fmt.Sprintf("That is interesting! Tell me more. (turn %d)", s.turnCalls),
    Metadata: map[string]interface{}{"model": "stub"},
  }, nil
}

func (s *stubGemini) GenerateGreeting(ctx context.Context, nickname string, age int, language string) string {
  return FallbackGreeting(nickname, language)
}

func (s *stubGemini) AnalyzeTranscript(ctx context.Context, turns []ChatTurn, language string) (*ProfileAnalysis, error) {
  if s.fail {
    return nil, apierr.Generation(errors.New("Analysis error: backend down"))
  }
  if s.analysis != nil {
    return s.analysis, nil
  }
  return &ProfileAnalysis{
    Interests:         []string{"marine life", "drawing"},
    Strengths:         []string{"curiosity"},
    Values:            []string{"helping others"},
    LearningStyle:     "visual",
    MotivationLevel:   8,
    CareerPreferences: map[string]interface{}{"work_environment": "outdoor"},
    MentalHealthFlags: []string{},
    UniqueInsights:    "loves the ocean",
    Raw:               map[string]interface{}{"interests": []interface{}{"marine life", "drawing"}},
  }, nil
}

func (s *stubGemini) GenerateRecommendations(ctx context.Context, profile *ProfileSummary, language string) ([]*CareerCandidate, error) {
  if s.fail {
    return nil, apierr.Generation(errors.New("Recommendation error: backend down"))
  }
  s.recCalls++
  if s.candidates != nil {
    return s.candidates, nil
  }
  return []*CareerCandidate{
    {CareerName: "Marine Science", Description: "Study the ocean.", MatchReason: "loves marine life", SkillsNeeded: []string{"biology"}, ExampleJobs: []string{"Oceanographer"}, EducationPath: "University", GrowthPotential: "High"},
    {CareerName: "Illustration", Description: "Draw for a living.", MatchReason: "loves drawing", SkillsNeeded: []string{"art"}, ExampleJobs: []string{"Illustrator"}, EducationPath: "Art school", GrowthPotential: "Medium"},
    {CareerName: "Education", Description: "Teach others.", MatchReason: "helping others", SkillsNeeded: []string{"communication"}, ExampleJobs: []string{"Teacher"}, EducationPath: "University", GrowthPotential: "Steady"},
  }, nil
}

func (s *stubGemini) EnrichCustomCareer(ctx context.Context, customName string, profile *ProfileSummary) (*CareerCandidate, error) {
  if s.fail {
    return nil, apierr.Generation(errors.New("Custom career error: backend down"))
  }
  if s.custom != nil {
    return s.custom, nil
  }
  return &CareerCandidate{
    CareerName:      customName,
    Description:     "A realistic path.",
    MatchReason:     "self-chosen",
    SkillsNeeded:    []string{"dedication"},
    ExampleJobs:     []string{customName},
    EducationPath:   "University",
    GrowthPotential: "High",
  }, nil
}

func (s *stubGemini) GenerateVisionNarrative(ctx context.Context, style, careerName, exampleJob, language string, profile *ProfileSummary) (map[string]interface{}, error) {
  if s.fail {
    return nil, apierr.Generation(errors.New("Generation failed: backend down"))
  }
  if s.narrative != nil {
    return s.narrative, nil
  }
  return map[string]interface{}{
    "title":        "Future " + careerName,
    "year":         VisionFutureYear,
    "role":         exampleJob,
    "company":      "Blue Horizon Labs",
    "description":  "A day in the life.",
    "achievements": []interface{}{"a", "b", "c"},
    "quote":        "Keep going.",
    "milestones": []interface{}{
      map[string]interface{}{"year": "2028", "event": "graduates"},
    },
    "daily_life": "Busy and happy.",
  }, nil
}

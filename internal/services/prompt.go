package services

import (
  "encoding/json"
  "fmt"
  "strings"
)

// languageNames maps supported language codes to the display names
// embedded into prompts. Unknown codes fall back to English.
var languageNames = map[string]string{
  "ko": "Korean",
  "en": "English",
  "es": "Spanish",
  "ja": "Japanese",
}

func languageName(code string) string {
  if name, ok := languageNames[code]; ok {
    return name
  }
  return "English"
}

// BuildSystemPrompt returns the counselor persona instruction for a
// conversation turn. Pure function of language and age.
func BuildSystemPrompt(language string, age int) string {
  return fmt.Sprintf(`You are a warm, supportive, and insightful career counselor for teenagers aged 10-17 worldwide. Your mission is to help them discover multiple possibilities for their future through thoughtful conversation.

CORE PRINCIPLES:
1. Every teen has unlimited potential - never limit their dreams
2. There is no single "right" path - embrace diverse possibilities
3. Treat all responses with respect and genuine curiosity
4. Avoid ALL stereotypes (gender, religion, disability, appearance, etc.)
5. Focus on strengths, interests, and values - not limitations
6. Maintain age-appropriate, encouraging tone
7. Detect and address mental health concerns with care

CONVERSATION APPROACH:
- Start with simple, friendly questions to build trust
- Gradually deepen into interests, talents, values
- Use open-ended questions that invite elaboration
- Acknowledge and validate all responses positively
- Ask follow-up questions based on their answers
- Explore "why" behind their interests
- Discover what energizes them
- Understand their learning preferences

SAFETY & WELLBEING:
- Watch for signs of: persistent self-criticism, hopelessness, self-harm mentions, extreme anxiety/depression
- If detected, respond with: "Thank you for sharing that with me. These feelings are important. I think talking with a professional counselor could really help. Here are some resources: [provide local crisis hotlines]"
- Never dismiss or minimize serious concerns
- Always prioritize the teen's mental health over career exploration

PROHIBITED CONSIDERATIONS:
- Gender (do not assume careers based on gender)
- Religion or cultural background
- Disability or accessibility needs (provide support, but don't limit career options)
- Appearance
- Socioeconomic status
- Input method (voice vs text is preference, not ability)

IMPORTANT: Respond in %s. The user is %d years old. Adjust your language complexity accordingly.`, languageName(language), age)
}

var fallbackGreetings = map[string]string{
  "ko": "안녕 %s! 난 너의 패스파인더야. 너의 미래를 함께 탐험해볼까?",
  "en": "Hello %s! I'm your Pathfinder. Shall we explore your future together?",
  "es": "¡Hola %s! Soy tu Pathfinder. ¿Exploramos tu futuro juntos?",
  "ja": "こんにちは、%s！私はあなたのパスファインダーです。一緒に未来を探検しましょうか？",
}

// FallbackGreeting is the hardcoded per-language greeting used when the
// generation backend is unavailable, so conversation start never fails.
func FallbackGreeting(nickname, language string) string {
  format, ok := fallbackGreetings[language]
  if !ok {
    format = fallbackGreetings["ja"]
  }
  return fmt.Sprintf(format, nickname)
}

func buildGreetingPrompt(nickname string, age int, language string) string {
  persona := `You are a warm, supportive career counselor for teenagers. Your name is "Pathfinder"`
  if language == "ko" {
    persona += ` (패스파인더)`
  }
  langName := languageName(language)
  example := FallbackGreeting(nickname, language)
  return fmt.Sprintf(`%s.

The user's name is "%s" and they are %d years old.

Generate a friendly greeting in %s ONLY. Do NOT include any other languages.

Example: "%s"

Keep it warm, friendly, and age-appropriate. Respond ONLY with the greeting message in %s, nothing else.`, persona, nickname, age, langName, example, langName)
}

func buildNicknamePrompt(nickname string) string {
  return fmt.Sprintf(`Is the following nickname appropriate for a teenager (age 10-17)?
Respond with only "YES" or "NO".
Nickname: "%s"`, nickname)
}

func buildAnalysisPrompt(turns []ChatTurn) string {
  lines := make([]string, 0, len(turns))
  for _, turn := range turns {
    lines = append(lines, fmt.Sprintf("%s: %s", turn.Role, turn.Content))
  }
  conversationText := strings.Join(lines, "\n\n")

  return fmt.Sprintf(`Analyze this career counseling conversation and provide a JSON analysis.

Conversation:
%s

Provide analysis in this JSON format:
{
  "interests": ["list of identified interests"],
  "strengths": ["list of strengths/talents"],
  "values": ["core values"],
  "learning_style": "visual/auditory/kinesthetic/mixed",
  "motivation_level": 1-10,
  "career_preferences": {
    "work_environment": "solo/team/outdoor/indoor/flexible",
    "interaction_level": "people-focused/task-focused/balanced",
    "creativity_vs_structure": "creative/structured/balanced"
  },
  "mental_health_flags": ["any concerns"],
  "unique_insights": "special notes"
}

Respond ONLY with valid JSON, no additional text.`, conversationText)
}

func buildRecommendationsPrompt(profile *ProfileSummary, language string) string {
  profileJSON, _ := json.MarshalIndent(profile, "", "  ")
  return fmt.Sprintf(`Based on this user profile, suggest 3 diverse career paths:

Profile:
%s

For each career path, provide:
- Career name (in %s)
- Brief description (2-3 sentences, teenager-friendly)
- Why it matches the user's profile
- Key skills needed
- Example jobs within this path
- Required education/qualifications
- Growth potential

Output format: JSON array with this structure:
[
  {
    "career_name": "...",
    "description": "...",
    "match_reason": "...",
    "skills_needed": ["..."],
    "example_jobs": ["..."],
    "education_path": "...",
    "growth_potential": "..."
  }
]

Respond ONLY with valid JSON array, no additional text.`, string(profileJSON), language)
}

func buildCustomCareerPrompt(customName string, profile *ProfileSummary) string {
  grounding, _ := json.Marshal(map[string]interface{}{
    "interests": profile.Interests,
    "strengths": profile.Strengths,
    "values":    profile.Values,
  })
  return fmt.Sprintf(`User entered custom career path: "%s"

Please provide details similar to AI recommendations:
1. Validate if this is a realistic career path
2. Provide description (2-3 sentences, teenager-friendly)
3. Suggest why it might match the user's profile
4. List key skills needed
5. Suggest related jobs and qualifications
6. Provide education path
7. Growth potential

User profile:
%s

Output JSON format:
{
  "career_name": "%s",
  "description": "...",
  "match_reason": "...",
  "skills_needed": ["..."],
  "example_jobs": ["..."],
  "education_path": "...",
  "growth_potential": "..."
}

Respond ONLY with valid JSON, no additional text.`, customName, string(grounding), customName)
}

// VisionFutureYear is the fixed year every vision narrative is set in.
const VisionFutureYear = "2040"

// BuildVisionStylePrompt returns the style-specific visual framing for
// a vision board. This is the prompt persisted alongside the record.
func BuildVisionStylePrompt(style, careerName, exampleJob string) string {
  switch style {
  case "id_badge":
    return fmt.Sprintf(`Create a professional employee ID badge in the style of a modern tech company.

Style: Clean, modern, professional
Layout: Standard ID badge format (portrait orientation)
Elements to include:
- A professional-looking person in professional attire
- Company name related to: %s
- Job title: %s
- Futuristic year: %s
- Professional design with company logo
- Barcode or QR code for authenticity
- Clean typography, corporate colors

The person should look confident, professional, and happy.
Positive, aspirational, encouraging mood.
High quality, photorealistic rendering.`, careerName, exampleJob, VisionFutureYear)
  case "achievement":
    return fmt.Sprintf(`Create an inspirational scene of professional achievement.

Scene: Award ceremony or recognition event
Person's achievement: Excellence in %s
Setting: Professional conference or gala event
Year: %s

Scene elements:
- A young professional receiving award or recognition
- Confident, proud posture
- Professional formal attire
- Award trophy or certificate visible
- Audience or colleagues applauding in background
- Stage with professional lighting
- Inspirational, celebratory atmosphere

The person should look proud, accomplished, and grateful.
Positive, uplifting mood that inspires teenagers.
Photorealistic, high-quality rendering.`, careerName, VisionFutureYear)
  default:
    return fmt.Sprintf(`Create a professional magazine cover featuring a successful young professional.

Magazine theme: %s industry publication
Person's role: Rising star in %s
Year: %s

Cover elements:
- A confident young professional in a professional setting appropriate for the career
- Magazine masthead (e.g., "Future Innovators", "Change Makers")
- Main headline: "The Future of %s"
- Subheadline highlighting their achievement
- Clean, modern magazine layout
- Professional photography style
- Positive, aspirational mood

The person should look accomplished, confident, and inspiring.
Setting should reflect their career field.
High quality, editorial photography style.`, careerName, exampleJob, VisionFutureYear, careerName)
  }
}

var visionStyleLabels = map[string]string{
  "id_badge":       "Employee ID Badge",
  "magazine_cover": "Magazine Cover",
  "achievement":    "Achievement Scene",
}

func buildVisionNarrativePrompt(style, careerName, exampleJob, language string, profile *ProfileSummary) string {
  label, ok := visionStyleLabels[style]
  if !ok {
    label = visionStyleLabels["magazine_cover"]
  }
  return fmt.Sprintf(`You are creating a vision board for a teenager who wants to pursue a career in "%s".

The style is: %s

Create an inspiring, detailed vision board description in %s.

Include:
1. A vivid description of what the person looks like in this role (%s)
2. Their achievements and accomplishments
3. A motivational quote or message
4. Key milestones on their path to success
5. What their typical work day looks like

User profile:
- Interests: %s
- Strengths: %s
- Values: %s

Respond in JSON format:
{
  "title": "Vision board title",
  "year": "%s",
  "role": "%s",
  "company": "A fictional inspiring company name",
  "description": "Vivid description of future success",
  "achievements": ["achievement 1", "achievement 2", "achievement 3"],
  "quote": "An inspirational quote",
  "milestones": [
    {"year": "2028", "event": "milestone description"},
    {"year": "2032", "event": "milestone description"},
    {"year": "%s", "event": "milestone description"}
  ],
  "daily_life": "Description of a typical work day"
}

Respond ONLY with valid JSON.`,
    careerName, label, languageName(language), exampleJob,
    strings.Join(profile.Interests, ", "),
    strings.Join(profile.Strengths, ", "),
    strings.Join(profile.Values, ", "),
    VisionFutureYear, exampleJob, VisionFutureYear)
}

// stripCodeFence removes a wrapping markdown code fence from model
// output before JSON parsing. Applied to every structured call.
func stripCodeFence(text string) string {
  trimmed := strings.TrimSpace(text)
  if !strings.HasPrefix(trimmed, "```") {
    return trimmed
  }
  trimmed = strings.ReplaceAll(trimmed, "```json\n", "")
  trimmed = strings.ReplaceAll(trimmed, "```json", "")
  trimmed = strings.ReplaceAll(trimmed, "```\n", "")
  trimmed = strings.ReplaceAll(trimmed, "```", "")
  return strings.TrimSpace(trimmed)
}

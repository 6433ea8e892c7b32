package services

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pathlightlabs/universe-backend/internal/apierr"
	"github.com/pathlightlabs/universe-backend/internal/logger"
	"github.com/pathlightlabs/universe-backend/internal/repos"
	"github.com/pathlightlabs/universe-backend/internal/types"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	return log
}

type testEnv struct {
	log         *logger.Logger
	gemini      *stubGemini
	userRepo    repos.UserRepo
	sessionRepo repos.ConversationSessionRepo
	messageRepo repos.ConversationMessageRepo
	profileRepo repos.UserProfileRepo
	recRepo     repos.CareerRecommendationRepo
	imageRepo   repos.VisionBoardImageRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := repos.NewMemoryStore()
	return &testEnv{
		log:         newTestLogger(t),
		gemini:      newStubGemini(),
		userRepo:    repos.NewMemoryUserRepo(store),
		sessionRepo: repos.NewMemoryConversationSessionRepo(store),
		messageRepo: repos.NewMemoryConversationMessageRepo(store),
		profileRepo: repos.NewMemoryUserProfileRepo(store),
		recRepo:     repos.NewMemoryCareerRecommendationRepo(store),
		imageRepo:   repos.NewMemoryVisionBoardImageRepo(store),
	}
}

func (e *testEnv) createUser(t *testing.T, nickname, language string, age int) *types.User {
	t.Helper()
	now := time.Now()
	user := &types.User{
		ID:         uuid.New(),
		Nickname:   nickname,
		Age:        age,
		Language:   language,
		CreatedAt:  now,
		LastActive: now,
	}
	if _, err := e.userRepo.Create(context.Background(), nil, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestProgressScoreProperties(t *testing.T) {
	if got := progressScore(0); got != 0 {
		t.Fatalf("progress at 0 messages = %v, want 0", got)
	}

	prev := 0.0
	for n := int64(1); n <= 100; n++ {
		score := progressScore(n)
		if score < prev {
			t.Fatalf("progress decreased at %d messages: %v < %v", n, score, prev)
		}
		if score > CompletionThreshold {
			t.Fatalf("progress exceeded threshold at %d messages: %v", n, score)
		}
		prev = score
	}

	// sqrt(36/40) ≈ 0.9487 is just below the cap; 37 crosses it.
	if progressScore(36) >= CompletionThreshold {
		t.Fatalf("progress at 36 messages should still be below threshold")
	}
	if got := progressScore(37); got != CompletionThreshold {
		t.Fatalf("progress at 37 messages = %v, want %v", got, CompletionThreshold)
	}
	if got := progressScore(39); got != CompletionThreshold {
		t.Fatalf("progress at 39 messages = %v, want %v", got, CompletionThreshold)
	}

	// Below the cap the curve is the plain square root.
	want := math.Sqrt(10.0 / 40.0)
	if got := progressScore(10); math.Abs(got-want) > 1e-9 {
		t.Fatalf("progress at 10 messages = %v, want %v", got, want)
	}
}

func TestStartSessionPersistsGreeting(t *testing.T) {
	env := newTestEnv(t)
	svc := NewConversationService(env.log, env.userRepo, env.sessionRepo, env.messageRepo, env.gemini)
	user := env.createUser(t, "Mika", "en", 14)

	result, err := svc.StartSession(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if result.Session.Status != types.SessionInProgress {
		t.Fatalf("session status = %q", result.Session.Status)
	}
	if result.Session.Language != "en" {
		t.Fatalf("session language = %q, want user's language", result.Session.Language)
	}
	if result.Greeting.Role != types.RoleAssistant {
		t.Fatalf("greeting role = %q", result.Greeting.Role)
	}
	if len(result.Segments) == 0 {
		t.Fatalf("greeting must be segmented")
	}
	if result.SegmentDelayMS != SegmentRevealDelayMS {
		t.Fatalf("segment delay = %d", result.SegmentDelayMS)
	}

	messages, err := env.messageRepo.ListBySession(context.Background(), nil, result.Session.ID)
	if err != nil {
		t.Fatalf("ListBySession: %v", err)
	}
	if len(messages) != 1 || messages[0].Role != types.RoleAssistant {
		t.Fatalf("expected one persisted assistant message, got %d", len(messages))
	}
}

func TestStartSessionUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	svc := NewConversationService(env.log, env.userRepo, env.sessionRepo, env.messageRepo, env.gemini)

	_, err := svc.StartSession(context.Background(), uuid.New())
	if err == nil || apierr.StatusOf(err) != 404 {
		t.Fatalf("expected 404 for unknown user, got %v", err)
	}
}

func TestPostUserMessageAppendsBothTurns(t *testing.T) {
	env := newTestEnv(t)
	svc := NewConversationService(env.log, env.userRepo, env.sessionRepo, env.messageRepo, env.gemini)
	user := env.createUser(t, "Mika", "en", 14)

	started, err := svc.StartSession(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	result, err := svc.PostUserMessage(context.Background(), user.ID, started.Session.ID, "I love the ocean!", "")
	if err != nil {
		t.Fatalf("PostUserMessage: %v", err)
	}
	if result.Reply.Role != types.RoleAssistant {
		t.Fatalf("reply role = %q", result.Reply.Role)
	}
	// greeting + user + assistant
	if result.TotalMessageCount != 3 {
		t.Fatalf("total message count = %d, want 3", result.TotalMessageCount)
	}
	if result.ProgressScore != progressScore(3) {
		t.Fatalf("progress = %v, want %v", result.ProgressScore, progressScore(3))
	}
	if result.ReadyForAnalysis {
		t.Fatalf("3 messages should not be ready for analysis")
	}

	messages, _ := env.messageRepo.ListBySession(context.Background(), nil, started.Session.ID)
	if len(messages) != 3 {
		t.Fatalf("persisted %d messages, want 3", len(messages))
	}
	if messages[1].InputMethod != "text" {
		t.Fatalf("blank input method should default to text, got %q", messages[1].InputMethod)
	}
}

func TestPostUserMessageValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewConversationService(env.log, env.userRepo, env.sessionRepo, env.messageRepo, env.gemini)
	user := env.createUser(t, "Mika", "en", 14)
	started, _ := svc.StartSession(context.Background(), user.ID)

	if _, err := svc.PostUserMessage(context.Background(), user.ID, started.Session.ID, "   ", ""); apierr.StatusOf(err) != 400 {
		t.Fatalf("blank content should be 400, got %v", err)
	}

	if _, err := svc.PostUserMessage(context.Background(), user.ID, uuid.New(), "hello", ""); apierr.StatusOf(err) != 404 {
		t.Fatalf("unknown session should be 404, got %v", err)
	}

	other := env.createUser(t, "Alex", "en", 15)
	if _, err := svc.PostUserMessage(context.Background(), other.ID, started.Session.ID, "hello", ""); apierr.StatusOf(err) != 404 {
		t.Fatalf("other user's session should read as 404, got %v", err)
	}
}

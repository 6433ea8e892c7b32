package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pathlightlabs/universe-backend/internal/apierr"
	"github.com/pathlightlabs/universe-backend/internal/types"
)

func startSessionWithChat(t *testing.T, env *testEnv, user *types.User) *types.ConversationSession {
	t.Helper()
	convSvc := NewConversationService(env.log, env.userRepo, env.sessionRepo, env.messageRepo, env.gemini)
	started, err := convSvc.StartSession(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if _, err := convSvc.PostUserMessage(context.Background(), user.ID, started.Session.ID, "I love drawing sea creatures", ""); err != nil {
		t.Fatalf("PostUserMessage: %v", err)
	}
	return started.Session
}

func TestAnalyzeSessionPersistsProfileAndCompletesSession(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAnalysisService(env.log, env.sessionRepo, env.messageRepo, env.profileRepo, env.gemini)
	user := env.createUser(t, "Mika", "en", 14)
	session := startSessionWithChat(t, env, user)

	profile, err := svc.AnalyzeSession(context.Background(), user.ID, session.ID)
	if err != nil {
		t.Fatalf("AnalyzeSession: %v", err)
	}
	if profile.UserID != user.ID {
		t.Fatalf("profile owner = %v", profile.UserID)
	}
	if profile.SessionID == nil || *profile.SessionID != session.ID {
		t.Fatalf("profile must record the originating session")
	}

	var interests []string
	if err := json.Unmarshal(profile.Interests, &interests); err != nil || len(interests) == 0 {
		t.Fatalf("interests not persisted as JSON array: %v %v", interests, err)
	}

	// Sensitive fields are persisted for counselors but must not appear
	// in the profile's client serialization.
	if len(profile.MentalHealthFlags) == 0 {
		t.Fatalf("mental health flags must be persisted")
	}
	if len(profile.AnalysisRaw) == 0 {
		t.Fatalf("raw analysis must be persisted")
	}
	serialized, err := json.Marshal(profile)
	if err != nil {
		t.Fatalf("marshal profile: %v", err)
	}
	var asMap map[string]interface{}
	if err := json.Unmarshal(serialized, &asMap); err != nil {
		t.Fatalf("unmarshal profile: %v", err)
	}
	if _, ok := asMap["mental_health_flags"]; ok {
		t.Fatalf("mental_health_flags leaked into serialization")
	}
	if _, ok := asMap["analysis_raw"]; ok {
		t.Fatalf("analysis_raw leaked into serialization")
	}

	stored, err := env.sessionRepo.GetByIDForUser(context.Background(), nil, session.ID, user.ID)
	if err != nil || stored == nil {
		t.Fatalf("session lookup: %v", err)
	}
	if stored.Status != types.SessionCompleted || stored.CompletedAt == nil {
		t.Fatalf("session must transition to completed, got %q", stored.Status)
	}
}

func TestAnalyzeSessionOwnership(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAnalysisService(env.log, env.sessionRepo, env.messageRepo, env.profileRepo, env.gemini)
	user := env.createUser(t, "Mika", "en", 14)
	session := startSessionWithChat(t, env, user)

	intruder := env.createUser(t, "Alex", "en", 16)
	_, err := svc.AnalyzeSession(context.Background(), intruder.ID, session.ID)
	if apierr.StatusOf(err) != 404 {
		t.Fatalf("foreign session should read as 404, got %v", err)
	}
}

func TestAnalyzeSessionDefaultsMissingFields(t *testing.T) {
	env := newTestEnv(t)
	env.gemini.analysis = &ProfileAnalysis{
		Raw: map[string]interface{}{},
	}
	svc := NewAnalysisService(env.log, env.sessionRepo, env.messageRepo, env.profileRepo, env.gemini)
	user := env.createUser(t, "Mika", "en", 14)
	session := startSessionWithChat(t, env, user)

	profile, err := svc.AnalyzeSession(context.Background(), user.ID, session.ID)
	if err != nil {
		t.Fatalf("AnalyzeSession with empty extraction must not fail: %v", err)
	}
	summary := summaryFromProfile(profile)
	if summary.Interests == nil || summary.Strengths == nil || summary.Values == nil {
		t.Fatalf("missing fields must default to empty slices, got %+v", summary)
	}
}

func TestAnalyzeSessionGenerationFailurePersistsNothing(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Mika", "en", 14)
	session := startSessionWithChat(t, env, user)
	env.gemini.fail = true

	svc := NewAnalysisService(env.log, env.sessionRepo, env.messageRepo, env.profileRepo, env.gemini)
	_, err := svc.AnalyzeSession(context.Background(), user.ID, session.ID)
	if apierr.StatusOf(err) != 500 {
		t.Fatalf("backend failure should surface as 500, got %v", err)
	}

	stored, _ := env.sessionRepo.GetByIDForUser(context.Background(), nil, session.ID, user.ID)
	if stored.Status != types.SessionInProgress {
		t.Fatalf("failed analysis must not complete the session")
	}
}

package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pathlightlabs/universe-backend/internal/apierr"
	"github.com/pathlightlabs/universe-backend/internal/types"
)

func createProfile(t *testing.T, env *testEnv, user *types.User) *types.UserProfile {
	t.Helper()
	profile := &types.UserProfile{
		ID:        uuid.New(),
		UserID:    user.ID,
		Interests: marshalJSON([]string{"marine life"}),
		Strengths: marshalJSON([]string{"curiosity"}),
		Values:    marshalJSON([]string{"helping others"}),
		CreatedAt: time.Now(),
	}
	if _, err := env.profileRepo.Create(context.Background(), nil, profile); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	return profile
}

func TestGetOrCreateRecommendationsGeneratesOnceWithOrder(t *testing.T) {
	env := newTestEnv(t)
	svc := NewRecommendationService(env.log, env.userRepo, env.profileRepo, env.recRepo, env.gemini)
	user := env.createUser(t, "Mika", "en", 14)
	profile := createProfile(t, env, user)

	first, err := svc.GetOrCreateRecommendations(context.Background(), user.ID, profile.ID)
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if len(first) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(first))
	}
	for i, rec := range first {
		if rec.DisplayOrder != i+1 {
			t.Fatalf("recommendation %d has display order %d", i, rec.DisplayOrder)
		}
		wantPath := "path_" + string(rune('1'+i))
		if rec.CareerPathID != wantPath {
			t.Fatalf("recommendation %d path id = %q, want %q", i, rec.CareerPathID, wantPath)
		}
		if rec.IsCustom {
			t.Fatalf("generated recommendation %d marked custom", i)
		}
	}

	second, err := svc.GetOrCreateRecommendations(context.Background(), user.ID, profile.ID)
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if len(second) != 3 {
		t.Fatalf("second fetch returned %d recommendations, want the stored 3", len(second))
	}
	if env.gemini.recCalls != 1 {
		t.Fatalf("generation ran %d times, want 1", env.gemini.recCalls)
	}
}

func TestGetOrCreateRecommendationsOwnership(t *testing.T) {
	env := newTestEnv(t)
	svc := NewRecommendationService(env.log, env.userRepo, env.profileRepo, env.recRepo, env.gemini)
	user := env.createUser(t, "Mika", "en", 14)
	profile := createProfile(t, env, user)

	intruder := env.createUser(t, "Alex", "en", 16)
	_, err := svc.GetOrCreateRecommendations(context.Background(), intruder.ID, profile.ID)
	if apierr.StatusOf(err) != 404 {
		t.Fatalf("foreign profile should read as 404, got %v", err)
	}
}

func TestAddCustomCareerAppendsAfterGenerated(t *testing.T) {
	env := newTestEnv(t)
	svc := NewRecommendationService(env.log, env.userRepo, env.profileRepo, env.recRepo, env.gemini)
	user := env.createUser(t, "Mika", "en", 14)
	profile := createProfile(t, env, user)

	if _, err := svc.GetOrCreateRecommendations(context.Background(), user.ID, profile.ID); err != nil {
		t.Fatalf("seed recommendations: %v", err)
	}

	rec, err := svc.AddCustomCareer(context.Background(), user.ID, profile.ID, "Marine Biologist")
	if err != nil {
		t.Fatalf("AddCustomCareer: %v", err)
	}
	if rec.DisplayOrder != 4 {
		t.Fatalf("custom career display order = %d, want 4", rec.DisplayOrder)
	}
	if !rec.IsCustom {
		t.Fatalf("custom career must be flagged isCustom")
	}
	if !strings.HasPrefix(rec.CareerPathID, "custom_") {
		t.Fatalf("custom path id = %q", rec.CareerPathID)
	}
	if rec.CareerName != "Marine Biologist" {
		t.Fatalf("career name = %q", rec.CareerName)
	}
}

func TestAddCustomCareerOnEmptyProfileStartsAtOne(t *testing.T) {
	env := newTestEnv(t)
	svc := NewRecommendationService(env.log, env.userRepo, env.profileRepo, env.recRepo, env.gemini)
	user := env.createUser(t, "Mika", "en", 14)
	profile := createProfile(t, env, user)

	rec, err := svc.AddCustomCareer(context.Background(), user.ID, profile.ID, "Astronaut")
	if err != nil {
		t.Fatalf("AddCustomCareer: %v", err)
	}
	if rec.DisplayOrder != 1 {
		t.Fatalf("display order on empty profile = %d, want 1", rec.DisplayOrder)
	}
}

func TestAddCustomCareerValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewRecommendationService(env.log, env.userRepo, env.profileRepo, env.recRepo, env.gemini)
	user := env.createUser(t, "Mika", "en", 14)
	profile := createProfile(t, env, user)

	if _, err := svc.AddCustomCareer(context.Background(), user.ID, profile.ID, "  "); apierr.StatusOf(err) != 400 {
		t.Fatalf("blank name should be 400, got %v", err)
	}
	if _, err := svc.AddCustomCareer(context.Background(), user.ID, uuid.New(), "Pilot"); apierr.StatusOf(err) != 404 {
		t.Fatalf("unknown profile should be 404, got %v", err)
	}
}

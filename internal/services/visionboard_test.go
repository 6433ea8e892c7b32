package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pathlightlabs/universe-backend/internal/apierr"
	"github.com/pathlightlabs/universe-backend/internal/types"
)

func seedRecommendation(t *testing.T, env *testEnv, user *types.User) (*types.UserProfile, *types.CareerRecommendation) {
	t.Helper()
	profile := createProfile(t, env, user)
	recSvc := NewRecommendationService(env.log, env.userRepo, env.profileRepo, env.recRepo, env.gemini)
	recs, err := recSvc.GetOrCreateRecommendations(context.Background(), user.ID, profile.ID)
	if err != nil {
		t.Fatalf("seed recommendations: %v", err)
	}
	return profile, recs[0]
}

func newVisionService(env *testEnv) VisionBoardService {
	return NewVisionBoardService(env.log, env.userRepo, env.profileRepo, env.recRepo, env.imageRepo, env.gemini)
}

func TestVisionBoardGeneratePersistsNarrative(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Mika", "en", 14)
	_, rec := seedRecommendation(t, env, user)
	svc := newVisionService(env)

	view, err := svc.Generate(context.Background(), user.ID, rec.ID, "magazine_cover")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if view.Image.Style != "magazine_cover" {
		t.Fatalf("style = %q", view.Image.Style)
	}
	if view.CareerName != rec.CareerName {
		t.Fatalf("career name = %q, want %q", view.CareerName, rec.CareerName)
	}
	if view.Narrative["title"] == nil {
		t.Fatalf("narrative missing title: %v", view.Narrative)
	}
	if view.Image.Prompt == "" {
		t.Fatalf("style prompt must be persisted")
	}
	if !view.Image.SafetyCheckPassed {
		t.Fatalf("safety check flag must be set")
	}

	stored, err := svc.Get(context.Background(), user.ID, view.Image.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.Narrative["title"] != view.Narrative["title"] {
		t.Fatalf("round-tripped narrative differs")
	}
}

func TestVisionBoardGenerateDefaultsStyle(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Mika", "en", 14)
	_, rec := seedRecommendation(t, env, user)
	svc := newVisionService(env)

	view, err := svc.Generate(context.Background(), user.ID, rec.ID, "")
	if err != nil {
		t.Fatalf("Generate with empty style: %v", err)
	}
	if view.Image.Style != types.VisionStyleMagazineCover {
		t.Fatalf("empty style should default to magazine_cover, got %q", view.Image.Style)
	}
}

func TestVisionBoardGenerateRejectsInvalidStyle(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Mika", "en", 14)
	_, rec := seedRecommendation(t, env, user)
	svc := newVisionService(env)

	_, err := svc.Generate(context.Background(), user.ID, rec.ID, "hologram")
	if apierr.StatusOf(err) != 400 {
		t.Fatalf("invalid style should be 400, got %v", err)
	}

	views, _ := svc.ListForUser(context.Background(), user.ID)
	if len(views) != 0 {
		t.Fatalf("rejected generate must not persist a record")
	}
}

func TestVisionBoardGenerateOwnership(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Mika", "en", 14)
	_, rec := seedRecommendation(t, env, user)
	svc := newVisionService(env)

	intruder := env.createUser(t, "Alex", "en", 16)
	_, err := svc.Generate(context.Background(), intruder.ID, rec.ID, "id_badge")
	if apierr.StatusOf(err) != 403 {
		t.Fatalf("foreign recommendation should be 403, got %v", err)
	}

	_, err = svc.Generate(context.Background(), user.ID, uuid.New(), "id_badge")
	if apierr.StatusOf(err) != 404 {
		t.Fatalf("unknown recommendation should be 404, got %v", err)
	}
}

func TestDecodeNarrativeFallsBackToDescription(t *testing.T) {
	cases := []struct {
		name   string
		stored string
		key    string
	}{
		{name: "valid_json", stored: `{"title":"My Future"}`, key: "title"},
		{name: "plain_text", stored: "a hopeful story about the sea", key: "description"},
		{name: "json_scalar", stored: `"just a string"`, key: "description"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := decodeNarrative(tc.stored)
			if _, ok := got[tc.key]; !ok {
				t.Fatalf("decodeNarrative(%q) missing key %q: %v", tc.stored, tc.key, got)
			}
		})
	}
}

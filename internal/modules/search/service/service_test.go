package service

import (
	"context"
	"errors"
	"testing"

	"anoa.com/fitquest/internal/entity"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

func TestSearchWithoutClientIsUnavailable(t *testing.T) {
	svc := NewSearchService(nil, nil, nil, nil)

	if _, err := svc.SearchCatalog(context.Background(), "smoothie", 5); !errors.Is(err, ErrUnavailable) {
		t.Errorf("SearchCatalog err = %v, want ErrUnavailable", err)
	}
	if err := svc.SyncCatalog(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("SyncCatalog err = %v, want ErrUnavailable", err)
	}
}

func TestCatalogDocuments(t *testing.T) {
	s := &searchService{sanitizer: bluemonday.StrictPolicy(), log: zap.NewNop()}

	doc := s.achievementDoc(entity.Achievement{
		ID: "diet_streak_7", Name: "Clean Plate", Icon: "🥗", BonusPoints: 70,
		Description: "<p>Log meals</p><p>7 days &amp; counting</p>",
	})
	if doc.Kind != KindAchievement || doc.Points != 70 || !doc.Active {
		t.Errorf("achievement doc = %+v", doc)
	}
	if doc.Description != "Log meals 7 days & counting" {
		t.Errorf("description = %q", doc.Description)
	}

	id := uuid.New()
	reward := s.rewardDoc(entity.Reward{ID: id, Name: "Gym T-shirt", PointsCost: 800, IsActive: false})
	if reward.ID != id.String() || reward.Kind != KindReward || reward.Points != 800 || reward.Active {
		t.Errorf("reward doc = %+v", reward)
	}
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"

	"anoa.com/fitquest/internal/entity"
	achievementRepo "anoa.com/fitquest/internal/modules/achievement/repository"
	rewardRepo "anoa.com/fitquest/internal/modules/reward/repository"
	searchDto "anoa.com/fitquest/internal/modules/search/dto"
	"anoa.com/fitquest/pkg/apperror"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

const (
	IndexAchievements = "achievements"
	IndexRewards      = "rewards"

	KindAchievement = "achievement"
	KindReward      = "reward"

	defaultLimit = 10
)

var ErrUnavailable = apperror.New(http.StatusServiceUnavailable, "catalog search is not configured", nil)

type SearchService interface {
	// SyncCatalog pushes the achievement catalog and the rewards to the search engine.
	SyncCatalog(ctx context.Context) error
	SearchCatalog(ctx context.Context, query string, limit int) (*searchDto.SearchResponse, error)
}

type searchService struct {
	client          meilisearch.ServiceManager
	achievementRepo achievementRepo.AchievementRepository
	rewardRepo      rewardRepo.RewardRepository
	sanitizer       *bluemonday.Policy
	log             *zap.Logger
}

// NewSearchService accepts a nil client; every call then returns ErrUnavailable.
func NewSearchService(client meilisearch.ServiceManager, achievementRepo achievementRepo.AchievementRepository, rewardRepo rewardRepo.RewardRepository, log *zap.Logger) SearchService {
	if log == nil {
		log = zap.NewNop()
	}
	return &searchService{
		client:          client,
		achievementRepo: achievementRepo,
		rewardRepo:      rewardRepo,
		sanitizer:       bluemonday.StrictPolicy(),
		log:             log,
	}
}

func (s *searchService) SyncCatalog(ctx context.Context) error {
	if s.client == nil {
		return ErrUnavailable
	}

	achievements, err := s.achievementRepo.ListCatalog(ctx)
	if err != nil {
		return err
	}
	// Inactive rewards are indexed too so a retired reward overwrites its old document.
	rewards, err := s.rewardRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	for _, index := range []string{IndexAchievements, IndexRewards} {
		sortable := []string{"points"}
		if _, err := s.client.Index(index).UpdateSortableAttributes(&sortable); err != nil {
			s.log.Warn("update sortable attributes failed", zap.String("index", index), zap.Error(err))
		}
	}

	achievementDocs := make([]searchDto.CatalogHit, 0, len(achievements))
	for _, a := range achievements {
		achievementDocs = append(achievementDocs, s.achievementDoc(a))
	}
	rewardDocs := make([]searchDto.CatalogHit, 0, len(rewards))
	for _, r := range rewards {
		rewardDocs = append(rewardDocs, s.rewardDoc(r))
	}

	if len(achievementDocs) > 0 {
		task, err := s.client.Index(IndexAchievements).AddDocuments(achievementDocs, strPtr("id"))
		if err != nil {
			return fmt.Errorf("index achievements: %w", err)
		}
		s.log.Info("achievements indexed", zap.Int("count", len(achievementDocs)), zap.Int64("task_uid", task.TaskUID))
	}
	if len(rewardDocs) > 0 {
		task, err := s.client.Index(IndexRewards).AddDocuments(rewardDocs, strPtr("id"))
		if err != nil {
			return fmt.Errorf("index rewards: %w", err)
		}
		s.log.Info("rewards indexed", zap.Int("count", len(rewardDocs)), zap.Int64("task_uid", task.TaskUID))
	}
	return nil
}

func (s *searchService) SearchCatalog(ctx context.Context, query string, limit int) (*searchDto.SearchResponse, error) {
	if s.client == nil {
		return nil, ErrUnavailable
	}
	if limit < 1 {
		limit = defaultLimit
	}

	resp := &searchDto.SearchResponse{Query: query}
	var err error
	if resp.Achievements, err = s.search(IndexAchievements, query, limit); err != nil {
		return nil, err
	}
	if resp.Rewards, err = s.search(IndexRewards, query, limit); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *searchService) search(index, query string, limit int) ([]searchDto.CatalogHit, error) {
	raw, err := s.client.Index(index).SearchRaw(query, &meilisearch.SearchRequest{Limit: int64(limit)})
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", index, err)
	}

	var result struct {
		Hits []searchDto.CatalogHit `json:"hits"`
	}
	if raw != nil {
		if err := json.Unmarshal(*raw, &result); err != nil {
			return nil, fmt.Errorf("decode %s hits: %w", index, err)
		}
	}
	hits := make([]searchDto.CatalogHit, 0, len(result.Hits))
	for _, hit := range result.Hits {
		if hit.Active {
			hits = append(hits, hit)
		}
	}
	return hits, nil
}

func (s *searchService) achievementDoc(a entity.Achievement) searchDto.CatalogHit {
	return searchDto.CatalogHit{
		ID:          a.ID,
		Kind:        KindAchievement,
		Name:        a.Name,
		Description: s.cleanContentForIndex(a.Description),
		Icon:        a.Icon,
		Points:      a.BonusPoints,
		Active:      true,
	}
}

func (s *searchService) rewardDoc(r entity.Reward) searchDto.CatalogHit {
	return searchDto.CatalogHit{
		ID:          r.ID.String(),
		Kind:        KindReward,
		Name:        r.Name,
		Description: s.cleanContentForIndex(r.Description),
		Points:      r.PointsCost,
		Active:      r.IsActive,
	}
}

func (s *searchService) cleanContentForIndex(content string) string {
	// Replace block tags with spaces to prevent text merging
	content = strings.ReplaceAll(content, "</p>", " ")
	content = strings.ReplaceAll(content, "<br>", " ")
	content = strings.ReplaceAll(content, "</div>", " ")

	cleanText := html.UnescapeString(s.sanitizer.Sanitize(content))
	return strings.Join(strings.Fields(cleanText), " ")
}

func strPtr(s string) *string {
	return &s
}

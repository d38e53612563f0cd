package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"public-pulse/internal/domain"
	"public-pulse/internal/repository"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 5 * time.Minute
)

type Service interface {
	GetStats(ctx context.Context) (*domain.IssueStats, error)
}

type service struct {
	issueRepo repository.IssueRepository
	redis     *redis.Client
}

func NewService(issueRepo repository.IssueRepository, redis *redis.Client) Service {
	return &service{
		issueRepo: issueRepo,
		redis:     redis,
	}
}

func (s *service) GetStats(ctx context.Context) (*domain.IssueStats, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, statsCacheKey).Result(); err == nil {
			var stats domain.IssueStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	stats, err := s.issueRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if statsJSON, err := json.Marshal(stats); err == nil {
			_ = s.redis.Set(ctx, statsCacheKey, statsJSON, statsCacheTTL).Err()
		}
	}

	return stats, nil
}

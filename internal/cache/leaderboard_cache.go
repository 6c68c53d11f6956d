package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"storeaudit/internal/model"
)

// LeaderboardCache ranks stores by their latest final score per template
type LeaderboardCache interface {
	UpdateScore(ctx context.Context, templateID, storeID string, score float64) error
	GetTop(ctx context.Context, templateID string, limit int) ([]model.LeaderboardEntry, error)
	GetRank(ctx context.Context, templateID, storeID string) (int64, error)
}

type leaderboardCache struct {
	client *redis.Client
}

// NewLeaderboardCache creates a new leaderboard cache
func NewLeaderboardCache(client *redis.Client) LeaderboardCache {
	return &leaderboardCache{
		client: client,
	}
}

func (c *leaderboardCache) key(templateID string) string {
	return fmt.Sprintf("template:%s:lb", templateID)
}

// UpdateScore overwrites the store's entry with its latest score
func (c *leaderboardCache) UpdateScore(ctx context.Context, templateID, storeID string, score float64) error {
	return c.client.ZAdd(ctx, c.key(templateID), redis.Z{
		Score:  score,
		Member: storeID,
	}).Err()
}

func (c *leaderboardCache) GetTop(ctx context.Context, templateID string, limit int) ([]model.LeaderboardEntry, error) {
	if limit <= 0 {
		return []model.LeaderboardEntry{}, nil
	}
	results, err := c.client.ZRevRangeWithScores(ctx, c.key(templateID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]model.LeaderboardEntry, len(results))
	for i, z := range results {
		member, _ := z.Member.(string)
		entries[i] = model.LeaderboardEntry{
			StoreID: member,
			Score:   z.Score,
			Rank:    i + 1,
		}
	}
	return entries, nil
}

// GetRank returns the 1-indexed rank, or -1 when the store is not ranked
func (c *leaderboardCache) GetRank(ctx context.Context, templateID, storeID string) (int64, error) {
	rank, err := c.client.ZRevRank(ctx, c.key(templateID), storeID).Result()
	if err == redis.Nil {
		return -1, nil
	}
	if err != nil {
		return -1, err
	}
	return rank + 1, nil
}

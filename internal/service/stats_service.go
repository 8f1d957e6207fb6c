package service

import (
	"context"
	"encoding/json"
	"time"

	"fitness_tracker_backend/internal/repository"
	"fitness_tracker_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	streakLeaderboardKey = "fit:leaderboard:streak"
	leaderboardCacheTTL  = 60 * time.Second
)

type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	User          string `json:"user"`
	LongestStreak int    `json:"longestStreak"`
	CurrentStreak int    `json:"currentStreak"`
}

// StatsService 排行榜等聚合读取, 结果在 redis 里缓存一小段时间
type StatsService struct {
	UserRepo *repository.UserRepository
	Redis    *redis.Client
}

func NewStatsService(userRepo *repository.UserRepository, rdb *redis.Client) *StatsService {
	return &StatsService{
		UserRepo: userRepo,
		Redis:    rdb,
	}
}

// GetStreakLeaderboard 最长连续打卡排行, 缓存 60 秒
func (s *StatsService) GetStreakLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, streakLeaderboardKey).Result(); err == nil {
			var entries []LeaderboardEntry
			if json.Unmarshal([]byte(cached), &entries) == nil && len(entries) >= limit {
				return entries[:limit], nil
			}
		}
	}

	users, err := s.UserRepo.FindTopByLongestStreak(limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(users))
	for i, user := range users {
		entries[i] = LeaderboardEntry{
			Rank:          i + 1,
			User:          user.Name,
			LongestStreak: user.Streak.LongestStreak,
			CurrentStreak: user.Streak.CurrentStreak,
		}
	}

	if s.Redis != nil {
		payload, _ := json.Marshal(entries)
		if err := s.Redis.Set(ctx, streakLeaderboardKey, payload, leaderboardCacheTTL).Err(); err != nil {
			logger.Log.Warn("failed to cache leaderboard", zap.Error(err))
		}
	}
	return entries, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"fitness_tracker_backend/internal/repository"
	"fitness_tracker_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ReminderService 每小时按时区扫描一次, 对本地时间到达检查小时的用户
// 执行惰性衰减 (CheckStreak)。状态机自身没有任何定时依赖, 这里只是
// 一个外部调用方。redis SETNX 去重, 同一小时窗口内一个用户只处理一次。
type ReminderService struct {
	UserRepo *repository.UserRepository
	Streak   *StreakService
	Redis    *redis.Client

	// 用户本地时间的检查小时, 默认 6 点
	CheckHour int

	// 可替换的时钟, 测试用
	Now func() time.Time
}

func NewReminderService(userRepo *repository.UserRepository, streak *StreakService, rdb *redis.Client, checkHour int) *ReminderService {
	return &ReminderService{
		UserRepo:  userRepo,
		Streak:    streak,
		Redis:     rdb,
		CheckHour: checkHour,
		Now:       time.Now,
	}
}

// Run 阻塞运行, 由 app 放进后台 goroutine
func (s *ReminderService) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep 找出当前本地时间处于检查小时的时区, 对其中有截止日期的用户跑
// 一次 CheckStreak
func (s *ReminderService) Sweep(ctx context.Context) {
	zones, err := s.UserRepo.DistinctTimezones()
	if err != nil {
		logger.Log.Error("reminder sweep: list timezones", zap.Error(err))
		return
	}

	now := s.Now()
	var due []string
	for _, zone := range zones {
		loc, err := time.LoadLocation(zone)
		if err != nil {
			continue
		}
		if now.In(loc).Hour() == s.CheckHour {
			due = append(due, zone)
		}
	}
	if len(due) == 0 {
		return
	}

	users, err := s.UserRepo.FindByTimezones(due)
	if err != nil {
		logger.Log.Error("reminder sweep: load users", zap.Error(err))
		return
	}

	checked := 0
	for i := range users {
		user := &users[i]
		if !s.claim(ctx, user.ID, now) {
			continue
		}
		if err := s.Streak.CheckStreak(user); err != nil {
			logger.Log.Warn("reminder sweep: check streak", zap.Uint("userId", user.ID), zap.Error(err))
			continue
		}
		checked++
	}
	logger.Log.Info("reminder sweep finished",
		zap.Strings("timezones", due), zap.Int("users", len(users)), zap.Int("checked", checked))
}

// claim 同一小时窗口对同一用户只处理一次
func (s *ReminderService) claim(ctx context.Context, userID uint, now time.Time) bool {
	if s.Redis == nil {
		return true
	}
	key := fmt.Sprintf("fit:streakcheck:%d:%s", userID, now.UTC().Format("2006010215"))
	ok, err := s.Redis.SetNX(ctx, key, 1, 2*time.Hour).Result()
	if err != nil {
		// redis 不可用时宁可重复检查, CheckStreak 本身是幂等的
		return true
	}
	return ok
}

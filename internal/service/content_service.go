package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"wealth_builder_backend/internal/model"
	"wealth_builder_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	cacheKeyPaths       = "content:paths"
	cacheKeyModuleCount = "content:module_count"
)

// ContentService 为学习内容读取加一层 redis 缓存。缓存不可用时直接读数据库。
type ContentService struct {
	Store ContentStore
	Redis *redis.Client
	TTL   time.Duration
}

func NewContentService(store ContentStore, rdb *redis.Client, ttl time.Duration) *ContentService {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &ContentService{
		Store: store,
		Redis: rdb,
		TTL:   ttl,
	}
}

func (s *ContentService) ListWithModules(ctx context.Context) ([]model.LearningPath, error) {
	if raw, ok := s.cacheGet(ctx, cacheKeyPaths); ok {
		var paths []model.LearningPath
		if err := json.Unmarshal([]byte(raw), &paths); err == nil {
			return paths, nil
		}
	}

	paths, err := s.Store.ListWithModules(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(paths); err == nil {
		s.cacheSet(ctx, cacheKeyPaths, data)
	}
	return paths, nil
}

func (s *ContentService) FindModuleByID(ctx context.Context, id string) (*model.Module, error) {
	return s.Store.FindModuleByID(ctx, id)
}

func (s *ContentService) CountModules(ctx context.Context) (int64, error) {
	if raw, ok := s.cacheGet(ctx, cacheKeyModuleCount); ok {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n, nil
		}
	}

	n, err := s.Store.CountModules(ctx)
	if err != nil {
		return 0, err
	}
	s.cacheSet(ctx, cacheKeyModuleCount, strconv.FormatInt(n, 10))
	return n, nil
}

// Invalidate 内容变更后清除缓存
func (s *ContentService) Invalidate(ctx context.Context) error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Del(ctx, cacheKeyPaths, cacheKeyModuleCount).Err()
}

func (s *ContentService) cacheGet(ctx context.Context, key string) (string, bool) {
	if s.Redis == nil {
		return "", false
	}
	val, err := s.Redis.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("Content cache read failed", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return val, true
}

func (s *ContentService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Set(ctx, key, value, s.TTL).Err(); err != nil {
		logger.Log.Warn("Content cache write failed", zap.String("key", key), zap.Error(err))
	}
}

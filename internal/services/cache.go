package services

import (
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "time"
  "github.com/redis/go-redis/v9"
  "github.com/leopark123/ideahub/internal/logger"
  "github.com/leopark123/ideahub/internal/utils"
)

const (
  cacheKeyPrefix = "ideahub"

  CacheTTLShort  = 60 * time.Second
  CacheTTLMedium = 5 * time.Minute
  CacheTTLLong   = time.Hour
)

func CacheKeyProject(projectID string) string {
  return fmt.Sprintf("%s:project:%s", cacheKeyPrefix, projectID)
}

func CacheKeyCrowdfunding(crowdfundingID string) string {
  return fmt.Sprintf("%s:crowdfunding:%s", cacheKeyPrefix, crowdfundingID)
}

// CacheService is a read cache for project and campaign lookups. It is
// constructed once at startup and injected; a nil redis client disables
// caching without changing caller behavior. Cache misses and redis failures
// are never surfaced as request errors.
type CacheService interface {
  GetJSON(ctx context.Context, key string, dest interface{}) bool
  SetJSON(ctx context.Context, key string, val interface{}, ttl time.Duration)
  Delete(ctx context.Context, keys ...string)
}

type cacheService struct {
  client *redis.Client
  log    *logger.Logger
}

// NewRedisClient builds the process-wide redis client from the environment.
// Returns nil when REDIS_ADDR is unset, which disables the cache layer.
func NewRedisClient(log *logger.Logger) *redis.Client {
  addr := utils.GetEnv("REDIS_ADDR", "", log)
  if addr == "" {
    log.Info("REDIS_ADDR not set, cache disabled")
    return nil
  }
  return redis.NewClient(&redis.Options{
    Addr:     addr,
    Password: utils.GetEnv("REDIS_PASSWORD", "", log),
    DB:       utils.GetEnvAsInt("REDIS_DB", 0, log),
  })
}

func NewCacheService(client *redis.Client, baseLog *logger.Logger) CacheService {
  serviceLog := baseLog.With("service", "CacheService")
  return &cacheService{client: client, log: serviceLog}
}

func (cs *cacheService) GetJSON(ctx context.Context, key string, dest interface{}) bool {
  if cs.client == nil {
    return false
  }
  data, err := cs.client.Get(ctx, key).Bytes()
  if err != nil {
    if !errors.Is(err, redis.Nil) {
      cs.log.Warn("Cache get failed", "key", key, "error", err)
    }
    return false
  }
  if err := json.Unmarshal(data, dest); err != nil {
    cs.log.Warn("Cache entry undecodable, dropping", "key", key, "error", err)
    _ = cs.client.Del(ctx, key).Err()
    return false
  }
  return true
}

func (cs *cacheService) SetJSON(ctx context.Context, key string, val interface{}, ttl time.Duration) {
  if cs.client == nil {
    return
  }
  data, err := json.Marshal(val)
  if err != nil {
    cs.log.Warn("Cache marshal failed", "key", key, "error", err)
    return
  }
  if err := cs.client.Set(ctx, key, data, ttl).Err(); err != nil {
    cs.log.Warn("Cache set failed", "key", key, "error", err)
  }
}

func (cs *cacheService) Delete(ctx context.Context, keys ...string) {
  if cs.client == nil || len(keys) == 0 {
    return
  }
  if err := cs.client.Del(ctx, keys...).Err(); err != nil {
    cs.log.Warn("Cache delete failed", "keys", keys, "error", err)
  }
}

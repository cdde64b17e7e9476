package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/infra"
	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/model"
	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const defaultProfileCacheTTL = 5 * time.Minute

// DirectoryService resolves the acting user's profile and org.
type DirectoryService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	GetOrgID(ctx context.Context, userID uuid.UUID) (uint, error)
}

type directoryService struct {
	repo    repository.ProfileRepository
	rdb     *redis.Client
	ttl     time.Duration
	breaker *infra.Breaker
}

// NewDirectoryService caches profiles in rdb; a nil client disables caching.
func NewDirectoryService(repo repository.ProfileRepository, rdb *redis.Client, ttl time.Duration) DirectoryService {
	if ttl <= 0 {
		ttl = defaultProfileCacheTTL
	}
	return &directoryService{repo: repo, rdb: rdb, ttl: ttl, breaker: infra.NewBreaker(5, 30*time.Second)}
}

func profileCacheKey(id uuid.UUID) string { return "profile:" + id.String() }

func (s *directoryService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	key := profileCacheKey(userID)
	if s.cacheUsable() {
		cached, err := s.rdb.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			err = nil
		}
		s.breaker.Record(err)
		if err != nil {
			log.Warn().Err(err).Str("breaker", s.breaker.State().String()).Msg("directory: profile cache read failed")
		} else if cached != nil {
			var p model.Profile
			if jsonErr := json.Unmarshal(cached, &p); jsonErr == nil {
				return &p, nil
			}
		}
	}

	p, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup profile: %w", err)
	}

	if b, jsonErr := json.Marshal(p); jsonErr == nil && s.cacheUsable() {
		err := s.rdb.Set(ctx, key, b, s.ttl).Err()
		s.breaker.Record(err)
		if err != nil {
			log.Warn().Err(err).Msg("directory: profile cache write failed")
		}
	}
	return p, nil
}

// cacheUsable consumes a breaker slot; the caller must Record the outcome.
func (s *directoryService) cacheUsable() bool {
	return s.rdb != nil && s.breaker.Allow()
}

func (s *directoryService) GetOrgID(ctx context.Context, userID uuid.UUID) (uint, error) {
	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return 0, err
	}
	return p.OrgID, nil
}

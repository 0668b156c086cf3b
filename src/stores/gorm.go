package stores

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"resort/src/engine"
	"resort/src/models"
	"resort/src/types"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const ruleCacheTTL = 5 * time.Minute

// GormStore implements the engine's AllocationSource and RuleSource on top of
// postgres, with an optional redis cache over the read-mostly rule catalog.
type GormStore struct {
	db    *gorm.DB
	cache *redis.Client
}

func NewGormStore(db *gorm.DB, cache *redis.Client) *GormStore {
	return &GormStore{db: db, cache: cache}
}

func (s *GormStore) ListBlocking(ctx context.Context, resourceID uint) ([]models.Allocation, error) {
	var allocations []models.Allocation
	err := s.db.WithContext(ctx).
		Model(&models.Allocation{}).
		Where("resource_id = ?", resourceID).
		Where("status NOT IN ?", []types.AllocationStatus{types.ALLOCATION_CANCELLED, types.ALLOCATION_NO_SHOW}).
		Find(&allocations).
		Error
	if err != nil {
		return nil, err
	}
	return allocations, nil
}

// Create persists a new allocation. Exclusion/unique violations raised by the
// database surface as CONFLICT so racing writers that slip past the engine's
// lock are still rejected.
func (s *GormStore) Create(ctx context.Context, alloc *models.Allocation) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(alloc).Error
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && (pgErr.Code == "23P01" || pgErr.Code == "23505") {
			return engine.NewError(engine.CodeConflict, "allocation overlaps an existing allocation")
		}
		return err
	}
	return nil
}

func (s *GormStore) ActiveRules(ctx context.Context, itemType types.ItemType) ([]models.RateRule, error) {
	cacheKey := ruleCacheKey(itemType)
	if s.cache != nil {
		val := s.cache.JSONGet(ctx, cacheKey).Val()
		if val != "" {
			var cached []models.RateRule
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
			log.Printf("[stores] Discarding unreadable rule cache for %s\n", cacheKey)
		}
	}

	var rules []models.RateRule
	err := s.db.WithContext(ctx).
		Model(&models.RateRule{}).
		Where("applicable_item_type = ? AND is_active = ?", itemType, true).
		Preload("Modifiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc, id asc")
		}).
		Find(&rules).
		Error
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if _, err := s.cache.JSONSet(ctx, cacheKey, "$", rules).Result(); err != nil {
			log.Printf("[stores] Error caching rules for %s: %s\n", cacheKey, err.Error())
		} else {
			s.cache.Expire(ctx, cacheKey, ruleCacheTTL)
		}
	}
	return rules, nil
}

// InvalidateRules drops the cached catalog for one item type; rate admin
// handlers call this after every mutation.
func (s *GormStore) InvalidateRules(ctx context.Context, itemType types.ItemType) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, ruleCacheKey(itemType)).Err(); err != nil {
		log.Printf("[stores] Error invalidating rule cache for %s: %s\n", itemType, err.Error())
	}
}

func ruleCacheKey(itemType types.ItemType) string {
	return fmt.Sprintf("rates:%s:active", itemType)
}

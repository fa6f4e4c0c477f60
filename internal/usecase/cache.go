package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Cache is the subset of the Redis cache the usecases rely on. Reads on an
// unreachable cache report a miss.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

func TargetsCacheKey(userID uuid.UUID, filterKey string) string {
	return "targets:" + userID.String() + ":" + strings.TrimSpace(filterKey)
}

func TargetsCachePattern(userID uuid.UUID) string {
	return "targets:" + userID.String() + ":*"
}

func DeckCacheKey(userID uuid.UUID) string {
	return "deck:" + userID.String()
}

func MatchesCacheKey(userID uuid.UUID) string {
	return "matches:" + userID.String()
}

func EmployerVacanciesCacheKey(employerID uuid.UUID) string {
	return "vacancies:employer:" + employerID.String()
}

const (
	CitiesCacheKey        = "ref:cities"
	JobCategoriesCacheKey = "ref:job_categories"
)

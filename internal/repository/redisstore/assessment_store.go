package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"masar-backend/internal/domain"
	"masar-backend/pkg/logger"
)

// Attempts are ephemeral. Losing one before submission only means the
// candidate gets a fresh question set on the next state fetch.
const attemptTTL = 24 * time.Hour

func attemptKey(userID string) string {
	return "assessment:attempt:" + userID
}

// NewAttemptStore returns a Redis-backed store, falling back to an in-memory
// store when Redis is not configured or unreachable at startup.
func NewAttemptStore(client *redis.Client) domain.AssessmentAttemptStore {
	if client == nil {
		logger.Log.Warn("redis unavailable, assessment attempts held in memory")
		return newMemoryAttemptStore()
	}
	return &redisAttemptStore{client: client}
}

type redisAttemptStore struct {
	client *redis.Client
}

func (s *redisAttemptStore) Get(ctx context.Context, userID string) (*domain.AssessmentAttempt, error) {
	data, err := s.client.Get(ctx, attemptKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assessment attempt: %w", err)
	}

	var attempt domain.AssessmentAttempt
	if err := json.Unmarshal(data, &attempt); err != nil {
		// A corrupt attempt is unrecoverable; treat it as absent so the
		// caller regenerates instead of failing the onboarding flow.
		logger.Log.Warn("discarding corrupt assessment attempt", "user_id", userID, "error", err)
		return nil, nil
	}
	return &attempt, nil
}

func (s *redisAttemptStore) Save(ctx context.Context, userID string, attempt *domain.AssessmentAttempt) error {
	data, err := json.Marshal(attempt)
	if err != nil {
		return fmt.Errorf("encode assessment attempt: %w", err)
	}
	if err := s.client.Set(ctx, attemptKey(userID), data, attemptTTL).Err(); err != nil {
		return fmt.Errorf("save assessment attempt: %w", err)
	}
	return nil
}

func (s *redisAttemptStore) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, attemptKey(userID)).Err(); err != nil {
		return fmt.Errorf("clear assessment attempt: %w", err)
	}
	return nil
}

// memoryAttemptStore mirrors the Redis semantics including expiry.
type memoryAttemptStore struct {
	mu       sync.Mutex
	attempts map[string]memoryEntry
}

type memoryEntry struct {
	attempt   domain.AssessmentAttempt
	expiresAt time.Time
}

func newMemoryAttemptStore() *memoryAttemptStore {
	return &memoryAttemptStore{attempts: make(map[string]memoryEntry)}
}

func (s *memoryAttemptStore) Get(_ context.Context, userID string) (*domain.AssessmentAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.attempts[userID]
	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.attempts, userID)
		return nil, nil
	}
	attempt := entry.attempt
	return &attempt, nil
}

func (s *memoryAttemptStore) Save(_ context.Context, userID string, attempt *domain.AssessmentAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attempts[userID] = memoryEntry{
		attempt:   *attempt,
		expiresAt: time.Now().Add(attemptTTL),
	}
	return nil
}

func (s *memoryAttemptStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.attempts, userID)
	return nil
}

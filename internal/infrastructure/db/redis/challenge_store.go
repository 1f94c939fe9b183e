package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// challengeTTL bounds how long an unanswered login challenge stays valid.
const challengeTTL = 10 * time.Minute

// ChallengeStore holds login challenge codes in Redis.
// Key format: captcha:<challenge_id>
type ChallengeStore struct {
	client *redis.Client
}

// NewChallengeStore creates a ChallengeStore wrapping the given Redis client.
func NewChallengeStore(client *redis.Client) *ChallengeStore {
	return &ChallengeStore{client: client}
}

// Save stores the code under the id, expiring after challengeTTL.
func (s *ChallengeStore) Save(ctx context.Context, id, code string) error {
	if err := s.client.Set(ctx, s.key(id), code, challengeTTL).Err(); err != nil {
		return fmt.Errorf("challenge save: %w", err)
	}
	return nil
}

// Get returns the stored code, or "" when the id is unknown or expired.
func (s *ChallengeStore) Get(ctx context.Context, id string) (string, error) {
	code, err := s.client.Get(ctx, s.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("challenge get: %w", err)
	}
	return code, nil
}

// Delete removes the stored code. Deleting an unknown id is not an error.
func (s *ChallengeStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("challenge delete: %w", err)
	}
	return nil
}

func (s *ChallengeStore) key(id string) string {
	return "captcha:" + id
}

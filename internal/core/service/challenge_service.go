package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"

	"github.com/lfsh/market-api/internal/core/ports"
)

const (
	challengeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	challengeLength   = 6
)

// ChallengeService issues the security codes shown on the login form and
// verifies submissions against them. Codes live in a ChallengeStore keyed by
// an opaque id; only the id travels in the browser session.
type ChallengeService struct {
	store ports.ChallengeStore
}

func NewChallengeService(store ports.ChallengeStore) *ChallengeService {
	return &ChallengeService{store: store}
}

// Issue generates a fresh 6-character code and stores it under a new id.
func (s *ChallengeService) Issue(ctx context.Context) (string, string, error) {
	code, err := generateChallenge()
	if err != nil {
		return "", "", err
	}

	id := uuid.NewString()
	if err := s.store.Save(ctx, id, code); err != nil {
		return "", "", fmt.Errorf("save challenge: %w", err)
	}

	return id, code, nil
}

// Verify compares the submitted input against the stored code. Input is
// upper-cased before comparison; the stored code is generated upper-case
// already. The challenge is consumed regardless of outcome, so a retry
// always needs a newly issued code.
func (s *ChallengeService) Verify(ctx context.Context, id, input string) (bool, error) {
	if id == "" {
		return false, nil
	}

	code, err := s.store.Get(ctx, id)
	if err != nil {
		return false, fmt.Errorf("load challenge: %w", err)
	}
	if code == "" {
		return false, nil
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return false, fmt.Errorf("consume challenge: %w", err)
	}

	return input != "" && strings.ToUpper(input) == code, nil
}

// generateChallenge draws challengeLength characters uniformly from the
// 36-symbol alphabet {A-Z, 0-9}.
func generateChallenge() (string, error) {
	max := big.NewInt(int64(len(challengeAlphabet)))
	b := make([]byte, challengeLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate challenge: %w", err)
		}
		b[i] = challengeAlphabet[n.Int64()]
	}
	return string(b), nil
}

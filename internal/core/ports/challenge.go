package ports

import "context"

// ChallengeService issues and verifies the human-verification codes shown on
// the login form.
type ChallengeService interface {
	// Issue generates a fresh 6-character code and stores it under a new
	// opaque id. The id is what goes into the browser session; the code is
	// what the view renders.
	Issue(ctx context.Context) (id, code string, err error)
	// Verify compares the submitted input (upper-cased) against the stored
	// code and consumes the challenge: whatever the outcome, the stored code
	// is no longer valid afterwards.
	Verify(ctx context.Context, id, input string) (bool, error)
}

// ChallengeStore holds issued challenge codes keyed by id. Implementations
// are expected to expire entries on their own after a short TTL.
type ChallengeStore interface {
	Save(ctx context.Context, id, code string) error
	// Get returns the stored code, or "" when the id is unknown or expired.
	Get(ctx context.Context, id string) (string, error)
	Delete(ctx context.Context, id string) error
}

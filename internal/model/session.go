package model

import "context"

// Keys persisted by the token store.
const (
	KeyToken        = "token"
	KeyRefreshToken = "refreshToken"
	KeyUser         = "user"
	KeyUserID       = "userId"
)

// SessionKeys lists every key owned by a session.
var SessionKeys = []string{KeyToken, KeyRefreshToken, KeyUser, KeyUserID}

// KeyValueStore is a durable string key-value store holding session state.
// Implementations must be safe for concurrent use and make every write
// visible to subsequent reads in the same process.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// SetMany writes all values or none of them.
	SetMany(ctx context.Context, values map[string]string) error
	// Clear removes keys; missing keys are ignored.
	Clear(ctx context.Context, keys ...string) error
}

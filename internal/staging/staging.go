// Package staging holds per-session data that must not reach the profile
// tables yet: the in-progress wizard answers and the pending profile payload.
package staging

import "context"

// Store is one session's key/value scope.
type Store interface {
	SetItem(ctx context.Context, key string, value []byte) error
	GetItem(ctx context.Context, key string) ([]byte, bool, error)
	RemoveItem(ctx context.Context, key string) error
}

// Provider hands out isolated scopes, one per wizard session.
type Provider interface {
	Scope(namespace string) Store
}

func scopedKey(namespace, key string) string {
	return "staging:" + namespace + ":" + key
}

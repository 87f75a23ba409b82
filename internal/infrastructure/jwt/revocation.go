package jwt

import (
	"sync"
	"time"
)

// RevocationList is an in-process set of logged-out tokens. Entries are
// dropped once the token would have expired anyway, so the set cannot grow
// without bound. Good enough for a single instance; a multi-instance
// deployment needs a shared keyed-expiry store instead.
type RevocationList struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewRevocationList() *RevocationList {
	return &RevocationList{revoked: make(map[string]time.Time)}
}

func (l *RevocationList) Revoke(token string, expiresAt time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.purgeLocked()
	l.revoked[token] = expiresAt
}

func (l *RevocationList) IsRevoked(token string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	exp, ok := l.revoked[token]
	if !ok {
		return false
	}
	if time.Now().After(exp) {
		delete(l.revoked, token)
		return false
	}
	return true
}

func (l *RevocationList) purgeLocked() {
	now := time.Now()
	for tok, exp := range l.revoked {
		if now.After(exp) {
			delete(l.revoked, tok)
		}
	}
}

package utils

import (
	"sync"
	"time"
)

// Ended sessions are remembered until their tokens would have expired anyway.
var (
	revokedSessions = make(map[string]time.Time)
	revokedMutex    sync.RWMutex
)

func RevokeSession(sessionID string, until time.Time) {
	revokedMutex.Lock()
	defer revokedMutex.Unlock()
	revokedSessions[sessionID] = until
}

func IsSessionRevoked(sessionID string) bool {
	revokedMutex.RLock()
	expiry, exists := revokedSessions[sessionID]
	revokedMutex.RUnlock()
	if !exists {
		return false
	}
	if time.Now().Before(expiry) {
		return true
	}

	revokedMutex.Lock()
	delete(revokedSessions, sessionID)
	revokedMutex.Unlock()
	return false
}

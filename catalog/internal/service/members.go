package service

import (
	"slices"
	"sync"
	"time"

	"github.com/Astemirdum/home-library/pkg/auth"
)

// memberRefresh is how long a recorded identity is trusted before the
// directory row is written again.
const memberRefresh = 10 * time.Minute

type seenMember struct {
	id     auth.Identity
	seenAt time.Time
}

// memberCache remembers identities already written to the directory.
type memberCache struct {
	mu   sync.Mutex
	seen map[string]seenMember
}

func newMemberCache() *memberCache {
	return &memberCache{seen: make(map[string]seenMember)}
}

// fresh reports whether id was recorded within memberRefresh with the same
// profile and groups.
func (m *memberCache) fresh(id auth.Identity, now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev, ok := m.seen[id.UserID]
	if !ok || now.Sub(prev.seenAt) >= memberRefresh {
		return false
	}
	return sameIdentity(prev.id, id)
}

func (m *memberCache) remember(id auth.Identity, now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for uid, s := range m.seen {
		if now.Sub(s.seenAt) >= memberRefresh {
			delete(m.seen, uid)
		}
	}
	id.Groups = slices.Clone(id.Groups)
	m.seen[id.UserID] = seenMember{id: id, seenAt: now}
}

func sameIdentity(a, b auth.Identity) bool {
	return a.UserID == b.UserID &&
		a.Email == b.Email &&
		a.Name == b.Name &&
		a.Username == b.Username &&
		a.PreferredUsername == b.PreferredUsername &&
		slices.Equal(a.Groups, b.Groups)
}

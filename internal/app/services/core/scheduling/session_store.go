package scheduling

import (
	"context"
	"fmt"
	"time"

	"facultyload-service/internal/app/contracts"
	"facultyload-service/internal/pkg/constvars"

	"github.com/goccy/go-json"
)

// sessionStore mirrors dialog sessions into redis with a sliding TTL. The
// in-memory map stays authoritative on the worker that holds the debounce
// timer; redis lets another worker (or a restarted one) rehydrate the draft.
type sessionStore struct {
	cache contracts.RedisRepository
	ttl   time.Duration
}

func newSessionStore(cache contracts.RedisRepository, ttl time.Duration) *sessionStore {
	return &sessionStore{cache: cache, ttl: ttl}
}

func (st *sessionStore) key(sessionID string) string {
	return fmt.Sprintf(constvars.RedisKeyDialogSession, sessionID)
}

func (st *sessionStore) save(ctx context.Context, session persistedSession) error {
	return st.cache.Set(ctx, st.key(session.ID), session, st.ttl)
}

func (st *sessionStore) load(ctx context.Context, sessionID string) (*persistedSession, error) {
	raw, err := st.cache.Get(ctx, st.key(sessionID))
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var persisted persistedSession
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		return nil, err
	}
	return &persisted, nil
}

func (st *sessionStore) delete(ctx context.Context, sessionID string) error {
	return st.cache.Delete(ctx, st.key(sessionID))
}

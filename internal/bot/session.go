// Package bot implements the chat-bot gateway: a text-menu engine for
// staff (login conversation, quick status, room lists, active
// reservations) driven through a webhook endpoint.  Conversation state
// is kept per chat id in a SessionStore, never in process-global maps,
// so multiple server instances can share a Redis backend.
package bot

import (
    "context"
    "encoding/json"
    "fmt"
    "sync"
    "time"

    "github.com/redis/go-redis/v9"
)

// Conversation states.  A chat starts logged out, walks through the
// two-step login prompt and stays logged in until logout or session
// expiry.
type State string

const (
    StateLoggedOut     State = "logged_out"
    StateAwaitUsername State = "await_username"
    StateAwaitPassword State = "await_password"
    StateLoggedIn      State = "logged_in"
)

// Session is the per-chat conversation state.  Username holds the
// pending login name while the password prompt is open, then the
// authenticated login name.  The zero Session means logged out.
type Session struct {
    State      State  `json:"state"`
    Username   string `json:"username,omitempty"`
    EmployeeID uint64 `json:"employee_id,omitempty"`
}

// SessionStore persists conversation state keyed by chat id.  Get
// returns a zero Session (not an error) when the chat has no state.
type SessionStore interface {
    Get(ctx context.Context, chatID int64) (Session, error)
    Put(ctx context.Context, chatID int64, s Session) error
    Delete(ctx context.Context, chatID int64) error
}

// RedisSessionStore keeps sessions in Redis as JSON values with a TTL,
// so an idle chat logs itself out and state survives restarts.
type RedisSessionStore struct {
    rdb *redis.Client
    ttl time.Duration
}

// NewRedisSessionStore returns a store writing under "botsess:<chat>".
func NewRedisSessionStore(rdb *redis.Client, ttl time.Duration) *RedisSessionStore {
    if ttl <= 0 {
        ttl = time.Hour
    }
    return &RedisSessionStore{rdb: rdb, ttl: ttl}
}

func sessionKey(chatID int64) string {
    return fmt.Sprintf("botsess:%d", chatID)
}

func (s *RedisSessionStore) Get(ctx context.Context, chatID int64) (Session, error) {
    bs, err := s.rdb.Get(ctx, sessionKey(chatID)).Bytes()
    if err == redis.Nil {
        return Session{State: StateLoggedOut}, nil
    }
    if err != nil {
        return Session{}, err
    }
    var sess Session
    if err := json.Unmarshal(bs, &sess); err != nil {
        // Corrupt entry; treat as logged out.
        return Session{State: StateLoggedOut}, nil
    }
    return sess, nil
}

func (s *RedisSessionStore) Put(ctx context.Context, chatID int64, sess Session) error {
    bs, err := json.Marshal(sess)
    if err != nil {
        return err
    }
    return s.rdb.Set(ctx, sessionKey(chatID), bs, s.ttl).Err()
}

func (s *RedisSessionStore) Delete(ctx context.Context, chatID int64) error {
    return s.rdb.Del(ctx, sessionKey(chatID)).Err()
}

// MemorySessionStore is the in-process fallback used when Redis is
// unavailable.  Safe for concurrent use; entries never expire, which
// is acceptable for a single-node dev setup.
type MemorySessionStore struct {
    mu sync.Mutex
    m  map[int64]Session
}

func NewMemorySessionStore() *MemorySessionStore {
    return &MemorySessionStore{m: make(map[int64]Session)}
}

func (s *MemorySessionStore) Get(_ context.Context, chatID int64) (Session, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    sess, ok := s.m[chatID]
    if !ok {
        return Session{State: StateLoggedOut}, nil
    }
    return sess, nil
}

func (s *MemorySessionStore) Put(_ context.Context, chatID int64, sess Session) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.m[chatID] = sess
    return nil
}

func (s *MemorySessionStore) Delete(_ context.Context, chatID int64) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    delete(s.m, chatID)
    return nil
}

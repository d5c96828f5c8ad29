package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/admissions/internal/client/models"
	"github.com/dmitrijs2005/admissions/internal/client/repositories/kv"
	"github.com/dmitrijs2005/admissions/internal/clock"
	"github.com/dmitrijs2005/admissions/internal/common"
	"github.com/dmitrijs2005/admissions/internal/dbx"
	"github.com/dmitrijs2005/admissions/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the client-side session lifetime.
const DefaultTTL = time.Hour

// TokenSealer protects the token at rest. Open must fail for values that
// Seal did not produce.
type TokenSealer interface {
	Seal(plaintext string) string
	Open(sealed string) (string, error)
}

type Config struct {
	DB     *sql.DB
	Clock  clock.Clock
	TTL    time.Duration
	Sealer TokenSealer
	Logger logging.Logger
}

// Store is the process-wide session owner. It is safe for concurrent use.
//
// Subscribers run synchronously after each mutation, in mutation order.
// They may read the store but must not call Login or Logout.
type Store struct {
	db     *sql.DB
	clock  clock.Clock
	ttl    time.Duration
	sealer TokenSealer
	log    logging.Logger

	mu       sync.Mutex
	notifyMu sync.Mutex

	subsMu sync.Mutex
	subs   map[int]func(*Session)
	nextID int
}

func NewStore(cfg Config) (*Store, error) {
	if cfg.DB == nil {
		return nil, errors.New("session: DB is required")
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Nop()
	}
	return &Store{
		db:     cfg.DB,
		clock:  cfg.Clock,
		ttl:    cfg.TTL,
		sealer: cfg.Sealer,
		log:    cfg.Logger,
		subs:   make(map[int]func(*Session)),
	}, nil
}

// Login persists a new session from a successful auth response, with
// TokenExpiry = now + TTL. Both entries are written in one transaction.
func (s *Store) Login(ctx context.Context, resp models.AuthResponse) (*Session, error) {
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("session: empty access token: %w", common.ErrInvalidToken)
	}

	sess := &Session{
		Token:        resp.AccessToken,
		UserID:       resp.UserID,
		Email:        resp.Email,
		Roles:        append([]string(nil), resp.Roles...),
		TokenExpiry:  s.clock.Now().Add(s.ttl).Truncate(time.Millisecond),
		ServerExpiry: serverExpiry(resp.AccessToken),
	}

	payload, err := json.Marshal(models.UserData{
		UserID:      sess.UserID,
		Email:       sess.Email,
		Roles:       sess.Roles,
		TokenExpiry: sess.TokenExpiry.UnixMilli(),
	})
	if err != nil {
		return nil, fmt.Errorf("session: encode user data: %w", err)
	}

	stored := sess.Token
	if s.sealer != nil {
		stored = s.sealer.Seal(stored)
	}

	s.mu.Lock()
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.StorageKeyToken, []byte(stored)); err != nil {
			return err
		}
		return repo.Set(ctx, common.StorageKeyUserData, payload)
	})
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("session: persist: %w", err)
	}
	s.publish(sess)

	s.log.Info(ctx, "session started",
		"user_id", sess.UserID, "roles", sess.Roles, "expires_at", sess.TokenExpiry)
	if !sess.ServerExpiry.IsZero() {
		if drift := sess.ServerExpiry.Sub(sess.TokenExpiry); drift > time.Minute || drift < -time.Minute {
			s.log.Warn(ctx, "client session lifetime differs from token lifetime",
				"client_expiry", sess.TokenExpiry, "token_expiry", sess.ServerExpiry)
		}
	}
	return sess.clone(), nil
}

// Logout removes both entries and notifies subscribers. It is idempotent.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	if err := s.clear(ctx); err != nil {
		s.mu.Unlock()
		return err
	}
	s.publish(nil)
	s.log.Info(ctx, "session cleared")
	return nil
}

// Current returns the stored session, or nil when there is none.
//
// An expired or unparseable stored session is removed, subscribers are
// notified, and nil is returned, all before Current returns. Only storage
// failures are reported as errors.
func (s *Store) Current(ctx context.Context) (*Session, error) {
	s.mu.Lock()

	sess, reason, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if reason == "" {
		s.mu.Unlock()
		return sess, nil
	}

	if err := s.clear(ctx); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.publish(nil)
	s.log.Info(ctx, "session dropped", "reason", reason)
	return nil, nil
}

// Token returns the stored access token, or "" when none is stored. It has
// no expiry side effect; the backend decides whether the token is valid.
func (s *Store) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := kv.NewSQLiteRepository(s.db).Get(ctx, common.StorageKeyToken)
	if err != nil {
		return "", err
	}
	if len(raw) == 0 {
		return "", nil
	}
	return s.openToken(string(raw))
}

// HasRole reports whether a current session carries role. Any error or the
// absence of a session yields false.
func (s *Store) HasRole(ctx context.Context, role string) bool {
	sess, err := s.Current(ctx)
	if err != nil {
		s.log.Warn(ctx, "session read failed", "error", err)
		return false
	}
	return sess.HasRole(role)
}

// Subscribe registers fn to receive the session after every change (nil
// after logout or cleanup). The returned func unregisters it.
func (s *Store) Subscribe(fn func(*Session)) (cancel func()) {
	s.subsMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, id)
			s.subsMu.Unlock()
		})
	}
}

// load reads both entries. A non-empty reason means the stored state must
// be cleaned up.
func (s *Store) load(ctx context.Context) (*Session, string, error) {
	repo := kv.NewSQLiteRepository(s.db)

	rawToken, err := repo.Get(ctx, common.StorageKeyToken)
	if err != nil {
		return nil, "", err
	}
	rawData, err := repo.Get(ctx, common.StorageKeyUserData)
	if err != nil {
		return nil, "", err
	}
	if len(rawToken) == 0 || len(rawData) == 0 {
		return nil, "", nil
	}

	token, err := s.openToken(string(rawToken))
	if err != nil {
		return nil, "unreadable token", nil
	}

	var data models.UserData
	if err := json.Unmarshal(rawData, &data); err != nil {
		return nil, "malformed user data", nil
	}

	sess := &Session{
		Token:        token,
		UserID:       data.UserID,
		Email:        data.Email,
		Roles:        data.Roles,
		TokenExpiry:  time.UnixMilli(data.TokenExpiry),
		ServerExpiry: serverExpiry(token),
	}
	if sess.Expired(s.clock.Now()) {
		return nil, common.ErrSessionExpired.Error(), nil
	}
	return sess, "", nil
}

func (s *Store) clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return kv.NewSQLiteRepository(tx).Delete(ctx, common.StorageKeyToken, common.StorageKeyUserData)
	})
	if err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}

func (s *Store) openToken(stored string) (string, error) {
	if s.sealer == nil {
		return stored, nil
	}
	return s.sealer.Open(stored)
}

// publish must be called with mu held. It releases mu and delivers snap to
// the subscribers under notifyMu, so deliveries keep mutation order while
// subscribers remain free to read the store.
func (s *Store) publish(snap *Session) {
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	s.subsMu.Lock()
	fns := make([]func(*Session), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(snap.clone())
	}
}

// serverExpiry extracts the "exp" claim of a JWT without verifying it.
func serverExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination service_mocks_test.go -package session_test -source=session_service.go -mock_names sessionStore=MockSessionStore

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/trustbloc/anonid/internal/logfields"
	"github.com/trustbloc/anonid/internal/pkg/log"
	"github.com/trustbloc/anonid/pkg/coreerr"
	"github.com/trustbloc/anonid/pkg/identity"
	"github.com/trustbloc/anonid/pkg/observability/metrics"
	"github.com/trustbloc/anonid/pkg/observability/metrics/noop"
)

var logger = log.New("session-manager")

// DefaultDuration is the lifetime of a session created without WithDuration.
const DefaultDuration = 60 * time.Minute

var errNotActive = errors.New("session is not active")

type sessionStore interface {
	Put(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	List(ctx context.Context) ([]*Session, error)
}

type Config struct {
	// Store defaults to an in-memory store.
	Store   sessionStore
	Metrics metrics.Metrics
	// Clock returns the current time. Defaults to identity.Now.
	Clock func() time.Time
}

// Manager runs the session lifecycle. Expiry is evaluated lazily when a session is read; nothing updates
// sessions in the background.
type Manager struct {
	store   sessionStore
	metrics metrics.Metrics
	clock   func() time.Time
	mutex   sync.Mutex
}

func New(config *Config) *Manager {
	m := &Manager{
		store:   config.Store,
		metrics: config.Metrics,
		clock:   config.Clock,
	}

	if m.store == nil {
		m.store = NewMemStore()
	}

	if m.metrics == nil {
		m.metrics = noop.GetMetrics()
	}

	if m.clock == nil {
		m.clock = identity.Now
	}

	return m
}

type createOpts struct {
	duration    time.Duration
	permissions []string
	metadata    map[string]interface{}
}

type CreateOpt func(opts *createOpts)

// WithDuration sets the session lifetime. A zero duration creates a session that is expired on first read.
func WithDuration(d time.Duration) CreateOpt {
	return func(opts *createOpts) {
		opts.duration = d
	}
}

// WithPermissions replaces the default permissions.
func WithPermissions(permissions ...string) CreateOpt {
	return func(opts *createOpts) {
		opts.permissions = permissions
	}
}

func WithMetadata(metadata map[string]interface{}) CreateOpt {
	return func(opts *createOpts) {
		opts.metadata = metadata
	}
}

// CreateSession starts an active session between userID and the provider.
func (m *Manager) CreateSession(ctx context.Context, userID, providerID, providerName string,
	opts ...CreateOpt) (*Session, error) {
	o := &createOpts{
		duration:    DefaultDuration,
		permissions: []string{PermissionReadCredentials},
	}

	for _, f := range opts {
		f(o)
	}

	if o.duration < 0 {
		return nil, coreerr.NewInvalidValue(errors.New("negative session duration")).
			WithComponent(coreerr.SessionComponent).
			WithOperation("create-session").
			WithIncorrectValue(o.duration.String())
	}

	now := m.now()

	s := &Session{
		ID:                  uuid.NewString(),
		UserID:              userID,
		ProviderID:          providerID,
		ProviderName:        providerName,
		CreatedAt:           now,
		ExpiresAt:           now.Add(o.duration),
		LastActivityAt:      now,
		Status:              StatusActive,
		SharedCredentialIDs: []string{},
		Permissions:         lo.Uniq(o.permissions),
		Metadata:            lo.Assign(map[string]interface{}{}, o.metadata),
	}

	if err := m.store.Put(ctx, s); err != nil {
		return nil, m.backendErr("create-session", err)
	}

	logger.Infoc(ctx, "Session created", logfields.WithSessionID(s.ID), logfields.WithProviderID(providerID))

	return s, nil
}

// GetSession returns the session. An active session whose lifetime is over is stored as expired before
// it is returned. Unknown ids yield coreerr.ErrDataNotFound.
func (m *Manager) GetSession(ctx context.Context, id string) (*Session, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.get(ctx, id)
}

// UpdateSessionActivity records activity on an active session and reports whether it did.
func (m *Manager) UpdateSessionActivity(ctx context.Context, id string) (bool, error) {
	return m.mutate(ctx, "update-session-activity", id, func(s *Session) bool {
		if s.Status != StatusActive {
			return false
		}

		s.LastActivityAt = m.now()

		return true
	})
}

// TerminateSession terminates the session whatever its status and reports whether it exists.
func (m *Manager) TerminateSession(ctx context.Context, id string) (bool, error) {
	ok, err := m.mutate(ctx, "terminate-session", id, func(s *Session) bool {
		s.Status = StatusTerminated

		return true
	})

	if ok {
		logger.Infoc(ctx, "Session terminated", logfields.WithSessionID(id))
	}

	return ok, err
}

// ShareCredentials adds credential ids to an active session and reports whether they were added.
func (m *Manager) ShareCredentials(ctx context.Context, id string, credentialIDs []string) (bool, error) {
	return m.mutate(ctx, "share-credentials", id, func(s *Session) bool {
		if s.Status != StatusActive {
			return false
		}

		s.SharedCredentialIDs = lo.Union(s.SharedCredentialIDs, lo.Compact(credentialIDs))
		s.LastActivityAt = m.now()

		return true
	})
}

// ExtendSession replaces an active session with a new one of the given lifetime. The old session is
// terminated; its shared credentials, permissions and metadata carry over.
func (m *Manager) ExtendSession(ctx context.Context, id string, duration time.Duration) (*Session, error) {
	m.mutex.Lock()

	old, err := m.get(ctx, id)
	if err != nil {
		m.mutex.Unlock()

		return nil, err
	}

	if old.Status != StatusActive {
		m.mutex.Unlock()

		return nil, coreerr.NewInvalidValue(errNotActive).
			WithComponent(coreerr.SessionComponent).
			WithOperation("extend-session").
			WithIncorrectValue(string(old.Status))
	}

	old.Status = StatusTerminated

	err = m.store.Put(ctx, old)

	m.mutex.Unlock()

	if err != nil {
		return nil, m.backendErr("extend-session", err)
	}

	extended, err := m.CreateSession(ctx, old.UserID, old.ProviderID, old.ProviderName,
		WithDuration(duration), WithPermissions(old.Permissions...), WithMetadata(old.Metadata))
	if err != nil {
		return nil, err
	}

	if len(old.SharedCredentialIDs) > 0 {
		if _, err = m.ShareCredentials(ctx, extended.ID, old.SharedCredentialIDs); err != nil {
			return nil, err
		}

		extended.SharedCredentialIDs = append([]string{}, old.SharedCredentialIDs...)
	}

	logger.Infoc(ctx, "Session extended", logfields.WithSessionID(extended.ID),
		log.WithAdditionalMessage("replaces "+id))

	return extended, nil
}

// GetActiveSessions lists the sessions stored as active. Expiry is not re-evaluated here, so a session
// whose lifetime is over but which nobody has read since is still listed.
func (m *Manager) GetActiveSessions(ctx context.Context) ([]*Session, error) {
	all, err := m.store.List(ctx)
	if err != nil {
		return nil, m.backendErr("get-active-sessions", err)
	}

	active := lo.Filter(all, func(s *Session, _ int) bool { return s.Status == StatusActive })

	m.metrics.ActiveSessions(len(active))

	return active, nil
}

// get must be called with the mutex held.
func (m *Manager) get(ctx context.Context, id string) (*Session, error) {
	s, err := m.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, coreerr.ErrDataNotFound) {
			return nil, coreerr.ErrDataNotFound
		}

		return nil, m.backendErr("get-session", err)
	}

	if s.hasLapsed(m.now()) {
		s.Status = StatusExpired

		if err = m.store.Put(ctx, s); err != nil {
			return nil, m.backendErr("get-session", err)
		}

		logger.Debugc(ctx, "Session expired", logfields.WithSessionID(id))
	}

	return s, nil
}

func (m *Manager) mutate(ctx context.Context, operation, id string, apply func(s *Session) bool) (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	s, err := m.get(ctx, id)
	if err != nil {
		if errors.Is(err, coreerr.ErrDataNotFound) {
			return false, nil
		}

		return false, err
	}

	if !apply(s) {
		return false, nil
	}

	if err = m.store.Put(ctx, s); err != nil {
		return false, m.backendErr(operation, err)
	}

	return true, nil
}

func (m *Manager) backendErr(operation string, err error) error {
	return coreerr.NewBackendFailure(fmt.Errorf("session store: %w", err)).
		WithComponent(coreerr.SessionComponent).WithOperation(operation)
}

func (m *Manager) now() time.Time {
	return identity.Truncate(m.clock())
}

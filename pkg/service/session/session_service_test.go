/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/anonid/pkg/coreerr"
	"github.com/trustbloc/anonid/pkg/service/session"
)

type fakeClock struct {
	mutex sync.Mutex
	now   time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mutex.Lock()
	c.now = c.now.Add(d)
	c.mutex.Unlock()
}

func newManager(clock *fakeClock) *session.Manager {
	return session.New(&session.Config{Clock: clock.Now})
}

func TestManager_CreateSession(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	m := newManager(clock)

	t.Run("defaults", func(t *testing.T) {
		s, err := m.CreateSession(ctx, "did:x", "bank", "Bank")
		require.NoError(t, err)

		require.NotEmpty(t, s.ID)
		require.Equal(t, session.StatusActive, s.Status)
		require.Equal(t, clock.Now(), s.CreatedAt)
		require.Equal(t, clock.Now().Add(time.Hour), s.ExpiresAt)
		require.Equal(t, []string{session.PermissionReadCredentials}, s.Permissions)
		require.Empty(t, s.SharedCredentialIDs)
		require.NotNil(t, s.Metadata)

		got, err := m.GetSession(ctx, s.ID)
		require.NoError(t, err)
		require.Equal(t, s, got)
	})

	t.Run("options", func(t *testing.T) {
		s, err := m.CreateSession(ctx, "did:x", "bank", "Bank", session.WithDuration(5*time.Minute),
			session.WithPermissions("read_credentials", "write_profile"),
			session.WithMetadata(map[string]interface{}{"channel": "web"}))
		require.NoError(t, err)
		require.Equal(t, clock.Now().Add(5*time.Minute), s.ExpiresAt)
		require.Equal(t, []string{"read_credentials", "write_profile"}, s.Permissions)
		require.Equal(t, "web", s.Metadata["channel"])
	})

	t.Run("negative duration", func(t *testing.T) {
		_, err := m.CreateSession(ctx, "did:x", "bank", "Bank", session.WithDuration(-time.Minute))
		require.True(t, coreerr.IsInputError(err))
	})
}

func TestManager_LazyExpiry(t *testing.T) {
	ctx := context.Background()

	t.Run("zero duration is expired on next read", func(t *testing.T) {
		m := newManager(newFakeClock())

		s, err := m.CreateSession(ctx, "did:x", "bank", "Bank", session.WithDuration(0))
		require.NoError(t, err)
		require.Equal(t, session.StatusActive, s.Status)

		got, err := m.GetSession(ctx, s.ID)
		require.NoError(t, err)
		require.Equal(t, session.StatusExpired, got.Status)
		require.Equal(t, s.ExpiresAt, got.ExpiresAt)
	})

	t.Run("unread expired session is still listed as active", func(t *testing.T) {
		clock := newFakeClock()
		m := newManager(clock)

		s, err := m.CreateSession(ctx, "did:x", "bank", "Bank", session.WithDuration(time.Minute))
		require.NoError(t, err)

		clock.Advance(2 * time.Minute)

		active, err := m.GetActiveSessions(ctx)
		require.NoError(t, err)
		require.Len(t, active, 1)

		got, err := m.GetSession(ctx, s.ID)
		require.NoError(t, err)
		require.Equal(t, session.StatusExpired, got.Status)

		active, err = m.GetActiveSessions(ctx)
		require.NoError(t, err)
		require.Empty(t, active)
	})

	t.Run("expired is terminal", func(t *testing.T) {
		clock := newFakeClock()
		m := newManager(clock)

		s, err := m.CreateSession(ctx, "did:x", "bank", "Bank", session.WithDuration(time.Minute))
		require.NoError(t, err)

		clock.Advance(time.Minute)

		ok, err := m.UpdateSessionActivity(ctx, s.ID)
		require.NoError(t, err)
		require.False(t, ok)

		ok, err = m.ShareCredentials(ctx, s.ID, []string{"urn:uuid:1"})
		require.NoError(t, err)
		require.False(t, ok)

		_, err = m.ExtendSession(ctx, s.ID, time.Hour)
		require.True(t, coreerr.IsInputError(err))
	})
}

func TestManager_UpdateSessionActivity(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	m := newManager(clock)

	s, err := m.CreateSession(ctx, "did:x", "bank", "Bank")
	require.NoError(t, err)

	clock.Advance(10 * time.Minute)

	ok, err := m.UpdateSessionActivity(ctx, s.ID)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := m.GetSession(ctx, s.ID)
	require.NoError(t, err)
	require.Equal(t, clock.Now(), got.LastActivityAt)

	ok, err = m.UpdateSessionActivity(ctx, "unknown")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestManager_TerminateSession(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	m := newManager(clock)

	s, err := m.CreateSession(ctx, "did:x", "bank", "Bank", session.WithDuration(0))
	require.NoError(t, err)

	ok, err := m.TerminateSession(ctx, s.ID)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := m.GetSession(ctx, s.ID)
	require.NoError(t, err)
	require.Equal(t, session.StatusTerminated, got.Status)

	ok, err = m.TerminateSession(ctx, s.ID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = m.UpdateSessionActivity(ctx, s.ID)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = m.TerminateSession(ctx, "unknown")
	require.NoError(t, err)
	require.False(t, ok)

	_, err = m.GetSession(ctx, "unknown")
	require.ErrorIs(t, err, coreerr.ErrDataNotFound)
}

func TestManager_ShareAndExtend(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	m := newManager(clock)

	s, err := m.CreateSession(ctx, "did:x", "bank", "Bank",
		session.WithMetadata(map[string]interface{}{"channel": "web"}))
	require.NoError(t, err)

	ok, err := m.ShareCredentials(ctx, s.ID, []string{"urn:uuid:1", "urn:uuid:2", "urn:uuid:1", ""})
	require.NoError(t, err)
	require.True(t, ok)

	got, err := m.GetSession(ctx, s.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"urn:uuid:1", "urn:uuid:2"}, got.SharedCredentialIDs)

	clock.Advance(30 * time.Minute)

	extended, err := m.ExtendSession(ctx, s.ID, 2*time.Hour)
	require.NoError(t, err)
	require.NotEqual(t, s.ID, extended.ID)
	require.Equal(t, session.StatusActive, extended.Status)
	require.Equal(t, clock.Now().Add(2*time.Hour), extended.ExpiresAt)
	require.Equal(t, []string{"urn:uuid:1", "urn:uuid:2"}, extended.SharedCredentialIDs)
	require.Equal(t, "web", extended.Metadata["channel"])
	require.Equal(t, s.Permissions, extended.Permissions)

	old, err := m.GetSession(ctx, s.ID)
	require.NoError(t, err)
	require.Equal(t, session.StatusTerminated, old.Status)
	require.Equal(t, s.ExpiresAt, old.ExpiresAt)

	stored, err := m.GetSession(ctx, extended.ID)
	require.NoError(t, err)
	require.Equal(t, extended.SharedCredentialIDs, stored.SharedCredentialIDs)

	_, err = m.ExtendSession(ctx, "unknown", time.Hour)
	require.ErrorIs(t, err, coreerr.ErrDataNotFound)
}

func TestManager_StoreFailure(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("store unavailable")

	t.Run("put", func(t *testing.T) {
		store := NewMockSessionStore(gomock.NewController(t))
		store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(storeErr)

		_, err := session.New(&session.Config{Store: store}).CreateSession(ctx, "did:x", "bank", "Bank")
		require.ErrorIs(t, err, storeErr)
		require.Equal(t, coreerr.BackendFailure, coreerr.CodeOf(err))
	})

	t.Run("get", func(t *testing.T) {
		store := NewMockSessionStore(gomock.NewController(t))
		store.EXPECT().Get(gomock.Any(), "id").Return(nil, storeErr)

		ok, err := session.New(&session.Config{Store: store}).TerminateSession(ctx, "id")
		require.ErrorIs(t, err, storeErr)
		require.False(t, ok)
	})

	t.Run("list", func(t *testing.T) {
		store := NewMockSessionStore(gomock.NewController(t))
		store.EXPECT().List(gomock.Any()).Return(nil, storeErr)

		_, err := session.New(&session.Config{Store: store}).GetActiveSessions(ctx)
		require.ErrorIs(t, err, storeErr)
	})
}

func TestManager_Concurrency(t *testing.T) {
	ctx := context.Background()
	m := newManager(newFakeClock())

	s, err := m.CreateSession(ctx, "did:x", "bank", "Bank")
	require.NoError(t, err)

	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, e := m.UpdateSessionActivity(ctx, s.ID)
			require.NoError(t, e)
		}()
	}

	wg.Wait()

	got, err := m.GetSession(ctx, s.ID)
	require.NoError(t, err)
	require.Equal(t, session.StatusActive, got.Status)
}

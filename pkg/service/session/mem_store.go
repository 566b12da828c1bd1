/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package session

import (
	"context"
	"sort"
	"sync"

	"github.com/trustbloc/anonid/pkg/coreerr"
)

// MemStore keeps sessions in process memory.
type MemStore struct {
	mutex    sync.RWMutex
	sessions map[string]*Session
}

func NewMemStore() *MemStore {
	return &MemStore{sessions: make(map[string]*Session)}
}

func (m *MemStore) Put(_ context.Context, s *Session) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.sessions[s.ID] = s.Clone()

	return nil
}

func (m *MemStore) Get(_ context.Context, id string) (*Session, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, coreerr.ErrDataNotFound
	}

	return s.Clone(), nil
}

// List returns every stored session ordered by creation time.
func (m *MemStore) List(_ context.Context) ([]*Session, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	sessions := make([]*Session, 0, len(m.sessions))

	for _, s := range m.sessions {
		sessions = append(sessions, s.Clone())
	}

	SortByCreation(sessions)

	return sessions, nil
}

// SortByCreation orders sessions by creation time, then id.
func SortByCreation(sessions []*Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].ID < sessions[j].ID
		}

		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})
}

/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifycredential

import (
	"sync"
)

// MaxHistoryEntries is the number of results kept per verifier.
const MaxHistoryEntries = 100

// history keeps the most recent results of each verifier, oldest first.
type history struct {
	mutex   sync.RWMutex
	entries map[string][]*VerificationResult
}

func newHistory() *history {
	return &history{entries: make(map[string][]*VerificationResult)}
}

func (h *history) add(verifierID string, result *VerificationResult) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	entries := append(h.entries[verifierID], result)

	if n := len(entries) - MaxHistoryEntries; n > 0 {
		entries = append(make([]*VerificationResult, 0, MaxHistoryEntries), entries[n:]...)
	}

	h.entries[verifierID] = entries
}

func (h *history) get(verifierID string) []*VerificationResult {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return append([]*VerificationResult{}, h.entries[verifierID]...)
}

/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package session

import (
	"time"

	"github.com/samber/lo"
)

type Status string

const (
	StatusActive     Status = "active"
	StatusExpired    Status = "expired"
	StatusTerminated Status = "terminated"
)

// PermissionReadCredentials is granted to every new session.
const PermissionReadCredentials = "read_credentials"

// Session is a time-bounded grant between a holder and a relying party. ExpiresAt never changes once the
// session is created.
type Session struct {
	ID                  string                 `json:"id"`
	UserID              string                 `json:"userId"`
	ProviderID          string                 `json:"serviceProviderId"`
	ProviderName        string                 `json:"serviceProviderName"`
	CreatedAt           time.Time              `json:"createdAt"`
	ExpiresAt           time.Time              `json:"expiresAt"`
	LastActivityAt      time.Time              `json:"lastActivityAt"`
	Status              Status                 `json:"status"`
	SharedCredentialIDs []string               `json:"sharedCredentials"`
	Permissions         []string               `json:"permissions"`
	Metadata            map[string]interface{} `json:"metadata"`
}

// Clone returns a copy that shares no slices or maps with s.
func (s *Session) Clone() *Session {
	c := *s
	c.SharedCredentialIDs = append([]string{}, s.SharedCredentialIDs...)
	c.Permissions = append([]string{}, s.Permissions...)
	c.Metadata = lo.Assign(map[string]interface{}{}, s.Metadata)

	return &c
}

// IsTerminal reports whether no further transition can leave the session's status.
func (s *Session) IsTerminal() bool {
	return s.Status == StatusExpired || s.Status == StatusTerminated
}

// hasLapsed reports whether an active session's lifetime is over at now.
func (s *Session) hasLapsed(now time.Time) bool {
	return s.Status == StatusActive && !now.Before(s.ExpiresAt)
}

/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package identity

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Subject holds the credential subject claims. The reserved SubjectIDKey entry is the subject identity
// reference and is never part of the attribute views.
type Subject map[string]interface{}

// NewSubject builds a subject for subjectID. A caller supplied "id" attribute is ignored.
func NewSubject(subjectID string, attributes map[string]interface{}) Subject {
	s := make(Subject, len(attributes)+1)

	for k, v := range attributes {
		if k == SubjectIDKey {
			continue
		}

		s[k] = v
	}

	s[SubjectIDKey] = subjectID

	return s
}

// NormalizeAttributes returns attributes in the form they take after a JSON round trip: numbers become
// float64, objects map[string]interface{} and arrays []interface{}. Stored credentials load back equal to
// the issued ones only when their claims are normalized.
func NormalizeAttributes(attributes map[string]interface{}) (map[string]interface{}, error) {
	if attributes == nil {
		return nil, nil
	}

	b, err := json.Marshal(attributes)
	if err != nil {
		return nil, fmt.Errorf("marshal attributes: %w", err)
	}

	normalized := map[string]interface{}{}

	if err = json.Unmarshal(b, &normalized); err != nil {
		return nil, fmt.Errorf("unmarshal attributes: %w", err)
	}

	return normalized, nil
}

// ID returns the subject identity reference.
func (s Subject) ID() string {
	id, _ := s[SubjectIDKey].(string) //nolint:errcheck

	return id
}

// Attributes returns a copy of the subject claims without the subject id.
func (s Subject) Attributes() map[string]interface{} {
	attrs := make(map[string]interface{}, len(s))

	for k, v := range s {
		if k != SubjectIDKey {
			attrs[k] = v
		}
	}

	return attrs
}

// AttributeNames returns the sorted attribute names without the subject id.
func (s Subject) AttributeNames() []string {
	names := make([]string, 0, len(s))

	for k := range s {
		if k != SubjectIDKey {
			names = append(names, k)
		}
	}

	sort.Strings(names)

	return names
}

// ExtractAttributes merges the subject attributes of credentials. When the same attribute appears in more
// than one credential the value from the credential later in the list wins, regardless of issuance date.
func ExtractAttributes(credentials []*Credential) map[string]interface{} {
	attrs := map[string]interface{}{}

	for _, c := range credentials {
		if c == nil {
			continue
		}

		for k, v := range c.Subject {
			if k != SubjectIDKey {
				attrs[k] = v
			}
		}
	}

	return attrs
}

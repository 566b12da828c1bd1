/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package identity

import (
	"time"
)

const (
	// SubjectIDKey is the reserved subject attribute holding the subject identity reference.
	SubjectIDKey = "id"

	CredentialsContextV1 = "https://www.w3.org/2018/credentials/v1"
	Ed25519SuiteContext  = "https://w3id.org/security/suites/ed25519-2020/v1"

	VerifiableCredentialType   = "VerifiableCredential"
	IdentityCredentialType     = "IdentityCredential"
	VerifiablePresentationType = "VerifiablePresentation"

	ProofTypeEd25519Signature2020 = "Ed25519Signature2020"
	AssertionMethodPurpose        = "assertionMethod"
	AuthenticationPurpose         = "authentication"
)

// Identity is a holder's durable record. It is treated as an immutable value: operations that change it
// return an updated copy and leave the original untouched.
type Identity struct {
	ID          string        `json:"id"`
	DisplayName string        `json:"name"`
	KeyMaterial []byte        `json:"publicKey"`
	Credentials []*Credential `json:"credentials"`
	CreatedAt   time.Time     `json:"createdAt"`
	LastUpdated time.Time     `json:"lastUpdated"`
}

// Credential is a stub-signed claim set about an identity's attributes. Credentials are never edited
// once issued.
type Credential struct {
	Context        []string        `json:"@context,omitempty"`
	ID             string          `json:"id"`
	Type           []string        `json:"type"`
	Issuer         string          `json:"issuer"`
	IssuanceDate   time.Time       `json:"issuanceDate"`
	ExpirationDate *time.Time      `json:"expirationDate,omitempty"`
	Subject        Subject         `json:"credentialSubject"`
	Proof          *Proof          `json:"proof,omitempty"`
	DisclosureMeta *DisclosureMeta `json:"selectiveDisclosure,omitempty"`
}

type Proof struct {
	Type               string    `json:"type"`
	Created            time.Time `json:"created"`
	ProofPurpose       string    `json:"proofPurpose"`
	VerificationMethod string    `json:"verificationMethod"`
	SignatureToken     string    `json:"jws"`
}

// DisclosureMeta is attached to a credential derived by selective disclosure.
type DisclosureMeta struct {
	OriginalCredentialID    string    `json:"originalCredentialId"`
	DisclosedAttributeNames []string  `json:"disclosedAttributes"`
	Timestamp               time.Time `json:"timestamp"`
}

type Presentation struct {
	Context     []string      `json:"@context,omitempty"`
	ID          string        `json:"id,omitempty"`
	Type        []string      `json:"type"`
	Credentials []*Credential `json:"verifiableCredential"`
	Holder      string        `json:"holder,omitempty"`
	Proof       *Proof        `json:"proof,omitempty"`
}

// Now returns the current time in UTC truncated to the millisecond, the precision timestamps keep when
// serialized to ISO-8601.
func Now() time.Time {
	return Truncate(time.Now())
}

// Truncate normalizes t to UTC millisecond precision.
func Truncate(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// Clone returns a copy of the identity that owns its own credential list and key material. Credentials
// themselves are shared because they are immutable.
func (i *Identity) Clone() *Identity {
	clone := *i

	if i.KeyMaterial != nil {
		clone.KeyMaterial = append([]byte{}, i.KeyMaterial...)
	}

	if i.Credentials != nil {
		clone.Credentials = append(make([]*Credential, 0, len(i.Credentials)), i.Credentials...)
	}

	return &clone
}

// CredentialIDs returns the ids of the identity's credentials in list order.
func (i *Identity) CredentialIDs() []string {
	ids := make([]string, 0, len(i.Credentials))

	for _, c := range i.Credentials {
		ids = append(ids, c.ID)
	}

	return ids
}

// FindCredential returns the credential with the given id.
func (i *Identity) FindCredential(id string) (*Credential, bool) {
	for _, c := range i.Credentials {
		if c.ID == id {
			return c, true
		}
	}

	return nil, false
}

// Attributes returns the merged attributes of all the identity's credentials.
func (i *Identity) Attributes() map[string]interface{} {
	return ExtractAttributes(i.Credentials)
}

// SubjectID returns the subject identity reference of the credential.
func (c *Credential) SubjectID() string {
	return c.Subject.ID()
}

// IsExpired reports whether the credential carries an expiration date that is not after now.
func (c *Credential) IsExpired(now time.Time) bool {
	return c.ExpirationDate != nil && !c.ExpirationDate.After(now)
}

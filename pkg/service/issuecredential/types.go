/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package issuecredential

// DefaultIssuerDID is the issuer identifier used when none is configured.
const DefaultIssuerDID = "did:key:mock-issuer-123456789"

// Selection picks one attribute of one of the holder's credentials for selective disclosure.
type Selection struct {
	CredentialID  string `json:"credentialId"`
	AttributeName string `json:"attributeName"`
}
